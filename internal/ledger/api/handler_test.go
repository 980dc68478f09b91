package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tadeusantosti/controle-bancario/internal/ledger/adapter/memory"
	"github.com/tadeusantosti/controle-bancario/internal/ledger/domain"
	"github.com/tadeusantosti/controle-bancario/internal/ledger/service"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	accounts := memory.NewAccountRepo()
	entries := memory.NewEntryRepo()
	reconciler := service.NewReconciler(accounts, entries)
	svc := service.NewLedgerService(memory.NopTxRunner{}, accounts, entries, reconciler, zap.NewNop())

	r := gin.New()
	NewLedgerHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func openTestAccount(t *testing.T, r *gin.Engine) int64 {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/accounts", OpenAccountReq{
		BranchCode: 1,
		BankCode:   237,
		Holder:     "Son Gohan",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp AccountResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestAccountEndpoints(t *testing.T) {
	r := newTestRouter()

	t.Run("open returns a zero-balance active account", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/accounts", OpenAccountReq{
			BranchCode: 1,
			BankCode:   237,
			Holder:     "Son Gohan",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp AccountResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "0.00", resp.Balance)
		assert.True(t, resp.Active)
		assert.Equal(t, "Bradesco", resp.Bank)
		assert.Equal(t, "Araras", resp.Branch)
	})

	t.Run("unknown bank code is a bad request", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/accounts", OpenAccountReq{
			BranchCode: 1,
			BankCode:   999,
			Holder:     "Son Gohan",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing account is 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/accounts/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEntryEndpoints(t *testing.T) {
	r := newTestRouter()
	accountID := openTestAccount(t, r)
	date := domain.FormatDate(time.Now().UTC())

	t.Run("posting returns the reconciled balance", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/entries", PostEntryReq{
			AccountID: accountID,
			Memo:      "Deposito na conta corrente do Albert Einstein",
			Amount:    "1234.56",
			Date:      date,
			TypeCode:  1,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp PostEntryResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "1234.56", resp.Balance)
		assert.Equal(t, "DEPOSITO", resp.Entry.Type)

		w = doJSON(t, r, http.MethodPost, "/api/v1/entries", PostEntryReq{
			AccountID: accountID,
			Memo:      "Saque na conta corrente de Albert Einstein",
			Amount:    "1000.00",
			Date:      date,
			TypeCode:  2,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "234.56", resp.Balance)
	})

	t.Run("memo search finds the posted entry", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/entries?name=Albert", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var entries []EntryResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
		assert.Len(t, entries, 2)
	})

	t.Run("period search honours inclusive bounds", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/entries?from=%s&to=%s", date, date), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var entries []EntryResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
		assert.Len(t, entries, 2)
	})

	t.Run("inverted period is a bad request", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/entries?from=20/03/2026&to=10/03/2026", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown search type code is unprocessable", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/entries?type=31", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("deleting an entry empties the search result", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/entries?name=Saque", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var entries []EntryResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
		require.Len(t, entries, 1)

		w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/entries/%d", entries[0].ID), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/v1/entries?name=Saque", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
		assert.Empty(t, entries)
	})

	t.Run("partial update keeps amount and type", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/entries?name=Deposito", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var entries []EntryResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
		require.Len(t, entries, 1)

		memo := "Transferencia para a conta corrente do Charles Darwin"
		w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/entries/%d", entries[0].ID), UpdateEntryReq{
			Memo: &memo,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated EntryResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, memo, updated.Memo)
		assert.Equal(t, "1234.56", updated.Amount)
		assert.Equal(t, int16(1), updated.TypeCode)
	})

	t.Run("account with entries cannot be deleted", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/accounts/%d", accountID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
