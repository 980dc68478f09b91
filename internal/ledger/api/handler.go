package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tadeusantosti/controle-bancario/internal/ledger/domain"
	"github.com/tadeusantosti/controle-bancario/internal/ledger/service"
)

// LedgerHandler adapts the service facade to HTTP. It only marshals: all
// validation and balance bookkeeping happens behind the facade.
type LedgerHandler struct {
	svc *service.LedgerService
}

func NewLedgerHandler(svc *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

func (h *LedgerHandler) RegisterRoutes(r *gin.RouterGroup) {
	accounts := r.Group("/accounts")
	{
		accounts.POST("", h.OpenAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
	}
	entries := r.Group("/entries")
	{
		entries.POST("", h.PostEntry)
		entries.GET("", h.SearchEntries)
		entries.PUT("/:id", h.UpdateEntry)
		entries.DELETE("/:id", h.DeleteEntry)
	}
}

// OpenAccount handles POST /accounts.
func (h *LedgerHandler) OpenAccount(c *gin.Context) {
	var req OpenAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	acc, err := h.svc.OpenAccount(c.Request.Context(), service.OpenAccountRequest{
		BranchCode: req.BranchCode,
		BankCode:   req.BankCode,
		Holder:     req.Holder,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountResp(acc))
}

// ListAccounts handles GET /accounts.
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.svc.ListAccounts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]AccountResp, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccountResp(&accounts[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetAccount handles GET /accounts/:id.
func (h *LedgerHandler) GetAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	acc, err := h.svc.GetAccount(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResp(acc))
}

// DeleteAccount handles DELETE /accounts/:id.
func (h *LedgerHandler) DeleteAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAccount(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PostEntry handles POST /entries.
func (h *LedgerHandler) PostEntry(c *gin.Context) {
	var req PostEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	entry, balance, err := h.svc.PostEntry(c.Request.Context(), service.PostEntryRequest{
		AccountID: req.AccountID,
		Memo:      req.Memo,
		Amount:    req.Amount,
		Date:      req.Date,
		TypeCode:  req.TypeCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, PostEntryResp{
		Entry:   toEntryResp(entry),
		Balance: balance.StringFixed(2),
	})
}

// UpdateEntry handles PUT /entries/:id.
func (h *LedgerHandler) UpdateEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	entry, err := h.svc.UpdateEntry(c.Request.Context(), service.UpdateEntryRequest{
		EntryID:  id,
		Memo:     req.Memo,
		Amount:   req.Amount,
		Date:     req.Date,
		TypeCode: req.TypeCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryResp(entry))
}

// DeleteEntry handles DELETE /entries/:id.
func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteEntry(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchEntries handles GET /entries. Filters are query parameters:
// name (memo substring), type (entry type code), from/to (dd/mm/yyyy,
// inclusive). Without filters the full list comes back.
func (h *LedgerHandler) SearchEntries(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		entries []domain.Entry
		err     error
	)
	switch {
	case c.Query("name") != "":
		entries, err = h.svc.SearchByName(ctx, c.Query("name"))
	case c.Query("type") != "":
		code, convErr := strconv.ParseInt(c.Query("type"), 10, 16)
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type code"})
			return
		}
		entries, err = h.svc.SearchByType(ctx, int16(code))
	case c.Query("from") != "" || c.Query("to") != "":
		entries, err = h.svc.SearchByPeriod(ctx, c.Query("from"), c.Query("to"))
	default:
		entries, err = h.svc.ListEntries(ctx)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]EntryResp, 0, len(entries))
	for i := range entries {
		out = append(out, toEntryResp(&entries[i]))
	}
	c.JSON(http.StatusOK, out)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// writeError maps the domain failure kinds onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnknownEntryType):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func toAccountResp(acc *domain.Account) AccountResp {
	return AccountResp{
		ID:         acc.ID,
		BranchCode: int16(acc.Branch),
		Branch:     acc.Branch.Label(),
		BankCode:   int16(acc.Bank),
		Bank:       acc.Bank.Label(),
		Holder:     acc.Holder,
		Balance:    acc.Balance.StringFixed(2),
		Active:     acc.Active,
	}
}

func toEntryResp(e *domain.Entry) EntryResp {
	return EntryResp{
		ID:        e.ID,
		AccountID: e.AccountID,
		Memo:      e.Memo,
		Amount:    e.Amount.StringFixed(2),
		Date:      domain.FormatDate(e.Date),
		TypeCode:  int16(e.Type),
		Type:      e.Type.Label(),
	}
}
