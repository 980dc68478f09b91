package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryTypeSign(t *testing.T) {
	cases := []struct {
		typ  EntryType
		sign int64
	}{
		{Deposit, 1},
		{TransferIn, 1},
		{Withdrawal, -1},
		{TransferOut, -1},
	}
	for _, c := range cases {
		sign, err := c.typ.Sign()
		require.NoError(t, err)
		assert.Equal(t, c.sign, sign, c.typ.Label())
	}

	_, err := EntryType(99).Sign()
	assert.ErrorIs(t, err, ErrUnknownEntryType)
}

func TestEntryTypeByCode(t *testing.T) {
	typ, err := EntryTypeByCode(1)
	require.NoError(t, err)
	assert.Equal(t, Deposit, typ)
	assert.Equal(t, "DEPOSITO", typ.Label())

	_, err = EntryTypeByCode(0)
	assert.ErrorIs(t, err, ErrUnknownEntryType)
}

func TestBankAndBranchLookups(t *testing.T) {
	bank, err := BankByCode(237)
	require.NoError(t, err)
	assert.Equal(t, Bradesco, bank)
	assert.Equal(t, "Bradesco", bank.Label())

	_, err = BankByCode(999)
	assert.ErrorIs(t, err, ErrValidation)

	branch, err := BranchByCode(1)
	require.NoError(t, err)
	assert.Equal(t, Araras, branch)
	assert.Equal(t, "Araras", branch.Label())

	_, err = BranchByCode(77)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("15/01/2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "15/01/2026", FormatDate(d))

	_, err = ParseDate("2026-01-15")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseDate("32/01/2026")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSignedAmount(t *testing.T) {
	deposit := &Entry{Amount: decimal.RequireFromString("10.50"), Type: Deposit}
	signed, err := deposit.SignedAmount()
	require.NoError(t, err)
	assert.True(t, signed.Equal(decimal.RequireFromString("10.50")))

	withdrawal := &Entry{Amount: decimal.RequireFromString("10.50"), Type: Withdrawal}
	signed, err = withdrawal.SignedAmount()
	require.NoError(t, err)
	assert.True(t, signed.Equal(decimal.RequireFromString("-10.50")))

	bogus := &Entry{Amount: decimal.RequireFromString("1.00"), Type: EntryType(42)}
	_, err = bogus.SignedAmount()
	assert.ErrorIs(t, err, ErrUnknownEntryType)
}
