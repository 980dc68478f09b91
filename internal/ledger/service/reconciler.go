package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tadeusantosti/controle-bancario/internal/ledger/domain"
)

// Reconciler recomputes an account's balance from its complete entry
// history and persists the result. The balance is always re-derived, never
// maintained incrementally, so the operation is idempotent by construction.
type Reconciler struct {
	accounts domain.AccountRepository
	entries  domain.EntryRepository
}

func NewReconciler(accounts domain.AccountRepository, entries domain.EntryRepository) *Reconciler {
	return &Reconciler{accounts: accounts, entries: entries}
}

// Reconcile sums the account's entries with the type sign mapping and
// overwrites the stored balance. The caller supplies the storage
// transaction so the read and the write observe the same entry set.
// An account with no entries reconciles to zero.
func (r *Reconciler) Reconcile(ctx context.Context, tx *gorm.DB, accountID int64) (decimal.Decimal, error) {
	entries, err := r.entries.FindByAccountID(ctx, tx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for i := range entries {
		signed, err := entries[i].SignedAmount()
		if err != nil {
			// An unmapped type code aborts the reconcile; treating it as
			// a zero contribution would corrupt the balance silently.
			return decimal.Zero, err
		}
		balance = balance.Add(signed)
	}

	if err := r.accounts.UpdateBalance(ctx, tx, accountID, balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
