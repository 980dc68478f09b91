package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TxRunner runs fn inside one storage transaction. Operations that read
// entries and then write a balance go through here so both sides observe
// the same entry set.
type TxRunner interface {
	Atomic(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AccountRepository is the port for checking-account persistence.
// Mutating methods take the ambient transaction; a nil tx means the
// repository's own session.
type AccountRepository interface {
	// Create assigns an id and persists the account. Balance is forced to
	// zero and the active flag to true regardless of the input.
	Create(ctx context.Context, tx *gorm.DB, acc *Account) error

	DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error

	FindAll(ctx context.Context) ([]Account, error)

	// FindByID fails with ErrNotFound when the account does not exist.
	FindByID(ctx context.Context, id int64) (*Account, error)

	// UpdateBalance overwrites the stored balance field only.
	UpdateBalance(ctx context.Context, tx *gorm.DB, id int64, balance decimal.Decimal) error
}

// EntryRepository is the port for ledger-entry persistence.
type EntryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, e *Entry) error

	Update(ctx context.Context, tx *gorm.DB, e *Entry) error

	// DeleteByID fails with ErrNotFound when the entry does not exist.
	DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error

	FindByID(ctx context.Context, tx *gorm.DB, id int64) (*Entry, error)

	// FindByMemo matches a case-sensitive substring of the memo text.
	// Result is never nil.
	FindByMemo(ctx context.Context, substring string) ([]Entry, error)

	FindByType(ctx context.Context, t EntryType) ([]Entry, error)

	// FindByPeriod returns entries dated within [start, end], inclusive on
	// both ends.
	FindByPeriod(ctx context.Context, start, end time.Time) ([]Entry, error)

	// FindByAccountID feeds reconciliation; it reads through the ambient
	// transaction when one is given.
	FindByAccountID(ctx context.Context, tx *gorm.DB, accountID int64) ([]Entry, error)

	CountByAccountID(ctx context.Context, accountID int64) (int64, error)

	FindAll(ctx context.Context) ([]Entry, error)
}
