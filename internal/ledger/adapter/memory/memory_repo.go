// Package memory holds map-backed implementations of the repository ports.
// They keep the same contracts as the postgres adapter and back the service
// and API tests, where a real database would only add noise.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tadeusantosti/controle-bancario/internal/ledger/domain"
)

// NopTxRunner satisfies domain.TxRunner without a real transaction; the
// map stores are process-local so fn just runs with a nil session.
type NopTxRunner struct{}

func (NopTxRunner) Atomic(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// AccountRepo is a map-backed domain.AccountRepository.
type AccountRepo struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]domain.Account
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{nextID: 1, accounts: make(map[int64]domain.Account)}
}

func (r *AccountRepo) Create(_ context.Context, _ *gorm.DB, acc *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc.ID = r.nextID
	r.nextID++
	acc.Balance = decimal.Zero
	acc.Active = true
	r.accounts[acc.ID] = *acc
	return nil
}

func (r *AccountRepo) DeleteByID(_ context.Context, _ *gorm.DB, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *AccountRepo) FindAll(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		out = append(out, acc)
	}
	return out, nil
}

func (r *AccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &acc, nil
}

func (r *AccountRepo) UpdateBalance(_ context.Context, _ *gorm.DB, id int64, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	acc.Balance = balance
	r.accounts[id] = acc
	return nil
}

// EntryRepo is a map-backed domain.EntryRepository.
type EntryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	entries map[int64]domain.Entry
}

func NewEntryRepo() *EntryRepo {
	return &EntryRepo{nextID: 1, entries: make(map[int64]domain.Entry)}
}

func (r *EntryRepo) Create(_ context.Context, _ *gorm.DB, e *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.nextID
	r.nextID++
	r.entries[e.ID] = *e
	return nil
}

func (r *EntryRepo) Update(_ context.Context, _ *gorm.DB, e *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.entries[e.ID] = *e
	return nil
}

func (r *EntryRepo) DeleteByID(_ context.Context, _ *gorm.DB, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *EntryRepo) FindByID(_ context.Context, _ *gorm.DB, id int64) (*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r *EntryRepo) FindByMemo(_ context.Context, substring string) ([]domain.Entry, error) {
	return r.filter(func(e domain.Entry) bool {
		return strings.Contains(e.Memo, substring)
	}), nil
}

func (r *EntryRepo) FindByType(_ context.Context, t domain.EntryType) ([]domain.Entry, error) {
	return r.filter(func(e domain.Entry) bool {
		return e.Type == t
	}), nil
}

func (r *EntryRepo) FindByPeriod(_ context.Context, start, end time.Time) ([]domain.Entry, error) {
	return r.filter(func(e domain.Entry) bool {
		return !e.Date.Before(start) && !e.Date.After(end)
	}), nil
}

func (r *EntryRepo) FindByAccountID(_ context.Context, _ *gorm.DB, accountID int64) ([]domain.Entry, error) {
	return r.filter(func(e domain.Entry) bool {
		return e.AccountID == accountID
	}), nil
}

func (r *EntryRepo) CountByAccountID(_ context.Context, accountID int64) (int64, error) {
	return int64(len(r.filter(func(e domain.Entry) bool {
		return e.AccountID == accountID
	}))), nil
}

func (r *EntryRepo) FindAll(_ context.Context) ([]domain.Entry, error) {
	return r.filter(func(domain.Entry) bool { return true }), nil
}

func (r *EntryRepo) filter(keep func(domain.Entry) bool) []domain.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Entry, 0)
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
