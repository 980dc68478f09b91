package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tadeusantosti/controle-bancario/internal/ledger/domain"
)

// wrapStore translates gorm failures into the domain taxonomy.
func wrapStore(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}

// GormTxRunner adapts gorm's transaction API to the domain TxRunner port.
type GormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

func (r *GormTxRunner) Atomic(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// PostgresAccountRepo implements domain.AccountRepository over gorm.
type PostgresAccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

// session prefers the ambient transaction over the repository's own handle.
func (r *PostgresAccountRepo) session(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *PostgresAccountRepo) Create(ctx context.Context, tx *gorm.DB, acc *domain.Account) error {
	acc.Balance = decimal.Zero
	acc.Active = true
	if err := r.session(tx).WithContext(ctx).Create(acc).Error; err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *PostgresAccountRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error {
	result := r.session(tx).WithContext(ctx).Delete(&domain.Account{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *PostgresAccountRepo) FindAll(ctx context.Context) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0)
	if err := r.db.WithContext(ctx).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return accounts, nil
}

func (r *PostgresAccountRepo) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	var acc domain.Account
	if err := r.db.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, wrapStore(err)
	}
	return &acc, nil
}

func (r *PostgresAccountRepo) UpdateBalance(ctx context.Context, tx *gorm.DB, id int64, balance decimal.Decimal) error {
	result := r.session(tx).WithContext(ctx).Model(&domain.Account{}).
		Where("id = ?", id).
		Update("saldo", balance)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", domain.ErrNotFound, id)
	}
	return nil
}

// PostgresEntryRepo implements domain.EntryRepository over gorm.
type PostgresEntryRepo struct {
	db *gorm.DB
}

func NewEntryRepo(db *gorm.DB) *PostgresEntryRepo {
	return &PostgresEntryRepo{db: db}
}

func (r *PostgresEntryRepo) session(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *PostgresEntryRepo) Create(ctx context.Context, tx *gorm.DB, e *domain.Entry) error {
	if err := r.session(tx).WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *PostgresEntryRepo) Update(ctx context.Context, tx *gorm.DB, e *domain.Entry) error {
	if err := r.session(tx).WithContext(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *PostgresEntryRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error {
	result := r.session(tx).WithContext(ctx).Delete(&domain.Entry{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: entry %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *PostgresEntryRepo) FindByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Entry, error) {
	var e domain.Entry
	if err := r.session(tx).WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, wrapStore(err)
	}
	return &e, nil
}

func (r *PostgresEntryRepo) FindByMemo(ctx context.Context, substring string) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0)
	// LIKE, not ILIKE: memo matching is case-sensitive.
	err := r.db.WithContext(ctx).
		Where("observacao LIKE ?", "%"+substring+"%").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return entries, nil
}

func (r *PostgresEntryRepo) FindByType(ctx context.Context, t domain.EntryType) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0)
	err := r.db.WithContext(ctx).Where("tipo = ?", t).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return entries, nil
}

func (r *PostgresEntryRepo) FindByPeriod(ctx context.Context, start, end time.Time) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0)
	err := r.db.WithContext(ctx).
		Where("data BETWEEN ? AND ?", start, end).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return entries, nil
}

func (r *PostgresEntryRepo) FindByAccountID(ctx context.Context, tx *gorm.DB, accountID int64) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0)
	err := r.session(tx).WithContext(ctx).
		Where("id_conta_corrente = ?", accountID).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return entries, nil
}

func (r *PostgresEntryRepo) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Entry{}).
		Where("id_conta_corrente = ?", accountID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return count, nil
}

func (r *PostgresEntryRepo) FindAll(ctx context.Context) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0)
	if err := r.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return entries, nil
}
