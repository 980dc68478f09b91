package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tadeusantosti/controle-bancario/internal/ledger/domain"
)

// OpenAccountRequest carries an account-opening request into the service.
type OpenAccountRequest struct {
	BranchCode int16
	BankCode   int16
	Holder     string
}

// PostEntryRequest carries a new ledger entry. Amount and Date travel as
// strings (decimal with two places, dd/mm/yyyy) and are parsed here.
type PostEntryRequest struct {
	AccountID int64
	Memo      string
	Amount    string
	Date      string
	TypeCode  int16
}

// UpdateEntryRequest is a partial update: nil fields keep their prior
// values.
type UpdateEntryRequest struct {
	EntryID  int64
	Memo     *string
	Amount   *string
	Date     *string
	TypeCode *int16
}

// LedgerService is the facade every transport goes through. It validates
// requests, orchestrates the repositories, and keeps balances consistent:
// any operation that mutates entries reconciles the owning account before
// returning, inside the same storage transaction.
type LedgerService struct {
	tx         domain.TxRunner
	accounts   domain.AccountRepository
	entries    domain.EntryRepository
	reconciler *Reconciler
	logger     *zap.Logger
}

func NewLedgerService(
	tx domain.TxRunner,
	accounts domain.AccountRepository,
	entries domain.EntryRepository,
	reconciler *Reconciler,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		tx:         tx,
		accounts:   accounts,
		entries:    entries,
		reconciler: reconciler,
		logger:     logger,
	}
}

// OpenAccount validates the enumeration codes and holder name and creates
// the account with zero balance and active flag set.
func (s *LedgerService) OpenAccount(ctx context.Context, req OpenAccountRequest) (*domain.Account, error) {
	branch, err := domain.BranchByCode(req.BranchCode)
	if err != nil {
		return nil, err
	}
	bank, err := domain.BankByCode(req.BankCode)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Holder) == "" {
		return nil, fmt.Errorf("%w: holder name is required", domain.ErrValidation)
	}

	acc := &domain.Account{
		Branch: branch,
		Bank:   bank,
		Holder: req.Holder,
	}
	err = s.tx.Atomic(ctx, func(tx *gorm.DB) error {
		return s.accounts.Create(ctx, tx, acc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account opened",
		zap.Int64("account_id", acc.ID),
		zap.String("holder", acc.Holder),
		zap.String("bank", bank.Label()),
		zap.String("branch", branch.Label()),
	)
	return acc, nil
}

// GetAccount returns one account by id.
func (s *LedgerService) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// ListAccounts returns every account.
func (s *LedgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.FindAll(ctx)
}

// DeleteAccount removes an account. Deletion is rejected while the account
// still has entries: callers must delete those first, which keeps orphaned
// entries out of the store.
func (s *LedgerService) DeleteAccount(ctx context.Context, id int64) error {
	if _, err := s.accounts.FindByID(ctx, id); err != nil {
		return err
	}
	count, err := s.entries.CountByAccountID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: account %d still has %d entries", domain.ErrValidation, id, count)
	}
	err = s.tx.Atomic(ctx, func(tx *gorm.DB) error {
		return s.accounts.DeleteByID(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("account deleted", zap.Int64("account_id", id))
	return nil
}

// PostEntry validates, inserts the entry, and reconciles the owning
// account, all in one transaction. Returns the stored entry and the
// updated balance.
func (s *LedgerService) PostEntry(ctx context.Context, req PostEntryRequest) (*domain.Entry, decimal.Decimal, error) {
	entryType, err := domain.EntryTypeByCode(req.TypeCode)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: unknown entry type code %d", domain.ErrValidation, req.TypeCode)
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, decimal.Zero, err
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if _, err := s.accounts.FindByID(ctx, req.AccountID); err != nil {
		return nil, decimal.Zero, err
	}

	entry := &domain.Entry{
		Memo:      req.Memo,
		Amount:    amount,
		Date:      date,
		Type:      entryType,
		AccountID: req.AccountID,
	}
	var balance decimal.Decimal
	err = s.tx.Atomic(ctx, func(tx *gorm.DB) error {
		if err := s.entries.Create(ctx, tx, entry); err != nil {
			return err
		}
		balance, err = s.reconciler.Reconcile(ctx, tx, req.AccountID)
		return err
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	s.logger.Info("entry posted",
		zap.Int64("entry_id", entry.ID),
		zap.Int64("account_id", req.AccountID),
		zap.String("type", entryType.Label()),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("balance", balance.StringFixed(2)),
	)
	return entry, balance, nil
}

// UpdateEntry applies the fields present in the request, leaves the rest
// untouched, and reconciles the owning account.
func (s *LedgerService) UpdateEntry(ctx context.Context, req UpdateEntryRequest) (*domain.Entry, error) {
	var updated *domain.Entry
	err := s.tx.Atomic(ctx, func(tx *gorm.DB) error {
		entry, err := s.entries.FindByID(ctx, tx, req.EntryID)
		if err != nil {
			return err
		}
		if req.Memo != nil {
			entry.Memo = *req.Memo
		}
		if req.Amount != nil {
			amount, err := parseAmount(*req.Amount)
			if err != nil {
				return err
			}
			entry.Amount = amount
		}
		if req.Date != nil {
			date, err := domain.ParseDate(*req.Date)
			if err != nil {
				return err
			}
			entry.Date = date
		}
		if req.TypeCode != nil {
			entryType, err := domain.EntryTypeByCode(*req.TypeCode)
			if err != nil {
				return fmt.Errorf("%w: unknown entry type code %d", domain.ErrValidation, *req.TypeCode)
			}
			entry.Type = entryType
		}
		if err := s.entries.Update(ctx, tx, entry); err != nil {
			return err
		}
		if _, err := s.reconciler.Reconcile(ctx, tx, entry.AccountID); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("entry updated", zap.Int64("entry_id", updated.ID), zap.Int64("account_id", updated.AccountID))
	return updated, nil
}

// DeleteEntry resolves the owning account before deleting, then
// reconciles it so the balance reflects the remaining history.
func (s *LedgerService) DeleteEntry(ctx context.Context, id int64) error {
	err := s.tx.Atomic(ctx, func(tx *gorm.DB) error {
		entry, err := s.entries.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.entries.DeleteByID(ctx, tx, id); err != nil {
			return err
		}
		_, err = s.reconciler.Reconcile(ctx, tx, entry.AccountID)
		return err
	})
	if err != nil {
		return err
	}
	s.logger.Info("entry deleted", zap.Int64("entry_id", id))
	return nil
}

// SearchByName finds entries whose memo contains the given text. The memo
// conventionally names the customer, so this doubles as the name search.
func (s *LedgerService) SearchByName(ctx context.Context, name string) ([]domain.Entry, error) {
	return s.entries.FindByMemo(ctx, name)
}

// SearchByType finds entries of one enumerated type.
func (s *LedgerService) SearchByType(ctx context.Context, typeCode int16) ([]domain.Entry, error) {
	entryType, err := domain.EntryTypeByCode(typeCode)
	if err != nil {
		return nil, err
	}
	return s.entries.FindByType(ctx, entryType)
}

// SearchByPeriod finds entries dated within [start, end], both given as
// dd/mm/yyyy strings and inclusive on both ends.
func (s *LedgerService) SearchByPeriod(ctx context.Context, start, end string) ([]domain.Entry, error) {
	from, err := domain.ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := domain.ParseDate(end)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: start date %s is after end date %s", domain.ErrValidation, start, end)
	}
	return s.entries.FindByPeriod(ctx, from, to)
}

// ListEntries returns every entry.
func (s *LedgerService) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	return s.entries.FindAll(ctx)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", domain.ErrValidation)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", domain.ErrValidation, raw)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	return amount, nil
}
