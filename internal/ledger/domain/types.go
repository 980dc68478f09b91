package domain

import (
	"fmt"
	"time"
)

// EntryType classifies a ledger entry and drives the sign of its
// contribution to the account balance.
type EntryType int16

const (
	Deposit     EntryType = 1
	Withdrawal  EntryType = 2
	TransferIn  EntryType = 3
	TransferOut EntryType = 4
)

var entryTypeLabels = map[EntryType]string{
	Deposit:     "DEPOSITO",
	Withdrawal:  "SAQUE",
	TransferIn:  "TRANSFERENCIA RECEBIDA",
	TransferOut: "TRANSFERENCIA ENVIADA",
}

// EntryTypeByCode resolves an external type code to its enumeration value.
func EntryTypeByCode(code int16) (EntryType, error) {
	t := EntryType(code)
	if _, ok := entryTypeLabels[t]; !ok {
		return 0, fmt.Errorf("%w: code %d", ErrUnknownEntryType, code)
	}
	return t, nil
}

func (t EntryType) Label() string {
	return entryTypeLabels[t]
}

// Sign returns the balance multiplier for the type: credits are +1,
// debits are -1. An unmapped code is an error, never a zero contribution.
func (t EntryType) Sign() (int64, error) {
	switch t {
	case Deposit, TransferIn:
		return 1, nil
	case Withdrawal, TransferOut:
		return -1, nil
	default:
		return 0, fmt.Errorf("%w: code %d", ErrUnknownEntryType, int16(t))
	}
}

// Bank is a clearing-system bank code.
type Bank int16

const (
	BancoDoBrasil Bank = 1
	Santander     Bank = 33
	Caixa         Bank = 104
	Bradesco      Bank = 237
	Itau          Bank = 341
)

var bankLabels = map[Bank]string{
	BancoDoBrasil: "Banco do Brasil",
	Santander:     "Santander",
	Caixa:         "Caixa Economica Federal",
	Bradesco:      "Bradesco",
	Itau:          "Itau Unibanco",
}

// BankByCode resolves an external bank code to its enumeration value.
func BankByCode(code int16) (Bank, error) {
	b := Bank(code)
	if _, ok := bankLabels[b]; !ok {
		return 0, fmt.Errorf("%w: unknown bank code %d", ErrValidation, code)
	}
	return b, nil
}

func (b Bank) Label() string {
	return bankLabels[b]
}

// Branch identifies a physical branch office.
type Branch int16

const (
	Araras   Branch = 1
	Leme     Branch = 2
	RioClaro Branch = 3
	Campinas Branch = 4
)

var branchLabels = map[Branch]string{
	Araras:   "Araras",
	Leme:     "Leme",
	RioClaro: "Rio Claro",
	Campinas: "Campinas",
}

// BranchByCode resolves an external branch code to its enumeration value.
func BranchByCode(code int16) (Branch, error) {
	br := Branch(code)
	if _, ok := branchLabels[br]; !ok {
		return 0, fmt.Errorf("%w: unknown branch code %d", ErrValidation, code)
	}
	return br, nil
}

func (br Branch) Label() string {
	return branchLabels[br]
}

// DateLayout is the calendar-date format used at the API boundary (dd/mm/yyyy).
const DateLayout = "02/01/2006"

// ParseDate parses a dd/mm/yyyy string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected dd/mm/yyyy", ErrValidation, s)
	}
	return d, nil
}

// FormatDate renders a date back into the dd/mm/yyyy boundary format.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}
