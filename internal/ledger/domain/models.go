package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a checking account ("conta corrente").
// Maps to table contas_correntes.
type Account struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	Branch    Branch          `gorm:"column:agencia;type:smallint;not null"`
	Bank      Bank            `gorm:"column:banco;type:smallint;not null"`
	Holder    string          `gorm:"column:titular;type:varchar(100);not null"`
	Balance   decimal.Decimal `gorm:"column:saldo;type:decimal(14,2);not null;default:0"`
	Active    bool            `gorm:"column:situacao;not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Account) TableName() string {
	return "contas_correntes"
}

// Entry is a single dated, typed monetary movement against an account
// ("lancamento"). Amount is always a positive magnitude; the type decides
// whether it credits or debits the balance. Maps to table lancamentos.
type Entry struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	Memo      string          `gorm:"column:observacao;type:varchar(200);not null"`
	Amount    decimal.Decimal `gorm:"column:valor;type:decimal(14,2);not null"`
	Date      time.Time       `gorm:"column:data;type:date;not null"`
	Type      EntryType       `gorm:"column:tipo;type:smallint;not null"`
	AccountID int64           `gorm:"column:id_conta_corrente;not null;index"`
	CreatedAt time.Time
}

func (Entry) TableName() string {
	return "lancamentos"
}

// SignedAmount applies the type's sign to the stored magnitude.
func (e *Entry) SignedAmount() (decimal.Decimal, error) {
	sign, err := e.Type.Sign()
	if err != nil {
		return decimal.Zero, err
	}
	return e.Amount.Mul(decimal.NewFromInt(sign)), nil
}
