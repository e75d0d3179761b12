package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger entry. The record carries two direction
// signals: the signed Amount and the Debit flag. The canonical representation
// is the Debit flag plus an unsigned magnitude; NewTransaction derives the
// signed amount from them (debit => negative, credit => positive), so records
// built through the constructor can never carry disagreeing signals.
// Records built directly from upstream data should go through a
// SnapshotValidator, which reports any disagreement.
type Transaction struct {
	ID           uuid.UUID       `json:"id" validate:"required"`
	AccountID    uuid.UUID       `json:"account_id" validate:"required"`
	Date         time.Time       `json:"date" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	CategoryID   uuid.UUID       `json:"category_id"`
	Debit        bool            `json:"debit"`
	Bill         bool            `json:"bill"`
	Subscription bool            `json:"subscription"`
}

// NewTransaction creates a transaction from an unsigned magnitude and a
// direction. The signed Amount is derived from the Debit flag.
func NewTransaction(id, accountID uuid.UUID, date time.Time, magnitude decimal.Decimal, debit bool, description string, categoryID uuid.UUID) Transaction {
	amount := magnitude.Abs()
	if debit {
		amount = amount.Neg()
	}
	return Transaction{
		ID:          id,
		AccountID:   accountID,
		Date:        date,
		Amount:      amount,
		Description: description,
		CategoryID:  categoryID,
		Debit:       debit,
	}
}

// Magnitude returns the unsigned transaction amount.
func (t *Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}

// DirectionConsistent reports whether the signed amount agrees with the
// debit flag. A zero amount is consistent with either direction.
func (t *Transaction) DirectionConsistent() bool {
	if t.Amount.IsZero() {
		return true
	}
	if t.Debit {
		return t.Amount.IsNegative()
	}
	return t.Amount.IsPositive()
}

// Within reports whether the transaction date falls inside (from, to].
func (t *Transaction) Within(from, to time.Time) bool {
	return t.Date.After(from) && !t.Date.After(to)
}
