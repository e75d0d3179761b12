package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTransactionDerivesSignedAmount(t *testing.T) {
	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("debit stores a negative amount", func(t *testing.T) {
		tx := NewTransaction(uuid.New(), uuid.New(), date, decimal.NewFromInt(250), true, "market", uuid.New())
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(-250)))
		assert.True(t, tx.Magnitude().Equal(decimal.NewFromInt(250)))
		assert.True(t, tx.DirectionConsistent())
	})

	t.Run("credit stores a positive amount", func(t *testing.T) {
		tx := NewTransaction(uuid.New(), uuid.New(), date, decimal.NewFromInt(3000), false, "payroll", uuid.New())
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(3000)))
		assert.True(t, tx.DirectionConsistent())
	})

	t.Run("a signed magnitude is normalized", func(t *testing.T) {
		tx := NewTransaction(uuid.New(), uuid.New(), date, decimal.NewFromInt(-90), true, "fee", uuid.New())
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(-90)))
	})
}

func TestDirectionConsistent(t *testing.T) {
	assert.False(t, (&Transaction{Amount: decimal.NewFromInt(50), Debit: true}).DirectionConsistent())
	assert.False(t, (&Transaction{Amount: decimal.NewFromInt(-50), Debit: false}).DirectionConsistent())
	assert.True(t, (&Transaction{Amount: decimal.Zero, Debit: true}).DirectionConsistent())
}

func TestWithin(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	from := now.AddDate(0, -1, 0)

	inside := Transaction{Date: now.AddDate(0, 0, -5)}
	boundary := Transaction{Date: from}
	outside := Transaction{Date: now.AddDate(0, 0, 5)}

	assert.True(t, inside.Within(from, now))
	assert.False(t, boundary.Within(from, now), "window is half-open")
	assert.False(t, outside.Within(from, now))
}
