package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountKind represents the kind of a financial account
type AccountKind string

const (
	AccountKindChecking       AccountKind = "checking"
	AccountKindSavings        AccountKind = "savings"
	AccountKindCreditCard     AccountKind = "credit_card"
	AccountKindInvestment     AccountKind = "investment"
	AccountKindRetirement401k AccountKind = "retirement-401k"
	AccountKindRetirementIRA  AccountKind = "retirement-ira"
	AccountKindMortgage       AccountKind = "mortgage"
	AccountKindAutoLoan       AccountKind = "auto_loan"
	AccountKindStudentLoan    AccountKind = "student_loan"
	AccountKindOther          AccountKind = "other"
)

// IsValid checks if the kind is a valid AccountKind
func (k AccountKind) IsValid() bool {
	switch k {
	case AccountKindChecking, AccountKindSavings, AccountKindCreditCard,
		AccountKindInvestment, AccountKindRetirement401k, AccountKindRetirementIRA,
		AccountKindMortgage, AccountKindAutoLoan, AccountKindStudentLoan,
		AccountKindOther:
		return true
	}
	return false
}

// String returns the string representation of AccountKind
func (k AccountKind) String() string {
	return string(k)
}

// IsRetirement reports whether the kind is a tax-advantaged retirement
// account, accessible before 59.5 only with a penalty.
func (k AccountKind) IsRetirement() bool {
	return k == AccountKindRetirement401k || k == AccountKindRetirementIRA
}

// Account is a point-in-time snapshot of one financial account.
// Balance follows the sign convention positive = asset-like,
// negative = liability-like. CreditLimit is meaningful only for
// credit_card accounts. The engine never mutates an Account.
type Account struct {
	ID          uuid.UUID       `json:"id" validate:"required"`
	CustomerID  uuid.UUID       `json:"customer_id" validate:"required"`
	Institution string          `json:"institution"`
	Kind        AccountKind     `json:"kind" validate:"required"`
	Balance     decimal.Decimal `json:"balance"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	CreatedAt   time.Time       `json:"created_at" validate:"required"`
}

// AgeYears returns the account age in fractional years at the given instant.
func (a *Account) AgeYears(now time.Time) float64 {
	if now.Before(a.CreatedAt) {
		return 0
	}
	return now.Sub(a.CreatedAt).Hours() / 24 / 365.25
}
