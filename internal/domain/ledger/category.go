package ledger

import "github.com/google/uuid"

// CategoryName is the semantic name of a transaction category. The engine
// classifies transactions purely by this string; names outside the known
// vocabulary are allowed and treated as ordinary spending categories.
type CategoryName string

const (
	CategorySalary            CategoryName = "salary"
	CategoryGigIncome         CategoryName = "gig_income"
	CategoryDividend          CategoryName = "dividend"
	CategoryInterest          CategoryName = "interest"
	CategoryTransfer          CategoryName = "transfer"
	CategoryBrokerageTransfer CategoryName = "brokerage_transfer"
	CategoryMortgagePayment   CategoryName = "mortgage_payment"
	CategoryStudentLoan       CategoryName = "student_loan"
	CategoryCreditCardPayment CategoryName = "credit_card_payment"
	CategoryAutoLoanPrincipal CategoryName = "auto_loan_principal"
)

// String returns the string representation of CategoryName
func (n CategoryName) String() string {
	return string(n)
}

// IsIncome reports whether the category counts toward monthly income.
func (n CategoryName) IsIncome() bool {
	switch n {
	case CategorySalary, CategoryGigIncome, CategoryDividend, CategoryInterest:
		return true
	}
	return false
}

// IsDebtPayment reports whether the category is a debt service payment.
func (n CategoryName) IsDebtPayment() bool {
	switch n {
	case CategoryMortgagePayment, CategoryStudentLoan,
		CategoryCreditCardPayment, CategoryAutoLoanPrincipal:
		return true
	}
	return false
}

// IsTransfer reports whether the category moves money between the
// customer's own accounts rather than consuming it.
func (n CategoryName) IsTransfer() bool {
	return n == CategoryTransfer || n == CategoryBrokerageTransfer
}

// ExcludedFromSpending reports whether the category is excluded from the
// monthly spending aggregate. Transfers and debt principal are excluded so
// that money saved or used to pay down debt is not counted as consumed.
func (n CategoryName) ExcludedFromSpending() bool {
	return n.IsTransfer() || n.IsDebtPayment()
}

// Category links a category id to its semantic name.
type Category struct {
	ID   uuid.UUID    `json:"id" validate:"required"`
	Name CategoryName `json:"name" validate:"required"`
}
