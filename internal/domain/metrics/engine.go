package metrics

import (
	"strings"
	"time"

	"github.com/finwell/engine/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	decimalThree   = decimal.NewFromInt(3)
	decimalHundred = decimal.NewFromInt(100)
)

// Trailing windows used by the aggregates.
const (
	incomeWindowMonths   = 3
	spendingWindowMonths = 1
)

// Engine derives a FinancialMetrics snapshot from one customer's record set.
// It is a plain value scoped to one request: purely synchronous, no I/O, no
// shared state. The snapshot is treated as immutable for the lifetime of the
// engine. Transaction direction is decided by the Debit flag alone; the
// signed amount is derived from it at the ingestion boundary, so the two can
// never be consulted inconsistently here.
type Engine struct {
	snap   *ledger.Snapshot
	scorer CreditScorer
	now    func() time.Time
	names  map[uuid.UUID]ledger.CategoryName
}

// EngineOption is a functional option for configuring an Engine
type EngineOption func(*Engine)

// WithClock sets the reference clock for trailing windows and account ages.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithCreditScorer replaces the default credit scoring strategy.
func WithCreditScorer(s CreditScorer) EngineOption {
	return func(e *Engine) {
		e.scorer = s
	}
}

// NewEngine creates an engine bound to one snapshot.
func NewEngine(snap *ledger.Snapshot, opts ...EngineOption) *Engine {
	e := &Engine{
		snap:   snap,
		scorer: NewBureauApproximation(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.names = snap.CategoryNames()
	return e
}

// Calculate computes the complete metrics snapshot. It never fails: missing
// data and degenerate divisors (zero income, zero spending, zero credit
// limit) degrade the affected metric to zero, since a financial dashboard
// must always render something.
func (e *Engine) Calculate() *FinancialMetrics {
	now := e.now()

	income, incomeBy := e.monthlyIncome(now)
	spending, spendingBy := e.monthlySpending(now)
	debt, debtBy := e.monthlyDebtPayments(now)
	assets, liabilities := e.assetsAndLiabilities(now)
	utilization := e.creditUtilization()

	return &FinancialMetrics{
		CustomerID:  e.snap.Customer.ID,
		DataVersion: e.snap.Version,
		ComputedAt:  now,

		MonthlyIncome:       income,
		MonthlySpending:     spending,
		MonthlyDebtPayments: debt,
		SavingsRate:         ratioPercent(e.savedToSavings(now), income),
		DebtToIncomeRatio:   ratioPercent(debt, income),
		CreditUtilization:   utilization,
		CreditScore:         e.scorer.Score(e.scoringInput(now, utilization)),
		EmergencyFundMonths: e.emergencyFundMonths(spending),

		NetWorth:           assets.Sub(liabilities),
		TotalAssets:        assets,
		TotalLiabilities:   liabilities,
		LiquidAssets:       e.liquidAssets(),
		AccessibleNetWorth: e.accessibleNetWorth(now),

		IncomeByCategory:       incomeBy,
		SpendingByCategory:     spendingBy,
		DebtPaymentsByCategory: debtBy,

		Liquidity: e.liquidityBreakdown(),
	}
}

// categoryName resolves a transaction's category. The second return is false
// for uncategorized transactions, which are excluded from every
// category-specific sum.
func (e *Engine) categoryName(t *ledger.Transaction) (ledger.CategoryName, bool) {
	name, ok := e.names[t.CategoryID]
	return name, ok
}

// monthlyIncome averages income-category credits over the trailing three
// months. The three-month average smooths irregular pay cycles and gig
// income. The breakdown map carries the raw three-month sums per category.
func (e *Engine) monthlyIncome(now time.Time) (decimal.Decimal, map[string]decimal.Decimal) {
	from := now.AddDate(0, -incomeWindowMonths, 0)
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for i := range e.snap.Transactions {
		t := &e.snap.Transactions[i]
		if t.Debit || !t.Within(from, now) {
			continue
		}
		name, ok := e.categoryName(t)
		if !ok || !name.IsIncome() {
			continue
		}
		total = total.Add(t.Magnitude())
		byCategory[name.String()] = byCategory[name.String()].Add(t.Magnitude())
	}
	return total.Div(decimalThree), byCategory
}

// monthlySpending sums trailing-month debits, excluding transfers and debt
// principal so money that is saved or pays down debt is not double-counted
// as consumption. Uncategorized debits count toward the total but not
// toward the breakdown.
func (e *Engine) monthlySpending(now time.Time) (decimal.Decimal, map[string]decimal.Decimal) {
	from := now.AddDate(0, -spendingWindowMonths, 0)
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for i := range e.snap.Transactions {
		t := &e.snap.Transactions[i]
		if !t.Debit || !t.Within(from, now) {
			continue
		}
		name, ok := e.categoryName(t)
		if ok && name.ExcludedFromSpending() {
			continue
		}
		total = total.Add(t.Magnitude())
		if ok {
			byCategory[name.String()] = byCategory[name.String()].Add(t.Magnitude())
		}
	}
	return total, byCategory
}

// monthlyDebtPayments sums trailing-month debt service debits.
func (e *Engine) monthlyDebtPayments(now time.Time) (decimal.Decimal, map[string]decimal.Decimal) {
	from := now.AddDate(0, -spendingWindowMonths, 0)
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for i := range e.snap.Transactions {
		t := &e.snap.Transactions[i]
		if !t.Debit || !t.Within(from, now) {
			continue
		}
		name, ok := e.categoryName(t)
		if !ok || !name.IsDebtPayment() {
			continue
		}
		total = total.Add(t.Magnitude())
		byCategory[name.String()] = byCategory[name.String()].Add(t.Magnitude())
	}
	return total, byCategory
}

// savedToSavings sums trailing-month transfer debits whose description
// mentions savings. This is the numerator of the savings rate.
func (e *Engine) savedToSavings(now time.Time) decimal.Decimal {
	from := now.AddDate(0, -spendingWindowMonths, 0)
	total := decimal.Zero
	for i := range e.snap.Transactions {
		t := &e.snap.Transactions[i]
		if !t.Debit || !t.Within(from, now) {
			continue
		}
		name, ok := e.categoryName(t)
		if !ok || !name.IsTransfer() {
			continue
		}
		if !strings.Contains(strings.ToLower(t.Description), "savings") {
			continue
		}
		total = total.Add(t.Magnitude())
	}
	return total
}

// creditUtilization computes sum(|balance|) / sum(credit_limit) over
// credit cards, as a percentage. Zero without cards or limits.
func (e *Engine) creditUtilization() decimal.Decimal {
	totalBalance := decimal.Zero
	totalLimit := decimal.Zero
	for i := range e.snap.Accounts {
		a := &e.snap.Accounts[i]
		if a.Kind != ledger.AccountKindCreditCard {
			continue
		}
		totalBalance = totalBalance.Add(a.Balance.Abs())
		totalLimit = totalLimit.Add(a.CreditLimit)
	}
	return ratioPercent(totalBalance, totalLimit)
}

// scoringInput assembles the raw facts for the credit scorer.
func (e *Engine) scoringInput(now time.Time, utilization decimal.Decimal) ScoringInput {
	in := ScoringInput{
		// The record set carries no due dates to compare bill payments
		// against, so payment history is assumed clean.
		OnTimeFraction: 1,
	}
	in.Utilization, _ = utilization.Float64()

	var oldestCard time.Time
	kinds := make(map[ledger.AccountKind]struct{})
	for i := range e.snap.Accounts {
		a := &e.snap.Accounts[i]
		switch a.Kind {
		case ledger.AccountKindCreditCard, ledger.AccountKindMortgage,
			ledger.AccountKindAutoLoan, ledger.AccountKindStudentLoan:
			kinds[a.Kind] = struct{}{}
		}
		if a.Kind == ledger.AccountKindCreditCard {
			if !in.HasCreditCard || a.CreatedAt.Before(oldestCard) {
				oldestCard = a.CreatedAt
			}
			in.HasCreditCard = true
		}
	}
	if in.HasCreditCard {
		in.OldestCardAgeYears = now.Sub(oldestCard).Hours() / 24 / 365.25
	}
	in.ReferenceKindsPresent = len(kinds)
	return in
}

// emergencyFundMonths divides savings balances (floored at zero per
// account) by monthly spending.
func (e *Engine) emergencyFundMonths(spending decimal.Decimal) decimal.Decimal {
	savings := decimal.Zero
	for i := range e.snap.Accounts {
		a := &e.snap.Accounts[i]
		if a.Kind == ledger.AccountKindSavings && a.Balance.IsPositive() {
			savings = savings.Add(a.Balance)
		}
	}
	if !spending.IsPositive() {
		return decimal.Zero
	}
	return savings.Div(spending)
}

// assetsAndLiabilities folds every depreciation-adjusted balance into the
// asset or liability total by sign.
func (e *Engine) assetsAndLiabilities(now time.Time) (assets, liabilities decimal.Decimal) {
	for i := range e.snap.Accounts {
		a := &e.snap.Accounts[i]
		adjusted := DepreciatedValue(a, now)
		if adjusted.IsNegative() {
			liabilities = liabilities.Add(adjusted.Abs())
		} else {
			assets = assets.Add(adjusted)
		}
	}
	return assets, liabilities
}

// liquidAssets sums positive checking, savings and investment balances,
// excluding real-estate-tagged accounts.
func (e *Engine) liquidAssets() decimal.Decimal {
	total := decimal.Zero
	for i := range e.snap.Accounts {
		a := &e.snap.Accounts[i]
		switch a.Kind {
		case ledger.AccountKindChecking, ledger.AccountKindSavings, ledger.AccountKindInvestment:
		default:
			continue
		}
		if !a.Balance.IsPositive() || IsRealEstate(a) {
			continue
		}
		total = total.Add(a.Balance)
	}
	return total
}

// accessibleNetWorth sums depreciation-adjusted balances after the
// penalties and taxes a liquidation today would incur. It represents what
// the customer could actually realize, not the nominal balances.
func (e *Engine) accessibleNetWorth(now time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := range e.snap.Accounts {
		a := &e.snap.Accounts[i]
		adjusted := DepreciatedValue(a, now)
		total = total.Add(AccessibleValue(a, adjusted, e.snap.Customer.Age))
	}
	return total
}

// liquidityBreakdown buckets positive balances into the four tiers.
func (e *Engine) liquidityBreakdown() LiquidityBreakdown {
	var b LiquidityBreakdown
	for i := range e.snap.Accounts {
		a := &e.snap.Accounts[i]
		if !a.Balance.IsPositive() {
			continue
		}
		switch ClassifyLiquidity(a) {
		case TierHighlyLiquid:
			b.HighlyLiquid = b.HighlyLiquid.Add(a.Balance)
		case TierLiquid:
			b.Liquid = b.Liquid.Add(a.Balance)
		case TierSemiLiquid:
			b.SemiLiquid = b.SemiLiquid.Add(a.Balance)
		case TierIlliquid:
			b.Illiquid = b.Illiquid.Add(a.Balance)
		}
	}
	return b
}

// ratioPercent returns num/den*100, or zero when the divisor is not
// positive.
func ratioPercent(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return num.Div(den).Mul(decimalHundred)
}
