package metrics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LiquidityBreakdown groups positive account balances into four tiers by how
// quickly they could be converted to cash without penalty.
type LiquidityBreakdown struct {
	HighlyLiquid decimal.Decimal `json:"highly_liquid"` // checking, savings
	Liquid       decimal.Decimal `json:"liquid"`        // brokerage investments
	SemiLiquid   decimal.Decimal `json:"semi_liquid"`   // 401k/IRA, penalty to access
	Illiquid     decimal.Decimal `json:"illiquid"`      // real estate, vehicles, mortgage equity
}

// FinancialMetrics is the complete derived snapshot for one customer. All
// monetary values are plain decimals in the currency unit of the input
// balances; ratios are percentages in [0, 100]. A FinancialMetrics value is
// created fresh on each computation and never mutated afterwards.
type FinancialMetrics struct {
	CustomerID  uuid.UUID `json:"customer_id"`
	DataVersion string    `json:"data_version"`
	ComputedAt  time.Time `json:"computed_at"`

	MonthlyIncome       decimal.Decimal `json:"monthly_income"`        // trailing 3-month average
	MonthlySpending     decimal.Decimal `json:"monthly_spending"`      // trailing month, transfers and debt principal excluded
	MonthlyDebtPayments decimal.Decimal `json:"monthly_debt_payments"` // trailing month
	SavingsRate         decimal.Decimal `json:"savings_rate"`
	DebtToIncomeRatio   decimal.Decimal `json:"debt_to_income_ratio"`
	CreditUtilization   decimal.Decimal `json:"credit_utilization"`
	CreditScore         int             `json:"credit_score"` // heuristic, always in [300, 850]
	EmergencyFundMonths decimal.Decimal `json:"emergency_fund_months"`

	NetWorth           decimal.Decimal `json:"net_worth"` // TotalAssets - TotalLiabilities, exact
	TotalAssets        decimal.Decimal `json:"total_assets"`
	TotalLiabilities   decimal.Decimal `json:"total_liabilities"`
	LiquidAssets       decimal.Decimal `json:"liquid_assets"`
	AccessibleNetWorth decimal.Decimal `json:"accessible_net_worth"` // after penalties and taxes

	IncomeByCategory       map[string]decimal.Decimal `json:"income_by_category"`
	SpendingByCategory     map[string]decimal.Decimal `json:"spending_by_category"`
	DebtPaymentsByCategory map[string]decimal.Decimal `json:"debt_payments_by_category"`

	Liquidity LiquidityBreakdown `json:"liquidity"`
}
