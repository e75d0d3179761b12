package metrics

import (
	"math"
	"strings"
	"time"

	"github.com/finwell/engine/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// LiquidityTier indicates how quickly an asset could be converted to cash
// without penalty.
type LiquidityTier string

const (
	TierHighlyLiquid LiquidityTier = "highly_liquid"
	TierLiquid       LiquidityTier = "liquid"
	TierSemiLiquid   LiquidityTier = "semi_liquid"
	TierIlliquid     LiquidityTier = "illiquid"
)

// First-year and subsequent-year declining-balance depreciation rates for
// vehicles.
const (
	firstYearDepreciation = 0.20
	laterYearDepreciation = 0.15
)

// Retirement accessibility adjustments applied when estimating what a
// customer could realize today.
var (
	earlyWithdrawalPenaltyFactor = decimal.NewFromFloat(0.90) // 10% penalty under 59.5
	retirementTaxFactor          = decimal.NewFromFloat(0.75) // 25% flat tax
)

// retirementPenaltyAgeCutoff is the age at which retirement accounts become
// accessible without the early-withdrawal penalty.
const retirementPenaltyAgeCutoff = 59.5

// IsVehicle reports whether the account represents an automobile, either by
// kind or by an institution-name hint.
func IsVehicle(a *ledger.Account) bool {
	if a.Kind == ledger.AccountKindAutoLoan {
		return true
	}
	inst := strings.ToLower(a.Institution)
	return strings.Contains(inst, "auto") ||
		strings.Contains(inst, "car") ||
		strings.Contains(inst, "vehicle")
}

// IsRealEstate reports whether the institution name suggests real estate.
func IsRealEstate(a *ledger.Account) bool {
	inst := strings.ToLower(a.Institution)
	return strings.Contains(inst, "real estate") ||
		strings.Contains(inst, "realty") ||
		strings.Contains(inst, "property")
}

// DepreciatedValue returns the account balance adjusted for vehicle
// depreciation at the given instant. Non-vehicle accounts and
// liability-side balances pass through unchanged; loan principal owed on a
// vehicle does not shrink with the vehicle's market value. For a vehicle
// asset of age a years: balance * (1 - 0.20*a) under one year, then
// balance * 0.80 * 0.85^(a-1), floored at zero. The result is monotonically
// non-increasing in age.
func DepreciatedValue(a *ledger.Account, now time.Time) decimal.Decimal {
	if !IsVehicle(a) || !a.Balance.IsPositive() {
		return a.Balance
	}
	age := a.AgeYears(now)
	var factor float64
	if age < 1 {
		factor = 1 - firstYearDepreciation*age
	} else {
		factor = (1 - firstYearDepreciation) * math.Pow(1-laterYearDepreciation, age-1)
	}
	if factor < 0 {
		factor = 0
	}
	value := a.Balance.Mul(decimal.NewFromFloat(factor))
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}

// ClassifyLiquidity assigns an account with a positive balance to exactly
// one liquidity tier. Investment accounts tagged as real estate or vehicles
// are reclassified as illiquid; kinds with no defined tier (positive
// credit-card or loan balances, "other") are treated as illiquid as the
// conservative default.
func ClassifyLiquidity(a *ledger.Account) LiquidityTier {
	switch a.Kind {
	case ledger.AccountKindChecking, ledger.AccountKindSavings:
		return TierHighlyLiquid
	case ledger.AccountKindInvestment:
		if IsRealEstate(a) || IsVehicle(a) {
			return TierIlliquid
		}
		return TierLiquid
	case ledger.AccountKindRetirement401k, ledger.AccountKindRetirementIRA:
		return TierSemiLiquid
	default:
		return TierIlliquid
	}
}

// AccessibleValue adjusts a depreciation-corrected balance for the taxes and
// penalties the customer would incur liquidating it today. Retirement
// balances take a 10% early-withdrawal penalty below age 59.5 and a flat
// 25% tax in all cases; everything else is already accessible at face value.
func AccessibleValue(a *ledger.Account, adjusted decimal.Decimal, customerAge int) decimal.Decimal {
	if !a.Kind.IsRetirement() {
		return adjusted
	}
	v := adjusted
	if float64(customerAge) < retirementPenaltyAgeCutoff {
		v = v.Mul(earlyWithdrawalPenaltyFactor)
	}
	return v.Mul(retirementTaxFactor)
}
