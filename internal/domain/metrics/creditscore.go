package metrics

// ScoringInput carries the raw facts the engine extracts from a snapshot for
// credit scoring. The scorer owns all weights and thresholds.
type ScoringInput struct {
	// Utilization is the credit utilization percentage in [0, 100].
	Utilization float64
	// OnTimeFraction is the fraction of bill payments made on time, in
	// [0, 1]. Without due-date data to compare against, providers pass 1.
	OnTimeFraction float64
	// HasCreditCard reports whether any credit_card account exists.
	HasCreditCard bool
	// OldestCardAgeYears is the age of the oldest credit card in fractional
	// years. Meaningless when HasCreditCard is false.
	OldestCardAgeYears float64
	// ReferenceKindsPresent counts how many of the four reference account
	// kinds (credit_card, mortgage, auto_loan, student_loan) appear among
	// the customer's accounts.
	ReferenceKindsPresent int
}

// CreditScorer approximates a credit score from snapshot facts. The weights
// behind any implementation are product-level business rules, not a bureau
// model, so callers can swap implementations without touching aggregation.
type CreditScorer interface {
	Score(in ScoringInput) int
}

// Score bounds shared by every scorer.
const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

// BureauApproximation is the default scorer: start from the maximum and
// subtract weighted penalties for payment history (35%), utilization (30%),
// credit age (15%) and credit mix (10%). The new-credit factor (10%) is
// reserved and always zero without inquiry data. Fields are exported so the
// weights can be tuned per product.
type BureauApproximation struct {
	PaymentHistoryMax    float64 // max deduction, default 297.5
	UtilizationMax       float64 // max deduction, default 255
	UtilizationThreshold float64 // percentage above which deductions start
	UtilizationSlope     float64 // deduction per percentage point over threshold
	CreditAgeTargetYears float64 // age at which the deduction reaches zero
	CreditAgePerYear     float64 // deduction per missing year
	CreditMixMax         float64 // max deduction, default 85
	ReferenceKindCount   int     // kinds considered for mix, default 4
}

// NewBureauApproximation returns a scorer with the default weights.
func NewBureauApproximation() *BureauApproximation {
	return &BureauApproximation{
		PaymentHistoryMax:    297.5,
		UtilizationMax:       255,
		UtilizationThreshold: 30,
		UtilizationSlope:     3,
		CreditAgeTargetYears: 7,
		CreditAgePerYear:     18,
		CreditMixMax:         85,
		ReferenceKindCount:   4,
	}
}

// Score implements CreditScorer.
func (b *BureauApproximation) Score(in ScoringInput) int {
	score := float64(MaxCreditScore)

	onTime := in.OnTimeFraction
	if onTime < 0 {
		onTime = 0
	}
	if onTime > 1 {
		onTime = 1
	}
	score -= (1 - onTime) * b.PaymentHistoryMax

	if in.Utilization > b.UtilizationThreshold {
		deduction := (in.Utilization - b.UtilizationThreshold) * b.UtilizationSlope
		if deduction > b.UtilizationMax {
			deduction = b.UtilizationMax
		}
		score -= deduction
	}

	if in.HasCreditCard && in.OldestCardAgeYears < b.CreditAgeTargetYears {
		score -= (b.CreditAgeTargetYears - in.OldestCardAgeYears) * b.CreditAgePerYear
	}

	present := in.ReferenceKindsPresent
	if present > b.ReferenceKindCount {
		present = b.ReferenceKindCount
	}
	mixFraction := float64(present) / float64(b.ReferenceKindCount)
	score -= (1 - mixFraction) * b.CreditMixMax

	if score < MinCreditScore {
		return MinCreditScore
	}
	if score > MaxCreditScore {
		return MaxCreditScore
	}
	return int(score)
}
