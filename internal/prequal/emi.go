package prequal

import "math"

// Indicative EMI quote parameters for the summary block.
const (
	emiQuotePrincipal = 50000.0
	emiQuoteMonths    = 36
)

// EstimateEMI computes the standard amortized monthly installment for a
// principal at an annual percentage rate over the given tenure, rounded to
// two decimals. A zero rate degrades to straight-line repayment.
func EstimateEMI(principal, annualRatePct float64, months int) float64 {
	if principal <= 0 || months <= 0 {
		return 0
	}
	if annualRatePct == 0 {
		return round2(principal / float64(months))
	}
	r := annualRatePct / 100 / 12
	emi := principal * r / (1 - math.Pow(1+r, -float64(months)))
	return round2(emi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
