package bre

import (
	"math"

	"prequal/internal/catalog"
)

// Approval probability floors. Width is shared: probabilities draw from
// [floor, floor+approvalWidth).
const (
	pqApprovalFloor       = 70
	fallbackApprovalFloor = 60
	approvalWidth         = 25
)

// incomeMultiple caps the offered amount at a multiple of monthly income.
const incomeMultiple = 10

// tenureStepMonths spaces the offered tenure options.
const tenureStepMonths = 12

// terms are the synthesized display terms for an eligible lender. Cosmetic
// randomization only: eligibility is already decided when these are drawn.
type terms struct {
	Rate                float64
	MaxAmount           float64
	ProcessingFee       float64
	TenureMonths        []int
	ApprovalProbability int
}

// synthesizeTerms draws offer terms from the policy's ranges. Rate is uniform
// over [RateMin, RateMax) at whole-point granularity; approval probability
// over [floor, floor+25).
func (e *Engine) synthesizeTerms(pol catalog.LenderPolicy, monthlyIncome float64, approvalFloor int) terms {
	e.mu.Lock()
	rateOffset := math.Floor(e.rng.Float64() * (pol.RateMax - pol.RateMin))
	probability := approvalFloor + e.rng.Intn(approvalWidth)
	e.mu.Unlock()

	return terms{
		Rate:                pol.RateMin + rateOffset,
		MaxAmount:           math.Min(pol.AmountMax, monthlyIncome*incomeMultiple),
		ProcessingFee:       math.Round(pol.RateMin * monthlyIncome / 100),
		TenureMonths:        tenureOptions(pol.TenureMinMonths, pol.TenureMaxMonths),
		ApprovalProbability: probability,
	}
}

func tenureOptions(min, max int) []int {
	var out []int
	for t := min; t <= max; t += tenureStepMonths {
		out = append(out, t)
	}
	return out
}
