// Package bre implements the lender eligibility rules engine.
//
// The decision path is pure domain logic - no I/O, no side effects. Offer term
// synthesis is the only randomized step and runs behind an injectable source
// so eligibility decisions stay deterministic under test.
package bre

// ReasonCode explains a failed gate to the caller and the end user.
type ReasonCode string

const (
	ReasonStaleScrub       ReasonCode = "STALE_SCRUB"
	ReasonNTCNotAccepted   ReasonCode = "NTC_NOT_ACCEPTED"
	ReasonLowScore         ReasonCode = "LOW_SCORE"
	ReasonDPDFail          ReasonCode = "DPD_FAIL"
	ReasonHighEnquiries    ReasonCode = "HIGH_ENQ_3M"
	ReasonLowIncome        ReasonCode = "LOW_INCOME"
	ReasonFOIRExceeded     ReasonCode = "FOIR_EXCEEDED"
	ReasonAmountOutOfRange ReasonCode = "OUT_OF_RANGE_AMOUNT"
	ReasonTenureOutOfRange ReasonCode = "OUT_OF_RANGE_TENURE"
)

// Gate is the result of one eligibility check. The gate list is ordered and
// rendered to the end user verbatim, which is why every rule goes through the
// same comparison primitive instead of bespoke checks.
type Gate struct {
	Name        string `json:"name"`
	Passed      bool   `json:"passed"`
	Description string `json:"description"`
	Reason      string `json:"reason,omitempty"`
}

// EvaluateGate is the single comparison primitive behind every rule: pass iff
// measured >= threshold. The description arrives already interpolated by the
// caller so boolean rules can map onto the same primitive as numeric ones.
func EvaluateGate(name string, measured, threshold float64, description string) Gate {
	passed := measured >= threshold
	g := Gate{Name: name, Passed: passed, Description: description}
	if !passed {
		g.Reason = name + " below threshold"
	}
	return g
}

// boolMeasure maps a boolean rule onto the numeric gate primitive.
func boolMeasure(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
