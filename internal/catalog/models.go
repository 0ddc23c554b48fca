// Package catalog holds the static lender reference data: eligibility
// policies and pre-approved offers. Policies are loaded once and immutable
// during an evaluation run.
package catalog

import (
	"fmt"
	"time"

	id "prequal/pkg/domain"
	dErrors "prequal/pkg/domain-errors"
)

// LenderPolicy is one lender's underwriting thresholds and offer ranges.
type LenderPolicy struct {
	ID              id.LenderID
	Name            string
	AcceptsNTC      bool
	MinScore        int
	MinIncome       float64
	DPDAllowed12M   int
	Enquiries3MCap  int
	FOIRCap         float64
	AmountMin       float64
	AmountMax       float64
	TenureMinMonths int
	TenureMaxMonths int
	RateMin         float64
	RateMax         float64
	// Priority orders catalog listings; lower sorts first on rate ties.
	Priority        int
	Icon            string
	Color           string
	EmploymentTypes []string
}

// Validate enforces policy invariants. A malformed policy is a programming or
// seeding defect, so violations surface as invariant errors rather than being
// coerced.
func (p LenderPolicy) Validate() error {
	switch {
	case p.ID == "":
		return dErrors.New(dErrors.CodeInvariantViolation, "lender policy missing id")
	case p.MinScore < 0 || p.MinIncome < 0 || p.DPDAllowed12M < 0 || p.Enquiries3MCap < 0:
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("lender %s: negative threshold", p.ID))
	case p.FOIRCap <= 0 || p.FOIRCap > 1:
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("lender %s: foir cap out of (0,1]", p.ID))
	case p.AmountMin > p.AmountMax:
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("lender %s: amount range inverted", p.ID))
	case p.TenureMinMonths > p.TenureMaxMonths:
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("lender %s: tenure range inverted", p.ID))
	case p.RateMin > p.RateMax:
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("lender %s: rate range inverted", p.ID))
	}
	return nil
}

// AcceptsEmployment reports whether the policy serves the employment type.
func (p LenderPolicy) AcceptsEmployment(employment string) bool {
	for _, e := range p.EmploymentTypes {
		if e == employment {
			return true
		}
	}
	return false
}

// PreApprovalOffer is a commercial commitment for one (phone, lender) pair.
// Its terms bypass gate evaluation entirely.
type PreApprovalOffer struct {
	Phone               id.Phone
	LenderID            id.LenderID
	Amount              float64
	Rate                float64
	ProcessingFee       float64
	TenureMonths        []int
	ApprovalProbability int
	Features            []string
	ValidUntil          time.Time
}

// Active reports whether the offer is unexpired as of now.
func (o PreApprovalOffer) Active(now time.Time) bool {
	return !o.ValidUntil.Before(now)
}
