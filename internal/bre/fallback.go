package bre

import (
	"prequal/internal/catalog"
)

// Fallback age window for bureau-independent eligibility.
const (
	fallbackMinAge = 21
	fallbackMaxAge = 65
)

// FallbackApplicant carries the basic self-reported fields used when no
// bureau profile exists.
type FallbackApplicant struct {
	MonthlyIncome float64
	Employment    string
	Pincode       string
	Age           int
}

// EvaluateFallback applies the reduced, bureau-independent rule set: income,
// age window, employment type. The granular gate sequence deliberately does
// not run - bureau-derived fields are unavailable - so gates and reason codes
// stay empty either way.
func (e *Engine) EvaluateFallback(a FallbackApplicant, policy catalog.LenderPolicy) (Evaluation, error) {
	if err := policy.Validate(); err != nil {
		return Evaluation{}, err
	}

	eligible := a.MonthlyIncome >= policy.MinIncome &&
		a.Age >= fallbackMinAge && a.Age <= fallbackMaxAge &&
		policy.AcceptsEmployment(a.Employment)

	ev := Evaluation{
		LenderID:    policy.ID,
		LenderName:  policy.Name,
		Eligible:    eligible,
		Icon:        policy.Icon,
		Color:       policy.Color,
		Badge:       BadgeNotEligible,
		Features:    []string{},
		Gates:       []Gate{},
		ReasonCodes: []ReasonCode{},
		priority:    policy.Priority,
	}

	if eligible {
		t := e.synthesizeTerms(policy, a.MonthlyIncome, fallbackApprovalFloor)
		ev.Rate = &t.Rate
		ev.MaxAmount = &t.MaxAmount
		ev.ProcessingFee = &t.ProcessingFee
		ev.TenureMonths = t.TenureMonths
		ev.ApprovalProbability = t.ApprovalProbability
		ev.Badge = BadgePreQualified
		ev.Features = []string{"Based on basic information", "Subject to verification", "Quick approval"}
		e.metrics.IncrementOutcome(policy.ID.String(), "fallback_prequalified")
	} else {
		e.metrics.IncrementOutcome(policy.ID.String(), "fallback_ineligible")
	}
	return ev, nil
}
