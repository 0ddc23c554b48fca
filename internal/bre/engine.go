package bre

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"prequal/internal/bre/metrics"
	"prequal/internal/bureau"
	"prequal/internal/catalog"
	id "prequal/pkg/domain"
)

// Badges shown against each lender in the offer list.
const (
	BadgePreApproved  = "Pre-Approved"
	BadgePreQualified = "Pre-Qualified"
	BadgeNotEligible  = "Not Eligible"
)

// reasonMultipleFailed is the display reason when gates failed without a
// recorded code (should not happen; kept as a guard for display).
const reasonMultipleFailed = "Multiple criteria failed"

// Evaluation is the engine's verdict for one lender.
type Evaluation struct {
	LenderID            id.LenderID  `json:"lender_id"`
	LenderName          string       `json:"lender_name"`
	Eligible            bool         `json:"eligible"`
	Preapproved         bool         `json:"preapproved"`
	Rate                *float64     `json:"roi"`
	MaxAmount           *float64     `json:"max_amount"`
	ProcessingFee       *float64     `json:"processing_fee"`
	TenureMonths        []int        `json:"tenure_available"`
	ApprovalProbability int          `json:"approval_probability"`
	Badge               string       `json:"badge"`
	Reason              string       `json:"reason,omitempty"`
	Icon                string       `json:"icon"`
	Color               string       `json:"color"`
	Features            []string     `json:"features"`
	Gates               []Gate       `json:"gates"`
	ReasonCodes         []ReasonCode `json:"reason_codes"`
	PAOverride          bool         `json:"pa_override"`

	// priority carries the policy's catalog order for rank tie-breaks.
	priority int
}

// Engine evaluates scrub profiles against lender policies. The goal is to keep
// the rules centralized and testable. Safe for concurrent use: the only
// mutable state is the random source, which is guarded.
type Engine struct {
	mu      sync.Mutex
	rng     *rand.Rand
	metrics *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces the term-synthesis random source; tests seed it.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New constructs an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// gateSpec is one named entry in the fixed gate order. Keeping the sequence an
// explicit list makes adding or removing gates a data change and keeps the
// "first reason code wins" display rule trivially testable.
type gateSpec struct {
	// applies reports whether the gate runs for this profile/policy pair;
	// nil means always.
	applies func(p *bureau.ScrubProfile, pol *catalog.LenderPolicy) bool
	run     func(p *bureau.ScrubProfile, pol *catalog.LenderPolicy) (Gate, []ReasonCode)
}

// gateSequence is the declared gate order. Gates run to completion even after
// a failure so the applicant sees every reason at once.
var gateSequence = []gateSpec{
	{run: freshnessGate},
	{applies: func(p *bureau.ScrubProfile, _ *catalog.LenderPolicy) bool { return p.NTC }, run: ntcGate},
	{
		// A nil score cannot be meaningfully thresholded, so new-to-credit
		// profiles never run the Score gate; the NTC gate above already
		// decides their fate.
		applies: func(p *bureau.ScrubProfile, _ *catalog.LenderPolicy) bool { return !p.NTC },
		run:     scoreGate,
	},
	{run: dpdGate},
	{run: enquiriesGate},
	{run: incomeGate},
	{run: foirGate},
	{run: rangeGate},
}

// Evaluate runs one lender through the gate sequence, applying the
// pre-approval override first. The profile must already be derived.
// Errors only on malformed policies, which are seeding defects.
func (e *Engine) Evaluate(profile bureau.ScrubProfile, policy catalog.LenderPolicy, pa *catalog.PreApprovalOffer) (Evaluation, error) {
	if err := policy.Validate(); err != nil {
		return Evaluation{}, err
	}

	if pa != nil {
		ev := e.preApprovedEvaluation(policy, *pa)
		e.metrics.IncrementOutcome(policy.ID.String(), "preapproved")
		return ev, nil
	}

	gates, reasons := e.decide(&profile, &policy)

	eligible := true
	for _, g := range gates {
		if !g.Passed {
			eligible = false
			e.metrics.IncrementGateFailure(g.Name)
		}
	}

	ev := Evaluation{
		LenderID:    policy.ID,
		LenderName:  policy.Name,
		Eligible:    eligible,
		Icon:        policy.Icon,
		Color:       policy.Color,
		Gates:       gates,
		ReasonCodes: reasons,
		Badge:       BadgeNotEligible,
		Features:    []string{},
		priority:    policy.Priority,
	}

	if eligible {
		t := e.synthesizeTerms(policy, profile.MonthlyIncome, pqApprovalFloor)
		ev.Rate = &t.Rate
		ev.MaxAmount = &t.MaxAmount
		ev.ProcessingFee = &t.ProcessingFee
		ev.TenureMonths = t.TenureMonths
		ev.ApprovalProbability = t.ApprovalProbability
		ev.Badge = BadgePreQualified
		ev.Features = []string{"Quick approval", "Low documentation", "Flexible tenure"}
		e.metrics.IncrementOutcome(policy.ID.String(), "prequalified")
	} else {
		ev.Reason = reasonMultipleFailed
		if len(reasons) > 0 {
			ev.Reason = string(reasons[0])
		}
		e.metrics.IncrementOutcome(policy.ID.String(), "ineligible")
	}
	return ev, nil
}

// decide runs the gate sequence. Pure and deterministic: no randomness, no
// I/O. Reason codes accumulate in gate order, so the first element is the
// primary display reason.
func (e *Engine) decide(p *bureau.ScrubProfile, pol *catalog.LenderPolicy) ([]Gate, []ReasonCode) {
	var (
		gates   []Gate
		reasons []ReasonCode
	)
	for _, spec := range gateSequence {
		if spec.applies != nil && !spec.applies(p, pol) {
			continue
		}
		gate, codes := spec.run(p, pol)
		gates = append(gates, gate)
		reasons = append(reasons, codes...)
	}
	return gates, reasons
}

// preApprovedEvaluation copies the offer's terms verbatim. A pre-approved
// offer is a commercial commitment and must not be second-guessed by the
// generic rules, so no gate other than the synthetic override gate appears.
func (e *Engine) preApprovedEvaluation(policy catalog.LenderPolicy, pa catalog.PreApprovalOffer) Evaluation {
	rate, amount, fee := pa.Rate, pa.Amount, pa.ProcessingFee
	return Evaluation{
		LenderID:            policy.ID,
		LenderName:          policy.Name,
		Eligible:            true,
		Preapproved:         true,
		Rate:                &rate,
		MaxAmount:           &amount,
		ProcessingFee:       &fee,
		TenureMonths:        pa.TenureMonths,
		ApprovalProbability: pa.ApprovalProbability,
		Badge:               BadgePreApproved,
		Icon:                policy.Icon,
		Color:               policy.Color,
		Features:            pa.Features,
		Gates: []Gate{{
			Name:        "PA Override",
			Passed:      true,
			Description: "Pre-approved offer bypasses BRE evaluation",
		}},
		ReasonCodes: []ReasonCode{},
		PAOverride:  true,
		priority:    policy.Priority,
	}
}

func freshnessGate(p *bureau.ScrubProfile, _ *catalog.LenderPolicy) (Gate, []ReasonCode) {
	cmp := ">"
	if p.FreshnessOK {
		cmp = "<="
	}
	g := EvaluateGate("Freshness Check", boolMeasure(p.FreshnessOK), 1,
		fmt.Sprintf("Data freshness: %d days old %s 90 days", p.DaysSinceProcess, cmp))
	if !g.Passed {
		return g, []ReasonCode{ReasonStaleScrub}
	}
	return g, nil
}

func ntcGate(_ *bureau.ScrubProfile, pol *catalog.LenderPolicy) (Gate, []ReasonCode) {
	if !pol.AcceptsNTC {
		g := EvaluateGate("NTC Check", 0, 1, "NTC user but lender doesn't accept NTC")
		return g, []ReasonCode{ReasonNTCNotAccepted}
	}
	return EvaluateGate("NTC Check", 1, 1, "NTC user and lender accepts NTC"), nil
}

func scoreGate(p *bureau.ScrubProfile, pol *catalog.LenderPolicy) (Gate, []ReasonCode) {
	score := 0
	if p.Score != nil {
		score = *p.Score
	}
	cmp := "<"
	if score >= pol.MinScore {
		cmp = ">="
	}
	g := EvaluateGate("Score Check", float64(score), float64(pol.MinScore),
		fmt.Sprintf("Credit score: %d %s %d required", score, cmp, pol.MinScore))
	if !g.Passed {
		return g, []ReasonCode{ReasonLowScore}
	}
	return g, nil
}

func dpdGate(p *bureau.ScrubProfile, pol *catalog.LenderPolicy) (Gate, []ReasonCode) {
	ok := p.DPDL12M <= pol.DPDAllowed12M
	cmp := ">"
	if ok {
		cmp = "<="
	}
	g := EvaluateGate("DPD Check", boolMeasure(ok), 1,
		fmt.Sprintf("DPD: %d days past due %s %d allowed", p.DPDL12M, cmp, pol.DPDAllowed12M))
	if !g.Passed {
		return g, []ReasonCode{ReasonDPDFail}
	}
	return g, nil
}

func enquiriesGate(p *bureau.ScrubProfile, pol *catalog.LenderPolicy) (Gate, []ReasonCode) {
	ok := p.Enquiries3M <= pol.Enquiries3MCap
	cmp := ">"
	if ok {
		cmp = "<="
	}
	g := EvaluateGate("Enquiries Check", boolMeasure(ok), 1,
		fmt.Sprintf("Enquiries: %d %s %d cap", p.Enquiries3M, cmp, pol.Enquiries3MCap))
	if !g.Passed {
		return g, []ReasonCode{ReasonHighEnquiries}
	}
	return g, nil
}

func incomeGate(p *bureau.ScrubProfile, pol *catalog.LenderPolicy) (Gate, []ReasonCode) {
	cmp := "<"
	if p.MonthlyIncome >= pol.MinIncome {
		cmp = ">="
	}
	g := EvaluateGate("Income Check", p.MonthlyIncome, pol.MinIncome,
		fmt.Sprintf("Monthly income: %.0f %s %.0f required", p.MonthlyIncome, cmp, pol.MinIncome))
	if !g.Passed {
		return g, []ReasonCode{ReasonLowIncome}
	}
	return g, nil
}

func foirGate(p *bureau.ScrubProfile, pol *catalog.LenderPolicy) (Gate, []ReasonCode) {
	ok := p.FOIR <= pol.FOIRCap
	cmp := ">"
	if ok {
		cmp = "<="
	}
	g := EvaluateGate("FOIR Check", boolMeasure(ok), 1,
		fmt.Sprintf("FOIR: %.1f%% %s %.1f%% cap", p.FOIR*100, cmp, pol.FOIRCap*100))
	if !g.Passed {
		return g, []ReasonCode{ReasonFOIRExceeded}
	}
	return g, nil
}

// rangeGate validates supplied loan intent against the policy ranges. With no
// intent present it passes, so callers that only want an indicative
// evaluation are not penalized.
func rangeGate(p *bureau.ScrubProfile, pol *catalog.LenderPolicy) (Gate, []ReasonCode) {
	ok := true
	var codes []ReasonCode
	if p.DesiredAmount != nil && (*p.DesiredAmount < pol.AmountMin || *p.DesiredAmount > pol.AmountMax) {
		ok = false
		codes = append(codes, ReasonAmountOutOfRange)
	}
	if p.DesiredTenureMonths != nil && (*p.DesiredTenureMonths < pol.TenureMinMonths || *p.DesiredTenureMonths > pol.TenureMaxMonths) {
		ok = false
		codes = append(codes, ReasonTenureOutOfRange)
	}
	desc := "Loan amount and tenure within allowed ranges"
	if !ok {
		desc = fmt.Sprintf("Requested amount/tenure outside %.0f-%.0f / %d-%d months",
			pol.AmountMin, pol.AmountMax, pol.TenureMinMonths, pol.TenureMaxMonths)
	}
	return EvaluateGate("Range Check", boolMeasure(ok), 1, desc), codes
}
