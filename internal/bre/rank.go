package bre

import "sort"

// Ranked partitions evaluations into the three display tiers. The partitions
// are disjoint and jointly cover every input evaluation.
type Ranked struct {
	PreApproved  []Evaluation
	PreQualified []Evaluation
	Ineligible   []Evaluation
}

// Rank partitions and orders evaluations. Pre-approved and pre-qualified sort
// ascending by rate, ties broken by catalog priority then lender id so the
// result is fully deterministic. Ineligible keeps catalog order: policies
// arrive sorted by priority, and a stable partition preserves that.
func Rank(evals []Evaluation) Ranked {
	var r Ranked
	for _, ev := range evals {
		switch {
		case ev.Preapproved:
			r.PreApproved = append(r.PreApproved, ev)
		case ev.Eligible:
			r.PreQualified = append(r.PreQualified, ev)
		default:
			r.Ineligible = append(r.Ineligible, ev)
		}
	}
	sortByRate(r.PreApproved)
	sortByRate(r.PreQualified)
	return r
}

func sortByRate(evals []Evaluation) {
	sort.SliceStable(evals, func(i, j int) bool {
		ri, rj := rateOf(evals[i]), rateOf(evals[j])
		if ri != rj {
			return ri < rj
		}
		if evals[i].priority != evals[j].priority {
			return evals[i].priority < evals[j].priority
		}
		return evals[i].LenderID < evals[j].LenderID
	})
}

func rateOf(ev Evaluation) float64 {
	if ev.Rate == nil {
		return 0
	}
	return *ev.Rate
}

// Offers returns the final display order: pre-approved, then pre-qualified,
// then ineligible.
func (r Ranked) Offers() []Evaluation {
	out := make([]Evaluation, 0, len(r.PreApproved)+len(r.PreQualified)+len(r.Ineligible))
	out = append(out, r.PreApproved...)
	out = append(out, r.PreQualified...)
	out = append(out, r.Ineligible...)
	return out
}

// Best returns the top offer: the head of pre-approved then pre-qualified,
// or nil when no lender is eligible.
func (r Ranked) Best() *Evaluation {
	if len(r.PreApproved) > 0 {
		return &r.PreApproved[0]
	}
	if len(r.PreQualified) > 0 {
		return &r.PreQualified[0]
	}
	return nil
}
