package bureau

import "time"

// Freshness window for a scrub pull. A pull dated exactly freshnessDays ago is
// still fresh; one day more is stale.
const freshnessDays = 90

// enquirySpikeThreshold marks profiles shopping for credit aggressively.
const enquirySpikeThreshold = 5

// Derive computes the derived fields of a scrub profile as of now.
// Pure function of the input and now: safe defaults, no errors. The returned
// copy is the only enriched form; raw income is never normalized twice because
// MonthlyIncome is always recomputed here from the raw figure.
func Derive(p ScrubProfile, now time.Time) ScrubProfile {
	days := int(now.Sub(p.ProcessDate).Hours() / 24)

	p.DaysSinceProcess = days
	p.FreshnessOK = days <= freshnessDays
	p.NTC = p.Score == nil || *p.Score == 0
	p.AnyDPD12M = p.DPDL12M > 0
	p.HighEnq3M = p.Enquiries3M > enquirySpikeThreshold
	p.FOIR = p.EMIRatio
	p.MonthlyIncome = p.Income
	if p.IncomePeriod == IncomeAnnual {
		p.MonthlyIncome = p.Income / 12
	}
	p.RiskBand = BandForScore(p.Score)
	return p
}

// BandForScore buckets a bureau score via a descending threshold ladder.
// A nil or zero score short-circuits to NTC.
func BandForScore(score *int) RiskBand {
	if score == nil || *score == 0 {
		return RiskBandNTC
	}
	s := *score
	switch {
	case s >= 750:
		return RiskBand750Plus
	case s >= 700:
		return RiskBand700
	case s >= 650:
		return RiskBand650
	case s >= 600:
		return RiskBand600
	default:
		return RiskBandBelow600
	}
}
