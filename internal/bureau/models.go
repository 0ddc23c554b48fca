// Package bureau models credit-bureau scrub records and their derived fields.
package bureau

import (
	"time"

	id "prequal/pkg/domain"
)

// IncomePeriod marks how the raw income figure is reported.
type IncomePeriod string

const (
	IncomeMonthly IncomePeriod = "M"
	IncomeAnnual  IncomePeriod = "A"
)

// RiskBand buckets a bureau score for display and analytics.
type RiskBand string

const (
	RiskBandNTC      RiskBand = "NTC"
	RiskBandBelow600 RiskBand = "Below 600"
	RiskBand600      RiskBand = "600-649"
	RiskBand650      RiskBand = "650-699"
	RiskBand700      RiskBand = "700-749"
	RiskBand750Plus  RiskBand = "750+"
)

// ScrubProfile is one bureau data pull for an applicant. Raw fields come from
// the bureau (or the fixture set); derived fields are computed once per
// evaluation by Derive and never mutated afterwards.
type ScrubProfile struct {
	MemberRef    id.MemberRef
	Phone        id.Phone
	ProcessDate  time.Time
	Score        *int // nil or zero signals new-to-credit
	Income       float64
	IncomePeriod IncomePeriod
	DPDL12M      int
	Enquiries3M  int
	Enquiries6M  int
	Pincode      string
	City         string
	State        string
	Employment   string
	Age          int
	HistoryYears int
	ActiveLoans  int
	LoanAmount   float64
	EMIRatio     float64
	Updated      bool
	DataQuality  string
	UserTag      string

	// Loan intent, supplied by the applicant rather than the bureau.
	DesiredAmount       *float64
	DesiredTenureMonths *int

	// Derived fields, set by Derive.
	FreshnessOK      bool
	DaysSinceProcess int
	NTC              bool
	AnyDPD12M        bool
	HighEnq3M        bool
	FOIR             float64
	MonthlyIncome    float64
	RiskBand         RiskBand
}

// HasIntent reports whether the applicant supplied both loan intent fields.
func (p ScrubProfile) HasIntent() bool {
	return p.DesiredAmount != nil && p.DesiredTenureMonths != nil
}
