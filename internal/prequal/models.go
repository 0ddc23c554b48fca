// Package prequal orchestrates a full pre-qualification run: input
// validation, bureau derivation, per-lender rule evaluation, ranking and the
// response summary.
package prequal

import (
	"time"

	"prequal/internal/bre"
	"prequal/internal/bureau"
	id "prequal/pkg/domain"
	dErrors "prequal/pkg/domain-errors"
)

// ScrubInput is the bureau payload as submitted for evaluation. Mandatory
// numeric fields are pointers so an absent field is distinguishable from a
// legitimate zero.
type ScrubInput struct {
	MemberRef    string   `json:"memberreference"`
	Phone        string   `json:"telephone"`
	ProcessDate  *string  `json:"process_date"`
	Score        *int     `json:"score"`
	Income       *float64 `json:"income"`
	IncomePeriod string   `json:"monthly_annual_indicator"`
	DPDL12M      *int     `json:"dpd_l12m"`
	Enquiries3M  *int     `json:"total_enquiries_3m"`
	Enquiries6M  int      `json:"total_enquiries_6m"`
	Pincode      string   `json:"pincode"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Employment   string   `json:"employment_type"`
	Age          int      `json:"age"`
	HistoryYears int      `json:"credit_history_length"`
	ActiveLoans  int      `json:"active_loans"`
	LoanAmount   float64  `json:"loan_amount"`
	EMIRatio     float64  `json:"emi_ratio"`
	Updated      bool     `json:"scrub_updated_flag"`
	DataQuality  string   `json:"data_quality"`
	UserTag      string   `json:"user_tag"`

	DesiredAmount       *float64 `json:"desired_amount"`
	DesiredTenureMonths *int     `json:"desired_tenure_months"`
}

// Validate enforces the mandatory-input contract. The score is deliberately
// not mandatory: its absence means new-to-credit, which is a valid profile.
func (in *ScrubInput) Validate() error {
	var missing []string
	if in.Phone == "" {
		missing = append(missing, "telephone")
	}
	if in.ProcessDate == nil {
		missing = append(missing, "process_date")
	}
	if in.Income == nil {
		missing = append(missing, "income")
	}
	if in.DPDL12M == nil {
		missing = append(missing, "dpd_l12m")
	}
	if in.Enquiries3M == nil {
		missing = append(missing, "total_enquiries_3m")
	}
	if len(missing) > 0 {
		err := dErrors.New(dErrors.CodeIncompleteInputs, "scrub payload is missing mandatory fields")
		return dErrors.Add(err, "missing_fields", missing)
	}
	return nil
}

// RequireIntent enforces that the applicant stated what they want to borrow.
func (in *ScrubInput) RequireIntent() error {
	var missing []string
	if in.DesiredAmount == nil {
		missing = append(missing, "desired_amount")
	}
	if in.DesiredTenureMonths == nil {
		missing = append(missing, "desired_tenure_months")
	}
	if len(missing) > 0 {
		err := dErrors.New(dErrors.CodeMissingLoanIntent, "desired loan amount and tenure are required")
		return dErrors.Add(err, "missing_fields", missing)
	}
	return nil
}

// Profile converts a validated input into a raw bureau profile. Callers must
// run Validate first; conversion only fails on malformed values.
func (in *ScrubInput) Profile() (bureau.ScrubProfile, error) {
	phone, err := id.ParsePhone(in.Phone)
	if err != nil {
		return bureau.ScrubProfile{}, err
	}
	processDate, err := parseDate(*in.ProcessDate)
	if err != nil {
		return bureau.ScrubProfile{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "process_date is not a valid date")
	}
	period := bureau.IncomePeriod(in.IncomePeriod)
	if period == "" {
		period = bureau.IncomeMonthly
	}
	return bureau.ScrubProfile{
		MemberRef:           id.MemberRef(in.MemberRef),
		Phone:               phone,
		ProcessDate:         processDate,
		Score:               in.Score,
		Income:              *in.Income,
		IncomePeriod:        period,
		DPDL12M:             *in.DPDL12M,
		Enquiries3M:         *in.Enquiries3M,
		Enquiries6M:         in.Enquiries6M,
		Pincode:             in.Pincode,
		City:                in.City,
		State:               in.State,
		Employment:          in.Employment,
		Age:                 in.Age,
		HistoryYears:        in.HistoryYears,
		ActiveLoans:         in.ActiveLoans,
		LoanAmount:          in.LoanAmount,
		EMIRatio:            in.EMIRatio,
		Updated:             in.Updated,
		DataQuality:         in.DataQuality,
		UserTag:             in.UserTag,
		DesiredAmount:       in.DesiredAmount,
		DesiredTenureMonths: in.DesiredTenureMonths,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// FallbackInput is the self-reported applicant data used when no bureau
// record exists.
type FallbackInput struct {
	Phone         string   `json:"telephone"`
	MonthlyIncome *float64 `json:"monthly_income"`
	Employment    string   `json:"employment_type"`
	Pincode       string   `json:"pincode"`
	Age           *int     `json:"age"`
}

func (in *FallbackInput) Validate() error {
	var missing []string
	if in.MonthlyIncome == nil {
		missing = append(missing, "monthly_income")
	}
	if in.Employment == "" {
		missing = append(missing, "employment_type")
	}
	if in.Age == nil {
		missing = append(missing, "age")
	}
	if len(missing) > 0 {
		err := dErrors.New(dErrors.CodeIncompleteInputs, "fallback payload is missing mandatory fields")
		return dErrors.Add(err, "missing_fields", missing)
	}
	return nil
}

// offerValidityDays is how long synthesized offers are presented as valid.
// It matches the scrub freshness window.
const offerValidityDays = 90

// Result is one complete pre-qualification outcome.
type Result struct {
	MemberRef   id.MemberRef     `json:"scrub_reference,omitempty"`
	Phone       id.Phone         `json:"telephone"`
	EvaluatedAt time.Time        `json:"evaluation_date"`
	RiskBand    bureau.RiskBand  `json:"risk_band,omitempty"`
	Stale       bool             `json:"stale_data,omitempty"`
	Offers      []bre.Evaluation `json:"offers"`
	Summary     Summary          `json:"summary"`
}

// Summary is the headline block rendered above the offer list.
type Summary struct {
	TotalLenders     int        `json:"total_lenders"`
	TotalEligible    int        `json:"total_eligible"`
	TotalPreapproved int        `json:"total_preapproved"`
	BestOffer        *BestOffer `json:"best_offer"`
	// EstimatedEMI is the indicative EMI for a 50k loan over 36 months at
	// the best offer's rate; absent when no lender is eligible.
	EstimatedEMI *float64 `json:"estimated_emi_50k_36m,omitempty"`
	ValidityDays int      `json:"validity_days"`
}

// BestOffer is the single headline offer.
type BestOffer struct {
	Lender      string  `json:"lender"`
	Rate        float64 `json:"roi"`
	MaxAmount   float64 `json:"max_amount"`
	Preapproved bool    `json:"preapproved"`
}

// IntakeResult is the derived view of a stored scrub record, returned by the
// intake step so the journey can prefill and route before full evaluation.
type IntakeResult struct {
	MemberRef        id.MemberRef    `json:"memberreference"`
	Phone            id.Phone        `json:"telephone"`
	ProcessDate      string          `json:"process_date"`
	Score            *int            `json:"score,omitempty"`
	MonthlyIncome    float64         `json:"monthly_income"`
	Employment       string          `json:"employment_type"`
	Age              int             `json:"age"`
	Pincode          string          `json:"pincode"`
	City             string          `json:"city"`
	State            string          `json:"state"`
	DPDL12M          int             `json:"dpd_l12m"`
	Enquiries3M      int             `json:"total_enquiries_3m"`
	FOIR             float64         `json:"foir"`
	NTC              bool            `json:"ntc"`
	RiskBand         bureau.RiskBand `json:"risk_band"`
	DaysSinceProcess int             `json:"days_since_process"`
	Stale            bool            `json:"stale_data"`
}
