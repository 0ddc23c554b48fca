package catalog

import (
	"context"
	"sort"
	"time"

	id "prequal/pkg/domain"
)

// InMemory serves the fixture catalog: seven lenders and three pre-approved
// offers. Offer expiries are anchored to construction time so the demo's PA
// scenarios never silently expire.
type InMemory struct {
	policies []LenderPolicy
	offers   []PreApprovalOffer
	now      func() time.Time
}

// NewInMemory builds the fixture-backed store.
func NewInMemory() *InMemory {
	return &InMemory{
		policies: demoPolicies(),
		offers:   demoOffers(time.Now().AddDate(0, 4, 0)),
		now:      time.Now,
	}
}

// NewInMemoryWith builds a store over explicit data; tests use it.
func NewInMemoryWith(policies []LenderPolicy, offers []PreApprovalOffer, now func() time.Time) *InMemory {
	if now == nil {
		now = time.Now
	}
	return &InMemory{policies: policies, offers: offers, now: now}
}

func (s *InMemory) Policies(context.Context) ([]LenderPolicy, error) {
	out := make([]LenderPolicy, len(s.policies))
	copy(out, s.policies)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out, nil
}

func (s *InMemory) PreApprovals(_ context.Context, phone id.Phone) ([]PreApprovalOffer, error) {
	now := s.now()
	var out []PreApprovalOffer
	for _, o := range s.offers {
		if o.Phone == phone && o.Active(now) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rate < out[j].Rate })
	return out, nil
}

func demoPolicies() []LenderPolicy {
	return []LenderPolicy{
		{
			ID: "fibe_nbfc", Name: "Fibe", AcceptsNTC: true,
			MinScore: 700, MinIncome: 20000, DPDAllowed12M: 1, Enquiries3MCap: 6, FOIRCap: 0.70,
			AmountMin: 10000, AmountMax: 200000, TenureMinMonths: 6, TenureMaxMonths: 48,
			RateMin: 14, RateMax: 24, Priority: 10, Icon: "fibe", Color: "#2563eb",
			EmploymentTypes: []string{"Salaried", "Self-Employed"},
		},
		{
			ID: "lt_finance", Name: "L&T Finance", AcceptsNTC: false,
			MinScore: 720, MinIncome: 25000, DPDAllowed12M: 0, Enquiries3MCap: 4, FOIRCap: 0.65,
			AmountMin: 50000, AmountMax: 300000, TenureMinMonths: 12, TenureMaxMonths: 60,
			RateMin: 13, RateMax: 22, Priority: 20, Icon: "lt", Color: "#dc2626",
			EmploymentTypes: []string{"Salaried"},
		},
		{
			ID: "hdfc_bank", Name: "HDFC Bank", AcceptsNTC: false,
			MinScore: 750, MinIncome: 30000, DPDAllowed12M: 0, Enquiries3MCap: 2, FOIRCap: 0.60,
			AmountMin: 50000, AmountMax: 500000, TenureMinMonths: 12, TenureMaxMonths: 84,
			RateMin: 12, RateMax: 20, Priority: 5, Icon: "hdfc", Color: "#059669",
			EmploymentTypes: []string{"Salaried"},
		},
		{
			ID: "bajaj_finserv", Name: "Bajaj Finserv", AcceptsNTC: false,
			MinScore: 720, MinIncome: 25000, DPDAllowed12M: 1, Enquiries3MCap: 4, FOIRCap: 0.68,
			AmountMin: 25000, AmountMax: 400000, TenureMinMonths: 12, TenureMaxMonths: 60,
			RateMin: 13, RateMax: 22, Priority: 15, Icon: "bajaj", Color: "#7c3aed",
			EmploymentTypes: []string{"Salaried", "Self-Employed"},
		},
		{
			ID: "kotak_mahindra", Name: "Kotak Mahindra Bank", AcceptsNTC: false,
			MinScore: 740, MinIncome: 35000, DPDAllowed12M: 0, Enquiries3MCap: 3, FOIRCap: 0.55,
			AmountMin: 75000, AmountMax: 750000, TenureMinMonths: 12, TenureMaxMonths: 72,
			RateMin: 11, RateMax: 18, Priority: 8, Icon: "kotak", Color: "#f59e0b",
			EmploymentTypes: []string{"Salaried"},
		},
		{
			ID: "axis_bank", Name: "Axis Bank", AcceptsNTC: false,
			MinScore: 730, MinIncome: 30000, DPDAllowed12M: 0, Enquiries3MCap: 3, FOIRCap: 0.62,
			AmountMin: 60000, AmountMax: 600000, TenureMinMonths: 12, TenureMaxMonths: 84,
			RateMin: 12, RateMax: 19, Priority: 12, Icon: "axis", Color: "#ef4444",
			EmploymentTypes: []string{"Salaried"},
		},
		{
			ID: "flexi_loans", Name: "Flexi Loans", AcceptsNTC: true,
			MinScore: 680, MinIncome: 15000, DPDAllowed12M: 2, Enquiries3MCap: 8, FOIRCap: 0.75,
			AmountMin: 5000, AmountMax: 150000, TenureMinMonths: 6, TenureMaxMonths: 36,
			RateMin: 18, RateMax: 30, Priority: 25, Icon: "flexi", Color: "#10b981",
			EmploymentTypes: []string{"Salaried", "Self-Employed", "Business"},
		},
	}
}

func demoOffers(validUntil time.Time) []PreApprovalOffer {
	return []PreApprovalOffer{
		{
			Phone: "+919867890123", LenderID: "fibe_nbfc",
			Amount: 250000, Rate: 12, ProcessingFee: 5000,
			TenureMonths: []int{12, 24, 36, 48}, ApprovalProbability: 95,
			Features:   []string{"Guaranteed approval", "No documentation", "Instant disbursement"},
			ValidUntil: validUntil,
		},
		{
			Phone: "+919867890123", LenderID: "bajaj_finserv",
			Amount: 300000, Rate: 13, ProcessingFee: 7500,
			TenureMonths: []int{12, 24, 36, 48, 60}, ApprovalProbability: 90,
			Features:   []string{"Pre-approved offer", "Competitive rates", "Flexible tenure"},
			ValidUntil: validUntil,
		},
		{
			Phone: "+919812345678", LenderID: "fibe_nbfc",
			Amount: 200000, Rate: 14, ProcessingFee: 4000,
			TenureMonths: []int{12, 24, 36}, ApprovalProbability: 85,
			Features:   []string{"Quick approval", "Low processing fee"},
			ValidUntil: validUntil,
		},
	}
}
