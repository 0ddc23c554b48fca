package bureau

import (
	"context"
	"sync"
	"time"

	id "prequal/pkg/domain"
)

// InMemory serves the six demo scrub profiles. Process dates are anchored to
// the construction time so each scenario (fresh, borderline, stale) keeps its
// meaning regardless of when the demo runs.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[id.Phone]ScrubProfile
}

// NewInMemory builds the fixture-backed store.
func NewInMemory() *InMemory {
	now := time.Now()
	s := &InMemory{profiles: make(map[id.Phone]ScrubProfile)}
	for _, p := range demoProfiles(now) {
		s.profiles[p.Phone] = p
	}
	return s
}

func (s *InMemory) LatestScrub(_ context.Context, phone id.Phone) (*ScrubProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[phone]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Put inserts or replaces a scrub record. Tests and the demo seeder use it.
func (s *InMemory) Put(p ScrubProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.Phone] = p
}

func demoProfiles(now time.Time) []ScrubProfile {
	score := func(v int) *int { return &v }
	return []ScrubProfile{
		{
			MemberRef: "MBR001", Phone: "+919812345678",
			ProcessDate: now.AddDate(0, 0, -5),
			Score:       score(785), Income: 60000, IncomePeriod: IncomeMonthly,
			DPDL12M: 0, Enquiries3M: 2, Enquiries6M: 4,
			Pincode: "122001", City: "Gurgaon", State: "Haryana",
			Employment: "Salaried", Age: 32, HistoryYears: 8,
			ActiveLoans: 1, LoanAmount: 200000, EMIRatio: 0.25,
			Updated: true, DataQuality: "Excellent", UserTag: "785_clean_profile",
		},
		{
			MemberRef: "MBR002", Phone: "+919811234567",
			ProcessDate: now.AddDate(0, 0, -41),
			Score:       score(645), Income: 40000, IncomePeriod: IncomeMonthly,
			DPDL12M: 2, Enquiries3M: 5, Enquiries6M: 8,
			Pincode: "110030", City: "New Delhi", State: "Delhi",
			Employment: "Salaried", Age: 28, HistoryYears: 5,
			ActiveLoans: 2, LoanAmount: 150000, EMIRatio: 0.45,
			Updated: true, DataQuality: "Fair", UserTag: "645_dpd_enquiries",
		},
		{
			MemberRef: "MBR003", Phone: "+919876543210",
			ProcessDate: now.AddDate(0, 0, -87),
			Score:       score(720), Income: 25000, IncomePeriod: IncomeMonthly,
			DPDL12M: 0, Enquiries3M: 8, Enquiries6M: 12,
			Pincode: "560001", City: "Bangalore", State: "Karnataka",
			Employment: "Self-Employed", Age: 35, HistoryYears: 6,
			ActiveLoans: 1, LoanAmount: 100000, EMIRatio: 0.30,
			Updated: true, DataQuality: "Good", UserTag: "720_high_enquiries",
		},
		{
			MemberRef: "MBR004", Phone: "+919812367890",
			ProcessDate: now.AddDate(0, 0, -143),
			Score:       score(710), Income: 48000, IncomePeriod: IncomeMonthly,
			DPDL12M: 0, Enquiries3M: 1, Enquiries6M: 2,
			Pincode: "400001", City: "Mumbai", State: "Maharashtra",
			Employment: "Salaried", Age: 30, HistoryYears: 7,
			ActiveLoans: 1, LoanAmount: 180000, EMIRatio: 0.28,
			Updated: false, DataQuality: "Good", UserTag: "710_stale_data",
		},
		{
			MemberRef: "MBR005", Phone: "+919876512345",
			ProcessDate: now.AddDate(0, 0, -1),
			Score:       nil, Income: 30000, IncomePeriod: IncomeMonthly,
			DPDL12M: 0, Enquiries3M: 2, Enquiries6M: 3,
			Pincode: "302020", City: "Jaipur", State: "Rajasthan",
			Employment: "Salaried", Age: 26, HistoryYears: 3,
			ActiveLoans: 0, LoanAmount: 0, EMIRatio: 0,
			Updated: true, DataQuality: "Limited", UserTag: "NTC_new_to_credit",
		},
		{
			MemberRef: "MBR006", Phone: "+919867890123",
			ProcessDate: now.AddDate(0, 0, -3),
			Score:       score(760), Income: 80000, IncomePeriod: IncomeMonthly,
			DPDL12M: 0, Enquiries3M: 1, Enquiries6M: 2,
			Pincode: "122018", City: "Gurgaon", State: "Haryana",
			Employment: "Salaried", Age: 38, HistoryYears: 12,
			ActiveLoans: 1, LoanAmount: 350000, EMIRatio: 0.20,
			Updated: true, DataQuality: "Excellent", UserTag: "760_preapproved_candidate",
		},
	}
}
