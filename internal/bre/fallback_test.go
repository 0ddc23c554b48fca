package bre

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"prequal/internal/catalog"
)

type FallbackSuite struct {
	suite.Suite
	engine *Engine
	policy catalog.LenderPolicy
}

func TestFallbackSuite(t *testing.T) {
	suite.Run(t, new(FallbackSuite))
}

func (s *FallbackSuite) SetupTest() {
	s.engine = New(WithRand(rand.New(rand.NewSource(7))))
	s.policy = catalog.LenderPolicy{
		ID: "fibe_nbfc", Name: "Fibe", AcceptsNTC: true,
		MinScore: 700, MinIncome: 20000, DPDAllowed12M: 1, Enquiries3MCap: 6, FOIRCap: 0.70,
		AmountMin: 10000, AmountMax: 200000, TenureMinMonths: 6, TenureMaxMonths: 48,
		RateMin: 14, RateMax: 24, Priority: 10,
		EmploymentTypes: []string{"Salaried", "Self-Employed"},
	}
}

func (s *FallbackSuite) TestLowIncomeIneligibleWithEmptyReasons() {
	// income 18000, age 30, Salaried against min_income 20000: ineligible,
	// but the fallback path records no gate-level reasons.
	ev, err := s.engine.EvaluateFallback(FallbackApplicant{
		MonthlyIncome: 18000, Age: 30, Employment: "Salaried", Pincode: "122001",
	}, s.policy)
	s.Require().NoError(err)

	s.False(ev.Eligible)
	s.Empty(ev.ReasonCodes)
	s.Empty(ev.Gates)
	s.Equal(BadgeNotEligible, ev.Badge)
	s.Nil(ev.Rate)
}

func (s *FallbackSuite) TestEligibleApplicantGetsTerms() {
	ev, err := s.engine.EvaluateFallback(FallbackApplicant{
		MonthlyIncome: 30000, Age: 30, Employment: "Salaried", Pincode: "122001",
	}, s.policy)
	s.Require().NoError(err)

	s.True(ev.Eligible)
	s.False(ev.Preapproved)
	s.Equal(BadgePreQualified, ev.Badge)
	s.Empty(ev.Gates)
	s.Empty(ev.ReasonCodes)

	s.Require().NotNil(ev.Rate)
	s.GreaterOrEqual(*ev.Rate, 14.0)
	s.Less(*ev.Rate, 24.0)
	s.Require().NotNil(ev.MaxAmount)
	s.InDelta(200000, *ev.MaxAmount, 0.001)
	// Wider probability window than the bureau-backed path.
	s.GreaterOrEqual(ev.ApprovalProbability, 60)
	s.Less(ev.ApprovalProbability, 85)
}

func (s *FallbackSuite) TestAgeWindow() {
	base := FallbackApplicant{MonthlyIncome: 30000, Employment: "Salaried"}

	for age, want := range map[int]bool{20: false, 21: true, 65: true, 66: false} {
		a := base
		a.Age = age
		ev, err := s.engine.EvaluateFallback(a, s.policy)
		s.Require().NoError(err)
		s.Equal(want, ev.Eligible, "age %d", age)
	}
}

func (s *FallbackSuite) TestEmploymentTypeFilter() {
	ev, err := s.engine.EvaluateFallback(FallbackApplicant{
		MonthlyIncome: 30000, Age: 30, Employment: "Business",
	}, s.policy)
	s.Require().NoError(err)
	s.False(ev.Eligible)
}
