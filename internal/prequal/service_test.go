package prequal

import (
	"context"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"prequal/internal/audit"
	"prequal/internal/bre"
	"prequal/internal/bureau"
	"prequal/internal/catalog"
	"prequal/internal/prequal/mocks"
	id "prequal/pkg/domain"
	dErrors "prequal/pkg/domain-errors"
	"prequal/pkg/requestcontext"
)

// evalTime pins "now" for every test so freshness math is deterministic.
var evalTime = time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	bureaus *mocks.MockBureauStore
	lenders *mocks.MockCatalogStore
	cache   *mocks.MockResultCache
	svc     *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.bureaus = mocks.NewMockBureauStore(s.ctrl)
	s.lenders = mocks.NewMockCatalogStore(s.ctrl)
	s.cache = mocks.NewMockResultCache(s.ctrl)

	engine := bre.New(bre.WithRand(rand.New(rand.NewSource(7))))
	svc, err := NewService(s.bureaus, s.lenders, engine,
		WithCache(s.cache),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	s.Require().NoError(err)
	s.svc = svc
	s.ctx = requestcontext.WithTime(context.Background(), evalTime)
}

func testPolicy(lender string, priority, minScore int, rateMin, rateMax float64) catalog.LenderPolicy {
	return catalog.LenderPolicy{
		ID:              id.LenderID(lender),
		Name:            lender,
		MinScore:        minScore,
		MinIncome:       25000,
		DPDAllowed12M:   0,
		Enquiries3MCap:  3,
		FOIRCap:         0.5,
		AmountMin:       10000,
		AmountMax:       500000,
		TenureMinMonths: 6,
		TenureMaxMonths: 36,
		RateMin:         rateMin,
		RateMax:         rateMax,
		Priority:        priority,
		EmploymentTypes: []string{"Salaried", "Self-Employed"},
	}
}

// cleanInput is a fresh, high-score, zero-delinquency payload with intent.
func cleanInput() ScrubInput {
	score := 780
	income := 60000.0
	dpd := 0
	enq := 1
	amount := 200000.0
	tenure := 24
	date := "2025-05-01"
	return ScrubInput{
		MemberRef:           "MBR100",
		Phone:               "+919812345678",
		ProcessDate:         &date,
		Score:               &score,
		Income:              &income,
		IncomePeriod:        "M",
		DPDL12M:             &dpd,
		Enquiries3M:         &enq,
		Employment:          "Salaried",
		Age:                 31,
		EMIRatio:            0.2,
		DesiredAmount:       &amount,
		DesiredTenureMonths: &tenure,
	}
}

func (s *ServiceSuite) TestEvaluateCleanProfile() {
	policies := []catalog.LenderPolicy{
		testPolicy("alpha_bank", 1, 700, 12, 18),
		testPolicy("beta_nbfc", 2, 650, 14, 24),
	}
	s.lenders.EXPECT().Policies(gomock.Any()).Return(policies, nil)
	s.lenders.EXPECT().PreApprovals(gomock.Any(), id.Phone("+919812345678")).Return(nil, nil)
	s.cache.EXPECT().Put(gomock.Any(), id.Phone("+919812345678"), gomock.Any()).Return(nil).Times(2)

	result, err := s.svc.Evaluate(s.ctx, cleanInput())
	s.Require().NoError(err)

	s.Len(result.Offers, 2)
	s.Equal(2, result.Summary.TotalLenders)
	s.Equal(2, result.Summary.TotalEligible)
	s.Equal(0, result.Summary.TotalPreapproved)
	s.Equal(90, result.Summary.ValidityDays)
	s.False(result.Stale)
	s.Equal(bureau.RiskBand750Plus, result.RiskBand)
	s.Equal(evalTime, result.EvaluatedAt)
	s.Equal(id.MemberRef("MBR100"), result.MemberRef)

	s.Require().NotNil(result.Summary.BestOffer)
	s.Require().NotNil(result.Offers[0].Rate)
	s.Equal(*result.Offers[0].Rate, result.Summary.BestOffer.Rate)
	s.False(result.Summary.BestOffer.Preapproved)

	s.Require().NotNil(result.Summary.EstimatedEMI)
	s.InDelta(EstimateEMI(50000, result.Summary.BestOffer.Rate, 36), *result.Summary.EstimatedEMI, 0.001)
}

func (s *ServiceSuite) TestEvaluateMissingMandatoryFields() {
	in := cleanInput()
	in.Income = nil
	in.DPDL12M = nil

	_, err := s.svc.Evaluate(s.ctx, in)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeIncompleteInputs))
	s.ElementsMatch([]string{"income", "dpd_l12m"}, dErrors.Load(err)["missing_fields"])
}

func (s *ServiceSuite) TestEvaluateMissingIntent() {
	in := cleanInput()
	in.DesiredAmount = nil
	in.DesiredTenureMonths = nil

	_, err := s.svc.Evaluate(s.ctx, in)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeMissingLoanIntent))
	s.ElementsMatch([]string{"desired_amount", "desired_tenure_months"}, dErrors.Load(err)["missing_fields"])
}

func (s *ServiceSuite) TestEvaluateCheapestPreApprovalWinsPerLender() {
	policies := []catalog.LenderPolicy{testPolicy("alpha_bank", 1, 700, 12, 18)}
	offers := []catalog.PreApprovalOffer{
		{
			Phone: "+919812345678", LenderID: "alpha_bank", Amount: 300000, Rate: 11.5,
			ProcessingFee: 999, TenureMonths: []int{12, 24, 36}, ApprovalProbability: 95,
			Features: []string{"Instant disbursal"}, ValidUntil: evalTime.Add(24 * time.Hour),
		},
		{
			Phone: "+919812345678", LenderID: "alpha_bank", Amount: 250000, Rate: 13,
			ProcessingFee: 999, TenureMonths: []int{12, 24}, ApprovalProbability: 90,
			ValidUntil: evalTime.Add(24 * time.Hour),
		},
	}
	s.lenders.EXPECT().Policies(gomock.Any()).Return(policies, nil)
	s.lenders.EXPECT().PreApprovals(gomock.Any(), id.Phone("+919812345678")).Return(offers, nil)
	s.cache.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := s.svc.Evaluate(s.ctx, cleanInput())
	s.Require().NoError(err)

	s.Equal(1, result.Summary.TotalPreapproved)
	s.Require().Len(result.Offers, 1)
	s.True(result.Offers[0].PAOverride)
	s.Require().NotNil(result.Offers[0].Rate)
	s.Equal(11.5, *result.Offers[0].Rate)
	s.Equal(95, result.Offers[0].ApprovalProbability)
}

func (s *ServiceSuite) TestEvaluateStaleProfileProceedsFlagged() {
	policies := []catalog.LenderPolicy{testPolicy("alpha_bank", 1, 700, 12, 18)}
	s.lenders.EXPECT().Policies(gomock.Any()).Return(policies, nil)
	s.lenders.EXPECT().PreApprovals(gomock.Any(), gomock.Any()).Return(nil, nil)

	in := cleanInput()
	old := "2025-01-01"
	in.ProcessDate = &old

	result, err := s.svc.Evaluate(s.ctx, in)
	s.Require().NoError(err)

	s.True(result.Stale)
	s.Equal(0, result.Summary.TotalEligible)
	s.Nil(result.Summary.BestOffer)
	s.Require().Len(result.Offers, 1)
	s.Contains(result.Offers[0].ReasonCodes, bre.ReasonStaleScrub)
}

func (s *ServiceSuite) TestEvaluateCacheFailureDoesNotFailEvaluation() {
	policies := []catalog.LenderPolicy{testPolicy("alpha_bank", 1, 700, 12, 18)}
	s.lenders.EXPECT().Policies(gomock.Any()).Return(policies, nil)
	s.lenders.EXPECT().PreApprovals(gomock.Any(), gomock.Any()).Return(nil, nil)
	s.cache.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(dErrors.New(dErrors.CodeInternal, "redis down"))

	result, err := s.svc.Evaluate(s.ctx, cleanInput())
	s.Require().NoError(err)
	s.Equal(1, result.Summary.TotalEligible)
}

func (s *ServiceSuite) TestEvaluateEmitsAuditEvents() {
	sink := audit.NewMemorySink()
	pub := audit.NewPublisher(sink, slog.New(slog.DiscardHandler))
	runCtx, cancel := context.WithCancel(context.Background())
	go pub.Run(runCtx)

	engine := bre.New(bre.WithRand(rand.New(rand.NewSource(7))))
	svc, err := NewService(s.bureaus, s.lenders, engine,
		WithAudit(pub),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	s.Require().NoError(err)

	policies := []catalog.LenderPolicy{
		testPolicy("alpha_bank", 1, 700, 12, 18),
		testPolicy("beta_nbfc", 2, 850, 14, 24),
	}
	s.lenders.EXPECT().Policies(gomock.Any()).Return(policies, nil)
	s.lenders.EXPECT().PreApprovals(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err = svc.Evaluate(s.ctx, cleanInput())
	s.Require().NoError(err)

	cancel()
	pub.Wait()

	events := sink.Events()
	s.Require().Len(events, 2)
	byLender := map[string]audit.Event{}
	for _, e := range events {
		byLender[e.LenderID] = e
	}
	s.True(byLender["alpha_bank"].Eligible)
	s.False(byLender["beta_nbfc"].Eligible)
	s.Contains(byLender["beta_nbfc"].ReasonCodes, string(bre.ReasonLowScore))
	s.Equal(audit.PathBRE, byLender["alpha_bank"].Path)
}

func (s *ServiceSuite) TestFallbackListsOnlyEligibleLenders() {
	policies := []catalog.LenderPolicy{
		testPolicy("alpha_bank", 1, 700, 12, 18),
		testPolicy("beta_nbfc", 2, 650, 14, 24),
	}
	policies[1].MinIncome = 80000
	s.lenders.EXPECT().Policies(gomock.Any()).Return(policies, nil)

	income := 40000.0
	age := 30
	result, err := s.svc.EvaluateFallback(s.ctx, FallbackInput{
		Phone:         "+919876500000",
		MonthlyIncome: &income,
		Employment:    "Salaried",
		Age:           &age,
	})
	s.Require().NoError(err)

	s.Equal(2, result.Summary.TotalLenders)
	s.Equal(1, result.Summary.TotalEligible)
	s.Require().Len(result.Offers, 1)
	s.Equal(id.LenderID("alpha_bank"), result.Offers[0].LenderID)
	s.Empty(result.Offers[0].Gates)
	s.Empty(result.Offers[0].ReasonCodes)
	s.NotNil(result.Summary.BestOffer)
}

func (s *ServiceSuite) TestFallbackMissingFields() {
	_, err := s.svc.EvaluateFallback(s.ctx, FallbackInput{})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeIncompleteInputs))
	s.ElementsMatch([]string{"monthly_income", "employment_type", "age"},
		dErrors.Load(err)["missing_fields"])
}

func (s *ServiceSuite) TestIntakeFreshRecord() {
	score := 720
	record := &bureau.ScrubProfile{
		MemberRef:    "MBR200",
		Phone:        "+919812345678",
		ProcessDate:  evalTime.AddDate(0, 0, -10),
		Score:        &score,
		Income:       480000,
		IncomePeriod: bureau.IncomeAnnual,
		Employment:   "Salaried",
		Age:          28,
	}
	s.bureaus.EXPECT().LatestScrub(gomock.Any(), id.Phone("+919812345678")).Return(record, nil)

	view, err := s.svc.Intake(s.ctx, "+919812345678")
	s.Require().NoError(err)
	s.False(view.Stale)
	s.Equal(10, view.DaysSinceProcess)
	s.InDelta(40000, view.MonthlyIncome, 0.001)
	s.Equal(bureau.RiskBand700, view.RiskBand)
	s.False(view.NTC)
}

func (s *ServiceSuite) TestIntakeNoRecord() {
	s.bureaus.EXPECT().LatestScrub(gomock.Any(), gomock.Any()).Return(nil, bureau.ErrNotFound)

	view, err := s.svc.Intake(s.ctx, "+919800000000")
	s.Nil(view)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNoData))
}

func (s *ServiceSuite) TestIntakeStaleRecordReturnsViewAndError() {
	score := 700
	record := &bureau.ScrubProfile{
		MemberRef:   "MBR201",
		Phone:       "+919812367890",
		ProcessDate: evalTime.AddDate(0, 0, -143),
		Score:       &score,
		Income:      50000,
	}
	s.bureaus.EXPECT().LatestScrub(gomock.Any(), gomock.Any()).Return(record, nil)

	view, err := s.svc.Intake(s.ctx, "+919812367890")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeStaleData))
	s.Require().NotNil(view)
	s.True(view.Stale)
	s.Equal(143, view.DaysSinceProcess)
}

func (s *ServiceSuite) TestInvalidPhoneRejected() {
	_, err := s.svc.Intake(s.ctx, "not-a-phone")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestEstimateEMI(t *testing.T) {
	// 50k at 14% over 36 months, standard amortization.
	got := EstimateEMI(50000, 14, 36)
	if got < 1700 || got > 1720 {
		t.Fatalf("EMI out of expected band: %v", got)
	}
	if zero := EstimateEMI(50000, 0, 10); zero != 5000 {
		t.Fatalf("zero-rate EMI should be straight-line: %v", zero)
	}
	if EstimateEMI(0, 14, 36) != 0 {
		t.Fatal("zero principal should return 0")
	}
}
