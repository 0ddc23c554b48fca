package prequal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"prequal/internal/audit"
	"prequal/internal/bre"
	"prequal/internal/bre/metrics"
	"prequal/internal/bureau"
	"prequal/internal/catalog"
	id "prequal/pkg/domain"
	dErrors "prequal/pkg/domain-errors"
	"prequal/pkg/requestcontext"
)

// Service runs pre-qualification journeys. All dependencies are injected;
// cache, audit and metrics are optional and degrade to no-ops.
type Service struct {
	bureaus bureau.Store
	lenders catalog.Store
	engine  *bre.Engine
	cache   ResultCache
	audit   *audit.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// ServiceOption configures optional Service collaborators.
type ServiceOption func(*Service)

func WithCache(c ResultCache) ServiceOption {
	return func(s *Service) { s.cache = c }
}

func WithAudit(p *audit.Publisher) ServiceOption {
	return func(s *Service) { s.audit = p }
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs a Service. The bureau store, lender catalog and
// engine are required.
func NewService(bureaus bureau.Store, lenders catalog.Store, engine *bre.Engine, opts ...ServiceOption) (*Service, error) {
	if bureaus == nil {
		return nil, fmt.Errorf("prequal service requires a bureau store")
	}
	if lenders == nil {
		return nil, fmt.Errorf("prequal service requires a lender catalog")
	}
	if engine == nil {
		return nil, fmt.Errorf("prequal service requires an engine")
	}
	s := &Service{
		bureaus: bureaus,
		lenders: lenders,
		engine:  engine,
		logger:  slog.Default(),
		tracer:  otel.Tracer("prequal"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Evaluate runs the full bureau-based journey: validate inputs, derive the
// profile, evaluate every lender in the catalog concurrently, rank and
// summarize. Lenders holding an unexpired pre-approval get the override.
func (s *Service) Evaluate(ctx context.Context, in ScrubInput) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "prequal.Evaluate")
	defer span.End()
	start := time.Now()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := in.RequireIntent(); err != nil {
		return nil, err
	}
	raw, err := in.Profile()
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	profile := bureau.Derive(raw, now)

	policies, err := s.lenders.Policies(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load lender catalog")
	}
	overrides, err := s.preApprovalsByLender(ctx, profile.Phone)
	if err != nil {
		return nil, err
	}

	evals := make([]bre.Evaluation, len(policies))
	var g errgroup.Group
	for i, policy := range policies {
		g.Go(func() error {
			ev, err := s.engine.Evaluate(profile, policy, overrides[policy.ID])
			if err != nil {
				return err
			}
			evals[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := bre.Rank(evals)
	result := s.buildResult(profile, ranked, now)

	s.publishAudit(ctx, profile.Phone, audit.PathBRE, ranked.Offers())
	s.cacheEligible(ctx, profile.Phone, ranked)

	s.metrics.ObserveEvaluateLatency(time.Since(start))
	span.SetAttributes(
		attribute.Int("lenders", len(policies)),
		attribute.Int("eligible", result.Summary.TotalEligible),
		attribute.Int("preapproved", result.Summary.TotalPreapproved),
	)
	s.logger.InfoContext(ctx, "evaluation complete",
		"request_id", requestcontext.RequestID(ctx),
		"lenders", len(policies),
		"eligible", result.Summary.TotalEligible,
		"preapproved", result.Summary.TotalPreapproved,
		"stale", result.Stale,
	)
	return result, nil
}

// EvaluateFallback runs the reduced journey for applicants without a bureau
// record. Only eligible lenders appear in the offer list; there are no gates
// to explain a rejection with.
func (s *Service) EvaluateFallback(ctx context.Context, in FallbackInput) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "prequal.EvaluateFallback")
	defer span.End()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	var phone id.Phone
	if in.Phone != "" {
		p, err := id.ParsePhone(in.Phone)
		if err != nil {
			return nil, err
		}
		phone = p
	}

	applicant := bre.FallbackApplicant{
		MonthlyIncome: *in.MonthlyIncome,
		Employment:    in.Employment,
		Pincode:       in.Pincode,
		Age:           *in.Age,
	}

	policies, err := s.lenders.Policies(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load lender catalog")
	}

	var eligible []bre.Evaluation
	for _, policy := range policies {
		ev, err := s.engine.EvaluateFallback(applicant, policy)
		if err != nil {
			return nil, err
		}
		if ev.Eligible {
			eligible = append(eligible, ev)
		}
	}
	ranked := bre.Rank(eligible)

	now := requestcontext.Now(ctx)
	result := &Result{
		Phone:       phone,
		EvaluatedAt: now,
		Offers:      ranked.Offers(),
		Summary:     summarize(ranked, len(policies)),
	}

	s.publishAudit(ctx, phone, audit.PathFallback, result.Offers)
	span.SetAttributes(
		attribute.Int("lenders", len(policies)),
		attribute.Int("eligible", result.Summary.TotalEligible),
	)
	s.logger.InfoContext(ctx, "fallback evaluation complete",
		"request_id", requestcontext.RequestID(ctx),
		"lenders", len(policies),
		"eligible", result.Summary.TotalEligible,
	)
	return result, nil
}

// Intake looks up the latest stored scrub for a phone number and returns its
// derived view. A stale record is returned alongside a stale_data error so
// the caller can both warn and prefill.
func (s *Service) Intake(ctx context.Context, rawPhone string) (*IntakeResult, error) {
	ctx, span := s.tracer.Start(ctx, "prequal.Intake")
	defer span.End()

	phone, err := id.ParsePhone(rawPhone)
	if err != nil {
		return nil, err
	}
	record, err := s.bureaus.LatestScrub(ctx, phone)
	if err != nil {
		if dErrors.Is(err, bureau.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNoData, "no bureau record exists for this phone number")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load scrub record")
	}

	now := requestcontext.Now(ctx)
	profile := bureau.Derive(*record, now)
	view := &IntakeResult{
		MemberRef:        profile.MemberRef,
		Phone:            profile.Phone,
		ProcessDate:      profile.ProcessDate.Format("2006-01-02"),
		Score:            profile.Score,
		MonthlyIncome:    profile.MonthlyIncome,
		Employment:       profile.Employment,
		Age:              profile.Age,
		Pincode:          profile.Pincode,
		City:             profile.City,
		State:            profile.State,
		DPDL12M:          profile.DPDL12M,
		Enquiries3M:      profile.Enquiries3M,
		FOIR:             profile.FOIR,
		NTC:              profile.NTC,
		RiskBand:         profile.RiskBand,
		DaysSinceProcess: profile.DaysSinceProcess,
		Stale:            !profile.FreshnessOK,
	}
	if view.Stale {
		return view, dErrors.New(dErrors.CodeStaleData,
			fmt.Sprintf("scrub record is %d days old, beyond the 90 day freshness window", profile.DaysSinceProcess))
	}
	return view, nil
}

// preApprovalsByLender collapses the active offers to at most one per lender.
// The store returns them sorted by rate ascending, so the first seen is the
// cheapest and wins.
func (s *Service) preApprovalsByLender(ctx context.Context, phone id.Phone) (map[id.LenderID]*catalog.PreApprovalOffer, error) {
	offers, err := s.lenders.PreApprovals(ctx, phone)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load pre-approved offers")
	}
	byLender := make(map[id.LenderID]*catalog.PreApprovalOffer, len(offers))
	for i := range offers {
		if _, seen := byLender[offers[i].LenderID]; !seen {
			byLender[offers[i].LenderID] = &offers[i]
		}
	}
	return byLender, nil
}

func (s *Service) buildResult(profile bureau.ScrubProfile, ranked bre.Ranked, now time.Time) *Result {
	offers := ranked.Offers()
	return &Result{
		MemberRef:   profile.MemberRef,
		Phone:       profile.Phone,
		EvaluatedAt: now,
		RiskBand:    profile.RiskBand,
		Stale:       !profile.FreshnessOK,
		Offers:      offers,
		Summary:     summarize(ranked, len(offers)),
	}
}

func summarize(ranked bre.Ranked, totalLenders int) Summary {
	sum := Summary{
		TotalLenders:     totalLenders,
		TotalEligible:    len(ranked.PreApproved) + len(ranked.PreQualified),
		TotalPreapproved: len(ranked.PreApproved),
		ValidityDays:     offerValidityDays,
	}
	if best := ranked.Best(); best != nil && best.Rate != nil {
		sum.BestOffer = &BestOffer{
			Lender:      best.LenderName,
			Rate:        *best.Rate,
			Preapproved: best.Preapproved,
		}
		if best.MaxAmount != nil {
			sum.BestOffer.MaxAmount = *best.MaxAmount
		}
		emi := EstimateEMI(emiQuotePrincipal, *best.Rate, emiQuoteMonths)
		sum.EstimatedEMI = &emi
	}
	return sum
}

func (s *Service) publishAudit(ctx context.Context, phone id.Phone, path string, evals []bre.Evaluation) {
	if s.audit == nil {
		return
	}
	for _, ev := range evals {
		codes := make([]string, 0, len(ev.ReasonCodes))
		for _, c := range ev.ReasonCodes {
			codes = append(codes, string(c))
		}
		s.audit.Emit(ctx, audit.Event{
			Phone:       phone.String(),
			LenderID:    ev.LenderID.String(),
			Path:        path,
			Eligible:    ev.Eligible,
			Preapproved: ev.Preapproved,
			PAOverride:  ev.PAOverride,
			ReasonCodes: codes,
			Rate:        ev.Rate,
		})
	}
}

// cacheEligible writes the eligible offers through the cache. Failures are
// logged and swallowed; the evaluation result is already final.
func (s *Service) cacheEligible(ctx context.Context, phone id.Phone, ranked bre.Ranked) {
	if s.cache == nil {
		return
	}
	for _, ev := range append(append([]bre.Evaluation{}, ranked.PreApproved...), ranked.PreQualified...) {
		if err := s.cache.Put(ctx, phone, ev); err != nil {
			s.logger.WarnContext(ctx, "offer cache write failed",
				"lender_id", ev.LenderID, "error", err)
		}
	}
}
