// Package handler exposes the pre-qualification journey over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"prequal/internal/bureau"
	"prequal/internal/prequal"
	dErrors "prequal/pkg/domain-errors"
	"prequal/pkg/platform/httputil"
	"prequal/pkg/requestcontext"
)

// Service defines the prequalification operations the handler depends on.
type Service interface {
	Evaluate(ctx context.Context, in prequal.ScrubInput) (*prequal.Result, error)
	EvaluateFallback(ctx context.Context, in prequal.FallbackInput) (*prequal.Result, error)
	Intake(ctx context.Context, phone string) (*prequal.IntakeResult, error)
}

// Handler wires journey endpoints to the prequal service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a prequal handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the journey endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/offers/prequal", h.HandlePrequal)
	r.Post("/offers/fallback", h.HandleFallback)
	r.Post("/bureau/scrub/intake", h.HandleIntake)
	r.Get("/scenarios", h.HandleScenarios)
}

// HandlePrequal handles POST /offers/prequal requests. The envelope carries
// either a full scrub payload or the reduced fallback payload.
func (h *Handler) HandlePrequal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[PrequalRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	var (
		result *prequal.Result
		err    error
	)
	if req.ScrubData != nil {
		result, err = h.service.Evaluate(ctx, *req.ScrubData)
	} else {
		result, err = h.service.EvaluateFallback(ctx, *req.FallbackData)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "prequal evaluation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "prequal offers served",
		"request_id", requestID,
		"eligible", result.Summary.TotalEligible,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeSuccess(w, http.StatusOK, result)
}

// HandleFallback handles POST /offers/fallback requests.
func (h *Handler) HandleFallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[FallbackRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.EvaluateFallback(ctx, req.FallbackInput)
	if err != nil {
		h.logger.ErrorContext(ctx, "fallback evaluation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}

// HandleIntake handles POST /bureau/scrub/intake requests. A stale record is
// a conflict, but the derived view still ships in the body so the client can
// warn and prefill in one round trip.
func (h *Handler) HandleIntake(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[IntakeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	view, err := h.service.Intake(ctx, req.Phone)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeStaleData) && view != nil {
			h.logger.InfoContext(ctx, "stale scrub record served",
				"request_id", requestID,
				"days_since_process", view.DaysSinceProcess,
			)
			httputil.WriteJSON(w, http.StatusConflict, envelope{
				Success: false,
				Error:   string(dErrors.CodeStaleData),
				Message: dErrors.MessageOf(err),
				Data:    view,
			})
			return
		}
		h.logger.WarnContext(ctx, "scrub intake failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

// HandleScenarios handles GET /scenarios requests for the guided demo list.
func (h *Handler) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, bureau.DemoScenarios())
}
