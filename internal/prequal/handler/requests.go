package handler

import (
	"prequal/internal/prequal"
	dErrors "prequal/pkg/domain-errors"
)

// PrequalRequest is the envelope for POST /offers/prequal. Exactly one of the
// two payloads must be present; which one decides the journey.
type PrequalRequest struct {
	ScrubData    *prequal.ScrubInput    `json:"scrub_data"`
	FallbackData *prequal.FallbackInput `json:"fallback_data"`
}

func (r *PrequalRequest) Validate() error {
	if r.ScrubData == nil && r.FallbackData == nil {
		return dErrors.New(dErrors.CodeBadRequest, "either scrub_data or fallback_data is required")
	}
	if r.ScrubData != nil && r.FallbackData != nil {
		return dErrors.New(dErrors.CodeBadRequest, "scrub_data and fallback_data are mutually exclusive")
	}
	return nil
}

// FallbackRequest is the body of POST /offers/fallback.
type FallbackRequest struct {
	prequal.FallbackInput
}

// IntakeRequest is the body of POST /bureau/scrub/intake.
type IntakeRequest struct {
	Phone string `json:"telephone"`
}

func (r *IntakeRequest) Validate() error {
	if r.Phone == "" {
		return dErrors.New(dErrors.CodeBadRequest, "telephone is required")
	}
	return nil
}
