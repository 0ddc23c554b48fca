package prequal

import (
	"context"

	"prequal/internal/bre"
	id "prequal/pkg/domain"
)

// ResultCache stores the eligible offers from an evaluation, keyed by phone
// and lender, for the offer validity window. Writes are best effort: a cache
// failure never fails an evaluation.
type ResultCache interface {
	Put(ctx context.Context, phone id.Phone, ev bre.Evaluation) error
	// Get returns the cached evaluation, or nil when none exists.
	Get(ctx context.Context, phone id.Phone, lender id.LenderID) (*bre.Evaluation, error)
}
