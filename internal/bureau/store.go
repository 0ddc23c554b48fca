package bureau

import (
	"context"
	"errors"

	id "prequal/pkg/domain"
)

// ErrNotFound is returned when no scrub record exists for a phone number.
var ErrNotFound = errors.New("bureau: no scrub record for phone")

// Store retrieves raw scrub records. Implementations return the record as the
// bureau delivered it; callers run Derive with the evaluation time.
type Store interface {
	// LatestScrub returns the most recent scrub for the phone number, or
	// ErrNotFound.
	LatestScrub(ctx context.Context, phone id.Phone) (*ScrubProfile, error)
}
