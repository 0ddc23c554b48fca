package catalog

import (
	"context"

	id "prequal/pkg/domain"
)

// Store serves the lender reference data.
type Store interface {
	// Policies returns the full catalog ordered by priority ascending.
	Policies(ctx context.Context) ([]LenderPolicy, error)
	// PreApprovals returns the unexpired pre-approved offers for a phone
	// number, ordered by rate ascending.
	PreApprovals(ctx context.Context, phone id.Phone) ([]PreApprovalOffer, error)
}
