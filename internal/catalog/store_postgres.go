package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	id "prequal/pkg/domain"
	"prequal/pkg/requestcontext"
)

// Postgres reads the lender catalog from the lender_rules and
// preapproved_offers tables. Uses database/sql with the pq driver for
// pq.Array support on the array columns.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed catalog store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Policies(ctx context.Context) ([]LenderPolicy, error) {
	const q = `
		SELECT lender_id, lender_name, accepts_ntc, min_score, min_income,
		       dpd_allowed_12m, enquiries_3m_cap, foir_cap,
		       amount_min, amount_max, tenure_min, tenure_max,
		       roi_min, roi_max, priority, icon, color, employment_types
		FROM lender_rules
		ORDER BY priority ASC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query lender rules: %w", err)
	}
	defer rows.Close()

	var policies []LenderPolicy
	for rows.Next() {
		var p LenderPolicy
		if err := rows.Scan(
			&p.ID, &p.Name, &p.AcceptsNTC, &p.MinScore, &p.MinIncome,
			&p.DPDAllowed12M, &p.Enquiries3MCap, &p.FOIRCap,
			&p.AmountMin, &p.AmountMax, &p.TenureMinMonths, &p.TenureMaxMonths,
			&p.RateMin, &p.RateMax, &p.Priority, &p.Icon, &p.Color,
			pq.Array(&p.EmploymentTypes),
		); err != nil {
			return nil, fmt.Errorf("scan lender rule: %w", err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("lender rule %s: %w", p.ID, err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lender rules: %w", err)
	}
	return policies, nil
}

func (s *Postgres) PreApprovals(ctx context.Context, phone id.Phone) ([]PreApprovalOffer, error) {
	const q = `
		SELECT telephone, lender_id, amount, roi, processing_fee,
		       tenure_months, approval_probability, features, valid_until
		FROM preapproved_offers
		WHERE telephone = $1 AND valid_until >= $2
		ORDER BY roi ASC`

	rows, err := s.db.QueryContext(ctx, q, phone.String(), requestcontext.Now(ctx))
	if err != nil {
		return nil, fmt.Errorf("query preapproved offers: %w", err)
	}
	defer rows.Close()

	var offers []PreApprovalOffer
	for rows.Next() {
		var (
			o       PreApprovalOffer
			tenures pq.Int64Array
		)
		if err := rows.Scan(
			&o.Phone, &o.LenderID, &o.Amount, &o.Rate, &o.ProcessingFee,
			&tenures, &o.ApprovalProbability, pq.Array(&o.Features), &o.ValidUntil,
		); err != nil {
			return nil, fmt.Errorf("scan preapproved offer: %w", err)
		}
		o.TenureMonths = make([]int, len(tenures))
		for i, t := range tenures {
			o.TenureMonths[i] = int(t)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preapproved offers: %w", err)
	}
	return offers, nil
}
