package bureau

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	id "prequal/pkg/domain"
)

// Postgres reads scrub records from the scrub_base table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a Postgres-backed bureau store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) LatestScrub(ctx context.Context, phone id.Phone) (*ScrubProfile, error) {
	const q = `
		SELECT memberreference, telephone, process_date, score, income,
		       monthly_annual_indicator, dpd_l12m, total_enquiries_3m,
		       total_enquiries_6m, pincode, city, state, employment_type,
		       age, credit_history_length, active_loans, loan_amount,
		       emi_ratio, bureau_updated, data_quality, user_tag
		FROM scrub_base
		WHERE telephone = $1
		ORDER BY process_date DESC
		LIMIT 1`

	var (
		p      ScrubProfile
		period string
	)
	err := s.pool.QueryRow(ctx, q, phone.String()).Scan(
		&p.MemberRef, &p.Phone, &p.ProcessDate, &p.Score, &p.Income,
		&period, &p.DPDL12M, &p.Enquiries3M,
		&p.Enquiries6M, &p.Pincode, &p.City, &p.State, &p.Employment,
		&p.Age, &p.HistoryYears, &p.ActiveLoans, &p.LoanAmount,
		&p.EMIRatio, &p.Updated, &p.DataQuality, &p.UserTag,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query latest scrub: %w", err)
	}
	p.IncomePeriod = IncomePeriod(period)
	return &p, nil
}
