//go:build integration

package catalog

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"prequal/internal/platform/postgres"
	id "prequal/pkg/domain"
	"prequal/pkg/requestcontext"
	"prequal/pkg/testutil/containers"
)

const catalogSchema = `
CREATE TABLE lender_rules (
	lender_id        TEXT PRIMARY KEY,
	lender_name      TEXT NOT NULL,
	accepts_ntc      BOOLEAN NOT NULL,
	min_score        INTEGER NOT NULL,
	min_income       DOUBLE PRECISION NOT NULL,
	dpd_allowed_12m  INTEGER NOT NULL,
	enquiries_3m_cap INTEGER NOT NULL,
	foir_cap         DOUBLE PRECISION NOT NULL,
	amount_min       DOUBLE PRECISION NOT NULL,
	amount_max       DOUBLE PRECISION NOT NULL,
	tenure_min       INTEGER NOT NULL,
	tenure_max       INTEGER NOT NULL,
	roi_min          DOUBLE PRECISION NOT NULL,
	roi_max          DOUBLE PRECISION NOT NULL,
	priority         INTEGER NOT NULL,
	icon             TEXT NOT NULL DEFAULT '',
	color            TEXT NOT NULL DEFAULT '',
	employment_types TEXT[] NOT NULL
);
CREATE TABLE preapproved_offers (
	telephone            TEXT NOT NULL,
	lender_id            TEXT NOT NULL,
	amount               DOUBLE PRECISION NOT NULL,
	roi                  DOUBLE PRECISION NOT NULL,
	processing_fee       DOUBLE PRECISION NOT NULL,
	tenure_months        INTEGER[] NOT NULL,
	approval_probability INTEGER NOT NULL,
	features             TEXT[] NOT NULL,
	valid_until          TIMESTAMPTZ NOT NULL
);`

func newIntegrationStore(t *testing.T) (*Postgres, *sql.DB) {
	t.Helper()
	pc := containers.NewPostgresContainer(t)

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, pc.DSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, catalogSchema)
	require.NoError(t, err)
	return NewPostgres(db), db
}

func insertPolicy(t *testing.T, db *sql.DB, p LenderPolicy) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO lender_rules VALUES
		($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		p.ID, p.Name, p.AcceptsNTC, p.MinScore, p.MinIncome,
		p.DPDAllowed12M, p.Enquiries3MCap, p.FOIRCap,
		p.AmountMin, p.AmountMax, p.TenureMinMonths, p.TenureMaxMonths,
		p.RateMin, p.RateMax, p.Priority, p.Icon, p.Color,
		pq.Array(p.EmploymentTypes),
	)
	require.NoError(t, err)
}

func validPolicy(lender string, priority int) LenderPolicy {
	return LenderPolicy{
		ID: id.LenderID(lender), Name: lender, MinScore: 700, MinIncome: 25000,
		Enquiries3MCap: 3, FOIRCap: 0.5, AmountMin: 10000, AmountMax: 500000,
		TenureMinMonths: 6, TenureMaxMonths: 36, RateMin: 12, RateMax: 18,
		Priority: priority, EmploymentTypes: []string{"Salaried"},
	}
}

func TestPoliciesOrderedByPriority(t *testing.T) {
	store, db := newIntegrationStore(t)

	insertPolicy(t, db, validPolicy("second", 2))
	insertPolicy(t, db, validPolicy("first", 1))

	policies, err := store.Policies(context.Background())
	require.NoError(t, err)
	require.Len(t, policies, 2)
	require.Equal(t, id.LenderID("first"), policies[0].ID)
	require.Equal(t, []string{"Salaried"}, policies[0].EmploymentTypes)
}

func TestPoliciesRejectMalformedRow(t *testing.T) {
	store, db := newIntegrationStore(t)

	bad := validPolicy("inverted", 1)
	bad.AmountMin, bad.AmountMax = bad.AmountMax, bad.AmountMin
	insertPolicy(t, db, bad)

	_, err := store.Policies(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "inverted")
}

func TestPreApprovalsFilterAndOrder(t *testing.T) {
	store, db := newIntegrationStore(t)
	now := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)

	insert := func(lender string, roi float64, validUntil time.Time) {
		_, err := db.Exec(`
			INSERT INTO preapproved_offers VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			"+919867890123", lender, 250000.0, roi, 999.0,
			pq.Array([]int64{12, 24}), 92, pq.Array([]string{"Instant"}), validUntil,
		)
		require.NoError(t, err)
	}
	insert("hdfc_bank", 13.5, now.AddDate(0, 1, 0))
	insert("fibe_nbfc", 12.0, now.AddDate(0, 2, 0))
	insert("axis_bank", 11.0, now.AddDate(0, 0, -1)) // expired

	ctx := requestcontext.WithTime(context.Background(), now)
	offers, err := store.PreApprovals(ctx, "+919867890123")
	require.NoError(t, err)
	require.Len(t, offers, 2)
	require.Equal(t, id.LenderID("fibe_nbfc"), offers[0].LenderID)
	require.Equal(t, []int{12, 24}, offers[0].TenureMonths)

	none, err := store.PreApprovals(ctx, "+910000000000")
	require.NoError(t, err)
	require.Empty(t, none)
}
