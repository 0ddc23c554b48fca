package bre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "prequal/pkg/domain"
)

func ratep(v float64) *float64 { return &v }

func eval(lender id.LenderID, priority int, eligible, preapproved bool, rate *float64) Evaluation {
	return Evaluation{
		LenderID:    lender,
		Eligible:    eligible,
		Preapproved: preapproved,
		Rate:        rate,
		priority:    priority,
	}
}

func TestRankPartitions(t *testing.T) {
	evals := []Evaluation{
		eval("a", 10, true, false, ratep(16)),
		eval("b", 20, true, true, ratep(13)),
		eval("c", 5, false, false, nil),
		eval("d", 15, true, false, ratep(14)),
		eval("e", 8, true, true, ratep(12)),
		eval("f", 25, false, false, nil),
	}

	r := Rank(evals)

	t.Run("partition completeness and disjointness", func(t *testing.T) {
		total := len(r.PreApproved) + len(r.PreQualified) + len(r.Ineligible)
		require.Equal(t, len(evals), total)

		seen := map[id.LenderID]int{}
		for _, ev := range r.Offers() {
			seen[ev.LenderID]++
		}
		for _, ev := range evals {
			assert.Equal(t, 1, seen[ev.LenderID], "lender %s must appear exactly once", ev.LenderID)
		}
	})

	t.Run("tiers sorted by rate", func(t *testing.T) {
		require.Len(t, r.PreApproved, 2)
		assert.Equal(t, id.LenderID("e"), r.PreApproved[0].LenderID)
		assert.Equal(t, id.LenderID("b"), r.PreApproved[1].LenderID)

		require.Len(t, r.PreQualified, 2)
		assert.Equal(t, id.LenderID("d"), r.PreQualified[0].LenderID)
		assert.Equal(t, id.LenderID("a"), r.PreQualified[1].LenderID)
	})

	t.Run("ineligible preserves catalog order", func(t *testing.T) {
		require.Len(t, r.Ineligible, 2)
		assert.Equal(t, id.LenderID("c"), r.Ineligible[0].LenderID)
		assert.Equal(t, id.LenderID("f"), r.Ineligible[1].LenderID)
	})

	t.Run("display order is PA then PQ then ineligible", func(t *testing.T) {
		var order []id.LenderID
		for _, ev := range r.Offers() {
			order = append(order, ev.LenderID)
		}
		assert.Equal(t, []id.LenderID{"e", "b", "d", "a", "c", "f"}, order)
	})

	t.Run("best offer is head of PA tier", func(t *testing.T) {
		best := r.Best()
		require.NotNil(t, best)
		assert.Equal(t, id.LenderID("e"), best.LenderID)
	})
}

func TestRankTieBreaks(t *testing.T) {
	evals := []Evaluation{
		eval("zeta", 20, true, false, ratep(14)),
		eval("alpha", 20, true, false, ratep(14)),
		eval("mid", 10, true, false, ratep(14)),
	}

	r := Rank(evals)
	require.Len(t, r.PreQualified, 3)
	// Equal rates: priority ascending, then lender id for full determinism.
	assert.Equal(t, id.LenderID("mid"), r.PreQualified[0].LenderID)
	assert.Equal(t, id.LenderID("alpha"), r.PreQualified[1].LenderID)
	assert.Equal(t, id.LenderID("zeta"), r.PreQualified[2].LenderID)
}

func TestRankIdempotent(t *testing.T) {
	evals := []Evaluation{
		eval("b", 20, true, false, ratep(15)),
		eval("a", 10, true, false, ratep(15)),
		eval("c", 5, false, false, nil),
	}

	once := Rank(evals)
	twice := Rank(once.Offers())
	assert.Equal(t, once.Offers(), twice.Offers())
}

func TestBestOffer(t *testing.T) {
	t.Run("falls back to PQ head when no PA tier", func(t *testing.T) {
		r := Rank([]Evaluation{
			eval("a", 10, true, false, ratep(18)),
			eval("b", 20, true, false, ratep(15)),
		})
		best := r.Best()
		require.NotNil(t, best)
		assert.Equal(t, id.LenderID("b"), best.LenderID)
	})

	t.Run("nil when nothing eligible", func(t *testing.T) {
		r := Rank([]Evaluation{eval("a", 10, false, false, nil)})
		assert.Nil(t, r.Best())
	})

	t.Run("nil on empty input", func(t *testing.T) {
		assert.Nil(t, Rank(nil).Best())
	})
}
