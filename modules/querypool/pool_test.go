package querypool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("splits a region-prefixed keyword", func(t *testing.T) {
		region, industry := Parse("東京 IT企業")

		assert.Equal(t, "東京", region)
		assert.Equal(t, "IT企業", industry)
	})

	t.Run("treats the whole keyword as industry when no region is parsed", func(t *testing.T) {
		region, industry := Parse("IT企業")

		assert.Empty(t, region)
		assert.Equal(t, "IT企業", industry)
	})
}

func TestNew_ProducesDistinctQueries(t *testing.T) {
	pool := New("東京 IT企業")

	assert.NotEmpty(t, pool.Queries)
	seen := make(map[string]struct{})
	for _, q := range pool.Queries {
		_, dup := seen[q]
		assert.False(t, dup, "duplicate query: %s", q)
		seen[q] = struct{}{}
	}
}

func TestNew_NoRegionStillProducesManyQueries(t *testing.T) {
	// Invariant 10: a keyword with no parsed region still produces >= 50
	// distinct queries from C1.
	pool := New("IT企業")

	assert.GreaterOrEqual(t, len(pool.Queries), 50)
}

func TestPool_NextBatch(t *testing.T) {
	pool := New("東京 IT企業")
	total := len(pool.Queries)

	first := pool.NextBatch(5, nil)
	assert.Len(t, first, 5)

	second := pool.NextBatch(5, nil)
	assert.Len(t, second, 5)

	for _, q := range second {
		assert.NotContains(t, first, q)
	}

	assert.LessOrEqual(t, len(pool.Used), total)
}

func TestPool_NextBatch_HonoursUsedElsewhere(t *testing.T) {
	pool := New("東京 IT企業")
	usedElsewhere := map[string]struct{}{pool.Queries[0]: {}}

	batch := pool.NextBatch(len(pool.Queries), usedElsewhere)

	assert.NotContains(t, batch, pool.Queries[0])
}

func TestPool_NextBatch_ExhaustsWithoutPanicking(t *testing.T) {
	pool := New("東京 IT企業")
	total := len(pool.Queries)

	batch := pool.NextBatch(total+50, nil)
	assert.Len(t, batch, total)

	empty := pool.NextBatch(10, nil)
	assert.Empty(t, empty)
}

func TestInitialQueries(t *testing.T) {
	queries := InitialQueries("東京 IT企業")

	assert.GreaterOrEqual(t, len(queries), 20)
	for _, q := range queries {
		assert.Contains(t, q, "東京 IT企業")
	}
}
