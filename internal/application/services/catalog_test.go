package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statefacts/core/internal/adapters/dataset"
	"github.com/statefacts/core/internal/adapters/repository"
	"github.com/statefacts/core/internal/domain/entities"
	"github.com/statefacts/core/internal/infrastructure/logger"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	states, err := dataset.NewSource("").Load()
	require.NoError(t, err)
	return NewCatalog(states, logger.NewNop())
}

func TestCatalogList(t *testing.T) {
	c := newTestCatalog(t)

	all := c.List(entities.ContiguityAny)
	assert.Len(t, all, 50)

	contiguous := c.List(entities.ContiguityOnly)
	assert.Len(t, contiguous, 48)
	for _, s := range contiguous {
		assert.NotContains(t, []string{"AK", "HI"}, s.Code)
	}

	nonContiguous := c.List(entities.NonContiguousOnly)
	require.Len(t, nonContiguous, 2)
	assert.ElementsMatch(t, []string{"AK", "HI"}, []string{nonContiguous[0].Code, nonContiguous[1].Code})
}

func TestCatalogGet(t *testing.T) {
	c := newTestCatalog(t)

	for _, input := range []string{"ga", "Ga", "GA"} {
		s, err := c.Get(input)
		require.NoError(t, err)
		assert.Equal(t, "GA", s.Code)
		assert.Equal(t, "Atlanta", s.CapitalCity)
	}

	_, err := c.Get("ZZ")
	assert.ErrorIs(t, err, entities.ErrStateNotFound)

	_, err = c.Get("Georgia")
	assert.ErrorIs(t, err, entities.ErrStateNotFound)
}

func TestCatalogSync(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryFunFactRepository()
	require.NoError(t, repo.Create(ctx, entities.NewFunFacts("GA", []string{"peaches"})))
	require.NoError(t, repo.Create(ctx, entities.NewFunFacts("ZZ", []string{"nowhere"})))
	require.NoError(t, repo.Create(ctx, entities.NewFunFacts("TX", nil)))

	c := newTestCatalog(t)
	require.NoError(t, c.Sync(ctx, repo))

	ga, err := c.Get("GA")
	require.NoError(t, err)
	assert.Equal(t, []string{"peaches"}, ga.FunFacts)

	tx, err := c.Get("TX")
	require.NoError(t, err)
	assert.Empty(t, tx.FunFacts)

	assert.Equal(t, 1, c.FactCount())
}

func TestCatalogMirrorIsolation(t *testing.T) {
	c := newTestCatalog(t)

	facts := []string{"A", "B"}
	c.Mirror("ga", facts)
	facts[0] = "changed"

	assert.Equal(t, []string{"A", "B"}, c.FunFacts("GA"))

	read := c.FunFacts("GA")
	read[0] = "changed"
	assert.Equal(t, "A", c.FunFacts("GA")[0])

	listed := c.List(entities.ContiguityAny)
	for _, s := range listed {
		if s.Code == "GA" {
			assert.Equal(t, []string{"A", "B"}, s.FunFacts)
		}
	}

	c.Mirror("GA", nil)
	assert.Empty(t, c.FunFacts("GA"))
}
