package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statefacts/core/internal/domain/entities"
)

func TestMemoryRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFunFactRepository()

	_, err := repo.GetByStateCode(ctx, "GA")
	assert.ErrorIs(t, err, entities.ErrRecordNotFound)

	record := entities.NewFunFacts("GA", []string{"A"})
	require.NoError(t, repo.Create(ctx, record))
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, int64(0), record.Version)

	record.Append("B")
	require.NoError(t, repo.Update(ctx, record))
	assert.Equal(t, int64(1), record.Version)

	stored, err := repo.GetByStateCode(ctx, "GA")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, stored.FunFacts)
	assert.Equal(t, record.ID, stored.ID)

	// callers get copies
	stored.FunFacts[0] = "changed"
	again, err := repo.GetByStateCode(ctx, "GA")
	require.NoError(t, err)
	assert.Equal(t, "A", again.FunFacts[0])
}

func TestMemoryRepositoryConflicts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFunFactRepository()

	require.NoError(t, repo.Create(ctx, entities.NewFunFacts("GA", nil)))
	assert.ErrorIs(t, repo.Create(ctx, entities.NewFunFacts("GA", nil)), entities.ErrVersionConflict)

	first, err := repo.GetByStateCode(ctx, "GA")
	require.NoError(t, err)
	second, err := repo.GetByStateCode(ctx, "GA")
	require.NoError(t, err)

	first.Append("A")
	require.NoError(t, repo.Update(ctx, first))

	second.Append("B")
	assert.ErrorIs(t, repo.Update(ctx, second), entities.ErrVersionConflict)

	missing := entities.NewFunFacts("TX", []string{"x"})
	assert.ErrorIs(t, repo.Update(ctx, missing), entities.ErrVersionConflict)
}

func TestMemoryRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFunFactRepository()

	require.NoError(t, repo.Create(ctx, entities.NewFunFacts("TX", []string{"big"})))
	require.NoError(t, repo.Create(ctx, entities.NewFunFacts("AK", []string{"cold"})))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AK", records[0].StateCode)
	assert.Equal(t, "TX", records[1].StateCode)
	assert.NoError(t, repo.Ping(ctx))
}
