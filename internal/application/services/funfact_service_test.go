package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statefacts/core/internal/adapters/repository"
	"github.com/statefacts/core/internal/domain/entities"
	"github.com/statefacts/core/internal/infrastructure/logger"
	"github.com/statefacts/core/internal/ports"
)

// conflictingRepository fails the first n writes with a version conflict
type conflictingRepository struct {
	*repository.MemoryFunFactRepository
	mu        sync.Mutex
	conflicts int
}

func (r *conflictingRepository) Update(ctx context.Context, record *entities.FunFacts) error {
	r.mu.Lock()
	if r.conflicts > 0 {
		r.conflicts--
		r.mu.Unlock()
		return entities.ErrVersionConflict
	}
	r.mu.Unlock()
	return r.MemoryFunFactRepository.Update(ctx, record)
}

type failingRepository struct {
	*repository.MemoryFunFactRepository
}

func (failingRepository) GetByStateCode(context.Context, string) (*entities.FunFacts, error) {
	return nil, errors.New("connection reset")
}

type recordedMutation struct {
	op  string
	err error
}

type fakeRecorder struct {
	mutations []recordedMutation
	count     int
}

func (f *fakeRecorder) RecordMutation(op string, err error) {
	f.mutations = append(f.mutations, recordedMutation{op, err})
}

func (f *fakeRecorder) SetFunFactCount(n int) { f.count = n }

func newTestService(t *testing.T, repo ports.FunFactRepository, opts ...Option) (*FunFactService, *Catalog) {
	t.Helper()
	c := newTestCatalog(t)
	return NewFunFactService(repo, c, logger.NewNop(), opts...), c
}

func TestAddFunFacts(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryFunFactRepository()
	svc, catalog := newTestService(t, repo)

	record, err := svc.AddFunFacts(ctx, "ga", ports.AddFunFactsRequest{FunFacts: []string{"A", "B"}})
	require.NoError(t, err)
	assert.Equal(t, "GA", record.StateCode)
	assert.Equal(t, []string{"A", "B"}, record.FunFacts)
	assert.NotEmpty(t, record.ID)

	record, err = svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"C"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, record.FunFacts)
	assert.Equal(t, int64(1), record.Version)

	assert.Equal(t, []string{"A", "B", "C"}, catalog.FunFacts("GA"))

	_, err = svc.AddFunFacts(ctx, "ZZ", ports.AddFunFactsRequest{FunFacts: []string{"x"}})
	assert.ErrorIs(t, err, entities.ErrStateNotFound)
}

func TestUpdateFunFact(t *testing.T) {
	ctx := context.Background()
	svc, catalog := newTestService(t, repository.NewMemoryFunFactRepository())

	_, err := svc.UpdateFunFact(ctx, "GA", ports.UpdateFunFactRequest{Index: 1, FunFact: "x"})
	assert.ErrorIs(t, err, entities.ErrNoFunFacts)

	_, err = svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"A", "B"}})
	require.NoError(t, err)

	record, err := svc.UpdateFunFact(ctx, "GA", ports.UpdateFunFactRequest{Index: 2, FunFact: "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "b"}, record.FunFacts)
	assert.Equal(t, []string{"A", "b"}, catalog.FunFacts("GA"))

	_, err = svc.UpdateFunFact(ctx, "GA", ports.UpdateFunFactRequest{Index: 3, FunFact: "x"})
	assert.ErrorIs(t, err, entities.ErrFunFactIndexOutOfRange)

	_, err = svc.UpdateFunFact(ctx, "GA", ports.UpdateFunFactRequest{Index: 0, FunFact: "x"})
	assert.ErrorIs(t, err, entities.ErrFunFactIndexOutOfRange)
}

func TestDeleteFunFact(t *testing.T) {
	ctx := context.Background()
	svc, catalog := newTestService(t, repository.NewMemoryFunFactRepository())

	_, err := svc.DeleteFunFact(ctx, "GA", ports.DeleteFunFactRequest{Index: 1})
	assert.ErrorIs(t, err, entities.ErrNoFunFacts)

	_, err = svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"A", "B", "C"}})
	require.NoError(t, err)

	record, err := svc.DeleteFunFact(ctx, "GA", ports.DeleteFunFactRequest{Index: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, record.FunFacts)
	assert.Equal(t, []string{"B", "C"}, catalog.FunFacts("GA"))

	_, err = svc.DeleteFunFact(ctx, "GA", ports.DeleteFunFactRequest{Index: 3})
	assert.ErrorIs(t, err, entities.ErrFunFactIndexOutOfRange)

	_, err = svc.DeleteFunFact(ctx, "GA", ports.DeleteFunFactRequest{Index: 2})
	require.NoError(t, err)
	_, err = svc.DeleteFunFact(ctx, "GA", ports.DeleteFunFactRequest{Index: 1})
	require.NoError(t, err)

	// the emptied record remains and still reads as no facts
	_, err = svc.DeleteFunFact(ctx, "GA", ports.DeleteFunFactRequest{Index: 1})
	assert.ErrorIs(t, err, entities.ErrNoFunFacts)
	_, err = svc.RandomFunFact("GA")
	assert.ErrorIs(t, err, entities.ErrNoFunFacts)
}

func TestRandomFunFact(t *testing.T) {
	ctx := context.Background()

	t.Run("single fact", func(t *testing.T) {
		svc, _ := newTestService(t, repository.NewMemoryFunFactRepository())
		_, err := svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"only"}})
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			fact, err := svc.RandomFunFact("ga")
			require.NoError(t, err)
			assert.Equal(t, "only", fact)
		}
	})

	t.Run("index drawn over live length", func(t *testing.T) {
		var seen []int
		pick := func(n int) int {
			seen = append(seen, n)
			return n - 1
		}
		svc, _ := newTestService(t, repository.NewMemoryFunFactRepository(), WithRandom(pick))

		_, err := svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"A", "B"}})
		require.NoError(t, err)
		fact, err := svc.RandomFunFact("GA")
		require.NoError(t, err)
		assert.Equal(t, "B", fact)

		_, err = svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"C"}})
		require.NoError(t, err)
		fact, err = svc.RandomFunFact("GA")
		require.NoError(t, err)
		assert.Equal(t, "C", fact)

		assert.Equal(t, []int{2, 3}, seen)
	})

	t.Run("every position reachable", func(t *testing.T) {
		svc, _ := newTestService(t, repository.NewMemoryFunFactRepository())
		_, err := svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"A", "B", "C"}})
		require.NoError(t, err)

		hits := map[string]int{}
		for i := 0; i < 600; i++ {
			fact, err := svc.RandomFunFact("GA")
			require.NoError(t, err)
			hits[fact]++
		}
		assert.Len(t, hits, 3)
	})

	t.Run("no facts", func(t *testing.T) {
		svc, _ := newTestService(t, repository.NewMemoryFunFactRepository())
		_, err := svc.RandomFunFact("GA")
		assert.ErrorIs(t, err, entities.ErrNoFunFacts)

		_, err = svc.RandomFunFact("ZZ")
		assert.ErrorIs(t, err, entities.ErrStateNotFound)
	})
}

func TestMutationRetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	repo := &conflictingRepository{MemoryFunFactRepository: repository.NewMemoryFunFactRepository()}
	recorder := &fakeRecorder{}
	svc, _ := newTestService(t, repo, WithRecorder(recorder))

	_, err := svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"A"}})
	require.NoError(t, err)

	repo.conflicts = 2
	record, err := svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"B"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, record.FunFacts)

	repo.conflicts = 5
	_, err = svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"C"}})
	assert.ErrorIs(t, err, entities.ErrVersionConflict)

	require.Len(t, recorder.mutations, 3)
	assert.NoError(t, recorder.mutations[1].err)
	assert.ErrorIs(t, recorder.mutations[2].err, entities.ErrVersionConflict)
	assert.Equal(t, 2, recorder.count)
}

func TestMaxAttemptsBoundsRetries(t *testing.T) {
	ctx := context.Background()
	repo := &conflictingRepository{MemoryFunFactRepository: repository.NewMemoryFunFactRepository()}
	svc, catalog := newTestService(t, repo, WithMaxAttempts(1))

	_, err := svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"A"}})
	require.NoError(t, err)

	repo.conflicts = 1
	_, err = svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{"B"}})
	assert.ErrorIs(t, err, entities.ErrVersionConflict)
	assert.Equal(t, []string{"A"}, catalog.FunFacts("GA"))
}

func TestMutationGivesUpWhenContextEnds(t *testing.T) {
	svc, catalog := newTestService(t, repository.NewMemoryFunFactRepository())

	release, err := svc.locks.Acquire(context.Background(), "GA")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = svc.AddFunFacts(ctx, "ga", ports.AddFunFactsRequest{FunFacts: []string{"A"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, catalog.FunFacts("GA"))

	// other states are not blocked by the held lock
	_, err = svc.AddFunFacts(context.Background(), "TX", ports.AddFunFactsRequest{FunFacts: []string{"B"}})
	require.NoError(t, err)

	release()
	record, err := svc.AddFunFacts(context.Background(), "GA", ports.AddFunFactsRequest{FunFacts: []string{"C"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, record.FunFacts)
}

func TestMutationStorageFailure(t *testing.T) {
	svc, catalog := newTestService(t, failingRepository{repository.NewMemoryFunFactRepository()})

	_, err := svc.AddFunFacts(context.Background(), "GA", ports.AddFunFactsRequest{FunFacts: []string{"A"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Empty(t, catalog.FunFacts("GA"))
}

func TestConcurrentAppendsKeepEveryFact(t *testing.T) {
	ctx := context.Background()
	svc, catalog := newTestService(t, repository.NewMemoryFunFactRepository())

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddFunFacts(ctx, "GA", ports.AddFunFactsRequest{FunFacts: []string{fmt.Sprintf("fact %d", i)}})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, catalog.FunFacts("GA"), 25)
}
