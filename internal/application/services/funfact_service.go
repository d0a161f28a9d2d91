package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/statefacts/core/internal/domain/entities"
	"github.com/statefacts/core/internal/infrastructure/logger"
	"github.com/statefacts/core/internal/ports"
)

// Mutation operations, used as metric and log labels
const (
	OpAppend  = "append"
	OpReplace = "replace"
	OpRemove  = "remove"
)

const defaultMaxAttempts = 3

// MutationRecorder observes the outcome of fun fact mutations
type MutationRecorder interface {
	RecordMutation(operation string, err error)
	SetFunFactCount(n int)
}

// FunFactService handles fun fact reads and read-modify-write mutations.
// Writes for one state are serialised in-process and guarded across
// processes by the record version; every successful write is mirrored into
// the catalog before returning.
type FunFactService struct {
	repo        ports.FunFactRepository
	catalog     *Catalog
	logger      *logger.Logger
	locks       keyedLocks
	intN        func(n int) int
	maxAttempts int
	recorder    MutationRecorder
}

// Option configures a FunFactService
type Option func(*FunFactService)

// WithRandom overrides the index picker used by RandomFunFact
func WithRandom(intN func(n int) int) Option {
	return func(s *FunFactService) {
		s.intN = intN
	}
}

// WithMaxAttempts sets how many times a conflicting write is retried
func WithMaxAttempts(n int) Option {
	return func(s *FunFactService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRecorder attaches a mutation recorder
func WithRecorder(r MutationRecorder) Option {
	return func(s *FunFactService) {
		s.recorder = r
	}
}

// NewFunFactService creates a new fun fact service
func NewFunFactService(repo ports.FunFactRepository, catalog *Catalog, log *logger.Logger, opts ...Option) *FunFactService {
	s := &FunFactService{
		repo:        repo,
		catalog:     catalog,
		logger:      log.WithComponent("funfact_service"),
		locks:       keyedLocks{locks: make(map[string]*semaphore.Weighted)},
		intN:        rand.Intn,
		maxAttempts: defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var _ ports.FunFactService = (*FunFactService)(nil)

// AddFunFacts appends facts, creating the record on first write
func (s *FunFactService) AddFunFacts(ctx context.Context, code string, req ports.AddFunFactsRequest) (*entities.FunFacts, error) {
	return s.mutate(ctx, code, OpAppend, true, func(record *entities.FunFacts) error {
		record.Append(req.FunFacts...)
		return nil
	})
}

// UpdateFunFact replaces the fact at a 1-based index
func (s *FunFactService) UpdateFunFact(ctx context.Context, code string, req ports.UpdateFunFactRequest) (*entities.FunFacts, error) {
	return s.mutate(ctx, code, OpReplace, false, func(record *entities.FunFacts) error {
		return record.Replace(req.Index, req.FunFact)
	})
}

// DeleteFunFact removes the fact at a 1-based index
func (s *FunFactService) DeleteFunFact(ctx context.Context, code string, req ports.DeleteFunFactRequest) (*entities.FunFacts, error) {
	return s.mutate(ctx, code, OpRemove, false, func(record *entities.FunFacts) error {
		return record.Remove(req.Index)
	})
}

// RandomFunFact picks one of the state's current facts uniformly
func (s *FunFactService) RandomFunFact(code string) (string, error) {
	if _, err := s.catalog.Get(code); err != nil {
		return "", err
	}

	facts := s.catalog.FunFacts(code)
	if len(facts) == 0 {
		return "", entities.ErrNoFunFacts
	}

	return facts[s.intN(len(facts))], nil
}

func (s *FunFactService) mutate(ctx context.Context, code, op string, create bool, apply func(*entities.FunFacts) error) (*entities.FunFacts, error) {
	record, err := s.write(ctx, code, op, create, apply)
	if s.recorder != nil {
		s.recorder.RecordMutation(op, err)
		if err == nil {
			s.recorder.SetFunFactCount(s.catalog.FactCount())
		}
	}
	return record, err
}

func (s *FunFactService) write(ctx context.Context, code, op string, create bool, apply func(*entities.FunFacts) error) (*entities.FunFacts, error) {
	state, err := s.catalog.Get(code)
	if err != nil {
		return nil, err
	}
	code = state.Code

	release, err := s.locks.Acquire(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to lock fun facts for %s: %w", code, err)
	}
	defer release()

	log := s.logger.WithStateCode(code).WithFields("operation", op)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		record, exists, err := s.load(ctx, code, create)
		if err != nil {
			return nil, err
		}

		if err := apply(record); err != nil {
			return nil, err
		}

		if exists {
			err = s.repo.Update(ctx, record)
		} else {
			err = s.repo.Create(ctx, record)
		}

		if errors.Is(err, entities.ErrVersionConflict) {
			log.Warnw("Fun facts write conflicted, retrying", "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to save fun facts: %w", err)
		}

		s.catalog.Mirror(code, record.FunFacts)
		log.Infow("Fun facts saved", "count", len(record.FunFacts), "version", record.Version)

		return record, nil
	}

	return nil, entities.ErrVersionConflict
}

// load fetches the record for code. A missing record is created in memory
// when create is set and reported as ErrNoFunFacts otherwise.
func (s *FunFactService) load(ctx context.Context, code string, create bool) (*entities.FunFacts, bool, error) {
	record, err := s.repo.GetByStateCode(ctx, code)
	switch {
	case errors.Is(err, entities.ErrRecordNotFound):
		if !create {
			return nil, false, entities.ErrNoFunFacts
		}
		return entities.NewFunFacts(code, nil), false, nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to load fun facts: %w", err)
	}

	return record, true, nil
}

// keyedLocks holds one single-slot semaphore per state code
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*semaphore.Weighted
}

// Acquire blocks until the lock for key is free or ctx ends, and returns
// its release func
func (k *keyedLocks) Acquire(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = semaphore.NewWeighted(1)
		k.locks[key] = l
	}
	k.mu.Unlock()

	if err := l.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { l.Release(1) }, nil
}
