package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/statefacts/core/internal/domain/entities"
	"github.com/statefacts/core/internal/ports"
)

// MemoryFunFactRepository keeps records in process memory. It backs the
// memory storage driver and the test suites.
type MemoryFunFactRepository struct {
	mu      sync.RWMutex
	records map[string]*entities.FunFacts
}

// NewMemoryFunFactRepository creates an empty in-memory repository
func NewMemoryFunFactRepository() *MemoryFunFactRepository {
	return &MemoryFunFactRepository{records: make(map[string]*entities.FunFacts)}
}

var _ ports.FunFactRepository = (*MemoryFunFactRepository)(nil)

func (r *MemoryFunFactRepository) GetByStateCode(_ context.Context, stateCode string) (*entities.FunFacts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[stateCode]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	return record.Clone(), nil
}

func (r *MemoryFunFactRepository) List(_ context.Context) ([]*entities.FunFacts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*entities.FunFacts, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record.Clone())
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].StateCode < records[j].StateCode
	})
	return records, nil
}

func (r *MemoryFunFactRepository) Create(_ context.Context, record *entities.FunFacts) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.StateCode]; exists {
		return entities.ErrVersionConflict
	}

	record.ID = uuid.New().String()
	record.Version = 0
	record.FunFacts = nonNil(record.FunFacts)
	r.records[record.StateCode] = record.Clone()
	return nil
}

func (r *MemoryFunFactRepository) Update(_ context.Context, record *entities.FunFacts) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[record.StateCode]
	if !ok || stored.Version != record.Version {
		return entities.ErrVersionConflict
	}

	record.Version++
	record.FunFacts = nonNil(record.FunFacts)
	stored.FunFacts = append([]string{}, record.FunFacts...)
	stored.Version = record.Version
	return nil
}

func (r *MemoryFunFactRepository) Ping(context.Context) error {
	return nil
}
