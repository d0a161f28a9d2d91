package ports

import (
	"context"

	"github.com/statefacts/core/internal/domain/entities"
)

// FunFactRepository defines the interface for fun facts persistence.
// Implementations keep one record per state code and reject a second record
// for the same code.
type FunFactRepository interface {
	// GetByStateCode returns entities.ErrRecordNotFound when the state has
	// never been written.
	GetByStateCode(ctx context.Context, stateCode string) (*entities.FunFacts, error)
	List(ctx context.Context) ([]*entities.FunFacts, error)
	// Create inserts a new record with version 0. A record that already exists
	// for the state code yields entities.ErrVersionConflict.
	Create(ctx context.Context, record *entities.FunFacts) error
	// Update saves the facts when the stored version still matches
	// record.Version, then bumps the version on both sides. A stale version
	// yields entities.ErrVersionConflict.
	Update(ctx context.Context, record *entities.FunFacts) error
	Ping(ctx context.Context) error
}

// StateSource provides the static state dataset
type StateSource interface {
	Load() ([]entities.State, error)
}
