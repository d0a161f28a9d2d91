package ports

import (
	"context"

	"github.com/statefacts/core/internal/domain/entities"
)

// StateCatalog is the in-memory overlay of static state data and live fun facts
type StateCatalog interface {
	List(filter entities.ContiguityFilter) []entities.State
	Get(code string) (entities.State, error)
	FunFacts(code string) []string
	Mirror(code string, facts []string)
}

// FunFactService interface for fun fact reads and mutations
type FunFactService interface {
	AddFunFacts(ctx context.Context, code string, req AddFunFactsRequest) (*entities.FunFacts, error)
	UpdateFunFact(ctx context.Context, code string, req UpdateFunFactRequest) (*entities.FunFacts, error)
	DeleteFunFact(ctx context.Context, code string, req DeleteFunFactRequest) (*entities.FunFacts, error)
	RandomFunFact(code string) (string, error)
}

// AddFunFactsRequest appends facts to a state's list
type AddFunFactsRequest struct {
	FunFacts []string `json:"funfacts"`
}

// UpdateFunFactRequest replaces the fact at a 1-based index
type UpdateFunFactRequest struct {
	Index   int    `json:"index"`
	FunFact string `json:"funfact"`
}

// DeleteFunFactRequest removes the fact at a 1-based index
type DeleteFunFactRequest struct {
	Index int `json:"index"`
}
