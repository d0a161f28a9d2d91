package http

import (
	"context"

	"github.com/statefacts/core/internal/domain/entities"
)

type stateContextKey struct{}

// WithState returns a copy of ctx carrying the resolved state
func WithState(ctx context.Context, state entities.State) context.Context {
	return context.WithValue(ctx, stateContextKey{}, state)
}

// StateFromContext returns the state attached by the lookup middleware
func StateFromContext(ctx context.Context) (entities.State, bool) {
	state, ok := ctx.Value(stateContextKey{}).(entities.State)
	return state, ok
}
