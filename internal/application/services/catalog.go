package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/statefacts/core/internal/domain/entities"
	"github.com/statefacts/core/internal/infrastructure/logger"
	"github.com/statefacts/core/internal/ports"
)

// Catalog is the in-memory overlay of the static dataset and the persisted
// fun facts. States never change after construction; fun facts are replaced
// wholesale by Mirror after each successful write.
type Catalog struct {
	mu       sync.RWMutex
	states   []entities.State
	index    map[string]int
	funFacts map[string][]string
	logger   *logger.Logger
}

// NewCatalog creates a catalog over the loaded dataset
func NewCatalog(states []entities.State, log *logger.Logger) *Catalog {
	c := &Catalog{
		states:   make([]entities.State, len(states)),
		index:    make(map[string]int, len(states)),
		funFacts: make(map[string][]string),
		logger:   log.WithComponent("catalog"),
	}

	for i, s := range states {
		s.Code = strings.ToUpper(s.Code)
		s.FunFacts = nil
		c.states[i] = s
		c.index[s.Code] = i
	}

	return c
}

var _ ports.StateCatalog = (*Catalog)(nil)

// Sync joins every persisted record into the overlay. It runs once at
// startup before requests are served.
func (c *Catalog) Sync(ctx context.Context, repo ports.FunFactRepository) error {
	records, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fun facts: %w", err)
	}

	joined := 0
	for _, record := range records {
		code := strings.ToUpper(record.StateCode)
		if _, ok := c.index[code]; !ok {
			c.logger.Warnw("Skipping fun facts for unknown state", "state_code", record.StateCode)
			continue
		}
		c.Mirror(code, record.FunFacts)
		joined++
	}

	c.logger.Infow("Fun facts joined into catalog", "records", len(records), "joined", joined)
	return nil
}

// List returns every state passing the filter, in dataset order
func (c *Catalog) List(filter entities.ContiguityFilter) []entities.State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entities.State, 0, len(c.states))
	for i := range c.states {
		if !filter.Match(&c.states[i]) {
			continue
		}
		out = append(out, c.states[i].WithFunFacts(c.funFacts[c.states[i].Code]))
	}
	return out
}

// Get resolves a state code, case-insensitively, to its record
func (c *Catalog) Get(code string) (entities.State, error) {
	code = strings.ToUpper(code)

	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[code]
	if !ok {
		return entities.State{}, entities.ErrStateNotFound
	}
	return c.states[i].WithFunFacts(c.funFacts[code]), nil
}

// FunFacts returns a copy of the state's current facts
func (c *Catalog) FunFacts(code string) []string {
	code = strings.ToUpper(code)

	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.funFacts[code]...)
}

// Mirror replaces the overlay facts for a state with the persisted list
func (c *Catalog) Mirror(code string, facts []string) {
	code = strings.ToUpper(code)

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(facts) == 0 {
		delete(c.funFacts, code)
		return
	}
	c.funFacts[code] = append([]string(nil), facts...)
}

// Len returns the number of states
func (c *Catalog) Len() int {
	return len(c.states)
}

// FactCount returns the total number of fun facts across all states
func (c *Catalog) FactCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, facts := range c.funFacts {
		total += len(facts)
	}
	return total
}
