package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/statefacts/core/internal/domain/entities"
	"github.com/statefacts/core/internal/ports"
)

//go:embed states.json
var embeddedStates []byte

// Source loads the static state dataset. An empty Path uses the dataset
// compiled into the binary.
type Source struct {
	Path string
}

// NewSource creates a dataset source
func NewSource(path string) ports.StateSource {
	return &Source{Path: path}
}

// Load reads and validates the dataset
func (s *Source) Load() ([]entities.State, error) {
	data := embeddedStates
	if s.Path != "" {
		raw, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("read dataset %s: %w", s.Path, err)
		}
		data = raw
	}

	return Parse(data)
}

// Parse decodes a JSON array of states. Codes are upper-cased and must be
// unique two-letter identifiers.
func Parse(data []byte) ([]entities.State, error) {
	var states []entities.State
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	seen := make(map[string]struct{}, len(states))
	for i := range states {
		code := strings.ToUpper(strings.TrimSpace(states[i].Code))
		if len(code) != 2 {
			return nil, fmt.Errorf("dataset entry %d: invalid state code %q", i, states[i].Code)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("dataset entry %d: duplicate state code %s", i, code)
		}
		seen[code] = struct{}{}

		states[i].Code = code
		// fun facts come from storage only
		states[i].FunFacts = nil
	}

	return states, nil
}
