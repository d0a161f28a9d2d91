package entities

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrStateNotFound          = errors.New("state not found")
	ErrRecordNotFound         = errors.New("fun facts record not found")
	ErrNoFunFacts             = errors.New("no fun facts for state")
	ErrFunFactIndexOutOfRange = errors.New("fun fact index out of range")
	ErrVersionConflict        = errors.New("fun facts record modified concurrently")
)

// nonContiguous holds the codes of states not bordering the lower 48.
var nonContiguous = map[string]struct{}{
	"AK": {},
	"HI": {},
}

// ContiguityFilter partitions the state list by the contig query parameter
type ContiguityFilter int

const (
	ContiguityAny ContiguityFilter = iota
	ContiguityOnly
	NonContiguousOnly
)

// ParseContiguityFilter maps the raw contig query value onto a filter.
// Anything other than "true" or "false" leaves the list unfiltered.
func ParseContiguityFilter(raw string) ContiguityFilter {
	switch raw {
	case "true":
		return ContiguityOnly
	case "false":
		return NonContiguousOnly
	default:
		return ContiguityAny
	}
}

// Match reports whether the state passes the filter
func (f ContiguityFilter) Match(s *State) bool {
	switch f {
	case ContiguityOnly:
		return s.IsContiguous()
	case NonContiguousOnly:
		return !s.IsContiguous()
	default:
		return true
	}
}

// State is the static reference record for one U.S. state
type State struct {
	Name            string   `json:"state"`
	Slug            string   `json:"slug"`
	Code            string   `json:"code"`
	Nickname        string   `json:"nickname"`
	Website         string   `json:"website,omitempty"`
	AdmissionDate   string   `json:"admission_date"`
	AdmissionNumber int      `json:"admission_number"`
	CapitalCity     string   `json:"capital_city"`
	CapitalURL      string   `json:"capital_url,omitempty"`
	Population      int64    `json:"population"`
	PopulationRank  int      `json:"population_rank"`
	ConstitutionURL string   `json:"constitution_url,omitempty"`
	StateFlagURL    string   `json:"state_flag_url,omitempty"`
	StateSealURL    string   `json:"state_seal_url,omitempty"`
	MapImageURL     string   `json:"map_image_url,omitempty"`
	LandscapeURL    string   `json:"landscape_background_url,omitempty"`
	SkylineURL      string   `json:"skyline_background_url,omitempty"`
	TwitterURL      string   `json:"twitter_url,omitempty"`
	FacebookURL     string   `json:"facebook_url,omitempty"`
	FunFacts        []string `json:"funFacts,omitempty"`
}

// IsContiguous reports whether the state belongs to the contiguous 48
func (s *State) IsContiguous() bool {
	_, excluded := nonContiguous[strings.ToUpper(s.Code)]
	return !excluded
}

// WithFunFacts returns a copy of the state carrying the given facts.
// The facts slice is copied so callers cannot alias overlay storage.
func (s State) WithFunFacts(facts []string) State {
	if len(facts) == 0 {
		s.FunFacts = nil
		return s
	}
	s.FunFacts = append([]string(nil), facts...)
	return s
}

// FunFacts is the persisted, mutable list of facts for one state
type FunFacts struct {
	ID        string   `json:"_id,omitempty" db:"id"`
	StateCode string   `json:"stateCode" db:"state_code"`
	FunFacts  []string `json:"funFacts" db:"fun_facts"`
	Version   int64    `json:"__v" db:"version"`
}

// NewFunFacts creates an unsaved record for the given state
func NewFunFacts(stateCode string, facts []string) *FunFacts {
	return &FunFacts{
		StateCode: strings.ToUpper(stateCode),
		FunFacts:  append([]string{}, facts...),
	}
}

// IsEmpty reports whether the record holds no facts
func (f *FunFacts) IsEmpty() bool {
	return f == nil || len(f.FunFacts) == 0
}

// Append adds facts to the end of the list
func (f *FunFacts) Append(facts ...string) {
	f.FunFacts = append(f.FunFacts, facts...)
}

// Replace overwrites the fact at the 1-based position
func (f *FunFacts) Replace(position int, fact string) error {
	i, err := f.offset(position)
	if err != nil {
		return err
	}
	f.FunFacts[i] = fact
	return nil
}

// Remove deletes the fact at the 1-based position, shifting later facts down
func (f *FunFacts) Remove(position int) error {
	i, err := f.offset(position)
	if err != nil {
		return err
	}
	f.FunFacts = append(f.FunFacts[:i], f.FunFacts[i+1:]...)
	return nil
}

func (f *FunFacts) offset(position int) (int, error) {
	if f.IsEmpty() {
		return 0, ErrNoFunFacts
	}
	i := position - 1
	if i < 0 || i >= len(f.FunFacts) {
		return 0, ErrFunFactIndexOutOfRange
	}
	return i, nil
}

// Clone returns a deep copy of the record
func (f *FunFacts) Clone() *FunFacts {
	if f == nil {
		return nil
	}
	c := *f
	c.FunFacts = append([]string{}, f.FunFacts...)
	return &c
}
