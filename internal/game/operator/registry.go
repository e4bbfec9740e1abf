// Package operator maps operator identifiers to stat derivation strategies
// and builds live operator units from game data.
package operator

import (
	"fmt"
	"slices"

	"github.com/udisondev/arkdps/internal/data"
	"github.com/udisondev/arkdps/internal/model"
)

// Registry maps operator ids to strategies. It is populated once at
// startup and read-only afterwards, so concurrent Resolve calls are safe.
type Registry struct {
	source     data.OperatorSource
	strategies map[string]Strategy
}

// NewRegistry creates an empty registry backed by source.
func NewRegistry(source data.OperatorSource) *Registry {
	return &Registry{
		source:     source,
		strategies: make(map[string]Strategy, 32),
	}
}

// Register adds a strategy. A second registration for the same id fails.
func (r *Registry) Register(id string, s Strategy) error {
	if id == "" {
		return fmt.Errorf("operator id is empty: %w", model.ErrInvalidConfiguration)
	}
	if _, exists := r.strategies[id]; exists {
		return fmt.Errorf("operator %q already registered: %w", id, model.ErrDuplicateRegistration)
	}
	r.strategies[id] = s
	return nil
}

// MustRegister is Register that panics; for static tables only.
func (r *Registry) MustRegister(id string, s Strategy) {
	if err := r.Register(id, s); err != nil {
		panic(err)
	}
}

// Resolve builds the live unit of operator id under cfg.
func (r *Registry) Resolve(id string, cfg model.OperatorConfig) (*model.OperatorUnit, error) {
	s, ok := r.strategies[id]
	if !ok {
		return nil, fmt.Errorf("operator %q not registered: %w", id, model.ErrNotFound)
	}
	rec, err := r.source.Operator(id)
	if err != nil {
		return nil, err
	}
	return Build(rec, cfg, s)
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.strategies[id]
	return ok
}

// IDs returns the registered ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.strategies))
	for id := range r.strategies {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
