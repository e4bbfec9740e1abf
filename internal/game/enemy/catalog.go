// Package enemy resolves enemy identifiers to canonical Stats.
package enemy

import (
	"fmt"
	"slices"

	"github.com/udisondev/arkdps/internal/data"
	"github.com/udisondev/arkdps/internal/model"
)

// StatsFunc converts a raw enemy record to Stats. It reads def, res and
// occasionally the name; every operator-only field stays absent.
type StatsFunc func(rec *data.EnemyRecord) model.Stats

// Catalog maps enemy ids to their StatsFunc. It is populated once at
// startup and read-only afterwards.
type Catalog struct {
	source data.EnemySource
	byID   map[string]StatsFunc
}

// NewCatalog creates an empty catalog backed by source.
func NewCatalog(source data.EnemySource) *Catalog {
	return &Catalog{
		source: source,
		byID:   make(map[string]StatsFunc, 64),
	}
}

// Register adds one enemy. A second registration for the same id fails.
func (c *Catalog) Register(id string, fn StatsFunc) error {
	if id == "" || fn == nil {
		return fmt.Errorf("enemy %q: empty registration: %w", id, model.ErrInvalidConfiguration)
	}
	if _, exists := c.byID[id]; exists {
		return fmt.Errorf("enemy %q already registered: %w", id, model.ErrDuplicateRegistration)
	}
	c.byID[id] = fn
	return nil
}

// MustRegister is Register that panics; for static tables only.
func (c *Catalog) MustRegister(id string, fn StatsFunc) {
	if err := c.Register(id, fn); err != nil {
		panic(err)
	}
}

// Resolve returns the enemy unit for id.
func (c *Catalog) Resolve(id string) (*model.EnemyUnit, error) {
	fn, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("enemy %q not registered: %w", id, model.ErrNotFound)
	}
	rec, err := c.source.Enemy(id)
	if err != nil {
		return nil, err
	}
	return &model.EnemyUnit{ID: id, Stats: fn(rec)}, nil
}

// Stats is a shortcut for Resolve(id).Stats.
func (c *Catalog) Stats(id string) (model.Stats, error) {
	u, err := c.Resolve(id)
	if err != nil {
		return model.Stats{}, err
	}
	return u.Stats, nil
}

// IDs returns the registered ids, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// All resolves every registered enemy present in the data source. Ids
// without a record are skipped.
func (c *Catalog) All() []*model.EnemyUnit {
	ids := c.IDs()
	out := make([]*model.EnemyUnit, 0, len(ids))
	for _, id := range ids {
		u, err := c.Resolve(id)
		if err != nil {
			continue
		}
		out = append(out, u)
	}
	return out
}
