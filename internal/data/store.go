package data

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/arkdps/internal/model"
)

//go:embed gamedata/*.yaml
var gamedataFS embed.FS

const (
	operatorsFile = "operators.yaml"
	enemiesFile   = "enemies.yaml"
)

// OperatorSource is a read-only lookup of raw operator records.
type OperatorSource interface {
	Operator(id string) (*OperatorRecord, error)
}

// EnemySource is a read-only lookup of raw enemy records.
type EnemySource interface {
	Enemy(id string) (*EnemyRecord, error)
}

// Source combines both lookups.
type Source interface {
	OperatorSource
	EnemySource
}

// Store is an immutable in-memory Source built once at startup.
type Store struct {
	operators map[string]*OperatorRecord
	enemies   map[string]*EnemyRecord
}

type operatorsDoc struct {
	Operators []OperatorRecord `yaml:"operators"`
}

type enemiesDoc struct {
	Enemies []EnemyRecord `yaml:"enemies"`
}

// LoadEmbedded loads the game data compiled into the binary.
func LoadEmbedded() (*Store, error) {
	sub, err := fs.Sub(gamedataFS, "gamedata")
	if err != nil {
		return nil, fmt.Errorf("opening embedded game data: %w", err)
	}
	return Load(sub)
}

// LoadDir loads operators.yaml and enemies.yaml from dir.
// Empty dir falls back to the embedded data.
func LoadDir(dir string) (*Store, error) {
	if dir == "" {
		return LoadEmbedded()
	}
	return Load(os.DirFS(dir))
}

// Load reads game data from fsys. Duplicate ids fail the load.
func Load(fsys fs.FS) (*Store, error) {
	var ops operatorsDoc
	if err := decodeFile(fsys, operatorsFile, &ops); err != nil {
		return nil, err
	}
	var ens enemiesDoc
	if err := decodeFile(fsys, enemiesFile, &ens); err != nil {
		return nil, err
	}

	s, err := FromRecords(ops.Operators, ens.Enemies)
	if err != nil {
		return nil, err
	}

	slog.Info("loaded game data", "operators", len(s.operators), "enemies", len(s.enemies))
	return s, nil
}

// FromRecords builds a Store from already decoded records.
func FromRecords(operators []OperatorRecord, enemies []EnemyRecord) (*Store, error) {
	s := &Store{
		operators: make(map[string]*OperatorRecord, len(operators)),
		enemies:   make(map[string]*EnemyRecord, len(enemies)),
	}
	for i := range operators {
		rec := &operators[i]
		if err := validateOperator(rec); err != nil {
			return nil, err
		}
		if _, exists := s.operators[rec.ID]; exists {
			return nil, fmt.Errorf("operator %q: %w", rec.ID, model.ErrDuplicateRegistration)
		}
		s.operators[rec.ID] = rec
	}
	for i := range enemies {
		rec := &enemies[i]
		if err := validateEnemy(i, rec); err != nil {
			return nil, err
		}
		if _, exists := s.enemies[rec.ID]; exists {
			return nil, fmt.Errorf("enemy %q: %w", rec.ID, model.ErrDuplicateRegistration)
		}
		s.enemies[rec.ID] = rec
	}
	return s, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func validateEnemy(i int, rec *EnemyRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("enemy #%d has no id: %w", i, model.ErrInvalidConfiguration)
	}
	a := rec.Attributes
	if a.Def < 0 || a.MagicResistance < 0 || a.MaxHP < 0 || a.Atk < 0 {
		return fmt.Errorf("enemy %q: negative attribute: %w", rec.ID, model.ErrInvalidConfiguration)
	}
	return nil
}

func validateOperator(rec *OperatorRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("operator %q has no id: %w", rec.Name, model.ErrInvalidConfiguration)
	}
	maxPhase, err := MaxPhase(rec.Rarity)
	if err != nil {
		return fmt.Errorf("operator %q: %w", rec.ID, err)
	}
	if len(rec.Phases) != maxPhase+1 {
		return fmt.Errorf("operator %q: %d phases for rarity %d: %w",
			rec.ID, len(rec.Phases), rec.Rarity, model.ErrInvalidConfiguration)
	}
	for i, ph := range rec.Phases {
		if ph.Max.BaseAttackTime <= 0 {
			return fmt.Errorf("operator %q phase %d: base attack time %v: %w",
				rec.ID, i, ph.Max.BaseAttackTime, model.ErrInvalidConfiguration)
		}
	}
	return nil
}

// Operator returns the raw record for id.
func (s *Store) Operator(id string) (*OperatorRecord, error) {
	rec, ok := s.operators[id]
	if !ok {
		return nil, fmt.Errorf("operator %q: %w", id, model.ErrNotFound)
	}
	return rec, nil
}

// Enemy returns the raw record for id.
func (s *Store) Enemy(id string) (*EnemyRecord, error) {
	rec, ok := s.enemies[id]
	if !ok {
		return nil, fmt.Errorf("enemy %q: %w", id, model.ErrNotFound)
	}
	return rec, nil
}

// OperatorIDs returns all operator ids, sorted.
func (s *Store) OperatorIDs() []string {
	return sortedKeys(s.operators)
}

// EnemyIDs returns all enemy ids, sorted.
func (s *Store) EnemyIDs() []string {
	return sortedKeys(s.enemies)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
