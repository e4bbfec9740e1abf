package calculator

import (
	"github.com/udisondev/arkdps/internal/model"
)

// listingConfig resolves operators at their highest progression so every
// skill and level shows up.
var listingConfig = model.OperatorConfig{Phase: 2, Trust: 100}

// SkillListing is one skill of an operator listing.
type SkillListing struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Levels []int  `json:"levels"`
}

// OperatorListing summarises a registered operator.
type OperatorListing struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Rarity     int            `json:"rarity"`
	Class      string         `json:"class,omitempty"`
	AttackType string         `json:"attackType"`
	Skills     []SkillListing `json:"skills"`
}

// EnemyListing summarises a catalog enemy.
type EnemyListing struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Def  float64 `json:"def"`
	Res  float64 `json:"res"`
}

// Operators lists every registered operator with data, sorted by id.
// Operators that fail to resolve are left out.
func (s *Service) Operators() []OperatorListing {
	ids := s.operators.IDs()
	out := make([]OperatorListing, 0, len(ids))
	for _, id := range ids {
		unit, err := s.operators.Resolve(id, listingConfig)
		if err != nil {
			continue
		}
		class, _ := unit.Stats.Class()
		at, _ := unit.Stats.AttackType()
		l := OperatorListing{
			ID:         unit.ID,
			Name:       unit.Stats.Name(),
			Rarity:     unit.Progression.Rarity,
			Class:      class,
			AttackType: at.String(),
			Skills:     make([]SkillListing, 0, len(unit.Skills)),
		}
		for _, sk := range unit.Skills {
			levels := make([]int, 0, len(sk.Levels))
			for _, lv := range sk.Levels {
				levels = append(levels, lv.Level)
			}
			l.Skills = append(l.Skills, SkillListing{ID: sk.ID, Name: sk.Name, Levels: levels})
		}
		out = append(out, l)
	}
	return out
}

// Enemies lists every catalog enemy with data, sorted by id.
func (s *Service) Enemies() []EnemyListing {
	units := s.enemies.All()
	out := make([]EnemyListing, 0, len(units))
	for _, u := range units {
		out = append(out, enemyListing(u))
	}
	return out
}

// Enemy returns one catalog enemy.
func (s *Service) Enemy(id string) (EnemyListing, error) {
	u, err := s.enemies.Resolve(id)
	if err != nil {
		return EnemyListing{}, err
	}
	return enemyListing(u), nil
}

func enemyListing(u *model.EnemyUnit) EnemyListing {
	return EnemyListing{
		ID:   u.ID,
		Name: u.Stats.Name(),
		Def:  u.Stats.Def(),
		Res:  u.Stats.Res(),
	}
}
