package model

import "fmt"

// MaxTrust is the favor point cap; stat bonuses stop growing at 100.
const MaxTrust = 200

// Buffs are external buffs from allied units.
type Buffs struct {
	Atk     float64 `json:"atk" yaml:"atk"`           // fraction: 0.4 = +40% ATK
	FlatAtk float64 `json:"flatAtk" yaml:"flat_atk"`  // flat ATK
	Aspd    float64 `json:"aspd" yaml:"aspd"`         // ASPD points
	Fragile float64 `json:"fragile" yaml:"fragile"`   // fraction: 0.3 = +30% damage taken
}

// Shred is defense/resistance reduction applied to the target.
type Shred struct {
	Def     float64 `json:"def" yaml:"def"`            // percent: 40 = -40% DEF
	DefFlat float64 `json:"defFlat" yaml:"def_flat"`   // flat DEF reduction
	Res     float64 `json:"res" yaml:"res"`            // percent
	ResFlat float64 `json:"resFlat" yaml:"res_flat"`   // flat RES reduction
}

// OperatorConfig is the caller-supplied progression of an operator.
type OperatorConfig struct {
	Phase       int    `json:"phase" yaml:"phase"`
	Level       int    `json:"level" yaml:"level"` // 0 = max for phase
	Trust       int    `json:"trust" yaml:"trust"`
	Potential   int    `json:"potential" yaml:"potential"` // rank index 0..5
	ModuleID    string `json:"moduleId,omitempty" yaml:"module_id"`
	ModuleLevel int    `json:"moduleLevel" yaml:"module_level"` // 0 = max

	Buffs   Buffs   `json:"buffs" yaml:"buffs"`
	Shred   Shred   `json:"shred" yaml:"shred"`
	SPBoost float64 `json:"spBoost" yaml:"sp_boost"`
	Targets int     `json:"targets" yaml:"targets"` // 0 = 1
}

// Validate rejects negative progression values.
func (c OperatorConfig) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"phase", c.Phase},
		{"level", c.Level},
		{"trust", c.Trust},
		{"potential", c.Potential},
		{"module level", c.ModuleLevel},
		{"targets", c.Targets},
	}
	for _, ch := range checks {
		if ch.value < 0 {
			return fmt.Errorf("%s %d is negative: %w", ch.name, ch.value, ErrInvalidConfiguration)
		}
	}
	if c.Trust > MaxTrust {
		return fmt.Errorf("trust %d exceeds %d: %w", c.Trust, MaxTrust, ErrInvalidConfiguration)
	}
	if c.SPBoost < 0 {
		return fmt.Errorf("sp boost %v is negative: %w", c.SPBoost, ErrInvalidConfiguration)
	}
	return nil
}

// TargetCount returns the configured target count, at least one.
func (c OperatorConfig) TargetCount() int {
	return max(1, c.Targets)
}

// Progression is the effective progression after clamping to what the
// operator's rarity allows.
type Progression struct {
	Rarity      int    `json:"rarity"`
	Phase       int    `json:"phase"`
	Level       int    `json:"level"`
	Trust       int    `json:"trust"`
	Potential   int    `json:"potential"`
	ModuleID    string `json:"moduleId,omitempty"`
	ModuleLevel int    `json:"moduleLevel"`
}

// OperatorUnit is the live combatant derived from base data and a
// configuration. It is rebuilt whenever the configuration changes.
type OperatorUnit struct {
	ID          string
	Stats       Stats
	Progression Progression
	Config      OperatorConfig
	Skills      []Skill
}

// Skill returns the skill with the given id.
func (u *OperatorUnit) Skill(id string) (*Skill, error) {
	for i := range u.Skills {
		if u.Skills[i].ID == id {
			return &u.Skills[i], nil
		}
	}
	return nil, fmt.Errorf("operator %s: skill %q: %w", u.ID, id, ErrNotFound)
}

// SkillLevel resolves a level index of a skill.
func (u *OperatorUnit) SkillLevel(skillID string, levelIndex int) (*SkillLevel, error) {
	sk, err := u.Skill(skillID)
	if err != nil {
		return nil, err
	}
	if levelIndex < 0 || levelIndex >= len(sk.Levels) {
		return nil, fmt.Errorf("operator %s: skill %q level index %d of %d: %w",
			u.ID, skillID, levelIndex, len(sk.Levels), ErrLevelIndexOutOfRange)
	}
	return &sk.Levels[levelIndex], nil
}

// EnemyUnit is an enemy resolved from the enemy catalog.
type EnemyUnit struct {
	ID     string
	Stats  Stats
	Skills []Skill // reserved; unused by current formulas
}
