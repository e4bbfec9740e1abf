package model

import "slices"

// DamageKind is the mitigation class of an extra damage instance.
type DamageKind uint8

const (
	DamagePhysical DamageKind = iota + 1
	DamageArts
	DamageTrue
)

func (k DamageKind) String() string {
	switch k {
	case DamagePhysical:
		return "physical"
	case DamageArts:
		return "arts"
	case DamageTrue:
		return "true"
	default:
		return "unknown"
	}
}

// ExtraDamage is an additional damage instance dealt once per attack on top
// of the main hit, mitigated according to its kind.
type ExtraDamage struct {
	Kind   DamageKind `json:"kind"`
	Amount float64    `json:"amount"`
}

// Modifiers is the modifier bundle attached to one skill level.
//
// Flat lists are summed and applied once. Scaling lists compound
// sequentially: value *= (1 + m) for every m in order. Penetration is
// expressed as negative values (-0.3 scaling def = 30% defense ignore,
// -70 flat def = 70 defense ignore).
type Modifiers struct {
	FlatDef        []float64 `json:"flatDef,omitempty"`
	ScalingDef     []float64 `json:"scalingDef,omitempty"`
	FlatRes        []float64 `json:"flatRes,omitempty"`
	ScalingRes     []float64 `json:"scalingRes,omitempty"`
	BaseAttack     []float64 `json:"baseAttack,omitempty"`     // fractions summed: 0.4 = +40% ATK
	FlatAttack     []float64 `json:"flatAttack,omitempty"`     // flat ATK added after the base multiplier
	AttackMultiply []float64 `json:"attackMultiply,omitempty"` // literal multipliers: 1.5 = x1.5
	AttackSpeed    []float64 `json:"attackSpeed,omitempty"`    // ASPD points: 30 = +30%
	AttackInterval []float64 `json:"attackInterval,omitempty"` // seconds added to the base interval
	DamageTaken    []float64 `json:"damageTaken,omitempty"`    // compounding: 0.3 = x1.3

	// Extra holds extra damage instances; only the first by priority
	// physical, arts, true is honored per simulation.
	Extra []ExtraDamage `json:"extra,omitempty"`
}

// Merge returns a new bundle with other's lists appended after m's.
func (m Modifiers) Merge(other Modifiers) Modifiers {
	return Modifiers{
		FlatDef:        concat(m.FlatDef, other.FlatDef),
		ScalingDef:     concat(m.ScalingDef, other.ScalingDef),
		FlatRes:        concat(m.FlatRes, other.FlatRes),
		ScalingRes:     concat(m.ScalingRes, other.ScalingRes),
		BaseAttack:     concat(m.BaseAttack, other.BaseAttack),
		FlatAttack:     concat(m.FlatAttack, other.FlatAttack),
		AttackMultiply: concat(m.AttackMultiply, other.AttackMultiply),
		AttackSpeed:    concat(m.AttackSpeed, other.AttackSpeed),
		AttackInterval: concat(m.AttackInterval, other.AttackInterval),
		DamageTaken:    concat(m.DamageTaken, other.DamageTaken),
		Extra:          concat(m.Extra, other.Extra),
	}
}

// PrimaryExtra returns the single honored extra damage instance.
func (m Modifiers) PrimaryExtra() (ExtraDamage, bool) {
	for _, kind := range []DamageKind{DamagePhysical, DamageArts, DamageTrue} {
		for _, e := range m.Extra {
			if e.Kind == kind {
				return e, true
			}
		}
	}
	return ExtraDamage{}, false
}

func concat[T any](a, b []T) []T {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	return slices.Concat(a, b)
}

// SkillLevel is one discrete tier of a skill.
type SkillLevel struct {
	Level     int       `json:"level"`
	Duration  float64   `json:"duration"`
	SPCost    float64   `json:"spCost"`
	Modifiers Modifiers `json:"modifiers"`

	// HitCount and HitProbability override the operator's hit profile for
	// this level; zero means "inherit".
	HitCount       int     `json:"hitCount,omitempty"`
	HitProbability float64 `json:"hitProbability,omitempty"`
}

// Skill is an operator skill with its resolved levels.
type Skill struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Levels []SkillLevel `json:"levels"`
}

// BasicAttackSkillID identifies the off-skill basic attack pseudo-skill
// every operator unit carries.
const BasicAttackSkillID = "basic"
