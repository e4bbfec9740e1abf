package operator

import (
	"maps"
	"slices"

	"github.com/udisondev/arkdps/internal/data"
	"github.com/udisondev/arkdps/internal/model"
)

// StatsFunc adjusts live stats after progression.
type StatsFunc func(c *Context, s model.Stats) model.Stats

// PassiveFunc returns modifiers applied to every bundle, basic attack
// included. Talents live here.
type PassiveFunc func(c *Context) model.Modifiers

// LevelFunc maps one skill level's blackboard to a bundle.
type LevelFunc func(c *Context, skillID string, lv data.SkillLevelRecord) model.SkillLevel

// Strategy is one operator's stat derivation. Nil hooks fall back to
// the generic behaviour: stats unchanged, TalentPassive, Blackboard.
type Strategy struct {
	Stats   StatsFunc
	Passive PassiveFunc
	Level   LevelFunc
}

// Generic returns the blackboard-only strategy.
func Generic() Strategy {
	return Strategy{}
}

func (s Strategy) stats(c *Context, st model.Stats) model.Stats {
	if s.Stats == nil {
		return st
	}
	return s.Stats(c, st)
}

func (s Strategy) passive(c *Context) model.Modifiers {
	if s.Passive == nil {
		return TalentPassive(c)
	}
	return s.Passive(c)
}

func (s Strategy) level(c *Context, skillID string, lv data.SkillLevelRecord) model.SkillLevel {
	if s.Level == nil {
		return Blackboard(c, skillID, lv)
	}
	return s.Level(c, skillID, lv)
}

// NoPassive ignores talents entirely.
func NoPassive(*Context) model.Modifiers {
	return model.Modifiers{}
}

// Blackboard keys understood by the generic strategy.
const (
	KeyAtk             = "atk"
	KeyAttackSpeed     = "attack_speed"
	KeyAtkScale        = "atk_scale"
	KeyBaseAttackTime  = "base_attack_time"
	KeyDefPenFixed     = "def_penetrate_fixed"
	KeyResPenFixed     = "magic_resist_penetrate_fixed"
	KeyDef             = "def"
	KeyMagicResistance = "magic_resistance"
	KeyDamageScale     = "damage_scale"
	KeyTimes           = "times"
	KeyProb            = "prob"
	KeyMaxTarget       = "max_target"
)

// applyKey adds one standard blackboard entry to m. It reports false for
// keys it does not know.
func applyKey(m *model.Modifiers, key string, v float64) bool {
	switch key {
	case KeyAtk:
		m.BaseAttack = append(m.BaseAttack, v)
	case KeyAttackSpeed:
		m.AttackSpeed = append(m.AttackSpeed, v)
	case KeyAtkScale:
		m.AttackMultiply = append(m.AttackMultiply, v)
	case KeyBaseAttackTime:
		m.AttackInterval = append(m.AttackInterval, v)
	case KeyDefPenFixed:
		m.FlatDef = append(m.FlatDef, -v)
	case KeyResPenFixed:
		m.FlatRes = append(m.FlatRes, -v)
	case KeyDef:
		m.ScalingDef = append(m.ScalingDef, v)
	case KeyMagicResistance:
		m.ScalingRes = append(m.ScalingRes, v)
	case KeyDamageScale:
		m.DamageTaken = append(m.DamageTaken, v-1)
	default:
		return false
	}
	return true
}

// Blackboard maps standard skill params to a bundle. Keys are applied in
// sorted order so equal inputs produce identical modifier lists.
func Blackboard(c *Context, _ string, lv data.SkillLevelRecord) model.SkillLevel {
	out := model.SkillLevel{
		Level:    lv.Level,
		Duration: lv.Duration,
		SPCost:   lv.SPCost,
	}
	for _, k := range sortedKeys(lv.Params) {
		v := lv.Params[k]
		if applyKey(&out.Modifiers, k, v) {
			continue
		}
		switch k {
		case KeyTimes:
			out.HitCount = int(v)
		case KeyProb:
			out.HitProbability = v
		}
	}
	// Every target in reach takes each hit.
	if maxTarget, ok := lv.Params[KeyMaxTarget]; ok {
		out.HitCount = max(out.HitCount, 1) * min(c.Targets(), int(maxTarget))
	}
	return out
}

// TalentPassive applies the standard keys of every unlocked talent.
// Hit-profile keys are ignored.
func TalentPassive(c *Context) model.Modifiers {
	var m model.Modifiers
	for i := range c.talents {
		if !c.TalentUnlocked(i) {
			continue
		}
		for _, k := range sortedKeys(c.talents[i]) {
			applyKey(&m, k, c.talents[i][k])
		}
	}
	return m
}

// common returns the modifiers every bundle receives: progression ASPD,
// external buffs and target shred.
func common(c *Context) model.Modifiers {
	var m model.Modifiers
	appendNonZero := func(dst *[]float64, v float64) {
		if v != 0 {
			*dst = append(*dst, v)
		}
	}
	b, s := c.Config.Buffs, c.Config.Shred

	appendNonZero(&m.AttackSpeed, c.AttackSpeed)
	appendNonZero(&m.BaseAttack, b.Atk)
	appendNonZero(&m.FlatAttack, b.FlatAtk)
	appendNonZero(&m.AttackSpeed, b.Aspd)
	appendNonZero(&m.DamageTaken, b.Fragile)
	appendNonZero(&m.FlatDef, -s.DefFlat)
	appendNonZero(&m.ScalingDef, -s.Def/100)
	appendNonZero(&m.FlatRes, -s.ResFlat)
	appendNonZero(&m.ScalingRes, -s.Res/100)
	return m
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
