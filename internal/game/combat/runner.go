package combat

import (
	"fmt"

	"github.com/udisondev/arkdps/internal/model"
)

// Simulate runs one skill level of unit against enemy and returns the
// steady-state result. It is pure: identical inputs give identical results.
func Simulate(unit *model.OperatorUnit, skillID string, levelIndex int, enemy model.Stats) (model.SimulationResult, error) {
	lv, err := unit.SkillLevel(skillID, levelIndex)
	if err != nil {
		return model.SimulationResult{}, err
	}
	stats := unit.Stats
	m := lv.Modifiers

	if _, ok := stats.Attack(); !ok {
		return model.SimulationResult{}, fmt.Errorf("%s: attack absent: %w", stats.Name(), model.ErrInvalidConfiguration)
	}
	aps, err := AttacksPerSecond(stats, m.AttackSpeed, m.AttackInterval)
	if err != nil {
		return model.SimulationResult{}, err
	}
	finalAtk := FinalAttack(stats, m.BaseAttack, m.AttackMultiply, sum(m.FlatAttack))

	attackType, _ := stats.AttackType()
	var perHit float64
	switch attackType {
	case model.AttackPhysical:
		perHit = PhysicalDamage(finalAtk, enemy, m.FlatDef, m.ScalingDef, m.DamageTaken)
	case model.AttackArts:
		perHit = ArtsDamage(finalAtk, enemy, m.FlatRes, m.ScalingRes, m.DamageTaken)
	case model.AttackHealing:
		perHit = finalAtk
	default:
		return model.SimulationResult{}, fmt.Errorf("%s: %s: %w", stats.Name(), attackType, model.ErrInvalidAttackType)
	}

	hits, prob := hitProfile(stats, lv)
	damage := perHit * float64(hits) * prob

	if extra, ok := m.PrimaryExtra(); ok {
		damage += extraDamage(extra, enemy, m)
	}

	return model.SimulationResult{
		Damage:           damage,
		DPS:              DamagePerSecond(aps, damage),
		AttacksPerSecond: aps,
		FinalAttack:      finalAtk,
		Def:              enemy.Def(),
		Res:              enemy.Res(),
		Label:            fmt.Sprintf("%s vs %s", stats.Name(), enemy.Name()),
	}, nil
}

func hitProfile(stats model.Stats, lv *model.SkillLevel) (int, float64) {
	hits, prob := stats.HitCount(), stats.HitProbability()
	if lv.HitCount > 0 {
		hits = lv.HitCount
	}
	if lv.HitProbability > 0 {
		prob = lv.HitProbability
	}
	return hits, prob
}

func extraDamage(extra model.ExtraDamage, enemy model.Stats, m model.Modifiers) float64 {
	switch extra.Kind {
	case model.DamagePhysical:
		return PhysicalDamage(extra.Amount, enemy, m.FlatDef, m.ScalingDef, m.DamageTaken)
	case model.DamageArts:
		return ArtsDamage(extra.Amount, enemy, m.FlatRes, m.ScalingRes, m.DamageTaken)
	default:
		return TrueDamage(extra.Amount, m.DamageTaken)
	}
}
