package combat

import "github.com/udisondev/arkdps/internal/model"

// AverageDPS weights skill and off-skill DPS over one activation cycle.
// SP recovers at 1+spBoost per second. Skills shorter than a second are
// treated as always active.
func AverageDPS(skillDPS, offDPS, duration, spCost, spBoost float64) float64 {
	if duration < 1 {
		return skillDPS
	}
	charge := spCost / (1 + spBoost)
	return (skillDPS*duration + offDPS*charge) / (duration + charge)
}

// TotalDamage is the damage of one skill activation. Skills shorter than a
// second count as a single second of skill DPS.
func TotalDamage(skillDPS, duration float64) float64 {
	if duration < 1 {
		return skillDPS
	}
	return skillDPS * duration
}

// Cycle simulates a skill level and the basic attack and averages them.
func Cycle(unit *model.OperatorUnit, skillID string, levelIndex int, enemy model.Stats) (model.CycleResult, error) {
	on, err := Simulate(unit, skillID, levelIndex, enemy)
	if err != nil {
		return model.CycleResult{}, err
	}
	if skillID == model.BasicAttackSkillID {
		return model.CycleResult{
			SkillDPS:    on.DPS,
			OffSkillDPS: on.DPS,
			AverageDPS:  on.DPS,
		}, nil
	}

	lv, err := unit.SkillLevel(skillID, levelIndex)
	if err != nil {
		return model.CycleResult{}, err
	}
	off, err := Simulate(unit, model.BasicAttackSkillID, 0, enemy)
	if err != nil {
		return model.CycleResult{}, err
	}

	return model.CycleResult{
		SkillDPS:    on.DPS,
		OffSkillDPS: off.DPS,
		TotalDamage: TotalDamage(on.DPS, lv.Duration),
		AverageDPS:  AverageDPS(on.DPS, off.DPS, lv.Duration, lv.SPCost, unit.Config.SPBoost),
		Duration:    lv.Duration,
		SPCost:      lv.SPCost,
	}, nil
}
