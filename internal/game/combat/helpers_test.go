package combat

import "github.com/udisondev/arkdps/internal/model"

// newTestUnit builds a unit with one skill "s1" holding the given levels and
// a plain basic attack.
func newTestUnit(atk, interval float64, attackType model.AttackType, levels ...model.SkillLevel) *model.OperatorUnit {
	if len(levels) == 0 {
		levels = []model.SkillLevel{{Level: 1}}
	}
	return &model.OperatorUnit{
		ID: "test_op",
		Stats: model.NewStats("Tester", 0, 0,
			model.WithAttack(atk),
			model.WithAttackInterval(interval),
			model.WithAttackType(attackType),
		),
		Skills: []model.Skill{
			{ID: model.BasicAttackSkillID, Name: "Attack", Levels: []model.SkillLevel{{Level: 1}}},
			{ID: "s1", Name: "Skill", Levels: levels},
		},
	}
}

func enemyStats(def, res float64) model.Stats {
	return model.NewStats("Dummy", def, res)
}
