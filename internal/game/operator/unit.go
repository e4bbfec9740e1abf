package operator

import (
	"fmt"

	"github.com/udisondev/arkdps/internal/data"
	"github.com/udisondev/arkdps/internal/model"
)

// BasicAttackName is the display name of the off-skill pseudo-skill.
const BasicAttackName = "Attack"

// Build derives a live unit from a raw record, a configuration and the
// operator's strategy. Skills beyond the phase's slots and levels beyond
// the phase's skill level cap are dropped.
func Build(rec *data.OperatorRecord, cfg model.OperatorConfig, s Strategy) (*model.OperatorUnit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("operator %s: %w", rec.ID, err)
	}
	c, err := newContext(rec, cfg)
	if err != nil {
		return nil, err
	}
	c.Stats = s.stats(c, c.Stats)
	if err := c.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("operator %s: %w", rec.ID, err)
	}

	shared := s.passive(c).Merge(common(c))

	skills := make([]model.Skill, 0, len(rec.Skills)+1)
	skills = append(skills, model.Skill{
		ID:   model.BasicAttackSkillID,
		Name: BasicAttackName,
		Levels: []model.SkillLevel{{
			Level:     1,
			Modifiers: shared,
		}},
	})

	phase := c.Progression.Phase
	maxSkillLevel := data.MaxSkillLevel(phase)
	for i, sk := range rec.Skills {
		if i >= data.SkillSlots(phase) {
			break
		}
		levels := make([]model.SkillLevel, 0, len(sk.Levels))
		for _, lv := range sk.Levels {
			if lv.Level > maxSkillLevel {
				continue
			}
			out := s.level(c, sk.ID, lv)
			out.Modifiers = out.Modifiers.Merge(shared)
			levels = append(levels, out)
		}
		if len(levels) == 0 {
			continue
		}
		skills = append(skills, model.Skill{ID: sk.ID, Name: sk.Name, Levels: levels})
	}

	return &model.OperatorUnit{
		ID:          rec.ID,
		Stats:       c.Stats,
		Progression: c.Progression,
		Config:      cfg,
		Skills:      skills,
	}, nil
}
