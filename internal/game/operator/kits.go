package operator

import (
	"github.com/udisondev/arkdps/internal/data"
	"github.com/udisondev/arkdps/internal/model"
)

// Bespoke strategies for kits the blackboard cannot express.

// critPassive folds a talent crit (chance prob, damage x atk_scale) into an
// expected ATK multiplier. Crits splash onto up to splash targets.
func critPassive(splash int) PassiveFunc {
	return func(c *Context) model.Modifiers {
		rate := c.Talent(0, KeyProb)
		scale := c.Talent(0, KeyAtkScale)
		if rate <= 0 || scale <= 0 {
			return model.Modifiers{}
		}
		targets := float64(min(c.Targets(), splash))
		return model.Modifiers{
			AttackMultiply: []float64{1 + rate*(scale*targets-1)},
		}
	}
}

// bagpipe: talent crits splash onto two targets. Skills use the blackboard.
var bagpipe = Strategy{
	Passive: critPassive(2),
}

// mountain: talent crits hit a single target. Skill target counts come
// from max_target in the blackboard.
var mountain = Strategy{
	Passive: critPassive(1),
}

// ifrit: every attack hits all configured targets. The resistance talent
// goes through TalentPassive.
var ifrit = Strategy{
	Stats: func(c *Context, s model.Stats) model.Stats {
		return s.Derive(model.WithHits(c.Targets(), 1))
	},
}

// ceobe: each attack adds arts damage scaled by the unit's own DEF.
var ceobe = Strategy{
	Passive: func(c *Context) model.Modifiers {
		scale := c.Talent(0, "def_scale")
		if scale <= 0 {
			return model.Modifiers{}
		}
		return model.Modifiers{
			Extra: []model.ExtraDamage{{Kind: model.DamageArts, Amount: c.Stats.Def() * scale}},
		}
	},
}

// thorns: each attack adds arts damage scaled by ATK.
var thorns = Strategy{
	Passive: func(c *Context) model.Modifiers {
		scale := c.Talent(0, KeyAtkScale)
		if scale <= 0 {
			return model.Modifiers{}
		}
		return model.Modifiers{
			Extra: []model.ExtraDamage{{Kind: model.DamageArts, Amount: c.atk() * scale}},
		}
	},
}

// warmy: each attack adds true damage scaled by ATK.
var warmy = Strategy{
	Passive: func(c *Context) model.Modifiers {
		scale := c.Talent(0, "true_scale")
		if scale <= 0 {
			return model.Modifiers{}
		}
		return model.Modifiers{
			Extra: []model.ExtraDamage{{Kind: model.DamageTrue, Amount: c.atk() * scale}},
		}
	},
}

// chen: no talent passive. Skills with times > 1 add atk_scale*times of
// ATK as extra arts damage.
var chen = Strategy{
	Passive: NoPassive,
	Level: func(c *Context, skillID string, lv data.SkillLevelRecord) model.SkillLevel {
		out := Blackboard(c, skillID, lv)
		times := lv.Params[KeyTimes]
		if times <= 1 {
			return out
		}
		scale := lv.Params[KeyAtkScale]
		out.Modifiers.Extra = append(out.Modifiers.Extra, model.ExtraDamage{
			Kind:   model.DamageArts,
			Amount: c.atk() * scale * times,
		})
		return out
	},
}
