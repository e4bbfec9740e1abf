package operator

import (
	"fmt"
	"maps"

	"github.com/udisondev/arkdps/internal/data"
	"github.com/udisondev/arkdps/internal/model"
)

// Context is the resolved progression of one operator that strategies
// read from. It is built fresh for every Resolve call.
type Context struct {
	Record      *data.OperatorRecord
	Config      model.OperatorConfig
	Progression model.Progression

	// Stats are the live stats after progression (and after the strategy's
	// Stats hook once Build has run it).
	Stats model.Stats

	// AttackSpeed is the ASPD bonus from potential and module.
	AttackSpeed float64

	talents []map[string]float64 // nil entry: talent locked
	module  map[string]float64
}

// Targets returns the configured target count (at least 1).
func (c *Context) Targets() int {
	return c.Config.TargetCount()
}

// TalentUnlocked reports whether talent i has a satisfied candidate.
func (c *Context) TalentUnlocked(i int) bool {
	return i >= 0 && i < len(c.talents) && c.talents[i] != nil
}

// Talent returns param key of talent i, or 0 when locked or absent.
func (c *Context) Talent(i int, key string) float64 {
	if !c.TalentUnlocked(i) {
		return 0
	}
	return c.talents[i][key]
}

// atk returns the live ATK.
func (c *Context) atk() float64 {
	v, _ := c.Stats.Attack()
	return v
}

type attrs struct {
	maxHP, atk, def, res, cost, respawn, aspd float64
}

func (a *attrs) add(attribute string, value float64) {
	switch attribute {
	case "max_hp":
		a.maxHP += value
	case "atk":
		a.atk += value
	case "def":
		a.def += value
	case "magic_resistance":
		a.res += value
	case "cost":
		a.cost += value
	case "respawn_time":
		a.respawn += value
	case "attack_speed":
		a.aspd += value
	}
}

// newContext applies phase, level, potential, trust, module and talents to
// the raw record.
func newContext(rec *data.OperatorRecord, cfg model.OperatorConfig) (*Context, error) {
	maxPhase, err := data.MaxPhase(rec.Rarity)
	if err != nil {
		return nil, fmt.Errorf("operator %s: %w", rec.ID, err)
	}
	p := model.Progression{
		Rarity:    rec.Rarity,
		Phase:     min(cfg.Phase, maxPhase),
		Trust:     cfg.Trust,
		Potential: min(cfg.Potential, data.MaxPotential),
	}
	maxLevel, err := data.MaxLevel(p.Phase, rec.Rarity)
	if err != nil {
		return nil, fmt.Errorf("operator %s: %w", rec.ID, err)
	}
	p.Level = maxLevel
	if cfg.Level > 0 {
		p.Level = min(cfg.Level, maxLevel)
	}

	phase := rec.Phases[p.Phase]
	a := attrs{
		maxHP:   data.Interpolate(phase.Min.MaxHP, phase.Max.MaxHP, p.Level, maxLevel),
		atk:     data.Interpolate(phase.Min.Atk, phase.Max.Atk, p.Level, maxLevel),
		def:     data.Interpolate(phase.Min.Def, phase.Max.Def, p.Level, maxLevel),
		res:     data.Interpolate(phase.Min.MagicResistance, phase.Max.MagicResistance, p.Level, maxLevel),
		cost:    phase.Max.Cost,
		respawn: phase.Max.RespawnTime,
	}

	for _, pot := range rec.Potentials {
		if p.Potential >= pot.Rank {
			a.add(pot.Attribute, pot.Value)
		}
	}

	trust := float64(min(cfg.Trust, 100)) / 100
	a.maxHP += rec.Trust.MaxHP * trust
	a.atk += rec.Trust.Atk * trust
	a.def += rec.Trust.Def * trust

	c := &Context{Record: rec, Config: cfg}

	if cfg.ModuleID != "" {
		mod, ok := rec.Module(cfg.ModuleID)
		if !ok {
			return nil, fmt.Errorf("operator %s: module %q: %w", rec.ID, cfg.ModuleID, model.ErrNotFound)
		}
		if data.ModuleUnlocked(p.Phase, p.Level, rec.Rarity) && len(mod.Levels) > 0 {
			lvl := len(mod.Levels)
			if cfg.ModuleLevel > 0 {
				lvl = min(cfg.ModuleLevel, lvl)
			}
			lvl = min(lvl, data.ModuleLevelCap(cfg.Trust))
			stage := mod.Levels[lvl-1]
			for _, k := range sortedKeys(stage.Attributes) {
				a.add(k, stage.Attributes[k])
			}
			c.module = stage.Params
			p.ModuleID = mod.ID
			p.ModuleLevel = lvl
		}
	}

	c.talents = make([]map[string]float64, len(rec.Talents))
	for i, t := range rec.Talents {
		for _, cand := range t.Candidates {
			if candidateSatisfied(cand, p) {
				c.talents[i] = cand.Params
			}
		}
	}
	// Module stage params upgrade the first talent.
	if len(c.module) > 0 && len(c.talents) > 0 && c.talents[0] != nil {
		merged := maps.Clone(c.talents[0])
		maps.Copy(merged, c.module)
		c.talents[0] = merged
	}

	opts := []model.StatsOption{
		model.WithClass(rec.Profession),
		model.WithMaxHP(a.maxHP),
		model.WithAttack(a.atk),
		model.WithCost(a.cost),
		model.WithDeployTime(a.respawn),
		model.WithBlockCount(phase.Max.BlockCount),
		model.WithAttackInterval(phase.Max.BaseAttackTime),
	}
	// An unknown attack type stays absent; the runner reports it.
	if at, err := model.ParseAttackType(rec.AttackType); err == nil {
		opts = append(opts, model.WithAttackType(at))
	}

	c.Progression = p
	c.AttackSpeed = a.aspd
	c.Stats = model.NewStats(rec.Name, a.def, a.res, opts...)
	return c, nil
}

func candidateSatisfied(c data.TalentCandidate, p model.Progression) bool {
	if p.Phase < c.Phase || (p.Phase == c.Phase && p.Level < c.Level) {
		return false
	}
	if p.Potential < c.Potential {
		return false
	}
	if c.ModuleID != "" && (p.ModuleID != c.ModuleID || p.ModuleLevel < c.ModuleLevel) {
		return false
	}
	return true
}
