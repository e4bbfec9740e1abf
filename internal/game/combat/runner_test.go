package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arkdps/internal/model"
)

func TestSimulate_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		attackType model.AttackType
		def, res   float64
		wantDamage float64
		wantDPS    float64
	}{
		{"physical vs def 800", model.AttackPhysical, 800, 0, 200, 200},
		{"physical floor vs def 1000", model.AttackPhysical, 1000, 0, 50, 50},
		{"arts vs res 30", model.AttackArts, 0, 30, 700, 700},
		{"healing ignores mitigation", model.AttackHealing, 800, 30, 1000, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := newTestUnit(1000, 1.0, tt.attackType)
			r, err := Simulate(unit, "s1", 0, enemyStats(tt.def, tt.res))
			require.NoError(t, err)

			assert.InDelta(t, 1000.0, r.FinalAttack, 1e-9)
			assert.InDelta(t, 1.0, r.AttacksPerSecond, 1e-12)
			assert.InDelta(t, tt.wantDamage, r.Damage, 1e-9)
			assert.InDelta(t, tt.wantDPS, r.DPS, 1e-9)
			assert.Equal(t, tt.def, r.Def)
			assert.Equal(t, tt.res, r.Res)
			assert.Equal(t, "Tester vs Dummy", r.Label)
		})
	}
}

func TestSimulate_Errors(t *testing.T) {
	unit := newTestUnit(1000, 1.0, model.AttackPhysical)

	_, err := Simulate(unit, "missing", 0, enemyStats(0, 0))
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = Simulate(unit, "s1", 1, enemyStats(0, 0))
	assert.ErrorIs(t, err, model.ErrLevelIndexOutOfRange)

	_, err = Simulate(unit, "s1", -1, enemyStats(0, 0))
	assert.ErrorIs(t, err, model.ErrLevelIndexOutOfRange)

	untyped := newTestUnit(1000, 1.0, model.AttackUnknown)
	_, err = Simulate(untyped, "s1", 0, enemyStats(0, 0))
	assert.ErrorIs(t, err, model.ErrInvalidAttackType)

	broken := newTestUnit(1000, 1.0, model.AttackPhysical, model.SkillLevel{
		Modifiers: model.Modifiers{AttackInterval: []float64{-1.5}},
	})
	_, err = Simulate(broken, "s1", 0, enemyStats(0, 0))
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestSimulate_Modifiers(t *testing.T) {
	unit := newTestUnit(1000, 1.0, model.AttackPhysical, model.SkillLevel{
		Level: 7,
		Modifiers: model.Modifiers{
			BaseAttack:     []float64{0.5},
			AttackMultiply: []float64{1.2},
			AttackSpeed:    []float64{50},
			FlatDef:        []float64{-100},
		},
	})
	r, err := Simulate(unit, "s1", 0, enemyStats(600, 0))
	require.NoError(t, err)

	// atk 1000*1.5*1.2 = 1800; def 500; aps 1.5
	assert.InDelta(t, 1800.0, r.FinalAttack, 1e-9)
	assert.InDelta(t, 1300.0, r.Damage, 1e-9)
	assert.InDelta(t, 1950.0, r.DPS, 1e-9)
}

func TestSimulate_HitProfile(t *testing.T) {
	unit := newTestUnit(1000, 1.0, model.AttackPhysical, model.SkillLevel{HitCount: 5, HitProbability: 0.5})
	r, err := Simulate(unit, "s1", 0, enemyStats(800, 0))
	require.NoError(t, err)
	assert.InDelta(t, 200*5*0.5, r.Damage, 1e-9)

	unit.Stats = unit.Stats.Derive(model.WithHits(3, 1))
	r, err = Simulate(unit, model.BasicAttackSkillID, 0, enemyStats(800, 0))
	require.NoError(t, err)
	assert.InDelta(t, 600.0, r.Damage, 1e-9)
}

func TestSimulate_ExtraDamage(t *testing.T) {
	tests := []struct {
		name  string
		extra []model.ExtraDamage
		want  float64 // extra contribution vs def 300 / res 50
	}{
		{"physical", []model.ExtraDamage{{Kind: model.DamagePhysical, Amount: 500}}, 200},
		{"physical floored", []model.ExtraDamage{{Kind: model.DamagePhysical, Amount: 200}}, 10},
		{"arts", []model.ExtraDamage{{Kind: model.DamageArts, Amount: 500}}, 250},
		{"true", []model.ExtraDamage{{Kind: model.DamageTrue, Amount: 500}}, 500},
		{"priority picks physical", []model.ExtraDamage{
			{Kind: model.DamageTrue, Amount: 500},
			{Kind: model.DamageArts, Amount: 500},
			{Kind: model.DamagePhysical, Amount: 500},
		}, 200},
		{"priority arts over true", []model.ExtraDamage{
			{Kind: model.DamageTrue, Amount: 500},
			{Kind: model.DamageArts, Amount: 500},
		}, 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := newTestUnit(1000, 1.0, model.AttackPhysical, model.SkillLevel{
				Modifiers: model.Modifiers{Extra: tt.extra},
			})
			r, err := Simulate(unit, "s1", 0, enemyStats(300, 50))
			require.NoError(t, err)
			assert.InDelta(t, 700+tt.want, r.Damage, 1e-9)
			assert.InDelta(t, r.Damage*r.AttacksPerSecond, r.DPS, 1e-9)
		})
	}
}

func TestSimulate_Idempotent(t *testing.T) {
	unit := newTestUnit(873.4, 1.3, model.AttackArts, model.SkillLevel{
		Modifiers: model.Modifiers{
			BaseAttack:  []float64{0.37},
			ScalingRes:  []float64{-0.44},
			DamageTaken: []float64{0.15},
			AttackSpeed: []float64{12},
			Extra:       []model.ExtraDamage{{Kind: model.DamageTrue, Amount: 77.7}},
		},
	})
	enemy := enemyStats(250, 45)

	a, err := Simulate(unit, "s1", 0, enemy)
	require.NoError(t, err)
	b, err := Simulate(unit, "s1", 0, enemy)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCycle(t *testing.T) {
	unit := newTestUnit(1000, 1.0, model.AttackPhysical, model.SkillLevel{
		Duration:  20,
		SPCost:    40,
		Modifiers: model.Modifiers{BaseAttack: []float64{1.0}},
	})

	c, err := Cycle(unit, "s1", 0, enemyStats(0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 2000.0, c.SkillDPS, 1e-9)
	assert.InDelta(t, 1000.0, c.OffSkillDPS, 1e-9)
	assert.InDelta(t, 40000.0, c.TotalDamage, 1e-9)
	// (2000*20 + 1000*40) / 60
	assert.InDelta(t, 80000.0/60, c.AverageDPS, 1e-9)

	unit.Config.SPBoost = 1
	c, err = Cycle(unit, "s1", 0, enemyStats(0, 0))
	require.NoError(t, err)
	// charge time halves: (40000 + 20000) / 40
	assert.InDelta(t, 1500.0, c.AverageDPS, 1e-9)
}

func TestCycle_InstantSkillUsesSkillDPS(t *testing.T) {
	unit := newTestUnit(1000, 1.0, model.AttackPhysical, model.SkillLevel{
		Duration:  0,
		SPCost:    4,
		Modifiers: model.Modifiers{AttackMultiply: []float64{2}},
	})
	c, err := Cycle(unit, "s1", 0, enemyStats(0, 0))
	require.NoError(t, err)
	assert.InDelta(t, c.SkillDPS, c.AverageDPS, 1e-12)
	assert.InDelta(t, 2000.0, c.TotalDamage, 1e-9)

	basic, err := Cycle(unit, model.BasicAttackSkillID, 0, enemyStats(0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, basic.AverageDPS, 1e-9)
}

func TestTotalDamage(t *testing.T) {
	assert.Equal(t, 500.0, TotalDamage(500, 0))
	assert.Equal(t, 500.0, TotalDamage(500, 0.5))
	assert.Equal(t, 500.0, TotalDamage(500, 1))
	assert.Equal(t, 15000.0, TotalDamage(500, 30))
}

func TestAverageDPS(t *testing.T) {
	assert.Equal(t, 500.0, AverageDPS(500, 100, 0.5, 30, 0))
	assert.InDelta(t, (500*10+100*30)/40.0, AverageDPS(500, 100, 10, 30, 0), 1e-12)
}
