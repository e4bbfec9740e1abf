package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     OperatorConfig
		wantErr bool
	}{
		{"zero", OperatorConfig{}, false},
		{"full", OperatorConfig{Phase: 2, Level: 90, Trust: 200, Potential: 5, ModuleLevel: 3, Targets: 3}, false},
		{"negative phase", OperatorConfig{Phase: -1}, true},
		{"negative level", OperatorConfig{Level: -10}, true},
		{"negative trust", OperatorConfig{Trust: -1}, true},
		{"trust above cap", OperatorConfig{Trust: 201}, true},
		{"negative potential", OperatorConfig{Potential: -2}, true},
		{"negative module level", OperatorConfig{ModuleLevel: -1}, true},
		{"negative sp boost", OperatorConfig{SPBoost: -0.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOperatorConfig_TargetCount(t *testing.T) {
	assert.Equal(t, 1, OperatorConfig{}.TargetCount())
	assert.Equal(t, 4, OperatorConfig{Targets: 4}.TargetCount())
}

func TestOperatorUnit_SkillLevel(t *testing.T) {
	u := &OperatorUnit{
		ID: "op",
		Skills: []Skill{
			{ID: BasicAttackSkillID, Levels: []SkillLevel{{Level: 1}}},
			{ID: "s1", Levels: []SkillLevel{{Level: 1}, {Level: 7}}},
		},
	}

	lv, err := u.SkillLevel("s1", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, lv.Level)

	_, err = u.SkillLevel("s1", 2)
	assert.ErrorIs(t, err, ErrLevelIndexOutOfRange)

	_, err = u.SkillLevel("s9", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModifiers_MergeAndPrimaryExtra(t *testing.T) {
	a := Modifiers{BaseAttack: []float64{0.1}, Extra: []ExtraDamage{{Kind: DamageTrue, Amount: 10}}}
	b := Modifiers{BaseAttack: []float64{0.2}, ScalingDef: []float64{-0.3}, Extra: []ExtraDamage{{Kind: DamageArts, Amount: 20}}}

	m := a.Merge(b)
	assert.Equal(t, []float64{0.1, 0.2}, m.BaseAttack)
	assert.Equal(t, []float64{-0.3}, m.ScalingDef)
	assert.Nil(t, m.FlatDef)

	extra, ok := m.PrimaryExtra()
	require.True(t, ok)
	assert.Equal(t, ExtraDamage{Kind: DamageArts, Amount: 20}, extra)

	// merge must not alias the receiver's backing array
	m.BaseAttack[0] = 9
	assert.Equal(t, 0.1, a.BaseAttack[0])

	_, ok = Modifiers{}.PrimaryExtra()
	assert.False(t, ok)
}

func TestRange(t *testing.T) {
	r := DefaultRange()
	assert.Equal(t, 101, r.Count())
	assert.Equal(t, 10000.0, r.At(100))

	r = Range{Min: 0, Max: 200, Step: 100}
	require.NoError(t, r.Validate())
	assert.Equal(t, 3, r.Count())
	assert.Equal(t, []float64{0, 100, 200}, []float64{r.At(0), r.At(1), r.At(2)})

	assert.Equal(t, 100.0, Range{Min: 0, Max: 500}.Normalize().Step)
	assert.ErrorIs(t, Range{Min: 0, Max: 100, Step: -1}.Validate(), ErrInvalidConfiguration)
	assert.ErrorIs(t, Range{Min: -100, Max: 100, Step: 10}.Validate(), ErrInvalidConfiguration)
	assert.ErrorIs(t, Range{Min: 200, Max: 100, Step: 10}.Validate(), ErrInvalidConfiguration)
}

func TestRange_RejectsNonFiniteBounds(t *testing.T) {
	for _, r := range []Range{
		{Min: 0, Max: math.NaN(), Step: 100},
		{Min: math.NaN(), Max: 100, Step: 100},
		{Min: 0, Max: math.Inf(1), Step: 100},
		{Min: math.Inf(-1), Max: 100, Step: 100},
	} {
		assert.ErrorIs(t, r.Validate(), ErrInvalidConfiguration, "%+v", r)
	}
}

func TestSweepRequest_Axes(t *testing.T) {
	def, res := SweepRequest{}.Axes()
	assert.Equal(t, DefaultRange(), def)
	assert.Equal(t, DefaultRange(), res)

	def, res = SweepRequest{Def: &Range{Min: 0, Max: 200}, Res: &Range{Min: 10, Max: 50, Step: 5}}.Axes()
	assert.Equal(t, Range{Min: 0, Max: 200, Step: 100}, def)
	assert.Equal(t, 9, res.Count())
}
