package data

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arkdps/internal/model"
)

func TestLoadEmbedded(t *testing.T) {
	s, err := LoadEmbedded()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(s.OperatorIDs()), 15)
	assert.GreaterOrEqual(t, len(s.EnemyIDs()), 40)
	assert.IsNonDecreasing(t, s.OperatorIDs())

	exu, err := s.Operator("char_103_angel")
	require.NoError(t, err)
	assert.Equal(t, "Exusiai", exu.Name)
	assert.Equal(t, 6, exu.Rarity)
	assert.Len(t, exu.Phases, 3)
	assert.Equal(t, 540.0, exu.Phases[2].Max.Atk)
	require.Len(t, exu.Skills, 3)
	assert.Equal(t, 10, exu.Skills[2].Levels[len(exu.Skills[2].Levels)-1].Level)

	mod, ok := exu.Module("uniequip_002_angel")
	require.True(t, ok)
	assert.Len(t, mod.Levels, 3)

	slug, err := s.Enemy("enemy_1007_slime")
	require.NoError(t, err)
	assert.Equal(t, "Acid Originium Slug", slug.Name)
	assert.Equal(t, 20.0, slug.Attributes.Def)
}

func TestLoadEmbedded_EveryRecordValid(t *testing.T) {
	s, err := LoadEmbedded()
	require.NoError(t, err)

	for _, id := range s.OperatorIDs() {
		rec, err := s.Operator(id)
		require.NoError(t, err)
		_, err = model.ParseAttackType(rec.AttackType)
		assert.NoError(t, err, id)
		for _, sk := range rec.Skills {
			assert.NotEmpty(t, sk.Levels, "%s/%s", id, sk.ID)
		}
	}
}

func TestStore_NotFound(t *testing.T) {
	s, err := LoadEmbedded()
	require.NoError(t, err)

	_, err = s.Operator("char_999_nobody")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Enemy("enemy_9999_nothing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLoad_Duplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"operators.yaml": {Data: []byte("operators: []\n")},
		"enemies.yaml": {Data: []byte(`enemies:
  - {id: enemy_a, name: A, attributes: {def: 1}}
  - {id: enemy_a, name: A again, attributes: {def: 2}}
`)},
	}
	_, err := Load(fsys)
	assert.ErrorIs(t, err, model.ErrDuplicateRegistration)
}

func TestLoad_BadOperator(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "operators:\n  - {name: X, rarity: 1, phases: [{max: {base_attack_time: 1}}]}\n"},
		{"bad rarity", "operators:\n  - {id: x, rarity: 7, phases: [{max: {base_attack_time: 1}}]}\n"},
		{"phase count", "operators:\n  - {id: x, rarity: 6, phases: [{max: {base_attack_time: 1}}]}\n"},
		{"zero interval", "operators:\n  - {id: x, rarity: 1, phases: [{max: {base_attack_time: 0}}]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"operators.yaml": {Data: []byte(tt.yaml)},
				"enemies.yaml":   {Data: []byte("enemies: []\n")},
			}
			_, err := Load(fsys)
			assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
		})
	}
}

func TestLoad_NegativeEnemyAttributes(t *testing.T) {
	for _, attrs := range []string{"{def: -1}", "{magic_resistance: -10}", "{max_hp: -5}"} {
		fsys := fstest.MapFS{
			"operators.yaml": {Data: []byte("operators: []\n")},
			"enemies.yaml":   {Data: []byte("enemies:\n  - {id: enemy_a, name: A, attributes: " + attrs + "}\n")},
		}
		_, err := Load(fsys)
		assert.ErrorIs(t, err, model.ErrInvalidConfiguration, attrs)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{"enemies.yaml": {Data: []byte("enemies: []\n")}})
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadDir(dir)
	assert.Error(t, err)

	s, err := LoadDir("")
	require.NoError(t, err)
	assert.NotEmpty(t, s.EnemyIDs())
}
