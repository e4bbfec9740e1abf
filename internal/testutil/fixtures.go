package testutil

import (
	"testing"

	"github.com/udisondev/arkdps/internal/data"
	"github.com/udisondev/arkdps/internal/game/enemy"
	"github.com/udisondev/arkdps/internal/game/operator"
	"github.com/udisondev/arkdps/internal/model"
)

// Fixtures содержит часто используемые идентификаторы и конфигурации
// из встроенных игровых данных.
var Fixtures = struct {
	// Exusiai: физический снайпер без bespoke-стратегии
	OperatorID string
	SkillID    string // S3, 6 уровней на E2

	// Acid Originium Slug: def 20, res 0
	EnemyID string

	// E2, максимальный уровень, 100% trust
	Maxed model.OperatorConfig
}{
	OperatorID: "char_103_angel",
	SkillID:    "skchr_angel_3",
	EnemyID:    "enemy_1007_slime",
	Maxed:      model.OperatorConfig{Phase: 2, Trust: 100},
}

// Registries загружает встроенные игровые данные и регистрирует всех
// операторов и врагов.
func Registries(tb testing.TB) (*operator.Registry, *enemy.Catalog) {
	tb.Helper()

	store, err := data.LoadEmbedded()
	if err != nil {
		tb.Fatalf("loading embedded game data: %v", err)
	}

	ops := operator.NewRegistry(store)
	if err := operator.RegisterAll(ops); err != nil {
		tb.Fatalf("registering operators: %v", err)
	}

	enemies := enemy.NewCatalog(store)
	if err := enemy.RegisterAll(enemies); err != nil {
		tb.Fatalf("registering enemies: %v", err)
	}

	return ops, enemies
}

// Dummy возвращает врага только с def и res.
func Dummy(def, res float64) model.Stats {
	return model.NewStats("Dummy", def, res)
}
