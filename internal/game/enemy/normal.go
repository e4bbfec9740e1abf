package enemy

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/arkdps/internal/data"
	"github.com/udisondev/arkdps/internal/model"
)

// Standard reads name, def and magic resistance from the record.
func Standard(rec *data.EnemyRecord) model.Stats {
	return model.NewStats(rec.Name, rec.Attributes.Def, rec.Attributes.MagicResistance)
}

// Named is Standard with a display name override.
func Named(name string) StatsFunc {
	return func(rec *data.EnemyRecord) model.Stats {
		return Standard(rec).WithName(name)
	}
}

// normalEnemies - таблица регистрации обычных врагов.
var normalEnemies = []struct {
	id string
	fn StatsFunc
}{
	{"enemy_1000_gopro", Standard},
	{"enemy_1000_gopro_2", Standard},
	{"enemy_1000_gopro_3", Standard},
	{"enemy_1001_slime_2", Standard},
	{"enemy_1001_slime_3", Standard},
	{"enemy_1002_nsabr", Standard},
	{"enemy_1003_ncbow", Standard},
	{"enemy_1003_ncbow_2", Standard},
	{"enemy_1004_mslime", Standard},
	{"enemy_1004_mslime_2", Standard},
	{"enemy_1005_yokai", Standard},
	{"enemy_1007_slime", Standard},
	{"enemy_1008_ghost", Named("Ghost (phased)")},
	{"enemy_1009_lurker", Standard},
	{"enemy_1011_wizard", Standard},
	{"enemy_1011_wizard_2", Standard},
	{"enemy_1013_airdrp", Standard},
	{"enemy_1013_airdrp_2", Standard},
	{"enemy_1014_rogue", Standard},
	{"enemy_1014_rogue_2", Standard},
	{"enemy_1015_litamr", Standard},
	{"enemy_1015_litamr_2", Standard},
	{"enemy_1016_diaman", Standard},
	{"enemy_1017_defdrn", Standard},
	{"enemy_1019_jshoot", Standard},
	{"enemy_1019_jshoot_2", Standard},
	{"enemy_1020_obsv", Standard},
	{"enemy_1021_bslime", Standard},
	{"enemy_1021_bslime_2", Standard},
	{"enemy_1023_jmage", Standard},
	{"enemy_1023_jmage_2", Standard},
	{"enemy_1024_mortar", Standard},
	{"enemy_1024_mortar_2", Standard},
	{"enemy_1026_aghost", Named("Armored Ghost (phased)")},
	{"enemy_1027_mob", Standard},
	{"enemy_1027_mob_2", Standard},
	{"enemy_1028_mocock", Standard},
	{"enemy_1028_mocock_2", Standard},
	{"enemy_1029_shdsbr", Standard},
	{"enemy_1029_shdsbr_2", Standard},
}

// RegisterAll registers every normal enemy into c.
func RegisterAll(c *Catalog) error {
	for _, e := range normalEnemies {
		if err := c.Register(e.id, e.fn); err != nil {
			return fmt.Errorf("register enemy: %w", err)
		}
	}
	slog.Info("enemies registered", "count", len(normalEnemies))
	return nil
}
