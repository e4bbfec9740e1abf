package operator

import (
	"fmt"
	"log/slog"
)

// registrations is the operator strategy table. Adding an operator means
// adding one line here and its record to the game data.
var registrations = []struct {
	id       string
	strategy Strategy
}{
	{"char_010_chen", chen},         // Ch'en
	{"char_017_huang", Generic()},   // Blaze
	{"char_103_angel", Generic()},   // Exusiai
	{"char_123_fang", Generic()},    // Fang
	{"char_124_kroos", Generic()},   // Kroos
	{"char_128_plosis", Generic()},  // Ptilopsis
	{"char_134_ifrit", ifrit},       // Ifrit
	{"char_172_svrash", Generic()},  // SilverAsh
	{"char_180_amgoat", Generic()},  // Eyjafjalla
	{"char_2012_typhon", Generic()}, // Typhon
	{"char_2013_cerber", ceobe},     // Ceobe
	{"char_210_stward", Generic()},  // Steward
	{"char_222_bpipe", bagpipe},     // Bagpipe
	{"char_264_f12yin", mountain},   // Mountain
	{"char_285_medic2", Generic()},  // Lancet-2
	{"char_293_thorns", thorns},     // Thorns
	{"char_4128_warmy", warmy},      // Warmy
}

// RegisterAll registers every operator strategy into r.
func RegisterAll(r *Registry) error {
	for _, reg := range registrations {
		if err := r.Register(reg.id, reg.strategy); err != nil {
			return fmt.Errorf("register operator: %w", err)
		}
	}
	slog.Info("operators registered", "count", len(registrations))
	return nil
}
