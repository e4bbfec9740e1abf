package data

import (
	"fmt"

	"github.com/udisondev/arkdps/internal/model"
)

// Таблицы прогрессии, индекс по rarity-1 (1..6 звёзд).
var (
	// MaxLevels - потолок уровня для [phase][rarity-1].
	MaxLevels = [3][6]int{
		{30, 30, 40, 45, 50, 50},
		{0, 0, 55, 60, 70, 80},
		{0, 0, 0, 70, 80, 90},
	}

	// MaxPromotions - максимальная фаза элиты для rarity.
	MaxPromotions = [6]int{0, 0, 1, 2, 2, 2}

	// MaxSkillLevels - максимальный уровень навыка для фазы (E2 открывает mastery).
	MaxSkillLevels = [3]int{4, 7, 10}
)

// ModuleUnlockOffset is how far below the E2 level cap a module unlocks.
const ModuleUnlockOffset = 30

// MaxModuleLevel is the highest module stage.
const MaxModuleLevel = 3

// MaxPotential is the highest potential rank index.
const MaxPotential = 5

// MaxPhase returns the highest promotion phase for the rarity.
func MaxPhase(rarity int) (int, error) {
	if rarity < 1 || rarity > len(MaxPromotions) {
		return 0, fmt.Errorf("rarity %d: %w", rarity, model.ErrInvalidConfiguration)
	}
	return MaxPromotions[rarity-1], nil
}

// MaxLevel returns the level cap of a phase for the rarity.
func MaxLevel(phase, rarity int) (int, error) {
	maxPhase, err := MaxPhase(rarity)
	if err != nil {
		return 0, err
	}
	if phase < 0 || phase > maxPhase {
		return 0, fmt.Errorf("phase %d for rarity %d: %w", phase, rarity, model.ErrInvalidConfiguration)
	}
	return MaxLevels[phase][rarity-1], nil
}

// MaxSkillLevel returns the highest skill level available at the phase.
func MaxSkillLevel(phase int) int {
	phase = max(0, min(phase, len(MaxSkillLevels)-1))
	return MaxSkillLevels[phase]
}

// SkillSlots returns how many skills are usable at the phase.
func SkillSlots(phase int) int {
	return phase + 1
}

// Interpolate returns the attribute value at level between level 1 (lo) and
// maxLevel (hi).
func Interpolate(lo, hi float64, level, maxLevel int) float64 {
	if maxLevel <= 1 {
		return hi
	}
	return lo + (hi-lo)*float64(level-1)/float64(maxLevel-1)
}

// ModuleUnlocked reports whether a module may be equipped at phase/level.
func ModuleUnlocked(phase, level, rarity int) bool {
	if phase != 2 {
		return false
	}
	capE2, err := MaxLevel(2, rarity)
	if err != nil {
		return false
	}
	return level >= capE2-ModuleUnlockOffset
}

// ModuleLevelCap returns the highest module stage allowed by trust.
func ModuleLevelCap(trust int) int {
	switch {
	case trust < 50:
		return 1
	case trust < 100:
		return 2
	default:
		return MaxModuleLevel
	}
}
