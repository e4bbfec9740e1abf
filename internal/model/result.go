package model

import (
	"fmt"
	"math"
)

// SimulationResult is one grid point or single-shot answer.
type SimulationResult struct {
	Damage           float64 `json:"damage"` // per attack, including extra damage
	DPS              float64 `json:"dps"`
	AttacksPerSecond float64 `json:"attacksPerSecond"`
	FinalAttack      float64 `json:"finalAttack"`
	Def              float64 `json:"def"`
	Res              float64 `json:"res"`
	Label            string  `json:"label"`
}

// CycleResult averages a skill over its full activation cycle.
type CycleResult struct {
	SkillDPS    float64 `json:"skillDps"`
	OffSkillDPS float64 `json:"offSkillDps"`
	TotalDamage float64 `json:"totalDamage"`
	AverageDPS  float64 `json:"averageDps"`
	Duration    float64 `json:"duration"`
	SPCost      float64 `json:"spCost"`
}

// Sweep defaults.
const (
	DefaultSweepStep = 100
	DefaultSweepMin  = 0
	DefaultSweepMax  = 10000
)

// Range is an inclusive axis [Min, Max] walked by Step.
type Range struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// DefaultRange returns [0, 10000] by 100.
func DefaultRange() Range {
	return Range{Min: DefaultSweepMin, Max: DefaultSweepMax, Step: DefaultSweepStep}
}

// Normalize fills a zero step with the default step.
func (r Range) Normalize() Range {
	if r.Step == 0 {
		r.Step = DefaultSweepStep
	}
	return r
}

// Validate rejects non-finite values, non-positive steps, negative bounds
// and inverted ranges.
func (r Range) Validate() error {
	switch {
	case !finite(r.Min) || !finite(r.Max):
		return fmt.Errorf("range bounds [%v, %v] must be finite: %w", r.Min, r.Max, ErrInvalidConfiguration)
	case r.Step <= 0 || math.IsNaN(r.Step) || math.IsInf(r.Step, 0):
		return fmt.Errorf("range step %v must be positive: %w", r.Step, ErrInvalidConfiguration)
	case r.Min < 0:
		return fmt.Errorf("range min %v is negative: %w", r.Min, ErrInvalidConfiguration)
	case r.Max < r.Min:
		return fmt.Errorf("range max %v below min %v: %w", r.Max, r.Min, ErrInvalidConfiguration)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Count returns floor((Max-Min)/Step) + 1.
func (r Range) Count() int {
	return int(math.Floor((r.Max-r.Min)/r.Step)) + 1
}

// At returns the i-th value of the axis.
func (r Range) At(i int) float64 {
	return r.Min + float64(i)*r.Step
}

// SweepRequest sweeps one operator skill level across defense and
// resistance. Nil axes use DefaultRange.
type SweepRequest struct {
	OperatorID string         `json:"operatorId"`
	Config     OperatorConfig `json:"config"`
	SkillID    string         `json:"skillId"`
	LevelIndex int            `json:"levelIndex"`
	Enemy      Stats          `json:"enemy"`
	Def        *Range         `json:"defRange,omitempty"`
	Res        *Range         `json:"resRange,omitempty"`
}

// Axes returns the normalized defense and resistance ranges.
func (r SweepRequest) Axes() (def, res Range) {
	def, res = DefaultRange(), DefaultRange()
	if r.Def != nil {
		def = r.Def.Normalize()
	}
	if r.Res != nil {
		res = r.Res.Normalize()
	}
	return def, res
}

// DefPoint is one point of the defense series.
type DefPoint struct {
	DPS float64 `json:"dps"`
	Def float64 `json:"def"`
}

// ResPoint is one point of the resistance series.
type ResPoint struct {
	DPS float64 `json:"dps"`
	Res float64 `json:"res"`
}

// SweepResponse holds both series, each sorted ascending by DPS.
// Consumers must not assume ordering by def or res.
type SweepResponse struct {
	ByDef      []DefPoint `json:"byDef"`
	ByRes      []ResPoint `json:"byRes"`
	TotalDPS   float64    `json:"totalDps"`
	AverageDPS float64    `json:"averageDps"`
}
