package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AttackType describes how a combatant's attacks are mitigated.
type AttackType uint8

const (
	AttackUnknown AttackType = iota
	AttackPhysical
	AttackArts
	AttackHealing
)

// String returns the lowercase attack type name used in game data and JSON.
func (t AttackType) String() string {
	switch t {
	case AttackPhysical:
		return "physical"
	case AttackArts:
		return "arts"
	case AttackHealing:
		return "healing"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ParseAttackType parses "physical", "arts" or "healing" (case-insensitive).
func ParseAttackType(s string) (AttackType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physical":
		return AttackPhysical, nil
	case "arts", "magic":
		return AttackArts, nil
	case "healing", "heal":
		return AttackHealing, nil
	}
	return AttackUnknown, fmt.Errorf("attack type %q: %w", s, ErrInvalidAttackType)
}

// MarshalText implements encoding.TextMarshaler.
func (t AttackType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *AttackType) UnmarshalText(b []byte) error {
	v, err := ParseAttackType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Optional holds a value that may be absent. Absence is distinct from zero.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) ptr() *T {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// Stats is the canonical attribute snapshot shared by operators and enemies.
// Enemies populate only name, def and res; every operator-only field stays
// absent. Stats values are never mutated: derive a modified copy instead.
type Stats struct {
	name string
	def  float64
	res  float64

	class          Optional[string]
	maxHP          Optional[float64]
	atk            Optional[float64]
	cost           Optional[float64]
	deployTime     Optional[float64]
	blockCount     Optional[int]
	attackInterval Optional[float64]
	attackType     Optional[AttackType]

	hitCount       int
	hitProbability float64
}

// StatsOption sets one optional Stats field.
type StatsOption func(*Stats)

// NewStats creates Stats with the required fields. Operator-only fields are
// absent unless set by an option; the hit profile defaults to one hit with
// probability 1.
func NewStats(name string, def, res float64, opts ...StatsOption) Stats {
	s := Stats{
		name:           name,
		def:            def,
		res:            res,
		hitCount:       1,
		hitProbability: 1,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func WithClass(class string) StatsOption {
	return func(s *Stats) { s.class = Some(class) }
}

func WithMaxHP(hp float64) StatsOption {
	return func(s *Stats) { s.maxHP = Some(hp) }
}

func WithAttack(atk float64) StatsOption {
	return func(s *Stats) { s.atk = Some(atk) }
}

func WithCost(cost float64) StatsOption {
	return func(s *Stats) { s.cost = Some(cost) }
}

func WithDeployTime(seconds float64) StatsOption {
	return func(s *Stats) { s.deployTime = Some(seconds) }
}

func WithBlockCount(n int) StatsOption {
	return func(s *Stats) { s.blockCount = Some(n) }
}

// WithAttackInterval sets seconds per attack (not attacks per second).
func WithAttackInterval(seconds float64) StatsOption {
	return func(s *Stats) { s.attackInterval = Some(seconds) }
}

func WithAttackType(t AttackType) StatsOption {
	return func(s *Stats) { s.attackType = Some(t) }
}

// WithHits overrides the multi-hit profile: count hits per attack cycle,
// each landing with probability prob.
func WithHits(count int, prob float64) StatsOption {
	return func(s *Stats) {
		s.hitCount = count
		s.hitProbability = prob
	}
}

// Derive returns a copy with the given options applied.
func (s Stats) Derive(opts ...StatsOption) Stats {
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithDef returns a copy with a different defense.
func (s Stats) WithDef(def float64) Stats {
	s.def = def
	return s
}

// WithRes returns a copy with a different resistance.
func (s Stats) WithRes(res float64) Stats {
	s.res = res
	return s
}

// WithName returns a copy with a different display name.
func (s Stats) WithName(name string) Stats {
	s.name = name
	return s
}

func (s Stats) Name() string  { return s.name }
func (s Stats) Def() float64  { return s.def }
func (s Stats) Res() float64  { return s.res }
func (s Stats) HitCount() int { return s.hitCount }

func (s Stats) HitProbability() float64 { return s.hitProbability }

func (s Stats) Class() (string, bool)           { return s.class.Get() }
func (s Stats) MaxHP() (float64, bool)          { return s.maxHP.Get() }
func (s Stats) Attack() (float64, bool)         { return s.atk.Get() }
func (s Stats) Cost() (float64, bool)           { return s.cost.Get() }
func (s Stats) DeployTime() (float64, bool)     { return s.deployTime.Get() }
func (s Stats) BlockCount() (int, bool)         { return s.blockCount.Get() }
func (s Stats) AttackInterval() (float64, bool) { return s.attackInterval.Get() }
func (s Stats) AttackType() (AttackType, bool)  { return s.attackType.Get() }

// Validate checks the Stats invariants: non-negative def/res, a strictly
// positive attack interval when present and a sane hit profile.
func (s Stats) Validate() error {
	if s.def < 0 || !finite(s.def) {
		return fmt.Errorf("%s: def %v must be a non-negative number: %w", s.name, s.def, ErrInvalidConfiguration)
	}
	if s.res < 0 || !finite(s.res) {
		return fmt.Errorf("%s: res %v must be a non-negative number: %w", s.name, s.res, ErrInvalidConfiguration)
	}
	if iv, ok := s.attackInterval.Get(); ok && iv <= 0 {
		return fmt.Errorf("%s: attack interval %v must be positive: %w", s.name, iv, ErrInvalidConfiguration)
	}
	if s.hitCount < 1 {
		return fmt.Errorf("%s: hit count %d: %w", s.name, s.hitCount, ErrInvalidConfiguration)
	}
	if s.hitProbability <= 0 || s.hitProbability > 1 {
		return fmt.Errorf("%s: hit probability %v: %w", s.name, s.hitProbability, ErrInvalidConfiguration)
	}
	return nil
}

type statsJSON struct {
	Name           string      `json:"name"`
	Def            float64     `json:"def"`
	Res            float64     `json:"res"`
	Class          *string     `json:"class,omitempty"`
	MaxHP          *float64    `json:"maxHp,omitempty"`
	Atk            *float64    `json:"atk,omitempty"`
	Cost           *float64    `json:"cost,omitempty"`
	DeployTime     *float64    `json:"deployTime,omitempty"`
	BlockCount     *int        `json:"blockCount,omitempty"`
	AttackInterval *float64    `json:"attackInterval,omitempty"`
	AttackType     *AttackType `json:"attackType,omitempty"`
	HitCount       int         `json:"hitCount"`
	HitProbability float64     `json:"hitProbability"`
}

// MarshalJSON encodes absent fields as missing keys, not zeroes.
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(statsJSON{
		Name:           s.name,
		Def:            s.def,
		Res:            s.res,
		Class:          s.class.ptr(),
		MaxHP:          s.maxHP.ptr(),
		Atk:            s.atk.ptr(),
		Cost:           s.cost.ptr(),
		DeployTime:     s.deployTime.ptr(),
		BlockCount:     s.blockCount.ptr(),
		AttackInterval: s.attackInterval.ptr(),
		AttackType:     s.attackType.ptr(),
		HitCount:       s.hitCount,
		HitProbability: s.hitProbability,
	})
}

// UnmarshalJSON decodes the MarshalJSON form. Missing keys stay absent and
// a missing hit profile keeps the one-hit default.
func (s *Stats) UnmarshalJSON(b []byte) error {
	var raw statsJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = NewStats(raw.Name, raw.Def, raw.Res)
	setOpt(&s.class, raw.Class)
	setOpt(&s.maxHP, raw.MaxHP)
	setOpt(&s.atk, raw.Atk)
	setOpt(&s.cost, raw.Cost)
	setOpt(&s.deployTime, raw.DeployTime)
	setOpt(&s.blockCount, raw.BlockCount)
	setOpt(&s.attackInterval, raw.AttackInterval)
	setOpt(&s.attackType, raw.AttackType)
	if raw.HitCount != 0 {
		s.hitCount = raw.HitCount
	}
	if raw.HitProbability != 0 {
		s.hitProbability = raw.HitProbability
	}
	return nil
}

func setOpt[T any](o *Optional[T], p *T) {
	if p != nil {
		*o = Some(*p)
	}
}
