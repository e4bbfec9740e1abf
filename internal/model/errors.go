package model

import "errors"

// Error taxonomy of the DPS engine. All failures are deterministic; callers
// match them with errors.Is and map them to their own transport semantics.
var (
	// ErrNotFound is returned for unknown operator, enemy, skill or module ids.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfiguration is returned for negative progression values,
	// non-positive attack intervals and malformed sweep ranges.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrLevelIndexOutOfRange is returned when a skill level index exceeds
	// the levels available for the configured promotion phase.
	ErrLevelIndexOutOfRange = errors.New("skill level index out of range")

	// ErrInvalidAttackType is returned for attack types outside
	// physical, arts and healing.
	ErrInvalidAttackType = errors.New("invalid attack type")

	// ErrDuplicateRegistration is returned when two catalog entries claim
	// the same identifier. Fatal at startup.
	ErrDuplicateRegistration = errors.New("duplicate registration")
)
