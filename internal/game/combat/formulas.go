package combat

import (
	"fmt"

	"github.com/udisondev/arkdps/internal/model"
)

// MinimumDamageRatio is the share of final ATK a physical hit always deals.
const MinimumDamageRatio = 0.05

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// compound applies value *= (1 + m) for every m in order.
func compound(value float64, mods []float64) float64 {
	for _, m := range mods {
		value *= 1 + m
	}
	return value
}

// AttacksPerSecond returns (1 + speed/100) / (interval + intervalMods).
// A missing or non-positive effective interval is a configuration error.
func AttacksPerSecond(stats model.Stats, attackSpeed, attackInterval []float64) (float64, error) {
	base, ok := stats.AttackInterval()
	if !ok {
		return 0, fmt.Errorf("%s: attack interval absent: %w", stats.Name(), model.ErrInvalidConfiguration)
	}
	interval := base + sum(attackInterval)
	if interval <= 0 {
		return 0, fmt.Errorf("%s: effective attack interval %v: %w", stats.Name(), interval, model.ErrInvalidConfiguration)
	}
	return (1 + sum(attackSpeed)/100) / interval, nil
}

// FinalAttack returns atk * (1 + sum(base)) + flatBonus, then multiplied by
// every entry of multiply.
func FinalAttack(stats model.Stats, baseAttack, attackMultiply []float64, flatBonus float64) float64 {
	atk, _ := stats.Attack()
	attack := atk*(1+sum(baseAttack)) + flatBonus
	for _, m := range attackMultiply {
		attack *= m
	}
	return attack
}

// PhysicalDamage mitigates finalAttack by the enemy's defense. The result is
// never below 5% of finalAttack.
func PhysicalDamage(finalAttack float64, enemy model.Stats, flatDef, scalingDef, damageTaken []float64) float64 {
	minimum := finalAttack * MinimumDamageRatio

	def := compound(enemy.Def()+sum(flatDef), scalingDef)
	damage := compound(finalAttack-def, damageTaken)
	if damage < minimum {
		return minimum
	}
	return damage
}

// ArtsDamage mitigates finalAttack by the enemy's resistance. Resistance
// above 100 yields negative damage; no clamp is applied.
func ArtsDamage(finalAttack float64, enemy model.Stats, flatRes, scalingRes, damageTaken []float64) float64 {
	res := compound(enemy.Res()+sum(flatRes), scalingRes)
	return compound(finalAttack*(1-res/100), damageTaken)
}

// TrueDamage ignores defense and resistance; damage taken still applies.
func TrueDamage(amount float64, damageTaken []float64) float64 {
	return compound(amount, damageTaken)
}

// DamagePerSecond returns attacksPerSecond * damagePerHit.
func DamagePerSecond(attacksPerSecond, damagePerHit float64) float64 {
	return attacksPerSecond * damagePerHit
}
