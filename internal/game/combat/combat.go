// Package combat implements the turn-based duel engine: attack resolution,
// defense mitigation, special abilities and the battle state machine.
package combat

import (
	"fmt"

	"github.com/cory-johannsen/duel/internal/game/inventory"
	"github.com/cory-johannsen/duel/internal/game/ruleset"
)

// Combatant is one side of a battle, instantiated from a catalog archetype.
//
// Invariant: 0 <= CurrentHealth <= MaxHealth.
type Combatant struct {
	Name          string
	Archetype     string
	MaxHealth     int
	CurrentHealth int
	ShieldRatio   float64
	Power         int
	AccuracyBonus float64
	BlockBonus    float64
	Special       ruleset.Special
	// Weapon is nil until Equip is called; an unarmed attack is a narrative no-op.
	Weapon *inventory.WeaponDef
}

// NewCombatant creates a full-health Combatant from an archetype.
// The display name is the archetype name.
//
// Precondition: a must be non-nil and valid.
// Postcondition: CurrentHealth == MaxHealth; Weapon is nil.
func NewCombatant(a *ruleset.Archetype) *Combatant {
	return &Combatant{
		Name:          a.Name,
		Archetype:     a.ID,
		MaxHealth:     a.MaxHealth,
		CurrentHealth: a.MaxHealth,
		ShieldRatio:   a.ShieldRatio,
		Power:         a.Power,
		AccuracyBonus: a.AccuracyBonus,
		BlockBonus:    a.BlockBonus,
		Special:       a.Special,
	}
}

// Equip assigns the combatant's weapon.
func (c *Combatant) Equip(w *inventory.WeaponDef) {
	c.Weapon = w
}

// IsAlive reports whether CurrentHealth is above zero.
func (c *Combatant) IsAlive() bool { return c.CurrentHealth > 0 }

// ApplyDamage reduces CurrentHealth by amount, flooring at zero.
// Precondition: amount must be >= 0.
// Postcondition: CurrentHealth >= 0.
func (c *Combatant) ApplyDamage(amount int) {
	c.CurrentHealth -= amount
	if c.CurrentHealth < 0 {
		c.CurrentHealth = 0
	}
}

// Health returns "current/max".
func (c *Combatant) Health() string {
	return fmt.Sprintf("%d/%d", c.CurrentHealth, c.MaxHealth)
}

// ShieldPercent returns the shield ratio as a whole percentage.
func (c *Combatant) ShieldPercent() int {
	return roundHalfUp(c.ShieldRatio * 100)
}
