package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/duel/internal/game/combat"
	"github.com/cory-johannsen/duel/internal/game/inventory"
	"github.com/cory-johannsen/duel/internal/game/ruleset"
)

// blade is a plain test weapon with no archetype bonuses attached.
func blade() *inventory.WeaponDef {
	return &inventory.WeaponDef{
		ID: "blade", Name: "Blade", Archetype: "test",
		MinDamage: 10, MaxDamage: 18,
		HitChance: 0.8, CritChance: 0.2, CritMultiplier: 1.5,
	}
}

// attackerWith returns an armed combatant with Power 12 and no accuracy or block bonus.
func attackerWith(special ruleset.Special) *combat.Combatant {
	return &combat.Combatant{
		Name: "A", MaxHealth: 100, CurrentHealth: 100,
		Power: 12, Special: special, Weapon: blade(),
	}
}

// defenderWith returns a full-health 100 HP combatant with the given mitigation.
func defenderWith(shield, block float64) *combat.Combatant {
	return &combat.Combatant{
		Name: "D", MaxHealth: 100, CurrentHealth: 100,
		ShieldRatio: shield, BlockBonus: block,
	}
}

func TestNewCombatant_FromCatalog(t *testing.T) {
	cat := ruleset.MustBuiltin()
	a, err := cat.Archetype("warrior")
	require.NoError(t, err)

	c := combat.NewCombatant(a)
	assert.Equal(t, "Warrior", c.Name)
	assert.Equal(t, "warrior", c.Archetype)
	assert.Equal(t, 120, c.CurrentHealth)
	assert.Equal(t, "120/120", c.Health())
	assert.Equal(t, 25, c.ShieldPercent())
	assert.Equal(t, ruleset.SpecialBerserker, c.Special)
	assert.Nil(t, c.Weapon)
	assert.True(t, c.IsAlive())
}

func TestCombatant_ShieldPercent(t *testing.T) {
	cat := ruleset.MustBuiltin()
	want := map[string]int{"warrior": 25, "archer": 15, "mage": 10}
	for id, pct := range want {
		a, err := cat.Archetype(id)
		require.NoError(t, err)
		assert.Equal(t, pct, combat.NewCombatant(a).ShieldPercent(), id)
	}
}

func TestCombatant_ApplyDamage_FloorsAtZero(t *testing.T) {
	c := defenderWith(0, 0)
	c.ApplyDamage(30)
	assert.Equal(t, 70, c.CurrentHealth)
	c.ApplyDamage(500)
	assert.Equal(t, 0, c.CurrentHealth)
	assert.False(t, c.IsAlive())
	assert.Equal(t, "0/100", c.Health())
}

func TestCombatant_ApplyDamage_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 500).Draw(rt, "max")
		c := &combat.Combatant{MaxHealth: maxHP, CurrentHealth: maxHP}
		hits := rapid.SliceOf(rapid.IntRange(0, 200)).Draw(rt, "hits")
		for _, h := range hits {
			c.ApplyDamage(h)
			assert.GreaterOrEqual(rt, c.CurrentHealth, 0)
			assert.LessOrEqual(rt, c.CurrentHealth, maxHP)
		}
	})
}
