package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/duel/internal/game/combat"
	dicemock "github.com/cory-johannsen/duel/internal/game/dice/mock"
	"github.com/cory-johannsen/duel/internal/game/ruleset"
	"github.com/cory-johannsen/duel/internal/testutil"
)

// rapidSource draws every value from the property test's generator.
type rapidSource struct{ t *rapid.T }

func (s rapidSource) Intn(n int) int { return rapid.IntRange(0, n-1).Draw(s.t, "intn") }

func (s rapidSource) Float64() float64 {
	return rapid.Float64Range(0, 0.999999).Draw(s.t, "float")
}

func TestAttack_Miss(t *testing.T) {
	cat := ruleset.MustBuiltin()
	warrior, err := cat.Archetype("warrior")
	require.NoError(t, err)
	katana, err := cat.Weapon("warrior", "katana")
	require.NoError(t, err)

	attacker := combat.NewCombatant(warrior)
	attacker.Equip(katana)
	defender := defenderWith(0.1, 0)
	src := &testutil.ScriptedSource{Floats: []float64{0.9}}

	res := combat.Attack(attacker, defender, src)
	assert.False(t, res.Hit)
	assert.Equal(t, 0, res.Damage)
	assert.Equal(t, 100, defender.CurrentHealth)
	assert.InDelta(t, 0.87, res.HitChance, 1e-9)
	assert.Equal(t, []string{"Warrior MISSED with the Katana! (Chance: 87%)"}, res.Lines)

	floats, ints := src.Calls()
	assert.Equal(t, 1, floats)
	assert.Equal(t, 0, ints)
}

func TestAttack_PlainHit(t *testing.T) {
	attacker := attackerWith(ruleset.SpecialNone)
	defender := defenderWith(0.25, 0)
	src := &testutil.ScriptedSource{
		Floats: []float64{0.1, 0.5, 0.9, 0.9},
		Ints:   []int{4, 2},
	}

	res := combat.Attack(attacker, defender, src)
	require.True(t, res.Hit)
	assert.Equal(t, 20, res.RolledDamage)
	assert.False(t, res.Critical)
	assert.Equal(t, 20, res.Incoming)
	assert.Equal(t, 15, res.Damage)
	assert.Equal(t, 85, defender.CurrentHealth)
	assert.Equal(t, []string{
		"Shield absorbed 25% of the damage.",
		"A dealt 15 damage to D. (D Health: 85/100)",
	}, res.Lines)
}

func TestAttack_CriticalRoundsHalfAwayFromZero(t *testing.T) {
	attacker := attackerWith(ruleset.SpecialNone)
	defender := defenderWith(0.25, 0)
	src := &testutil.ScriptedSource{
		Floats: []float64{0.1, 0.1, 0.9, 0.9},
		Ints:   []int{4, 2},
	}

	res := combat.Attack(attacker, defender, src)
	require.True(t, res.Critical)
	assert.Equal(t, 30, res.Incoming)
	// 30 * 0.75 = 22.5
	assert.Equal(t, 23, res.Damage)
	assert.Equal(t, "CRITICAL! A lands a devastating blow with the Blade!", res.Lines[0])
}

func TestAttack_FullBlockSkipsLuckyDraw(t *testing.T) {
	attacker := attackerWith(ruleset.SpecialNone)
	defender := defenderWith(0.25, 0.4)
	src := &testutil.ScriptedSource{
		Floats: []float64{0.1, 0.9, 0.1},
		Ints:   []int{4, 2},
	}

	res := combat.Attack(attacker, defender, src)
	assert.True(t, res.Defense.FullBlock)
	assert.Equal(t, 0, res.Damage)
	assert.Equal(t, 100, defender.CurrentHealth)
	assert.Equal(t, []string{
		"D skillfully BLOCKED! (Full block)",
		"A dealt 0 damage to D. (D Health: 100/100)",
	}, res.Lines)

	floats, _ := src.Calls()
	assert.Equal(t, 3, floats)
}

func TestAttack_LuckyDefenseHalves(t *testing.T) {
	attacker := attackerWith(ruleset.SpecialNone)
	defender := defenderWith(0.25, 0)
	src := &testutil.ScriptedSource{
		Floats: []float64{0.1, 0.9, 0.9, 0.05},
		Ints:   []int{4, 2},
	}

	res := combat.Attack(attacker, defender, src)
	assert.True(t, res.Defense.Lucky)
	assert.Equal(t, 7, res.Damage)
	assert.Equal(t, "D made a lucky defense (damage halved) Shield absorbed 25% of the damage.", res.Lines[0])
}

func TestAttack_Specials(t *testing.T) {
	cases := []struct {
		name    string
		special ruleset.Special
		ints    []int
		bonus   int
		damage  int
		line    string
	}{
		{"berserker", ruleset.SpecialBerserker, []int{4, 2}, 10, 23, "A goes Berserk! Extra 10 damage."},
		{"piercing shot", ruleset.SpecialPiercingShot, []int{4, 2}, 10, 23, "A PIERCES THE SHIELD! (+10 damage)"},
		{"arcane burst", ruleset.SpecialArcaneBurst, []int{4, 2, 3}, 15, 26, "A unleashes an ARCANE BURST! (+15 arcane damage)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attacker := attackerWith(tc.special)
			defender := defenderWith(0.25, 0)
			src := &testutil.ScriptedSource{
				Floats: []float64{0.1, 0.9, 0.1, 0.9, 0.9},
				Ints:   tc.ints,
			}

			res := combat.Attack(attacker, defender, src)
			assert.Equal(t, tc.bonus, res.SpecialBonus)
			assert.Equal(t, 20+tc.bonus, res.Incoming)
			assert.Equal(t, tc.damage, res.Damage)
			assert.Equal(t, tc.line, res.Lines[0])
		})
	}
}

func TestAttack_UntriggeredSpecialAddsNothing(t *testing.T) {
	attacker := attackerWith(ruleset.SpecialArcaneBurst)
	defender := defenderWith(0.25, 0)
	src := &testutil.ScriptedSource{
		Floats: []float64{0.1, 0.9, 0.5, 0.9, 0.9},
		Ints:   []int{4, 2},
	}

	res := combat.Attack(attacker, defender, src)
	assert.Equal(t, 0, res.SpecialBonus)
	assert.Equal(t, 15, res.Damage)
	assert.Len(t, res.Lines, 2)

	_, ints := src.Calls()
	assert.Equal(t, 2, ints, "no arcane roll when the trigger fails")
}

func TestResolveSpecial_BerserkerMinimumOne(t *testing.T) {
	attacker := attackerWith(ruleset.SpecialBerserker)
	src := &testutil.ScriptedSource{Floats: []float64{0}}
	bonus, line := combat.ResolveSpecial(ruleset.SpecialBerserker, attacker, defenderWith(0, 0), 1, attacker.Weapon, src)
	assert.Equal(t, 1, bonus)
	assert.Equal(t, "A goes Berserk! Extra 1 damage.", line)
}

func TestResolveSpecial_NoneConsumesNothing(t *testing.T) {
	attacker := attackerWith(ruleset.SpecialNone)
	src := &testutil.ScriptedSource{}
	bonus, line := combat.ResolveSpecial(ruleset.SpecialNone, attacker, defenderWith(0, 0), 20, attacker.Weapon, src)
	assert.Equal(t, 0, bonus)
	assert.Empty(t, line)
	floats, ints := src.Calls()
	assert.Zero(t, floats+ints)
}

func TestAttack_Unarmed(t *testing.T) {
	attacker := attackerWith(ruleset.SpecialNone)
	attacker.Weapon = nil
	defender := defenderWith(0.25, 0)
	src := &testutil.ScriptedSource{}

	res := combat.Attack(attacker, defender, src)
	assert.False(t, res.Armed)
	assert.Equal(t, []string{"A tried to attack without a weapon but failed!"}, res.Lines)
	assert.Equal(t, 100, defender.CurrentHealth)
	floats, ints := src.Calls()
	assert.Zero(t, floats+ints)
}

func TestAttack_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { combat.Attack(nil, defenderWith(0, 0), &testutil.ScriptedSource{}) })
}

func TestAttack_DrawOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := dicemock.NewMockSource(ctrl)

	gomock.InOrder(
		src.EXPECT().Float64().Return(0.1),
		src.EXPECT().Intn(9).Return(4),
		src.EXPECT().Intn(9).Return(2),
		src.EXPECT().Float64().Return(0.9),
		src.EXPECT().Float64().Return(0.9),
		src.EXPECT().Float64().Return(0.9),
	)

	res := combat.Attack(attackerWith(ruleset.SpecialNone), defenderWith(0.25, 0), src)
	assert.Equal(t, 15, res.Damage)
}

func TestAttack_MissConsumesOnlyHitDraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := dicemock.NewMockSource(ctrl)
	src.EXPECT().Float64().Return(0.99).Times(1)

	res := combat.Attack(attackerWith(ruleset.SpecialBerserker), defenderWith(0.25, 0), src)
	assert.False(t, res.Hit)
}

func TestDefend_MonotonicInIncoming(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		shield := rapid.Float64Range(0, 0.9).Draw(rt, "shield")
		a := rapid.IntRange(0, 500).Draw(rt, "a")
		b := rapid.IntRange(a, 600).Draw(rt, "b")
		d := defenderWith(shield, 0)

		noBlock := func() *testutil.ScriptedSource { return &testutil.ScriptedSource{FloatDefault: 0.99} }
		lo := combat.Defend(d, a, noBlock())
		hi := combat.Defend(d, b, noBlock())
		assert.LessOrEqual(rt, lo.Damage, hi.Damage)
		assert.LessOrEqual(rt, hi.Damage, b)
	})
}

// TestAttack_Properties checks the resolver invariants over arbitrary draws and catalog pairings.
func TestAttack_Properties(t *testing.T) {
	cat := ruleset.MustBuiltin()
	archetypes := cat.Archetypes()

	rapid.Check(t, func(rt *rapid.T) {
		atkArch := rapid.SampledFrom(archetypes).Draw(rt, "attacker")
		defArch := rapid.SampledFrom(archetypes).Draw(rt, "defender")
		attacker := combat.NewCombatant(atkArch)
		attacker.Equip(rapid.SampledFrom(cat.Pool(atkArch.ID)).Draw(rt, "weapon"))
		defender := combat.NewCombatant(defArch)
		defender.CurrentHealth = rapid.IntRange(0, defender.MaxHealth).Draw(rt, "health")
		before := defender.CurrentHealth

		res := combat.Attack(attacker, defender, rapidSource{t: rt})

		assert.GreaterOrEqual(rt, defender.CurrentHealth, 0)
		assert.LessOrEqual(rt, defender.CurrentHealth, defender.MaxHealth)
		assert.GreaterOrEqual(rt, res.SpecialBonus, 0)
		assert.GreaterOrEqual(rt, res.Damage, 0)
		assert.LessOrEqual(rt, res.Damage, res.Incoming)

		if !res.Hit {
			assert.Equal(rt, before, defender.CurrentHealth, "a miss changes nothing")
			assert.Zero(rt, res.Damage)
			return
		}
		if res.Defense.FullBlock {
			assert.Zero(rt, res.Damage)
			assert.Equal(rt, before, defender.CurrentHealth)
		}
		expected := res.RolledDamage
		if res.Critical {
			expected = int(float64(res.RolledDamage) * attacker.Weapon.CritMultiplier)
		}
		assert.Equal(rt, expected+res.SpecialBonus, res.Incoming)
		assert.Equal(rt, max(0, before-res.Damage), defender.CurrentHealth)
	})
}
