package combat

import (
	"math"
	"strings"

	"github.com/cory-johannsen/duel/internal/game/dice"
	"github.com/cory-johannsen/duel/internal/game/inventory"
	"github.com/cory-johannsen/duel/internal/game/ruleset"
)

// Source is the randomness the resolver consumes; dice.Source satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

const (
	minHitChance     = 0.05
	maxHitChance     = 0.95
	baseFullBlock    = 0.05
	maxFullBlock     = 0.25
	baseLuckyBlock   = 0.10
	maxLuckyBlock    = 0.30
	berserkerChance  = 0.15
	piercingChance   = 0.20
	arcaneChance     = 0.25
	arcaneMinBonus   = 6
	arcaneMaxBonus   = 14
	piercingFraction = 0.5
)

// AttackResult holds the outcome of a single attack.
type AttackResult struct {
	// Lines is the ordered narrative for display.
	Lines []string
	// Armed is false when the attacker had no weapon; nothing else is set then.
	Armed bool
	// HitChance is the clamped hit probability used for the roll.
	HitChance float64
	Hit       bool
	// RolledDamage is weapon damage plus the power roll, before any multiplier.
	RolledDamage int
	Critical     bool
	SpecialBonus int
	// Incoming is the damage handed to the defender after crit and special.
	Incoming int
	Defense  DefenseResult
	// Damage is the health actually removed from the defender.
	Damage int
}

// Narrative returns the attack's lines joined by newlines.
func (r AttackResult) Narrative() string {
	return strings.Join(r.Lines, "\n")
}

// DefenseResult holds the outcome of the defender's mitigation.
type DefenseResult struct {
	Damage    int
	FullBlock bool
	Lucky     bool
	Line      string
}

// Attack resolves one attack from attacker against defender, mutating only
// defender.CurrentHealth. Draw order: hit, weapon damage, power damage, crit,
// special (when the attacker has one), then the defender's block draws.
//
// Precondition: attacker, defender and src must be non-nil.
// Postcondition: 0 <= defender.CurrentHealth <= defender.MaxHealth; a miss or an
// unarmed attack leaves the defender unchanged and Damage == 0.
func Attack(attacker, defender *Combatant, src Source) AttackResult {
	if attacker == nil || defender == nil || src == nil {
		panic("combat: Attack precondition violated: attacker, defender and src must be non-nil")
	}
	w := attacker.Weapon
	if w == nil {
		return AttackResult{Lines: []string{unarmedLine(attacker)}}
	}

	r := AttackResult{Armed: true}
	r.HitChance = dice.Clamp(w.HitChance+attacker.AccuracyBonus, minHitChance, maxHitChance)
	if src.Float64() > r.HitChance {
		r.Lines = append(r.Lines, missLine(attacker, w, r.HitChance))
		return r
	}
	r.Hit = true

	damage := dice.Between(src, w.MinDamage, w.MaxDamage) + dice.Between(src, attacker.Power/3, attacker.Power)
	r.RolledDamage = damage

	if src.Float64() < w.CritChance {
		r.Critical = true
		damage = int(float64(damage) * w.CritMultiplier)
		r.Lines = append(r.Lines, critLine(attacker, w))
	}

	if attacker.Special != ruleset.SpecialNone {
		bonus, line := ResolveSpecial(attacker.Special, attacker, defender, damage, w, src)
		if bonus < 0 {
			bonus = 0
		}
		if line != "" {
			r.Lines = append(r.Lines, line)
		}
		r.SpecialBonus = bonus
		damage += bonus
	}
	r.Incoming = damage

	r.Defense = Defend(defender, damage, src)
	if r.Defense.Line != "" {
		r.Lines = append(r.Lines, r.Defense.Line)
	}

	r.Damage = r.Defense.Damage
	defender.ApplyDamage(r.Damage)
	r.Lines = append(r.Lines, summaryLine(attacker, defender, r.Damage))
	return r
}

// Defend computes the damage defender takes from incoming and the defense narrative.
// A full block ends resolution immediately; otherwise the shield reduces the damage
// and a lucky defense may halve it.
//
// Precondition: defender and src must be non-nil; incoming >= 0.
// Postcondition: 0 <= Damage; FullBlock implies Damage == 0.
func Defend(defender *Combatant, incoming int, src Source) DefenseResult {
	fullBlock := dice.Clamp(baseFullBlock+defender.BlockBonus/2, 0, maxFullBlock)
	if src.Float64() < fullBlock {
		return DefenseResult{FullBlock: true, Line: fullBlockLine(defender)}
	}

	var parts []string
	reduced := roundHalfUp(float64(incoming) * (1 - defender.ShieldRatio))

	lucky := dice.Clamp(baseLuckyBlock+defender.BlockBonus, 0, maxLuckyBlock)
	res := DefenseResult{}
	if src.Float64() < lucky {
		res.Lucky = true
		reduced = floorDiv(reduced, 2)
		parts = append(parts, luckyLine(defender))
	}
	parts = append(parts, shieldLine(defender))

	if reduced < 0 {
		reduced = 0
	}
	res.Damage = reduced
	res.Line = strings.Join(parts, " ")
	return res
}

// ResolveSpecial rolls the attacker's special ability and returns the bonus damage
// and its narrative line. An untriggered ability returns (0, "") after consuming
// its trigger draw; SpecialNone consumes nothing.
//
// Precondition: attacker and src must be non-nil.
// Postcondition: bonus >= 0.
func ResolveSpecial(tag ruleset.Special, attacker, defender *Combatant, current int, weapon *inventory.WeaponDef, src Source) (int, string) {
	var bonus int
	switch tag {
	case ruleset.SpecialBerserker:
		if src.Float64() >= berserkerChance {
			return 0, ""
		}
		bonus = max(1, floorDiv(current, 2))
		return nonNegative(bonus), berserkerLine(attacker, bonus)
	case ruleset.SpecialPiercingShot:
		if src.Float64() >= piercingChance {
			return 0, ""
		}
		bonus = max(1, int(float64(current)*piercingFraction))
		return nonNegative(bonus), piercingLine(attacker, bonus)
	case ruleset.SpecialArcaneBurst:
		if src.Float64() >= arcaneChance {
			return 0, ""
		}
		bonus = dice.Between(src, arcaneMinBonus, arcaneMaxBonus) + floorDiv(attacker.Power, 2)
		bonus = nonNegative(bonus)
		return bonus, arcaneLine(attacker, bonus)
	default:
		return 0, ""
	}
}

// roundHalfUp rounds half away from zero.
func roundHalfUp(v float64) int {
	return int(math.Round(v))
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
