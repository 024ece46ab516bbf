package handlers

import (
	"fmt"
	"strconv"

	"github.com/cory-johannsen/duel/internal/frontend/telnet"
	"github.com/cory-johannsen/duel/internal/game/combat"
	"github.com/cory-johannsen/duel/internal/game/inventory"
	"github.com/cory-johannsen/duel/internal/game/ruleset"
)

const (
	titleLine     = "Text-Based Battle Game"
	titleRule     = "--------------------------------"
	chooseClass   = "Choose your character:"
	classPrompt   = "Your choice: "
	weaponPrompt  = "Weapon choice: "
	notANumber    = "Please enter a number."
	continueText  = "Press Enter to continue..."
	battleStarted = "BATTLE STARTED!"
	battleOver    = "BATTLE OVER!"
	turnRule      = "--- TURN ---"
	wonText       = "Congratulations! You won."
	lostText      = "Unfortunately, you lost."
	drawText      = "Looks like a draw... interesting!"
	replayPrompt  = "Play again? (y/n): "
	goodbyeText   = "Goodbye!"
)

// outOfRange is the re-prompt for a number outside [lo, hi].
func outOfRange(lo, hi int) string {
	return fmt.Sprintf("Please choose a value between %d-%d.", lo, hi)
}

// percent truncates a probability to a whole percentage.
func percent(p float64) int {
	return int(p * 100)
}

// multiplier formats a crit multiplier with at least one decimal place.
func multiplier(m float64) string {
	s := strconv.FormatFloat(m, 'f', -1, 64)
	if m == float64(int64(m)) {
		s += ".0"
	}
	return s
}

// RenderArchetypeMenu lists the selectable archetypes in catalog order.
func RenderArchetypeMenu(archetypes []*ruleset.Archetype) []string {
	lines := make([]string, 0, len(archetypes))
	for i, a := range archetypes {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, a.Name))
	}
	return lines
}

// RenderWeaponMenu lists a weapon pool with its damage, hit and crit stats.
func RenderWeaponMenu(pool []*inventory.WeaponDef) []string {
	lines := make([]string, 0, len(pool))
	for i, w := range pool {
		lines = append(lines, fmt.Sprintf("%d) %s | Damage: %d-%d | Hit: %d%% | Crit: %d%% x%s",
			i+1, w.Name, w.MinDamage, w.MaxDamage, percent(w.HitChance), percent(w.CritChance), multiplier(w.CritMultiplier)))
	}
	return lines
}

// RenderOpponent announces the matchup once both sides are armed.
func RenderOpponent(player, cpu *combat.Combatant) string {
	return fmt.Sprintf("Your opponent: %s (%s) is ready. %s (%s) - attack!",
		cpu.Name, weaponName(cpu), player.Name, weaponName(player))
}

// RenderHeader returns the battle banner with both sides' stats.
func RenderHeader(p telnet.Palette, player, cpu *combat.Combatant) []string {
	return []string{
		p.Paint(telnet.Bold+telnet.BrightYellow, battleStarted),
		p.Paint(telnet.Green, combatantStats("You", player)),
		p.Paint(telnet.Red, combatantStats("Opponent", cpu)),
	}
}

func combatantStats(label string, c *combat.Combatant) string {
	return fmt.Sprintf("%s: %s - Weapon: %s | Health: %d | Shield: %d%% | Power: %d",
		label, c.Name, weaponName(c), c.CurrentHealth, c.ShieldPercent(), c.Power)
}

func weaponName(c *combat.Combatant) string {
	if c.Weapon == nil {
		return "none"
	}
	return c.Weapon.Name
}

// RenderTurn formats one resolved turn: the turn banner followed by the attack
// narrative, each line styled by what it reports.
func RenderTurn(p telnet.Palette, ev combat.TurnEvent) []string {
	lines := []string{
		"",
		p.Paintf(telnet.Bold, "Turn #%d", ev.Turn),
		"",
		p.Paint(telnet.Dim, turnRule),
	}
	res := ev.Result
	narrative := res.Lines

	switch {
	case !res.Armed:
		return append(lines, p.Paint(telnet.Dim, narrative[0]))
	case !res.Hit:
		return append(lines, p.Paint(telnet.Yellow, narrative[0]))
	}

	i := 0
	if res.Critical && i < len(narrative) {
		lines = append(lines, p.Paint(telnet.Bold+telnet.BrightRed, narrative[i]))
		i++
	}
	if res.SpecialBonus > 0 && i < len(narrative) {
		lines = append(lines, p.Paint(telnet.Magenta, narrative[i]))
		i++
	}
	if res.Defense.Line != "" && i < len(narrative) {
		lines = append(lines, p.Paint(telnet.Cyan, narrative[i]))
		i++
	}
	for ; i < len(narrative); i++ {
		lines = append(lines, p.Paint(telnet.BrightWhite, narrative[i]))
	}
	return lines
}

// RenderOutcome returns the closing banner for a finished battle.
func RenderOutcome(p telnet.Palette, b *combat.Battle) []string {
	lines := []string{"", p.Paint(telnet.Bold+telnet.BrightYellow, battleOver)}
	if b.TurnLimitReached {
		lines = append(lines, p.Paintf(telnet.Dim, "Turn limit reached after %d turns.", b.Turn))
	}
	switch b.Status {
	case combat.PlayerWon:
		lines = append(lines, p.Paint(telnet.Green, wonText))
	case combat.CpuWon:
		lines = append(lines, p.Paint(telnet.Red, lostText))
	default:
		lines = append(lines, p.Paint(telnet.Yellow, drawText))
	}
	return lines
}
