package combat

import (
	"fmt"

	"github.com/cory-johannsen/duel/internal/game/inventory"
)

func unarmedLine(attacker *Combatant) string {
	return fmt.Sprintf("%s tried to attack without a weapon but failed!", attacker.Name)
}

func missLine(attacker *Combatant, w *inventory.WeaponDef, chance float64) string {
	return fmt.Sprintf("%s MISSED with the %s! (Chance: %.0f%%)", attacker.Name, w.Name, chance*100)
}

func critLine(attacker *Combatant, w *inventory.WeaponDef) string {
	return fmt.Sprintf("CRITICAL! %s lands a devastating blow with the %s!", attacker.Name, w.Name)
}

func berserkerLine(attacker *Combatant, bonus int) string {
	return fmt.Sprintf("%s goes Berserk! Extra %d damage.", attacker.Name, bonus)
}

func piercingLine(attacker *Combatant, bonus int) string {
	return fmt.Sprintf("%s PIERCES THE SHIELD! (+%d damage)", attacker.Name, bonus)
}

func arcaneLine(attacker *Combatant, bonus int) string {
	return fmt.Sprintf("%s unleashes an ARCANE BURST! (+%d arcane damage)", attacker.Name, bonus)
}

func fullBlockLine(defender *Combatant) string {
	return fmt.Sprintf("%s skillfully BLOCKED! (Full block)", defender.Name)
}

func luckyLine(defender *Combatant) string {
	return fmt.Sprintf("%s made a lucky defense (damage halved)", defender.Name)
}

func shieldLine(defender *Combatant) string {
	return fmt.Sprintf("Shield absorbed %d%% of the damage.", defender.ShieldPercent())
}

func summaryLine(attacker, defender *Combatant, damage int) string {
	return fmt.Sprintf("%s dealt %d damage to %s. (%s Health: %s)",
		attacker.Name, damage, defender.Name, defender.Name, defender.Health())
}
