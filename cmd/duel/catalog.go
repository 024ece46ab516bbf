package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/duel/internal/frontend/handlers"
	"github.com/cory-johannsen/duel/internal/game/ruleset"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List archetypes and their weapon pools",
	RunE: func(cmd *cobra.Command, _ []string) error {
		catalog, err := ruleset.Builtin()
		if err != nil {
			return err
		}
		return writeCatalog(cmd.OutOrStdout(), catalog)
	},
}

func writeCatalog(w io.Writer, catalog *ruleset.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Archetype\tHealth\tShield\tPower\tAccuracy\tBlock\tSpecial")
	for _, a := range catalog.Archetypes() {
		fmt.Fprintf(tw, "%s\t%d\t%.0f%%\t%d\t%+.0f%%\t%+.0f%%\t%s\n",
			a.Name, a.MaxHealth, a.ShieldRatio*100, a.Power,
			a.AccuracyBonus*100, a.BlockBonus*100, a.Special.Label())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, a := range catalog.Archetypes() {
		if _, err := fmt.Fprintf(w, "\n%s weapons:\n", a.Name); err != nil {
			return err
		}
		for _, line := range handlers.RenderWeaponMenu(catalog.Pool(a.ID)) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
