// Package main is the duel command line: play locally, serve over Telnet,
// simulate matchups and list the catalog.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cory-johannsen/duel/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "duel",
	Short: "Turn-based text duel against a CPU opponent",
	Long: `duel pits a chosen archetype and weapon against a randomly armed CPU
opponent in an alternating-turn fight narrated as text.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file (defaults and DUEL_* environment when empty)")
	rootCmd.AddCommand(playCmd, serveCmd, simulateCmd, catalogCmd)
}

// loadConfig reads the configuration file and environment, then applies any
// flags the user set explicitly. bindings maps config keys to flag names.
func loadConfig(flags *pflag.FlagSet, bindings map[string]string) (config.Config, error) {
	v, err := config.NewViper(configPath)
	if err != nil {
		return config.Config{}, err
	}
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return config.Config{}, fmt.Errorf("binding flag %q: %w", name, err)
		}
	}
	return config.LoadFromViper(v)
}
