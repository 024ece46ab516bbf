package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/duel/internal/frontend/console"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play duels on this terminal",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().Uint64("seed", 0, "seed for reproducible battles (0 uses crypto randomness)")
	playCmd.Flags().Int("max-turns", 0, "end a battle in a draw after this many turns (0 is unbounded)")
	playCmd.Flags().Bool("color", true, "emit ANSI colors")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags(), map[string]string{
		"battle.seed":      "seed",
		"battle.max_turns": "max-turns",
		"battle.color":     "color",
	})
	if err != nil {
		return err
	}

	handler, cleanup, err := InitializeHandler(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	err = handler.Play(cmd.Context(), console.New(os.Stdin, os.Stdout))
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
