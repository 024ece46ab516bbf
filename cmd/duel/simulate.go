package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/game/ruleset"
	"github.com/cory-johannsen/duel/internal/observability"
	"github.com/cory-johannsen/duel/internal/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run every loadout against every other and report win rates",
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.Int("trials", 0, "battles per matchup")
	f.Int("workers", 0, "matchups simulated in parallel")
	f.Uint64("seed", 0, "base seed (0 picks one and logs it)")
	f.Int("max-turns", 0, "end a battle in a draw after this many turns (0 is unbounded)")
	f.String("output", "", "directory for the XLSX report")
	f.Bool("xlsx", false, "also write an XLSX report")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags(), map[string]string{
		"simulation.trials":     "trials",
		"simulation.workers":    "workers",
		"simulation.output_dir": "output",
		"battle.seed":           "seed",
		"battle.max_turns":      "max-turns",
	})
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := ruleset.Builtin()
	if err != nil {
		return err
	}
	runner, err := sim.NewRunner(catalog, sim.Options{
		Trials:   cfg.Simulation.Trials,
		Workers:  cfg.Simulation.Workers,
		MaxTurns: cfg.Battle.MaxTurns,
		Seed:     cfg.Battle.Seed,
	}, logger)
	if err != nil {
		return err
	}
	logger.Info("simulation starting",
		zap.Uint64("seed", runner.Seed()),
		zap.Int("trials", cfg.Simulation.Trials),
		zap.Int("workers", cfg.Simulation.Workers),
	)

	results, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	if err := sim.WriteTable(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	xlsx, _ := cmd.Flags().GetBool("xlsx")
	if !xlsx {
		return nil
	}
	path, err := sim.ExportXLSX(cfg.Simulation.OutputDir, runner.Seed(), results)
	if err != nil {
		return err
	}
	logger.Info("report written", zap.String("path", path))
	return nil
}
