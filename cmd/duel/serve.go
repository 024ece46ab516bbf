package main

import (
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve duels to Telnet clients",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "bind address for the Telnet listener")
	serveCmd.Flags().Int("port", 0, "TCP port for the Telnet listener")
	serveCmd.Flags().Uint64("seed", 0, "seed every session's battles (0 uses crypto randomness)")
	serveCmd.Flags().Int("max-turns", 0, "end a battle in a draw after this many turns (0 is unbounded)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags(), map[string]string{
		"telnet.host":      "host",
		"telnet.port":      "port",
		"battle.seed":      "seed",
		"battle.max_turns": "max-turns",
	})
	if err != nil {
		return err
	}

	srv, cleanup, err := InitializeServer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return srv.Run(cmd.Context())
}
