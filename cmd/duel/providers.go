package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/config"
	"github.com/cory-johannsen/duel/internal/frontend/handlers"
	"github.com/cory-johannsen/duel/internal/game/dice"
	"github.com/cory-johannsen/duel/internal/observability"
)

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideTelnetConfig(cfg config.Config) config.TelnetConfig { return cfg.Telnet }

func provideBattleConfig(cfg config.Config) config.BattleConfig { return cfg.Battle }

// provideSourceFactory gives every session its own source: seeded when
// battle.seed is set, crypto otherwise, and draw-logged at debug level.
func provideSourceFactory(cfg config.Config, logger *zap.Logger) handlers.SourceFactory {
	trace := observability.TraceDraws(cfg.Logging)
	return func() dice.Source {
		src := dice.NewSource(cfg.Battle.Seed)
		if trace {
			return dice.NewLoggedSource(src, logger)
		}
		return src
	}
}
