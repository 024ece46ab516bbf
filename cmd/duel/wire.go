//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/cory-johannsen/duel/internal/config"
	"github.com/cory-johannsen/duel/internal/frontend/handlers"
	"github.com/cory-johannsen/duel/internal/frontend/telnet"
	"github.com/cory-johannsen/duel/internal/game/combat"
	"github.com/cory-johannsen/duel/internal/game/ruleset"
	"github.com/cory-johannsen/duel/internal/server"
)

var handlerSet = wire.NewSet(
	provideLogger,
	provideBattleConfig,
	provideSourceFactory,
	ruleset.Builtin,
	combat.NewEngine,
	handlers.NewDuelHandler,
)

// InitializeHandler builds the duel handler for local play.
func InitializeHandler(cfg config.Config) (*handlers.DuelHandler, func(), error) {
	wire.Build(handlerSet)
	return nil, nil, nil
}

// InitializeServer builds the Telnet duel server.
func InitializeServer(cfg config.Config) (*server.Server, func(), error) {
	wire.Build(
		handlerSet,
		provideTelnetConfig,
		wire.Bind(new(telnet.SessionHandler), new(*handlers.DuelHandler)),
		telnet.NewAcceptor,
		server.NewServer,
	)
	return nil, nil, nil
}
