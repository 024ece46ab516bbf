// Package handlers runs the interactive duel session shared by the local
// console and the Telnet server.
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/config"
	"github.com/cory-johannsen/duel/internal/frontend/telnet"
	"github.com/cory-johannsen/duel/internal/game/combat"
	"github.com/cory-johannsen/duel/internal/game/dice"
	"github.com/cory-johannsen/duel/internal/game/ruleset"
)

// Terminal is the line-oriented surface a duel session runs on.
// *telnet.Conn and *console.Terminal both satisfy it.
type Terminal interface {
	ReadLine() (string, error)
	WriteLine(text string) error
	WritePrompt(prompt string) error
}

// SourceFactory returns the randomness for one session.
type SourceFactory func() dice.Source

// DuelHandler implements telnet.SessionHandler and runs the
// select-fight-replay loop against a CPU opponent.
type DuelHandler struct {
	catalog *ruleset.Catalog
	engine  *combat.Engine
	sources SourceFactory
	cfg     config.BattleConfig
	logger  *zap.Logger
}

// NewDuelHandler creates a DuelHandler.
//
// Precondition: catalog, engine, sources and logger must be non-nil.
// Postcondition: Returns a handler ready to serve any number of sessions concurrently.
func NewDuelHandler(
	catalog *ruleset.Catalog,
	engine *combat.Engine,
	sources SourceFactory,
	cfg config.BattleConfig,
	logger *zap.Logger,
) *DuelHandler {
	return &DuelHandler{
		catalog: catalog,
		engine:  engine,
		sources: sources,
		cfg:     cfg,
		logger:  logger,
	}
}

// HandleSession implements telnet.SessionHandler.
func (h *DuelHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	return h.Play(ctx, conn)
}

// session is the per-player state of one Play call.
type session struct {
	term    Terminal
	palette telnet.Palette
	src     dice.Source
	logger  *zap.Logger
}

// Play runs duels on term until the player declines a rematch.
//
// Postcondition: Returns nil after "Goodbye!", ctx.Err() on cancellation, or the
// wrapped terminal error (io.EOF included) when input ends.
func (h *DuelHandler) Play(ctx context.Context, term Terminal) error {
	logger := h.logger
	if id := telnet.SessionID(ctx); id != "" {
		logger = logger.With(zap.String("session_id", id))
	}
	s := &session{
		term:    term,
		palette: telnet.Palette{Enabled: h.cfg.Color},
		src:     h.sources(),
		logger:  logger,
	}

	if err := s.writeLines(
		s.palette.Paint(telnet.Bold+telnet.BrightCyan, titleLine),
		s.palette.Paint(telnet.BrightCyan, titleRule),
	); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			_ = term.WriteLine(s.palette.Paint(telnet.Yellow, "Server shutting down. Goodbye!"))
			return err
		}

		if err := h.duel(ctx, s); err != nil {
			return err
		}

		if err := s.writeLines(""); err != nil {
			return err
		}
		answer, err := s.prompt(replayPrompt)
		if err != nil {
			return err
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return term.WriteLine(s.palette.Paint(telnet.Cyan, goodbyeText))
		}
	}
}

// duel runs one selection and battle.
func (h *DuelHandler) duel(ctx context.Context, s *session) error {
	player, err := h.choosePlayer(s)
	if err != nil {
		return err
	}

	cpuArch, cpuWeapon := h.catalog.RandomLoadout(s.src)
	cpu := combat.NewCombatant(cpuArch)
	cpu.Equip(cpuWeapon)

	if err := s.writeLines("", s.palette.Paint(telnet.BrightWhite, RenderOpponent(player, cpu))); err != nil {
		return err
	}
	if _, err := s.prompt(continueText); err != nil {
		return err
	}

	b := combat.NewBattle(player, cpu, s.src, combat.Options{MaxTurns: h.cfg.MaxTurns, Logger: s.logger})
	if err := h.engine.Start(b); err != nil {
		return fmt.Errorf("registering battle: %w", err)
	}
	defer h.engine.End(b.ID)

	s.logger.Info("duel started",
		zap.String("battle_id", b.ID),
		zap.String("player", player.Archetype),
		zap.String("player_weapon", player.Weapon.ID),
		zap.String("cpu", cpu.Archetype),
		zap.String("cpu_weapon", cpu.Weapon.ID),
	)

	if err := s.writeLines(""); err != nil {
		return err
	}
	if err := s.writeLines(RenderHeader(s.palette, player, cpu)...); err != nil {
		return err
	}

	for !b.Status.Terminal() {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := b.Step()
		if err != nil {
			break
		}
		if err := s.writeLines(RenderTurn(s.palette, ev)...); err != nil {
			return err
		}
	}

	return s.writeLines(RenderOutcome(s.palette, b)...)
}

// choosePlayer walks the archetype and weapon menus.
func (h *DuelHandler) choosePlayer(s *session) (*combat.Combatant, error) {
	archetypes := h.catalog.Archetypes()
	if err := s.writeLines("", chooseClass); err != nil {
		return nil, err
	}
	if err := s.writeLines(RenderArchetypeMenu(archetypes)...); err != nil {
		return nil, err
	}
	choice, err := s.askInt(classPrompt, 1, len(archetypes))
	if err != nil {
		return nil, err
	}
	arch := archetypes[choice-1]
	player := combat.NewCombatant(arch)

	pool := h.catalog.Pool(arch.ID)
	if err := s.writeLines("", fmt.Sprintf("%s selected. Choose your weapon:", arch.Name)); err != nil {
		return nil, err
	}
	if err := s.writeLines(RenderWeaponMenu(pool)...); err != nil {
		return nil, err
	}
	choice, err = s.askInt(weaponPrompt, 1, len(pool))
	if err != nil {
		return nil, err
	}
	player.Equip(pool[choice-1])
	return player, nil
}

// askInt prompts until the player enters a whole number in [lo, hi].
//
// Precondition: lo <= hi.
func (s *session) askInt(prompt string, lo, hi int) (int, error) {
	for {
		raw, err := s.prompt(prompt)
		if err != nil {
			return 0, err
		}
		raw = strings.TrimSpace(raw)
		if !isDigits(raw) {
			if err := s.writeLines(s.palette.Paint(telnet.Red, notANumber)); err != nil {
				return 0, err
			}
			continue
		}
		v, err := strconv.Atoi(raw)
		if err == nil && v >= lo && v <= hi {
			return v, nil
		}
		if err := s.writeLines(s.palette.Paint(telnet.Red, outOfRange(lo, hi))); err != nil {
			return 0, err
		}
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *session) prompt(text string) (string, error) {
	if err := s.term.WritePrompt(text); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	line, err := s.term.ReadLine()
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return line, nil
}

func (s *session) writeLines(lines ...string) error {
	for _, l := range lines {
		if err := s.term.WriteLine(l); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}
