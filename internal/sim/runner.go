// Package sim runs Monte Carlo duels between every catalog loadout to
// measure balance: win and draw rates and battle length.
package sim

import (
	"context"
	"errors"
	"fmt"
	mrand "math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/duel/internal/game/combat"
	"github.com/cory-johannsen/duel/internal/game/dice"
	"github.com/cory-johannsen/duel/internal/game/inventory"
	"github.com/cory-johannsen/duel/internal/game/ruleset"
)

// Loadout is an archetype armed with one weapon from its pool.
type Loadout struct {
	Archetype *ruleset.Archetype
	Weapon    *inventory.WeaponDef
}

// Label returns "Archetype/Weapon".
func (l Loadout) Label() string {
	return l.Archetype.Name + "/" + l.Weapon.Name
}

// Matchup is one player-side loadout against one CPU-side loadout with its own seed.
type Matchup struct {
	Player Loadout
	CPU    Loadout
	Seed   uint64
}

// Result aggregates the trials of one matchup from the player side's view.
type Result struct {
	Matchup    Matchup
	Trials     int
	PlayerWins int
	CpuWins    int
	Draws      int
	Turns      Stats
}

// WinRate is the fraction of trials the player side won.
func (r Result) WinRate() float64 { return rate(r.PlayerWins, r.Trials) }

// DrawRate is the fraction of trials that ended in a draw.
func (r Result) DrawRate() float64 { return rate(r.Draws, r.Trials) }

func rate(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// Options configures a Runner.
type Options struct {
	// Trials is the number of battles per matchup.
	Trials int
	// Workers bounds how many matchups run at once.
	Workers int
	// MaxTurns caps each battle; zero means unbounded.
	MaxTurns int
	// Seed derives every matchup seed; zero picks a random base.
	Seed uint64
}

// Runner simulates every loadout pairing in a catalog.
type Runner struct {
	catalog *ruleset.Catalog
	opts    Options
	logger  *zap.Logger
}

// NewRunner validates opts and returns a Runner.
//
// Precondition: catalog and logger must be non-nil.
// Postcondition: Returns an error if Trials or Workers is below 1 or MaxTurns is negative.
func NewRunner(catalog *ruleset.Catalog, opts Options, logger *zap.Logger) (*Runner, error) {
	var errs []error
	if opts.Trials < 1 {
		errs = append(errs, fmt.Errorf("trials must be >= 1, got %d", opts.Trials))
	}
	if opts.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", opts.Workers))
	}
	if opts.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("max turns must be >= 0, got %d", opts.MaxTurns))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("simulation options: %w", err)
	}
	if opts.Seed == 0 {
		opts.Seed = mrand.Uint64() | 1
	}
	return &Runner{catalog: catalog, opts: opts, logger: logger}, nil
}

// Seed returns the base seed in use, so a random run can be reproduced.
func (r *Runner) Seed() uint64 { return r.opts.Seed }

// Loadouts lists every archetype/weapon combination in catalog order.
func Loadouts(catalog *ruleset.Catalog) []Loadout {
	var out []Loadout
	for _, a := range catalog.Archetypes() {
		for _, w := range catalog.Pool(a.ID) {
			out = append(out, Loadout{Archetype: a, Weapon: w})
		}
	}
	return out
}

// Matchups pairs every loadout with every loadout, mirror matches included.
// Each matchup's seed depends only on the base seed and its position.
func (r *Runner) Matchups() []Matchup {
	loadouts := Loadouts(r.catalog)
	out := make([]Matchup, 0, len(loadouts)*len(loadouts))
	for _, p := range loadouts {
		for _, c := range loadouts {
			out = append(out, Matchup{
				Player: p,
				CPU:    c,
				Seed:   splitmix64(r.opts.Seed + uint64(len(out))),
			})
		}
	}
	return out
}

// Run simulates all matchups on a bounded worker pool.
//
// Postcondition: Results are in Matchups order and identical for the same base
// seed regardless of Workers; returns ctx.Err() if cancelled.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	start := time.Now()
	matchups := r.Matchups()
	results := make([]Result, len(matchups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, m := range matchups {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = RunMatchup(m, r.opts.Trials, r.opts.MaxTurns)
			r.logger.Debug("matchup simulated",
				zap.String("player", m.Player.Label()),
				zap.String("cpu", m.CPU.Label()),
				zap.Float64("win_rate", results[i].WinRate()),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running simulation: %w", err)
	}

	r.logger.Info("simulation finished",
		zap.Int("matchups", len(matchups)),
		zap.Int("trials", r.opts.Trials),
		zap.Uint64("seed", r.opts.Seed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

// RunMatchup fights trials independent battles between fresh combatants,
// all drawing from one source seeded with m.Seed.
//
// Precondition: trials >= 1.
func RunMatchup(m Matchup, trials, maxTurns int) Result {
	src := dice.NewSeededSource(m.Seed)
	res := Result{Matchup: m, Trials: trials}
	turns := make([]int, 0, trials)

	for range trials {
		player := combat.NewCombatant(m.Player.Archetype)
		player.Equip(m.Player.Weapon)
		cpu := combat.NewCombatant(m.CPU.Archetype)
		cpu.Equip(m.CPU.Weapon)

		b := combat.NewBattle(player, cpu, src, combat.Options{MaxTurns: maxTurns})
		switch b.Run(nil) {
		case combat.PlayerWon:
			res.PlayerWins++
		case combat.CpuWon:
			res.CpuWins++
		default:
			res.Draws++
		}
		turns = append(turns, b.Turn)
	}

	res.Turns = calcStats(turns)
	return res
}

// splitmix64 scrambles a counter into a well-distributed seed.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
