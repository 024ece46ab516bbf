package combat

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBattleOver is returned by Step once the battle has reached a terminal status.
var ErrBattleOver = errors.New("battle is over")

// Status is the battle state machine's state.
type Status int

const (
	InProgress Status = iota
	PlayerWon
	CpuWon
	Draw
)

// String returns a human-readable status label.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case PlayerWon:
		return "player won"
	case CpuWon:
		return "cpu won"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends the battle.
func (s Status) Terminal() bool { return s != InProgress }

// Side identifies which contestant acts.
type Side int

const (
	SidePlayer Side = iota
	SideCPU
)

// TurnEvent records one resolved turn.
type TurnEvent struct {
	Turn     int
	Side     Side
	Attacker *Combatant
	Defender *Combatant
	Result   AttackResult
}

// Options configures a Battle.
type Options struct {
	// MaxTurns ends the battle in a Draw after this many turns. Zero means unbounded.
	MaxTurns int
	// Logger receives per-turn debug logs and the outcome. Nil means no logging.
	Logger *zap.Logger
}

// Battle alternates attacks between a player and a CPU combatant until one falls.
// A Battle exclusively owns its two combatants and is not safe for concurrent use.
type Battle struct {
	ID     string
	Player *Combatant
	CPU    *Combatant
	// Turn is the number of the next turn to resolve, starting at 1.
	Turn   int
	Status Status
	// TurnLimitReached is true when the Draw came from Options.MaxTurns.
	TurnLimitReached bool

	active   Side
	src      Source
	maxTurns int
	logger   *zap.Logger
}

// NewBattle creates a battle with the player acting first.
// A battle that starts with a side already at zero health is immediately terminal.
//
// Precondition: player, cpu and src must be non-nil.
// Postcondition: Turn == 1; Status is InProgress unless a side starts defeated.
func NewBattle(player, cpu *Combatant, src Source, opts Options) *Battle {
	if player == nil || cpu == nil || src == nil {
		panic("combat: NewBattle precondition violated: player, cpu and src must be non-nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Battle{
		ID:       uuid.New().String(),
		Player:   player,
		CPU:      cpu,
		Turn:     1,
		Status:   InProgress,
		active:   SidePlayer,
		src:      src,
		maxTurns: opts.MaxTurns,
	}
	b.logger = logger.With(zap.String("battle_id", b.ID))
	if !player.IsAlive() || !cpu.IsAlive() {
		b.Status = b.evaluate()
	}
	return b
}

// Active returns the side that attacks on the next Step.
func (b *Battle) Active() Side { return b.active }

// Step resolves one turn: the active side attacks the other. If the defender
// falls the battle ends; otherwise initiative swaps and Turn increments.
//
// Postcondition: Returns ErrBattleOver without side effects once Status is terminal.
func (b *Battle) Step() (TurnEvent, error) {
	if b.Status.Terminal() {
		return TurnEvent{}, ErrBattleOver
	}

	attacker, defender := b.Player, b.CPU
	if b.active == SideCPU {
		attacker, defender = b.CPU, b.Player
	}

	res := Attack(attacker, defender, b.src)
	ev := TurnEvent{Turn: b.Turn, Side: b.active, Attacker: attacker, Defender: defender, Result: res}

	b.logger.Debug("battle turn",
		zap.Int("turn", b.Turn),
		zap.String("attacker", attacker.Name),
		zap.String("defender", defender.Name),
		zap.Bool("hit", res.Hit),
		zap.Bool("critical", res.Critical),
		zap.Int("damage", res.Damage),
		zap.Int("defender_health", defender.CurrentHealth),
	)

	switch {
	case !defender.IsAlive():
		b.Status = b.evaluate()
	case b.maxTurns > 0 && b.Turn >= b.maxTurns:
		b.Status = Draw
		b.TurnLimitReached = true
	default:
		if b.active == SidePlayer {
			b.active = SideCPU
		} else {
			b.active = SidePlayer
		}
		b.Turn++
	}

	if b.Status.Terminal() {
		b.logger.Info("battle finished",
			zap.Stringer("status", b.Status),
			zap.Int("turns", b.Turn),
			zap.Bool("turn_limit", b.TurnLimitReached),
			zap.String("player_health", b.Player.Health()),
			zap.String("cpu_health", b.CPU.Health()),
		)
	}
	return ev, nil
}

// Run steps the battle to completion, calling onTurn after every turn.
//
// Precondition: onTurn may be nil.
// Postcondition: Returns a terminal Status.
func (b *Battle) Run(onTurn func(TurnEvent)) Status {
	for !b.Status.Terminal() {
		ev, err := b.Step()
		if err != nil {
			break
		}
		if onTurn != nil {
			onTurn(ev)
		}
	}
	return b.Status
}

// evaluate maps the two health values to a terminal status.
func (b *Battle) evaluate() Status {
	playerUp, cpuUp := b.Player.IsAlive(), b.CPU.IsAlive()
	switch {
	case playerUp && !cpuUp:
		return PlayerWon
	case cpuUp && !playerUp:
		return CpuWon
	case !playerUp && !cpuUp:
		return Draw
	default:
		return InProgress
	}
}
