package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/frontend/telnet"
	"github.com/cory-johannsen/duel/internal/game/combat"
)

// DefaultStatusInterval is how often the server logs its live session and battle counts.
const DefaultStatusInterval = time.Minute

// Server is the Telnet duel server.
type Server struct {
	acceptor  *telnet.Acceptor
	engine    *combat.Engine
	lifecycle *Lifecycle
	logger    *zap.Logger
}

// NewServer registers the acceptor and a status reporter with a fresh Lifecycle.
//
// Precondition: acceptor, engine and logger must be non-nil.
func NewServer(acceptor *telnet.Acceptor, engine *combat.Engine, logger *zap.Logger) *Server {
	lc := NewLifecycle(logger)
	lc.Add("telnet", &FuncService{StartFn: acceptor.ListenAndServe, StopFn: acceptor.Stop})
	lc.Add("status", NewStatusReporter(acceptor, engine, DefaultStatusInterval, logger))
	return &Server{acceptor: acceptor, engine: engine, lifecycle: lc, logger: logger}
}

// Run serves until ctx is cancelled, a signal arrives or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	return s.lifecycle.Run(ctx)
}

// Addr returns the listening address once the acceptor is up.
func (s *Server) Addr() string {
	return s.acceptor.Addr()
}

// SessionCounter reports connected clients.
type SessionCounter interface {
	Sessions() int
}

// StatusReporter periodically logs live session and battle counts.
type StatusReporter struct {
	sessions SessionCounter
	engine   *combat.Engine
	interval time.Duration
	logger   *zap.Logger

	once sync.Once
	done chan struct{}
}

// NewStatusReporter creates a reporter that logs every interval.
//
// Precondition: interval > 0.
func NewStatusReporter(sessions SessionCounter, engine *combat.Engine, interval time.Duration, logger *zap.Logger) *StatusReporter {
	return &StatusReporter{
		sessions: sessions,
		engine:   engine,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start logs on every tick until Stop is called.
func (r *StatusReporter) Start() error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return nil
		case <-ticker.C:
			r.Report()
		}
	}
}

// Report logs the current counts once.
func (r *StatusReporter) Report() {
	r.logger.Info("server status",
		zap.Int("sessions", r.sessions.Sessions()),
		zap.Int("active_battles", r.engine.Active()),
	)
}

// Stop ends Start. It is safe to call more than once.
func (r *StatusReporter) Stop() {
	r.once.Do(func() { close(r.done) })
}
