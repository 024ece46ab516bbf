package combat

import (
	"fmt"
	"sync"
)

// Engine tracks every live Battle, keyed by battle ID.
// All methods are safe for concurrent use; the battles themselves are not.
type Engine struct {
	mu      sync.RWMutex
	battles map[string]*Battle
}

// NewEngine creates an empty Engine.
//
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine() *Engine {
	return &Engine{battles: make(map[string]*Battle)}
}

// Start registers b as live.
//
// Precondition: b must be non-nil.
// Postcondition: Returns an error if a battle with the same ID is already registered.
func (e *Engine) Start(b *Battle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.battles[b.ID]; exists {
		return fmt.Errorf("battle %q already active", b.ID)
	}
	e.battles[b.ID] = b
	return nil
}

// Get returns the live battle with the given ID.
//
// Postcondition: Returns (battle, true) if found, or (nil, false) otherwise.
func (e *Engine) Get(id string) (*Battle, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.battles[id]
	return b, ok
}

// End removes the battle record for id. Unknown IDs are ignored.
func (e *Engine) End(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.battles, id)
}

// Active returns the number of live battles.
func (e *Engine) Active() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.battles)
}
