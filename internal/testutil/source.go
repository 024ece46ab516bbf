package testutil

import "sync"

// ScriptedSource replays fixed draws for deterministic combat tests.
// When a queue runs dry the matching default is returned.
type ScriptedSource struct {
	mu           sync.Mutex
	Floats       []float64
	Ints         []int
	FloatDefault float64
	IntDefault   int

	floatCalls int
	intCalls   int
}

// Intn pops the next scripted int, clamped into [0, n).
//
// Precondition: n > 0.
func (s *ScriptedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intCalls++
	v := s.IntDefault
	if len(s.Ints) > 0 {
		v, s.Ints = s.Ints[0], s.Ints[1:]
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Float64 pops the next scripted float.
func (s *ScriptedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floatCalls++
	if len(s.Floats) > 0 {
		v := s.Floats[0]
		s.Floats = s.Floats[1:]
		return v
	}
	return s.FloatDefault
}

// Calls returns how many Float64 and Intn draws have been consumed.
func (s *ScriptedSource) Calls() (floats, ints int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.floatCalls, s.intCalls
}
