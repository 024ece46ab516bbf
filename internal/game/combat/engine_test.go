package combat_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/duel/internal/game/combat"
	"github.com/cory-johannsen/duel/internal/testutil"
)

func newTestBattle() *combat.Battle {
	return combat.NewBattle(unarmed("P", 10), unarmed("C", 10), &testutil.ScriptedSource{}, combat.Options{})
}

func TestEngine_StartGetEnd(t *testing.T) {
	eng := combat.NewEngine()
	b := newTestBattle()

	require.NoError(t, eng.Start(b))
	assert.Equal(t, 1, eng.Active())

	got, ok := eng.Get(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	eng.End(b.ID)
	_, ok = eng.Get(b.ID)
	assert.False(t, ok)
	assert.Zero(t, eng.Active())

	eng.End("missing")
}

func TestEngine_StartRejectsDuplicate(t *testing.T) {
	eng := combat.NewEngine()
	b := newTestBattle()
	require.NoError(t, eng.Start(b))
	assert.Error(t, eng.Start(b))
}

func TestEngine_ConcurrentStart(t *testing.T) {
	eng := combat.NewEngine()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := newTestBattle()
			assert.NoError(t, eng.Start(b))
			_, ok := eng.Get(b.ID)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, eng.Active())
}
