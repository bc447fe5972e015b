package voice

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetIsIdempotent(t *testing.T) {
	h := newHarness(Config{})

	a := h.reg.Get("g1")
	b := h.reg.Get("g1")
	other := h.reg.Get("g2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
	assert.Equal(t, "g1", a.GuildID())
}

func TestRegistryConcurrentFirstAccess(t *testing.T) {
	h := newHarness(Config{})

	const workers = 64
	got := make([]*Connection, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = h.reg.Get("g1")
		}()
	}
	wg.Wait()

	for _, c := range got {
		assert.Same(t, got[0], c)
	}
	assert.Len(t, h.reg.All(), 1)
}

func TestRegistryLookupAllForget(t *testing.T) {
	h := newHarness(Config{})

	_, ok := h.reg.Lookup("g1")
	assert.False(t, ok, "lookup must not create")

	for _, id := range []string{"g3", "g1", "g2"} {
		h.reg.Get(id)
	}
	ids := make([]string, 0, 3)
	for _, c := range h.reg.All() {
		ids = append(ids, c.GuildID())
	}
	assert.Equal(t, []string{"g1", "g2", "g3"}, ids)

	old, ok := h.reg.Lookup("g2")
	require.True(t, ok)
	h.reg.Forget("g2")
	_, ok = h.reg.Lookup("g2")
	assert.False(t, ok)
	assert.NotSame(t, old, h.reg.Get("g2"))
}
