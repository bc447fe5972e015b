package voice

import (
	"slices"
	"strings"
	"sync"
)

// Registry hands out the single Connection of each guild.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Connection
	cfg   Config
	deps  Deps
}

// NewRegistry creates an empty registry. Connections it creates share cfg
// and deps.
func NewRegistry(cfg Config, deps Deps) *Registry {
	return &Registry{
		conns: make(map[string]*Connection),
		cfg:   cfg,
		deps:  deps,
	}
}

// Get returns the connection of guildID, creating it on first access.
func (r *Registry) Get(guildID string) *Connection {
	r.mu.RLock()
	c, ok := r.conns[guildID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conns[guildID]; ok {
		return c
	}
	c = newConnection(guildID, r.cfg, r.deps)
	r.conns[guildID] = c
	return c
}

// Lookup returns the connection of guildID without creating one.
func (r *Registry) Lookup(guildID string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[guildID]
	return c, ok
}

// All returns the current connections ordered by guild ID.
func (r *Registry) All() []*Connection {
	r.mu.RLock()
	out := make([]*Connection, 0, len(r.conns))
	for _, c := range r.conns {
		out = append(out, c)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Connection) int {
		return strings.Compare(a.guildID, b.guildID)
	})
	return out
}

// Forget drops the connection of a guild the bot no longer serves.
func (r *Registry) Forget(guildID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, guildID)
}
