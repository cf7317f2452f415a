package console

import (
	"sync"
	"time"

	"lumina/internal/model"
)

type registryEntry struct {
	console  *Console
	lastSeen time.Time
}

// Registry keeps one Console per signed-in session.
type Registry struct {
	svcs    Services
	maxIdle time.Duration
	now     func() time.Time

	mu       sync.Mutex
	consoles map[string]*registryEntry
}

// NewRegistry forgets consoles untouched for maxIdle.
func NewRegistry(svcs Services, maxIdle time.Duration) *Registry {
	return &Registry{
		svcs:     svcs,
		maxIdle:  maxIdle,
		now:      time.Now,
		consoles: make(map[string]*registryEntry),
	}
}

// Get returns the console of sessionID, creating it for user on first use.
func (r *Registry) Get(sessionID string, user *model.User) *Console {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, e := range r.consoles {
		if now.Sub(e.lastSeen) > r.maxIdle {
			delete(r.consoles, id)
		}
	}

	e, ok := r.consoles[sessionID]
	if !ok || e.console.User.ID != user.ID {
		e = &registryEntry{console: New(r.svcs, user)}
		r.consoles[sessionID] = e
	}
	e.lastSeen = now
	return e.console
}

// Drop discards the console of a session that signed out.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.consoles, sessionID)
	r.mu.Unlock()
}

// Len reports how many consoles are live.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.consoles)
}
