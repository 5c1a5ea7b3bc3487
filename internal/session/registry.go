// Package session keeps the filter state of each browsing client.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"catalog-browser/internal/catalog"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session: not found")
	ErrSessionLimit    = errors.New("session: limit reached")
)

type entry struct {
	state    catalog.State
	lastSeen time.Time
}

// Registry maps session ids to catalog states. The HTTP server calls it from
// many goroutines, so every access goes through mu.
type Registry struct {
	browser *catalog.Browser
	limit   int
	now     func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
}

// NewRegistry creates a registry holding at most limit sessions. limit <= 0 means unbounded.
func NewRegistry(browser *catalog.Browser, limit int) *Registry {
	return &Registry{
		browser:  browser,
		limit:    limit,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*entry),
	}
}

// Create starts a session in the browser's initial state.
func (r *Registry) Create() (uuid.UUID, catalog.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit > 0 && len(r.sessions) >= r.limit {
		return uuid.Nil, catalog.State{}, fmt.Errorf("%w: %d sessions", ErrSessionLimit, r.limit)
	}

	id := uuid.New()
	s := r.browser.Initial()
	r.sessions[id] = &entry{state: s, lastSeen: r.now()}
	return id, s, nil
}

// Get returns the current state of a session.
func (r *Registry) Get(id uuid.UUID) (catalog.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return catalog.State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	e.lastSeen = r.now()
	return e.state, nil
}

// Apply runs an action through the reducer and stores the result.
// On a reducer error the session keeps its previous state.
func (r *Registry) Apply(id uuid.UUID, a catalog.Action) (catalog.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return catalog.State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	next, err := r.browser.Reduce(e.state, a)
	if err != nil {
		return e.state, err
	}
	e.state = next
	e.lastSeen = r.now()
	return next, nil
}

// Delete ends a session.
func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

// Expire drops sessions idle for longer than ttl and returns how many were removed.
func (r *Registry) Expire(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
