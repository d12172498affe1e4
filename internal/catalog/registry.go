package catalog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry keeps live sessions in memory, keyed by ID
type Registry struct {
	catalog Catalog
	opts    SessionOptions

	mu       sync.RWMutex
	sessions map[string]*Session
	inUse    func(id string) bool
}

// NewRegistry creates an empty registry whose sessions share catalog and opts
func NewRegistry(catalog Catalog, opts SessionOptions) *Registry {
	return &Registry{
		catalog:  catalog,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session under a fresh ID
func (r *Registry) Create() *Session {
	s := NewSession(uuid.NewString(), r.catalog, r.opts)

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()

	return s
}

// Get looks up a session and marks it as in use
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if ok {
		s.Touch()
	}
	return s, ok
}

// GetOrCreate returns the session for id, or a new session under a fresh
// ID when id is unknown. created reports which happened.
func (r *Registry) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, ok := r.Get(id); ok {
			return s, false
		}
	}
	return r.Create(), true
}

// KeepWhile installs a check that exempts sessions from eviction while it
// reports true, however long they have been idle
func (r *Registry) KeepWhile(inUse func(id string) bool) {
	r.mu.Lock()
	r.inUse = inUse
	r.mu.Unlock()
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle removes sessions not touched within maxIdle of now and returns
// their IDs. Sessions the KeepWhile check reports in use are touched instead.
func (r *Registry) EvictIdle(maxIdle time.Duration, now time.Time) []string {
	cutoff := now.Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for id, s := range r.sessions {
		if !s.LastSeen().Before(cutoff) {
			continue
		}
		if r.inUse != nil && r.inUse(id) {
			s.Touch()
			continue
		}
		delete(r.sessions, id)
		evicted = append(evicted, id)
	}
	return evicted
}
