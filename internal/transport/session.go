package transport

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/opensearch-mcp/internal/metrics"
)

// sessionIDBytes gives 256 bits of randomness per identifier, enough to
// make guessing infeasible.
const sessionIDBytes = 32

// Session correlates a streaming connection with a caller-supplied
// identifier across multiple calls. Sessions live only in memory.
type Session struct {
	ID        string
	CreatedAt time.Time
}

// Registry is the in-memory session table. At most one session exists per
// identifier, and identifiers are never reused while registered. Safe for
// concurrent use.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create registers a new session under a freshly generated identifier and
// returns it.
func (r *Registry) Create() (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Collisions are not a practical concern at 256 bits, but a live
	// session must never be overwritten.
	for {
		id, err := newSessionID()
		if err != nil {
			return nil, err
		}
		if _, exists := r.sessions[id]; exists {
			continue
		}
		sess := &Session{ID: id, CreatedAt: time.Now()}
		r.sessions[id] = sess
		metrics.SessionsActive.Set(float64(len(r.sessions)))
		return sess, nil
	}
}

// Get looks up a session by identifier.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Remove deletes a session and reports whether it was registered. Removing
// an unknown identifier has no side effects.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	metrics.SessionsActive.Set(float64(len(r.sessions)))
	return true
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// newSessionID returns a URL-safe identifier with sessionIDBytes of
// cryptographic randomness.
func newSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session identifier: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
