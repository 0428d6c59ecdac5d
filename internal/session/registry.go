package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"promptlab/internal/activity"
	"promptlab/internal/metrics"
)

const DefaultID = "default"

var ErrTooManySessions = errors.New("too many active sessions")

type Session struct {
	ID    string
	State *Store
	Logs  *activity.Store

	lastSeen time.Time
}

// Registry hands out sessions by id, creating them on first use. Sessions
// idle for longer than the TTL are dropped by Sweep. At most max sessions
// are held; a non-positive max means no limit.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	now      func() time.Time
	metrics  *metrics.Metrics
}

func NewRegistry(ttl time.Duration, max int, m *metrics.Metrics) *Registry {
	return &Registry{
		sessions: map[string]*Session{},
		ttl:      ttl,
		max:      max,
		now:      time.Now,
		metrics:  m,
	}
}

// Get returns the session for id, creating it if needed. Creating a session
// when the registry is full fails with ErrTooManySessions, after idle
// sessions have been swept.
func (r *Registry) Get(id string) (*Session, error) {
	if id == "" {
		id = DefaultID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok {
		if r.max > 0 && len(r.sessions) >= r.max {
			r.sweepLocked()
			if len(r.sessions) >= r.max {
				return nil, ErrTooManySessions
			}
		}
		sess = &Session{ID: id, State: NewStore(), Logs: activity.NewStore()}
		r.sessions[id] = sess
		r.reportLocked()
	}
	sess.lastSeen = r.now()
	return sess, nil
}

// Touch marks sess as used. A session swept while a request still held it is
// put back, unless its id has been taken by a new session since.
func (r *Registry) Touch(sess *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess.lastSeen = r.now()
	if _, ok := r.sessions[sess.ID]; !ok {
		r.sessions[sess.ID] = sess
		r.reportLocked()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes idle sessions and returns how many were removed. A
// non-positive TTL keeps sessions forever.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *Registry) sweepLocked() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, sess := range r.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.reportLocked()
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) reportLocked() {
	if r.metrics != nil {
		r.metrics.SessionsActive.Set(float64(len(r.sessions)))
	}
}
