// Package activity keeps a bounded, most-recent-first log of API calls made on
// behalf of a session, for diagnostics.
package activity

import (
	"sync"
	"time"

	"promptlab/internal/ids"
)

// Capacity is the maximum number of entries retained; older entries are
// dropped as new ones arrive.
const Capacity = 100

type EntryType string

const (
	TypeRequest  EntryType = "request"
	TypeResponse EntryType = "response"
	TypeError    EntryType = "error"
	TypeInfo     EntryType = "info"
)

type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EntryType `json:"type"`
	Endpoint  string    `json:"endpoint"`
	Data      any       `json:"data,omitempty"`
}

type Store struct {
	mu      sync.Mutex
	entries []Entry
	subs    map[int]func([]Entry)
	nextSub int
	now     func() time.Time

	// notifyMu is held from a change until its subscribers have run, so
	// deliveries follow the order of changes.
	notifyMu sync.Mutex
}

func NewStore() *Store {
	return &Store{subs: map[int]func([]Entry){}, now: time.Now}
}

// Add stamps e with a fresh id and the current time and puts it first.
// Subscribers must not call Add or Clear.
func (s *Store) Add(e Entry) Entry {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	now := s.now()
	e.ID = ids.Random("log", now)
	e.Timestamp = now
	next := make([]Entry, 0, min(len(s.entries)+1, Capacity))
	next = append(next, e)
	next = append(next, s.entries...)
	if len(next) > Capacity {
		next = next[:Capacity]
	}
	s.entries = next
	snap, fns := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	deliver(fns, snap)
	return e
}

func (s *Store) Clear() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.entries = nil
	snap, fns := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	deliver(fns, snap)
}

// Entries returns a copy, most recent first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Subscribe calls fn with the current entries and again after every change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func([]Entry)) func() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	snap := s.snapshotLocked()
	s.mu.Unlock()

	fn(snap)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) subscribersLocked() []func([]Entry) {
	fns := make([]func([]Entry), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

func (s *Store) snapshotLocked() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// deliver hands each subscriber its own copy.
func deliver(fns []func([]Entry), snap []Entry) {
	for i, fn := range fns {
		if i > 0 {
			snap = append([]Entry(nil), snap...)
		}
		fn(snap)
	}
}
