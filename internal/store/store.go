// Package store is the in-memory registry of open documents. Each
// document tree has a single owner at a time: callers hold the
// session's lock around any parse-or-edit sequence.
package store

import (
	"sync"
	"time"

	"github.com/dgallion1/docedit/internal/docprops"
	"github.com/dgallion1/docedit/internal/doctree"
)

// Session is one open document: its tree, its properties, and
// bookkeeping for TTL eviction.
type Session struct {
	mu sync.Mutex

	ID       string
	Filename string
	Root     *doctree.Node
	Props    *docprops.Store

	CreatedAt time.Time
	updatedAt time.Time
}

// Lock serializes access to the session's tree. The document model is
// single-owner; all tree mutation must happen between Lock and Unlock.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch refreshes the session's eviction clock.
func (s *Session) Touch() {
	s.mu.Lock()
	s.updatedAt = time.Now()
	s.mu.Unlock()
}

// Store is a thread-safe session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func New(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Open registers a new session for the given tree.
func (s *Store) Open(id, filename string, root *doctree.Node, props *docprops.Store) *Session {
	now := time.Now()
	sess := &Session{
		ID:        id,
		Filename:  filename,
		Root:      root,
		Props:     props,
		CreatedAt: now,
		updatedAt: now,
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return sess
}

func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// List returns the open sessions, unordered.
func (s *Store) List() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// Cleanup removes sessions idle past the TTL.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.updatedAt)
		sess.mu.Unlock()
		if idle > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
