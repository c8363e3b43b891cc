// Package docprops is the document-properties key/value store attached
// to every open document: a few well-known core fields plus arbitrary
// custom pairs.
package docprops

import "sync"

// Core property keys.
const (
	KeyTitle    = "title"
	KeyAuthor   = "author"
	KeySubject  = "subject"
	KeyKeywords = "keywords"
)

// Store holds document properties. Safe for concurrent readers and
// writers.
type Store struct {
	mu    sync.RWMutex
	props map[string]string
}

func New() *Store {
	return &Store{props: make(map[string]string)}
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.props[key]
	return v, ok
}

func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props[key] = value
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.props, key)
}

// All returns a copy of every stored property.
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.props))
	for k, v := range s.props {
		out[k] = v
	}
	return out
}

// Title is a convenience accessor for the core title property.
func (s *Store) Title() string {
	v, _ := s.Get(KeyTitle)
	return v
}
