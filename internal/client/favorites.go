// Package client is the consuming side of the HTTP contract: a local
// favorites cache for anonymous use, a catalog client with a built-in
// fallback, and the reconciler that hands authority to the server once the
// user signs in.
package client

import (
	"encoding/json"
	"os"
	"sync"
)

// FavoriteSet is the on-device favorites id set kept for anonymous use. It
// persists to a JSON file after every mutation; a missing or corrupt file
// resets to empty rather than failing.
type FavoriteSet struct {
	mu   sync.Mutex
	path string
	ids  []string
}

// LoadFavoriteSet reads the set from path, tolerating absent or unreadable
// state.
func LoadFavoriteSet(path string) *FavoriteSet {
	s := &FavoriteSet{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.ids); err != nil {
		s.ids = nil
	}
	return s
}

// Contains reports membership.
func (s *FavoriteSet) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Add inserts id, keeping insertion order. Adding a present id is a no-op.
func (s *FavoriteSet) Add(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) >= 0 {
		return nil
	}
	s.ids = append(s.ids, id)
	return s.persist()
}

// Remove deletes id. Removing an absent id is a no-op.
func (s *FavoriteSet) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.ids = append(s.ids[:i], s.ids[i+1:]...)
	return s.persist()
}

// Toggle flips membership and reports whether id is now present.
func (s *FavoriteSet) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
		return false, s.persist()
	}
	s.ids = append(s.ids, id)
	return true, s.persist()
}

// IDs returns the ids in insertion order.
func (s *FavoriteSet) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *FavoriteSet) indexOf(id string) int {
	for i, v := range s.ids {
		if v == id {
			return i
		}
	}
	return -1
}

func (s *FavoriteSet) persist() error {
	data, err := json.Marshal(s.ids)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
