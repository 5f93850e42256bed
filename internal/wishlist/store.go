package wishlist

import "sync"

// Store is one user's set of liked product ids. Inserts are set-semantic;
// iteration order is insertion order.
type Store struct {
	mu      sync.Mutex
	ids     []string
	present map[string]struct{}
}

// NewStore returns an empty wishlist.
func NewStore() *Store {
	return &Store{present: map[string]struct{}{}}
}

// Add inserts the id if absent and reports whether it was added.
func (s *Store) Add(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.present[id]; ok {
		return false
	}
	s.present[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Remove deletes the id if present and reports whether it was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.present[id]; !ok {
		return false
	}
	delete(s.present, id)
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports membership.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.present[id]
	return ok
}

// IDs returns a copy of the liked ids in insertion order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
