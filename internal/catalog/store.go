package catalog

import "sync"

// Store owns the session's papers. Insertion order is preserved; search and
// sort produce derived slices and never reorder the store.
//
// The mutex only keeps the slice consistent between goroutines. There is no
// per-record locking: two edits of the same paper race and the last one wins.
type Store struct {
	mu     sync.RWMutex
	papers []Paper
	nextID int
}

// NewStore creates a store holding a copy of seed. The ID counter starts
// above the largest seeded ID.
func NewStore(seed []Paper) *Store {
	s := &Store{nextID: 1}
	for _, p := range seed {
		s.papers = append(s.papers, p.clone())
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

// Add appends p under a fresh ID and returns the stored copy. IDs come from
// a counter that only grows, so a deleted paper's ID is never handed out again.
func (s *Store) Add(p Paper) Paper {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	p = p.clone()
	s.papers = append(s.papers, p)
	return p.clone()
}

// Update applies patch to the paper with the given ID.
func (s *Store) Update(id int, patch Patch) (Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Paper{}, ErrNotFound
	}
	p := &s.papers[i]
	p.Title = patch.Title
	p.Author = patch.Author
	p.Category = patch.Category
	p.Description = patch.Description
	return p.clone(), nil
}

// Remove deletes the paper with the given ID and reports whether one was
// removed. Removing a missing ID is a no-op.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false
	}
	kept := make([]Paper, 0, len(s.papers)-1)
	kept = append(kept, s.papers[:i]...)
	s.papers = append(kept, s.papers[i+1:]...)
	return true
}

// Find returns a copy of the paper with the given ID.
func (s *Store) Find(id int) (Paper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return Paper{}, ErrNotFound
	}
	return s.papers[i].clone(), nil
}

// All returns a copy of every paper in store order.
func (s *Store) All() []Paper {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Paper, len(s.papers))
	for i, p := range s.papers {
		out[i] = p.clone()
	}
	return out
}

// Len returns the number of papers held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.papers)
}

func (s *Store) index(id int) int {
	for i := range s.papers {
		if s.papers[i].ID == id {
			return i
		}
	}
	return -1
}
