package identity

import "sync"

// Store maps composite mention keys to issued identifiers for one run.
type Store struct {
	ids map[string]string
	mu  sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		ids: make(map[string]string),
	}
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, exists := s.ids[key]
	return id, exists
}

// GetOrCreate returns the identifier stored under key, or stores and returns
// the result of create. create runs under the store lock.
func (s *Store) GetOrCreate(key string, create func() string) (id string, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, exists := s.ids[key]; exists {
		return id, false
	}
	id = create()
	s.ids[key] = id
	return id, true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]string)
}
