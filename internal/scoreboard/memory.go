package scoreboard

import "sync"

// MemoryStore is an in-process KeyValueStore.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// GetAll returns a copy of every key.
func (s *MemoryStore) GetAll() (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]byte, len(s.data))
	for k, v := range s.data {
		out[k] = append([]byte(nil), v...)
	}
	return out, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

// ReplaceAll swaps the whole contents for values.
func (s *MemoryStore) ReplaceAll(values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte, len(values))
	for k, v := range values {
		s.data[k] = append([]byte(nil), v...)
	}
	return nil
}

// Clear removes every key.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)
	return nil
}

// Unavailable is a KeyValueStore for sessions without persistent storage.
type Unavailable struct{}

func (Unavailable) GetAll() (map[string][]byte, error) { return nil, ErrUnavailable }
func (Unavailable) Set(string, []byte) error           { return ErrUnavailable }
func (Unavailable) Clear() error                       { return ErrUnavailable }
