package setup

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when a setup id has no saved document.
var ErrNotFound = errors.New("setup not found")

// Store persists named setups. Implementations are safe for concurrent
// use.
type Store interface {
	Save(ctx context.Context, id string, doc *Document) error
	Load(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps setups in process memory. Useful for tests and for
// running the server without Redis.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Save stores an encoded copy of the document.
func (s *MemoryStore) Save(ctx context.Context, id string, doc *Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = data
	return nil
}

// Load returns the document saved under id, or ErrNotFound.
func (s *MemoryStore) Load(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	data, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return Decode(data)
}

// List returns all saved ids, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a saved setup. Deleting a missing id returns
// ErrNotFound.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}
