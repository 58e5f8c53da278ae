package partition

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store implementation, used for tests and
// DB-less development runs.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]map[string][]byte
}

// NewMemoryStore returns a new in-memory partition store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]map[string][]byte)}
}

// Create allocates an empty partition at key. Returns ErrExists if the key is taken.
func (s *MemoryStore) Create(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; ok {
		return ErrExists
	}
	s.m[key] = make(map[string][]byte)
	return nil
}

// Exists reports whether a partition is allocated at key.
func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.m[key]
	return ok, nil
}

// Copy copies every item from the partition at fromKey into the partition at toKey.
func (s *MemoryStore) Copy(ctx context.Context, fromKey, toKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	from, ok := s.m[fromKey]
	if !ok {
		return ErrNotFound
	}
	to, ok := s.m[toKey]
	if !ok {
		return ErrNotFound
	}
	for id, doc := range from {
		cp := make([]byte, len(doc))
		copy(cp, doc)
		to[id] = cp
	}
	return nil
}

// Drop deallocates the partition at key. Dropping an absent partition is not an error.
func (s *MemoryStore) Drop(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// List returns the keys of all allocated partitions, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Put stores doc under id in the partition at key.
func (s *MemoryStore) Put(ctx context.Context, key, id string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[key]
	if !ok {
		return ErrNotFound
	}
	cp := make([]byte, len(doc))
	copy(cp, doc)
	p[id] = cp
	return nil
}

// Items returns all documents in the partition at key, by id.
func (s *MemoryStore) Items(ctx context.Context, key string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make(map[string][]byte, len(p))
	for id, doc := range p {
		cp := make([]byte, len(doc))
		copy(cp, doc)
		out[id] = cp
	}
	return out, nil
}
