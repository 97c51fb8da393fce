package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pthm-cable/bodyplan/body"
)

// MemoryStore keeps encoded populations in a map, so later changes to a
// saved population do not leak into the store.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	populations map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.populations = make(map[string][]byte)
	return nil
}

func (s *MemoryStore) SavePopulation(_ context.Context, name string, pop body.Population) error {
	payload, err := encode(pop)
	if err != nil {
		return fmt.Errorf("encode population %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	s.populations[name] = payload
	return nil
}

func (s *MemoryStore) GetPopulation(_ context.Context, name string) (body.Population, bool, error) {
	s.mu.RLock()
	payload, ok := s.populations[name]
	initialized := s.initialized
	s.mu.RUnlock()

	if !initialized {
		return nil, false, ErrNotInitialized
	}
	if !ok {
		return nil, false, nil
	}
	pop, err := decode(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode population %s: %w", name, err)
	}
	return pop, true, nil
}

func (s *MemoryStore) ListPopulations(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	names := make([]string, 0, len(s.populations))
	for name := range s.populations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
