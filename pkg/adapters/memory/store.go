package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/optirail/pkg/domain"
)

// Store implements ports.WorkspaceStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Workspace
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Workspace),
	}
}

// Save stores a deep copy of the workspace.
func (s *Store) Save(ctx context.Context, ws *domain.Workspace) error {
	copied := ws.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[ws.Name] = copied
	return nil
}

// Load returns a copy so callers can't mutate stored rails by pointer.
func (s *Store) Load(ctx context.Context, name string) (*domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ws, ok := s.data[name]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	return ws.Clone(), nil
}

// Delete removes the workspace.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns workspace names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
