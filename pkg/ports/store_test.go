package ports_test

import (
	"context"
	"sort"
	"testing"

	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/ports"
)

// MockStore is a map-backed WorkspaceStore used to exercise the contract itself.
type MockStore struct {
	data map[string]*domain.Workspace
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Workspace),
	}
}

func (m *MockStore) Save(ctx context.Context, ws *domain.Workspace) error {
	m.data[ws.Name] = ws.Clone()
	return nil
}

func (m *MockStore) Load(ctx context.Context, name string) (*domain.Workspace, error) {
	ws, ok := m.data[name]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	return ws.Clone(), nil
}

func (m *MockStore) Delete(ctx context.Context, name string) error {
	delete(m.data, name)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func TestWorkspaceStore_Contract(t *testing.T) {
	ports.RunWorkspaceStoreContract(t, NewMockStore())
}
