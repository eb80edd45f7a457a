package ports

import (
	"context"

	"github.com/aretw0/optirail/pkg/domain"
)

// WorkspaceStore persists named rails for editors.
// The engine itself never touches it.
type WorkspaceStore interface {
	// Save creates or replaces the workspace under ws.Name.
	Save(ctx context.Context, ws *domain.Workspace) error

	// Load retrieves a workspace by name.
	// Returns domain.ErrWorkspaceNotFound if it does not exist.
	Load(ctx context.Context, name string) (*domain.Workspace, error)

	// Delete removes a workspace. Deleting a missing workspace is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored workspace names in lexical order.
	List(ctx context.Context) ([]string, error)
}
