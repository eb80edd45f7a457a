package ports

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/aretw0/optirail/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunWorkspaceStoreContract runs a suite of tests to verify that a WorkspaceStore
// implementation adheres to the defined interface contract.
func RunWorkspaceStoreContract(t *testing.T, store WorkspaceStore) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	newWorkspace := func(name string) *domain.Workspace {
		return &domain.Workspace{
			Name: name,
			Components: domain.Rail{
				{ID: "d1", Type: "free_space", Params: map[string]float64{"length": 100}},
				{ID: "l1", Type: "thin_lens", Params: map[string]float64{"focal_length": -25.5}},
			},
			Rays: []domain.Ray{
				{Label: "axial", Height: 0, Angle: 10},
			},
			UpdatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		ws := newWorkspace(name)

		err := store.Save(ctx, ws)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, ws.Name, loaded.Name)
		assert.Equal(t, ws.Components, loaded.Components)
		assert.Equal(t, ws.Rays, loaded.Rays)
		assert.True(t, ws.UpdatedAt.Equal(loaded.UpdatedAt))
	})

	t.Run("Isolation", func(t *testing.T) {
		ws := newWorkspace(name)
		require.NoError(t, store.Save(ctx, ws))

		// Mutating the caller's copy must not leak into the store
		ws.Components[0].Params["length"] = 1
		ws.Rays[0].Height = 99

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 100.0, loaded.Components[0].Params["length"])
		assert.Equal(t, 0.0, loaded.Rays[0].Height)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newWorkspace(name)))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound, "Load after Delete should return ErrWorkspaceNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, newWorkspace(id2)))
		require.NoError(t, store.Save(ctx, newWorkspace(id1)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.True(t, sort.StringsAreSorted(names), "names must be in lexical order: %v", names)
	})
}
