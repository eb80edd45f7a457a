package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/optirail/internal/config"
	"github.com/aretw0/optirail/internal/logging"
	"github.com/aretw0/optirail/pkg/adapters/memory"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "lab.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`
components:
  - name: f100_lens
    base: thin_lens
    label: "f=100 Lens"
    parameters:
      focal_length:
        default: 100
`), 0o644))

	cfg := config.Default()
	cfg.CatalogPath = catalogPath
	cfg.Limits.MaxRays = 1

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug, false)

	var traced int
	eng, err := NewEngine(cfg, logger, true, domain.LifecycleHooks{
		OnTrace: func(ctx context.Context, e *domain.TraceEvent) { traced++ },
	})
	require.NoError(t, err)

	_, err = eng.Catalog().Lookup("f100_lens")
	require.NoError(t, err)
	assert.Equal(t, 1, eng.Limits().MaxRays)

	_, err = eng.Trace(context.Background(), domain.TraceRequest{
		Components: domain.Rail{{Type: "f100_lens"}},
		Rays:       []domain.Ray{{Height: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, traced)
	assert.Contains(t, buf.String(), "Trace Complete")
}

func TestNewEngine_BadCatalog(t *testing.T) {
	cfg := config.Default()
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewEngine(cfg, logging.NewNop(), false)
	assert.Error(t, err)
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := NewStore(ctx, config.Redis{})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)
	assert.NoError(t, closeFn())

	mr := miniredis.RunT(t)
	store, closeFn, err = NewStore(ctx, config.Redis{Addr: mr.Addr(), Prefix: "lab:"})
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, store.Save(ctx, &domain.Workspace{Name: "bench"}))
	assert.True(t, mr.Exists("lab:bench"))
}

func TestNewStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := NewStore(context.Background(), config.Redis{Addr: addr})
	assert.Error(t, err)
}

func TestDecodeRail(t *testing.T) {
	t.Run("YAML", func(t *testing.T) {
		req, err := DecodeRail(strings.NewReader(`
components:
  - id: d1
    type: free_space
    params: {length: 100}
rays:
  - {label: axial, height: 0, angle: 10}
`))
		require.NoError(t, err)
		require.Len(t, req.Components, 1)
		assert.Equal(t, "d1", req.Components[0].ID)
		assert.Equal(t, 100.0, req.Components[0].Params["length"])
		assert.Equal(t, domain.Ray{Label: "axial", Angle: 10}, req.Rays[0])
	})

	t.Run("JSON", func(t *testing.T) {
		req, err := DecodeRail(strings.NewReader(`{"components":[{"type":"thin_lens","params":{"focal_length":50}}],"rays":[{"height":1,"angle":0}]}`))
		require.NoError(t, err)
		assert.Equal(t, "thin_lens", req.Components[0].Type)
		assert.Equal(t, 1.0, req.Rays[0].Height)
	})

	t.Run("Empty", func(t *testing.T) {
		req, err := DecodeRail(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, req.Components)
	})

	t.Run("Non-numeric Parameter", func(t *testing.T) {
		_, err := DecodeRail(strings.NewReader("components:\n  - type: free_space\n    params: {length: far}\n"))
		assert.ErrorIs(t, err, domain.ErrInvalidNumericInput)
	})

	t.Run("Unknown Field", func(t *testing.T) {
		_, err := DecodeRail(strings.NewReader("lenses: []\n"))
		assert.ErrorIs(t, err, domain.ErrInvalidNumericInput)
	})
}

func TestLoadRail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rail.yaml")
	require.NoError(t, os.WriteFile(path, []byte("components:\n  - type: mirror\n"), 0o644))

	req, err := LoadRail(path)
	require.NoError(t, err)
	assert.Equal(t, "mirror", req.Components[0].Type)

	_, err = LoadRail(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
