package optirail_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/optirail"
	"github.com/aretw0/optirail/pkg/catalog"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/optics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	eng, err := optirail.New()
	require.NoError(t, err)

	assert.Same(t, catalog.Default(), eng.Catalog())
	assert.Equal(t, domain.DefaultLimits, eng.Limits())
	assert.Len(t, eng.Components(), catalog.Default().Len())
}

func TestNew_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
components:
  - name: cylinder_200
    base: positive_lens
    parameters:
      focal_length: {default: 200}
`), 0o644))

	eng, err := optirail.New(optirail.WithCatalogFile(path))
	require.NoError(t, err)

	res, err := eng.Trace(context.Background(), domain.TraceRequest{
		Components: domain.Rail{{Type: "cylinder_200"}},
	})
	require.NoError(t, err)
	assert.Equal(t, optics.Matrix{A: 1, C: -1.0 / 200, D: 1}, res.TotalMatrix)

	_, err = optirail.New(optirail.WithCatalogFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestTrace_Hooks(t *testing.T) {
	var mu sync.Mutex
	var events []*domain.TraceEvent
	record := func(ctx context.Context, e *domain.TraceEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	}

	eng, err := optirail.New(optirail.WithLifecycleHooks(domain.LifecycleHooks{
		OnTrace:      record,
		OnTraceError: record,
	}))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = eng.Trace(ctx, domain.TraceRequest{
		Components: domain.Rail{{Type: "free_space"}, {Type: "mirror"}},
		Rays:       []domain.Ray{{Height: 1}},
	})
	require.NoError(t, err)

	res, err := eng.Trace(ctx, domain.TraceRequest{Components: domain.Rail{{Type: "laser"}}})
	require.Error(t, err)
	assert.Nil(t, res)

	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTraceComplete, events[0].Type)
	assert.Equal(t, 2, events[0].Components)
	assert.Equal(t, 1, events[0].Rays)
	assert.Equal(t, []string{"free_space", "mirror"}, events[0].Types)
	assert.NoError(t, events[0].Err)

	assert.Equal(t, domain.EventTraceFailed, events[1].Type)
	assert.ErrorIs(t, events[1].Err, domain.ErrUnknownComponentType)
}

func TestTrace_Limits(t *testing.T) {
	eng, err := optirail.New(optirail.WithLimits(domain.Limits{MaxComponents: 1}))
	require.NoError(t, err)

	_, err = eng.Trace(context.Background(), domain.TraceRequest{Components: domain.Rail{{Type: "free_space"}, {Type: "free_space"}}})
	assert.ErrorIs(t, err, domain.ErrRequestTooLarge)
}

func TestTrace_Concurrent(t *testing.T) {
	eng, err := optirail.New()
	require.NoError(t, err)

	req := domain.TraceRequest{
		Components: domain.Rail{
			{Type: "free_space", Params: map[string]float64{"length": 50}},
			{Type: "thin_lens", Params: map[string]float64{"focal_length": 50}},
		},
		Rays: []domain.Ray{{Height: 1, Angle: 2}},
	}
	want, err := eng.Trace(context.Background(), req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := eng.Trace(context.Background(), req)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
