package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/optirail/pkg/adapters/memory"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunWorkspaceStoreContract(t, store)
}

func TestMemoryStore_ConcurrentSave(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ws := &domain.Workspace{Name: fmt.Sprintf("ws-%02d", i)}
			assert.NoError(t, store.Save(ctx, ws))
		}(i)
	}
	wg.Wait()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 32)
	assert.Equal(t, "ws-00", names[0])
}
