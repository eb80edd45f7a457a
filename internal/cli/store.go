package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/optirail/internal/config"
	"github.com/aretw0/optirail/pkg/adapters/memory"
	"github.com/aretw0/optirail/pkg/adapters/redis"
	"github.com/aretw0/optirail/pkg/ports"
)

// NewStore selects the workspace store: Redis when an address is configured,
// in-memory otherwise. The returned close func releases the backend.
func NewStore(ctx context.Context, cfg config.Redis) (ports.WorkspaceStore, func() error, error) {
	if cfg.Addr == "" {
		return memory.NewStore(), func() error { return nil }, nil
	}

	var opts []redis.Option
	if cfg.Prefix != "" {
		opts = append(opts, redis.WithPrefix(cfg.Prefix))
	}
	if cfg.TTL > 0 {
		opts = append(opts, redis.WithTTL(cfg.TTL))
	}
	store := redis.New(cfg.Addr, cfg.Password, cfg.DB, opts...)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("redis unreachable at %s: %w", cfg.Addr, err)
	}
	return store, store.Close, nil
}
