package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/optirail"
	"github.com/aretw0/optirail/internal/config"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/observability"
)

// NewEngine initializes an optirail engine with standard CLI conventions:
// catalog extensions and limits come from cfg, and debug mode logs every trace.
func NewEngine(cfg config.Config, logger *slog.Logger, debug bool, hooks ...domain.LifecycleHooks) (*optirail.Engine, error) {
	if debug {
		hooks = append(hooks, createDebugHooks(logger))
	}

	engineOpts := []optirail.Option{
		optirail.WithLogger(logger),
		optirail.WithLimits(cfg.Limits),
		optirail.WithLifecycleHooks(observability.Chain(hooks...)),
	}
	if cfg.CatalogPath != "" {
		engineOpts = append(engineOpts, optirail.WithCatalogFile(cfg.CatalogPath))
	}

	engine, err := optirail.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
