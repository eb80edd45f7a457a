package optirail

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/optirail/internal/runtime"
	"github.com/aretw0/optirail/pkg/catalog"
	"github.com/aretw0/optirail/pkg/domain"
)

// Engine is the high-level entry point for the optirail library.
// It wraps the internal runtime and adds logging and lifecycle hooks.
type Engine struct {
	runtime     *runtime.Engine
	catalog     *catalog.Catalog
	catalogFile string
	limits      domain.Limits
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog replaces the built-in component library.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithCatalogFile extends the component library with a YAML definitions file.
func WithCatalogFile(path string) Option {
	return func(e *Engine) {
		e.catalogFile = path
	}
}

// WithLimits bounds request size (component and ray counts).
func WithLimits(limits domain.Limits) Option {
	return func(e *Engine) {
		e.limits = limits
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine. Without options it uses the built-in catalog and
// the default request limits.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		limits: domain.DefaultLimits,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.catalog == nil {
		eng.catalog = catalog.Default()
	}
	if eng.catalogFile != "" {
		extended, err := eng.catalog.LoadFile(eng.catalogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		eng.catalog = extended
	}

	// Ensure logger is initialized so the runtime never receives nil
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.runtime = runtime.NewEngine(
		eng.catalog,
		runtime.WithLogger(eng.logger),
		runtime.WithLimits(eng.limits),
	)
	return eng, nil
}

// Trace computes every element transfer, the system transfer and the final
// state of every ray. Failures are request-level: no partial result is returned.
func (e *Engine) Trace(ctx context.Context, req domain.TraceRequest) (*domain.TraceResult, error) {
	start := time.Now()
	res, err := e.runtime.Trace(ctx, req)

	event := &domain.TraceEvent{
		EventBase: domain.EventBase{
			Timestamp: start,
			Type:      domain.EventTraceComplete,
		},
		Components: len(req.Components),
		Rays:       len(req.Rays),
		Types:      railTypes(req.Components),
		Duration:   time.Since(start),
		Err:        err,
	}

	if err != nil {
		event.Type = domain.EventTraceFailed
		if e.hooks.OnTraceError != nil {
			e.hooks.OnTraceError(ctx, event)
		}
		return nil, err
	}

	if e.hooks.OnTrace != nil {
		e.hooks.OnTrace(ctx, event)
	}
	return res, nil
}

// Components lists the component library in registration order.
func (e *Engine) Components() []catalog.ComponentType {
	return e.catalog.Types()
}

// Catalog returns the component library used by the engine.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Limits returns the request limits in force.
func (e *Engine) Limits() domain.Limits {
	return e.limits
}

func railTypes(rail domain.Rail) []string {
	types := make([]string, len(rail))
	for i, c := range rail {
		types[i] = c.Type
	}
	return types
}
