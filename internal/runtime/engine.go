package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/optirail/pkg/catalog"
	"github.com/aretw0/optirail/pkg/domain"
)

// Engine composes rails and propagates rays. It holds only immutable
// configuration and is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	limits  domain.Limits
	logger  *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLimits bounds the accepted request size.
func WithLimits(limits domain.Limits) EngineOption {
	return func(e *Engine) {
		e.limits = limits
	}
}

// NewEngine creates an engine over the given catalog (catalog.Default when nil).
func NewEngine(cat *catalog.Catalog, opts ...EngineOption) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	e := &Engine{
		catalog: cat,
		limits:  domain.DefaultLimits,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the component library the engine builds from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Trace validates the request, composes the rail and propagates every ray.
// Any failure aborts the whole request; no partial result is returned.
func (e *Engine) Trace(ctx context.Context, req domain.TraceRequest) (*domain.TraceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := Validate(req, e.limits); err != nil {
		e.logger.Debug("trace rejected", "error", err)
		return nil, err
	}

	sys, err := Compose(e.catalog, req.Components)
	if err != nil {
		e.logger.Debug("compose failed", "error", err)
		return nil, err
	}

	rays := Propagate(sys.Elements, req.Rays)
	for i, r := range rays {
		if !isFinite(r.Final.Height) || !isFinite(r.Final.Angle) {
			return nil, &domain.TraceError{
				Index: i,
				Field: fmt.Sprintf("rays[%d]", i),
				Err:   fmt.Errorf("%w: ray state overflows", domain.ErrInvalidNumericInput),
			}
		}
	}

	res := &domain.TraceResult{
		Elements:    make([]domain.ElementResult, len(sys.Elements)),
		TotalMatrix: sys.TotalMatrix,
		TotalOffset: sys.TotalOffset,
		Rays:        rays,
	}
	for i, el := range sys.Elements {
		res.Elements[i] = domain.ElementResult{
			ID:     req.Components[i].ID,
			Type:   req.Components[i].Type,
			Matrix: el.Matrix,
			Offset: el.Offset,
		}
	}

	e.logger.Debug("trace complete",
		"components", len(req.Components),
		"rays", len(req.Rays),
		"total_matrix", sys.TotalMatrix.String(),
	)
	return res, nil
}
