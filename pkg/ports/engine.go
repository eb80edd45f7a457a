package ports

import (
	"context"

	"github.com/aretw0/optirail/pkg/catalog"
	"github.com/aretw0/optirail/pkg/domain"
)

// Tracer is the stateless engine as seen by adapters.
// Every call derives its result from its arguments only.
type Tracer interface {
	// Trace composes the rail and propagates the rays.
	Trace(ctx context.Context, req domain.TraceRequest) (*domain.TraceResult, error)

	// Components lists the component library for editors.
	Components() []catalog.ComponentType
}
