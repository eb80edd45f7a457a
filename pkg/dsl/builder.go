package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/optirail/pkg/catalog"
	"github.com/aretw0/optirail/pkg/domain"
)

// Builder accumulates a rail and its rays in insertion order.
type Builder struct {
	elements []*ElementBuilder
	rays     []domain.Ray
}

// New creates an empty rail builder.
func New() *Builder {
	return &Builder{}
}

// Add appends a component of the given type. An empty id is allowed.
func (b *Builder) Add(id, typ string) *ElementBuilder {
	eb := &ElementBuilder{
		component: domain.Component{ID: id, Type: typ},
		builder:   b,
	}
	b.elements = append(b.elements, eb)
	return eb
}

// Space appends free space of the given length (mm).
func (b *Builder) Space(length float64) *Builder {
	return b.Add("", "free_space").Set("length", length).Then()
}

// Lens appends a thin lens of focal length f (mm).
func (b *Builder) Lens(id string, f float64) *Builder {
	return b.Add(id, "thin_lens").Set("focal_length", f).Then()
}

// Ray adds a reference ray at height (mm) and angle (mrad).
func (b *Builder) Ray(label string, height, angle float64) *Builder {
	b.rays = append(b.rays, domain.Ray{Label: label, Height: height, Angle: angle})
	return b
}

// Rail returns the components without checking them.
func (b *Builder) Rail() domain.Rail {
	rail := make(domain.Rail, len(b.elements))
	for i, eb := range b.elements {
		rail[i] = eb.component
	}
	return rail.Clone()
}

// Build checks every component against cat and returns the trace request.
// Unlike the engine, it also rejects parameters the type does not declare,
// which usually means a typo in builder code.
func (b *Builder) Build(cat *catalog.Catalog) (domain.TraceRequest, error) {
	if cat == nil {
		cat = catalog.Default()
	}

	var errs []error
	for i, eb := range b.elements {
		ct, err := cat.Lookup(eb.component.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		for name := range eb.component.Params {
			if _, ok := ct.Param(name); !ok {
				errs = append(errs, fmt.Errorf("element %d (%s): unknown parameter %q", i, ct.Name, name))
			}
		}
	}
	if len(errs) > 0 {
		return domain.TraceRequest{}, errors.Join(errs...)
	}

	return domain.TraceRequest{
		Components: b.Rail(),
		Rays:       append([]domain.Ray(nil), b.rays...),
	}, nil
}
