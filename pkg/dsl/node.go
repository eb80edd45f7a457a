package dsl

import (
	"github.com/aretw0/optirail/pkg/catalog"
	"github.com/aretw0/optirail/pkg/domain"
)

// ElementBuilder provides a fluent API for configuring one component.
type ElementBuilder struct {
	component domain.Component
	builder   *Builder
}

// Set assigns a parameter value.
func (e *ElementBuilder) Set(name string, value float64) *ElementBuilder {
	if e.component.Params == nil {
		e.component.Params = make(map[string]float64)
	}
	e.component.Params[name] = value
	return e
}

// Params assigns several parameters at once.
func (e *ElementBuilder) Params(params map[string]float64) *ElementBuilder {
	for k, v := range params {
		e.Set(k, v)
	}
	return e
}

// Then returns to the rail builder.
func (e *ElementBuilder) Then() *Builder {
	return e.builder
}

// Add finishes this element and appends the next one.
func (e *ElementBuilder) Add(id, typ string) *ElementBuilder {
	return e.builder.Add(id, typ)
}

// Space finishes this element and appends free space.
func (e *ElementBuilder) Space(length float64) *Builder {
	return e.builder.Space(length)
}

// Ray finishes this element and adds a reference ray.
func (e *ElementBuilder) Ray(label string, height, angle float64) *Builder {
	return e.builder.Ray(label, height, angle)
}

// Build finishes this element and builds the request.
func (e *ElementBuilder) Build(cat *catalog.Catalog) (domain.TraceRequest, error) {
	return e.builder.Build(cat)
}
