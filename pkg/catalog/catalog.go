package catalog

import (
	"fmt"
	"math"
	"sync"

	"github.com/aretw0/optirail/pkg/domain"
)

// Catalog is an immutable table of component types. Safe for concurrent use.
type Catalog struct {
	order []string
	types map[string]ComponentType
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the compiled-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(builtinTypes()...)
		if err != nil {
			panic(fmt.Sprintf("catalog: built-in table is inconsistent: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// New builds a catalog from fully formed types. Names must be unique.
func New(types ...ComponentType) (*Catalog, error) {
	c := &Catalog{types: make(map[string]ComponentType, len(types))}
	for _, t := range types {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: type without name", domain.ErrInvalidCatalog)
		}
		if t.decode == nil {
			return nil, fmt.Errorf("%w: type %q has no formula", domain.ErrInvalidCatalog, t.Name)
		}
		if _, dup := c.types[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate type %q", domain.ErrInvalidCatalog, t.Name)
		}
		c.order = append(c.order, t.Name)
		c.types[t.Name] = t
	}
	return c, nil
}

// Lookup returns the type registered under name.
func (c *Catalog) Lookup(name string) (ComponentType, error) {
	t, ok := c.types[name]
	if !ok {
		return ComponentType{}, fmt.Errorf("%w: %q", domain.ErrUnknownComponentType, name)
	}
	return t, nil
}

// ResolveParams fills every schema parameter: the supplied value when present
// and finite, the schema default otherwise. Unknown keys are ignored and no
// value is clamped to the schema bounds.
func (c *Catalog) ResolveParams(name string, supplied map[string]float64) (map[string]float64, error) {
	t, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(t.Params))
	for _, p := range t.Params {
		v, ok := supplied[p.Name]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			v = p.Default
		}
		out[p.Name] = v
	}
	return out, nil
}

// Types lists the catalog in registration order.
func (c *Catalog) Types() []ComponentType {
	out := make([]ComponentType, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.types[name])
	}
	return out
}

// Len returns the number of registered types.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Definition describes a catalog entry in configuration.
// With Base set it derives a new type from an existing one; without it, it
// overrides the presentation and defaults of an existing type of the same name.
type Definition struct {
	Name        string                   `yaml:"name" json:"name"`
	Base        string                   `yaml:"base,omitempty" json:"base,omitempty"`
	Label       string                   `yaml:"label,omitempty" json:"label,omitempty"`
	Description string                   `yaml:"description,omitempty" json:"description,omitempty"`
	Parameters  map[string]ParamOverride `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// ParamOverride changes the fields it sets and keeps the parent's for the rest.
type ParamOverride struct {
	Default *float64 `yaml:"default,omitempty" json:"default,omitempty"`
	Min     *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max     *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Step    *float64 `yaml:"step,omitempty" json:"step,omitempty"`
}

func (o ParamOverride) apply(spec ParamSpec) ParamSpec {
	if o.Default != nil {
		spec.Default = *o.Default
	}
	if o.Min != nil {
		spec.Min = ptr(*o.Min)
	}
	if o.Max != nil {
		spec.Max = ptr(*o.Max)
	}
	if o.Step != nil {
		spec.Step = ptr(*o.Step)
	}
	return spec
}

// Extend returns a new catalog with defs applied in order. The receiver is untouched.
func (c *Catalog) Extend(defs ...Definition) (*Catalog, error) {
	next := &Catalog{
		order: append([]string(nil), c.order...),
		types: make(map[string]ComponentType, len(c.types)+len(defs)),
	}
	for k, v := range c.types {
		next.types[k] = v
	}

	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: definition without name", domain.ErrInvalidCatalog)
		}

		parentName := def.Base
		if parentName == "" {
			parentName = def.Name
		} else if _, exists := next.types[def.Name]; exists {
			return nil, fmt.Errorf("%w: %q already exists and cannot be rebased onto %q", domain.ErrInvalidCatalog, def.Name, def.Base)
		}
		parent, ok := next.types[parentName]
		if !ok {
			return nil, fmt.Errorf("%w: %q derives from unknown type %q", domain.ErrInvalidCatalog, def.Name, parentName)
		}

		t := parent
		t.Name = def.Name
		if def.Base != "" {
			t.Base = parent.Name
			if parent.Base != "" {
				t.Base = parent.Base
			}
		}
		if def.Label != "" {
			t.Label = def.Label
		}
		if def.Description != "" {
			t.Description = def.Description
		}

		t.Params = append([]Param(nil), parent.Params...)
		for name, override := range def.Parameters {
			idx := -1
			for i, p := range t.Params {
				if p.Name == name {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, fmt.Errorf("%w: %q has no parameter %q", domain.ErrInvalidCatalog, def.Name, name)
			}
			if d := override.Default; d != nil && (math.IsNaN(*d) || math.IsInf(*d, 0)) {
				return nil, fmt.Errorf("%w: %q default for %q is not finite", domain.ErrInvalidCatalog, def.Name, name)
			}
			t.Params[idx].ParamSpec = override.apply(t.Params[idx].ParamSpec)
		}

		if _, exists := next.types[t.Name]; !exists {
			next.order = append(next.order, t.Name)
		}
		next.types[t.Name] = t
	}
	return next, nil
}
