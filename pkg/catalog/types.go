package catalog

import (
	"math"

	"github.com/aretw0/optirail/pkg/optics"
)

// ParamSpec describes one parameter of a component type.
type ParamSpec struct {
	Default float64  `json:"default" yaml:"default"`
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step    *float64 `json:"step,omitempty" yaml:"step,omitempty"`
}

// Param is a named ParamSpec. Schemas are ordered so editors render them stably.
type Param struct {
	Name string `json:"name" yaml:"name"`
	ParamSpec
}

// Element is the strongly typed parameter record of one component kind.
type Element interface {
	// Transfer returns the element's matrix and offset.
	// Degenerate parameters are reported as *domain.ParamError.
	Transfer() (optics.Matrix, optics.Offset, error)
}

// DecodeFunc builds the typed record of a kind from resolved parameters.
type DecodeFunc func(params map[string]float64) (Element, error)

// ComponentType is an immutable catalog entry.
type ComponentType struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Base        string  `json:"base,omitempty"` // kind whose formula this type uses
	Params      []Param `json:"parameters"`

	decode DecodeFunc
}

// Param returns the spec of a named parameter.
func (t ComponentType) Param(name string) (ParamSpec, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p.ParamSpec, true
		}
	}
	return ParamSpec{}, false
}

// Defaults returns the default value of every parameter.
func (t ComponentType) Defaults() map[string]float64 {
	out := make(map[string]float64, len(t.Params))
	for _, p := range t.Params {
		out[p.Name] = p.Default
	}
	return out
}

// Decode builds the typed element from already resolved parameters.
func (t ComponentType) Decode(params map[string]float64) (Element, error) {
	return t.decode(params)
}

func ptr(v float64) *float64 {
	return &v
}

func param(name string, def float64, bounds ...float64) Param {
	p := Param{Name: name, ParamSpec: ParamSpec{Default: def}}
	// bounds: min, max, step; NaN leaves a slot unset
	set := []**float64{&p.Min, &p.Max, &p.Step}
	for i, b := range bounds {
		if i >= len(set) {
			break
		}
		if !math.IsNaN(b) {
			*set[i] = ptr(b)
		}
	}
	return p
}
