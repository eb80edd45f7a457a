package domain

import "github.com/aretw0/optirail/pkg/optics"

// TraceRequest is the single RPC input: a rail and the rays to push through it.
type TraceRequest struct {
	Components Rail  `json:"components" yaml:"components"`
	Rays       []Ray `json:"rays" yaml:"rays"`
}

// ElementResult is one element's transfer, aligned by index with the rail.
type ElementResult struct {
	ID     string        `json:"id,omitempty"`
	Type   string        `json:"type"`
	Matrix optics.Matrix `json:"matrix"`
	Offset optics.Offset `json:"offset"`
}

// RayResult is a ray's final state and the states at every element boundary.
// Path[0] is the input state and Path[len(Path)-1] equals Final.
type RayResult struct {
	Label string         `json:"label,omitempty"`
	Final optics.State   `json:"final"`
	Path  []optics.State `json:"path"`
}

// TraceResult is derived entirely from a TraceRequest.
type TraceResult struct {
	Elements    []ElementResult `json:"elements"`
	TotalMatrix optics.Matrix   `json:"total_matrix"`
	TotalOffset optics.Offset   `json:"total_offset"`
	Rays        []RayResult     `json:"rays"`
}

// Limits bounds request size. Zero means unlimited.
type Limits struct {
	MaxComponents int `yaml:"max_components" json:"max_components"`
	MaxRays       int `yaml:"max_rays" json:"max_rays"`
}

// DefaultLimits guards against pathological input without constraining real rails.
var DefaultLimits = Limits{MaxComponents: 1024, MaxRays: 256}
