package domain

import "time"

// Workspace is a named rail and ray set saved by a store.
// The engine never reads it; adapters load it and issue a normal trace.
type Workspace struct {
	Name       string    `json:"name"`
	Components Rail      `json:"components"`
	Rays       []Ray     `json:"rays"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Request converts the workspace into a trace request.
func (w *Workspace) Request() TraceRequest {
	return TraceRequest{
		Components: w.Components.Clone(),
		Rays:       append([]Ray(nil), w.Rays...),
	}
}

// Clone returns a deep copy so stores never share backing arrays with callers.
func (w *Workspace) Clone() *Workspace {
	c := *w
	c.Components = w.Components.Clone()
	c.Rays = append([]Ray(nil), w.Rays...)
	return &c
}
