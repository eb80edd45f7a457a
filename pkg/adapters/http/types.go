package http

import (
	"time"

	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/optics"
)

// TraceRequest is the JSON body of POST /trace and PUT /workspaces/{name}.
type TraceRequest struct {
	Components []Component `json:"components"`
	Rays       []Ray       `json:"rays"`
}

// Component is one rail entry on the wire.
type Component struct {
	ID     string             `json:"id,omitempty"`
	Type   string             `json:"type"`
	Params map[string]float64 `json:"params,omitempty"`
}

// Ray is an input ray on the wire (mm, mrad).
type Ray struct {
	Label  string  `json:"label,omitempty"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"`
}

// PropagatedRay is a ray's final state plus its path across the rail.
type PropagatedRay struct {
	Label  string         `json:"label,omitempty"`
	Height float64        `json:"height"`
	Angle  float64        `json:"angle"`
	Path   []optics.State `json:"path"`
}

// TraceResponse keeps the flat matrices/offsets lists editors index by rail position.
type TraceResponse struct {
	Matrices       []optics.Matrix        `json:"matrices"`
	Offsets        []optics.Offset        `json:"offsets"`
	Elements       []domain.ElementResult `json:"elements"`
	TotalMatrix    optics.Matrix          `json:"total_matrix"`
	TotalOffset    optics.Offset          `json:"total_offset"`
	PropagatedRays []PropagatedRay        `json:"propagated_rays"`
}

// Workspace is a saved rail on the wire.
type Workspace struct {
	Name       string      `json:"name"`
	Components []Component `json:"components"`
	Rays       []Ray       `json:"rays"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// ErrorBody is the payload of every non-2xx response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail locates a request-level failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Index   *int   `json:"index,omitempty"`
	Type    string `json:"type,omitempty"`
	Param   string `json:"param,omitempty"`
	Field   string `json:"field,omitempty"`
}

// -- Mapping --

func ptr[T any](v T) *T {
	return &v
}

func mapRequestToDomain(r TraceRequest) domain.TraceRequest {
	req := domain.TraceRequest{
		Components: make(domain.Rail, len(r.Components)),
		Rays:       make([]domain.Ray, len(r.Rays)),
	}
	for i, c := range r.Components {
		req.Components[i] = domain.Component{ID: c.ID, Type: c.Type, Params: c.Params}
	}
	for i, ray := range r.Rays {
		req.Rays[i] = domain.Ray{Label: ray.Label, Height: ray.Height, Angle: ray.Angle}
	}
	return req
}

func mapRequestFromDomain(req domain.TraceRequest) TraceRequest {
	r := TraceRequest{
		Components: make([]Component, len(req.Components)),
		Rays:       make([]Ray, len(req.Rays)),
	}
	for i, c := range req.Components {
		r.Components[i] = Component{ID: c.ID, Type: c.Type, Params: c.Params}
	}
	for i, ray := range req.Rays {
		r.Rays[i] = Ray{Label: ray.Label, Height: ray.Height, Angle: ray.Angle}
	}
	return r
}

func mapResultFromDomain(res *domain.TraceResult) TraceResponse {
	resp := TraceResponse{
		Matrices:       make([]optics.Matrix, len(res.Elements)),
		Offsets:        make([]optics.Offset, len(res.Elements)),
		Elements:       res.Elements,
		TotalMatrix:    res.TotalMatrix,
		TotalOffset:    res.TotalOffset,
		PropagatedRays: make([]PropagatedRay, len(res.Rays)),
	}
	if resp.Elements == nil {
		resp.Elements = []domain.ElementResult{}
	}
	for i, el := range res.Elements {
		resp.Matrices[i] = el.Matrix
		resp.Offsets[i] = el.Offset
	}
	for i, ray := range res.Rays {
		resp.PropagatedRays[i] = PropagatedRay{
			Label:  ray.Label,
			Height: ray.Final.Height,
			Angle:  ray.Final.Angle,
			Path:   ray.Path,
		}
	}
	return resp
}

func mapWorkspaceFromDomain(ws *domain.Workspace) Workspace {
	r := mapRequestFromDomain(ws.Request())
	return Workspace{
		Name:       ws.Name,
		Components: r.Components,
		Rays:       r.Rays,
		UpdatedAt:  ws.UpdatedAt,
	}
}
