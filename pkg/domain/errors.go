package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownComponentType is returned when a rail references a type absent from the catalog.
	ErrUnknownComponentType = errors.New("unknown component type")

	// ErrDegenerateParameter is returned when a parameter makes an element's formula undefined.
	ErrDegenerateParameter = errors.New("degenerate parameter")

	// ErrInvalidNumericInput is returned for non-finite or malformed numeric input.
	ErrInvalidNumericInput = errors.New("invalid numeric input")

	// ErrRequestTooLarge is returned when a request exceeds the configured limits.
	ErrRequestTooLarge = errors.New("request too large")

	// ErrWorkspaceNotFound is returned when a workspace name cannot be found in the store.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrInvalidCatalog is returned when a catalog definition is inconsistent.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// ParamError ties a failure to a single element parameter.
type ParamError struct {
	Param string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %q: %v", e.Param, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// TraceError is a request-level failure located in the input.
// Index is the rail (or ray) position, -1 when the failure is not positional.
type TraceError struct {
	Index int
	Type  string // component type, when the failure is on a rail element
	Param string // offending parameter, when known
	Field string // JSON-style path of the offending input field
	Err   error
}

func (e *TraceError) Error() string {
	var sb strings.Builder
	switch {
	case e.Field != "":
		sb.WriteString(e.Field)
	case e.Index >= 0:
		fmt.Fprintf(&sb, "components[%d]", e.Index)
	default:
		sb.WriteString("request")
	}
	if e.Type != "" {
		fmt.Fprintf(&sb, " (%s)", e.Type)
	}
	if e.Param != "" {
		fmt.Fprintf(&sb, " param %q", e.Param)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *TraceError) Unwrap() error {
	return e.Err
}

// Code returns a stable snake_case identifier for the error kind.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrUnknownComponentType):
		return "unknown_component_type"
	case errors.Is(err, ErrDegenerateParameter):
		return "degenerate_parameter"
	case errors.Is(err, ErrInvalidNumericInput):
		return "invalid_numeric_input"
	case errors.Is(err, ErrRequestTooLarge):
		return "request_too_large"
	case errors.Is(err, ErrWorkspaceNotFound):
		return "workspace_not_found"
	case errors.Is(err, ErrInvalidCatalog):
		return "invalid_catalog"
	default:
		return "internal"
	}
}
