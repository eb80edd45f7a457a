package runtime

import (
	"fmt"
	"math"
	"sort"

	"github.com/aretw0/optirail/pkg/domain"
)

// Validate rejects oversized requests and non-finite numbers before any
// matrix arithmetic runs.
func Validate(req domain.TraceRequest, limits domain.Limits) error {
	if limits.MaxComponents > 0 && len(req.Components) > limits.MaxComponents {
		return &domain.TraceError{
			Index: -1,
			Field: "components",
			Err:   fmt.Errorf("%w: %d components exceeds limit of %d", domain.ErrRequestTooLarge, len(req.Components), limits.MaxComponents),
		}
	}
	if limits.MaxRays > 0 && len(req.Rays) > limits.MaxRays {
		return &domain.TraceError{
			Index: -1,
			Field: "rays",
			Err:   fmt.Errorf("%w: %d rays exceeds limit of %d", domain.ErrRequestTooLarge, len(req.Rays), limits.MaxRays),
		}
	}

	for i, c := range req.Components {
		// Sorted so the first reported parameter is stable across calls.
		names := make([]string, 0, len(c.Params))
		for name := range c.Params {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !isFinite(c.Params[name]) {
				return &domain.TraceError{
					Index: i,
					Type:  c.Type,
					Param: name,
					Field: fmt.Sprintf("components[%d].params.%s", i, name),
					Err:   fmt.Errorf("%w: %v", domain.ErrInvalidNumericInput, c.Params[name]),
				}
			}
		}
	}

	for i, r := range req.Rays {
		if !isFinite(r.Height) {
			return rayError(i, "height", r.Height)
		}
		if !isFinite(r.Angle) {
			return rayError(i, "angle", r.Angle)
		}
	}
	return nil
}

func rayError(index int, field string, v float64) error {
	return &domain.TraceError{
		Index: index,
		Field: fmt.Sprintf("rays[%d].%s", index, field),
		Err:   fmt.Errorf("%w: %v", domain.ErrInvalidNumericInput, v),
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
