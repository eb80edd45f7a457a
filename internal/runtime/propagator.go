package runtime

import (
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/optics"
)

// Propagate pushes each ray through the elements in order, state = M_i·state + o_i,
// recording the state at every element boundary.
func Propagate(elements []Transfer, rays []domain.Ray) []domain.RayResult {
	out := make([]domain.RayResult, len(rays))
	for i, ray := range rays {
		state := optics.State{Height: ray.Height, Angle: ray.Angle}
		path := make([]optics.State, 0, len(elements)+1)
		path = append(path, state)
		for _, el := range elements {
			state = el.Matrix.Apply(state, el.Offset)
			path = append(path, state)
		}
		out[i] = domain.RayResult{
			Label: ray.Label,
			Final: state,
			Path:  path,
		}
	}
	return out
}

// Apply evaluates a composed system on a single input state.
func (s *System) Apply(in optics.State) optics.State {
	return s.TotalMatrix.Apply(in, s.TotalOffset)
}
