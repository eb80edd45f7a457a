package domain

// Component is one element instance on the rail.
// ID is an opaque caller token; the engine only preserves it in output order.
type Component struct {
	ID     string             `json:"id" yaml:"id" mapstructure:"id"`
	Type   string             `json:"type" yaml:"type" mapstructure:"type"`
	Params map[string]float64 `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`
}

// Rail is the ordered sequence of components, first element met first.
type Rail []Component

// Clone returns a deep copy of the rail.
func (r Rail) Clone() Rail {
	if r == nil {
		return nil
	}
	out := make(Rail, len(r))
	for i, c := range r {
		out[i] = c
		if c.Params != nil {
			out[i].Params = make(map[string]float64, len(c.Params))
			for k, v := range c.Params {
				out[i].Params[k] = v
			}
		}
	}
	return out
}

// Ray is a reference ray at the input plane (height in mm, angle in mrad).
type Ray struct {
	Label  string  `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`
	Angle  float64 `json:"angle" yaml:"angle" mapstructure:"angle"`
}
