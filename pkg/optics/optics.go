package optics

import (
	"encoding/json"
	"fmt"
	"math"
)

// Epsilon is the magnitude below which a denominator is treated as exactly zero.
const Epsilon = 1e-9

// Matrix is a 2x2 ray-transfer matrix [[A, B], [C, D]].
type Matrix struct {
	A, B, C, D float64
}

// Offset is the affine term (Δheight, Δangle) added after the linear transform.
type Offset struct {
	Height, Angle float64
}

// State is a ray's (height, angle) at a reference plane.
type State struct {
	Height float64 `json:"height" yaml:"height"`
	Angle  float64 `json:"angle" yaml:"angle"`
}

// Identity returns the 2x2 identity matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Mul returns m · n.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
	}
}

// Transform returns m · o, carrying an accumulated offset through the matrix.
func (m Matrix) Transform(o Offset) Offset {
	return Offset{
		Height: m.A*o.Height + m.B*o.Angle,
		Angle:  m.C*o.Height + m.D*o.Angle,
	}
}

// Apply returns m · s + o.
func (m Matrix) Apply(s State, o Offset) State {
	return State{
		Height: m.A*s.Height + m.B*s.Angle + o.Height,
		Angle:  m.C*s.Height + m.D*s.Angle + o.Angle,
	}
}

// Determinant returns AD - BC. It is n1/n2 for an element between media.
func (m Matrix) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// IsFinite reports whether every entry is a finite number.
func (m Matrix) IsFinite() bool {
	return finite(m.A) && finite(m.B) && finite(m.C) && finite(m.D)
}

// Equal compares entries within eps.
func (m Matrix) Equal(n Matrix, eps float64) bool {
	return near(m.A, n.A, eps) && near(m.B, n.B, eps) && near(m.C, n.C, eps) && near(m.D, n.D, eps)
}

// Rows returns [[A, B], [C, D]].
func (m Matrix) Rows() [2][2]float64 {
	return [2][2]float64{{m.A, m.B}, {m.C, m.D}}
}

func (m Matrix) String() string {
	return fmt.Sprintf("[[%g, %g], [%g, %g]]", m.A, m.B, m.C, m.D)
}

// MarshalJSON encodes the matrix as [[A, B], [C, D]].
func (m Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Rows())
}

// UnmarshalJSON decodes [[A, B], [C, D]].
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var rows [2][2]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("optics: matrix must be [[a,b],[c,d]]: %w", err)
	}
	*m = Matrix{A: rows[0][0], B: rows[0][1], C: rows[1][0], D: rows[1][1]}
	return nil
}

// Add returns the component-wise sum.
func (o Offset) Add(p Offset) Offset {
	return Offset{Height: o.Height + p.Height, Angle: o.Angle + p.Angle}
}

// IsZero reports whether both terms are exactly zero.
func (o Offset) IsZero() bool {
	return o.Height == 0 && o.Angle == 0
}

// IsFinite reports whether both terms are finite.
func (o Offset) IsFinite() bool {
	return finite(o.Height) && finite(o.Angle)
}

// Equal compares terms within eps.
func (o Offset) Equal(p Offset, eps float64) bool {
	return near(o.Height, p.Height, eps) && near(o.Angle, p.Angle, eps)
}

func (o Offset) String() string {
	return fmt.Sprintf("[%g, %g]", o.Height, o.Angle)
}

// MarshalJSON encodes the offset as [dh, dtheta].
func (o Offset) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{o.Height, o.Angle})
}

// UnmarshalJSON decodes [dh, dtheta].
func (o *Offset) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("optics: offset must be [dh,dtheta]: %w", err)
	}
	*o = Offset{Height: pair[0], Angle: pair[1]}
	return nil
}

// Equal compares height and angle within eps.
func (s State) Equal(t State, eps float64) bool {
	return near(s.Height, t.Height, eps) && near(s.Angle, t.Angle, eps)
}

// IsZero reports whether a denominator is too small to divide by.
func IsZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// near uses an absolute tolerance scaled up for large magnitudes.
func near(a, b, eps float64) bool {
	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= eps*scale
}
