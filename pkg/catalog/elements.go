package catalog

import (
	"fmt"
	"math"

	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/optics"
	"github.com/mitchellh/mapstructure"
)

// Angles are mrad, wavelengths nm, spatial frequencies lines/mm.
const (
	mradToRad = 1e-3
	nmToMM    = 1e-6
)

func degenerate(param, reason string) error {
	return &domain.ParamError{
		Param: param,
		Err:   fmt.Errorf("%w: %s", domain.ErrDegenerateParameter, reason),
	}
}

// decodeAs decodes resolved parameters into the record T via its mapstructure tags.
func decodeAs[T Element]() DecodeFunc {
	return func(params map[string]float64) (Element, error) {
		var rec T
		if err := mapstructure.Decode(params, &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidNumericInput, err)
		}
		return rec, nil
	}
}

// FreeSpace is propagation over Length mm.
type FreeSpace struct {
	Length float64 `mapstructure:"length"`
}

func (e FreeSpace) Transfer() (optics.Matrix, optics.Offset, error) {
	return optics.Matrix{A: 1, B: e.Length, C: 0, D: 1}, optics.Offset{}, nil
}

// ThinLens has a signed focal length: positive converges, negative diverges.
// A lens decentered by Decenter mm kicks every ray by Decenter/f.
type ThinLens struct {
	FocalLength float64 `mapstructure:"focal_length"`
	Decenter    float64 `mapstructure:"decenter"`
}

func (e ThinLens) Transfer() (optics.Matrix, optics.Offset, error) {
	if optics.IsZero(e.FocalLength) {
		return optics.Matrix{}, optics.Offset{}, degenerate("focal_length", "zero focal length has infinite power")
	}
	m := optics.Matrix{A: 1, B: 0, C: -1 / e.FocalLength, D: 1}
	return m, optics.Offset{Angle: e.Decenter / e.FocalLength}, nil
}

// CurvedMirror is an unfolded spherical mirror of power 2/R.
type CurvedMirror struct {
	RadiusOfCurvature float64 `mapstructure:"radius_of_curvature"`
}

func (e CurvedMirror) Transfer() (optics.Matrix, optics.Offset, error) {
	if optics.IsZero(e.RadiusOfCurvature) {
		return optics.Matrix{}, optics.Offset{}, degenerate("radius_of_curvature", "zero radius of curvature")
	}
	return optics.Matrix{A: 1, B: 0, C: -2 / e.RadiusOfCurvature, D: 1}, optics.Offset{}, nil
}

// FlatMirror folds the axis. A non-negative FlipOrientation inverts the ray
// angle; a negative one leaves it unchanged (identity).
type FlatMirror struct {
	FlipOrientation float64 `mapstructure:"flip_orientation"`
}

func (e FlatMirror) Transfer() (optics.Matrix, optics.Offset, error) {
	sign := 1.0
	if e.FlipOrientation < 0 {
		sign = -1
	}
	return optics.Matrix{A: 1, B: 0, C: 0, D: -sign}, optics.Offset{}, nil
}

// Prism deviates the axis by AngleOffset mrad and, at oblique incidence,
// expands the beam by k = cos θr / cos θi with sin θr = sin θi / n.
type Prism struct {
	AngleOffset     float64 `mapstructure:"angle_offset"`
	IncidenceAngle  float64 `mapstructure:"incidence_angle"`
	RefractiveIndex float64 `mapstructure:"refractive_index"`
	Decenter        float64 `mapstructure:"decenter"`
}

func (e Prism) Transfer() (optics.Matrix, optics.Offset, error) {
	if optics.IsZero(e.RefractiveIndex) {
		return optics.Matrix{}, optics.Offset{}, degenerate("refractive_index", "zero refractive index")
	}
	thetaI := e.IncidenceAngle * mradToRad
	cosI := math.Cos(thetaI)
	if optics.IsZero(cosI) {
		return optics.Matrix{}, optics.Offset{}, degenerate("incidence_angle", "grazing incidence")
	}
	sinR := math.Sin(thetaI) / e.RefractiveIndex
	if math.Abs(sinR) > 1 {
		return optics.Matrix{}, optics.Offset{}, degenerate("refractive_index", "total internal reflection")
	}
	cosR := math.Sqrt(1 - sinR*sinR)
	if optics.IsZero(cosR) {
		return optics.Matrix{}, optics.Offset{}, degenerate("refractive_index", "grazing refraction")
	}
	return expansion(cosR / cosI), optics.Offset{Height: e.Decenter, Angle: e.AngleOffset}, nil
}

// Grating follows the grating equation sin θd = sin θi + m·λ·G along the
// diffracted order; the beam width scales by k = cos θd / cos θi. Tilt (mrad)
// is an explicit angular kick of the whole element.
type Grating struct {
	SpatialFrequency float64 `mapstructure:"spatial_frequency"`
	Order            float64 `mapstructure:"order"`
	Wavelength       float64 `mapstructure:"wavelength"`
	IncidenceAngle   float64 `mapstructure:"incidence_angle"`
	Tilt             float64 `mapstructure:"tilt"`
}

func (e Grating) Transfer() (optics.Matrix, optics.Offset, error) {
	thetaI := e.IncidenceAngle * mradToRad
	cosI := math.Cos(thetaI)
	if optics.IsZero(cosI) {
		return optics.Matrix{}, optics.Offset{}, degenerate("incidence_angle", "grazing incidence")
	}
	sinD := math.Sin(thetaI) + e.Order*e.Wavelength*nmToMM*e.SpatialFrequency
	if math.Abs(sinD) > 1 {
		return optics.Matrix{}, optics.Offset{}, degenerate("spatial_frequency", "diffraction order does not propagate")
	}
	cosD := math.Sqrt(1 - sinD*sinD)
	if optics.IsZero(cosD) {
		return optics.Matrix{}, optics.Offset{}, degenerate("spatial_frequency", "grazing diffraction")
	}
	return expansion(cosD / cosI), optics.Offset{Angle: e.Tilt}, nil
}

// Slab is a block of homogeneous medium of thickness Length and index n,
// equivalent to free space of reduced length L/n.
type Slab struct {
	Length          float64 `mapstructure:"length"`
	RefractiveIndex float64 `mapstructure:"refractive_index"`
}

func (e Slab) Transfer() (optics.Matrix, optics.Offset, error) {
	if optics.IsZero(e.RefractiveIndex) {
		return optics.Matrix{}, optics.Offset{}, degenerate("refractive_index", "zero refractive index")
	}
	return optics.Matrix{A: 1, B: e.Length / e.RefractiveIndex, C: 0, D: 1}, optics.Offset{}, nil
}

// FlatInterface refracts from index N1 into index N2.
type FlatInterface struct {
	N1 float64 `mapstructure:"n1"`
	N2 float64 `mapstructure:"n2"`
}

func (e FlatInterface) Transfer() (optics.Matrix, optics.Offset, error) {
	if optics.IsZero(e.N2) {
		return optics.Matrix{}, optics.Offset{}, degenerate("n2", "zero refractive index")
	}
	return optics.Matrix{A: 1, B: 0, C: 0, D: e.N1 / e.N2}, optics.Offset{}, nil
}

// expansion is the anamorphic magnification matrix diag(k, 1/k).
func expansion(k float64) optics.Matrix {
	return optics.Matrix{A: k, B: 0, C: 0, D: 1 / k}
}
