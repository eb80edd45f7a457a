package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/optics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	// sin θd = 0 + 1·550e-6·600 = 0.33
	gratingK := math.Sqrt(1-0.33*0.33) / 1

	tests := []struct {
		name   string
		elem   Element
		matrix optics.Matrix
		offset optics.Offset
	}{
		{"Free Space", FreeSpace{Length: 100}, optics.Matrix{A: 1, B: 100, D: 1}, optics.Offset{}},
		{"Zero Length Free Space", FreeSpace{}, optics.Identity(), optics.Offset{}},
		{"Converging Lens", ThinLens{FocalLength: 50}, optics.Matrix{A: 1, C: -0.02, D: 1}, optics.Offset{}},
		{"Diverging Lens", ThinLens{FocalLength: -50}, optics.Matrix{A: 1, C: 0.02, D: 1}, optics.Offset{}},
		{"Decentered Lens", ThinLens{FocalLength: 50, Decenter: 2}, optics.Matrix{A: 1, C: -0.02, D: 1}, optics.Offset{Angle: 0.04}},
		{"Curved Mirror", CurvedMirror{RadiusOfCurvature: 100}, optics.Matrix{A: 1, C: -0.02, D: 1}, optics.Offset{}},
		{"Flat Mirror Flip", FlatMirror{FlipOrientation: 1}, optics.Matrix{A: 1, D: -1}, optics.Offset{}},
		{"Flat Mirror Zero Flips", FlatMirror{FlipOrientation: 0}, optics.Matrix{A: 1, D: -1}, optics.Offset{}},
		{"Flat Mirror No Flip", FlatMirror{FlipOrientation: -1}, optics.Identity(), optics.Offset{}},
		{"Prism Normal Incidence", Prism{AngleOffset: 2, RefractiveIndex: 1.5}, optics.Identity(), optics.Offset{Angle: 2}},
		{"Prism Decenter", Prism{AngleOffset: -1, RefractiveIndex: 1.5, Decenter: 0.5}, optics.Identity(), optics.Offset{Height: 0.5, Angle: -1}},
		{"Grating First Order", Grating{SpatialFrequency: 600, Order: 1, Wavelength: 550}, optics.Matrix{A: gratingK, D: 1 / gratingK}, optics.Offset{}},
		{"Grating Zero Order Tilted", Grating{SpatialFrequency: 600, Wavelength: 550, Tilt: 3}, optics.Identity(), optics.Offset{Angle: 3}},
		{"Slab", Slab{Length: 15, RefractiveIndex: 1.5}, optics.Matrix{A: 1, B: 10, D: 1}, optics.Offset{}},
		{"Flat Interface", FlatInterface{N1: 1, N2: 1.5}, optics.Matrix{A: 1, D: 1 / 1.5}, optics.Offset{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, o, err := tt.elem.Transfer()
			require.NoError(t, err)
			assert.True(t, m.Equal(tt.matrix, 1e-12), "matrix %s, want %s", m, tt.matrix)
			assert.True(t, o.Equal(tt.offset, 1e-12), "offset %s, want %s", o, tt.offset)
		})
	}
}

func TestTransfer_ObliquePrismExpands(t *testing.T) {
	m, _, err := Prism{IncidenceAngle: 500, RefractiveIndex: 1.5}.Transfer()
	require.NoError(t, err)

	sinR := math.Sin(0.5) / 1.5
	k := math.Sqrt(1-sinR*sinR) / math.Cos(0.5)
	assert.InDelta(t, k, m.A, 1e-12)
	assert.InDelta(t, 1/k, m.D, 1e-12)
	assert.InDelta(t, 1, m.Determinant(), 1e-12)
	assert.Greater(t, m.A, 1.0)
}

func TestTransfer_Degenerate(t *testing.T) {
	tests := []struct {
		name  string
		elem  Element
		param string
	}{
		{"Zero Focal Length", ThinLens{FocalLength: 0}, "focal_length"},
		{"Tiny Focal Length", ThinLens{FocalLength: 1e-12}, "focal_length"},
		{"Zero Radius", CurvedMirror{}, "radius_of_curvature"},
		{"Prism Zero Index", Prism{}, "refractive_index"},
		{"Prism Grazing", Prism{IncidenceAngle: math.Pi / 2 * 1000, RefractiveIndex: 1.5}, "incidence_angle"},
		{"Prism Index Below One", Prism{IncidenceAngle: 1000, RefractiveIndex: 0.5}, "refractive_index"},
		{"Grating Evanescent Order", Grating{SpatialFrequency: 2400, Order: 1, Wavelength: 550}, "spatial_frequency"},
		{"Grating Grazing Incidence", Grating{IncidenceAngle: math.Pi / 2 * 1000}, "incidence_angle"},
		{"Slab Zero Index", Slab{Length: 1}, "refractive_index"},
		{"Interface Zero Index", FlatInterface{N1: 1}, "n2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.elem.Transfer()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDegenerateParameter)

			var pe *domain.ParamError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.param, pe.Param)
		})
	}
}

func TestDecode(t *testing.T) {
	ct, err := Default().Lookup("thin_lens")
	require.NoError(t, err)

	el, err := ct.Decode(map[string]float64{"focal_length": 25, "decenter": 1})
	require.NoError(t, err)
	assert.Equal(t, ThinLens{FocalLength: 25, Decenter: 1}, el)
}
