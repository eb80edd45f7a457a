package catalog

import "math"

var unset = math.NaN()

// Built-in kinds. Every parameter a Transfer formula reads is declared here.
func builtinTypes() []ComponentType {
	return []ComponentType{
		{
			Name:        "free_space",
			Label:       "Free Space",
			Description: "Propagation through free space by a distance L (mm).",
			Params: []Param{
				param("length", 100, 0, unset, 1),
			},
			decode: decodeAs[FreeSpace](),
		},
		{
			Name:        "thin_lens",
			Label:       "Thin Lens",
			Description: "Thin lens with signed focal length f (mm); positive converges, negative diverges.",
			Params: []Param{
				param("focal_length", 50, unset, unset, 1),
				param("decenter", 0, -25, 25, 0.1),
			},
			decode: decodeAs[ThinLens](),
		},
		{
			Name:        "positive_lens",
			Label:       "Positive Lens",
			Description: "Thin lens with positive focal length f.",
			Base:        "thin_lens",
			Params: []Param{
				param("focal_length", 50, 1, unset, 1),
				param("decenter", 0, -25, 25, 0.1),
			},
			decode: decodeAs[ThinLens](),
		},
		{
			Name:        "negative_lens",
			Label:       "Negative Lens",
			Description: "Thin lens with negative focal length f.",
			Base:        "thin_lens",
			Params: []Param{
				param("focal_length", -50, -500, -1, 1),
				param("decenter", 0, -25, 25, 0.1),
			},
			decode: decodeAs[ThinLens](),
		},
		{
			Name:        "curved_mirror",
			Label:       "Curved Mirror",
			Description: "Spherical mirror of radius R (mm), unfolded; power 2/R.",
			Params: []Param{
				param("radius_of_curvature", 100, unset, unset, 1),
			},
			decode: decodeAs[CurvedMirror](),
		},
		{
			Name:        "mirror",
			Label:       "Mirror",
			Description: "Planar mirror reflecting the ray angle.",
			Params: []Param{
				param("flip_orientation", 1, -1, 1, 2),
			},
			decode: decodeAs[FlatMirror](),
		},
		{
			Name:        "prism",
			Label:       "Prism",
			Description: "Prism introducing an angular deviation (mrad); oblique incidence expands the beam.",
			Params: []Param{
				param("angle_offset", 2, -30, 30, 0.1),
				param("incidence_angle", 0, -1500, 1500, 1),
				param("refractive_index", 1.5, 1, 4, 0.01),
				param("decenter", 0, -25, 25, 0.1),
			},
			decode: decodeAs[Prism](),
		},
		{
			Name:        "grating",
			Label:       "Diffraction Grating",
			Description: "Grating described by spatial frequency (lines/mm) and diffraction order.",
			Params: []Param{
				param("spatial_frequency", 600, 50, 2400, 10),
				param("order", 1, -3, 3, 1),
				param("wavelength", 550, 200, 2000, 1),
				param("incidence_angle", 0, -1500, 1500, 1),
				param("tilt", 0, -30, 30, 0.1),
			},
			decode: decodeAs[Grating](),
		},
		{
			Name:        "slab",
			Label:       "Dielectric Slab",
			Description: "Block of thickness L (mm) and refractive index n.",
			Params: []Param{
				param("length", 10, 0, unset, 1),
				param("refractive_index", 1.5, 1, 4, 0.01),
			},
			decode: decodeAs[Slab](),
		},
		{
			Name:        "flat_interface",
			Label:       "Flat Interface",
			Description: "Planar boundary from index n1 into index n2.",
			Params: []Param{
				param("n1", 1, 1, 4, 0.01),
				param("n2", 1.5, 1, 4, 0.01),
			},
			decode: decodeAs[FlatInterface](),
		},
	}
}
