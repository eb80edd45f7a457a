/*
Package optirail is a paraxial optics engine: it models light travelling through an
ordered rail of optical elements with ABCD (ray-transfer) matrices.

For a rail of components and a set of reference rays, a trace reports each
element's matrix and offset, the accumulated system matrix and offset, and the
height/angle of every ray after each element.

# Concept

Every element acts on a ray state [height, angle] (mm, mrad) as an affine map
out = M·in + o. Free space and centered lenses are linear (o = 0); decentered or
tilted elements add a constant kick. The engine composes the rail left to right,

	total  = M_i · total
	offset = M_i · offset + o_i

so applying the system transfer once equals applying every element in turn.

The engine is stateless: each call derives everything from its inputs. The
component library (catalog) is the only configuration, passed in explicitly.

# Usage

	eng, err := optirail.New()
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Trace(ctx, domain.TraceRequest{
		Components: domain.Rail{
			{ID: "d1", Type: "free_space", Params: map[string]float64{"length": 100}},
			{ID: "l1", Type: "thin_lens", Params: map[string]float64{"focal_length": 50}},
		},
		Rays: []domain.Ray{{Label: "marginal", Height: 1, Angle: 0}},
	})
	if err != nil {
		log.Fatal(err) // errors.Is(err, domain.ErrDegenerateParameter), ...
	}
	fmt.Println(res.TotalMatrix, res.Rays[0].Final)

Adapters expose the same call over HTTP (pkg/adapters/http), MCP
(pkg/adapters/mcp) and the optirail command.
*/
package optirail
