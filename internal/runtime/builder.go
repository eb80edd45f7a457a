package runtime

import (
	"fmt"
	"math"
	"sort"

	"github.com/aretw0/optirail/pkg/catalog"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/optics"
)

// Transfer is one element's affine map: out = Matrix · in + Offset.
type Transfer struct {
	Matrix optics.Matrix
	Offset optics.Offset
}

// Build resolves a component's parameters and evaluates its formula.
// The component is not modified.
func Build(cat *catalog.Catalog, c domain.Component) (Transfer, error) {
	t, err := cat.Lookup(c.Type)
	if err != nil {
		return Transfer{}, err
	}

	params, err := cat.ResolveParams(c.Type, c.Params)
	if err != nil {
		return Transfer{}, err
	}

	el, err := t.Decode(params)
	if err != nil {
		return Transfer{}, err
	}

	m, o, err := el.Transfer()
	if err != nil {
		return Transfer{}, err
	}

	// Finite inputs can still overflow, e.g. a huge decenter over a short focal length.
	if !m.IsFinite() || !o.IsFinite() {
		return Transfer{}, &domain.ParamError{
			Param: dominantParam(params),
			Err:   fmt.Errorf("%w: %s produced a non-finite transfer", domain.ErrDegenerateParameter, c.Type),
		}
	}

	return Transfer{Matrix: m, Offset: o}, nil
}

// dominantParam names the parameter of largest magnitude, the one an overflow
// is attributed to. Ties go to the first name in lexical order.
func dominantParam(params map[string]float64) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	best, bestAbs := "", -1.0
	for _, name := range names {
		if v := math.Abs(params[name]); v > bestAbs {
			best, bestAbs = name, v
		}
	}
	return best
}
