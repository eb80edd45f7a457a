package runtime

import (
	"errors"
	"fmt"

	"github.com/aretw0/optirail/pkg/catalog"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/optics"
)

// System is a composed rail: per-element transfers in rail order plus the
// single transfer equivalent to applying all of them in sequence.
type System struct {
	Elements    []Transfer
	TotalMatrix optics.Matrix
	TotalOffset optics.Offset
}

// Compose builds every element and folds them left to right:
//
//	total  = M_i · total
//	offset = M_i · offset + o_i
//
// An empty rail yields the identity with a zero offset.
func Compose(cat *catalog.Catalog, rail domain.Rail) (*System, error) {
	sys := &System{
		Elements:    make([]Transfer, 0, len(rail)),
		TotalMatrix: optics.Identity(),
	}

	for i, c := range rail {
		tr, err := Build(cat, c)
		if err != nil {
			return nil, elementError(i, c, err)
		}
		sys.Elements = append(sys.Elements, tr)
		sys.TotalMatrix = tr.Matrix.Mul(sys.TotalMatrix)
		sys.TotalOffset = tr.Matrix.Transform(sys.TotalOffset).Add(tr.Offset)
		if !sys.TotalMatrix.IsFinite() || !sys.TotalOffset.IsFinite() {
			return nil, &domain.TraceError{
				Index: i,
				Type:  c.Type,
				Err:   fmt.Errorf("%w: composed system overflows", domain.ErrDegenerateParameter),
			}
		}
	}

	return sys, nil
}

func elementError(index int, c domain.Component, err error) error {
	te := &domain.TraceError{Index: index, Type: c.Type, Err: err}
	var pe *domain.ParamError
	if errors.As(err, &pe) {
		te.Param = pe.Param
		te.Err = pe.Err
	}
	return te
}
