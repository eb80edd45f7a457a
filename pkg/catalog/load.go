package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/optirail/pkg/domain"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a catalog extension file.
//
//	components:
//	  - name: achromat_100
//	    base: thin_lens
//	    label: Achromat f=100
//	    parameters:
//	      focal_length: {default: 100, min: 10}
type File struct {
	Components []Definition `yaml:"components"`
}

// Decode reads catalog definitions from YAML. Unknown keys are rejected.
func Decode(r io.Reader) ([]Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	return f.Components, nil
}

// Load extends the catalog with the definitions read from r.
func (c *Catalog) Load(r io.Reader) (*Catalog, error) {
	defs, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return c.Extend(defs...)
}

// LoadFile extends the catalog with the definitions in a YAML file.
func (c *Catalog) LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	next, err := c.Load(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return next, nil
}
