package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/optirail/pkg/domain"
	"gopkg.in/yaml.v3"
)

// railFile is the on-disk shape of a rail: YAML, or JSON as a YAML subset.
type railFile struct {
	Components domain.Rail  `yaml:"components"`
	Rays       []domain.Ray `yaml:"rays"`
}

// DecodeRail parses a rail document.
func DecodeRail(r io.Reader) (domain.TraceRequest, error) {
	var f railFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return domain.TraceRequest{}, fmt.Errorf("%w: %v", domain.ErrInvalidNumericInput, err)
	}
	return domain.TraceRequest{Components: f.Components, Rays: f.Rays}, nil
}

// LoadRail reads a rail file; "-" reads stdin.
func LoadRail(path string) (domain.TraceRequest, error) {
	if path == "-" {
		return DecodeRail(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.TraceRequest{}, fmt.Errorf("failed to open rail: %w", err)
	}
	defer f.Close()
	return DecodeRail(f)
}
