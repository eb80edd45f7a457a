package diagram_test

import (
	"strings"
	"testing"

	"github.com/aretw0/optirail/internal/presentation/diagram"
	"github.com/aretw0/optirail/pkg/catalog"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name     string
		rail     domain.Rail
		overlay  *diagram.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Empty Rail",
			rail: nil,
			contains: []string{
				"graph LR",
				"src --> img",
			},
		},
		{
			name: "Free Space As Edge",
			rail: domain.Rail{
				{Type: "free_space", Params: map[string]float64{"length": 100}},
				{ID: "L1", Type: "thin_lens", Params: map[string]float64{"focal_length": 50}},
				{Type: "free_space"},
			},
			contains: []string{
				"e1([\"L1: thin_lens <br/> focal_length=50\"])",
				"src -- \"d=100\" --> e1",
				"e1 -- \"d=100\" --> img",
			},
			excludes: []string{"e0", "e2"},
		},
		{
			name: "Consecutive Free Space Joined",
			rail: domain.Rail{
				{Type: "free_space", Params: map[string]float64{"length": 10}},
				{Type: "free_space", Params: map[string]float64{"length": 20}},
			},
			contains: []string{"src -- \"d=10 + d=20\" --> img"},
		},
		{
			name: "Shapes By Family",
			rail: domain.Rail{
				{Type: "negative_lens"},
				{Type: "mirror"},
				{Type: "grating"},
				{Type: "slab"},
			},
			contains: []string{
				"e0([\"negative_lens\"])",
				"e1{{\"mirror\"}}",
				"e2[/\"grating\"/]",
				"e3[\"slab\"]",
				"e0 --> e1",
				"e3 --> img",
			},
		},
		{
			name: "Failed Overlay",
			rail: domain.Rail{
				{Type: "thin_lens"},
				{Type: "free_space"},
				{Type: "thin_lens", Params: map[string]float64{"focal_length": 0}},
			},
			overlay:  &diagram.Overlay{Failed: 2},
			contains: []string{"classDef failed", "class e2 failed;"},
		},
		{
			name:     "Failed Free Space Attributed Forward",
			rail:     domain.Rail{{Type: "free_space"}},
			overlay:  &diagram.Overlay{Failed: 0},
			contains: []string{"class img failed;"},
		},
		{
			name:     "No Overlay Without Failure",
			rail:     domain.Rail{{Type: "thin_lens"}},
			overlay:  &diagram.Overlay{Failed: -1},
			excludes: []string{"classDef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diagram.GenerateMermaid(cat, tt.rail, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.excludes {
				assert.False(t, strings.Contains(got, bad), "unexpected %q in:\n%s", bad, got)
			}
		})
	}
}

func TestGenerateMermaid_NilCatalog(t *testing.T) {
	got := diagram.GenerateMermaid(nil, domain.Rail{{Type: "free_space"}}, nil)
	assert.Contains(t, got, "src -- \"d=?\" --> img")
}
