package optirail_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/optirail"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceFixture(t *testing.T) (domain.TraceRequest, *domain.TraceResult) {
	t.Helper()
	eng, err := optirail.New()
	require.NoError(t, err)

	req := domain.TraceRequest{
		Components: domain.Rail{{ID: "d1", Type: "free_space", Params: map[string]float64{"length": 100}}},
		Rays:       []domain.Ray{{Label: "axial", Height: 0, Angle: 10}, {Height: 1}},
	}
	res, err := eng.Trace(context.Background(), req)
	require.NoError(t, err)
	return req, res
}

func TestReporter_Text(t *testing.T) {
	req, res := traceFixture(t)

	var buf bytes.Buffer
	require.NoError(t, optirail.NewReporter(&buf, optirail.FormatText).Write(req, res))

	out := buf.String()
	assert.Contains(t, out, "free_space")
	assert.Contains(t, out, "total M=[[1, 100], [0, 1]] o=[0, 0]")
	assert.Contains(t, out, "ray axial")
	assert.Contains(t, out, "(0 mm, 10 mrad) -> (1000 mm, 10 mrad)")
	assert.Contains(t, out, "ray #1")
}

func TestReporter_Markdown(t *testing.T) {
	req, res := traceFixture(t)

	var buf bytes.Buffer
	r := optirail.NewReporter(&buf, optirail.FormatMarkdown)
	require.NoError(t, r.Write(req, res))

	out := buf.String()
	assert.Contains(t, out, "## Elements")
	assert.Contains(t, out, "| 0 | d1 | free_space | 1 | 100 | 0 | 1 | 0 | 0 |")
	assert.Contains(t, out, "- determinant: `1`")
	assert.Contains(t, out, "| axial | 0 | 10 | 1000 | 10 |")
}

func TestReporter_Renderer(t *testing.T) {
	req, res := traceFixture(t)

	var buf bytes.Buffer
	r := optirail.NewReporter(&buf, optirail.FormatMarkdown)
	r.Renderer = func(md string) (string, error) { return strings.ToUpper(md), nil }
	require.NoError(t, r.Write(req, res))
	assert.Contains(t, buf.String(), "## ELEMENTS")
}

func TestReporter_JSON(t *testing.T) {
	req, res := traceFixture(t)

	var buf bytes.Buffer
	require.NoError(t, optirail.NewReporter(&buf, optirail.FormatJSON).Write(req, res))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []any{[]any{1.0, 100.0}, []any{0.0, 1.0}}, decoded["total_matrix"])
}

func TestReporter_Errors(t *testing.T) {
	req, res := traceFixture(t)

	assert.Error(t, (&optirail.Reporter{Format: optirail.FormatText}).Write(req, res))
	assert.Error(t, optirail.NewReporter(&bytes.Buffer{}, "html").Write(req, res))
}
