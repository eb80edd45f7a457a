package optirail

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/optirail/pkg/domain"
)

// Format selects how a Reporter writes a trace.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ContentRenderer transforms markdown before it is written.
// This allows terminal rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Reporter writes trace results for humans or machines.
type Reporter struct {
	Output   io.Writer
	Format   Format
	Renderer ContentRenderer
}

// NewReporter creates a Reporter writing format to w.
func NewReporter(w io.Writer, format Format) *Reporter {
	return &Reporter{Output: w, Format: format}
}

// Write reports a trace of req.
func (r *Reporter) Write(req domain.TraceRequest, res *domain.TraceResult) error {
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	switch r.Format {
	case FormatJSON:
		enc := json.NewEncoder(r.Output)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatMarkdown:
		md := MarkdownReport(req, res)
		if r.Renderer != nil {
			if rendered, err := r.Renderer(md); err == nil {
				md = rendered
			}
		}
		_, err := fmt.Fprintln(r.Output, strings.TrimSpace(md))
		return err
	case FormatText, "":
		_, err := io.WriteString(r.Output, TextReport(req, res))
		return err
	default:
		return fmt.Errorf("unknown report format %q", r.Format)
	}
}

// TextReport renders a plain-text summary.
func TextReport(req domain.TraceRequest, res *domain.TraceResult) string {
	var sb strings.Builder
	for i, el := range res.Elements {
		fmt.Fprintf(&sb, "%2d %-16s %-12s M=%s o=%s\n", i, el.Type, el.ID, el.Matrix, el.Offset)
	}
	fmt.Fprintf(&sb, "total M=%s o=%s\n", res.TotalMatrix, res.TotalOffset)
	for i, ray := range res.Rays {
		in := req.Rays[i]
		fmt.Fprintf(&sb, "ray %-10s (%g mm, %g mrad) -> (%g mm, %g mrad)\n",
			rayLabel(ray.Label, i), in.Height, in.Angle, ray.Final.Height, ray.Final.Angle)
	}
	return sb.String()
}

// MarkdownReport renders the trace as markdown tables.
func MarkdownReport(req domain.TraceRequest, res *domain.TraceResult) string {
	var sb strings.Builder
	sb.WriteString("# Trace\n\n")

	sb.WriteString("## Elements\n\n")
	sb.WriteString("| # | id | type | A | B | C | D | Δh | Δθ |\n")
	sb.WriteString("|---|----|------|---|---|---|---|----|----|\n")
	for i, el := range res.Elements {
		m := el.Matrix
		fmt.Fprintf(&sb, "| %d | %s | %s | %g | %g | %g | %g | %g | %g |\n",
			i, el.ID, el.Type, m.A, m.B, m.C, m.D, el.Offset.Height, el.Offset.Angle)
	}

	m := res.TotalMatrix
	sb.WriteString("\n## System\n\n")
	fmt.Fprintf(&sb, "- matrix: `[[%g, %g], [%g, %g]]`\n", m.A, m.B, m.C, m.D)
	fmt.Fprintf(&sb, "- offset: `[%g, %g]`\n", res.TotalOffset.Height, res.TotalOffset.Angle)
	fmt.Fprintf(&sb, "- determinant: `%g`\n", m.Determinant())

	if len(res.Rays) > 0 {
		sb.WriteString("\n## Rays\n\n")
		sb.WriteString("| ray | height in (mm) | angle in (mrad) | height out (mm) | angle out (mrad) |\n")
		sb.WriteString("|-----|----------------|-----------------|-----------------|------------------|\n")
		for i, ray := range res.Rays {
			in := req.Rays[i]
			fmt.Fprintf(&sb, "| %s | %g | %g | %g | %g |\n",
				rayLabel(ray.Label, i), in.Height, in.Angle, ray.Final.Height, ray.Final.Angle)
		}
	}
	return sb.String()
}

func rayLabel(label string, i int) string {
	if label == "" {
		return fmt.Sprintf("#%d", i)
	}
	return label
}
