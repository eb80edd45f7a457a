package diagram

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/optirail/pkg/catalog"
	"github.com/aretw0/optirail/pkg/domain"
)

// Overlay carries trace state to highlight on the diagram.
type Overlay struct {
	// Failed is the index of the element that rejected the trace, or -1.
	Failed int
}

// GenerateMermaid produces a left-to-right Mermaid flowchart of a rail.
// Shapes follow the element family:
// - Source/Image: ((Circle))
// - Lenses: ([Stadium])
// - Mirrors: {{Hexagon}}
// - Prism/Grating: [/Parallelogram/]
// - Default: [Rectangle]
// Free space is drawn as a labelled edge rather than a node.
func GenerateMermaid(cat *catalog.Catalog, rail domain.Rail, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString("    src((\"rays\"))\n")

	prev := "src"
	pending := ""
	for i, c := range rail {
		kind := kindOf(cat, c.Type)
		if kind == "free_space" {
			pending = joinLabel(pending, "d="+formatParam(cat, c, "length"))
			continue
		}

		id := nodeID(i)
		opener, closer := shape(kind)
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, nodeLabel(cat, c), closer)
		writeEdge(&sb, prev, id, pending)
		prev, pending = id, ""
	}

	sb.WriteString("    img((\"image\"))\n")
	writeEdge(&sb, prev, "img", pending)

	if overlay != nil && overlay.Failed >= 0 && overlay.Failed < len(rail) {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#b71c1c,stroke-width:3px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s failed;\n", failedNode(cat, rail, overlay.Failed))
	}

	return sb.String()
}

func writeEdge(sb *strings.Builder, from, to, label string) {
	if label == "" {
		fmt.Fprintf(sb, "    %s --> %s\n", from, to)
		return
	}
	fmt.Fprintf(sb, "    %s -- \"%s\" --> %s\n", from, label, to)
}

// failedNode maps an element index to the node that represents it.
// A failing free-space segment is attributed to the next drawn node.
func failedNode(cat *catalog.Catalog, rail domain.Rail, idx int) string {
	for i := idx; i < len(rail); i++ {
		if kindOf(cat, rail[i].Type) != "free_space" {
			return nodeID(i)
		}
	}
	return "img"
}

// kindOf resolves derived types to the formula they share.
func kindOf(cat *catalog.Catalog, typ string) string {
	if cat == nil {
		return typ
	}
	ct, err := cat.Lookup(typ)
	if err != nil || ct.Base == "" {
		return typ
	}
	return ct.Base
}

func shape(kind string) (string, string) {
	switch kind {
	case "thin_lens":
		return "([", "])"
	case "mirror", "curved_mirror":
		return "{{", "}}"
	case "prism", "grating":
		return "[/", "/]"
	}
	return "[", "]"
}

func nodeID(i int) string {
	return "e" + strconv.Itoa(i)
}

func nodeLabel(cat *catalog.Catalog, c domain.Component) string {
	title := c.Type
	if c.ID != "" {
		title = sanitize(c.ID) + ": " + c.Type
	}

	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+formatParam(cat, c, name))
	}
	if len(parts) == 0 {
		return title
	}
	return title + " <br/> " + strings.Join(parts, ", ")
}

// formatParam prints the supplied value, falling back to the catalog default.
func formatParam(cat *catalog.Catalog, c domain.Component, name string) string {
	if v, ok := c.Params[name]; ok {
		return strconv.FormatFloat(v, 'g', 6, 64)
	}
	if cat == nil {
		return "?"
	}
	ct, err := cat.Lookup(c.Type)
	if err != nil {
		return "?"
	}
	if p, ok := ct.Param(name); ok {
		return strconv.FormatFloat(p.Default, 'g', 6, 64)
	}
	return "?"
}

func joinLabel(a, b string) string {
	if a == "" {
		return b
	}
	return a + " + " + b
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
