package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the optirail banner, shaded from amber to red like a
// beam through a prism.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`              _   _           _ _ `, "#fde047"},
		{`   ___  _ __ | |_(_)_ __ __ _(_) |`, "#facc15"},
		{`  / _ \| '_ \| __| | '__/ _' | | |`, "#fb923c"},
		{` | (_) | |_) | |_| | | | (_| | | |`, "#f97316"},
		{`  \___/| .__/ \__|_|_|  \__,_|_|_|`, "#ef4444"},
		{`       |_|                        `, "#dc2626"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
