package report

import (
	"fmt"
	"io"

	"github.com/varalys/pushguard/internal/hygiene"
)

// PrintHygiene prints a warning and its guidance for every check that did
// not pass. Passing checks print nothing.
func PrintHygiene(w io.Writer, rep hygiene.Report, noColor bool) {
	p := newPalette(w, noColor)
	for _, c := range rep.Failed() {
		fmt.Fprintf(w, "\n%s\n", p.warn("⚠️  "+c.Message))
		for _, g := range c.Guidance {
			fmt.Fprintf(w, "   %s\n", g)
		}
	}
}
