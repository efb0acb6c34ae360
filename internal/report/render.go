package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/varalys/pushguard/internal/types"
)

var rule = strings.Repeat("=", 70)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
}

// Group is the findings of one secret kind, in aggregation order.
type Group struct {
	Kind     string
	Findings []types.Finding
}

// GroupByKind groups findings by kind. Groups appear in the order their kind
// was first seen; no finding is dropped.
func GroupByKind(findings []types.Finding) []Group {
	var groups []Group
	pos := map[string]int{}
	for _, f := range findings {
		i, ok := pos[f.Kind]
		if !ok {
			i = len(groups)
			pos[f.Kind] = i
			groups = append(groups, Group{Kind: f.Kind})
		}
		groups[i].Findings = append(groups[i].Findings, f)
	}
	return groups
}

type palette struct {
	ok, warn, bad, head func(string) string
}

func newPalette(w io.Writer, noColor bool) palette {
	if noColor {
		plain := func(s string) string { return s }
		return palette{ok: plain, warn: plain, bad: plain, head: plain}
	}
	r := lipgloss.NewRenderer(w)
	return palette{
		ok:   styled(r.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))),
		warn: styled(r.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))),
		bad:  styled(r.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))),
		head: styled(r.NewStyle().Bold(true)),
	}
}

func styled(st lipgloss.Style) func(string) string {
	return func(s string) string { return st.Render(s) }
}

// PrintText renders the human-readable report and reports whether the scan
// passed, i.e. produced no findings.
func PrintText(w io.Writer, res types.ScanResult, opts PrintOptions) bool {
	p := newPalette(w, opts.NoColor)
	if len(res.Findings) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, p.ok("✅ SUCCESS: No obvious secrets found!"))
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "\n%s\n", scannedLine(res.FilesScanned, opts.Duration))
		fmt.Fprintln(w, "\n"+p.warn("⚠️  Manual review is still recommended:"))
		fmt.Fprintln(w, "  - Check config files manually")
		fmt.Fprintln(w, "  - Review all .env files")
		fmt.Fprintln(w, "  - Verify no personal data included")
		fmt.Fprintln(w, "  - Use: git diff --cached")
		return true
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, p.warn(fmt.Sprintf("⚠️  SECURITY WARNING: Found %d potential secrets!", len(res.Findings))))
	fmt.Fprintln(w, rule)

	for _, g := range GroupByKind(res.Findings) {
		fmt.Fprintf(w, "\n%s\n", p.head(fmt.Sprintf("📛 %s (%d found):", g.Kind, len(g.Findings))))
		for _, f := range g.Findings {
			fmt.Fprintf(w, "   📁 %s:%d\n", f.Path, f.Line)
			fmt.Fprintf(w, "      → %s\n", f.Match)
			if f.Context != "" {
				fmt.Fprintf(w, "      Context: %s\n", f.Context)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, p.bad("❌ DO NOT COMMIT UNTIL THESE ARE RESOLVED!"))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\n%s\n", scannedLine(res.FilesScanned, opts.Duration))
	fmt.Fprintln(w, "\nRecommended actions:")
	fmt.Fprintln(w, "  1. Move secrets to .env files")
	fmt.Fprintln(w, "  2. Add .env to .gitignore")
	fmt.Fprintln(w, "  3. Create .env.example with placeholders")
	fmt.Fprintln(w, "  4. Read secrets from environment variables")
	fmt.Fprintln(w, "  5. Re-run pushguard after fixing")
	return false
}

func scannedLine(n int, d time.Duration) string {
	if d > 0 {
		return fmt.Sprintf("Scanned %d files in %.2fs.", n, d.Seconds())
	}
	return fmt.Sprintf("Scanned %d files.", n)
}

// PrintVerdict prints the closing line that combines scan and hygiene results.
func PrintVerdict(w io.Writer, passed bool, noColor bool) {
	p := newPalette(w, noColor)
	if passed {
		fmt.Fprintln(w, "\n"+p.ok("✅ Ready to publish (but always review manually!)"))
		return
	}
	fmt.Fprintln(w, "\n"+p.bad("❌ Fix issues before committing!"))
}
