package pushguard

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/varalys/pushguard/internal/config"
	"github.com/varalys/pushguard/internal/detectors"
	"github.com/varalys/pushguard/internal/engine"
	"github.com/varalys/pushguard/internal/hygiene"
	"github.com/varalys/pushguard/internal/report"
	"github.com/varalys/pushguard/internal/types"
	"github.com/varalys/pushguard/pkg/log"
)

type scanOptions struct {
	include     string
	exclude     string
	enable      string
	disable     string
	maxChars    int
	sniffBinary bool
	skipHygiene bool
	baseline    string
}

func addScanFlags(cmd *cobra.Command, o *scanOptions) {
	f := cmd.Flags()
	f.StringVar(&o.include, "include", "", "comma-separated include globs")
	f.StringVar(&o.exclude, "exclude", "", "comma-separated exclude globs")
	f.StringVar(&o.enable, "enable", "", "only run these detectors (comma-separated IDs)")
	f.StringVar(&o.disable, "disable", "", "disable these detectors (comma-separated IDs)")
	f.IntVar(&o.maxChars, "max-chars", 0, "skip content matching above this many characters (0 = 1000000)")
	f.BoolVar(&o.sniffBinary, "sniff-binary", false, "skip files whose content looks binary")
	f.BoolVar(&o.skipHygiene, "skip-hygiene", false, "do not run repository hygiene checks")
	f.StringVar(&o.baseline, "baseline", "", "baseline file of accepted findings to hide (not applied unless set)")
}

func newScanCmd(g *globalOptions) *cobra.Command {
	o := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory for secrets and check repository hygiene",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, g, o)
		},
	}
	addScanFlags(cmd, o)
	return cmd
}

// resolved is the effective configuration after merging flags over files.
type resolved struct {
	root        string
	engine      engine.Config
	noColor     bool
	skipHygiene bool
	baseline    string
}

func resolve(cmd *cobra.Command, args []string, g *globalOptions, o *scanOptions) (resolved, error) {
	arg := "."
	if len(args) > 0 {
		arg = args[0]
	}
	abs, err := engine.ResolveRoot(arg)
	if err != nil {
		return resolved{}, err
	}
	fc, err := config.Load(abs)
	if err != nil {
		return resolved{}, err
	}

	r := resolved{
		root: abs,
		engine: engine.Config{
			Root:              abs,
			IncludeGlobs:      pickString(o.include, fc.Include),
			ExcludeGlobs:      pickString(o.exclude, fc.Exclude),
			EnableDetectors:   pickString(o.enable, fc.Enable),
			DisableDetectors:  pickString(o.disable, fc.Disable),
			Threads:           pickInt(g.threads, fc.Threads),
			MaxChars:          pickInt(o.maxChars, fc.MaxChars),
			SniffBinary:       pickBool(o.sniffBinary, fc.SniffBinary),
			ExtraExcludeDirs:  fc.ExtraExcludeDirs,
			ExtraExcludeFiles: fc.ExtraExcludeFiles,
			ExtraExcludeExts:  fc.ExtraExcludeExts,
		},
		noColor:     pickBool(g.noColor, fc.NoColor) || !isTerminal(cmd.OutOrStdout()),
		skipHygiene: pickBool(o.skipHygiene, fc.SkipHygiene),
		baseline:    pickString(o.baseline, fc.Baseline),
	}
	if r.baseline != "" && !filepath.IsAbs(r.baseline) {
		r.baseline = filepath.Join(abs, r.baseline)
	}

	for _, list := range []string{r.engine.EnableDetectors, r.engine.DisableDetectors} {
		if unknown := detectors.Unknown(list); len(unknown) > 0 {
			log.Warn("unknown detector IDs ignored", "ids", strings.Join(unknown, ","))
		}
	}
	return r, nil
}

func runScan(cmd *cobra.Command, args []string, g *globalOptions, o *scanOptions) error {
	r, err := resolve(cmd, args, g, o)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	text := !g.json && !g.sarif

	if text {
		printBanner(out, r.root)
	}

	var hyg hygiene.Report
	if !r.skipHygiene {
		hyg = hygiene.Run(r.root)
		if text {
			report.PrintHygiene(out, hyg, r.noColor)
		}
	}

	if text {
		fmt.Fprintln(out, "\nScanning files...")
	}
	start := time.Now()
	res, err := engine.Scan(cmd.Context(), r.engine)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.Debug("scan finished", "files", res.FilesScanned, "findings", len(res.Findings), "elapsed", elapsed)

	var hidden int
	res.Findings, hidden, err = applyBaseline(r, res.Findings)
	if err != nil {
		return err
	}
	passed := res.Passed() && hyg.Passed()

	switch {
	case g.json:
		doc := report.NewJSONReport(r.root, res, hyg)
		doc.Baselined = hidden
		if err := report.WriteJSON(out, doc); err != nil {
			return err
		}
	case g.sarif:
		if err := report.WriteSARIF(out, res, version); err != nil {
			return err
		}
	default:
		report.PrintText(out, res, report.PrintOptions{NoColor: r.noColor, Duration: elapsed})
		if hidden > 0 {
			fmt.Fprintf(out, "\nℹ️  %d findings hidden by baseline %s\n", hidden, r.baseline)
		}
		report.PrintVerdict(out, passed, r.noColor)
	}

	if !passed {
		return errFailed
	}
	return nil
}

// applyBaseline drops accepted findings when a baseline is configured and
// reports how many it hid. A configured baseline must exist.
func applyBaseline(r resolved, findings []types.Finding) ([]types.Finding, int, error) {
	if r.baseline == "" {
		return findings, 0, nil
	}
	base, err := report.LoadBaseline(r.baseline)
	if err != nil {
		return nil, 0, fmt.Errorf("load baseline: %w", err)
	}
	kept := report.FilterNewFindings(findings, base)
	n := len(findings) - len(kept)
	if n > 0 {
		log.Info("baselined findings hidden", "count", n, "baseline", r.baseline)
	}
	return kept, n, nil
}

func printBanner(w io.Writer, root string) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "🔍 PUSHGUARD SECRET SCANNER")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\nScanning: %s\n", root)
	fmt.Fprintln(w, "Looking for: API keys, passwords, emails, tokens, etc.")
}
