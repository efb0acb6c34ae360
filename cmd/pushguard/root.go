package pushguard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/varalys/pushguard/pkg/log"
)

var version = "0.1.0"

// ExitError carries a process exit code out of a command without printing.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// errFailed signals findings or failed hygiene checks.
var errFailed = &ExitError{Code: 1}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	json    bool
	sarif   bool
	threads int
	noColor bool
	debug   bool
	quiet   bool
}

// NewRootCmd builds the command tree. Running the root command with an
// optional path is the same as running scan.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}
	so := &scanOptions{}
	root := &cobra.Command{
		Use:           "pushguard [path]",
		Short:         "Check a source tree for secrets before you push",
		Long:          "pushguard scans a directory for API keys, passwords, tokens and other credentials, and checks that secrets files are ignored and templated.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.Reset()
			switch {
			case g.debug:
				log.EnableDebug()
			case g.quiet:
				log.EnableSilence()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, g, so)
		},
	}
	addScanFlags(root, so)

	pf := root.PersistentFlags()
	pf.BoolVar(&g.json, "json", false, "emit JSON")
	pf.BoolVar(&g.sarif, "sarif", false, "emit SARIF 2.1.0")
	pf.IntVar(&g.threads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	pf.BoolVar(&g.noColor, "no-color", false, "disable colorized output")
	pf.BoolVar(&g.debug, "debug", false, "log skipped and unreadable files")
	pf.BoolVar(&g.quiet, "quiet", false, "only log errors")
	root.MarkFlagsMutuallyExclusive("json", "sarif")
	root.MarkFlagsMutuallyExclusive("debug", "quiet")

	root.AddCommand(
		newScanCmd(g),
		newHygieneCmd(g),
		newDetectorsCmd(g),
		newBaselineCmd(g),
		newFixCmd(),
		newConfigCmd(),
	)
	return root
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return exitCode(cmd.ExecuteContext(ctx), stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	fmt.Fprintln(stderr, "error:", err)
	return 2
}

// Execute runs the pushguard CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
