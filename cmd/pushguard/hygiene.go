package pushguard

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/varalys/pushguard/internal/engine"
	"github.com/varalys/pushguard/internal/hygiene"
	"github.com/varalys/pushguard/internal/report"
)

func newHygieneCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hygiene [path]",
		Short: "Check ignore file and secrets template without scanning",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := "."
			if len(args) > 0 {
				arg = args[0]
			}
			abs, err := engine.ResolveRoot(arg)
			if err != nil {
				return err
			}
			rep := hygiene.Run(abs)
			out := cmd.OutOrStdout()
			if g.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(map[string]any{
					"root":   abs,
					"checks": rep.Checks,
					"passed": rep.Passed(),
				}); err != nil {
					return err
				}
			} else {
				noColor := g.noColor || !isTerminal(out)
				report.PrintHygiene(out, rep, noColor)
				if len(rep.Failed()) == 0 {
					fmt.Fprintln(out, "All hygiene checks passed.")
				}
			}
			if !rep.Passed() {
				return errFailed
			}
			return nil
		},
	}
}
