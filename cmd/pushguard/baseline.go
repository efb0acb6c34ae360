package pushguard

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/varalys/pushguard/internal/engine"
	"github.com/varalys/pushguard/internal/report"
)

func newBaselineCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	o := &scanOptions{}
	update := &cobra.Command{
		Use:   "update [path]",
		Short: "Accept every current finding into the baseline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolve(cmd, args, g, o)
			if err != nil {
				return err
			}
			res, err := engine.Scan(cmd.Context(), r.engine)
			if err != nil {
				return err
			}
			path := r.baseline
			if path == "" {
				path = filepath.Join(r.root, engine.BaselineFileName)
			}
			if err := report.SaveBaseline(path, res.Findings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d findings written to %s\n", len(res.Findings), path)
			return nil
		},
	}
	addScanFlags(update, o)

	cmd.AddCommand(update)
	return cmd
}
