package pushguard

import (
	"encoding/json"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/varalys/pushguard/internal/detectors"
)

func newDetectorsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List available detectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if g.json {
				type row struct {
					ID       string `json:"id"`
					Kind     string `json:"kind"`
					Severity string `json:"severity"`
				}
				rows := []row{}
				for _, d := range detectors.Default() {
					rows = append(rows, row{ID: d.ID, Kind: d.Kind, Severity: string(d.Severity)})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			t := tablewriter.NewTable(out)
			t.Header("ID", "Severity", "Kind")
			for _, d := range detectors.Default() {
				if err := t.Append([]string{d.ID, string(d.Severity), d.Kind}); err != nil {
					return err
				}
			}
			return t.Render()
		},
	}
}
