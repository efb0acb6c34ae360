package pushguard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/varalys/pushguard/internal/config"
	"github.com/varalys/pushguard/internal/detectors"
	"github.com/varalys/pushguard/internal/engine"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}

	var (
		output  string
		force   bool
		enable  string
		disable string
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .pushguard.yml with every detector enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", output)
				}
			}
			en := strings.TrimSpace(enable)
			if en == "" {
				en = strings.Join(detectors.IDs(), ",")
			}
			fc := config.FileConfig{
				Enable:      strPtr(en),
				Threads:     intPtr(0),
				MaxChars:    intPtr(engine.MaxContentChars),
				NoColor:     boolPtr(false),
				SniffBinary: boolPtr(false),
				SkipHygiene: boolPtr(false),
			}
			if d := strings.TrimSpace(disable); d != "" {
				fc.Disable = strPtr(d)
			}
			b, err := yaml.Marshal(&fc)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, b, 0644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", output)
			return nil
		},
	}
	initCmd.Flags().StringVar(&output, "output", ".pushguard.yml", "output file path")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	initCmd.Flags().StringVar(&enable, "enable", "", "comma-separated detector IDs to enable (default all)")
	initCmd.Flags().StringVar(&disable, "disable", "", "comma-separated detector IDs to disable")

	showCmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print the merged file configuration for a root",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := rootArg(args)
			if err != nil {
				return err
			}
			fc, err := config.Load(abs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# global: %s\n", sourceLabel(config.GlobalPath()))
			fmt.Fprintf(out, "# local:  %s\n", sourceLabel(config.LocalPath(abs)))
			b, err := yaml.Marshal(&fc)
			if err != nil {
				return err
			}
			_, err = out.Write(b)
			return err
		},
	}

	cfgCmd.AddCommand(initCmd, showCmd)
	return cfgCmd
}

func sourceLabel(p string) string {
	if p == "" {
		return "(none)"
	}
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		return "(none)"
	}
	return filepath.Clean(p)
}
