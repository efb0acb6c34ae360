package pushguard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/varalys/pushguard/internal/engine"
	"github.com/varalys/pushguard/internal/files"
	"github.com/varalys/pushguard/internal/hygiene"
)

func newFixCmd() *cobra.Command {
	fix := &cobra.Command{Use: "fix", Short: "Forward remediation helpers"}

	gitignore := &cobra.Command{
		Use:   "gitignore [path]",
		Short: "Append missing required entries to .gitignore",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := rootArg(args)
			if err != nil {
				return err
			}
			missing := hygiene.IgnoreFile(abs).Missing
			added, err := files.EnsureIgnoreEntries(abs, missing)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(added) == 0 {
				fmt.Fprintln(out, hygiene.IgnoreFileName+" already has the required entries.")
				return nil
			}
			fmt.Fprintf(out, "Added to %s: %s\n", hygiene.IgnoreFileName, strings.Join(added, ", "))
			return nil
		},
	}

	var force bool
	dotenv := &cobra.Command{
		Use:   "dotenv [path]",
		Short: "Write " + hygiene.TemplateFileName + " from " + hygiene.SecretsFileName + " with values removed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := rootArg(args)
			if err != nil {
				return err
			}
			src := filepath.Join(abs, hygiene.SecretsFileName)
			dst := filepath.Join(abs, hygiene.TemplateFileName)
			n, err := files.WriteDotenvTemplate(src, dst, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d keys.\n", dst, n)
			return nil
		},
	}
	dotenv.Flags().BoolVar(&force, "force", false, "overwrite an existing template")

	fix.AddCommand(gitignore, dotenv)
	return fix
}

func rootArg(args []string) (string, error) {
	arg := "."
	if len(args) > 0 {
		arg = args[0]
	}
	return engine.ResolveRoot(arg)
}
