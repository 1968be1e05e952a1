package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// checkFailedError is returned by the check command after the report has
// been printed, so the exit code can reflect what kind of problem was found.
type checkFailedError struct {
	problems   int
	dependency bool
}

func (e *checkFailedError) Error() string {
	return fmt.Sprintf("check found %d problems", e.problems)
}

type checkOptions struct {
	output  outputOptions
	sources []string
}

// newCheckCmd creates the command that validates every unit and module.
func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that every unit and module resolves",
		Long: `Load every manifest, report namespaces with more than one provider, and
resolve every unit and the configured modules, listing each failure.

Exit codes:
  0  no problems found
  1  a problem other than the dependency graph (for example a bad manifest)
  2  a missing provider, a cycle between units, or a cycle between modules`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	opts.output.addFlags(cmd)
	cmd.Flags().StringArrayVarP(&opts.sources, "source", "s", nil, "Manifest file or directory to load (repeatable, overrides configured sources)")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, ws, err := loadWorkspace(ctx, cmd, opts.sources)
	if err != nil {
		return err
	}
	formatter, err := opts.output.formatter(cfg)
	if err != nil {
		return err
	}

	report := ws.Check()
	if err := formatter.FormatReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if !report.OK() {
		return &checkFailedError{problems: len(report.Problems), dependency: report.HasDependencyError()}
	}
	return nil
}
