package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

type modulesOptions struct {
	output  outputOptions
	sources []string
}

// newModulesCmd creates the command that prints the configured module
// partition.
func newModulesCmd() *cobra.Command {
	opts := &modulesOptions{}

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Partition units into the configured modules",
		Long: `Assign the namespaces of every module declared in the configuration and
print the modules in dependency order, each with its units in load order.

A unit needed by more than one module is moved to the lowest module that all
of them depend on, or to the common module when there is none.

Example configuration:
  commonModule: common
  modules:
    - name: app
      dependsOn: [common]
      namespaces: [app.main]
    - name: admin
      dependsOn: [app]
      namespaces: [app.admin]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModules(cmd, opts)
		},
	}

	opts.output.addFlags(cmd)
	cmd.Flags().StringArrayVarP(&opts.sources, "source", "s", nil, "Manifest file or directory to load (repeatable, overrides configured sources)")

	return cmd
}

func runModules(cmd *cobra.Command, opts *modulesOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, ws, err := loadWorkspace(ctx, cmd, opts.sources)
	if err != nil {
		return err
	}
	if len(cfg.Modules) == 0 {
		return errors.New("no modules configured")
	}

	formatter, err := opts.output.formatter(cfg)
	if err != nil {
		return err
	}

	plan, err := ws.Partition()
	if err != nil {
		return err
	}
	return formatter.FormatPlan(cmd.OutOrStdout(), plan)
}
