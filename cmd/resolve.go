package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"loadorder/internal/config"
	"loadorder/internal/formatting"
	"loadorder/internal/manifest"
	"loadorder/internal/planner"
	"loadorder/pkg/logging"
)

type resolveOptions struct {
	output  outputOptions
	sources []string
	entry   string
	watch   bool
}

// newResolveCmd creates the command that prints the load order for a set
// of namespaces.
func newResolveCmd() *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve [namespace...]",
		Short: "Print the load order for namespaces",
		Long: `Print the units needed to load the given namespaces, each after the units
it requires. The providers of the configured base list always come first.

Without namespaces every unit is ordered. With --entry the order is computed
for a single manifest file, which does not have to be part of the sources.

With --watch the order is printed again whenever a manifest or the
configuration file changes. Configuration edits, including the sources,
base list and exclude patterns, take effect without a restart.

Examples:
  loadorder resolve app.main
  loadorder resolve -s src -s vendor app.main app.admin
  loadorder resolve --entry src/main.js -q
  loadorder resolve app.main --template '{{ range .Units }}{{ .Path }}{{ "\n" }}{{ end }}'
  loadorder resolve app.main --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args)
		},
	}

	opts.output.addFlags(cmd)
	cmd.Flags().StringArrayVarP(&opts.sources, "source", "s", nil, "Manifest file or directory to load (repeatable, overrides configured sources)")
	cmd.Flags().StringVar(&opts.entry, "entry", "", "Manifest file to compute the load order for")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Recompute the load order whenever a manifest or the configuration changes")

	return cmd
}

func runResolve(cmd *cobra.Command, opts *resolveOptions, namespaces []string) error {
	if opts.entry != "" && len(namespaces) > 0 {
		return fmt.Errorf("--entry cannot be combined with namespace arguments")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := resolveOnce(ctx, cmd, cfg, opts, namespaces); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchResolve(ctx, cmd, cfg, opts, namespaces)
}

// resolveOnce loads the sources under cfg and prints the order.
func resolveOnce(ctx context.Context, cmd *cobra.Command, cfg config.LoadOrderConfig, opts *resolveOptions, namespaces []string) error {
	formatter, err := opts.output.formatter(cfg)
	if err != nil {
		return err
	}
	ws, err := planner.New(cfg, nil).Load(ctx, opts.sources...)
	if err != nil {
		return fmt.Errorf("failed to load manifests: %w", err)
	}
	return printResolve(cmd.OutOrStdout(), formatter, ws, opts.entry, namespaces)
}

// watchResolve reloads the configuration and the sources after every burst
// of changes and prints the new order. Failures are reported and watching
// continues. The watcher is restarted when the configured sources change.
func watchResolve(ctx context.Context, cmd *cobra.Command, cfg config.LoadOrderConfig, opts *resolveOptions, namespaces []string) error {
	for {
		sources := watchedSources(cfg, opts)
		watchCtx, cancel := context.WithCancel(ctx)
		restart := false

		err := manifest.NewWatcher(sources, 0).Run(watchCtx, func(changed []string) {
			logging.Info("CLI", "Detected changes in %d files, recomputing", len(changed))

			next, err := loadConfig(cmd)
			if err != nil {
				logging.Error("CLI", err, "Failed to reload configuration")
				return
			}
			cfg = next
			if err := resolveOnce(watchCtx, cmd, cfg, opts, namespaces); err != nil {
				logging.Error("CLI", err, "Failed to recompute load order")
			}
			if !slices.Equal(watchedSources(cfg, opts), sources) {
				restart = true
				cancel()
			}
		})
		cancel()
		if err != nil || !restart {
			return err
		}
		logging.Info("CLI", "Configured sources changed, restarting watcher")
	}
}

// watchedSources lists the manifest sources plus the configuration file when
// it exists.
func watchedSources(cfg config.LoadOrderConfig, opts *resolveOptions) []string {
	sources := opts.sources
	if len(sources) == 0 {
		sources = cfg.SourcePaths()
	}
	sources = slices.Clone(sources)

	path, err := config.ResolvePath(configPath)
	if err != nil {
		return sources
	}
	if _, err := os.Stat(path); err == nil {
		sources = append(sources, path)
	}
	return sources
}

func printResolve(w io.Writer, formatter formatting.Formatter, ws *planner.Workspace, entry string, namespaces []string) error {
	var (
		plan *planner.Plan
		err  error
	)
	if entry != "" {
		plan, err = ws.ResolveEntry(entry)
	} else {
		plan, err = ws.Resolve(namespaces)
	}
	if err != nil {
		return err
	}
	return formatter.FormatPlan(w, plan)
}
