package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"loadorder/internal/config"
	"loadorder/internal/formatting"
	"loadorder/internal/planner"
	"loadorder/pkg/logging"
)

// outputOptions are the output flags shared by the commands that print plans.
type outputOptions struct {
	format   string
	template string
	quiet    bool
	color    bool
}

func (o *outputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "output", "o", "", "Output format (console, json, yaml, table, template)")
	cmd.Flags().StringVar(&o.template, "template", "", "Go template for the template output format")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "Print only manifest paths")
	cmd.Flags().BoolVar(&o.color, "color", false, "Colorize console and table output")
}

// formatter builds the formatter for the flags, falling back to the output
// section of cfg. A template without a format implies the template format.
func (o *outputOptions) formatter(cfg config.LoadOrderConfig) (formatting.Formatter, error) {
	name := o.format
	switch {
	case name != "":
	case o.template != "":
		name = string(formatting.FormatTemplate)
	default:
		name = cfg.Output.Format
	}
	tmpl := o.template
	if tmpl == "" {
		tmpl = cfg.Output.Template
	}

	format, err := formatting.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return formatting.NewFactory().CreateFormatter(formatting.Options{
		Format:   format,
		Quiet:    o.quiet,
		Color:    o.color,
		Template: tmpl,
	})
}

// loadConfig sets up CLI logging and loads the configuration named by
// --config.
func loadConfig(cmd *cobra.Command) (config.LoadOrderConfig, error) {
	level := logging.LevelInfo
	if debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.LoadOrderConfig{}, err
	}

	if !debug {
		configured, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return config.LoadOrderConfig{}, err
		}
		logging.InitForCLI(configured, cmd.ErrOrStderr())
	}
	return cfg, nil
}

// loadWorkspace loads the configuration and every manifest under sources,
// or under the configured sources when none are given.
func loadWorkspace(ctx context.Context, cmd *cobra.Command, sources []string) (config.LoadOrderConfig, *planner.Workspace, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.LoadOrderConfig{}, nil, err
	}

	ws, err := planner.New(cfg, nil).Load(ctx, sources...)
	if err != nil {
		return config.LoadOrderConfig{}, nil, fmt.Errorf("failed to load manifests: %w", err)
	}
	return cfg, ws, nil
}
