// Package formatting renders plans and check reports for the command line.
//
// Supported formats are console (plain text), JSON, YAML, table and
// template, a user-supplied Go template with the sprig function library.
package formatting

import (
	"fmt"
	"io"
	"strings"

	"loadorder/internal/planner"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"  // Simple console output
	FormatJSON     OutputFormat = "json"     // JSON output
	FormatYAML     OutputFormat = "yaml"     // YAML output
	FormatTable    OutputFormat = "table"    // Rich table output
	FormatTemplate OutputFormat = "template" // User-supplied Go template
)

// ParseFormat converts a format name to an OutputFormat.
func ParseFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatConsole, FormatJSON, FormatYAML, FormatTable, FormatTemplate:
		return f, nil
	case "":
		return FormatConsole, nil
	default:
		return "", fmt.Errorf("unknown output format %q", name)
	}
}

// Options configures the formatter behavior
type Options struct {
	Format   OutputFormat
	Quiet    bool   // Suppress decorative elements
	Color    bool   // Enable colored output
	Template string // Template text for FormatTemplate
}

// Formatter renders plans and reports.
type Formatter interface {
	FormatPlan(w io.Writer, plan *planner.Plan) error
	FormatReport(w io.Writer, report *planner.Report) error

	// Configuration
	SetOptions(options Options)
	GetOptions() Options
}

// Factory creates formatters for different output formats
type Factory interface {
	CreateFormatter(options Options) (Formatter, error)
}

// NewFactory creates a new formatter factory
func NewFactory() Factory {
	return &factory{}
}

// factory implements the Factory interface
type factory struct{}

// CreateFormatter creates the appropriate formatter based on options
func (f *factory) CreateFormatter(options Options) (Formatter, error) {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options), nil
	case FormatYAML:
		return NewYAMLFormatter(options), nil
	case FormatTable:
		return NewTableFormatter(options), nil
	case FormatTemplate:
		return NewTemplateFormatter(options)
	case FormatConsole, "":
		return NewConsoleFormatter(options), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", options.Format)
	}
}
