package formatting

import (
	"fmt"
	"io"

	"loadorder/internal/planner"
)

// JSONFormatter provides JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) Formatter {
	return &JSONFormatter{
		options: options,
	}
}

// FormatPlan writes the plan as indented JSON.
func (f *JSONFormatter) FormatPlan(w io.Writer, plan *planner.Plan) error {
	_, err := fmt.Fprintln(w, PrettyJSON(plan))
	return err
}

// FormatReport writes the report as indented JSON.
func (f *JSONFormatter) FormatReport(w io.Writer, report *planner.Report) error {
	_, err := fmt.Fprintln(w, PrettyJSON(report))
	return err
}

// SetOptions updates the formatter options
func (f *JSONFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *JSONFormatter) GetOptions() Options {
	return f.options
}
