package formatting

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"loadorder/internal/planner"
)

// YAMLFormatter provides YAML output formatting. Field names follow the
// json tags of the plan types, so JSON and YAML output share one schema.
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	return &YAMLFormatter{
		options: options,
	}
}

// FormatPlan writes the plan as YAML.
func (f *YAMLFormatter) FormatPlan(w io.Writer, plan *planner.Plan) error {
	return f.write(w, plan)
}

// FormatReport writes the report as YAML.
func (f *YAMLFormatter) FormatReport(w io.Writer, report *planner.Report) error {
	return f.write(w, report)
}

func (f *YAMLFormatter) write(w io.Writer, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// SetOptions updates the formatter options
func (f *YAMLFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *YAMLFormatter) GetOptions() Options {
	return f.options
}
