package formatting

import (
	"errors"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"loadorder/internal/planner"
)

// DefaultTemplate prints one manifest path per line.
const DefaultTemplate = `{{ range .Units }}{{ .Path }}
{{ end }}`

// TemplateFormatter executes a Go template against the plan or report. The
// sprig function library is available, so templates can do things like
//
//	{{ range .Units }}<script src="{{ .Path | base }}"></script>
//	{{ end }}
type TemplateFormatter struct {
	options Options
	tmpl    *template.Template
}

// NewTemplateFormatter parses options.Template, or DefaultTemplate when it
// is empty.
func NewTemplateFormatter(options Options) (Formatter, error) {
	f := &TemplateFormatter{}
	if err := f.setOptions(options); err != nil {
		return nil, err
	}
	return f, nil
}

// FormatPlan executes the template with the plan as its data.
func (f *TemplateFormatter) FormatPlan(w io.Writer, plan *planner.Plan) error {
	return f.execute(w, plan)
}

// FormatReport executes the template with the report as its data.
func (f *TemplateFormatter) FormatReport(w io.Writer, report *planner.Report) error {
	return f.execute(w, report)
}

func (f *TemplateFormatter) execute(w io.Writer, data interface{}) error {
	if f.tmpl == nil {
		return errors.New("no output template configured")
	}
	if err := f.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute output template: %w", err)
	}
	return nil
}

// SetOptions updates the formatter options. An invalid template leaves the
// formatter without one, and later calls to FormatPlan fail.
func (f *TemplateFormatter) SetOptions(options Options) {
	if err := f.setOptions(options); err != nil {
		f.options = options
		f.tmpl = nil
	}
}

func (f *TemplateFormatter) setOptions(options Options) error {
	text := options.Template
	if text == "" {
		text = DefaultTemplate
	}
	tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return fmt.Errorf("invalid output template: %w", err)
	}
	f.options = options
	f.tmpl = tmpl
	return nil
}

// GetOptions returns the current formatter options
func (f *TemplateFormatter) GetOptions() Options {
	return f.options
}
