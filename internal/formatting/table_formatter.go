package formatting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"loadorder/internal/planner"
	pkgstrings "loadorder/pkg/strings"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{
		options: options,
	}
}

// FormatPlan renders one row per unit. Partition plans get a module column
// and a separator between modules.
func (f *TableFormatter) FormatPlan(w io.Writer, plan *planner.Plan) error {
	if err := f.writeAmbiguities(w, plan.Ambiguities); err != nil {
		return err
	}

	t := f.createTable(w)
	if plan.Kind == planner.KindPartition {
		t.AppendHeader(f.header("#", "MODULE", "UNIT", "PATH", "DEPENDS ON"))
		for i, m := range plan.Modules {
			if i > 0 {
				t.AppendSeparator()
			}
			if len(m.Units) == 0 {
				t.AppendRow(table.Row{"", f.moduleName(m.Name), "(empty)", "", joinOrDash(m.DependsOn)})
			}
			for j, u := range m.Units {
				t.AppendRow(table.Row{j + 1, f.moduleName(m.Name), u.Name, f.path(u.Path), joinOrDash(m.DependsOn)})
			}
		}
		t.AppendFooter(table.Row{"", "Total", fmt.Sprintf("%d units", len(plan.Units)), fmt.Sprintf("%d modules", len(plan.Modules)), ""})
	} else {
		t.AppendHeader(f.header("#", "UNIT", "PATH", "PROVIDES", "REQUIRES"))
		for i, u := range plan.Units {
			name := u.Name
			if u.Base {
				name += " " + paint(f.options, text.FgHiBlack, "[base]")
			}
			t.AppendRow(table.Row{i + 1, name, f.path(u.Path), pkgstrings.Truncate(joinOrDash(u.Provides), pkgstrings.DefaultCellMaxLen), pkgstrings.Truncate(joinOrDash(u.Requires), pkgstrings.DefaultCellMaxLen)})
		}
		t.AppendFooter(table.Row{"", "Total", fmt.Sprintf("%d units", len(plan.Units)), "", ""})
	}
	t.Render()
	return nil
}

// FormatReport renders the check summary as a key/value table, followed by
// a table of problems when there are any.
func (f *TableFormatter) FormatReport(w io.Writer, report *planner.Report) error {
	if err := f.writeAmbiguities(w, report.Ambiguities); err != nil {
		return err
	}

	status := paint(f.options, text.FgGreen, "OK")
	if !report.OK() {
		status = paint(f.options, text.FgRed, fmt.Sprintf("%d problems", len(report.Problems)))
	}

	summary := f.createTable(w)
	summary.AppendHeader(f.header("KEY", "VALUE"))
	summary.AppendRows([]table.Row{
		{"Units", report.Units},
		{"Namespaces", report.Namespaces},
		{"Excluded", report.Excluded},
		{"Modules", report.Modules},
		{"Status", status},
	})
	summary.Render()

	if report.OK() {
		return nil
	}

	problems := f.createTable(w)
	problems.AppendHeader(f.header("SUBJECT", "ERROR"))
	for _, p := range report.Problems {
		subject := p.Unit
		if p.Module {
			subject = "modules"
		}
		problems.AppendRow(table.Row{subject, pkgstrings.Truncate(p.Error, 2*pkgstrings.DefaultCellMaxLen)})
	}
	problems.Render()
	return nil
}

// SetOptions updates the formatter options
func (f *TableFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *TableFormatter) GetOptions() Options {
	return f.options
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) header(names ...string) table.Row {
	row := make(table.Row, len(names))
	for i, name := range names {
		row[i] = paint(f.options, text.FgHiCyan, name)
	}
	return row
}

// path shortens long manifest paths unless quiet output asks for them
// unabridged.
func (f *TableFormatter) path(p string) string {
	if f.options.Quiet {
		return p
	}
	return pkgstrings.TruncatePath(p, pkgstrings.DefaultCellMaxLen)
}

func (f *TableFormatter) moduleName(name string) string {
	return paint(f.options, text.Bold, name)
}

func (f *TableFormatter) writeAmbiguities(w io.Writer, ambiguities []planner.Ambiguity) error {
	for _, a := range ambiguities {
		msg := fmt.Sprintf("Namespace %s is provided by %s, shadowing %s", a.Namespace, a.Provider, strings.Join(a.Shadowed, ", "))
		if _, err := fmt.Fprintf(w, "%s %s\n", paint(f.options, text.FgYellow, "⚠"), paint(f.options, text.FgYellow, msg)); err != nil {
			return err
		}
	}
	return nil
}
