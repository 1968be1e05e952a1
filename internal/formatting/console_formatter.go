package formatting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"loadorder/internal/planner"
)

// ConsoleFormatter provides simple console output formatting
type ConsoleFormatter struct {
	options Options
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options Options) Formatter {
	return &ConsoleFormatter{
		options: options,
	}
}

// FormatPlan prints the load order, and the modules for a partition. In
// quiet mode only the manifest paths are printed, one per line.
func (f *ConsoleFormatter) FormatPlan(w io.Writer, plan *planner.Plan) error {
	if f.options.Quiet {
		for _, u := range plan.Units {
			if _, err := fmt.Fprintln(w, u.Path); err != nil {
				return err
			}
		}
		return nil
	}

	var output []string
	output = append(output, f.ambiguityLines(plan.Ambiguities)...)

	if plan.Kind == planner.KindPartition {
		output = append(output, paint(f.options, text.FgHiCyan, fmt.Sprintf("Modules (%d):", len(plan.Modules))))
		for _, m := range plan.Modules {
			header := "  " + paint(f.options, text.Bold, m.Name)
			if len(m.DependsOn) > 0 {
				header += fmt.Sprintf(" (depends on: %s)", strings.Join(m.DependsOn, ", "))
			}
			output = append(output, header)
			if len(m.Units) == 0 {
				output = append(output, "    (empty)")
			}
			for i, u := range m.Units {
				output = append(output, fmt.Sprintf("    %d. %-30s %s", i+1, u.Name, u.Path))
			}
		}
	} else {
		output = append(output, paint(f.options, text.FgHiCyan, fmt.Sprintf("Load order (%d units):", len(plan.Units))))
		for i, u := range plan.Units {
			line := fmt.Sprintf("  %d. %-30s %s", i+1, u.Name, u.Path)
			if u.Base {
				line += " " + paint(f.options, text.FgHiBlack, "[base]")
			}
			output = append(output, line)
		}
	}

	_, err := fmt.Fprintln(w, strings.Join(output, "\n"))
	return err
}

// FormatReport prints a check summary followed by every problem.
func (f *ConsoleFormatter) FormatReport(w io.Writer, report *planner.Report) error {
	var output []string
	output = append(output, fmt.Sprintf("Checked %d units providing %d namespaces (%d excluded, %d modules)",
		report.Units, report.Namespaces, report.Excluded, report.Modules))
	output = append(output, f.ambiguityLines(report.Ambiguities)...)

	if report.OK() {
		output = append(output, paint(f.options, text.FgGreen, "OK"))
	} else {
		output = append(output, paint(f.options, text.FgRed, fmt.Sprintf("Problems (%d):", len(report.Problems))))
		for _, p := range report.Problems {
			subject := p.Unit
			if p.Module {
				subject = "modules"
			}
			output = append(output, fmt.Sprintf("  - %s: %s", subject, p.Error))
		}
	}

	_, err := fmt.Fprintln(w, strings.Join(output, "\n"))
	return err
}

func (f *ConsoleFormatter) ambiguityLines(ambiguities []planner.Ambiguity) []string {
	var lines []string
	for _, a := range ambiguities {
		lines = append(lines, paint(f.options, text.FgYellow,
			fmt.Sprintf("Warning: namespace %s is provided by %s, shadowing %s", a.Namespace, a.Provider, strings.Join(a.Shadowed, ", "))))
	}
	return lines
}

// SetOptions updates the formatter options
func (f *ConsoleFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *ConsoleFormatter) GetOptions() Options {
	return f.options
}
