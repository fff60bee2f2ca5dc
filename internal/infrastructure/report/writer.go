// Package report renders coverage summaries for terminals, pipelines and
// markdown documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"jacoscope/internal/application"
	"jacoscope/internal/domain"
)

// Writer renders summaries in the supported output formats.
type Writer struct{}

// Write renders a summary in the requested format.
func (Writer) Write(w io.Writer, s domain.Summary, format application.OutputFormat) error {
	switch format {
	case application.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case application.OutputMarkdown:
		return writeMarkdown(w, s)
	case application.OutputText, "":
		return writeText(w, s)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeText(w io.Writer, s domain.Summary) error {
	colorize := colorEnabled(w)
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04")).Bold(true)
	badStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)

	if !s.Success {
		msg := "FAIL: " + s.Error
		if colorize {
			msg = badStyle.Render(msg)
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "Metric\tCoverage")
	_, _ = fmt.Fprintf(tw, "Line\t%s\n", colorPercent(s.LineCoverage, colorize, okStyle, warnStyle, badStyle))
	_, _ = fmt.Fprintf(tw, "Branch\t%s\n", colorPercent(s.BranchCoverage, colorize, okStyle, warnStyle, badStyle))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.WorstClasses) > 0 {
		_, _ = fmt.Fprintln(w, "\nWorst-covered classes:")
		for i, name := range s.WorstClasses {
			_, _ = fmt.Fprintf(w, "%3d. %s\n", i+1, name)
		}
	}
	return nil
}

func colorPercent(ratio float64, colorize bool, ok, warn, bad lipgloss.Style) string {
	text := fmt.Sprintf("%.1f%%", ratio*100)
	if !colorize {
		return text
	}
	switch {
	case ratio >= 0.8:
		return ok.Render(text)
	case ratio >= 0.5:
		return warn.Render(text)
	default:
		return bad.Render(text)
	}
}

func writeMarkdown(w io.Writer, s domain.Summary) error {
	var sb strings.Builder
	sb.WriteString("# Coverage Summary\n\n")

	if !s.Success {
		sb.WriteString(fmt.Sprintf("**Failed:** %s\n", s.Error))
		_, err := io.WriteString(w, sb.String())
		return err
	}

	sb.WriteString("| Metric | Coverage |\n")
	sb.WriteString("| --- | --- |\n")
	sb.WriteString(fmt.Sprintf("| Line | %.1f%% |\n", s.LineCoverage*100))
	sb.WriteString(fmt.Sprintf("| Branch | %.1f%% |\n", s.BranchCoverage*100))

	if len(s.WorstClasses) > 0 {
		sb.WriteString("\n## Worst-covered classes\n\n")
		for i, name := range s.WorstClasses {
			sb.WriteString(fmt.Sprintf("%d. `%s`\n", i+1, name))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
