// Package output renders human-facing summaries of pipeline runs and
// reports. Machine consumers read the logs or the CSVs instead; nothing
// here is parsed downstream.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/cadence-sf/sfstage/pkg/authors"
	"github.com/cadence-sf/sfstage/pkg/changeset"
)

// Renderer writes formatted summaries. With noColor set, all styling is
// dropped and plain text is emitted.
type Renderer struct {
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a renderer targeting w, typically os.Stdout.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	return &Renderer{writer: w, noColor: noColor}
}

func (r *Renderer) styled(s lipgloss.Style, text string) string {
	if r.noColor {
		return text
	}
	return s.Render(text)
}

// RenderRun prints the per-unit outcome of one pipeline run.
func (r *Renderer) RenderRun(result *changeset.Result) error {
	header := fmt.Sprintf("Run %s (%s)", result.RunID, result.Mode)
	if _, err := fmt.Fprintln(r.writer, r.styled(styleDim, header)); err != nil {
		return err
	}

	for _, unit := range result.Units {
		status := r.styled(styleSuccess, "staged")
		detail := ""
		if unit.Err != nil {
			status = r.styled(styleFailure, "failed")
			detail = " " + r.styled(styleDim, unit.Err.Error())
		}
		line := fmt.Sprintf("  %s %s [%s]%s",
			r.styled(styleUnit, unit.Name), status, unit.Representation, detail)
		if _, err := fmt.Fprintln(r.writer, line); err != nil {
			return err
		}
	}

	if len(result.Promoted) > 0 {
		line := fmt.Sprintf("%d file(s) promoted to the deployable directory", len(result.Promoted))
		if _, err := fmt.Fprintln(r.writer, r.styled(styleSuccess, line)); err != nil {
			return err
		}
	}
	return nil
}

// RenderAuthors prints the branch activity report, starring the rows
// carrying the author's most recent commit date.
func (r *Renderer) RenderAuthors(report []authors.Activity) error {
	for _, row := range report {
		if row.Latest {
			line := fmt.Sprintf("★ %s %s <-- LATEST", row.Branch, row.Date)
			if !r.noColor {
				line = pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint(line)
			}
			if _, err := fmt.Fprintln(r.writer, line); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(r.writer, "  %s %s\n", row.Branch, row.Date); err != nil {
			return err
		}
	}
	return nil
}

// RenderScanSummary prints where a literal report landed and how many
// rows it holds.
func (r *Renderer) RenderScanSummary(csvPath string, hits int) error {
	line := fmt.Sprintf("Found %d entries in %s", hits, csvPath)
	_, err := fmt.Fprintln(r.writer, r.styled(styleDim, line))
	return err
}
