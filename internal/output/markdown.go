package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/tally/internal/dashboard"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes the dashboard as a Markdown report.
type MarkdownFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// MediaType returns the MIME type of Markdown output.
func (m *MarkdownFormatter) MediaType() string {
	return "text/markdown; charset=utf-8"
}

// Format writes the view to w.
//
// The output includes:
//   - A title heading
//   - The KPI tiles as a bullet list
//   - The points-per-day summary table
//   - The points distribution with percentages
//   - The detail table sorted by points descending
func (m *MarkdownFormatter) Format(v *dashboard.View, w io.Writer) error {
	if v == nil {
		return fmt.Errorf("nil dashboard view")
	}
	if err := writeHeader(w, v); err != nil {
		return err
	}
	if err := writeTiles(w, v.Tiles); err != nil {
		return err
	}
	if err := writeSummaryTable(w, v.Summary); err != nil {
		return err
	}
	if err := writeDistribution(w, v.Pie); err != nil {
		return err
	}
	return writeDetailTable(w, v.Details)
}

// writeHeader writes the Markdown title and source line.
func writeHeader(w io.Writer, v *dashboard.View) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", v.Title); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(v.Sources) > 0 {
		if _, err := fmt.Fprintf(w, "**Sources:** %s\n\n", strings.Join(v.Sources, ", ")); err != nil {
			return fmt.Errorf("write sources: %w", err)
		}
	}
	return nil
}

func writeTiles(w io.Writer, tiles []dashboard.Tile) error {
	for _, t := range tiles {
		if _, err := fmt.Fprintf(w, "- **%s:** %s\n", t.Label, t.Value); err != nil {
			return fmt.Errorf("write tiles: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return fmt.Errorf("write tiles: %w", err)
	}
	return nil
}

func writeSummaryTable(w io.Writer, rows []dashboard.SummaryRow) error {
	if _, err := fmt.Fprintf(w, "## Points per Day\n\n| Basis | Pending Points | Points per Day | Points per Person per Day |\n|-------|---------------:|---------------:|--------------------------:|\n"); err != nil {
		return fmt.Errorf("write summary table: %w", err)
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "| %s | %d | %d | %d |\n", r.Basis, r.PendingPoints, r.PointsPerDay, r.PointsPerPersonPerDay); err != nil {
			return fmt.Errorf("write summary table: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return fmt.Errorf("write summary table: %w", err)
	}
	return nil
}

func writeDistribution(w io.Writer, p dashboard.Pie) error {
	if _, err := fmt.Fprintf(w, "## %s\n\n", p.Title); err != nil {
		return fmt.Errorf("write distribution: %w", err)
	}
	for i := range p.Slices {
		if _, err := fmt.Fprintf(w, "- %s\n", HoverText(p, i)); err != nil {
			return fmt.Errorf("write distribution: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return fmt.Errorf("write distribution: %w", err)
	}
	return nil
}

func writeDetailTable(w io.Writer, rows []dashboard.DetailRow) error {
	if _, err := fmt.Fprintf(w, "## Details\n\n"); err != nil {
		return fmt.Errorf("write detail heading: %w", err)
	}
	if len(rows) == 0 {
		if _, err := fmt.Fprintf(w, "_No checklist items found._\n"); err != nil {
			return fmt.Errorf("write detail table: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintf(w, "| City | Points | Completed |\n|------|-------:|-----------|\n"); err != nil {
		return fmt.Errorf("write detail table: %w", err)
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "| %s | %d | %s |\n", escapeCell(r.City), r.Points, yesNo(r.Completed)); err != nil {
			return fmt.Errorf("write detail row: %w", err)
		}
	}
	return nil
}

// escapeCell keeps pipes in city names from splitting the table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
