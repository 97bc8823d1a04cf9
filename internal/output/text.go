package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davetashner/tally/internal/dashboard"
)

func init() {
	RegisterFormatter(NewTextFormatter())
}

// TextFormatter writes the dashboard as aligned terminal tables. Color is
// controlled globally through fatih/color.
type TextFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*TextFormatter)(nil)

// NewTextFormatter returns a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// MediaType returns the MIME type of text output.
func (f *TextFormatter) MediaType() string {
	return "text/plain; charset=utf-8"
}

// Format writes the view to w.
func (f *TextFormatter) Format(v *dashboard.View, w io.Writer) error {
	if v == nil {
		return fmt.Errorf("nil dashboard view")
	}

	if _, err := fmt.Fprintf(w, "%s\n", SectionTitle(v.Title)); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	if len(v.Sources) > 0 {
		if _, err := fmt.Fprintf(w, "Sources: %s\n", strings.Join(v.Sources, ", ")); err != nil {
			return fmt.Errorf("write sources: %w", err)
		}
	}

	tiles := NewTable(Column{Header: "Metric"}, Column{Header: "Value", Align: AlignRight})
	for _, t := range v.Tiles {
		tiles.AddRow(t.Label, t.Value)
	}
	if err := writeSection(w, "Overview", tiles); err != nil {
		return err
	}

	summary := NewTable(
		Column{Header: "Basis"},
		Column{Header: "Pending Points", Align: AlignRight},
		Column{Header: "Points/Day", Align: AlignRight},
		Column{Header: "Points/Person/Day", Align: AlignRight},
	)
	for _, r := range v.Summary {
		summary.AddRow(r.Basis, strconv.Itoa(r.PendingPoints), strconv.Itoa(r.PointsPerDay), strconv.Itoa(r.PointsPerPersonPerDay))
	}
	if err := writeSection(w, "Points per Day", summary); err != nil {
		return err
	}

	dist := NewTable(
		Column{Header: "Status"},
		Column{Header: "Points", Align: AlignRight},
		Column{Header: "Share", Align: AlignRight},
	)
	for i, s := range v.Pie.Slices {
		dist.AddRow(s.Label, strconv.Itoa(s.Value), dashboard.FormatPercent(v.Pie.Share(i)))
	}
	if err := writeSection(w, v.Pie.Title, dist); err != nil {
		return err
	}

	if len(v.Details) == 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n  No checklist items found.\n", SectionTitle("Details")); err != nil {
			return fmt.Errorf("write details: %w", err)
		}
		return nil
	}
	details := NewTable(
		Column{Header: "City"},
		Column{Header: "Points", Align: AlignRight},
		Column{Header: "Completed", Color: ColorCompletion},
	)
	for _, r := range v.Details {
		details.AddRow(r.City, strconv.Itoa(r.Points), yesNo(r.Completed))
	}
	return writeSection(w, "Details", details)
}

func writeSection(w io.Writer, title string, t *Table) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", SectionTitle(title)); err != nil {
		return fmt.Errorf("write section %s: %w", title, err)
	}
	return t.Render(w)
}
