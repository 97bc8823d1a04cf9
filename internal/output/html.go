package output

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/davetashner/tally/internal/dashboard"
)

func init() {
	RegisterFormatter(NewHTMLFormatter())
}

// HTMLFormatter writes a dashboard view as a self-contained HTML page.
type HTMLFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*HTMLFormatter)(nil)

// NewHTMLFormatter returns a new HTMLFormatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Name returns the format name.
func (h *HTMLFormatter) Name() string {
	return "html"
}

// MediaType returns the MIME type of HTML output.
func (h *HTMLFormatter) MediaType() string {
	return "text/html; charset=utf-8"
}

var (
	htmlTmplOnce sync.Once
	htmlTmpl     *template.Template
)

func dashboardTemplate() *template.Template {
	htmlTmplOnce.Do(func() {
		htmlTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
			"json": func(v any) template.JS {
				b, _ := json.Marshal(v)
				return template.JS(b) //nolint:gosec // intentional unescaped embedding
			},
		}).Parse(htmlTemplate))
	})
	return htmlTmpl
}

// Format writes the view as an HTML dashboard to w.
func (h *HTMLFormatter) Format(v *dashboard.View, w io.Writer) error {
	if v == nil {
		return fmt.Errorf("nil dashboard view")
	}
	if err := dashboardTemplate().Execute(w, buildHTMLData(v)); err != nil {
		return fmt.Errorf("execute html template: %w", err)
	}
	return nil
}

// htmlData holds all template data for the HTML dashboard.
type htmlData struct {
	Title       string
	GeneratedAt string
	Sources     string
	Tiles       []dashboard.Tile
	Summary     []dashboard.SummaryRow
	PieTitle    string
	Slices      []sliceLegend
	Details     []detailRow
	ChartData   map[string]any
}

type sliceLegend struct {
	Label string
	Value int
	Color string
	Hover string
}

type detailRow struct {
	City      string
	Points    int
	Completed string
}

func buildHTMLData(v *dashboard.View) htmlData {
	data := htmlData{
		Title:    v.Title,
		Sources:  strings.Join(v.Sources, ", "),
		Tiles:    v.Tiles,
		Summary:  v.Summary,
		PieTitle: v.Pie.Title,
		Slices:   buildSliceLegend(v.Pie),
		Details:  buildDetailRows(v.Details),
	}
	if !v.GeneratedAt.IsZero() {
		data.GeneratedAt = v.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC")
	}
	data.ChartData = buildHTMLChartData(data.Slices)
	return data
}

func buildSliceLegend(p dashboard.Pie) []sliceLegend {
	out := make([]sliceLegend, len(p.Slices))
	for i, s := range p.Slices {
		out[i] = sliceLegend{
			Label: s.Label,
			Value: s.Value,
			Color: s.Color,
			Hover: HoverText(p, i),
		}
	}
	return out
}

func buildDetailRows(rows []dashboard.DetailRow) []detailRow {
	out := make([]detailRow, len(rows))
	for i, r := range rows {
		out[i] = detailRow{City: r.City, Points: r.Points, Completed: yesNo(r.Completed)}
	}
	return out
}

func buildHTMLChartData(slices []sliceLegend) map[string]any {
	labels := make([]string, len(slices))
	values := make([]int, len(slices))
	colors := make([]string, len(slices))
	hovers := make([]string, len(slices))
	for i, s := range slices {
		labels[i] = s.Label
		values[i] = s.Value
		colors[i] = s.Color
		hovers[i] = s.Hover
	}
	return map[string]any{
		"labels": labels,
		"values": values,
		"colors": colors,
		"hovers": hovers,
	}
}

// HoverText expands the pie's hover template for slice i.
func HoverText(p dashboard.Pie, i int) string {
	if i < 0 || i >= len(p.Slices) {
		return ""
	}
	s := p.Slices[i]
	return strings.NewReplacer(
		"%{label}", s.Label,
		"%{value}", strconv.Itoa(s.Value),
		"%{percent}", strconv.FormatFloat(p.Share(i), 'f', 1, 64)+"%",
	).Replace(p.HoverTemplate)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
