package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/davetashner/tally/internal/dashboard"
)

func init() {
	RegisterFormatter(NewSVGFormatter())
	RegisterFormatter(NewPNGFormatter())
}

// Chart canvas size in pixels.
const (
	ChartWidth  = 512
	ChartHeight = 512
)

// emptyColor fills the placeholder slice of a chart with no points.
const emptyColor = "#adb5bd"

// ChartFormatter renders the points distribution as a pie chart image.
type ChartFormatter struct {
	name      string
	mediaType string
	provider  chart.RendererProvider
}

// Compile-time interface check.
var _ Formatter = (*ChartFormatter)(nil)

// NewSVGFormatter returns a ChartFormatter producing SVG.
func NewSVGFormatter() *ChartFormatter {
	return &ChartFormatter{name: "svg", mediaType: "image/svg+xml", provider: chart.SVG}
}

// NewPNGFormatter returns a ChartFormatter producing PNG.
func NewPNGFormatter() *ChartFormatter {
	return &ChartFormatter{name: "png", mediaType: "image/png", provider: chart.PNG}
}

// Name returns the format name.
func (c *ChartFormatter) Name() string {
	return c.name
}

// MediaType returns the MIME type of the rendered image.
func (c *ChartFormatter) MediaType() string {
	return c.mediaType
}

// Format renders the pie to w.
func (c *ChartFormatter) Format(v *dashboard.View, w io.Writer) error {
	if v == nil {
		return fmt.Errorf("nil dashboard view")
	}
	pie := chart.PieChart{
		Title:  v.Title,
		Width:  ChartWidth,
		Height: ChartHeight,
		Values: pieValues(v.Pie),
	}
	if err := pie.Render(c.provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", c.name, err)
	}
	return nil
}

// pieValues converts the non-empty slices to chart values. A pie with no
// points becomes a single neutral slice, since go-chart rejects empty pies.
func pieValues(p dashboard.Pie) []chart.Value {
	var values []chart.Value
	for _, s := range p.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %d", s.Label, s.Value),
			Value: float64(s.Value),
			Style: chart.Style{
				FillColor:   hexColor(s.Color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
			},
		})
	}
	if len(values) == 0 {
		values = []chart.Value{{
			Label: "No points",
			Value: 1,
			Style: chart.Style{FillColor: hexColor(emptyColor)},
		}}
	}
	return values
}

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
