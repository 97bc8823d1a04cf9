package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/tally/internal/dashboard"
)

func TestHTMLFormatter_Name(t *testing.T) {
	f := NewHTMLFormatter()
	assert.Equal(t, "html", f.Name())
	assert.Equal(t, "text/html; charset=utf-8", f.MediaType())
}

func TestHTMLFormatter_BasicOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHTMLFormatter().Format(testView(), &buf))

	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Checklist Progress</title>")
	assert.Contains(t, out, "Generated 2025-08-11 09:30 UTC")
	assert.Contains(t, out, "board.json")
}

func TestHTMLFormatter_Tiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHTMLFormatter().Format(testView(), &buf))

	out := buf.String()
	for _, want := range []string{
		`data-key="percent_complete"><div class="value">66.7 %</div><div class="label">% Complete</div>`,
		`<div class="value">19/08/2025</div><div class="label">Delivery Date</div>`,
		`<div class="value">9</div><div class="label">Calendar Days Left</div>`,
		`<div class="value">7</div><div class="label">Business Days Left</div>`,
		`<div class="value">4</div><div class="label">Team Size</div>`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestHTMLFormatter_SummaryTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHTMLFormatter().Format(testView(), &buf))

	out := buf.String()
	assert.Contains(t, out, `<tr><td>Calendar days</td><td class="num">5</td><td class="num">0</td><td class="num">0</td></tr>`)
	assert.Contains(t, out, `<tr><td>Business days</td><td class="num">5</td><td class="num">0</td><td class="num">0</td></tr>`)
}

func TestHTMLFormatter_PieHover(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHTMLFormatter().Format(testView(), &buf))

	out := buf.String()
	assert.Contains(t, out, "Points Distribution")
	assert.Contains(t, out, `"hovers":["Pending: 5 points (33.3%)","Completed: 10 points (66.7%)"]`)
	assert.Contains(t, out, `"colors":["#28a745","#dc3545"]`)
	assert.Contains(t, out, `title="Pending: 5 points (33.3%)"`)
}

func TestHTMLFormatter_DetailOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHTMLFormatter().Format(testView(), &buf))

	out := buf.String()
	a := strings.Index(out, "<td>CityA</td>")
	b := strings.Index(out, "<td>CityB</td>")
	c := strings.Index(out, "<td>CityC</td>")
	require.True(t, a > 0 && b > 0 && c > 0)
	assert.Less(t, a, b)
	assert.Less(t, b, c)
	assert.Contains(t, out, `<td class="done-Yes">Yes</td>`)
	assert.Contains(t, out, `<td class="done-No">No</td>`)
	assert.Contains(t, out, `th data-col="points"`)
}

func TestHTMLFormatter_EmptyDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHTMLFormatter().Format(emptyView(), &buf))

	out := buf.String()
	assert.Contains(t, out, "No checklist items found.")
	assert.Contains(t, out, `"values":[0,0]`)
	assert.NotContains(t, out, "Generated 0001")
}

func TestHTMLFormatter_EscapesCityNames(t *testing.T) {
	v := testView()
	v.Details[0].City = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, NewHTMLFormatter().Format(v, &buf))

	out := buf.String()
	assert.NotContains(t, out, `<script>alert("x")</script>`)
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestHTMLFormatter_CustomTitle(t *testing.T) {
	v := testView()
	v.Title = "Rollout & Delivery"

	var buf bytes.Buffer
	require.NoError(t, NewHTMLFormatter().Format(v, &buf))
	assert.Contains(t, buf.String(), "<h1>Rollout &amp; Delivery</h1>")
}

func TestHTMLFormatter_WriteError(t *testing.T) {
	err := NewHTMLFormatter().Format(testView(), &failWriter{failAfter: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute html template")
}

func TestHoverText(t *testing.T) {
	pie := testView().Pie
	assert.Equal(t, "Pending: 5 points (33.3%)", HoverText(pie, 0))
	assert.Equal(t, "Completed: 10 points (66.7%)", HoverText(pie, 1))
	assert.Empty(t, HoverText(pie, 2))
	assert.Empty(t, HoverText(pie, -1))

	empty := dashboard.BuildPie(emptyView().Metrics)
	assert.Equal(t, "Pending: 0 points (0.0%)", HoverText(empty, 0))
}
