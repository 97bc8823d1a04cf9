package output

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/tally/internal/checklist"
	"github.com/davetashner/tally/internal/dashboard"
	"github.com/davetashner/tally/internal/metrics"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var fixedNow = func() time.Time { return time.Date(2025, time.August, 11, 9, 30, 0, 0, time.UTC) }

// testView is the three-item scenario: 10 done, 5 pending, 0-point item.
func testView() *dashboard.View {
	records := []checklist.Record{
		{Source: "board.json", Checklist: "Rollout", City: "CityB", Points: 5},
		{Source: "board.json", Checklist: "Rollout", City: "CityA", Points: 10, Completed: true},
		{Source: "board.json", Checklist: "Rollout", City: "CityC"},
	}
	agg := metrics.Compute(records, metrics.Params{
		Today:        fixedNow(),
		DeliveryDate: metrics.DefaultDeliveryDate,
		TeamSize:     metrics.DefaultTeamSize,
	})
	return dashboard.Build(records, agg, dashboard.Options{
		GeneratedAt: fixedNow(),
		Sources:     []string{"board.json"},
	})
}

func emptyView() *dashboard.View {
	agg := metrics.Compute(nil, metrics.Params{
		Today:        fixedNow(),
		DeliveryDate: metrics.DefaultDeliveryDate,
		TeamSize:     metrics.DefaultTeamSize,
	})
	return dashboard.Build(nil, agg, dashboard.Options{GeneratedAt: fixedNow()})
}

// failWriter succeeds for failAfter writes, then fails.
type failWriter struct {
	failAfter int
	calls     int
}

func (fw *failWriter) Write(p []byte) (int, error) {
	fw.calls++
	if fw.calls > fw.failAfter {
		return 0, errors.New("disk full")
	}
	return len(p), nil
}

func TestGetFormatter_AllRegistered(t *testing.T) {
	for _, name := range []string{"html", "json", "markdown", "text", "xlsx", "svg", "png"} {
		f, err := GetFormatter(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.Name())
		assert.NotEmpty(t, f.MediaType())
	}
}

func TestGetFormatter_Unknown(t *testing.T) {
	_, err := GetFormatter("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format: "yaml"`)
	assert.Contains(t, err.Error(), "html, json, markdown, png, svg, text, xlsx")
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "text")
}

func TestFormatters_RejectNilView(t *testing.T) {
	for _, name := range Names() {
		f, err := GetFormatter(name)
		require.NoError(t, err)
		assert.Error(t, f.Format(nil, &failWriter{failAfter: 100}), name)
	}
}

func TestRegistry_Reset(t *testing.T) {
	saved := Names()
	formatters := make([]Formatter, 0, len(saved))
	for _, n := range saved {
		f, _ := GetFormatter(n)
		formatters = append(formatters, f)
	}
	t.Cleanup(func() {
		resetFmtForTesting()
		for _, f := range formatters {
			RegisterFormatter(f)
		}
	})

	resetFmtForTesting()
	assert.Empty(t, Names())
	_, err := GetFormatter("json")
	assert.Error(t, err)

	RegisterFormatter(NewJSONFormatter())
	assert.Equal(t, []string{"json"}, Names())
}
