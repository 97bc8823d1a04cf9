// Copyright 2026 The Tally Authors
// SPDX-License-Identifier: MIT

package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/tally/internal/checklist"
	"github.com/davetashner/tally/internal/metrics"
)

func scenario() ([]checklist.Record, metrics.Aggregate) {
	records := []checklist.Record{
		{City: "CityA", Points: 10, Completed: true},
		{City: "CityB", Points: 5},
		{City: "CityC"},
	}
	agg := metrics.Compute(records, metrics.Params{
		Today:        time.Date(2025, time.August, 11, 9, 0, 0, 0, time.UTC),
		DeliveryDate: metrics.DefaultDeliveryDate,
		TeamSize:     metrics.DefaultTeamSize,
	})
	return records, agg
}

func TestBuild_Scenario(t *testing.T) {
	records, agg := scenario()
	gen := time.Date(2025, time.August, 11, 9, 0, 0, 0, time.UTC)

	v := Build(records, agg, Options{GeneratedAt: gen, Sources: []string{"board.json"}})

	assert.Equal(t, DefaultTitle, v.Title)
	assert.Equal(t, gen, v.GeneratedAt)
	assert.Equal(t, []string{"board.json"}, v.Sources)
	assert.Equal(t, agg, v.Metrics)

	require.Len(t, v.Tiles, 5)
	assert.Equal(t, Tile{Key: "percent_complete", Label: TilePercent, Value: "66.7 %"}, v.Tiles[0])
	assert.Equal(t, "19/08/2025", v.Tiles[1].Value)
	assert.Equal(t, "9", v.Tiles[2].Value)
	assert.Equal(t, "7", v.Tiles[3].Value)
	assert.Equal(t, "4", v.Tiles[4].Value)

	require.Len(t, v.Details, 3)
	assert.Equal(t, DetailRow{City: "CityA", Points: 10, Completed: true}, v.Details[0])
	assert.Equal(t, DetailRow{City: "CityB", Points: 5}, v.Details[1])
	assert.Equal(t, DetailRow{City: "CityC"}, v.Details[2])
}

func TestBuild_CustomTitleAndNilSources(t *testing.T) {
	records, agg := scenario()
	v := Build(records, agg, Options{Title: "Rollout"})
	assert.Equal(t, "Rollout", v.Title)
	assert.NotNil(t, v.Sources)
	assert.Empty(t, v.Sources)
}

func TestBuildTiles_NoPoints(t *testing.T) {
	for name, records := range map[string][]checklist.Record{
		"no records":       nil,
		"zero point items": {{City: "CityA", Completed: true}, {City: "CityB"}},
	} {
		t.Run(name, func(t *testing.T) {
			agg := metrics.Compute(records, metrics.Params{
				Today:        time.Date(2025, time.August, 11, 0, 0, 0, 0, time.UTC),
				DeliveryDate: metrics.DefaultDeliveryDate,
				TeamSize:     metrics.DefaultTeamSize,
			})
			tiles := BuildTiles(agg)
			assert.Equal(t, "0 %", tiles[0].Value)
		})
	}
}

func TestBuildSummary_SharesPending(t *testing.T) {
	agg := metrics.Aggregate{
		PendingPoints:                 100,
		PointsPerCalendarDay:          11,
		PointsPerBusinessDay:          14,
		PointsPerPersonPerCalendarDay: 2,
		PointsPerPersonPerBusinessDay: 3,
	}
	rows := BuildSummary(agg)
	require.Len(t, rows, 2)
	assert.Equal(t, SummaryRow{Basis: BasisCalendar, PendingPoints: 100, PointsPerDay: 11, PointsPerPersonPerDay: 2}, rows[0])
	assert.Equal(t, SummaryRow{Basis: BasisBusiness, PendingPoints: 100, PointsPerDay: 14, PointsPerPersonPerDay: 3}, rows[1])
}

func TestBuildPie(t *testing.T) {
	_, agg := scenario()
	pie := BuildPie(agg)

	require.Len(t, pie.Slices, 2)
	assert.Equal(t, Slice{Label: LabelPending, Value: 5, Color: ColorPending}, pie.Slices[0])
	assert.Equal(t, Slice{Label: LabelCompleted, Value: 10, Color: ColorCompleted}, pie.Slices[1])
	assert.Equal(t, HoverTemplate, pie.HoverTemplate)
	assert.Equal(t, 15, pie.Total())
	assert.InDelta(t, 33.3, pie.Share(0), 1e-9)
	assert.InDelta(t, 66.7, pie.Share(1), 1e-9)
	assert.Zero(t, pie.Share(5))
}

func TestPie_EmptyShare(t *testing.T) {
	pie := BuildPie(metrics.Aggregate{})
	assert.Zero(t, pie.Total())
	assert.Zero(t, pie.Share(0))
}

func TestBuildDetails_StableDescending(t *testing.T) {
	records := []checklist.Record{
		{City: "a", Points: 1},
		{City: "b", Points: 5},
		{City: "c", Points: 1},
		{City: "d", Points: 5},
		{City: "e", Points: 0},
		{City: "f", Points: 3},
		{City: "g", Points: 1},
	}
	rows := BuildDetails(records)
	require.Len(t, rows, len(records))

	for i := 0; i+1 < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i].Points, rows[i+1].Points)
	}

	var cities []string
	for _, r := range rows {
		cities = append(cities, r.City)
	}
	assert.Equal(t, []string{"b", "d", "f", "a", "c", "g", "e"}, cities)
}

func TestBuildDetails_DoesNotMutateRecords(t *testing.T) {
	records := []checklist.Record{{City: "low", Points: 1}, {City: "high", Points: 9}}
	_ = BuildDetails(records)
	assert.Equal(t, "low", records[0].City)
}

func TestBuildDetails_Empty(t *testing.T) {
	rows := BuildDetails(nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.0 %", FormatPercent(0))
	assert.Equal(t, "66.7 %", FormatPercent(66.7))
	assert.Equal(t, "100.0 %", FormatPercent(100))
}
