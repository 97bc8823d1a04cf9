// Copyright 2026 The Tally Authors
// SPDX-License-Identifier: MIT

// Package dashboard shapes aggregated metrics and records into the structures
// rendered by output surfaces: KPI tiles, a summary table, a proportion series
// and a sorted detail table. It formats and sorts; it does not compute.
package dashboard

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/davetashner/tally/internal/checklist"
	"github.com/davetashner/tally/internal/metrics"
)

// DefaultTitle is the dashboard heading when none is configured.
const DefaultTitle = "Checklist Progress"

// DateLayout formats the delivery date tile (day/month/year).
const DateLayout = "02/01/2006"

// Tile labels.
const (
	TilePercent      = "% Complete"
	TileDelivery     = "Delivery Date"
	TileCalendarDays = "Calendar Days Left"
	TileBusinessDays = "Business Days Left"
	TileTeamSize     = "Team Size"
)

// Summary table bases.
const (
	BasisCalendar = "Calendar days"
	BasisBusiness = "Business days"
)

// Pie chart labels and colors.
const (
	LabelPending   = "Pending"
	LabelCompleted = "Completed"

	ColorPending   = "#28a745"
	ColorCompleted = "#dc3545"

	// HoverTemplate shows the percentage on hover; the value is the primary label.
	HoverTemplate = "%{label}: %{value} points (%{percent})"
)

// Tile is a single KPI card.
type Tile struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// SummaryRow is one row of the points-per-day table.
type SummaryRow struct {
	Basis                 string `json:"basis"`
	PendingPoints         int    `json:"pending_points"`
	PointsPerDay          int    `json:"points_per_day"`
	PointsPerPersonPerDay int    `json:"points_per_person_per_day"`
}

// Slice is one category of the proportion chart.
type Slice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Pie is the two-category proportion series.
type Pie struct {
	Title         string  `json:"title"`
	Slices        []Slice `json:"slices"`
	HoverTemplate string  `json:"hover_template"`
}

// DetailRow is one line of the detail table.
type DetailRow struct {
	City      string `json:"city"`
	Points    int    `json:"points"`
	Completed bool   `json:"completed"`
}

// View is everything a surface needs to render the dashboard.
type View struct {
	Title       string            `json:"title"`
	GeneratedAt time.Time         `json:"generated_at"`
	Sources     []string          `json:"sources"`
	Tiles       []Tile            `json:"tiles"`
	Summary     []SummaryRow      `json:"summary"`
	Pie         Pie               `json:"pie"`
	Details     []DetailRow       `json:"details"`
	Metrics     metrics.Aggregate `json:"metrics"`
}

// Options controls presentation-only settings.
type Options struct {
	Title       string
	GeneratedAt time.Time
	Sources     []string
}

// Build maps metrics and records into a View.
func Build(records []checklist.Record, agg metrics.Aggregate, opts Options) *View {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	sources := opts.Sources
	if sources == nil {
		sources = []string{}
	}

	return &View{
		Title:       title,
		GeneratedAt: opts.GeneratedAt,
		Sources:     sources,
		Tiles:       BuildTiles(agg),
		Summary:     BuildSummary(agg),
		Pie:         BuildPie(agg),
		Details:     BuildDetails(records),
		Metrics:     agg,
	}
}

// BuildTiles returns the five KPI tiles in display order. With no points at
// all the percentage tile shows a bare "0 %".
func BuildTiles(agg metrics.Aggregate) []Tile {
	percent := "0 %"
	if agg.TotalPoints > 0 {
		percent = FormatPercent(agg.PercentComplete)
	}
	return []Tile{
		{Key: "percent_complete", Label: TilePercent, Value: percent},
		{Key: "delivery_date", Label: TileDelivery, Value: agg.DeliveryDate.Format(DateLayout)},
		{Key: "calendar_days", Label: TileCalendarDays, Value: strconv.Itoa(agg.CalendarDaysRemaining)},
		{Key: "business_days", Label: TileBusinessDays, Value: strconv.Itoa(agg.BusinessDaysRemaining)},
		{Key: "team_size", Label: TileTeamSize, Value: strconv.Itoa(agg.TeamSize)},
	}
}

// BuildSummary returns the calendar-day and business-day rows. Both rows carry
// the same pending total.
func BuildSummary(agg metrics.Aggregate) []SummaryRow {
	return []SummaryRow{
		{
			Basis:                 BasisCalendar,
			PendingPoints:         agg.PendingPoints,
			PointsPerDay:          agg.PointsPerCalendarDay,
			PointsPerPersonPerDay: agg.PointsPerPersonPerCalendarDay,
		},
		{
			Basis:                 BasisBusiness,
			PendingPoints:         agg.PendingPoints,
			PointsPerDay:          agg.PointsPerBusinessDay,
			PointsPerPersonPerDay: agg.PointsPerPersonPerBusinessDay,
		},
	}
}

// BuildPie returns the pending/completed proportion series.
func BuildPie(agg metrics.Aggregate) Pie {
	return Pie{
		Title: "Points Distribution",
		Slices: []Slice{
			{Label: LabelPending, Value: agg.PendingPoints, Color: ColorPending},
			{Label: LabelCompleted, Value: agg.CompletedPoints, Color: ColorCompleted},
		},
		HoverTemplate: HoverTemplate,
	}
}

// BuildDetails returns one row per record sorted by points descending. Rows
// with equal points keep their extraction order.
func BuildDetails(records []checklist.Record) []DetailRow {
	rows := make([]DetailRow, len(records))
	for i, r := range records {
		rows[i] = DetailRow{City: r.City, Points: r.Points, Completed: r.Completed}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})
	return rows
}

// FormatPercent renders a percentage with one decimal and a "%" suffix.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f %%", p)
}

// Share returns the slice's share of the pie total as a percentage with one
// decimal, or 0 for an empty pie.
func (p Pie) Share(i int) float64 {
	if i < 0 || i >= len(p.Slices) {
		return 0
	}
	return metrics.Percent(p.Slices[i].Value, p.Total())
}

// Total returns the sum of all slice values.
func (p Pie) Total() int {
	total := 0
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}
