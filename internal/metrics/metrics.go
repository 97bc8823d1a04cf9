// Copyright 2026 The Tally Authors
// SPDX-License-Identifier: MIT

// Package metrics computes point-based completion metrics for checklist
// records against a delivery date.
package metrics

import (
	"math"
	"time"

	"github.com/davetashner/tally/internal/checklist"
)

// DefaultTeamSize is the number of people the pending work is split across
// when no team size is configured.
const DefaultTeamSize = 4

// DefaultDeliveryDate is used when no delivery date is configured.
var DefaultDeliveryDate = time.Date(2025, time.August, 19, 0, 0, 0, 0, time.UTC)

// Params holds the calendar and staffing inputs of a computation.
type Params struct {
	Today        time.Time
	DeliveryDate time.Time
	TeamSize     int
}

// Aggregate is the full set of derived metrics for one run.
type Aggregate struct {
	TotalPoints     int     `json:"total_points"`
	CompletedPoints int     `json:"completed_points"`
	PendingPoints   int     `json:"pending_points"`
	PercentComplete float64 `json:"percent_complete"`

	CalendarDaysRemaining int `json:"calendar_days_remaining"`
	BusinessDaysRemaining int `json:"business_days_remaining"`

	PointsPerCalendarDay          int `json:"points_per_calendar_day"`
	PointsPerBusinessDay          int `json:"points_per_business_day"`
	PointsPerPersonPerCalendarDay int `json:"points_per_person_per_calendar_day"`
	PointsPerPersonPerBusinessDay int `json:"points_per_person_per_business_day"`

	Today        time.Time `json:"today"`
	DeliveryDate time.Time `json:"delivery_date"`
	TeamSize     int       `json:"team_size"`
}

// Compute derives the aggregate metrics from records. It never fails.
//
// Day counts are floored at 1, so a passed deadline still yields a finite
// throughput target. Throughput is truncated after dividing by days and again
// after dividing by people.
func Compute(records []checklist.Record, p Params) Aggregate {
	var agg Aggregate
	for _, r := range records {
		agg.TotalPoints += r.Points
		if r.Completed {
			agg.CompletedPoints += r.Points
		}
	}
	agg.PendingPoints = agg.TotalPoints - agg.CompletedPoints
	agg.PercentComplete = Percent(agg.CompletedPoints, agg.TotalPoints)

	today := civilDate(p.Today)
	delivery := civilDate(p.DeliveryDate)

	agg.CalendarDaysRemaining = max(1, DaysBetween(today, delivery)+1)
	agg.BusinessDaysRemaining = max(1, BusinessDays(today, delivery.AddDate(0, 0, 1)))

	team := p.TeamSize
	if team < 1 {
		team = 1
	}

	agg.PointsPerCalendarDay = agg.PendingPoints / agg.CalendarDaysRemaining
	agg.PointsPerBusinessDay = agg.PendingPoints / agg.BusinessDaysRemaining
	agg.PointsPerPersonPerCalendarDay = agg.PointsPerCalendarDay / team
	agg.PointsPerPersonPerBusinessDay = agg.PointsPerBusinessDay / team

	agg.Today = today
	agg.DeliveryDate = delivery
	agg.TeamSize = team
	return agg
}

// Percent returns part/total*100 rounded to one decimal place, or 0 when total
// is 0. Ties round to even, so 6.25 becomes 6.2.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.RoundToEven(float64(part)/float64(total)*100*10) / 10
}

// DaysBetween returns the number of calendar days from a to b. Times of day
// are ignored.
func DaysBetween(a, b time.Time) int {
	a, b = civilDate(a), civilDate(b)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// civilDate drops the time of day and location, keeping the calendar date as
// seen in t's own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
