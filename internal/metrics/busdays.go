package metrics

import "time"

// BusinessDays counts Monday-Friday dates in the half-open range [start, end).
// When end precedes start the count of [end, start) is returned negated.
// Holidays are not considered.
func BusinessDays(start, end time.Time) int {
	start, end = civilDate(start), civilDate(end)
	if end.Before(start) {
		return -BusinessDays(end, start)
	}

	days := DaysBetween(start, end)
	weeks, rest := days/7, days%7
	count := weeks * 5

	wd := start.Weekday()
	for i := 0; i < rest; i++ {
		if isWeekday(wd) {
			count++
		}
		wd = (wd + 1) % 7
	}
	return count
}

func isWeekday(wd time.Weekday) bool {
	return wd != time.Saturday && wd != time.Sunday
}
