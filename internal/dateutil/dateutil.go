// Package dateutil holds the date helpers shared by the sample data
// generator, the dashboard service, and the platform adapters.
package dateutil

import (
	"time"
)

// DateRange lists every day from start to end, inclusive on both ends.
func DateRange(start, end time.Time) []time.Time {
	if end.Before(start) {
		return nil
	}
	days := int(end.Sub(start).Hours()/24) + 1
	out := make([]time.Time, days)
	for i := 0; i < days; i++ {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// LastNDays lists the n days ending at end, inclusive.
func LastNDays(n int, end time.Time) []time.Time {
	return DateRange(end.AddDate(0, 0, -(n-1)), end)
}

// DaysForPeriod maps the dashboard's period selector labels to a day count.
// Unrecognized labels fall back to 30 days.
func DaysForPeriod(period string) int {
	switch period {
	case "Last 7 Days":
		return 7
	case "Last 30 Days":
		return 30
	case "Last 90 Days":
		return 90
	case "Last 6 Months":
		return 180
	case "Last Year":
		return 365
	default:
		return 30
	}
}

// RangeForPeriod returns the inclusive start and end dates for a period
// selector label, ending at now.
func RangeForPeriod(period string, now time.Time) (time.Time, time.Time) {
	days := DaysForPeriod(period)
	return now.AddDate(0, 0, -(days - 1)), now
}

var shortMonthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthName returns the full English name of a 1-based month number.
func MonthName(month int) string {
	return time.Month(month).String()
}

// ShortMonthName returns the three-letter name of a 1-based month number.
func ShortMonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return shortMonthNames[month-1]
}

// WeekdayName returns the English weekday name for a Monday-based index
// (0 = Monday .. 6 = Sunday).
func WeekdayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return time.Weekday((weekday + 1) % 7).String()
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
