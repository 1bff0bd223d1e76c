// Package shifttime contains the time arithmetic for shifts and work logs.
// Shifts may roll over midnight (e.g. 16:00 -> 01:30), which is why the
// end instant is not required to be after the start instant.
package shifttime

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// CalculateWorkHours returns the worked hours between start and end with the
// lunch break deducted. If end is not after start the shift is treated as
// crossing midnight and end is shifted to the following calendar day.
// The result can go negative when lunch exceeds the elapsed span; callers
// should surface that as a data-entry anomaly instead of clamping it.
func CalculateWorkHours(start, end time.Time, lunchMinutes int) float64 {
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	elapsed := end.Sub(start).Hours()
	return elapsed - float64(lunchMinutes)/60.0
}

// ShiftDate returns the attendance date of a work log: always the calendar
// date of the start instant, even when the shift crosses midnight.
func ShiftDate(start time.Time) time.Time {
	y, m, d := start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, start.Location())
}

// CombineDateTime builds an absolute timestamp from a calendar date
// (YYYY-MM-DD) and a wall-clock time (HH:MM or HH:MM:SS).
func CombineDateTime(date, clock string) (time.Time, error) {
	layouts := []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}
	for _, layout := range layouts {
		if ts, err := time.ParseInLocation(layout, date+"T"+clock, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date/time combination %q %q", date, clock)
}

// PlannedWindow resolves the absolute planned start/end of a shift on the
// given date from a site's daily wall-clock schedule. The end rolls to the
// next calendar day when it does not exceed the start.
func PlannedWindow(date, startClock, endClock string) (time.Time, time.Time, error) {
	plannedStart, err := CombineDateTime(date, startClock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	plannedEnd, err := CombineDateTime(date, endClock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !plannedEnd.After(plannedStart) {
		plannedEnd = plannedEnd.AddDate(0, 0, 1)
	}
	return plannedStart, plannedEnd, nil
}

// FormatWorkHours renders a duration in hours as "8h" or "8h 30m".
func FormatWorkHours(hours float64) string {
	whole := int(math.Floor(hours))
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}
	if minutes == 0 {
		return fmt.Sprintf("%dh", whole)
	}
	return fmt.Sprintf("%dh %dm", whole, minutes)
}
