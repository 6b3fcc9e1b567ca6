// Package calendar provides pure date arithmetic for rendering a month
// grid and aggregating habit completions. Nothing here touches storage;
// entry access comes in through callbacks so the functions stay
// side-effect free.
package calendar

import (
	"fmt"
	"time"

	"github.com/starford/jera/internal/models"
)

// now is stubbed in tests.
var now = time.Now

// Cell is one slot in a month grid. Leading placeholder cells (before
// the first of the month) have Day 0 and an empty Date.
type Cell struct {
	Day     int            `json:"day"`
	Date    string         `json:"date,omitempty"`
	Today   bool           `json:"today,omitempty"`
	Entries []models.Entry `json:"entries,omitempty"`
}

// Placeholder reports whether the cell pads the grid before day 1.
func (c Cell) Placeholder() bool {
	return c.Day == 0
}

// FormatDate returns the canonical "YYYY-MM-DD" form of a date.
func FormatDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// ParseDate parses a canonical "YYYY-MM-DD" date string. It rejects
// anything that does not round-trip exactly, so unpadded or otherwise
// loose forms fail even when time.Parse would accept them.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: parse date %q: %w", s, err)
	}
	if t.Format("2006-01-02") != s {
		return time.Time{}, fmt.Errorf("calendar: date %q is not in YYYY-MM-DD form", s)
	}
	return t, nil
}

// DaysIn returns the number of days in the given month, leap years
// included. Day 0 of the following month normalizes to the last day of
// this one.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthBounds returns the first and last date strings of the month,
// both inclusive range bounds.
func MonthBounds(year int, month time.Month) (first, last string) {
	return FormatDate(year, month, 1), FormatDate(year, month, DaysIn(year, month))
}

// MonthGrid lays out a month Sunday-first: a leading run of placeholder
// cells equal to the weekday index of day 1, then one cell per day
// carrying its date string and that day's entries. Recomputed fresh on
// every call; there is no cache to invalidate.
func MonthGrid(year int, month time.Month, entriesOn func(date string) []models.Entry) []Cell {
	lead := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	days := DaysIn(year, month)

	cells := make([]Cell, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= days; day++ {
		date := FormatDate(year, month, day)
		var entries []models.Entry
		if entriesOn != nil {
			entries = entriesOn(date)
		}
		cells = append(cells, Cell{
			Day:     day,
			Date:    date,
			Today:   IsToday(year, month, day),
			Entries: entries,
		})
	}
	return cells
}

// IsToday reports whether the given date is the wall-clock current day.
func IsToday(year int, month time.Month, day int) bool {
	y, m, d := now().Date()
	return y == year && m == month && d == day
}

// MonthlyCount counts completions of a habit within the month, bounds
// inclusive.
func MonthlyCount(habitID string, year int, month time.Month, entriesInRange func(start, end string) []models.Entry) int {
	first, last := MonthBounds(year, month)
	count := 0
	for _, e := range entriesInRange(first, last) {
		if e.HabitID == habitID {
			count++
		}
	}
	return count
}
