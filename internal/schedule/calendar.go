package schedule

import (
	"time"

	"maintenance-backend/internal/model"
)

// View selects which date of an entry places it on the calendar.
type View string

const (
	ViewPlanned View = "planned"
	ViewActual  View = "actual"
)

// WeeksPerMonth is the number of fixed week buckets in a month.
const WeeksPerMonth = 4

// WeekOfMonth maps a day of month to its fixed bucket:
// 1–7, 8–15, 16–22 and 23 to the end of the month. These are not ISO weeks.
func WeekOfMonth(day int) int {
	switch {
	case day <= 7:
		return 1
	case day <= 15:
		return 2
	case day <= 22:
		return 3
	default:
		return 4
	}
}

// DaysInMonth returns the length of month m in year.
func DaysInMonth(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekRange returns the first and last day of a week bucket.
func WeekRange(year int, m time.Month, week int) (first, last int) {
	switch week {
	case 1:
		return 1, 7
	case 2:
		return 8, 15
	case 3:
		return 16, 22
	default:
		return 23, DaysInMonth(year, m)
	}
}

// Grid holds entries by [month-1][week-1].
type Grid [12][WeeksPerMonth][]model.ScheduleEntry

// Bucket places every entry whose date for the given view falls in year into
// its month and week cell, reading dates in loc. In the actual view entries
// without an actual date are left out.
func Bucket(year int, entries []model.ScheduleEntry, view View, loc *time.Location) Grid {
	if loc == nil {
		loc = time.UTC
	}
	var grid Grid
	for _, e := range entries {
		var d time.Time
		if view == ViewActual {
			if e.ActualDate == nil {
				continue
			}
			d = e.ActualDate.In(loc)
		} else {
			d = e.PlannedDate.In(loc)
		}
		if d.Year() != year {
			continue
		}
		m, w := int(d.Month())-1, WeekOfMonth(d.Day())-1
		grid[m][w] = append(grid[m][w], e)
	}
	return grid
}

// YearBounds returns [start of year, start of next year) in loc.
func YearBounds(year int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(1, 0, 0)
}
