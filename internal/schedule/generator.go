// Package schedule holds the date arithmetic behind preventive maintenance:
// generating planned dates, deriving entry status and bucketing entries into
// the month × week planning grid.
package schedule

import (
	"time"

	"maintenance-backend/internal/model"
)

// Next returns the planned date following t for the given frequency.
// Unknown frequencies step by one week.
func Next(t time.Time, f model.Frequency) time.Time {
	switch f {
	case model.FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case model.FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case model.FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	case model.FrequencyHalfYearly:
		return t.AddDate(0, 6, 0)
	case model.FrequencyYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 7)
	}
}

// MaxGenerate caps how many dates a single Generate call produces.
const MaxGenerate = 1000

// Generate returns count planned dates starting at start, each one step after
// the previous. Steps follow the calendar of loc (UTC when nil) and the dates
// are returned in UTC. Duplicates against existing entries are not filtered.
func Generate(start time.Time, f model.Frequency, count int, loc *time.Location) []time.Time {
	if count <= 0 {
		return nil
	}
	if count > MaxGenerate {
		count = MaxGenerate
	}
	if loc == nil {
		loc = time.UTC
	}
	dates := make([]time.Time, 0, count)
	d := start.In(loc)
	for i := 0; i < count; i++ {
		dates = append(dates, d.UTC())
		d = Next(d, f)
	}
	return dates
}
