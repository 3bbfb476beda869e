package schedule

import (
	"time"

	"maintenance-backend/internal/model"
)

// Status is the derived lifecycle state of a schedule entry.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLate      Status = "late"
	StatusCompleted Status = "completed"
)

// DeriveStatus computes the status of an entry at now. A planned date equal
// to now is still upcoming.
func DeriveStatus(planned time.Time, actual *time.Time, now time.Time) Status {
	if actual != nil {
		return StatusCompleted
	}
	if planned.Before(now) {
		return StatusLate
	}
	return StatusUpcoming
}

// EntryView is a schedule entry together with its status at read time.
type EntryView struct {
	model.ScheduleEntry
	Status Status `json:"status"`
}

// Views derives the status of every entry at now.
func Views(entries []model.ScheduleEntry, now time.Time) []EntryView {
	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EntryView{
			ScheduleEntry: e,
			Status:        DeriveStatus(e.PlannedDate, e.ActualDate, now),
		})
	}
	return views
}
