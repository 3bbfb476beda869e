package model

import "time"

// ScheduleEntry is one planned maintenance occurrence for a machine.
// Its status is derived from PlannedDate and ActualDate on read.
type ScheduleEntry struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	MachineID       string     `gorm:"size:36;not null;index:idx_schedule_machine_freq" json:"machineId"`
	Frequency       Frequency  `gorm:"size:16;not null;index:idx_schedule_machine_freq" json:"frequency"`
	PlannedDate     time.Time  `gorm:"not null;index" json:"plannedDate"`
	ActualDate      *time.Time `json:"actualDate"`
	CompletedFormID *string    `gorm:"size:36" json:"completedFormId"`
	Version         int        `gorm:"not null" json:"version"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
