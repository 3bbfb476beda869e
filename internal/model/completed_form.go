package model

import (
	"time"

	"gorm.io/datatypes"
)

// FilledRequirement is a requirement as it was answered on a checklist.
type FilledRequirement struct {
	TitleEn  string `json:"titleEn" binding:"required"`
	TitleVi  string `json:"titleVi"`
	Accepted bool   `json:"accepted"`
	Note     string `json:"note"`
}

// FilledGroup is a requirement group as it was answered on a checklist.
type FilledGroup struct {
	Title        string              `json:"title" binding:"required"`
	Requirements []FilledRequirement `json:"requirements" binding:"dive"`
}

// CompletedForm is the immutable audit record of one filled checklist.
// Machine fields are copied at fill time so the record stays readable after
// the machine is deleted.
type CompletedForm struct {
	ID              string                           `gorm:"primaryKey;size:36" json:"id"`
	MachineID       string                           `gorm:"size:36;not null;index" json:"machineId"`
	MachineCode     string                           `gorm:"size:64;not null" json:"machineCode"`
	MachineName     string                           `gorm:"size:256" json:"machineName"`
	MachineTypeName string                           `gorm:"size:256" json:"machineTypeName"`
	ScheduleEntryID *string                          `gorm:"size:36;index" json:"scheduleEntryId"`
	Frequency       Frequency                        `gorm:"size:16;not null" json:"frequency"`
	Date            time.Time                        `gorm:"not null" json:"date"`
	StartTime       string                           `gorm:"size:16" json:"startTime"`
	EndTime         string                           `gorm:"size:16" json:"endTime"`
	OperatorNumber  string                           `gorm:"size:64" json:"operatorNumber"`
	PreparedBy      string                           `gorm:"size:128" json:"preparedBy"`
	CheckedBy       string                           `gorm:"size:128" json:"checkedBy"`
	ApprovedBy      string                           `gorm:"size:128" json:"approvedBy"`
	Remarks         string                           `gorm:"type:text" json:"remarks"`
	FilledAt        time.Time                        `gorm:"not null" json:"filledAt"`
	Groups          datatypes.JSONSlice[FilledGroup] `gorm:"column:requirement_groups" json:"groups"`
	CreatedAt       time.Time                        `json:"createdAt"`

	// Populated on read while the machine still exists.
	Machine *Machine `gorm:"foreignKey:MachineID" json:"machine,omitempty"`
}
