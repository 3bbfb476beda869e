package store

import (
	"time"

	"maintenance-backend/internal/model"
)

// TemplateInput is the checklist content for one frequency.
type TemplateInput struct {
	Frequency model.Frequency
	Groups    []model.RequirementGroup
}

// MachineTypeInput carries the fields of a machine type and its five templates.
type MachineTypeInput struct {
	Code                string
	Name                string
	Description         string
	SpecificationTitles []string
	Templates           []TemplateInput
}

// TypeFilter narrows a machine type listing.
type TypeFilter struct {
	Search    string
	PageIndex int
	PageSize  int
	All       bool
}

// SparePartLink associates a spare part (by code) with a machine.
type SparePartLink struct {
	SparePartCode string
	Frequencies   []model.Frequency
	Quantity      int
}

// MachineInput carries the writable fields of a machine. A nil Templates or
// SpareParts leaves the stored rows untouched on update.
type MachineInput struct {
	Code            string
	Name            string
	MachineTypeCode string
	PurchaseDate    *time.Time
	Plant           string
	Status          model.MachineStatus
	Images          []string
	Description     string
	Specifications  []model.Specification
	SpareParts      []SparePartLink
	Templates       []TemplateInput
}

// MachineFilter narrows a machine listing.
type MachineFilter struct {
	Search          string
	Plant           string
	Status          string
	MachineTypeCode string
	PageIndex       int
	PageSize        int
	All             bool
}

// EntryPatch describes a partial update of one schedule entry. When Version
// is set the update only applies if the stored version still matches.
type EntryPatch struct {
	Frequency       *model.Frequency
	PlannedDate     *time.Time
	ActualDate      *time.Time
	ClearActualDate bool
	Version         *int
}

// CalendarFilter selects machines and the date window of the planning grid.
type CalendarFilter struct {
	Frequency       model.Frequency
	Plant           string
	MachineCode     string
	MachineTypeCode string
	From            time.Time
	To              time.Time
}

// MachineSchedule is a machine with the schedule entries inside a window.
type MachineSchedule struct {
	Machine model.Machine
	Entries []model.ScheduleEntry
}

// FormSubmission is a filled checklist. ScheduleID is preferred; without it
// the earliest open entry of the same frequency is completed.
type FormSubmission struct {
	MachineID      string
	MachineCode    string
	ScheduleID     string
	Frequency      model.Frequency
	Date           time.Time
	StartTime      string
	EndTime        string
	OperatorNumber string
	PreparedBy     string
	CheckedBy      string
	ApprovedBy     string
	Remarks        string
	Groups         []model.FilledGroup
}

// SparePartFilter narrows a spare part listing.
type SparePartFilter struct {
	Search    string
	Plant     string
	LowStock  bool
	PageIndex int
	PageSize  int
	All       bool
}

// RequestInput opens a breakdown ticket.
type RequestInput struct {
	MachineCode string
	Area        string
	Plant       string
	Shift       string
	ReportedBy  string
	ReceivedBy  string
	Priority    model.RequestPriority
	Problem     string
	RequestedAt *time.Time
}

// RequestPatch updates a breakdown ticket; nil fields are left unchanged.
type RequestPatch struct {
	Area               *string
	Shift              *string
	ReceivedBy         *string
	Priority           *model.RequestPriority
	Problem            *string
	Status             *model.RequestStatus
	CorrectiveAction   *string
	StartTime          *time.Time
	EndTime            *time.Time
	DowntimeHours      *float64
	Rectified          *bool
	ProductionSignOff  *bool
	MaintenanceSignOff *bool
	QualitySignOff     *bool
}

// RequestFilter narrows a breakdown ticket listing.
type RequestFilter struct {
	Search    string
	Plant     string
	Status    string
	Priority  string
	PageIndex int
	PageSize  int
	All       bool
}
