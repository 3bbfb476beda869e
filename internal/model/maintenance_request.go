package model

import "time"

// RequestPriority is the urgency of a breakdown ticket.
type RequestPriority string

const (
	PriorityNormal RequestPriority = "Normal"
	PriorityHigh   RequestPriority = "High"
)

// RequestStatus is the manually transitioned state of a breakdown ticket.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "Pending"
	RequestStatusInProgress RequestStatus = "In Progress"
	RequestStatusCompleted  RequestStatus = "Completed"
	RequestStatusClosed     RequestStatus = "Closed"
)

// MaintenanceRequest is an unplanned-service (breakdown) ticket. Machine code
// and plant are copied from the machine when the ticket is opened.
type MaintenanceRequest struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	Serial       string          `gorm:"uniqueIndex;size:16;not null" json:"serial"`
	Area         string          `gorm:"size:128" json:"area"`
	Plant        string          `gorm:"size:128;index" json:"plant"`
	MachineID    string          `gorm:"size:36;not null;index" json:"machineId"`
	MachineCode  string          `gorm:"size:64;not null" json:"machineCode"`
	MachinePlant string          `gorm:"size:128" json:"machinePlant"`
	Shift        string          `gorm:"size:32" json:"shift"`
	ReportedBy   string          `gorm:"size:128" json:"reportedBy"`
	ReceivedBy   string          `gorm:"size:128" json:"receivedBy"`
	Priority     RequestPriority `gorm:"size:16;not null" json:"priority"`
	Problem      string          `gorm:"type:text;not null" json:"problem"`
	Status       RequestStatus   `gorm:"size:16;not null;index" json:"status"`
	RequestedAt  time.Time       `gorm:"not null" json:"requestedAt"`

	CorrectiveAction   string     `gorm:"type:text" json:"correctiveAction"`
	StartTime          *time.Time `json:"startTime"`
	EndTime            *time.Time `json:"endTime"`
	DowntimeHours      float64    `json:"downtimeHours"`
	Rectified          *bool      `json:"rectified"`
	ProductionSignOff  bool       `json:"productionSignOff"`
	MaintenanceSignOff bool       `json:"maintenanceSignOff"`
	QualitySignOff     bool       `json:"qualitySignOff"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
