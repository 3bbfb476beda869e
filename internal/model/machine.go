package model

import (
	"time"

	"gorm.io/datatypes"
)

// MachineStatus is the operational state of a machine.
type MachineStatus string

const (
	MachineStatusActive           MachineStatus = "Active"
	MachineStatusInactive         MachineStatus = "Inactive"
	MachineStatusUnderMaintenance MachineStatus = "Under Maintenance"
)

// MaxMachineImages caps the number of images stored per machine.
const MaxMachineImages = 3

// Specification is a filled (title, value) pair seeded from the type's titles.
type Specification struct {
	Title string `json:"title" binding:"required"`
	Value string `json:"value"`
}

// Machine represents one physical unit on the plant floor.
type Machine struct {
	ID             string                             `gorm:"primaryKey;size:36" json:"id"`
	Code           string                             `gorm:"uniqueIndex;size:64;not null" json:"code"`
	Name           string                             `gorm:"size:256;not null" json:"name"`
	MachineTypeID  string                             `gorm:"size:36;not null;index" json:"machineTypeId"`
	PurchaseDate   *time.Time                         `json:"purchaseDate"`
	Plant          string                             `gorm:"size:128;index" json:"plant"`
	Status         MachineStatus                      `gorm:"size:32;not null" json:"status"`
	Images         datatypes.JSONSlice[string]        `json:"images"`
	Description    string                             `gorm:"type:text" json:"description"`
	Specifications datatypes.JSONSlice[Specification] `json:"specifications"`
	CreatedAt      time.Time                          `json:"createdAt"`
	UpdatedAt      time.Time                          `json:"updatedAt"`

	// Associations
	MachineType *MachineType       `gorm:"foreignKey:MachineTypeID" json:"machineType,omitempty"`
	SpareParts  []MachineSparePart `gorm:"foreignKey:MachineID" json:"spareParts,omitempty"`
	Templates   []MachineTemplate  `gorm:"foreignKey:MachineID" json:"templates,omitempty"`
}

// MachineSparePart links a spare part to a machine with the frequencies at
// which it is consumed and the quantity needed per occurrence.
type MachineSparePart struct {
	ID          string                         `gorm:"primaryKey;size:36" json:"id"`
	MachineID   string                         `gorm:"size:36;not null;index" json:"machineId"`
	SparePartID string                         `gorm:"size:36;not null;index" json:"sparePartId"`
	Frequencies datatypes.JSONSlice[Frequency] `json:"frequencies"`
	Quantity    int                            `gorm:"not null" json:"quantity"`

	SparePart *SparePart `gorm:"foreignKey:SparePartID" json:"sparePart,omitempty"`
}
