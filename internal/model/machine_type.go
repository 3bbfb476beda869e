package model

import (
	"time"

	"gorm.io/datatypes"
)

// MachineType is a category of machine, e.g. "Injection Molder".
type MachineType struct {
	ID                  string                      `gorm:"primaryKey;size:36" json:"id"`
	Code                string                      `gorm:"uniqueIndex;size:64;not null" json:"code"`
	Name                string                      `gorm:"size:256;not null" json:"name"`
	Description         string                      `gorm:"type:text" json:"description"`
	SpecificationTitles datatypes.JSONSlice[string] `json:"specificationTitles"`
	// TotalMachines is maintained incrementally by machine writes.
	TotalMachines int64     `gorm:"not null;default:0" json:"totalMachines"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Associations
	Templates []TypeTemplate `gorm:"foreignKey:MachineTypeID" json:"templates,omitempty"`
}

// Requirement is a single checklist line.
type Requirement struct {
	TitleEn string `json:"titleEn" binding:"required"`
	TitleVi string `json:"titleVi"`
	Note    string `json:"note"`
}

// RequirementGroup is a titled, ordered set of requirements.
type RequirementGroup struct {
	Title        string        `json:"title" binding:"required"`
	Requirements []Requirement `json:"requirements" binding:"dive"`
}

// TypeTemplate is the checklist of a machine type for one frequency.
type TypeTemplate struct {
	ID            string                                `gorm:"primaryKey;size:36" json:"id"`
	MachineTypeID string                                `gorm:"size:36;not null;uniqueIndex:idx_type_templates_type_freq" json:"machineTypeId"`
	Frequency     Frequency                             `gorm:"size:16;not null;uniqueIndex:idx_type_templates_type_freq" json:"frequency"`
	Groups        datatypes.JSONSlice[RequirementGroup] `gorm:"column:requirement_groups" json:"groups"`
	CreatedAt     time.Time                             `json:"createdAt"`
	UpdatedAt     time.Time                             `json:"updatedAt"`
}

// MachineTemplate is a per-machine copy of a checklist, editable
// independently of the type-level template after the machine is created.
type MachineTemplate struct {
	ID        string                                `gorm:"primaryKey;size:36" json:"id"`
	MachineID string                                `gorm:"size:36;not null;uniqueIndex:idx_machine_templates_machine_freq" json:"machineId"`
	Frequency Frequency                             `gorm:"size:16;not null;uniqueIndex:idx_machine_templates_machine_freq" json:"frequency"`
	Groups    datatypes.JSONSlice[RequirementGroup] `gorm:"column:requirement_groups" json:"groups"`
	CreatedAt time.Time                             `json:"createdAt"`
	UpdatedAt time.Time                             `json:"updatedAt"`
}
