package store

import (
	"fmt"
	"sort"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"maintenance-backend/internal/model"
)

func frequencyRank(f model.Frequency) int {
	for i, known := range model.Frequencies {
		if known == f {
			return i
		}
	}
	return len(model.Frequencies)
}

// validateTypeTemplates requires exactly one template per frequency.
func validateTypeTemplates(templates []TemplateInput) error {
	if len(templates) != len(model.Frequencies) {
		return validationErr("exactly %d maintenance templates are required, got %d", len(model.Frequencies), len(templates))
	}
	return validateTemplateSet(templates)
}

// validateTemplateSet allows up to one template per frequency.
func validateTemplateSet(templates []TemplateInput) error {
	if len(templates) > len(model.Frequencies) {
		return validationErr("at most %d maintenance templates are allowed, got %d", len(model.Frequencies), len(templates))
	}
	seen := make(map[model.Frequency]bool, len(templates))
	for _, t := range templates {
		if !t.Frequency.Valid() {
			return validationErr("unknown template frequency %q", t.Frequency)
		}
		if seen[t.Frequency] {
			return validationErr("duplicate template for frequency %s", t.Frequency)
		}
		seen[t.Frequency] = true
	}
	return nil
}

func copyGroups(groups []model.RequirementGroup) []model.RequirementGroup {
	out := make([]model.RequirementGroup, len(groups))
	for i, g := range groups {
		out[i] = model.RequirementGroup{
			Title:        g.Title,
			Requirements: append([]model.Requirement{}, g.Requirements...),
		}
	}
	return out
}

func copyFilledGroups(groups []model.FilledGroup) []model.FilledGroup {
	out := make([]model.FilledGroup, len(groups))
	for i, g := range groups {
		out[i] = model.FilledGroup{
			Title:        g.Title,
			Requirements: append([]model.FilledRequirement{}, g.Requirements...),
		}
	}
	return out
}

// upsertTypeTemplates writes templates keyed by (machine type, frequency) so
// repeated saves update in place.
func upsertTypeTemplates(tx *gorm.DB, typeID string, templates []TemplateInput) error {
	for _, t := range templates {
		row := model.TypeTemplate{
			ID:            newID(),
			MachineTypeID: typeID,
			Frequency:     t.Frequency,
			Groups:        datatypes.JSONSlice[model.RequirementGroup](copyGroups(t.Groups)),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "machine_type_id"}, {Name: "frequency"}},
			DoUpdates: clause.AssignmentColumns([]string{"requirement_groups", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save %s template: %w", t.Frequency, err)
		}
	}
	return nil
}

// upsertMachineTemplates writes templates keyed by (machine, frequency).
func upsertMachineTemplates(tx *gorm.DB, machineID string, templates []TemplateInput) error {
	for _, t := range templates {
		row := model.MachineTemplate{
			ID:        newID(),
			MachineID: machineID,
			Frequency: t.Frequency,
			Groups:    datatypes.JSONSlice[model.RequirementGroup](copyGroups(t.Groups)),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "machine_id"}, {Name: "frequency"}},
			DoUpdates: clause.AssignmentColumns([]string{"requirement_groups", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save %s machine template: %w", t.Frequency, err)
		}
	}
	return nil
}

func sortTypeTemplates(ts []model.TypeTemplate) {
	sort.SliceStable(ts, func(i, j int) bool {
		return frequencyRank(ts[i].Frequency) < frequencyRank(ts[j].Frequency)
	})
}

func sortMachineTemplates(ts []model.MachineTemplate) {
	sort.SliceStable(ts, func(i, j int) bool {
		return frequencyRank(ts[i].Frequency) < frequencyRank(ts[j].Frequency)
	})
}
