package store

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"maintenance-backend/internal/model"
)

func validMachineStatus(st model.MachineStatus) bool {
	switch st {
	case model.MachineStatusActive, model.MachineStatusInactive, model.MachineStatusUnderMaintenance:
		return true
	}
	return false
}

func validateMachineInput(in *MachineInput, creating bool) error {
	if strings.TrimSpace(in.Code) == "" {
		return validationErr("machine code is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return validationErr("machine name is required")
	}
	if creating && strings.TrimSpace(in.MachineTypeCode) == "" {
		return validationErr("machine type is required")
	}
	if in.Status == "" {
		in.Status = model.MachineStatusActive
	}
	if !validMachineStatus(in.Status) {
		return validationErr("unknown machine status %q", in.Status)
	}
	if len(in.Images) > model.MaxMachineImages {
		return validationErr("a machine can hold at most %d images", model.MaxMachineImages)
	}
	for _, link := range in.SpareParts {
		if link.SparePartCode == "" {
			return validationErr("spare part code is required")
		}
		if link.Quantity < 1 {
			return validationErr("spare part %q quantity must be at least 1", link.SparePartCode)
		}
		for _, f := range link.Frequencies {
			if !f.Valid() {
				return validationErr("unknown frequency %q for spare part %q", f, link.SparePartCode)
			}
		}
	}
	return validateTemplateSet(in.Templates)
}

// ListMachines returns a page of machines with their type populated.
func (s *gormStore) ListMachines(ctx context.Context, filter MachineFilter) ([]model.Machine, int64, error) {
	var items []model.Machine
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Machine{})
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", p, p)
	}
	if filter.Plant != "" {
		query = query.Where("plant = ?", filter.Plant)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MachineTypeCode != "" {
		query = query.Where("machine_type_id IN (?)",
			s.db.WithContext(ctx).Model(&model.MachineType{}).Select("id").Where("code = ?", filter.MachineTypeCode))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query.Preload("MachineType").Order("code ASC"), filter.PageIndex, filter.PageSize, filter.All).
		Find(&items).Error
	return items, total, err
}

// GetMachine returns a machine with its type, spare parts and templates.
func (s *gormStore) GetMachine(ctx context.Context, code string) (*model.Machine, error) {
	var m model.Machine
	err := s.db.WithContext(ctx).
		Preload("MachineType").
		Preload("SpareParts.SparePart").
		Preload("Templates").
		Where("code = ?", code).
		First(&m).Error
	if err != nil {
		return nil, wrapNotFound(err, fmt.Sprintf("machine %q", code))
	}
	sortMachineTemplates(m.Templates)
	return &m, nil
}

func findMachine(tx *gorm.DB, code string) (*model.Machine, error) {
	var m model.Machine
	if err := tx.Where("code = ?", code).First(&m).Error; err != nil {
		return nil, wrapNotFound(err, fmt.Sprintf("machine %q", code))
	}
	return &m, nil
}

// CreateMachine writes the machine, its templates and spare-part links and
// increments its type's counter in one transaction. Missing specifications
// and templates are seeded from the machine type.
func (s *gormStore) CreateMachine(ctx context.Context, in MachineInput) (*model.Machine, error) {
	if err := validateMachineInput(&in, true); err != nil {
		return nil, err
	}

	m := &model.Machine{
		ID:           newID(),
		Code:         strings.TrimSpace(in.Code),
		Name:         strings.TrimSpace(in.Name),
		PurchaseDate: in.PurchaseDate,
		Plant:        in.Plant,
		Status:       in.Status,
		Images:       datatypes.JSONSlice[string](append([]string{}, in.Images...)),
		Description:  in.Description,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dup, err := exists(tx, &model.Machine{}, "code = ?", m.Code)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("machine %q already exists: %w", m.Code, ErrConflict)
		}

		mt, err := getMachineType(tx, in.MachineTypeCode, true)
		if err != nil {
			return err
		}
		m.MachineTypeID = mt.ID
		m.Specifications = seedSpecifications(in.Specifications, mt.SpecificationTitles)

		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return fmt.Errorf("failed to create machine %q: %w", m.Code, err)
		}

		templates := in.Templates
		if len(templates) == 0 {
			templates = templatesFromType(mt.Templates)
		}
		if err := upsertMachineTemplates(tx, m.ID, templates); err != nil {
			return err
		}
		if err := replaceSpareParts(tx, m.ID, in.SpareParts); err != nil {
			return err
		}
		return adjustTypeCount(tx, mt.ID, 1)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("machine created", zap.String("code", m.Code), zap.String("type", in.MachineTypeCode))
	return s.GetMachine(ctx, m.Code)
}

// UpdateMachine rewrites the machine. A type change moves one unit between
// the two type counters inside the same transaction.
func (s *gormStore) UpdateMachine(ctx context.Context, code string, in MachineInput) (*model.Machine, error) {
	if strings.TrimSpace(in.Code) == "" {
		in.Code = code
	}
	if err := validateMachineInput(&in, false); err != nil {
		return nil, err
	}
	newCode := strings.TrimSpace(in.Code)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMachine(tx, code)
		if err != nil {
			return err
		}
		if newCode != m.Code {
			dup, err := exists(tx, &model.Machine{}, "code = ?", newCode)
			if err != nil {
				return err
			}
			if dup {
				return fmt.Errorf("machine %q already exists: %w", newCode, ErrConflict)
			}
		}

		oldTypeID := m.MachineTypeID
		newTypeID := oldTypeID
		if in.MachineTypeCode != "" {
			mt, err := getMachineType(tx, in.MachineTypeCode, false)
			if err != nil {
				return err
			}
			newTypeID = mt.ID
		}

		updates := map[string]any{
			"code":            newCode,
			"name":            strings.TrimSpace(in.Name),
			"machine_type_id": newTypeID,
			"purchase_date":   in.PurchaseDate,
			"plant":           in.Plant,
			"status":          in.Status,
			"description":     in.Description,
		}
		if in.Images != nil {
			updates["images"] = datatypes.JSONSlice[string](append([]string{}, in.Images...))
		}
		if in.Specifications != nil {
			updates["specifications"] = datatypes.JSONSlice[model.Specification](append([]model.Specification{}, in.Specifications...))
		}
		if err := tx.Model(&model.Machine{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update machine %q: %w", code, err)
		}

		if err := moveTypeCount(tx, oldTypeID, newTypeID); err != nil {
			return err
		}
		if in.SpareParts != nil {
			if err := replaceSpareParts(tx, m.ID, in.SpareParts); err != nil {
				return err
			}
		}
		if in.Templates != nil {
			return upsertMachineTemplates(tx, m.ID, in.Templates)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetMachine(ctx, newCode)
}

// DeleteMachine removes the machine with its templates, schedule and spare
// part links and decrements the type counter. Completed forms are kept.
func (s *gormStore) DeleteMachine(ctx context.Context, code string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMachine(tx, code)
		if err != nil {
			return err
		}
		if err := adjustTypeCount(tx, m.MachineTypeID, -1); err != nil {
			return err
		}
		if err := tx.Where("machine_id = ?", m.ID).Delete(&model.MachineTemplate{}).Error; err != nil {
			return fmt.Errorf("failed to delete templates of machine %q: %w", code, err)
		}
		if err := tx.Where("machine_id = ?", m.ID).Delete(&model.ScheduleEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete schedule of machine %q: %w", code, err)
		}
		if err := tx.Where("machine_id = ?", m.ID).Delete(&model.MachineSparePart{}).Error; err != nil {
			return fmt.Errorf("failed to delete spare part links of machine %q: %w", code, err)
		}
		if err := tx.Delete(m).Error; err != nil {
			return fmt.Errorf("failed to delete machine %q: %w", code, err)
		}
		return nil
	})
	if err == nil {
		s.log.Info("machine deleted", zap.String("code", code))
	}
	return err
}

// ListMachineTemplates returns the per-machine templates in frequency order.
func (s *gormStore) ListMachineTemplates(ctx context.Context, code string) ([]model.MachineTemplate, error) {
	m, err := findMachine(s.db.WithContext(ctx), code)
	if err != nil {
		return nil, err
	}
	var templates []model.MachineTemplate
	if err := s.db.WithContext(ctx).Where("machine_id = ?", m.ID).Find(&templates).Error; err != nil {
		return nil, err
	}
	sortMachineTemplates(templates)
	return templates, nil
}

// UpdateMachineTemplate replaces the checklist of one machine and frequency.
func (s *gormStore) UpdateMachineTemplate(ctx context.Context, code string, f model.Frequency, groups []model.RequirementGroup) (*model.MachineTemplate, error) {
	if !f.Valid() {
		return nil, validationErr("unknown template frequency %q", f)
	}

	var row model.MachineTemplate
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMachine(tx, code)
		if err != nil {
			return err
		}
		if err := upsertMachineTemplates(tx, m.ID, []TemplateInput{{Frequency: f, Groups: groups}}); err != nil {
			return err
		}
		return tx.Where("machine_id = ? AND frequency = ?", m.ID, f).First(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func seedSpecifications(given []model.Specification, titles []string) datatypes.JSONSlice[model.Specification] {
	if len(given) > 0 {
		return datatypes.JSONSlice[model.Specification](append([]model.Specification{}, given...))
	}
	specs := make([]model.Specification, 0, len(titles))
	for _, t := range titles {
		specs = append(specs, model.Specification{Title: t})
	}
	return datatypes.JSONSlice[model.Specification](specs)
}

func templatesFromType(ts []model.TypeTemplate) []TemplateInput {
	out := make([]TemplateInput, 0, len(ts))
	for _, t := range ts {
		out = append(out, TemplateInput{Frequency: t.Frequency, Groups: t.Groups})
	}
	return out
}

// replaceSpareParts swaps the machine's spare part links for links.
func replaceSpareParts(tx *gorm.DB, machineID string, links []SparePartLink) error {
	if err := tx.Where("machine_id = ?", machineID).Delete(&model.MachineSparePart{}).Error; err != nil {
		return fmt.Errorf("failed to clear spare part links: %w", err)
	}
	for _, link := range links {
		var part model.SparePart
		if err := tx.Where("code = ?", link.SparePartCode).First(&part).Error; err != nil {
			return wrapNotFound(err, fmt.Sprintf("spare part %q", link.SparePartCode))
		}
		row := model.MachineSparePart{
			ID:          newID(),
			MachineID:   machineID,
			SparePartID: part.ID,
			Frequencies: datatypes.JSONSlice[model.Frequency](append([]model.Frequency{}, link.Frequencies...)),
			Quantity:    link.Quantity,
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to link spare part %q: %w", link.SparePartCode, err)
		}
	}
	return nil
}
