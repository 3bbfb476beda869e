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

func validateTypeInput(in MachineTypeInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return validationErr("machine type code is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return validationErr("machine type name is required")
	}
	return validateTypeTemplates(in.Templates)
}

func specTitles(titles []string) datatypes.JSONSlice[string] {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return datatypes.JSONSlice[string](out)
}

// ListMachineTypes returns a page of machine types ordered by code.
func (s *gormStore) ListMachineTypes(ctx context.Context, filter TypeFilter) ([]model.MachineType, int64, error) {
	var items []model.MachineType
	var total int64

	query := s.db.WithContext(ctx).Model(&model.MachineType{})
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", p, p)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query.Order("code ASC"), filter.PageIndex, filter.PageSize, filter.All).
		Find(&items).Error
	return items, total, err
}

// GetMachineType returns a machine type with its templates.
func (s *gormStore) GetMachineType(ctx context.Context, code string) (*model.MachineType, error) {
	return getMachineType(s.db.WithContext(ctx), code, true)
}

func getMachineType(tx *gorm.DB, code string, withTemplates bool) (*model.MachineType, error) {
	var mt model.MachineType
	q := tx
	if withTemplates {
		q = q.Preload("Templates")
	}
	if err := q.Where("code = ?", code).First(&mt).Error; err != nil {
		return nil, wrapNotFound(err, fmt.Sprintf("machine type %q", code))
	}
	sortTypeTemplates(mt.Templates)
	return &mt, nil
}

// CreateMachineType writes the type and its five templates in one transaction.
func (s *gormStore) CreateMachineType(ctx context.Context, in MachineTypeInput) (*model.MachineType, error) {
	if err := validateTypeInput(in); err != nil {
		return nil, err
	}

	mt := &model.MachineType{
		ID:                  newID(),
		Code:                strings.TrimSpace(in.Code),
		Name:                strings.TrimSpace(in.Name),
		Description:         in.Description,
		SpecificationTitles: specTitles(in.SpecificationTitles),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dup, err := exists(tx, &model.MachineType{}, "code = ?", mt.Code)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("machine type %q already exists: %w", mt.Code, ErrConflict)
		}
		if err := tx.Omit(clause.Associations).Create(mt).Error; err != nil {
			return fmt.Errorf("failed to create machine type %q: %w", mt.Code, err)
		}
		return upsertTypeTemplates(tx, mt.ID, in.Templates)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("machine type created", zap.String("code", mt.Code))
	return s.GetMachineType(ctx, mt.Code)
}

// UpdateMachineType rewrites the type and upserts its five templates.
func (s *gormStore) UpdateMachineType(ctx context.Context, code string, in MachineTypeInput) (*model.MachineType, error) {
	if strings.TrimSpace(in.Code) == "" {
		in.Code = code
	}
	if err := validateTypeInput(in); err != nil {
		return nil, err
	}
	newCode := strings.TrimSpace(in.Code)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mt, err := getMachineType(tx, code, false)
		if err != nil {
			return err
		}
		if newCode != mt.Code {
			dup, err := exists(tx, &model.MachineType{}, "code = ?", newCode)
			if err != nil {
				return err
			}
			if dup {
				return fmt.Errorf("machine type %q already exists: %w", newCode, ErrConflict)
			}
		}
		if err := tx.Model(mt).Updates(map[string]any{
			"code":                 newCode,
			"name":                 strings.TrimSpace(in.Name),
			"description":          in.Description,
			"specification_titles": specTitles(in.SpecificationTitles),
		}).Error; err != nil {
			return fmt.Errorf("failed to update machine type %q: %w", code, err)
		}
		return upsertTypeTemplates(tx, mt.ID, in.Templates)
	})
	if err != nil {
		return nil, err
	}
	return s.GetMachineType(ctx, newCode)
}

// DeleteMachineType removes the type and its templates. Types still
// referenced by machines are rejected so the counter never points at nothing.
func (s *gormStore) DeleteMachineType(ctx context.Context, code string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mt, err := getMachineType(tx, code, false)
		if err != nil {
			return err
		}
		if mt.TotalMachines > 0 {
			return validationErr("machine type %q still has %d machines", code, mt.TotalMachines)
		}
		if err := tx.Where("machine_type_id = ?", mt.ID).Delete(&model.TypeTemplate{}).Error; err != nil {
			return fmt.Errorf("failed to delete templates of machine type %q: %w", code, err)
		}
		if err := tx.Delete(mt).Error; err != nil {
			return fmt.Errorf("failed to delete machine type %q: %w", code, err)
		}
		return nil
	})
}

// ListTypeTemplates returns the templates of a machine type in frequency order.
func (s *gormStore) ListTypeTemplates(ctx context.Context, code string) ([]model.TypeTemplate, error) {
	mt, err := s.GetMachineType(ctx, code)
	if err != nil {
		return nil, err
	}
	return mt.Templates, nil
}
