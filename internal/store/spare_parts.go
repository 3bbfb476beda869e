package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"maintenance-backend/internal/model"
)

func validateSparePart(p *model.SparePart) error {
	p.Code = strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	if p.Code == "" {
		return validationErr("spare part code is required")
	}
	if p.Name == "" {
		return validationErr("spare part name is required")
	}
	if p.Price.IsNegative() {
		return validationErr("spare part price cannot be negative")
	}
	if p.Quantity < 0 || p.MinQuantity < 0 {
		return validationErr("spare part quantities cannot be negative")
	}
	if p.LeadTimeDays < 0 {
		return validationErr("lead time cannot be negative")
	}
	return nil
}

// ListSpareParts returns a page of spare parts ordered by code.
func (s *gormStore) ListSpareParts(ctx context.Context, filter SparePartFilter) ([]model.SparePart, int64, error) {
	var items []model.SparePart
	var total int64

	query := s.db.WithContext(ctx).Model(&model.SparePart{})
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ? OR LOWER(supplier_name) LIKE ?", p, p, p)
	}
	if filter.Plant != "" {
		query = query.Where("plant = ?", filter.Plant)
	}
	if filter.LowStock {
		query = query.Where("quantity <= min_quantity")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query.Order("code ASC"), filter.PageIndex, filter.PageSize, filter.All).
		Find(&items).Error
	return items, total, err
}

func (s *gormStore) GetSparePart(ctx context.Context, code string) (*model.SparePart, error) {
	var p model.SparePart
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&p).Error; err != nil {
		return nil, wrapNotFound(err, fmt.Sprintf("spare part %q", code))
	}
	return &p, nil
}

func (s *gormStore) CreateSparePart(ctx context.Context, part *model.SparePart) error {
	if err := validateSparePart(part); err != nil {
		return err
	}
	part.ID = newID()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dup, err := exists(tx, &model.SparePart{}, "code = ?", part.Code)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("spare part %q already exists: %w", part.Code, ErrConflict)
		}
		if err := tx.Create(part).Error; err != nil {
			return fmt.Errorf("failed to create spare part %q: %w", part.Code, err)
		}
		return nil
	})
}

// UpdateSparePart overwrites the part. An empty ImageURL keeps the stored image.
func (s *gormStore) UpdateSparePart(ctx context.Context, code string, part *model.SparePart) (*model.SparePart, error) {
	if strings.TrimSpace(part.Code) == "" {
		part.Code = code
	}
	if err := validateSparePart(part); err != nil {
		return nil, err
	}

	var current model.SparePart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("code = ?", code).First(&current).Error; err != nil {
			return wrapNotFound(err, fmt.Sprintf("spare part %q", code))
		}
		if part.Code != current.Code {
			dup, err := exists(tx, &model.SparePart{}, "code = ?", part.Code)
			if err != nil {
				return err
			}
			if dup {
				return fmt.Errorf("spare part %q already exists: %w", part.Code, ErrConflict)
			}
		}
		updates := map[string]any{
			"code":             part.Code,
			"name":             part.Name,
			"price":            part.Price,
			"supplier_name":    part.SupplierName,
			"supplier_contact": part.SupplierContact,
			"supplier_phone":   part.SupplierPhone,
			"supplier_email":   part.SupplierEmail,
			"lead_time_days":   part.LeadTimeDays,
			"quantity":         part.Quantity,
			"min_quantity":     part.MinQuantity,
			"usage_per_month":  part.UsagePerMonth,
			"plant":            part.Plant,
		}
		if part.ImageURL != "" {
			updates["image_url"] = part.ImageURL
		}
		if err := tx.Model(&current).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update spare part %q: %w", code, err)
		}
		return tx.Where("id = ?", current.ID).First(&current).Error
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}

// DeleteSparePart removes the part together with its machine associations.
func (s *gormStore) DeleteSparePart(ctx context.Context, code string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.SparePart
		if err := tx.Where("code = ?", code).First(&p).Error; err != nil {
			return wrapNotFound(err, fmt.Sprintf("spare part %q", code))
		}
		if err := tx.Where("spare_part_id = ?", p.ID).Delete(&model.MachineSparePart{}).Error; err != nil {
			return fmt.Errorf("failed to unlink spare part %q: %w", code, err)
		}
		return tx.Delete(&p).Error
	})
}
