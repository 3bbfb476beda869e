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

func validateSubmission(sub FormSubmission) error {
	if strings.TrimSpace(sub.MachineID) == "" && strings.TrimSpace(sub.MachineCode) == "" {
		return validationErr("machine is required")
	}
	if !sub.Frequency.Valid() {
		return validationErr("unknown frequency %q", sub.Frequency)
	}
	for _, g := range sub.Groups {
		if strings.TrimSpace(g.Title) == "" {
			return validationErr("requirement group title is required")
		}
	}
	return nil
}

// CreateCompletedForm stores the filled checklist and completes a schedule
// entry: the one named by ScheduleID, or else the earliest open entry of the
// same frequency. A form without a matching open entry is kept unlinked.
func (s *gormStore) CreateCompletedForm(ctx context.Context, sub FormSubmission) (*model.CompletedForm, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	now := s.now()
	form := &model.CompletedForm{
		ID:             newID(),
		Frequency:      sub.Frequency,
		Date:           sub.Date,
		StartTime:      sub.StartTime,
		EndTime:        sub.EndTime,
		OperatorNumber: sub.OperatorNumber,
		PreparedBy:     sub.PreparedBy,
		CheckedBy:      sub.CheckedBy,
		ApprovedBy:     sub.ApprovedBy,
		Remarks:        sub.Remarks,
		FilledAt:       now,
		Groups:         datatypes.JSONSlice[model.FilledGroup](copyFilledGroups(sub.Groups)),
	}
	if form.Date.IsZero() {
		form.Date = now
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Machine
		q := tx.Preload("MachineType")
		if sub.MachineID != "" {
			q = q.Where("id = ?", sub.MachineID)
		} else {
			q = q.Where("code = ?", sub.MachineCode)
		}
		if err := q.First(&m).Error; err != nil {
			return wrapNotFound(err, "machine")
		}
		form.MachineID = m.ID
		form.MachineCode = m.Code
		form.MachineName = m.Name
		if m.MachineType != nil {
			form.MachineTypeName = m.MachineType.Name
		}

		var entry *model.ScheduleEntry
		if sub.ScheduleID != "" {
			var e model.ScheduleEntry
			if err := tx.Where("id = ? AND machine_id = ?", sub.ScheduleID, m.ID).First(&e).Error; err != nil {
				return wrapNotFound(err, fmt.Sprintf("schedule entry %q", sub.ScheduleID))
			}
			entry = &e
		} else {
			e, err := openEntry(tx, m.ID, sub.Frequency)
			if err != nil {
				return fmt.Errorf("failed to find open schedule entry: %w", err)
			}
			entry = e
		}
		if entry != nil {
			form.ScheduleEntryID = &entry.ID
		}

		if err := tx.Omit(clause.Associations).Create(form).Error; err != nil {
			return fmt.Errorf("failed to create completed form: %w", err)
		}
		if entry == nil {
			return nil
		}

		// Re-completing an entry overwrites the previous link.
		res := tx.Model(&model.ScheduleEntry{}).
			Where("id = ?", entry.ID).
			Updates(map[string]any{
				"actual_date":       now,
				"completed_form_id": form.ID,
				"version":           gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to complete schedule entry %q: %w", entry.ID, res.Error)
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("schedule entry %q disappeared: %w", entry.ID, ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("form", form.ID),
		zap.String("machine", form.MachineCode),
		zap.String("frequency", string(form.Frequency)),
	}
	if form.ScheduleEntryID != nil {
		fields = append(fields, zap.String("entry", *form.ScheduleEntryID))
	}
	s.log.Info("completed form stored", fields...)
	return form, nil
}

// GetCompletedForm returns a form with its machine and type populated while
// the machine still exists.
func (s *gormStore) GetCompletedForm(ctx context.Context, id string) (*model.CompletedForm, error) {
	var form model.CompletedForm
	err := s.db.WithContext(ctx).
		Preload("Machine.MachineType").
		Where("id = ?", id).
		First(&form).Error
	if err != nil {
		return nil, wrapNotFound(err, fmt.Sprintf("completed form %q", id))
	}
	return &form, nil
}

// ListCompletedForms returns the forms filled for a machine, newest first.
func (s *gormStore) ListCompletedForms(ctx context.Context, machineCode string) ([]model.CompletedForm, error) {
	m, err := findMachine(s.db.WithContext(ctx), machineCode)
	if err != nil {
		return nil, err
	}
	var forms []model.CompletedForm
	err = s.db.WithContext(ctx).
		Where("machine_id = ?", m.ID).
		Order("filled_at DESC, id ASC").
		Find(&forms).Error
	return forms, err
}
