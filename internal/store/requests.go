package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"maintenance-backend/internal/model"
)

func validPriority(p model.RequestPriority) bool {
	return p == model.PriorityNormal || p == model.PriorityHigh
}

func validRequestStatus(st model.RequestStatus) bool {
	switch st {
	case model.RequestStatusPending, model.RequestStatusInProgress,
		model.RequestStatusCompleted, model.RequestStatusClosed:
		return true
	}
	return false
}

// nextSerial returns the zero-padded successor of the highest serial in use.
func nextSerial(tx *gorm.DB) (string, error) {
	var last model.MaintenanceRequest
	err := tx.Select("serial").Order("LENGTH(serial) DESC, serial DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Sprintf("%04d", 1), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read last serial: %w", err)
	}
	n, err := strconv.Atoi(last.Serial)
	if err != nil {
		return "", fmt.Errorf("malformed serial %q: %w", last.Serial, err)
	}
	return fmt.Sprintf("%04d", n+1), nil
}

// ListRequests returns a page of breakdown tickets, newest first.
func (s *gormStore) ListRequests(ctx context.Context, filter RequestFilter) ([]model.MaintenanceRequest, int64, error) {
	var items []model.MaintenanceRequest
	var total int64

	query := s.db.WithContext(ctx).Model(&model.MaintenanceRequest{})
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(serial) LIKE ? OR LOWER(machine_code) LIKE ? OR LOWER(problem) LIKE ?", p, p, p)
	}
	if filter.Plant != "" {
		query = query.Where("plant = ?", filter.Plant)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query.Order("requested_at DESC, serial DESC"), filter.PageIndex, filter.PageSize, filter.All).
		Find(&items).Error
	return items, total, err
}

func (s *gormStore) GetRequest(ctx context.Context, id string) (*model.MaintenanceRequest, error) {
	var r model.MaintenanceRequest
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, wrapNotFound(err, fmt.Sprintf("maintenance request %q", id))
	}
	return &r, nil
}

// CreateRequest opens a Pending ticket with the next serial number.
func (s *gormStore) CreateRequest(ctx context.Context, in RequestInput) (*model.MaintenanceRequest, error) {
	if strings.TrimSpace(in.MachineCode) == "" {
		return nil, validationErr("machine is required")
	}
	if strings.TrimSpace(in.Problem) == "" {
		return nil, validationErr("problem description is required")
	}
	if in.Priority == "" {
		in.Priority = model.PriorityNormal
	}
	if !validPriority(in.Priority) {
		return nil, validationErr("unknown priority %q", in.Priority)
	}

	r := &model.MaintenanceRequest{
		ID:          newID(),
		Area:        in.Area,
		Plant:       in.Plant,
		Shift:       in.Shift,
		ReportedBy:  in.ReportedBy,
		ReceivedBy:  in.ReceivedBy,
		Priority:    in.Priority,
		Problem:     strings.TrimSpace(in.Problem),
		Status:      model.RequestStatusPending,
		RequestedAt: s.now(),
	}
	if in.RequestedAt != nil {
		r.RequestedAt = in.RequestedAt.UTC()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMachine(tx, in.MachineCode)
		if err != nil {
			return err
		}
		r.MachineID = m.ID
		r.MachineCode = m.Code
		r.MachinePlant = m.Plant
		if r.Plant == "" {
			r.Plant = m.Plant
		}

		if r.Serial, err = nextSerial(tx); err != nil {
			return err
		}
		if err := tx.Create(r).Error; err != nil {
			return fmt.Errorf("failed to create maintenance request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("maintenance request opened",
		zap.String("serial", r.Serial),
		zap.String("machine", r.MachineCode),
		zap.String("priority", string(r.Priority)))
	return r, nil
}

// UpdateRequest applies the non-nil fields of patch.
func (s *gormStore) UpdateRequest(ctx context.Context, id string, patch RequestPatch) (*model.MaintenanceRequest, error) {
	if patch.Priority != nil && !validPriority(*patch.Priority) {
		return nil, validationErr("unknown priority %q", *patch.Priority)
	}
	if patch.Status != nil && !validRequestStatus(*patch.Status) {
		return nil, validationErr("unknown status %q", *patch.Status)
	}
	if patch.DowntimeHours != nil && *patch.DowntimeHours < 0 {
		return nil, validationErr("downtime cannot be negative")
	}

	updates := map[string]any{}
	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setBool := func(col string, v *bool) {
		if v != nil {
			updates[col] = *v
		}
	}
	setString("area", patch.Area)
	setString("shift", patch.Shift)
	setString("received_by", patch.ReceivedBy)
	setString("problem", patch.Problem)
	setString("corrective_action", patch.CorrectiveAction)
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.StartTime != nil {
		updates["start_time"] = patch.StartTime.UTC()
	}
	if patch.EndTime != nil {
		updates["end_time"] = patch.EndTime.UTC()
	}
	if patch.DowntimeHours != nil {
		updates["downtime_hours"] = *patch.DowntimeHours
	}
	if patch.Rectified != nil {
		updates["rectified"] = *patch.Rectified
	}
	setBool("production_sign_off", patch.ProductionSignOff)
	setBool("maintenance_sign_off", patch.MaintenanceSignOff)
	setBool("quality_sign_off", patch.QualitySignOff)

	var r model.MaintenanceRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&r).Error; err != nil {
			return wrapNotFound(err, fmt.Sprintf("maintenance request %q", id))
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&r).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update maintenance request %q: %w", id, err)
		}
		return tx.Where("id = ?", id).First(&r).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *gormStore) DeleteRequest(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MaintenanceRequest{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete maintenance request %q: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("maintenance request %q: %w", id, ErrNotFound)
	}
	return nil
}
