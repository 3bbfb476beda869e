package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"maintenance-backend/internal/model"
)

// GetSchedule returns the machine's schedule entries ordered by planned date.
func (s *gormStore) GetSchedule(ctx context.Context, code string) ([]model.ScheduleEntry, error) {
	m, err := findMachine(s.db.WithContext(ctx), code)
	if err != nil {
		return nil, err
	}
	var entries []model.ScheduleEntry
	err = s.db.WithContext(ctx).
		Where("machine_id = ?", m.ID).
		Order("planned_date ASC, created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// AddScheduleEntries appends one open entry per date. Duplicate dates are kept.
func (s *gormStore) AddScheduleEntries(ctx context.Context, code string, f model.Frequency, dates []time.Time) ([]model.ScheduleEntry, error) {
	if !f.Valid() {
		return nil, validationErr("unknown frequency %q", f)
	}

	entries := make([]model.ScheduleEntry, 0, len(dates))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMachine(tx, code)
		if err != nil {
			return err
		}
		for _, d := range dates {
			entries = append(entries, model.ScheduleEntry{
				ID:          newID(),
				MachineID:   m.ID,
				Frequency:   f,
				PlannedDate: d.UTC(),
				Version:     1,
			})
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("failed to add schedule entries to machine %q: %w", code, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("schedule entries added",
		zap.String("machine", code),
		zap.String("frequency", string(f)),
		zap.Int("count", len(entries)))
	return entries, nil
}

// UpdateScheduleEntry patches one entry. The write is guarded by the stored
// version, and by patch.Version when the caller supplies one.
func (s *gormStore) UpdateScheduleEntry(ctx context.Context, code, entryID string, patch EntryPatch) (*model.ScheduleEntry, error) {
	if patch.Frequency != nil && !patch.Frequency.Valid() {
		return nil, validationErr("unknown frequency %q", *patch.Frequency)
	}
	if patch.PlannedDate != nil && patch.PlannedDate.IsZero() {
		return nil, validationErr("planned date must be set")
	}

	var entry model.ScheduleEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMachine(tx, code)
		if err != nil {
			return err
		}
		if err := tx.Where("id = ? AND machine_id = ?", entryID, m.ID).First(&entry).Error; err != nil {
			return wrapNotFound(err, fmt.Sprintf("schedule entry %q", entryID))
		}
		if patch.Version != nil && *patch.Version != entry.Version {
			return fmt.Errorf("schedule entry %q is at version %d, not %d: %w", entryID, entry.Version, *patch.Version, ErrConflict)
		}

		updates := map[string]any{"version": entry.Version + 1}
		if patch.Frequency != nil {
			updates["frequency"] = *patch.Frequency
		}
		if patch.PlannedDate != nil {
			updates["planned_date"] = patch.PlannedDate.UTC()
		}
		switch {
		case patch.ClearActualDate:
			// A reopened entry is no longer backed by a form.
			updates["actual_date"] = nil
			updates["completed_form_id"] = nil
		case patch.ActualDate != nil:
			updates["actual_date"] = patch.ActualDate.UTC()
		}

		res := tx.Model(&model.ScheduleEntry{}).
			Where("id = ? AND version = ?", entry.ID, entry.Version).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update schedule entry %q: %w", entryID, res.Error)
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("schedule entry %q changed concurrently: %w", entryID, ErrConflict)
		}
		var out model.ScheduleEntry
		if err := tx.Where("id = ?", entry.ID).First(&out).Error; err != nil {
			return err
		}
		entry = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteScheduleEntry removes one entry of the machine.
func (s *gormStore) DeleteScheduleEntry(ctx context.Context, code, entryID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMachine(tx, code)
		if err != nil {
			return err
		}
		res := tx.Where("id = ? AND machine_id = ?", entryID, m.ID).Delete(&model.ScheduleEntry{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete schedule entry %q: %w", entryID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("schedule entry %q: %w", entryID, ErrNotFound)
		}
		return nil
	})
}

// ListMachineSchedules returns every matching machine with the entries whose
// planned or actual date falls inside [From, To).
func (s *gormStore) ListMachineSchedules(ctx context.Context, filter CalendarFilter) ([]MachineSchedule, error) {
	if filter.Frequency != "" && !filter.Frequency.Valid() {
		return nil, validationErr("unknown frequency %q", filter.Frequency)
	}

	db := s.db.WithContext(ctx)
	query := db.Model(&model.Machine{}).Preload("MachineType")
	if filter.Plant != "" {
		query = query.Where("plant = ?", filter.Plant)
	}
	if filter.MachineCode != "" {
		query = query.Where("code = ?", filter.MachineCode)
	}
	if filter.MachineTypeCode != "" {
		query = query.Where("machine_type_id IN (?)",
			db.Model(&model.MachineType{}).Select("id").Where("code = ?", filter.MachineTypeCode))
	}

	var machines []model.Machine
	if err := query.Order("code ASC").Find(&machines).Error; err != nil {
		return nil, err
	}
	if len(machines) == 0 {
		return []MachineSchedule{}, nil
	}

	ids := make([]string, len(machines))
	for i, m := range machines {
		ids[i] = m.ID
	}

	entryQuery := db.Where("machine_id IN ?", ids)
	if filter.Frequency != "" {
		entryQuery = entryQuery.Where("frequency = ?", filter.Frequency)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() {
		entryQuery = entryQuery.Where(
			"(planned_date >= ? AND planned_date < ?) OR (actual_date >= ? AND actual_date < ?)",
			filter.From, filter.To, filter.From, filter.To)
	}

	var entries []model.ScheduleEntry
	if err := entryQuery.Order("planned_date ASC, created_at ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}

	byMachine := make(map[string][]model.ScheduleEntry, len(machines))
	for _, e := range entries {
		byMachine[e.MachineID] = append(byMachine[e.MachineID], e)
	}

	out := make([]MachineSchedule, 0, len(machines))
	for _, m := range machines {
		out = append(out, MachineSchedule{Machine: m, Entries: byMachine[m.ID]})
	}
	return out, nil
}

// openEntry returns the earliest uncompleted entry of the frequency, or nil.
func openEntry(tx *gorm.DB, machineID string, f model.Frequency) (*model.ScheduleEntry, error) {
	var e model.ScheduleEntry
	err := tx.Where("machine_id = ? AND frequency = ? AND actual_date IS NULL", machineID, f).
		Order("planned_date ASC, created_at ASC, id ASC").
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
