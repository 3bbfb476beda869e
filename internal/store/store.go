package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"maintenance-backend/internal/model"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for input rejected before any write.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned on duplicate codes and stale entry versions.
	ErrConflict = errors.New("conflict")
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB
	Ping(ctx context.Context) error

	ListMachineTypes(ctx context.Context, filter TypeFilter) ([]model.MachineType, int64, error)
	GetMachineType(ctx context.Context, code string) (*model.MachineType, error)
	CreateMachineType(ctx context.Context, in MachineTypeInput) (*model.MachineType, error)
	UpdateMachineType(ctx context.Context, code string, in MachineTypeInput) (*model.MachineType, error)
	DeleteMachineType(ctx context.Context, code string) error
	ListTypeTemplates(ctx context.Context, code string) ([]model.TypeTemplate, error)

	ListMachines(ctx context.Context, filter MachineFilter) ([]model.Machine, int64, error)
	GetMachine(ctx context.Context, code string) (*model.Machine, error)
	CreateMachine(ctx context.Context, in MachineInput) (*model.Machine, error)
	UpdateMachine(ctx context.Context, code string, in MachineInput) (*model.Machine, error)
	DeleteMachine(ctx context.Context, code string) error
	ListMachineTemplates(ctx context.Context, code string) ([]model.MachineTemplate, error)
	UpdateMachineTemplate(ctx context.Context, code string, f model.Frequency, groups []model.RequirementGroup) (*model.MachineTemplate, error)

	GetSchedule(ctx context.Context, code string) ([]model.ScheduleEntry, error)
	AddScheduleEntries(ctx context.Context, code string, f model.Frequency, dates []time.Time) ([]model.ScheduleEntry, error)
	UpdateScheduleEntry(ctx context.Context, code, entryID string, patch EntryPatch) (*model.ScheduleEntry, error)
	DeleteScheduleEntry(ctx context.Context, code, entryID string) error
	ListMachineSchedules(ctx context.Context, filter CalendarFilter) ([]MachineSchedule, error)

	CreateCompletedForm(ctx context.Context, sub FormSubmission) (*model.CompletedForm, error)
	GetCompletedForm(ctx context.Context, id string) (*model.CompletedForm, error)
	ListCompletedForms(ctx context.Context, machineCode string) ([]model.CompletedForm, error)

	ListSpareParts(ctx context.Context, filter SparePartFilter) ([]model.SparePart, int64, error)
	GetSparePart(ctx context.Context, code string) (*model.SparePart, error)
	CreateSparePart(ctx context.Context, part *model.SparePart) error
	UpdateSparePart(ctx context.Context, code string, part *model.SparePart) (*model.SparePart, error)
	DeleteSparePart(ctx context.Context, code string) error

	ListRequests(ctx context.Context, filter RequestFilter) ([]model.MaintenanceRequest, int64, error)
	GetRequest(ctx context.Context, id string) (*model.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, in RequestInput) (*model.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, id string, patch RequestPatch) (*model.MaintenanceRequest, error)
	DeleteRequest(ctx context.Context, id string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, log *zap.Logger) Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &gormStore{
		db:  db,
		log: log,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Ping checks that the database answers.
func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func newID() string {
	return uuid.New().String()
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// wrapNotFound turns gorm.ErrRecordNotFound into ErrNotFound naming what was missing.
func wrapNotFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// exists reports whether any row of m matches the condition.
func exists(tx *gorm.DB, m any, query string, args ...any) (bool, error) {
	var n int64
	if err := tx.Model(m).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func paginate(q *gorm.DB, index, size int, all bool) *gorm.DB {
	if all || size <= 0 {
		return q
	}
	if index < 1 {
		index = 1
	}
	return q.Offset((index - 1) * size).Limit(size)
}
