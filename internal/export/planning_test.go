package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/schedule"
)

func TestPlanningWorkbook(t *testing.T) {
	day := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC) }
	done := day(time.January, 16)
	now := day(time.March, 1)

	rows := []Row{
		{
			Machine: model.Machine{Code: "M-1", Name: "Press", Plant: "Plant A", MachineType: &model.MachineType{Name: "Hydraulic"}},
			Entries: []model.ScheduleEntry{
				{PlannedDate: day(time.January, 15), ActualDate: &done},
				{PlannedDate: day(time.February, 16)},
				{PlannedDate: day(time.February, 20)},
				{PlannedDate: day(time.December, 31)},
			},
		},
		{Machine: model.Machine{Code: "M-2", Name: "Lathe"}},
	}

	buf, err := PlanningWorkbook(2025, schedule.ViewPlanned, rows, now, time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Plan 2025"
	cell := func(col, row int) string {
		name, _ := excelize.CoordinatesToCellName(col, row)
		v, err := f.GetCellValue(sheet, name)
		require.NoError(t, err)
		return v
	}
	weekCol := func(m time.Month, week int) int {
		return fixedCols + (int(m)-1)*schedule.WeeksPerMonth + week
	}

	assert.Equal(t, "Machine", cell(1, 1))
	assert.Equal(t, "January", cell(weekCol(time.January, 1), 1))
	assert.Equal(t, "W4", cell(weekCol(time.December, 4), 2))

	assert.Equal(t, "M-1", cell(1, 3))
	assert.Equal(t, "Hydraulic", cell(3, 3))
	assert.Equal(t, "15", cell(weekCol(time.January, 2), 3))
	assert.Equal(t, "16,20", cell(weekCol(time.February, 3), 3))
	assert.Equal(t, "31", cell(weekCol(time.December, 4), 3))
	assert.Equal(t, "", cell(weekCol(time.March, 1), 3))

	assert.Equal(t, "M-2", cell(1, 4))
	assert.Equal(t, "", cell(weekCol(time.January, 2), 4))
}

func TestDescribePicksMostUrgentStatus(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	done := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	bucket := []model.ScheduleEntry{
		{PlannedDate: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), ActualDate: &done},
		{PlannedDate: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)},
	}

	text, st := describe(bucket, schedule.ViewPlanned, now, time.UTC)
	assert.Equal(t, "2,5", text)
	assert.Equal(t, schedule.StatusLate, st)

	text, st = describe(bucket[:1], schedule.ViewActual, now, time.UTC)
	assert.Equal(t, "3", text)
	assert.Equal(t, schedule.StatusCompleted, st)
}
