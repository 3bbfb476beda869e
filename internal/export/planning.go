// Package export renders the yearly maintenance planning grid as an Excel workbook.
package export

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/schedule"
)

// Row is one machine line of the planning grid.
type Row struct {
	Machine model.Machine
	Entries []model.ScheduleEntry
}

const fixedCols = 4 // code, name, type, plant

var statusFill = map[schedule.Status]string{
	schedule.StatusCompleted: "#C6EFCE",
	schedule.StatusLate:      "#FFC7CE",
	schedule.StatusUpcoming:  "#DDEBF7",
}

// statusRank orders statuses for choosing a cell colour; the highest wins.
var statusRank = map[schedule.Status]int{
	schedule.StatusCompleted: 0,
	schedule.StatusUpcoming:  1,
	schedule.StatusLate:      2,
}

// PlanningWorkbook writes one sheet with a row per machine and 48 week
// columns. Each cell lists the days of the entries in that week and is
// coloured by the most urgent status among them.
func PlanningWorkbook(year int, view schedule.View, rows []Row, now time.Time, loc *time.Location) (*bytes.Buffer, error) {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Plan %d", year)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	fills := make(map[schedule.Status]int, len(statusFill))
	for st, color := range statusFill {
		id, err := f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, err
		}
		fills[st] = id
	}

	for i, h := range []string{"Machine", "Name", "Type", "Plant"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		bottom, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.MergeCell(sheet, cell, bottom)
	}
	for m := 0; m < 12; m++ {
		first := fixedCols + m*schedule.WeeksPerMonth + 1
		start, _ := excelize.CoordinatesToCellName(first, 1)
		end, _ := excelize.CoordinatesToCellName(first+schedule.WeeksPerMonth-1, 1)
		_ = f.SetCellValue(sheet, start, time.Month(m+1).String())
		_ = f.MergeCell(sheet, start, end)
		for w := 0; w < schedule.WeeksPerMonth; w++ {
			cell, _ := excelize.CoordinatesToCellName(first+w, 2)
			_ = f.SetCellValue(sheet, cell, "W"+strconv.Itoa(w+1))
		}
	}
	lastCol := fixedCols + 12*schedule.WeeksPerMonth
	lastHeader, _ := excelize.CoordinatesToCellName(lastCol, 2)
	_ = f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)

	for r, row := range rows {
		line := r + 3
		typeName := ""
		if row.Machine.MachineType != nil {
			typeName = row.Machine.MachineType.Name
		}
		for c, v := range []any{row.Machine.Code, row.Machine.Name, typeName, row.Machine.Plant} {
			cell, _ := excelize.CoordinatesToCellName(c+1, line)
			_ = f.SetCellValue(sheet, cell, v)
		}

		grid := schedule.Bucket(year, row.Entries, view, loc)
		for m := 0; m < 12; m++ {
			for w := 0; w < schedule.WeeksPerMonth; w++ {
				bucket := grid[m][w]
				if len(bucket) == 0 {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(fixedCols+m*schedule.WeeksPerMonth+w+1, line)
				text, st := describe(bucket, view, now, loc)
				_ = f.SetCellValue(sheet, cell, text)
				_ = f.SetCellStyle(sheet, cell, cell, fills[st])
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "C", 20)
	_ = f.SetColWidth(sheet, "D", "D", 12)
	firstWeek, _ := excelize.ColumnNumberToName(fixedCols + 1)
	lastWeek, _ := excelize.ColumnNumberToName(lastCol)
	_ = f.SetColWidth(sheet, firstWeek, lastWeek, 6)
	_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, XSplit: fixedCols, YSplit: 2, TopLeftCell: "E3", ActivePane: "bottomRight"})

	return f.WriteToBuffer()
}

// describe returns the day numbers of the bucket and its most urgent status.
func describe(bucket []model.ScheduleEntry, view schedule.View, now time.Time, loc *time.Location) (string, schedule.Status) {
	days := make([]int, 0, len(bucket))
	worst := schedule.StatusCompleted
	for _, e := range bucket {
		d := e.PlannedDate
		if view == schedule.ViewActual && e.ActualDate != nil {
			d = *e.ActualDate
		}
		days = append(days, d.In(loc).Day())

		st := schedule.DeriveStatus(e.PlannedDate, e.ActualDate, now)
		if statusRank[st] > statusRank[worst] {
			worst = st
		}
	}
	sort.Ints(days)

	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ","), worst
}
