package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"maintenance-backend/internal/export"
	"maintenance-backend/internal/model"
	"maintenance-backend/internal/parse"
	"maintenance-backend/internal/schedule"
	"maintenance-backend/internal/store"
)

// GetMachineSchedule handles GET /api/machines/:code/schedule.
func (h *Handler) GetMachineSchedule(c *gin.Context) {
	entries, err := h.store.GetSchedule(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	okList(c, schedule.Views(entries, h.now()), int64(len(entries)))
}

type generateScheduleRequest struct {
	Frequency string `json:"frequency" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	Count     int    `json:"count" binding:"min=0,max=1000"`
}

// AddMachineSchedule handles POST /api/machines/:code/schedule by generating
// count entries from startDate.
func (h *Handler) AddMachineSchedule(c *gin.Context) {
	var req generateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	f, err := parse.Frequency(req.Frequency)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	start, err := parse.Date(req.StartDate, h.loc)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	entries, err := h.store.AddScheduleEntries(c.Request.Context(), c.Param("code"), f, schedule.Generate(start, f, req.Count, h.loc))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, schedule.Views(entries, h.now()))
}

type updateEntryRequest struct {
	ID              string  `json:"id" binding:"required"`
	Frequency       *string `json:"frequency"`
	PlannedDate     *string `json:"plannedDate"`
	ActualDate      *string `json:"actualDate"`
	ClearActualDate bool    `json:"clearActualDate"`
	Version         *int    `json:"version"`
}

// UpdateMachineSchedule handles PUT /api/machines/:code/schedule for one entry.
func (h *Handler) UpdateMachineSchedule(c *gin.Context) {
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	patch := store.EntryPatch{Version: req.Version, ClearActualDate: req.ClearActualDate}
	if req.Frequency != nil {
		f, err := parse.Frequency(*req.Frequency)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		patch.Frequency = &f
	}
	if req.PlannedDate != nil {
		d, err := parse.Date(*req.PlannedDate, h.loc)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		patch.PlannedDate = &d
	}
	if req.ActualDate != nil {
		if strings.TrimSpace(*req.ActualDate) == "" {
			patch.ClearActualDate = true
		} else {
			d, err := parse.Date(*req.ActualDate, h.loc)
			if err != nil {
				badRequest(c, err.Error())
				return
			}
			patch.ActualDate = &d
		}
	}

	e, err := h.store.UpdateScheduleEntry(c.Request.Context(), c.Param("code"), req.ID, patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, schedule.EntryView{ScheduleEntry: *e, Status: schedule.DeriveStatus(e.PlannedDate, e.ActualDate, h.now())})
}

// DeleteMachineSchedule handles DELETE /api/machines/:code/schedule?id=.
func (h *Handler) DeleteMachineSchedule(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		badRequest(c, "query parameter id is required")
		return
	}
	if err := h.store.DeleteScheduleEntry(c.Request.Context(), c.Param("code"), id); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id})
}

// calendarQuery is the parsed filter of the cross-machine planning grid.
type calendarQuery struct {
	year   int
	view   schedule.View
	filter store.CalendarFilter
}

func (h *Handler) parseCalendarQuery(c *gin.Context) (calendarQuery, error) {
	var q calendarQuery

	year, err := parse.Year(c.Query("year"), h.now().In(h.loc).Year())
	if err != nil {
		return q, err
	}
	q.year = year

	switch v := schedule.View(strings.ToLower(c.DefaultQuery("view", string(schedule.ViewPlanned)))); v {
	case schedule.ViewPlanned, schedule.ViewActual:
		q.view = v
	default:
		return q, fmt.Errorf("unknown view %q", v)
	}

	var f model.Frequency
	if raw := c.Query("frequency"); raw != "" {
		if f, err = parse.Frequency(raw); err != nil {
			return q, err
		}
	}

	from, to := schedule.YearBounds(year, h.loc)
	q.filter = store.CalendarFilter{
		Frequency:       f,
		Plant:           c.Query("plant"),
		MachineCode:     c.Query("machineCode"),
		MachineTypeCode: c.Query("machineType"),
		From:            from.UTC(),
		To:              to.UTC(),
	}
	return q, nil
}

type calendarRow struct {
	Machine model.Machine                                    `json:"machine"`
	Months  [12][schedule.WeeksPerMonth][]schedule.EntryView `json:"months"`
}

// GetCalendar handles GET /api/schedule: one row per machine with the year's
// entries bucketed by month and week.
func (h *Handler) GetCalendar(c *gin.Context) {
	q, err := h.parseCalendarQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	rows, err := h.store.ListMachineSchedules(c.Request.Context(), q.filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	now := h.now()
	out := make([]calendarRow, 0, len(rows))
	for _, r := range rows {
		grid := schedule.Bucket(q.year, r.Entries, q.view, h.loc)
		row := calendarRow{Machine: r.Machine}
		for m := range grid {
			for w := range grid[m] {
				row.Months[m][w] = schedule.Views(grid[m][w], now)
			}
		}
		out = append(out, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"year": q.year, "view": q.view, "rows": out},
		"total":   len(out),
	})
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportCalendar handles GET /api/schedule/export with the same filters as GetCalendar.
func (h *Handler) ExportCalendar(c *gin.Context) {
	q, err := h.parseCalendarQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	rows, err := h.store.ListMachineSchedules(c.Request.Context(), q.filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	sheetRows := make([]export.Row, 0, len(rows))
	for _, r := range rows {
		sheetRows = append(sheetRows, export.Row{Machine: r.Machine, Entries: r.Entries})
	}
	buf, err := export.PlanningWorkbook(q.year, q.view, sheetRows, h.now(), h.loc)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="maintenance-plan-%d.xlsx"`, q.year))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
