package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/parse"
	"maintenance-backend/internal/store"
)

type completedFormRequest struct {
	MachineID      string              `json:"machineId"`
	MachineCode    string              `json:"machineCode"`
	ScheduleID     string              `json:"scheduleId"`
	Frequency      string              `json:"frequency" binding:"required"`
	Date           string              `json:"date"`
	StartTime      string              `json:"startTime"`
	EndTime        string              `json:"endTime"`
	OperatorNumber string              `json:"operatorNumber"`
	PreparedBy     string              `json:"preparedBy"`
	CheckedBy      string              `json:"checkedBy"`
	ApprovedBy     string              `json:"approvedBy"`
	Remarks        string              `json:"remarks"`
	Groups         []model.FilledGroup `json:"groups" binding:"dive"`
}

// CreateCompletedForm handles POST /api/maintenance-forms.
func (h *Handler) CreateCompletedForm(c *gin.Context) {
	var req completedFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.MachineID == "" && req.MachineCode == "" {
		badRequest(c, "machineId or machineCode is required")
		return
	}
	f, err := parse.Frequency(req.Frequency)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	date, err := h.optionalDate(req.Date)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	sub := store.FormSubmission{
		MachineID:      req.MachineID,
		MachineCode:    req.MachineCode,
		ScheduleID:     req.ScheduleID,
		Frequency:      f,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		OperatorNumber: req.OperatorNumber,
		PreparedBy:     req.PreparedBy,
		CheckedBy:      req.CheckedBy,
		ApprovedBy:     req.ApprovedBy,
		Remarks:        req.Remarks,
		Groups:         req.Groups,
	}
	if date != nil {
		sub.Date = *date
	}

	form, err := h.store.CreateCompletedForm(c.Request.Context(), sub)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, form)
}

// GetCompletedForm handles GET /api/maintenance-forms/:id.
func (h *Handler) GetCompletedForm(c *gin.Context) {
	form, err := h.store.GetCompletedForm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, form)
}
