package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/parse"
	"maintenance-backend/internal/store"
)

type createRequestRequest struct {
	MachineCode string `json:"machineCode" binding:"required"`
	Area        string `json:"area"`
	Plant       string `json:"plant"`
	Shift       string `json:"shift"`
	ReportedBy  string `json:"reportedBy"`
	ReceivedBy  string `json:"receivedBy"`
	Priority    string `json:"priority" binding:"omitempty,oneof=Normal High"`
	Problem     string `json:"problem" binding:"required"`
	RequestedAt string `json:"requestedAt"`
}

type updateRequestRequest struct {
	Area               *string  `json:"area"`
	Shift              *string  `json:"shift"`
	ReceivedBy         *string  `json:"receivedBy"`
	Priority           *string  `json:"priority" binding:"omitempty,oneof=Normal High"`
	Problem            *string  `json:"problem"`
	Status             *string  `json:"status" binding:"omitempty,oneof=Pending 'In Progress' Completed Closed"`
	CorrectiveAction   *string  `json:"correctiveAction"`
	StartTime          *string  `json:"startTime"`
	EndTime            *string  `json:"endTime"`
	DowntimeHours      *float64 `json:"downtimeHours" binding:"omitempty,min=0"`
	Rectified          *bool    `json:"rectified"`
	ProductionSignOff  *bool    `json:"productionSignOff"`
	MaintenanceSignOff *bool    `json:"maintenanceSignOff"`
	QualitySignOff     *bool    `json:"qualitySignOff"`
}

// ListRequests handles GET /api/maintenance-requests.
func (h *Handler) ListRequests(c *gin.Context) {
	page := parse.Pagination(c.Query("pageIndex"), c.Query("pageSize"), c.Query("getAll"))
	items, total, err := h.store.ListRequests(c.Request.Context(), store.RequestFilter{
		Search:    c.Query("search"),
		Plant:     c.Query("plant"),
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		PageIndex: page.Index,
		PageSize:  page.Size,
		All:       page.All,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	okList(c, items, total)
}

// GetRequest handles GET /api/maintenance-requests/:id.
func (h *Handler) GetRequest(c *gin.Context) {
	r, err := h.store.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// CreateRequest handles POST /api/maintenance-requests.
func (h *Handler) CreateRequest(c *gin.Context) {
	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	requestedAt, err := h.optionalDate(req.RequestedAt)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	r, err := h.store.CreateRequest(c.Request.Context(), store.RequestInput{
		MachineCode: req.MachineCode,
		Area:        req.Area,
		Plant:       req.Plant,
		Shift:       req.Shift,
		ReportedBy:  req.ReportedBy,
		ReceivedBy:  req.ReceivedBy,
		Priority:    model.RequestPriority(req.Priority),
		Problem:     req.Problem,
		RequestedAt: requestedAt,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, r)
}

// UpdateRequest handles PUT /api/maintenance-requests/:id.
func (h *Handler) UpdateRequest(c *gin.Context) {
	var req updateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	patch := store.RequestPatch{
		Area:               req.Area,
		Shift:              req.Shift,
		ReceivedBy:         req.ReceivedBy,
		Problem:            req.Problem,
		CorrectiveAction:   req.CorrectiveAction,
		DowntimeHours:      req.DowntimeHours,
		Rectified:          req.Rectified,
		ProductionSignOff:  req.ProductionSignOff,
		MaintenanceSignOff: req.MaintenanceSignOff,
		QualitySignOff:     req.QualitySignOff,
	}
	if req.Priority != nil {
		p := model.RequestPriority(*req.Priority)
		patch.Priority = &p
	}
	if req.Status != nil {
		st := model.RequestStatus(*req.Status)
		patch.Status = &st
	}
	var err error
	if req.StartTime != nil {
		if patch.StartTime, err = h.optionalDate(*req.StartTime); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	if req.EndTime != nil {
		if patch.EndTime, err = h.optionalDate(*req.EndTime); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	r, err := h.store.UpdateRequest(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// DeleteRequest handles DELETE /api/maintenance-requests/:id.
func (h *Handler) DeleteRequest(c *gin.Context) {
	if err := h.store.DeleteRequest(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
