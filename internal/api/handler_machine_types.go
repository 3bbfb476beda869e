package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maintenance-backend/internal/parse"
	"maintenance-backend/internal/store"
)

type machineTypeRequest struct {
	Code                string            `json:"code" binding:"required"`
	Name                string            `json:"name" binding:"required"`
	Description         string            `json:"description"`
	SpecificationTitles []string          `json:"specificationTitles"`
	Templates           []templateRequest `json:"templates" binding:"required,dive"`
}

func (r machineTypeRequest) input() (store.MachineTypeInput, error) {
	templates, err := toTemplateInputs(r.Templates)
	if err != nil {
		return store.MachineTypeInput{}, err
	}
	return store.MachineTypeInput{
		Code:                r.Code,
		Name:                r.Name,
		Description:         r.Description,
		SpecificationTitles: r.SpecificationTitles,
		Templates:           templates,
	}, nil
}

// ListMachineTypes handles GET /api/machine-types.
func (h *Handler) ListMachineTypes(c *gin.Context) {
	page := parse.Pagination(c.Query("pageIndex"), c.Query("pageSize"), c.Query("getAll"))
	items, total, err := h.store.ListMachineTypes(c.Request.Context(), store.TypeFilter{
		Search:    c.Query("search"),
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

// GetMachineType handles GET /api/machine-types/:code.
func (h *Handler) GetMachineType(c *gin.Context) {
	mt, err := h.store.GetMachineType(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, mt)
}

// CreateMachineType handles POST /api/machine-types.
func (h *Handler) CreateMachineType(c *gin.Context) {
	var req machineTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	in, err := req.input()
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	mt, err := h.store.CreateMachineType(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, mt)
}

// UpdateMachineType handles PUT /api/machine-types/:code.
func (h *Handler) UpdateMachineType(c *gin.Context) {
	var req machineTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	in, err := req.input()
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	mt, err := h.store.UpdateMachineType(c.Request.Context(), c.Param("code"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, mt)
}

// DeleteMachineType handles DELETE /api/machine-types/:code.
func (h *Handler) DeleteMachineType(c *gin.Context) {
	if err := h.store.DeleteMachineType(c.Request.Context(), c.Param("code")); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"code": c.Param("code")})
}

// ListTypeTemplates handles GET /api/machine-types/:code/templates.
func (h *Handler) ListTypeTemplates(c *gin.Context) {
	templates, err := h.store.ListTypeTemplates(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, templates)
}
