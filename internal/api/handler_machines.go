package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/parse"
	"maintenance-backend/internal/store"
)

type sparePartLinkRequest struct {
	SparePartCode string   `json:"sparePartCode" binding:"required"`
	Frequencies   []string `json:"frequencies"`
	Quantity      int      `json:"quantity" binding:"min=1"`
}

type machineRequest struct {
	Code           string                 `json:"code" binding:"required"`
	Name           string                 `json:"name" binding:"required"`
	MachineType    string                 `json:"machineType"`
	PurchaseDate   string                 `json:"purchaseDate"`
	Plant          string                 `json:"plant"`
	Status         string                 `json:"status" binding:"omitempty,oneof=Active Inactive 'Under Maintenance'"`
	Images         []string               `json:"images"`
	Description    string                 `json:"description"`
	Specifications []model.Specification  `json:"specifications" binding:"dive"`
	SpareParts     []sparePartLinkRequest `json:"spareParts" binding:"dive"`
	Templates      []templateRequest      `json:"templates" binding:"dive"`
}

func (h *Handler) machineInput(r machineRequest) (store.MachineInput, error) {
	purchased, err := h.optionalDate(r.PurchaseDate)
	if err != nil {
		return store.MachineInput{}, err
	}
	templates, err := toTemplateInputs(r.Templates)
	if err != nil {
		return store.MachineInput{}, err
	}

	var links []store.SparePartLink
	if r.SpareParts != nil {
		links = make([]store.SparePartLink, 0, len(r.SpareParts))
		for _, sp := range r.SpareParts {
			freqs := make([]model.Frequency, 0, len(sp.Frequencies))
			for _, raw := range sp.Frequencies {
				f, err := parse.Frequency(raw)
				if err != nil {
					return store.MachineInput{}, err
				}
				freqs = append(freqs, f)
			}
			links = append(links, store.SparePartLink{SparePartCode: sp.SparePartCode, Frequencies: freqs, Quantity: sp.Quantity})
		}
	}

	return store.MachineInput{
		Code:            r.Code,
		Name:            r.Name,
		MachineTypeCode: r.MachineType,
		PurchaseDate:    purchased,
		Plant:           r.Plant,
		Status:          model.MachineStatus(r.Status),
		Images:          r.Images,
		Description:     r.Description,
		Specifications:  r.Specifications,
		SpareParts:      links,
		Templates:       templates,
	}, nil
}

// ListMachines handles GET /api/machines.
func (h *Handler) ListMachines(c *gin.Context) {
	page := parse.Pagination(c.Query("pageIndex"), c.Query("pageSize"), c.Query("getAll"))
	items, total, err := h.store.ListMachines(c.Request.Context(), store.MachineFilter{
		Search:          c.Query("search"),
		Plant:           c.Query("plant"),
		Status:          c.Query("status"),
		MachineTypeCode: c.Query("machineType"),
		PageIndex:       page.Index,
		PageSize:        page.Size,
		All:             page.All,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	okList(c, items, total)
}

// GetMachine handles GET /api/machines/:code.
func (h *Handler) GetMachine(c *gin.Context) {
	m, err := h.store.GetMachine(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// CreateMachine handles POST /api/machines as JSON or as multipart with a
// "data" JSON field and up to three "images" files.
func (h *Handler) CreateMachine(c *gin.Context) {
	var req machineRequest
	files, err := bindBody(c, &req, "images")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(req.Images)+len(files) > model.MaxMachineImages {
		badRequest(c, fmt.Sprintf("a machine can hold at most %d images", model.MaxMachineImages))
		return
	}
	in, err := h.machineInput(req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	// Images are stored before the transaction; a failed write leaves them orphaned.
	urls, err := h.uploadFiles(c, "machines", files)
	if err != nil {
		h.fail(c, err)
		return
	}
	in.Images = append(append([]string{}, in.Images...), urls...)

	m, err := h.store.CreateMachine(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, m)
}

// UpdateMachine handles PUT /api/machines/:code. Uploaded images are appended
// to the images listed in the body, or to the stored ones when the body has none.
func (h *Handler) UpdateMachine(c *gin.Context) {
	code := c.Param("code")
	var req machineRequest
	files, err := bindBody(c, &req, "images")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	in, err := h.machineInput(req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if len(files) > 0 {
		keep := in.Images
		if keep == nil {
			current, err := h.store.GetMachine(c.Request.Context(), code)
			if err != nil {
				h.fail(c, err)
				return
			}
			keep = current.Images
		}
		if len(keep)+len(files) > model.MaxMachineImages {
			badRequest(c, fmt.Sprintf("a machine can hold at most %d images", model.MaxMachineImages))
			return
		}
		urls, err := h.uploadFiles(c, "machines", files)
		if err != nil {
			h.fail(c, err)
			return
		}
		in.Images = append(append([]string{}, keep...), urls...)
	}

	m, err := h.store.UpdateMachine(c.Request.Context(), code, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// DeleteMachine handles DELETE /api/machines/:code.
func (h *Handler) DeleteMachine(c *gin.Context) {
	if err := h.store.DeleteMachine(c.Request.Context(), c.Param("code")); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"code": c.Param("code")})
}

// ListMachineTemplates handles GET /api/machines/:code/templates.
func (h *Handler) ListMachineTemplates(c *gin.Context) {
	templates, err := h.store.ListMachineTemplates(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, templates)
}

type machineTemplateRequest struct {
	Groups []model.RequirementGroup `json:"groups" binding:"required,dive"`
}

// UpdateMachineTemplate handles PUT /api/machines/:code/templates/:frequency.
func (h *Handler) UpdateMachineTemplate(c *gin.Context) {
	f, err := parse.Frequency(c.Param("frequency"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	var req machineTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	tpl, err := h.store.UpdateMachineTemplate(c.Request.Context(), c.Param("code"), f, req.Groups)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, tpl)
}

// ListMachineForms handles GET /api/machines/:code/maintenance-forms.
func (h *Handler) ListMachineForms(c *gin.Context) {
	forms, err := h.store.ListCompletedForms(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	okList(c, forms, int64(len(forms)))
}
