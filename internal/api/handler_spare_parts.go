package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/parse"
	"maintenance-backend/internal/store"
)

type sparePartRequest struct {
	Code            string          `json:"code" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	Price           decimal.Decimal `json:"price"`
	SupplierName    string          `json:"supplierName"`
	SupplierContact string          `json:"supplierContact"`
	SupplierPhone   string          `json:"supplierPhone"`
	SupplierEmail   string          `json:"supplierEmail" binding:"omitempty,email"`
	LeadTimeDays    int             `json:"leadTimeDays" binding:"min=0"`
	Quantity        int             `json:"quantity" binding:"min=0"`
	MinQuantity     int             `json:"minQuantity" binding:"min=0"`
	UsagePerMonth   float64         `json:"usagePerMonth" binding:"min=0"`
	Plant           string          `json:"plant"`
	ImageURL        string          `json:"imageUrl"`
}

func (r sparePartRequest) model() *model.SparePart {
	return &model.SparePart{
		Code:            r.Code,
		Name:            r.Name,
		Price:           r.Price,
		SupplierName:    r.SupplierName,
		SupplierContact: r.SupplierContact,
		SupplierPhone:   r.SupplierPhone,
		SupplierEmail:   r.SupplierEmail,
		LeadTimeDays:    r.LeadTimeDays,
		Quantity:        r.Quantity,
		MinQuantity:     r.MinQuantity,
		UsagePerMonth:   r.UsagePerMonth,
		Plant:           r.Plant,
		ImageURL:        r.ImageURL,
	}
}

// sparePartView adds the derived low-stock flag.
type sparePartView struct {
	model.SparePart
	LowStock bool `json:"lowStock"`
}

func viewOf(p model.SparePart) sparePartView {
	return sparePartView{SparePart: p, LowStock: p.LowStock()}
}

// ListSpareParts handles GET /api/spare-parts.
func (h *Handler) ListSpareParts(c *gin.Context) {
	page := parse.Pagination(c.Query("pageIndex"), c.Query("pageSize"), c.Query("getAll"))
	lowStock, _ := strconv.ParseBool(c.Query("lowStock"))
	items, total, err := h.store.ListSpareParts(c.Request.Context(), store.SparePartFilter{
		Search:    c.Query("search"),
		Plant:     c.Query("plant"),
		LowStock:  lowStock,
		PageIndex: page.Index,
		PageSize:  page.Size,
		All:       page.All,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	views := make([]sparePartView, 0, len(items))
	for _, p := range items {
		views = append(views, viewOf(p))
	}
	okList(c, views, total)
}

// GetSparePart handles GET /api/spare-parts/:code.
func (h *Handler) GetSparePart(c *gin.Context) {
	p, err := h.store.GetSparePart(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, viewOf(*p))
}

// bindSparePart reads the body and stores an uploaded "image" file if present.
func (h *Handler) bindSparePart(c *gin.Context) (*model.SparePart, bool) {
	var req sparePartRequest
	files, err := bindBody(c, &req, "image")
	if err != nil {
		badRequest(c, err.Error())
		return nil, false
	}
	if len(files) > 1 {
		badRequest(c, "a spare part has a single image")
		return nil, false
	}
	if req.Price.IsNegative() {
		badRequest(c, "price cannot be negative")
		return nil, false
	}

	part := req.model()
	if len(files) == 1 {
		urls, err := h.uploadFiles(c, "spare-parts", files)
		if err != nil {
			h.fail(c, err)
			return nil, false
		}
		part.ImageURL = urls[0]
	}
	return part, true
}

// CreateSparePart handles POST /api/spare-parts.
func (h *Handler) CreateSparePart(c *gin.Context) {
	part, valid := h.bindSparePart(c)
	if !valid {
		return
	}
	if err := h.store.CreateSparePart(c.Request.Context(), part); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, viewOf(*part))
}

// UpdateSparePart handles PUT /api/spare-parts/:code.
func (h *Handler) UpdateSparePart(c *gin.Context) {
	part, valid := h.bindSparePart(c)
	if !valid {
		return
	}
	updated, err := h.store.UpdateSparePart(c.Request.Context(), c.Param("code"), part)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, viewOf(*updated))
}

// DeleteSparePart handles DELETE /api/spare-parts/:code.
func (h *Handler) DeleteSparePart(c *gin.Context) {
	if err := h.store.DeleteSparePart(c.Request.Context(), c.Param("code")); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"code": c.Param("code")})
}
