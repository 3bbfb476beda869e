package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/parse"
	"maintenance-backend/internal/store"
	"maintenance-backend/internal/upload"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	uploader upload.Uploader
	log      *zap.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewHandler creates a new API handler. Dates without a zone are read in loc.
func NewHandler(s store.Store, u upload.Uploader, log *zap.Logger, loc *time.Location) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		store:    s,
		uploader: u,
		log:      log,
		loc:      loc,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func okList(c *gin.Context, data any, total int64) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "total": total})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

// fail maps store errors onto HTTP statuses.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// templateRequest is the wire form of one frequency's checklist.
type templateRequest struct {
	Frequency string                   `json:"frequency" binding:"required"`
	Groups    []model.RequirementGroup `json:"groups" binding:"dive"`
}

func toTemplateInputs(in []templateRequest) ([]store.TemplateInput, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]store.TemplateInput, 0, len(in))
	for _, t := range in {
		f, err := parse.Frequency(t.Frequency)
		if err != nil {
			return nil, err
		}
		out = append(out, store.TemplateInput{Frequency: f, Groups: t.Groups})
	}
	return out, nil
}

// optionalDate parses raw when non-empty.
func (h *Handler) optionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parse.Date(raw, h.loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// bindBody binds a JSON body, or the JSON "data" field of a multipart form
// together with the files posted under fileField.
func bindBody(c *gin.Context, obj any, fileField string) ([]*multipart.FileHeader, error) {
	if !isMultipart(c) {
		return nil, c.ShouldBindJSON(obj)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	data := form.Value["data"]
	if len(data) == 0 || strings.TrimSpace(data[0]) == "" {
		return nil, errors.New("multipart form needs a data field")
	}
	if err := binding.JSON.BindBody([]byte(data[0]), obj); err != nil {
		return nil, err
	}
	return form.File[fileField], nil
}

// uploadFiles stores each file under folder and returns the URLs in order.
func (h *Handler) uploadFiles(c *gin.Context, folder string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
		}
		url, err := h.uploader.Upload(c.Request.Context(), folder, fh.Filename, fh.Header.Get("Content-Type"), src, fh.Size)
		src.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// Health reports whether the database answers.
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
		return
	}
	ok(c, http.StatusOK, gin.H{"status": "ok"})
}
