package api

import (
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"maintenance-backend/config"
	"maintenance-backend/internal/mw"
	"maintenance-backend/internal/store"
	"maintenance-backend/internal/upload"
)

// staleAfterWrite lists, per write path, the cached listings it invalidates.
// Machine writes move type counters, so both listings go together.
var staleAfterWrite = mw.InvalidationMap{
	"/api/machine-types":        {"/api/machine-types", "/api/machines"},
	"/api/machines":             {"/api/machines", "/api/machine-types"},
	"/api/spare-parts":          {"/api/spare-parts", "/api/machines"},
	"/api/maintenance-requests": {"/api/maintenance-requests"},
}

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, u upload.Uploader, log *zap.Logger, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20
	r.Use(
		gin.Recovery(),
		mw.RequestID(),
		mw.Logger(log),
		mw.CORS(),
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/schedule/export"})),
	)

	handler := NewHandler(s, u, log, cfg.Schedule.Location)

	ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	if local, ok := u.(*upload.Local); ok {
		r.Static("/uploads", local.Dir())
	}

	api := r.Group("/api")
	api.Use(
		mw.RateLimiter(mw.NewIPRateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)),
		mw.Invalidate(cacheStore, staleAfterWrite),
	)
	{
		api.GET("/health", handler.Health)

		api.GET("/machine-types", caching, handler.ListMachineTypes)
		api.POST("/machine-types", handler.CreateMachineType)
		api.GET("/machine-types/:code", handler.GetMachineType)
		api.PUT("/machine-types/:code", handler.UpdateMachineType)
		api.DELETE("/machine-types/:code", handler.DeleteMachineType)
		api.GET("/machine-types/:code/templates", handler.ListTypeTemplates)

		api.GET("/machines", caching, handler.ListMachines)
		api.POST("/machines", handler.CreateMachine)
		api.GET("/machines/:code", handler.GetMachine)
		api.PUT("/machines/:code", handler.UpdateMachine)
		api.DELETE("/machines/:code", handler.DeleteMachine)
		api.GET("/machines/:code/templates", handler.ListMachineTemplates)
		api.PUT("/machines/:code/templates/:frequency", handler.UpdateMachineTemplate)
		api.GET("/machines/:code/maintenance-forms", handler.ListMachineForms)

		api.GET("/machines/:code/schedule", handler.GetMachineSchedule)
		api.POST("/machines/:code/schedule", handler.AddMachineSchedule)
		api.PUT("/machines/:code/schedule", handler.UpdateMachineSchedule)
		api.DELETE("/machines/:code/schedule", handler.DeleteMachineSchedule)

		api.POST("/maintenance-forms", handler.CreateCompletedForm)
		api.GET("/maintenance-forms/:id", handler.GetCompletedForm)

		api.GET("/schedule", handler.GetCalendar)
		api.GET("/schedule/export", handler.ExportCalendar)

		api.GET("/spare-parts", caching, handler.ListSpareParts)
		api.POST("/spare-parts", handler.CreateSparePart)
		api.GET("/spare-parts/:code", handler.GetSparePart)
		api.PUT("/spare-parts/:code", handler.UpdateSparePart)
		api.DELETE("/spare-parts/:code", handler.DeleteSparePart)

		api.GET("/maintenance-requests", caching, handler.ListRequests)
		api.POST("/maintenance-requests", handler.CreateRequest)
		api.GET("/maintenance-requests/:id", handler.GetRequest)
		api.PUT("/maintenance-requests/:id", handler.UpdateRequest)
		api.DELETE("/maintenance-requests/:id", handler.DeleteRequest)
	}

	return r
}
