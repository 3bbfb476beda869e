// Package testutil provides database and HTTP helpers shared by package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"maintenance-backend/internal/db"
	"maintenance-backend/internal/model"
)

// SetupTestDB opens an in-memory SQLite database private to the test and
// migrates every table. The database is closed when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), db.GormConfig(logger.Silent))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// A single connection keeps the in-memory database alive and serialises
	// transactions.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return gdb
}

// Checklist returns a small two-group checklist labelled with tag.
func Checklist(tag string) []model.RequirementGroup {
	return []model.RequirementGroup{
		{
			Title: tag + " mechanical",
			Requirements: []model.Requirement{
				{TitleEn: "Check belt tension", TitleVi: "Kiểm tra độ căng dây đai"},
				{TitleEn: "Lubricate bearings", TitleVi: "Bôi trơn vòng bi"},
			},
		},
		{
			Title: tag + " electrical",
			Requirements: []model.Requirement{
				{TitleEn: "Inspect wiring", TitleVi: "Kiểm tra dây điện", Note: "visual only"},
			},
		},
	}
}

// SetupRouter creates a gin engine in test mode.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executes a JSON request against the router.
func DoRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes the response envelope into a generic map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]any {
	var result map[string]any
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}
