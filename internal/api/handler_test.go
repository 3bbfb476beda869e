package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"maintenance-backend/config"
	"maintenance-backend/internal/model"
	"maintenance-backend/internal/store"
	"maintenance-backend/internal/testutil"
	"maintenance-backend/internal/upload"
)

type testServer struct {
	router    *gin.Engine
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerIn(t, time.UTC)
}

func newTestServerIn(t *testing.T, loc *time.Location) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewGormStore(testutil.SetupTestDB(t), zap.NewNop())
	dir := t.TempDir()
	cfg := &config.Config{
		Server: config.ServerConfig{
			RateLimitPerSec: 1000,
			RateLimitBurst:  1000,
			CacheTTLSeconds: 60,
			MaxUploadMB:     8,
		},
		Schedule: config.ScheduleConfig{Timezone: loc.String(), Location: loc},
	}
	return &testServer{
		router:    NewRouter(s, upload.NewLocal(dir, "/uploads"), zap.NewNop(), cfg),
		uploadDir: dir,
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := testutil.DoRequest(ts.router, method, path, body)
	return w, testutil.ParseResponse(w)
}

func templates(n int) []gin.H {
	out := make([]gin.H, 0, n)
	for _, f := range model.Frequencies[:n] {
		out = append(out, gin.H{"frequency": string(f), "groups": testutil.Checklist(string(f))})
	}
	return out
}

func (ts *testServer) createType(t *testing.T, code string) {
	t.Helper()
	w, _ := ts.do(t, http.MethodPost, "/api/machine-types", gin.H{
		"code":                code,
		"name":                code + " molder",
		"specificationTitles": []string{"Clamp force"},
		"templates":           templates(5),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func (ts *testServer) createMachine(t *testing.T, code, typeCode string) {
	t.Helper()
	w, _ := ts.do(t, http.MethodPost, "/api/machines", gin.H{
		"code":        code,
		"name":        "Machine " + code,
		"machineType": typeCode,
		"plant":       "Plant A",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func data(resp map[string]any) map[string]any {
	d, _ := resp["data"].(map[string]any)
	return d
}

func list(resp map[string]any) []any {
	l, _ := resp["data"].([]any)
	return l
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w, resp := ts.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateMachineTypeNeedsFiveTemplates(t *testing.T) {
	ts := newTestServer(t)

	w, resp := ts.do(t, http.MethodPost, "/api/machine-types", gin.H{
		"code": "MT-1", "name": "Molder", "templates": templates(4),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.NotEmpty(t, resp["error"])

	w, _ = ts.do(t, http.MethodGet, "/api/machine-types/MT-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	ts.createType(t, "MT-1")
	w, resp = ts.do(t, http.MethodGet, "/api/machine-types/MT-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), data(resp)["totalMachines"])
	assert.Len(t, data(resp)["templates"], 5)

	w, _ = ts.do(t, http.MethodGet, "/api/machine-types/MT-1/templates", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMaintenanceScenario(t *testing.T) {
	ts := newTestServer(t)
	ts.createType(t, "MT-1")
	ts.createMachine(t, "M-1", "MT-1")

	w, resp := ts.do(t, http.MethodGet, "/api/machine-types/MT-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), data(resp)["totalMachines"])

	w, resp = ts.do(t, http.MethodPost, "/api/machines/M-1/schedule", gin.H{
		"frequency": "monthly", "startDate": "2025-01-15", "count": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entries := list(resp)
	require.Len(t, entries, 3)
	for i, want := range []string{"2025-01-15", "2025-02-15", "2025-03-15"} {
		e := entries[i].(map[string]any)
		assert.True(t, strings.HasPrefix(e["plannedDate"].(string), want), e["plannedDate"])
		assert.Equal(t, "Monthly", e["frequency"])
	}
	first := entries[0].(map[string]any)["id"].(string)

	w, resp = ts.do(t, http.MethodPost, "/api/maintenance-forms", gin.H{
		"machineCode": "M-1",
		"scheduleId":  first,
		"frequency":   "Monthly",
		"date":        "2025-01-16",
		"preparedBy":  "An",
		"groups": []gin.H{{
			"title":        "Monthly mechanical",
			"requirements": []gin.H{{"titleEn": "Check belt tension", "accepted": true}},
		}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	formID := data(resp)["id"].(string)
	assert.Equal(t, first, data(resp)["scheduleEntryId"])

	w, resp = ts.do(t, http.MethodGet, "/api/machines/M-1/schedule", nil)
	require.Equal(t, http.StatusOK, w.Code)
	statuses := []any{}
	for _, e := range list(resp) {
		statuses = append(statuses, e.(map[string]any)["status"])
	}
	assert.Equal(t, "completed", statuses[0])
	assert.NotContains(t, statuses[1:], "completed")

	w, resp = ts.do(t, http.MethodGet, "/api/machines/M-1/maintenance-forms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["total"])

	w, _ = ts.do(t, http.MethodDelete, "/api/machines/M-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = ts.do(t, http.MethodGet, "/api/machine-types/MT-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), data(resp)["totalMachines"])

	w, resp = ts.do(t, http.MethodGet, "/api/maintenance-forms/"+formID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "M-1", data(resp)["machineCode"])
	assert.Equal(t, "MT-1 molder", data(resp)["machineTypeName"])
	assert.Nil(t, data(resp)["machine"])

	w, _ = ts.do(t, http.MethodGet, "/api/machines/M-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleEntryVersionConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.createType(t, "MT-1")
	ts.createMachine(t, "M-1", "MT-1")

	_, resp := ts.do(t, http.MethodPost, "/api/machines/M-1/schedule", gin.H{
		"frequency": "Weekly", "startDate": "2025-06-02", "count": 1,
	})
	entry := list(resp)[0].(map[string]any)
	id := entry["id"].(string)

	w, resp := ts.do(t, http.MethodPut, "/api/machines/M-1/schedule", gin.H{
		"id": id, "plannedDate": "2025-06-03", "version": 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(2), data(resp)["version"])

	w, _ = ts.do(t, http.MethodPut, "/api/machines/M-1/schedule", gin.H{
		"id": id, "actualDate": "2025-06-03", "version": 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp = ts.do(t, http.MethodPut, "/api/machines/M-1/schedule", gin.H{
		"id": id, "actualDate": "2025-06-03",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", data(resp)["status"])

	w, resp = ts.do(t, http.MethodPut, "/api/machines/M-1/schedule", gin.H{
		"id": id, "actualDate": "",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, data(resp)["actualDate"])

	w, _ = ts.do(t, http.MethodDelete, "/api/machines/M-1/schedule", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = ts.do(t, http.MethodDelete, "/api/machines/M-1/schedule?id="+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodDelete, "/api/machines/M-1/schedule?id="+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateScheduleInPlantZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	ts := newTestServerIn(t, loc)
	ts.createType(t, "MT-1")
	ts.createMachine(t, "M-1", "MT-1")

	w, resp := ts.do(t, http.MethodPost, "/api/machines/M-1/schedule", gin.H{
		"frequency": "Monthly", "startDate": "2025-03-01", "count": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var days []string
	for _, e := range list(resp) {
		planned, err := time.Parse(time.RFC3339, e.(map[string]any)["plannedDate"].(string))
		require.NoError(t, err)
		days = append(days, planned.In(loc).Format("2006-01-02"))
	}
	assert.Equal(t, []string{"2025-03-01", "2025-04-01", "2025-05-01"}, days)

	w, _ = ts.do(t, http.MethodPost, "/api/machines/M-1/schedule", gin.H{
		"frequency": "Daily", "startDate": "2025-03-01", "count": 1001,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorStatuses(t *testing.T) {
	ts := newTestServer(t)
	ts.createType(t, "MT-1")
	ts.createMachine(t, "M-1", "MT-1")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown machine", http.MethodGet, "/api/machines/NOPE", nil, http.StatusNotFound},
		{"duplicate type", http.MethodPost, "/api/machine-types", gin.H{"code": "MT-1", "name": "x", "templates": templates(5)}, http.StatusConflict},
		{"duplicate machine", http.MethodPost, "/api/machines", gin.H{"code": "M-1", "name": "x", "machineType": "MT-1"}, http.StatusConflict},
		{"type in use", http.MethodDelete, "/api/machine-types/MT-1", nil, http.StatusBadRequest},
		{"bad machine status", http.MethodPost, "/api/machines", gin.H{"code": "M-2", "name": "x", "machineType": "MT-1", "status": "Broken"}, http.StatusBadRequest},
		{"unknown frequency", http.MethodPost, "/api/maintenance-forms", gin.H{"machineCode": "M-1", "frequency": "Hourly"}, http.StatusBadRequest},
		{"form without machine", http.MethodPost, "/api/maintenance-forms", gin.H{"frequency": "Daily"}, http.StatusBadRequest},
		{"form for unknown machine", http.MethodPost, "/api/maintenance-forms", gin.H{"machineCode": "NOPE", "frequency": "Daily"}, http.StatusNotFound},
		{"form for unknown entry", http.MethodPost, "/api/maintenance-forms", gin.H{"machineCode": "M-1", "scheduleId": "missing", "frequency": "Daily"}, http.StatusNotFound},
		{"bad template frequency", http.MethodPut, "/api/machines/M-1/templates/Hourly", gin.H{"groups": testutil.Checklist("x")}, http.StatusBadRequest},
		{"bad calendar view", http.MethodGet, "/api/schedule?view=sideways", nil, http.StatusBadRequest},
		{"bad request priority", http.MethodPost, "/api/maintenance-requests", gin.H{"machineCode": "M-1", "problem": "leak", "priority": "Urgent"}, http.StatusBadRequest},
		{"unknown form", http.MethodGet, "/api/maintenance-forms/missing", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := ts.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Equal(t, false, resp["success"])
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestMachineTemplates(t *testing.T) {
	ts := newTestServer(t)
	ts.createType(t, "MT-1")
	ts.createMachine(t, "M-1", "MT-1")

	w, resp := ts.do(t, http.MethodGet, "/api/machines/M-1/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, list(resp), 5)

	w, resp = ts.do(t, http.MethodPut, "/api/machines/M-1/templates/half-yearly", gin.H{"groups": testutil.Checklist("custom")})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Half-Yearly", data(resp)["frequency"])

	// The type template is unaffected.
	w, resp = ts.do(t, http.MethodGet, "/api/machine-types/MT-1/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, tpl := range list(resp) {
		groups := tpl.(map[string]any)["groups"].([]any)
		assert.NotContains(t, groups[0].(map[string]any)["title"], "custom")
	}
}

func multipartBody(t *testing.T, payload any, field string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("data", string(raw)))
	for name, content := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestCreateMachineMultipart(t *testing.T) {
	ts := newTestServer(t)
	ts.createType(t, "MT-1")

	body, contentType := multipartBody(t, gin.H{"code": "M-1", "name": "Press", "machineType": "MT-1"}, "images", map[string][]byte{
		"front.png": []byte("front"),
		"back.png":  []byte("back"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/machines", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	images := data(testutil.ParseResponse(w))["images"].([]any)
	require.Len(t, images, 2)
	for _, img := range images {
		url := img.(string)
		assert.True(t, strings.HasPrefix(url, "/uploads/machines/"), url)

		onDisk := filepath.Join(ts.uploadDir, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/")))
		_, err := os.Stat(onDisk)
		assert.NoError(t, err)

		served := httptest.NewRecorder()
		ts.router.ServeHTTP(served, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusOK, served.Code)
	}

	body, contentType = multipartBody(t, gin.H{
		"code": "M-2", "name": "Press", "machineType": "MT-1",
		"images": []string{"/a.png", "/b.png"},
	}, "images", map[string][]byte{"c.png": []byte("c"), "d.png": []byte("d")})
	req = httptest.NewRequest(http.MethodPost, "/api/machines", body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarAndExport(t *testing.T) {
	ts := newTestServer(t)
	ts.createType(t, "MT-1")
	ts.createMachine(t, "M-1", "MT-1")
	ts.createMachine(t, "M-2", "MT-1")

	w, _ := ts.do(t, http.MethodPost, "/api/machines/M-1/schedule", gin.H{
		"frequency": "Monthly", "startDate": "2025-01-15", "count": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/api/machines/M-2/schedule", gin.H{
		"frequency": "Yearly", "startDate": "2024-12-31", "count": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := ts.do(t, http.MethodGet, "/api/schedule?year=2025&frequency=Monthly", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rows := data(resp)["rows"].([]any)
	require.Len(t, rows, 2)
	row := rows[0].(map[string]any)
	assert.Equal(t, "M-1", row["machine"].(map[string]any)["code"])
	months := row["months"].([]any)
	require.Len(t, months, 12)
	jan := months[0].([]any)
	require.Len(t, jan, 4)
	assert.Len(t, jan[1], 1)
	assert.Empty(t, jan[0])
	feb := months[1].([]any)
	assert.Len(t, feb[1], 1)

	// Every matching machine gets a row, even with nothing planned in the year.
	other := rows[1].(map[string]any)
	assert.Equal(t, "M-2", other["machine"].(map[string]any)["code"])
	for _, m := range other["months"].([]any) {
		for _, week := range m.([]any) {
			assert.Empty(t, week)
		}
	}

	w, resp = ts.do(t, http.MethodGet, "/api/schedule?year=2024&machineType=MT-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp["total"])
	dec := data(resp)["rows"].([]any)[1].(map[string]any)["months"].([]any)[11].([]any)
	assert.Len(t, dec[3], 1)

	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schedule/export?year=2025&machineCode=M-1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "maintenance-plan-2025.xlsx")

	book, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	code, err := book.GetCellValue("Plan 2025", "A3")
	require.NoError(t, err)
	assert.Equal(t, "M-1", code)
	days, err := book.GetCellValue("Plan 2025", "F3")
	require.NoError(t, err)
	assert.Equal(t, "15", days)
}

func TestListCacheIsInvalidatedByWrites(t *testing.T) {
	ts := newTestServer(t)
	ts.createType(t, "MT-1")
	ts.createMachine(t, "M-1", "MT-1")

	w, _ := ts.do(t, http.MethodGet, "/api/machines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, resp := ts.do(t, http.MethodGet, "/api/machines", nil)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, float64(1), resp["total"])

	ts.createMachine(t, "M-2", "MT-1")
	w, resp = ts.do(t, http.MethodGet, "/api/machines", nil)
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.Equal(t, float64(2), resp["total"])

	w, resp = ts.do(t, http.MethodGet, "/api/machine-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mt := list(resp)[0].(map[string]any)
	assert.Equal(t, float64(2), mt["totalMachines"])
}

func TestSparePartEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w, resp := ts.do(t, http.MethodPost, "/api/spare-parts", gin.H{
		"code": "SP-1", "name": "V-belt", "price": "12.50", "quantity": 2, "minQuantity": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, data(resp)["lowStock"])

	w, _ = ts.do(t, http.MethodPost, "/api/spare-parts", gin.H{
		"code": "SP-2", "name": "Bearing", "price": 3, "quantity": 40, "minQuantity": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = ts.do(t, http.MethodPost, "/api/spare-parts", gin.H{"code": "SP-3", "name": "Bad", "price": "-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = ts.do(t, http.MethodGet, "/api/spare-parts?lowStock=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, list(resp), 1)
	assert.Equal(t, "SP-1", list(resp)[0].(map[string]any)["code"])

	body, contentType := multipartBody(t, gin.H{"code": "SP-1", "name": "V-belt", "price": "12.50", "quantity": 9, "minQuantity": 5},
		"image", map[string][]byte{"belt.jpg": []byte("jpg")})
	req := httptest.NewRequest(http.MethodPut, "/api/spare-parts/SP-1", body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = testutil.ParseResponse(w)
	assert.Equal(t, false, data(resp)["lowStock"])
	assert.True(t, strings.HasPrefix(data(resp)["imageUrl"].(string), "/uploads/spare-parts/"))

	w, _ = ts.do(t, http.MethodDelete, "/api/spare-parts/SP-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodGet, "/api/spare-parts/SP-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMaintenanceRequestEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.createType(t, "MT-1")
	ts.createMachine(t, "M-1", "MT-1")

	var ids []string
	for i := 1; i <= 2; i++ {
		w, resp := ts.do(t, http.MethodPost, "/api/maintenance-requests", gin.H{
			"machineCode": "M-1", "problem": fmt.Sprintf("leak %d", i), "shift": "A",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, fmt.Sprintf("%04d", i), data(resp)["serial"])
		assert.Equal(t, "Pending", data(resp)["status"])
		assert.Equal(t, "Normal", data(resp)["priority"])
		assert.Equal(t, "Plant A", data(resp)["plant"])
		ids = append(ids, data(resp)["id"].(string))
	}

	w, resp := ts.do(t, http.MethodPut, "/api/maintenance-requests/"+ids[0], gin.H{
		"status": "In Progress", "startTime": "2025-03-01 08:00:00", "downtimeHours": 1.5, "rectified": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "In Progress", data(resp)["status"])
	assert.Equal(t, 1.5, data(resp)["downtimeHours"])
	assert.Equal(t, true, data(resp)["rectified"])

	w, _ = ts.do(t, http.MethodPut, "/api/maintenance-requests/"+ids[0], gin.H{"status": "Reopened"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = ts.do(t, http.MethodGet, "/api/maintenance-requests?status=In%20Progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["total"])

	w, _ = ts.do(t, http.MethodDelete, "/api/maintenance-requests/"+ids[1], nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodGet, "/api/maintenance-requests/"+ids[1], nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/maintenance-requests", gin.H{"machineCode": "NOPE", "problem": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
