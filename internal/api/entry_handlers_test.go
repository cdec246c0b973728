package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal"
	api "github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/api"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/auth"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/config"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/response"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/service"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/storage"
)

const testToken = "MOCK-TOKEN"

type testApp struct {
	workouts *service.WorkoutService
}

func (a *testApp) Logger() internal.Logger           { return internal.NopLogger{} }
func (a *testApp) Workouts() *service.WorkoutService { return a.workouts }

func setupRouter(t *testing.T) (*gin.Engine, *storage.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	a := &testApp{workouts: service.NewWorkoutService(store, internal.NopLogger{})}
	cfg := &config.Config{Env: "development"}
	provider := auth.NewLocalAuthProvider(testToken, internal.NopLogger{})

	r := gin.New()
	r.Use(api.RequestIDMiddleware())
	protected := r.Group("/", auth.AuthMiddleware(provider, cfg))
	protected.POST("/entries", api.PostEntry(a))
	protected.GET("/entries", api.GetEntries(a))
	protected.DELETE("/entries/:id", api.DeleteEntry(a))
	protected.POST("/entries/export", api.PostExport(a))
	protected.GET("/entries/stats", api.GetStats(a))
	return r, store
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	r.ServeHTTP(rec, req)
	return rec
}

func TestPostEntry_ValidAndInvalid(t *testing.T) {
	r, _ := setupRouter(t)

	body := `{"exercise_name":"Bench Press","sets":[{"reps":10,"weight":135.0},{"reps":8,"weight":155.0}]}`
	rec := doRequest(r, "POST", "/entries", body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	entry, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Bench Press", entry["exercise_name"])
	assert.NotEmpty(t, entry["id"])

	// Invalid: missing exercise name
	rec = doRequest(r, "POST", "/entries", `{"sets":[{"reps":10}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Invalid: no sets
	rec = doRequest(r, "POST", "/entries", `{"exercise_name":"Squat","sets":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Invalid: broken JSON
	rec = doRequest(r, "POST", "/entries", `{"exercise_name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEntries_ReturnsHistory(t *testing.T) {
	r, _ := setupRouter(t)

	rec := doRequest(r, "POST", "/entries", `{"exercise_name":"Squat","sets":[{"reps":5,"weight":225.0}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(r, "GET", "/entries", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	entries, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, entries, 1)
	assert.Equal(t, float64(1), resp.Meta["count"])
}

func TestDeleteEntry_FoundAndNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	rec := doRequest(r, "POST", "/entries", `{"exercise_name":"Deadlift","sets":[{"reps":3,"weight":315.0}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	id := resp.Data.(map[string]interface{})["id"].(string)

	rec = doRequest(r, "DELETE", "/entries/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(r, "DELETE", "/entries/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(r, "GET", "/entries", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestPostExport_ReturnsLocation(t *testing.T) {
	r, store := setupRouter(t)

	rec := doRequest(r, "POST", "/entries", `{"exercise_name":"Row","sets":[{"reps":12}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(r, "POST", "/entries/export", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, storage.MemoryExportPath, resp.Meta["location"])
	assert.Contains(t, string(store.ExportedData()), "Row")
}

func TestGetStats(t *testing.T) {
	r, _ := setupRouter(t)

	rec := doRequest(r, "POST", "/entries", `{"exercise_name":"Bench Press","sets":[{"reps":10,"weight":100.0},{"reps":8,"weight":100.0}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(r, "GET", "/entries/stats", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	stats := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_entries"])
	assert.Equal(t, float64(2), stats["total_sets"])
	assert.Equal(t, float64(1800), stats["total_volume"])
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	r, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/entries", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/entries", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
