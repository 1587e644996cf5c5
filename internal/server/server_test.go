package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markwat1/feeding/internal/model"
)

// newTestServer wires the full stack against an in-memory database.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := New(Config{Port: 0, DBPath: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv.Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPetLifecycle(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/pets",
		map[string]any{"name": "Momo", "species": "Hamster", "birthDate": "2023-05-01"})
	require.Equal(t, http.StatusCreated, rec.Code)
	pet := decodeBody[model.Pet](t, rec)
	assert.Equal(t, "Momo", pet.Name)
	require.NotZero(t, pet.ID)

	rec = doJSON(t, h, http.MethodGet, "/api/pets/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/pets/1", map[string]any{"name": "Momotaro"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[model.Pet](t, rec)
	assert.Equal(t, "Momotaro", updated.Name)
	assert.Equal(t, "Hamster", updated.Species)

	rec = doJSON(t, h, http.MethodDelete, "/api/pets/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/pets/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "not_found", body["error"])
	assert.NotEmpty(t, body["message"])
}

func TestPetCreate_ValidationErrorShape(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/pets", map[string]any{"species": "Hamster"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "validation_error", body["error"])
}

func TestFeedingScheduleCreate_InvalidReference(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/feeding-schedules",
		map[string]any{"time": "08:00", "foodTypeId": 999})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "invalid_reference", body["error"])
}

func TestFoodTypeDelete_Conflict(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/food-types", map[string]any{"name": "Pellet Mix"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/feeding-schedules",
		map[string]any{"time": "08:00", "foodTypeId": 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/food-types/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "conflict", body["error"])

	// The food type must survive the blocked delete.
	rec = doJSON(t, h, http.MethodGet, "/api/food-types/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFeedingRecordStatsAndExport(t *testing.T) {
	h := newTestServer(t)

	require.Equal(t, http.StatusCreated,
		doJSON(t, h, http.MethodPost, "/api/food-types", map[string]any{"name": "Test Food"}).Code)
	require.Equal(t, http.StatusCreated,
		doJSON(t, h, http.MethodPost, "/api/feeding-schedules",
			map[string]any{"time": "08:00", "foodTypeId": 1}).Code)

	for _, completed := range []bool{true, false} {
		rec := doJSON(t, h, http.MethodPost, "/api/feeding-records", map[string]any{
			"feedingScheduleId": 1,
			"actualTime":        "2023-10-28T08:05:00",
			"completed":         completed,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet,
		"/api/feeding-records/stats?startDate=2023-10-28&endDate=2023-10-28", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody[model.CompletionStats](t, rec)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 50.0, stats.Rate)

	// Missing bounds are a validation error, not an empty result.
	rec = doJSON(t, h, http.MethodGet, "/api/feeding-records/stats?startDate=2023-10-28", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet,
		"/api/feeding-records/export?startDate=2023-10-28&endDate=2023-10-28", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "feeding_records_2023-10-28_2023-10-28.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\ufeff"), "CSV must start with a UTF-8 BOM")
	assert.Contains(t, rec.Body.String(), "完食")
}

func TestFeedingRecordListPagination(t *testing.T) {
	h := newTestServer(t)

	require.Equal(t, http.StatusCreated,
		doJSON(t, h, http.MethodPost, "/api/food-types", map[string]any{"name": "Test Food"}).Code)
	require.Equal(t, http.StatusCreated,
		doJSON(t, h, http.MethodPost, "/api/feeding-schedules",
			map[string]any{"time": "08:00", "foodTypeId": 1}).Code)

	for _, actualTime := range []string{
		"2023-10-26T08:00:00", "2023-10-27T08:00:00", "2023-10-28T08:00:00",
	} {
		rec := doJSON(t, h, http.MethodPost, "/api/feeding-records", map[string]any{
			"feedingScheduleId": 1,
			"actualTime":        actualTime,
			"completed":         true,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/feeding-records?limit=1&offset=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeBody[[]model.FeedingRecord](t, rec)
	require.Len(t, page, 1)
	assert.Equal(t, "2023-10-28T08:00:00", page[0].ActualTime)

	rec = doJSON(t, h, http.MethodGet, "/api/feeding-records?limit=1&offset=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decodeBody[[]model.FeedingRecord](t, rec)
	require.Len(t, page, 1)
	assert.Equal(t, "2023-10-27T08:00:00", page[0].ActualTime)

	rec = doJSON(t, h, http.MethodGet, "/api/feeding-records?limit=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedingRecordCreate_RequiresCompleted(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/feeding-records", map[string]any{
		"feedingScheduleId": 1,
		"actualTime":        "2023-10-28T08:05:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "validation_error", body["error"])
}

func TestWeightRecordLatestRoute(t *testing.T) {
	h := newTestServer(t)

	require.Equal(t, http.StatusCreated,
		doJSON(t, h, http.MethodPost, "/api/pets", map[string]any{"name": "Momo", "species": "Hamster"}).Code)

	rec := doJSON(t, h, http.MethodGet, "/api/weight-records/latest/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusCreated,
		doJSON(t, h, http.MethodPost, "/api/weight-records",
			map[string]any{"petId": 1, "weight": 0.12, "recordedDate": "2023-10-28"}).Code)

	rec = doJSON(t, h, http.MethodGet, "/api/weight-records/latest/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	latest := decodeBody[model.WeightRecord](t, rec)
	assert.Equal(t, 0.12, latest.Weight)
	require.NotNil(t, latest.Pet)
	assert.Equal(t, "Momo", latest.Pet.Name)
}

func TestMaintenanceRecentAndStatsRoutes(t *testing.T) {
	h := newTestServer(t)

	require.Equal(t, http.StatusCreated,
		doJSON(t, h, http.MethodPost, "/api/maintenance-records",
			map[string]any{"type": "water", "performedAt": "2023-10-28T09:00:00"}).Code)
	require.Equal(t, http.StatusCreated,
		doJSON(t, h, http.MethodPost, "/api/maintenance-records",
			map[string]any{"type": "toilet", "performedAt": "2023-10-28T10:00:00"}).Code)

	rec := doJSON(t, h, http.MethodGet,
		"/api/maintenance-records/stats?startDate=2023-10-01&endDate=2023-10-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody[model.MaintenanceStats](t, rec)
	assert.Equal(t, 1, stats.Water)
	assert.Equal(t, 1, stats.Toilet)
	assert.Equal(t, 2, stats.Total)

	rec = doJSON(t, h, http.MethodGet, "/api/maintenance-records/recent?days=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/maintenance-records?type=water", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	records := decodeBody[[]model.MaintenanceRecord](t, rec)
	require.Len(t, records, 1)
	assert.Equal(t, model.MaintenanceWater, records[0].Type)
}

func TestActiveScheduleFilterRoute(t *testing.T) {
	h := newTestServer(t)

	require.Equal(t, http.StatusCreated,
		doJSON(t, h, http.MethodPost, "/api/food-types", map[string]any{"name": "Pellet Mix"}).Code)
	require.Equal(t, http.StatusCreated,
		doJSON(t, h, http.MethodPost, "/api/feeding-schedules",
			map[string]any{"time": "08:00", "foodTypeId": 1}).Code)
	require.Equal(t, http.StatusCreated,
		doJSON(t, h, http.MethodPost, "/api/feeding-schedules",
			map[string]any{"time": "20:00", "foodTypeId": 1, "isActive": false}).Code)

	rec := doJSON(t, h, http.MethodGet, "/api/feeding-schedules?active=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	schedules := decodeBody[[]model.FeedingSchedule](t, rec)
	require.Len(t, schedules, 1)
	assert.Equal(t, "08:00", schedules[0].Time)

	rec = doJSON(t, h, http.MethodGet, "/api/feeding-schedules", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[[]model.FeedingSchedule](t, rec)
	assert.Len(t, all, 2)
}
