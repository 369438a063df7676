package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/internal/attendee/service"
	attendeestore "gatepass/internal/attendee/store/attendee"
	"gatepass/internal/attendee/store/counter"
)

func newAttendeeRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewService(
		attendeestore.NewInMemory(),
		service.NewAllocator(counter.NewInMemory()),
		logger,
		nil,
	)
	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func registerAttendee(t *testing.T, router http.Handler, scanCode, category, name string) AttendeeResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"scan_code": scanCode,
		"category":  category,
		"name":      name,
	})
	req := httptest.NewRequest(http.MethodPost, "/attendees", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var resp AttendeeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestRegisterAllocatesCode(t *testing.T) {
	router := newAttendeeRouter(t)

	first := registerAttendee(t, router, "AL-93F2", "alumni", "Asha Rao")
	assert.Equal(t, "AL-001", first.Code)
	assert.Equal(t, "alumni", first.Category)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Flags.Day1.Entrance)

	second := registerAttendee(t, router, "AL-77C1", "alumni", "Dev Iyer")
	assert.Equal(t, "AL-002", second.Code)
}

func TestRegisterValidation(t *testing.T) {
	router := newAttendeeRouter(t)

	post := func(payload map[string]string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/attendees", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := post(map[string]string{"category": "alumni", "name": "No Scan"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(map[string]string{"scan_code": "X-1", "category": "guest", "name": "Bad Category"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(map[string]string{"scan_code": "X-1", "category": "press"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing name")
}

func TestRegisterDuplicateScanCodeConflicts(t *testing.T) {
	router := newAttendeeRouter(t)
	registerAttendee(t, router, "STU-0001", "student", "First")

	body, _ := json.Marshal(map[string]string{
		"scan_code": "STU-0001", "category": "student", "name": "Second",
	})
	req := httptest.NewRequest(http.MethodPost, "/attendees", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestResolveScanFound(t *testing.T) {
	router := newAttendeeRouter(t)
	created := registerAttendee(t, router, "FL-42", "faculty", "Prof. Nair")

	req := httptest.NewRequest(http.MethodGet, "/attendees/scan/FL-42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AttendeeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "FL-001", resp.Code)
}

func TestResolveScanMissSuggestsCategory(t *testing.T) {
	router := newAttendeeRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/attendees/scan/AL-UNSEEN", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ScanMissResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "not_found", resp.Error)
	assert.Equal(t, "alumni", resp.SuggestedCategory)
}

func TestResolveScanMissWithoutRecognizablePrefix(t *testing.T) {
	router := newAttendeeRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/attendees/scan/ZZ-123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ScanMissResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.SuggestedCategory)
}

func TestSearchListsMatches(t *testing.T) {
	router := newAttendeeRouter(t)
	registerAttendee(t, router, "VL-A", "volunteer", "Asha Rao")
	registerAttendee(t, router, "VL-B", "volunteer", "Dev Iyer")

	req := httptest.NewRequest(http.MethodGet, "/attendees?query=asha", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []AttendeeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Asha Rao", resp[0].Name)
}
