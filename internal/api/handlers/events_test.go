package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventsList(t *testing.T) {
	f := newFixture()
	h := NewEventsHandler(f.catalog, f.monitor, "test")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	w := httptest.NewRecorder()
	h.List(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp eventListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 15, resp.Count)
	require.Len(t, resp.Items, 15)
	require.Equal(t, "Tech Innovation Summit 2026", resp.Items[0].Name)
}

func TestEventsList_Search(t *testing.T) {
	f := newFixture()
	h := NewEventsHandler(f.catalog, f.monitor, "test")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/events?q=jazz", nil)
	w := httptest.NewRecorder()
	h.List(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp eventListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Items)
	for _, item := range resp.Items {
		require.Contains(t, item.Name, "Jazz")
	}
}

func TestEventsList_RecordsTimings(t *testing.T) {
	f := newFixture()
	h := NewEventsHandler(f.catalog, f.monitor, "test")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	h.List(httptest.NewRecorder(), r)

	_, ok := f.monitor.Average("events.list")
	require.True(t, ok)
}

func TestEventsGet(t *testing.T) {
	f := newFixture()
	h := NewEventsHandler(f.catalog, f.monitor, "test")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/events/3", nil)
	r.SetPathValue("id", "3")
	w := httptest.NewRecorder()
	h.Get(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, float64(3), body["id"])
}

func TestEventsGet_NotFound(t *testing.T) {
	f := newFixture()
	h := NewEventsHandler(f.catalog, f.monitor, "test")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/events/999", nil)
	r.SetPathValue("id", "999")
	w := httptest.NewRecorder()
	h.Get(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestEventsGet_BadID(t *testing.T) {
	f := newFixture()
	h := NewEventsHandler(f.catalog, f.monitor, "test")

	for _, raw := range []string{"abc", "0", "-1", ""} {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/events/"+raw, nil)
		r.SetPathValue("id", raw)
		w := httptest.NewRecorder()
		h.Get(w, r)
		require.Equal(t, http.StatusBadRequest, w.Code, "id %q", raw)
	}
}
