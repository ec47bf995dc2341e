package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eventease/server/internal/domain/themes"
)

func themeRequest(method, userID, suffix string) *http.Request {
	r := httptest.NewRequest(method, "/api/v1/users/"+userID+"/theme"+suffix, nil)
	r.SetPathValue("id", userID)
	return r
}

func TestThemesGet_Default(t *testing.T) {
	f := newFixture()
	h := NewThemesHandler(f.themes, "test")

	w := httptest.NewRecorder()
	h.Get(w, themeRequest(http.MethodGet, "u1", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var resp themeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, themes.Light, resp.Mode)
}

func TestThemesToggle(t *testing.T) {
	f := newFixture()
	h := NewThemesHandler(f.themes, "test")

	w := httptest.NewRecorder()
	h.Toggle(w, themeRequest(http.MethodPost, "u1", "/toggle"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp themeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, themes.Dark, resp.Mode)

	// The flip sticks and toggles back.
	w = httptest.NewRecorder()
	h.Get(w, themeRequest(http.MethodGet, "u1", ""))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, themes.Dark, resp.Mode)

	w = httptest.NewRecorder()
	h.Toggle(w, themeRequest(http.MethodPost, "u1", "/toggle"))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, themes.Light, resp.Mode)
}

func TestHealthEndpoints(t *testing.T) {
	w := httptest.NewRecorder()
	Healthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	Readyz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ready"}`, w.Body.String())
}
