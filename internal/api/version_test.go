package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionHandler(t *testing.T) {
	handler := VersionHandler("1.2.3", "abc123", "2026-01-02T00:00:00Z")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp versionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "1.2.3", resp.Version)
	require.Equal(t, "abc123", resp.GitCommit)
	require.Equal(t, "2026-01-02T00:00:00Z", resp.BuildDate)
	require.Equal(t, runtime.Version(), resp.GoVersion)
}

func TestVersionHandler_Defaults(t *testing.T) {
	handler := VersionHandler("", "", "")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	var resp versionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "dev", resp.Version)
	require.Equal(t, "unknown", resp.GitCommit)
	require.Equal(t, "unknown", resp.BuildDate)
}
