package handlers

import (
	"errors"
	"net/http"

	"github.com/eventease/server/internal/api/problem"
	"github.com/eventease/server/internal/domain/themes"
)

type ThemesHandler struct {
	Store *themes.Store
	Env   string
}

func NewThemesHandler(store *themes.Store, env string) *ThemesHandler {
	return &ThemesHandler{Store: store, Env: env}
}

type themeResponse struct {
	Mode themes.Mode `json:"mode"`
}

// Get returns the user's theme preference, or the default when unset.
func (h *ThemesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "id")
	if userID == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			errors.New("missing user id"), h.Env)
		return
	}

	writeJSON(w, http.StatusOK, themeResponse{Mode: h.Store.Get(r.Context(), userID)})
}

// Toggle flips the user's theme and returns the new mode.
func (h *ThemesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "id")
	if userID == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			errors.New("missing user id"), h.Env)
		return
	}

	writeJSON(w, http.StatusOK, themeResponse{Mode: h.Store.Toggle(r.Context(), userID)})
}
