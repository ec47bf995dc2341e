package handlers

import (
	"errors"
	"net/http"

	"github.com/eventease/server/internal/api/middleware"
	"github.com/eventease/server/internal/api/problem"
	"github.com/eventease/server/internal/domain/sessions"
)

type SessionsHandler struct {
	Manager *sessions.Manager
	Env     string
}

func NewSessionsHandler(manager *sessions.Manager, env string) *SessionsHandler {
	return &SessionsHandler{Manager: manager, Env: env}
}

type sessionListResponse struct {
	Sessions []sessions.Session `json:"sessions"`
	Count    int                `json:"count"`
}

// ListActive returns all active sessions in creation order.
func (h *SessionsHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	active := h.Manager.ListActive(r.Context())
	writeJSON(w, http.StatusOK, sessionListResponse{Sessions: active, Count: len(active)})
}

// Touch refreshes the caller's session activity and returns the session.
// The auth middleware has already touched it; this re-reads the fresh state.
func (h *SessionsHandler) Touch(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized",
			errors.New("no session in request context"), h.Env)
		return
	}

	current, err := h.Manager.Get(r.Context(), session.ID)
	if err != nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, current)
}

// Logout ends the caller's session.
func (h *SessionsHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized",
			errors.New("no session in request context"), h.Env)
		return
	}

	if err := h.Manager.End(r.Context(), session.ID); err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
