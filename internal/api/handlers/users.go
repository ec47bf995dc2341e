package handlers

import (
	"errors"
	"net/http"

	"github.com/eventease/server/internal/api/problem"
	"github.com/eventease/server/internal/domain/attendance"
	"github.com/eventease/server/internal/domain/users"
)

type UsersHandler struct {
	Directory *users.Directory
	Ledger    *attendance.Ledger
	Env       string
}

func NewUsersHandler(directory *users.Directory, ledger *attendance.Ledger, env string) *UsersHandler {
	return &UsersHandler{Directory: directory, Ledger: ledger, Env: env}
}

type profileListResponse struct {
	Items []users.Profile `json:"items"`
	Count int             `json:"count"`
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles := h.Directory.List(r.Context())
	writeJSON(w, http.StatusOK, profileListResponse{Items: profiles, Count: len(profiles)})
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Update replaces a profile wholesale. The id comes from the path; any id in
// the body is ignored.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			errors.New("missing user id"), h.Env)
		return
	}

	var input users.Profile
	if err := decodeJSON(r, &input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	input.ID = id

	if err := input.Validate(); err != nil {
		writeValidationProblem(w, r, err, h.Env)
		return
	}

	if err := h.Directory.Update(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env)
		case errors.Is(err, users.ErrDuplicateEmail):
			problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Email already registered", err, h.Env)
		default:
			problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		}
		return
	}

	updated, err := h.Directory.GetByID(r.Context(), id)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if err := h.Directory.Delete(r.Context(), id); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type registrationListResponse struct {
	Items []attendance.Registration `json:"items"`
	Count int                       `json:"count"`
}

// Registrations lists a user's event registrations, newest first. The
// attendance ledger is keyed by email, so the profile is resolved first.
func (h *UsersHandler) Registrations(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.lookup(w, r)
	if !ok {
		return
	}

	items := h.Ledger.UserRegistrations(r.Context(), profile.Email)
	writeJSON(w, http.StatusOK, registrationListResponse{Items: items, Count: len(items)})
}

func (h *UsersHandler) lookup(w http.ResponseWriter, r *http.Request) (users.Profile, bool) {
	id := pathParam(r, "id")
	if id == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			errors.New("missing user id"), h.Env)
		return users.Profile{}, false
	}

	profile, err := h.Directory.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env)
			return users.Profile{}, false
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return users.Profile{}, false
	}
	return profile, true
}
