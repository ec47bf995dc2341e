package handlers

import (
	"errors"
	"net/http"

	"github.com/eventease/server/internal/api/problem"
	"github.com/eventease/server/internal/domain/auth"
	"github.com/eventease/server/internal/domain/sessions"
	"github.com/eventease/server/internal/domain/users"
	"github.com/eventease/server/internal/metrics"
)

type AuthHandler struct {
	Accounts  *auth.Service
	Directory *users.Directory
	Sessions  *sessions.Manager
	Tokens    *auth.TokenManager
	Env       string
}

func NewAuthHandler(accounts *auth.Service, directory *users.Directory, manager *sessions.Manager, tokens *auth.TokenManager, env string) *AuthHandler {
	return &AuthHandler{
		Accounts:  accounts,
		Directory: directory,
		Sessions:  manager,
		Tokens:    tokens,
		Env:       env,
	}
}

// Register creates a credential and a directory profile for a new account.
// The credential store is the atomic gate against duplicate emails; the
// profile is only created once the credential insert has succeeded.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input users.Registration
	if err := decodeJSON(r, &input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	if err := input.Validate(); err != nil {
		writeValidationProblem(w, r, err, h.Env)
		return
	}

	_, err := h.Accounts.Register(r.Context(), auth.RegisterParams{
		Email:       input.Email,
		Password:    input.Password,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Phone:       input.Phone,
		DateOfBirth: input.DateOfBirth,
		Company:     input.Company,
		JobTitle:    input.JobTitle,
	})
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Email already registered", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	profile, err := h.Directory.Register(r.Context(), input.Profile)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string           `json:"token"`
	Session sessions.Session `json:"session"`
}

// Login verifies credentials and starts a session. Any session already
// active for the email is replaced.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if err := decodeJSON(r, &input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	if input.Email == "" || input.Password == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			errors.New("email and password are required"), h.Env)
		return
	}

	credential, err := h.Accounts.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		metrics.Logins.WithLabelValues("failure").Inc()
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Invalid credentials", err, h.Env)
		return
	}

	fullName := credential.FirstName + " " + credential.LastName
	if profile, err := h.Directory.GetByEmail(r.Context(), credential.Email); err == nil {
		fullName = profile.FullName()
	}

	session, err := h.Sessions.Create(r.Context(), credential.Email, fullName)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	token, err := h.Tokens.Generate(session.ID, session.Email)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	metrics.Logins.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Session: session})
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

// Exists reports whether an email is already registered, for client-side
// signup checks.
func (h *AuthHandler) Exists(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			errors.New("email query parameter is required"), h.Env)
		return
	}

	writeJSON(w, http.StatusOK, existsResponse{Exists: h.Accounts.EmailExists(r.Context(), email)})
}

// writeValidationProblem maps a field-level validation failure to a 422
// problem document with per-field messages.
func writeValidationProblem(w http.ResponseWriter, r *http.Request, err error, env string) {
	var verr *users.ValidationError
	if errors.As(err, &verr) {
		problem.Write(w, r, http.StatusUnprocessableEntity, problem.TypeValidation, "Invalid request", err, env,
			problem.WithDetail("one or more fields failed validation"),
			problem.WithErrors(verr.Fields),
		)
		return
	}
	problem.Write(w, r, http.StatusUnprocessableEntity, problem.TypeValidation, "Invalid request", err, env)
}
