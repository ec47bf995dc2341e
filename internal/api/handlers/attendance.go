package handlers

import (
	"errors"
	"net/http"

	"github.com/eventease/server/internal/api/middleware"
	"github.com/eventease/server/internal/api/problem"
	"github.com/eventease/server/internal/domain/attendance"
	"github.com/eventease/server/internal/domain/events"
	"github.com/eventease/server/internal/metrics"
)

type AttendanceHandler struct {
	Ledger *attendance.Ledger
	Env    string
}

func NewAttendanceHandler(ledger *attendance.Ledger, env string) *AttendanceHandler {
	return &AttendanceHandler{Ledger: ledger, Env: env}
}

// Register signs the caller up for an event. The user key is the email the
// session was created for.
func (h *AttendanceHandler) Register(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized",
			errors.New("no session in request context"), h.Env)
		return
	}

	registration, err := h.Ledger.Register(r.Context(), session.UserID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrNotFound):
			metrics.EventRegistrations.WithLabelValues("error").Inc()
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env)
		case errors.Is(err, attendance.ErrAlreadyRegistered):
			metrics.EventRegistrations.WithLabelValues("duplicate").Inc()
			problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Already registered", err, h.Env)
		case errors.Is(err, events.ErrEventFull):
			metrics.EventRegistrations.WithLabelValues("full").Inc()
			problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Event is full", err, h.Env)
		default:
			metrics.EventRegistrations.WithLabelValues("error").Inc()
			problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		}
		return
	}

	metrics.EventRegistrations.WithLabelValues("registered").Inc()
	writeJSON(w, http.StatusCreated, registration)
}

// CheckIn marks a registration as attended.
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, attendance.StatusCheckedIn)
}

// NoShow marks a registration as missed.
func (h *AttendanceHandler) NoShow(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, attendance.StatusNoShow)
}

func (h *AttendanceHandler) transition(w http.ResponseWriter, r *http.Request, to attendance.Status) {
	eventID, err := eventIDParam(r)
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	userID := pathParam(r, "userID")
	if userID == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			errors.New("missing user id"), h.Env)
		return
	}

	switch to {
	case attendance.StatusCheckedIn:
		err = h.Ledger.CheckIn(r.Context(), userID, eventID)
	case attendance.StatusNoShow:
		err = h.Ledger.MarkNoShow(r.Context(), userID, eventID)
	}
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNotFound):
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env)
		case errors.Is(err, attendance.ErrInvalidStateTransition):
			problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Invalid status transition", err, h.Env)
		default:
			problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		}
		return
	}

	metrics.AttendanceTransitions.WithLabelValues(string(to)).Inc()
	w.WriteHeader(http.StatusNoContent)
}

type eventRegistrationsResponse struct {
	Items     []attendance.Registration `json:"items"`
	Count     int                       `json:"count"`
	CheckedIn int                       `json:"checked_in"`
}

// EventRegistrations lists registrations for an event, oldest first.
func (h *AttendanceHandler) EventRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	items := h.Ledger.EventRegistrations(r.Context(), eventID)
	writeJSON(w, http.StatusOK, eventRegistrationsResponse{
		Items:     items,
		Count:     len(items),
		CheckedIn: h.Ledger.EventAttendanceCount(r.Context(), eventID),
	})
}

// Stats returns ledger-wide attendance counts.
func (h *AttendanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Ledger.Stats(r.Context()))
}
