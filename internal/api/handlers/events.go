package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/eventease/server/internal/api/problem"
	"github.com/eventease/server/internal/domain/events"
	"github.com/eventease/server/internal/perf"
)

type EventsHandler struct {
	Catalog *events.Store
	Perf    *perf.Monitor
	Env     string
}

func NewEventsHandler(catalog *events.Store, monitor *perf.Monitor, env string) *EventsHandler {
	return &EventsHandler{Catalog: catalog, Perf: monitor, Env: env}
}

type eventListResponse struct {
	Items []events.Event `json:"items"`
	Count int            `json:"count"`
}

// List returns the catalog, filtered by the optional q query parameter.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var items []events.Event
	query := r.URL.Query().Get("q")
	if query != "" {
		items = h.Catalog.Search(r.Context(), query)
		h.record("events.search", start)
	} else {
		items = h.Catalog.List(r.Context())
		h.record("events.list", start)
	}

	writeJSON(w, http.StatusOK, eventListResponse{Items: items, Count: len(items)})
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	start := time.Now()
	event, err := h.Catalog.Get(r.Context(), id)
	h.record("events.get", start)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (h *EventsHandler) record(operation string, start time.Time) {
	if h.Perf != nil {
		h.Perf.Record(operation, time.Since(start))
	}
}
