package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/jera/internal/apperr"
	"github.com/starford/jera/internal/habitservice"
	"github.com/starford/jera/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc *habitservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *habitservice.Service) *Handler {
	return &Handler{svc: svc}
}

// writeServiceError maps domain errors to HTTP responses. All errors
// are scoped to the current request; nothing here is fatal.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListHabits handles GET /api/habits.
func (h *Handler) ListHabits(w http.ResponseWriter, r *http.Request) {
	habits := h.svc.ListHabits(r.Context())
	if habits == nil {
		habits = []models.Habit{}
	}
	writeJSON(w, http.StatusOK, HabitListResponse{Habits: habits})
}

// CreateHabit handles POST /api/habits.
func (h *Handler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req HabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	habit, err := h.svc.CreateHabit(r.Context(), req.Name, req.Icon, req.Color)
	if err != nil {
		writeServiceError(w, "create habit", err)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

// UpdateHabit handles PUT /api/habits/{id}.
func (h *Handler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := chi.URLParam(r, "id")
	var req HabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	habit, err := h.svc.UpdateHabit(r.Context(), id, req.Name, req.Icon, req.Color)
	if err != nil {
		writeServiceError(w, "update habit", err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

// DeleteHabit handles DELETE /api/habits/{id}.
func (h *Handler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteHabit(r.Context(), id); err != nil {
		writeServiceError(w, "delete habit", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleEntry handles POST /api/entries/toggle.
func (h *Handler) ToggleEntry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	marked, err := h.svc.ToggleEntry(r.Context(), req.HabitID, req.Date)
	if err != nil {
		writeServiceError(w, "toggle entry", err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{
		HabitID: req.HabitID,
		Date:    req.Date,
		Marked:  marked,
	})
}

// ListEntries handles GET /api/entries. Accepts either ?date= for a
// single day or ?from=&to= for an inclusive range.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	from, to := q.Get("from"), q.Get("to")

	var entries []models.Entry
	var err error
	switch {
	case date != "":
		entries, err = h.svc.EntriesOn(r.Context(), date)
	case from != "" && to != "":
		entries, err = h.svc.EntriesInRange(r.Context(), from, to)
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("date or from/to query parameters are required"))
		return
	}
	if err != nil {
		writeServiceError(w, "list entries", err)
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	writeJSON(w, http.StatusOK, EntryListResponse{Entries: entries})
}

// Calendar handles GET /api/calendar/{year}/{month}.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid year"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid month"))
		return
	}
	view, err := h.svc.Month(r.Context(), year, time.Month(month))
	if err != nil {
		writeServiceError(w, "calendar", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HabitSummary handles GET /api/habits/{id}/summary.
func (h *Handler) HabitSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("year query parameter is required"))
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("month query parameter is required"))
		return
	}
	count, err := h.svc.MonthlyCount(r.Context(), id, year, time.Month(month))
	if err != nil {
		writeServiceError(w, "habit summary", err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{
		HabitID: id,
		Year:    year,
		Month:   month,
		Count:   count,
	})
}
