package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/jera/internal/habitservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *habitservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Habits CRUD.
	r.Get("/habits", h.ListHabits)
	r.Post("/habits", h.CreateHabit)
	r.Put("/habits/{id}", h.UpdateHabit)
	r.Delete("/habits/{id}", h.DeleteHabit)

	// Completion entries.
	r.Post("/entries/toggle", h.ToggleEntry)
	r.Get("/entries", h.ListEntries)

	// Month grid and aggregation.
	r.Get("/calendar/{year}/{month}", h.Calendar)
	r.Get("/habits/{id}/summary", h.HabitSummary)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
