package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/mauvelian/internal/dateservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events/stream inside the
// auth group.
func NewRouter(svc *dateservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Conversions.
	r.Post("/convert/mauvelian", h.ConvertToMauvelian)
	r.Post("/convert/real", h.ConvertToReal)
	r.Get("/today", h.Today)
	r.Post("/between", h.Between)

	// Calendar structure.
	r.Get("/seasons", h.Seasons)

	// Reference pair.
	r.Get("/reference", h.GetReference)
	r.Put("/reference", h.PutReference)
	r.Delete("/reference", h.DeleteReference)

	// Almanac events. The static /events/stream segment wins over the
	// {name} wildcard, so "stream" is not usable as an event name here.
	r.Get("/events", h.ListEvents)
	r.Post("/events", h.CreateEvent)
	r.Get("/events/{name}", h.GetEvent)
	r.Delete("/events/{name}", h.DeleteEvent)
	r.Get("/events/{name}/real", h.EventReal)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events/stream", sseHandler.ServeHTTP)
	}

	return r
}
