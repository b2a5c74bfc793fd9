package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starford/mauvelian/internal/apperr"
	"github.com/starford/mauvelian/internal/dateparse"
	"github.com/starford/mauvelian/internal/dateservice"
	"github.com/starford/mauvelian/internal/mauvelian"
)

// Handler holds API route handlers.
type Handler struct {
	svc *dateservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *dateservice.Service) *Handler {
	return &Handler{svc: svc}
}

// eventName extracts the event name from the URL. Supports encoded
// names from OpenAPI clients (e.g. Harvest%20Feast).
func eventName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// writeError maps domain errors onto HTTP statuses. Unexpected errors
// are logged and reported as a plain 500.
func writeError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument), errors.Is(err, apperr.ErrPartialReference):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrReferenceNotSet):
		writeJSON(w, http.StatusConflict, errorBody("reference point not set"))
	case errors.Is(err, apperr.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody("event already exists"))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	default:
		slog.Error(what+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ConvertToMauvelian handles POST /api/convert/mauvelian.
//
//	@Summary		Convert a real calendar day to its Mauvelian date
//	@Tags			convert
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ConvertRealRequest	true	"Real calendar day"
//	@Success		200		{object}	ConversionDetail
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/convert/mauvelian [post]
func (h *Handler) ConvertToMauvelian(w http.ResponseWriter, r *http.Request) {
	var req ConvertRealRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	day, err := dateparse.Real(req.Real)
	if err != nil {
		writeError(w, err, "convert to mauvelian")
		return
	}
	detail, err := h.svc.ToMauvelian(r.Context(), day)
	if err != nil {
		writeError(w, err, "convert to mauvelian")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// ConvertToReal handles POST /api/convert/real.
//
//	@Summary		Convert a Mauvelian date to its real calendar day
//	@Tags			convert
//	@Accept			json
//	@Produce		json
//	@Param			body	body		DateRequest	true	"Mauvelian date"
//	@Success		200		{object}	ConversionDetail
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/convert/real [post]
func (h *Handler) ConvertToReal(w http.ResponseWriter, r *http.Request) {
	var req DateRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	d, err := req.date()
	if err != nil {
		writeError(w, err, "convert to real")
		return
	}
	detail, err := h.svc.ToReal(r.Context(), d)
	if err != nil {
		writeError(w, err, "convert to real")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Today handles GET /api/today.
//
//	@Summary		Today's date on the Mauvelian calendar
//	@Tags			convert
//	@Produce		json
//	@Success		200	{object}	ConversionDetail
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/today [get]
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Today(r.Context())
	if err != nil {
		writeError(w, err, "today")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Between handles POST /api/between.
//
//	@Summary		Absolute distance in days between two Mauvelian dates
//	@Tags			convert
//	@Accept			json
//	@Produce		json
//	@Param			body	body		BetweenRequest	true	"Date pair"
//	@Success		200		{object}	BetweenResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/between [post]
func (h *Handler) Between(w http.ResponseWriter, r *http.Request) {
	var req BetweenRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	a, err := req.A.date()
	if err != nil {
		writeError(w, err, "between")
		return
	}
	b, err := req.B.date()
	if err != nil {
		writeError(w, err, "between")
		return
	}
	writeJSON(w, http.StatusOK, BetweenResponse{Days: h.svc.Between(r.Context(), a, b)})
}

// Seasons handles GET /api/seasons.
//
//	@Summary		The four Mauvelian seasons with their day ranges
//	@Tags			convert
//	@Produce		json
//	@Success		200	{object}	SeasonListResponse
//	@Security		BearerAuth
//	@Router			/seasons [get]
func (h *Handler) Seasons(w http.ResponseWriter, r *http.Request) {
	seasons := mauvelian.Seasons()
	out := make([]SeasonInfo, len(seasons))
	for i, s := range seasons {
		out[i] = SeasonInfo{
			Name:     s.Name(),
			FirstDay: s.FirstDay(),
			LastDay:  s.LastDay(),
			Days:     s.Days(),
		}
	}
	writeJSON(w, http.StatusOK, SeasonListResponse{Seasons: out})
}

// GetReference handles GET /api/reference.
//
//	@Summary		The stored reference pair
//	@Tags			reference
//	@Produce		json
//	@Success		200	{object}	ReferenceDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/reference [get]
func (h *Handler) GetReference(w http.ResponseWriter, r *http.Request) {
	detail, ok := h.svc.Reference(r.Context())
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("reference point not set"))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// PutReference handles PUT /api/reference.
//
//	@Summary		Store the reference pair anchoring the two calendars
//	@Tags			reference
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ReferenceRequest	true	"Reference pair"
//	@Success		200		{object}	ReferenceDetail
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/reference [put]
func (h *Handler) PutReference(w http.ResponseWriter, r *http.Request) {
	var req ReferenceRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	var ref mauvelian.Reference
	if req.Real != "" {
		day, err := dateparse.Real(req.Real)
		if err != nil {
			writeError(w, err, "put reference")
			return
		}
		ref.Real = day
	}
	if req.Mauvelian != (DateRequest{}) {
		d, err := req.Mauvelian.date()
		if err != nil {
			writeError(w, err, "put reference")
			return
		}
		ref.Mauvelian = d
	}
	if err := h.svc.SetReference(r.Context(), ref); err != nil {
		writeError(w, err, "put reference")
		return
	}
	detail, ok := h.svc.Reference(r.Context())
	if !ok {
		// An all-zero pair clears the reference.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// DeleteReference handles DELETE /api/reference.
//
//	@Summary		Clear the stored reference pair
//	@Tags			reference
//	@Success		204	"Reference cleared"
//	@Security		BearerAuth
//	@Router			/reference [delete]
func (h *Handler) DeleteReference(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearReference(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ListEvents handles GET /api/events.
//
//	@Summary		List almanac events in calendar order
//	@Tags			events
//	@Produce		json
//	@Param			q		query		string	false	"Search in names and notes"
//	@Param			limit	query		int		false	"Max search results"
//	@Success		200		{object}	EventListResponse
//	@Security		BearerAuth
//	@Router			/events [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	var (
		events []EventDetail
		err    error
	)
	if q != "" {
		events, err = h.svc.SearchEvents(r.Context(), q, limit)
	} else {
		events, err = h.svc.ListEvents(r.Context())
	}
	if err != nil {
		writeError(w, err, "list events")
		return
	}
	if events == nil {
		events = []EventDetail{}
	}
	writeJSON(w, http.StatusOK, EventListResponse{Events: events, Total: len(events)})
}

// CreateEvent handles POST /api/events.
//
//	@Summary		Save an almanac event
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateEventRequest	true	"Event to save"
//	@Success		201		{object}	EventDetail
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	d, err := req.Date.date()
	if err != nil {
		writeError(w, err, "create event")
		return
	}
	detail, err := h.svc.SaveEvent(r.Context(), req.Name, d, req.Note, req.Replace)
	if err != nil {
		writeError(w, err, "create event")
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

// GetEvent handles GET /api/events/{name}.
//
//	@Summary		Get a single almanac event by name
//	@Tags			events
//	@Produce		json
//	@Param			name	path		string	true	"Event name"
//	@Success		200		{object}	EventDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{name} [get]
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	name := eventName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	detail, err := h.svc.GetEvent(r.Context(), name)
	if err != nil {
		writeError(w, err, "get event")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// DeleteEvent handles DELETE /api/events/{name}.
//
//	@Summary		Delete an almanac event
//	@Tags			events
//	@Param			name	path	string	true	"Event name"
//	@Success		204		"Event deleted"
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{name} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	name := eventName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	if err := h.svc.DeleteEvent(r.Context(), name); err != nil {
		writeError(w, err, "delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EventReal handles GET /api/events/{name}/real.
//
//	@Summary		The real calendar day an almanac event falls on
//	@Tags			events
//	@Produce		json
//	@Param			name	path		string	true	"Event name"
//	@Success		200		{object}	ConversionDetail
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{name}/real [get]
func (h *Handler) EventReal(w http.ResponseWriter, r *http.Request) {
	name := eventName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	detail, err := h.svc.EventReal(r.Context(), name)
	if err != nil {
		writeError(w, err, "event real date")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
