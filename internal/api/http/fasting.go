package http

import (
	"net/http"
	"time"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/service"
)

type FastingHandler struct {
	errorResponder
	Health *service.HealthService
}

type startFastingRequest struct {
	StartTime time.Time  `json:"startTime" validate:"required"`
	EndTime   *time.Time `json:"endTime" validate:"omitempty,gtfield=StartTime"`
	Notes     string     `json:"notes" validate:"omitempty,max=300"`
}

type endFastingRequest struct {
	// EndTime defaults to the current time when omitted.
	EndTime *time.Time `json:"endTime"`
}

func (h *FastingHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req startFastingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.Health.StartFastingWindow(r.Context(), domain.FastingWindow{
		UserID:    identity.ID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toFastingView(created))
}

func (h *FastingHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req := endFastingRequest{}
	if r.ContentLength > 0 && !decodeAndValidate(w, r, &req) {
		return
	}

	end := time.Now().UTC()
	if req.EndTime != nil {
		end = *req.EndTime
	}

	current, err := h.Health.GetFastingWindow(r.Context(), identity.ID, id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	if !end.After(current.StartTime) {
		writeError(w, http.StatusBadRequest, "Validation failed", []FieldError{
			{Field: "endTime", Message: "must be after the fast's start time"},
		})
		return
	}

	closed, err := h.Health.EndFastingWindow(r.Context(), identity.ID, id, end)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, toFastingView(closed))
}

func (h *FastingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	f, ok := listFilter(w, r)
	if !ok {
		return
	}

	list, err := h.Health.ListFastingWindows(r.Context(), identity.ID, f)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	views := make([]fastingView, 0, len(list))
	for _, it := range list {
		views = append(views, toFastingView(it))
	}
	writeData(w, http.StatusOK, views)
}

func (h *FastingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Health.DeleteFastingWindow(r.Context(), identity.ID, id); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, nil, "Fasting window deleted successfully")
}
