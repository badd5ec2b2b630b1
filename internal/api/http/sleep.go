package http

import (
	"net/http"
	"time"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/service"
)

type SleepHandler struct {
	errorResponder
	Health *service.HealthService
}

type createSleepRequest struct {
	StartTime  time.Time `json:"startTime" validate:"required"`
	EndTime    time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	Efficiency *float64  `json:"efficiency" validate:"omitempty,gte=0,lte=100"`
	Notes      string    `json:"notes" validate:"omitempty,max=300"`
}

func (h *SleepHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createSleepRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.Health.CreateSleepSession(r.Context(), domain.SleepSession{
		UserID:     identity.ID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Efficiency: req.Efficiency,
		Notes:      req.Notes,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toSleepView(created))
}

func (h *SleepHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	f, ok := listFilter(w, r)
	if !ok {
		return
	}

	list, err := h.Health.ListSleepSessions(r.Context(), identity.ID, f)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	views := make([]sleepView, 0, len(list))
	for _, it := range list {
		views = append(views, toSleepView(it))
	}
	writeData(w, http.StatusOK, views)
}

func (h *SleepHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Health.DeleteSleepSession(r.Context(), identity.ID, id); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, nil, "Sleep session deleted successfully")
}
