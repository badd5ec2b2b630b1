package http

import (
	"net/http"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/service"
)

type MoodsHandler struct {
	errorResponder
	Health *service.HealthService
}

type createMoodRequest struct {
	Date     string   `json:"date" validate:"required,datetime=2006-01-02"`
	Mood     *int     `json:"mood" validate:"omitempty,gte=1,lte=10"`
	CycleDay *int     `json:"cycleDay" validate:"omitempty,gte=1,lte=60"`
	Symptoms []string `json:"symptoms" validate:"omitempty,dive,max=100"`
	Notes    string   `json:"notes" validate:"omitempty,max=500"`
}

func (h *MoodsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createMoodRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.Health.CreateMoodEntry(r.Context(), domain.MoodEntry{
		UserID:   identity.ID,
		Date:     req.Date,
		Mood:     req.Mood,
		CycleDay: req.CycleDay,
		Symptoms: req.Symptoms,
		Notes:    req.Notes,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toMoodView(created))
}

func (h *MoodsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	f, ok := listFilter(w, r)
	if !ok {
		return
	}

	list, err := h.Health.ListMoodEntries(r.Context(), identity.ID, f)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	views := make([]moodView, 0, len(list))
	for _, it := range list {
		views = append(views, toMoodView(it))
	}
	writeData(w, http.StatusOK, views)
}

func (h *MoodsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Health.DeleteMoodEntry(r.Context(), identity.ID, id); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, nil, "Mood entry deleted successfully")
}
