package http

import (
	"net/http"
	"time"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/service"
)

type WorkoutsHandler struct {
	errorResponder
	Health *service.HealthService
}

type createWorkoutRequest struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	Type      string    `json:"type" validate:"required,oneof=strength cardio hiit yoga sports other"`
	Intensity int       `json:"intensity" validate:"required,gte=1,lte=10"`
	Calories  *float64  `json:"calories" validate:"omitempty,gt=0"`
	AvgHR     *int      `json:"avgHr" validate:"omitempty,gt=0,lt=300"`
	MaxHR     *int      `json:"maxHr" validate:"omitempty,gt=0,lt=300"`
	Notes     string    `json:"notes" validate:"omitempty,max=500"`
}

func (h *WorkoutsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createWorkoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.Health.CreateWorkout(r.Context(), domain.Workout{
		UserID:    identity.ID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      req.Type,
		Intensity: req.Intensity,
		Calories:  req.Calories,
		AvgHR:     req.AvgHR,
		MaxHR:     req.MaxHR,
		Notes:     req.Notes,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toWorkoutView(created))
}

func (h *WorkoutsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	f, ok := listFilter(w, r)
	if !ok {
		return
	}

	list, err := h.Health.ListWorkouts(r.Context(), identity.ID, f)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	views := make([]workoutView, 0, len(list))
	for _, it := range list {
		views = append(views, toWorkoutView(it))
	}
	writeData(w, http.StatusOK, views)
}

func (h *WorkoutsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Health.DeleteWorkout(r.Context(), identity.ID, id); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, nil, "Workout deleted successfully")
}
