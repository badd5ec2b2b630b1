package http

import (
	"net/http"
	"time"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/service"
)

type GoalsHandler struct {
	errorResponder
	Health *service.HealthService
}

type goalRequest struct {
	Type     string     `json:"type" validate:"required,oneof=weight_loss weight_gain workout_frequency nutrition sleep other"`
	Target   float64    `json:"target" validate:"required,gt=0"`
	Current  *float64   `json:"current" validate:"omitempty,gte=0"`
	Unit     string     `json:"unit" validate:"required,max=50"`
	Deadline *time.Time `json:"deadline"`
}

func (h *GoalsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req goalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.Health.CreateGoal(r.Context(), domain.Goal{
		UserID:   identity.ID,
		Type:     req.Type,
		Target:   req.Target,
		Current:  req.Current,
		Unit:     req.Unit,
		Deadline: req.Deadline,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toGoalView(created))
}

func (h *GoalsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	list, err := h.Health.ListGoals(r.Context(), identity.ID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	views := make([]goalView, 0, len(list))
	for _, it := range list {
		views = append(views, toGoalView(it))
	}
	writeData(w, http.StatusOK, views)
}

func (h *GoalsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req goalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.Health.UpdateGoal(r.Context(), identity.ID, domain.Goal{
		ID:       id,
		UserID:   identity.ID,
		Type:     req.Type,
		Target:   req.Target,
		Current:  req.Current,
		Unit:     req.Unit,
		Deadline: req.Deadline,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, toGoalView(updated))
}

func (h *GoalsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Health.DeleteGoal(r.Context(), identity.ID, id); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, nil, "Goal deleted successfully")
}
