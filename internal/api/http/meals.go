package http

import (
	"net/http"
	"time"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/service"
)

type MealsHandler struct {
	errorResponder
	Health *service.HealthService
}

type createMealRequest struct {
	MealTime time.Time `json:"mealTime" validate:"required"`
	FoodName string    `json:"foodName" validate:"required,max=100"`
	Calories float64   `json:"calories" validate:"required,gte=0,lte=5000"`
	Protein  *float64  `json:"protein" validate:"omitempty,gte=0"`
	Carbs    *float64  `json:"carbs" validate:"omitempty,gte=0"`
	Fat      *float64  `json:"fat" validate:"omitempty,gte=0"`
	Notes    string    `json:"notes" validate:"omitempty,max=200"`
}

func (h *MealsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createMealRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.Health.CreateMeal(r.Context(), domain.Meal{
		UserID:   identity.ID,
		MealTime: req.MealTime,
		FoodName: req.FoodName,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Notes:    req.Notes,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toMealView(created))
}

func (h *MealsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	f, ok := listFilter(w, r)
	if !ok {
		return
	}

	list, err := h.Health.ListMeals(r.Context(), identity.ID, f)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	views := make([]mealView, 0, len(list))
	for _, it := range list {
		views = append(views, toMealView(it))
	}
	writeData(w, http.StatusOK, views)
}

func (h *MealsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Health.DeleteMeal(r.Context(), identity.ID, id); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, nil, "Meal deleted successfully")
}
