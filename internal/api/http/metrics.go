package http

import (
	"net/http"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/service"
)

type MetricsHandler struct {
	errorResponder
	Health *service.HealthService
}

type createMetricRequest struct {
	Date               string   `json:"date" validate:"required,datetime=2006-01-02"`
	Weight             *float64 `json:"weight" validate:"omitempty,gt=0,lt=1000"`
	BodyFatPct         float64  `json:"bodyFatPct" validate:"required,gt=0,lte=100"`
	SkeletalMuscleMass *float64 `json:"skeletalMuscleMass" validate:"omitempty,gt=0,lt=1000"`
	RestingHR          *int     `json:"restingHr" validate:"omitempty,gt=0,lt=300"`
}

func (h *MetricsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createMetricRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	m, err := h.Health.CreateDailyMetric(r.Context(), domain.DailyMetric{
		UserID:             identity.ID,
		Date:               req.Date,
		Weight:             req.Weight,
		BodyFatPct:         req.BodyFatPct,
		SkeletalMuscleMass: req.SkeletalMuscleMass,
		RestingHR:          req.RestingHR,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toMetricView(m))
}

func (h *MetricsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	f, ok := listFilter(w, r)
	if !ok {
		return
	}

	list, err := h.Health.ListDailyMetrics(r.Context(), identity.ID, f)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	views := make([]metricView, 0, len(list))
	for _, m := range list {
		views = append(views, toMetricView(m))
	}
	writeData(w, http.StatusOK, views)
}

func (h *MetricsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Health.DeleteDailyMetric(r.Context(), identity.ID, id); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, nil, "Metric deleted successfully")
}
