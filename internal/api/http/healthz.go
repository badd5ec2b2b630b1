package http

import (
	"net/http"
	"time"

	"github.com/vitalog/vitalog/internal/api/store"
	"github.com/vitalog/vitalog/pkg/httpx"
)

// HealthzHandler reports service health including database connectivity.
// A failed ping returns 503 so load balancers stop routing traffic here.
func HealthzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		database := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			status = "degraded"
			database = "error: " + err.Error()
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, map[string]any{
			"status":   status,
			"uptime":   time.Since(startTime).String(),
			"version":  version,
			"database": database,
		})
	}
}
