package http

import (
	"net/http"
	"time"

	"github.com/lodgepole/gatehouse/pkg/httpx"
)

// ReadyzHandler checks the critical dependency, the user database,
// before declaring the service ready for traffic.
func ReadyzHandler(startTime time.Time, version string, users Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := users.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
