package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (database pool, RedisClient, EventBus, stream.Health all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks holds the set of dependencies to probe in the health endpoint.
// Nil fields are skipped, so each process registers only what it owns.
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
	Stream   HealthChecker
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Redis    string `json:"redis,omitempty"`
	EventBus string `json:"event_bus,omitempty"`
	Stream   string `json:"stream,omitempty"`
}

// HealthHandler returns an http.HandlerFunc that probes all registered
// HealthCheckers and reports degraded status if any of them fail.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}

		probe := func(c HealthChecker, field *string) {
			if c == nil {
				return
			}
			*field = "ok"
			if err := c.Ping(ctx); err != nil {
				resp.Status = "degraded"
				*field = "unreachable"
			}
		}
		probe(checks.Database, &resp.Database)
		probe(checks.Redis, &resp.Redis)
		probe(checks.EventBus, &resp.EventBus)
		probe(checks.Stream, &resp.Stream)

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
