package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// HealthChecker is anything with a Ping: the database pool, the Redis client
// and the event bus all qualify.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks names the dependencies probed by /health. Nil entries are
// reported as disabled.
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
	Timeout  time.Duration // 2s when zero
}

const (
	componentOK          = "ok"
	componentDisabled    = "disabled"
	componentUnreachable = "unreachable"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	EventBus string `json:"event_bus"`
}

// HealthHandler pings every configured dependency concurrently and answers
// 503 "degraded" if any of them fails.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	timeout := checks.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		var resp healthResponse
		var wg sync.WaitGroup
		wg.Go(func() { resp.Database = probe(ctx, checks.Database) })
		wg.Go(func() { resp.Redis = probe(ctx, checks.Redis) })
		wg.Go(func() { resp.EventBus = probe(ctx, checks.EventBus) })
		wg.Wait()

		resp.Status = "ok"
		status := http.StatusOK
		for _, c := range []string{resp.Database, resp.Redis, resp.EventBus} {
			if c == componentUnreachable {
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
			}
		}
		JSON(w, status, resp)
	}
}

func probe(ctx context.Context, c HealthChecker) string {
	if c == nil {
		return componentDisabled
	}
	if err := c.Ping(ctx); err != nil {
		return componentUnreachable
	}
	return componentOK
}
