package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check is a dependency probed by /readyz. A failing critical check makes
// the service unready; non-critical failures are only reported.
type Check struct {
	Name     string
	Critical bool
	Ping     func(ctx context.Context) error
}

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (PostgreSQL is critical, the Redis cache is not).
type HealthHandler struct {
	checks  []Check
	timeout time.Duration
}

// NewHealthHandler constructs a HealthHandler probing the given checks.
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: 200 when every critical check passes, 503 otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.liveness)
	r.GET("/readyz", h.readiness)
}

// liveness godoc
// @Summary      Liveness probe
// @Description  Always returns OK if the service is running
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (h *HealthHandler) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readiness godoc
// @Summary      Readiness probe
// @Description  Returns ready if the service dependencies are reachable
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /readyz [get]
func (h *HealthHandler) readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status, code := "ready", http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		if chk.Ping == nil {
			continue
		}
		if err := chk.Ping(ctx); err != nil {
			deps[chk.Name] = "down"
			if chk.Critical {
				status, code = "degraded", http.StatusServiceUnavailable
			}
			continue
		}
		deps[chk.Name] = "up"
	}
	c.JSON(code, gin.H{"status": status, "dependencies": deps})
}
