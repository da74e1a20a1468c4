package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pinger is anything whose connectivity can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker probes the gateway's dependencies. Any dependency may be nil, in
// which case it is reported as unconfigured rather than unhealthy.
type Checker struct {
	database Pinger
	sessions Pinger
	ragSvc   Pinger
	logger   *logrus.Logger
}

func NewChecker(database, sessions, ragSvc Pinger, logger *logrus.Logger) *Checker {
	return &Checker{
		database: database,
		sessions: sessions,
		ragSvc:   ragSvc,
		logger:   logger,
	}
}

// ServiceHealth represents the health status of a single dependency.
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health.
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

func (c *Checker) check(ctx context.Context, name string, p Pinger) ServiceHealth {
	now := time.Now()
	result := ServiceHealth{
		Name:        name,
		LastChecked: now.Format(time.RFC3339),
	}

	if p == nil {
		result.Status = "unconfigured"
		return result
	}

	err := p.Ping(ctx)
	result.ResponseTime = int(time.Since(now).Milliseconds())
	if err != nil {
		result.Status = "unhealthy"
		result.Error = err.Error()
		c.logger.WithError(err).WithField("service", name).Error("Health check failed")
	} else {
		result.Status = "healthy"
	}
	return result
}

// CheckAll performs health checks on all dependencies.
func (c *Checker) CheckAll(ctx context.Context) OverallHealth {
	services := []ServiceHealth{
		c.check(ctx, "postgresql", c.database),
		c.check(ctx, "sessions", c.sessions),
		c.check(ctx, "rag", c.ragSvc),
	}

	overallStatus := "healthy"
	for _, service := range services {
		if service.Status == "unhealthy" {
			overallStatus = "unhealthy"
			break
		}
	}

	return OverallHealth{
		Status:   overallStatus,
		Services: services,
		Uptime:   time.Since(startTime).String(),
	}
}

// Handler serves GET /health.
func (c *Checker) Handler(gc *gin.Context) {
	ctx, cancel := context.WithTimeout(gc.Request.Context(), 10*time.Second)
	defer cancel()

	overall := c.CheckAll(ctx)
	code := http.StatusOK
	if overall.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	gc.JSON(code, overall)
}

var startTime = time.Now()
