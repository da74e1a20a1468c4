package api

import (
	"github.com/gin-gonic/gin"
	"github.com/ragops/assistant-gateway/internal/api/handlers"
	"github.com/ragops/assistant-gateway/internal/health"
	"github.com/ragops/assistant-gateway/internal/middleware"
)

// RouterOptions carries everything the router needs. RateLimiter and Health
// are optional.
type RouterOptions struct {
	Gateway     *handlers.GatewayHandler
	Health      *health.Checker
	Session     gin.HandlerFunc
	Auth        gin.HandlerFunc
	RateLimiter *middleware.RateLimiter
}

// NewRouter assembles the gin engine. The two gateway endpoints sit behind
// session handling and API-key auth; /health is open.
func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.RateLimit())
	}

	if opts.Health != nil {
		r.GET("/health", opts.Health.Handler)
	}

	gateway := r.Group("/")
	gateway.Use(opts.Session)
	gateway.Use(opts.Auth)
	{
		gateway.POST("/ask", opts.Gateway.HandleAsk)
		gateway.POST("/feedback", opts.Gateway.HandleFeedback)
	}

	return r
}
