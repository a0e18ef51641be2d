package main

import (
	"net/http"
	"time"

	"codeberg.org/animagen/server/api/rest/generate"
	"codeberg.org/animagen/server/api/rest/health"
	"codeberg.org/animagen/server/api/rest/improve"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:  server.config.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type"},
		AllowWildcard: true,
		MaxAge:        12 * time.Hour,
	}))

	// health and metrics stay outside the rate-limited groups
	health.RegisterRoutes(router, server.gate, server.monitor)

	// coarse per-IP request budget across the generation endpoints,
	// independent of the per-caller cooldown ledger
	rateLimit := mgin.NewMiddleware(limiter.New(memory.NewStore(), limiter.Rate{
		Period: time.Minute,
		Limit:  server.config.RateLimitPerMinute,
	}))

	// the bare paths are the original API surface; /api is the versioned alias
	for _, group := range []*gin.RouterGroup{router.Group(""), router.Group("/api")} {
		group.Use(rateLimit)

		generate.RegisterRoutes(group, server.engine, server.gate, server.config)
		improve.RegisterRoutes(group, server.engine, server.gate, server.config)
	}
}
