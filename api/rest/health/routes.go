package health

import (
	"codeberg.org/animagen/server/internal/gate"
	"codeberg.org/animagen/server/internal/monitor"
	"github.com/gin-gonic/gin"
)

// registers health and metrics routes; these are exempt from the
// cooldown and rate limiting applied to the generation endpoints
func RegisterRoutes(router *gin.Engine, g *gate.Gate, mon *monitor.Monitor) {
	router.GET("/health", Handler(g, mon))
	router.GET("/stats", StatsHandler(g, mon))
	router.GET("/cooldown_status", CooldownHandler(g))
}
