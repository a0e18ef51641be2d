package health

import (
	"net/http"

	"codeberg.org/animagen/server/internal/gate"
	"codeberg.org/animagen/server/internal/monitor"
	"github.com/gin-gonic/gin"
)

// returns the server health status with memory and request metrics
func Handler(g *gate.Gate, mon *monitor.Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, active := g.Counters()

		c.JSON(http.StatusOK, Response{
			Status:  "ok",
			Service: "animagen",
			Memory:  mon.Memory(),
			Requests: RequestCounts{
				Total:  total,
				Active: active,
			},
		})
	}
}

// returns extended process metrics
func StatsHandler(g *gate.Gate, mon *monitor.Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, active := g.Counters()

		c.JSON(http.StatusOK, StatsResponse{
			Process: mon.Process(),
			Memory:  mon.Memory(),
			Requests: RequestCounts{
				Total:  total,
				Active: active,
			},
			ActiveCallers: g.ActiveCallers(),
			Reclaims:      mon.Reclaims(),
		})
	}
}

// reports the calling identity's cooldown state without consuming it
func CooldownHandler(g *gate.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		remaining := g.Remaining(c.ClientIP())

		c.JSON(http.StatusOK, CooldownResponse{
			RateLimited:   remaining > 0,
			TimeRemaining: int64(remaining.Seconds()),
		})
	}
}
