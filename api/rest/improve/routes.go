package improve

import (
	"codeberg.org/animagen/server/internal/config"
	"codeberg.org/animagen/server/internal/gate"
	"github.com/gin-gonic/gin"
)

// registers prompt improvement routes
func RegisterRoutes(router *gin.RouterGroup, eng PromptImprover, g *gate.Gate, cfg *config.Config) {
	router.POST("/improve_prompt", Handler(eng, g, cfg))
}
