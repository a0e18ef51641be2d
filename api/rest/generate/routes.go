package generate

import (
	"codeberg.org/animagen/server/internal/config"
	"codeberg.org/animagen/server/internal/gate"
	"github.com/gin-gonic/gin"
)

// registers code generation routes
func RegisterRoutes(router *gin.RouterGroup, eng CodeGenerator, g *gate.Gate, cfg *config.Config) {
	router.POST("/generate", Handler(eng, g, cfg))
}
