package main

import (
	"codeberg.org/animagen/server/internal/config"
	"codeberg.org/animagen/server/internal/engine"
	"codeberg.org/animagen/server/internal/gate"
	"codeberg.org/animagen/server/internal/llm"
	"codeberg.org/animagen/server/internal/monitor"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	config  *config.Config
	client  *llm.Client
	engine  *engine.Engine
	gate    *gate.Gate
	monitor *monitor.Monitor
	router  *gin.Engine
}
