package main

import (
	"codeberg.org/animagen/server/internal/config"
	"codeberg.org/animagen/server/internal/engine"
	"codeberg.org/animagen/server/internal/gate"
	"codeberg.org/animagen/server/internal/llm"
	"codeberg.org/animagen/server/internal/monitor"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	mon := monitor.New()

	client := llm.NewClient(llm.Config{
		APIKey:        cfg.APIKey,
		BaseURL:       cfg.APIBaseURL,
		PrimaryModel:  cfg.PrimaryModel,
		FallbackModel: cfg.FallbackModel,
		Timeout:       cfg.RequestTimeout,
	})

	eng := engine.New(client, mon, engine.Options{
		MaxRetries:     cfg.MaxRetries,
		MaxPromptChars: cfg.MaxPromptChars,
		MaxOutputChars: cfg.MaxOutputChars,
		Stream:         true,
	})

	server := &Server{
		config:  cfg,
		client:  client,
		engine:  eng,
		gate:    gate.New(cfg.Cooldown),
		monitor: mon,
		router:  gin.Default(),
	}

	RegisterRoutes(server.router, server)

	return server
}
