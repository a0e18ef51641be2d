package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBase        = "https://openrouter.ai/api/v1"
	defaultMaxRetries     = 6
	defaultTimeoutSeconds = 180
	defaultMaxPromptChars = 5000
	defaultMaxOutputChars = 100000
	defaultCooldownSecs   = 120
	defaultRatePerMinute  = 30
	defaultPort           = "5000"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	// production environments may not have a .env file
	_ = godotenv.Load()

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is required")
	}

	primaryModel := os.Getenv("DEFAULT_MODEL")
	if primaryModel == "" {
		return nil, fmt.Errorf("DEFAULT_MODEL environment variable is required")
	}

	apiBase := os.Getenv("OPENROUTER_API_BASE")
	if apiBase == "" {
		apiBase = defaultAPIBase
	}

	// fallback model is optional; without one, escalation has nowhere to go
	// and retries simply exhaust against the primary
	fallbackModel := os.Getenv("FALLBACK_MODEL")

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	return &Config{
		APIKey:             apiKey,
		APIBaseURL:         apiBase,
		PrimaryModel:       primaryModel,
		FallbackModel:      fallbackModel,
		MaxRetries:         envInt("MAX_RETRIES", defaultMaxRetries),
		RequestTimeout:     time.Duration(envInt("REQUEST_TIMEOUT_SECONDS", defaultTimeoutSeconds)) * time.Second,
		MaxPromptChars:     envInt("MAX_PROMPT_CHARS", defaultMaxPromptChars),
		MaxOutputChars:     envInt("MAX_OUTPUT_CHARS", defaultMaxOutputChars),
		Cooldown:           time.Duration(envInt("COOLDOWN_SECONDS", defaultCooldownSecs)) * time.Second,
		RateLimitPerMinute: int64(envInt("RATE_LIMIT_PER_MINUTE", defaultRatePerMinute)),
		Port:               port,
		Environment:        environment,
		AllowedOrigins:     origins,
	}, nil
}

// reads an integer environment variable, falling back on missing or invalid values
func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return fallback
	}

	return val
}
