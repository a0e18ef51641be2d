package config

import "time"

// raw request bodies may be rejected before parsing once they exceed
// this multiple of the maximum prompt length
const requestBytesMultiplier = 4

// Config holds process-wide settings, immutable after load
type Config struct {
	APIKey        string
	APIBaseURL    string
	PrimaryModel  string
	FallbackModel string

	MaxRetries     int
	RequestTimeout time.Duration

	MaxPromptChars int
	MaxOutputChars int

	Cooldown           time.Duration
	RateLimitPerMinute int64

	Port           string
	Environment    string
	AllowedOrigins []string
}

// returns the hard ceiling on raw request body size in bytes
func (c *Config) MaxRequestBytes() int64 {
	return int64(c.MaxPromptChars) * requestBytesMultiplier
}
