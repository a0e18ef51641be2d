package health

import "codeberg.org/animagen/server/internal/monitor"

// Response represents the health check response
type Response struct {
	Status   string                 `json:"status"`
	Service  string                 `json:"service"`
	Memory   monitor.MemorySnapshot `json:"memory"`
	Requests RequestCounts          `json:"requests"`
}

// RequestCounts reports the process-wide request counters
type RequestCounts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// StatsResponse represents the extended process metrics response
type StatsResponse struct {
	Process       monitor.ProcessSnapshot `json:"process"`
	Memory        monitor.MemorySnapshot  `json:"memory"`
	Requests      RequestCounts           `json:"requests"`
	ActiveCallers int                     `json:"active_callers"`
	Reclaims      uint64                  `json:"memory_reclaims"`
}

// CooldownResponse reports whether the caller is currently rate limited
type CooldownResponse struct {
	RateLimited   bool  `json:"rate_limited"`
	TimeRemaining int64 `json:"time_remaining"`
}
