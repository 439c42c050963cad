package health

import (
	"sync"
	"time"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Check is the outcome of one health check
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"duration_ms"`
}

// CheckFunc performs a health check
type CheckFunc func() Check

// Probe names a group of checks served by one endpoint
type Probe int

const (
	ProbeHealth Probe = iota
	ProbeReadiness
	ProbeLiveness
	probeCount
)

// HealthChecker runs the registered checks for the server's health endpoints
type HealthChecker struct {
	mu      sync.RWMutex
	started time.Time
	probes  [probeCount]map[string]CheckFunc
}

// Response is the body of a health endpoint
type Response struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Uptime    float64          `json:"uptime_seconds"`
}
