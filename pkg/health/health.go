// Package health reports whether the served dataset is loaded and usable.
package health

import (
	"time"
)

// NewHealthChecker creates a new health checker
func NewHealthChecker() *HealthChecker {
	hc := &HealthChecker{started: time.Now()}
	for p := range hc.probes {
		hc.probes[p] = make(map[string]CheckFunc)
	}
	return hc
}

// Register adds a check to a probe. A second check with the same name
// replaces the first.
func (hc *HealthChecker) Register(probe Probe, name string, check CheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.probes[probe][name] = check
}

// RegisterCheck registers a check reported by the main health endpoint
func (hc *HealthChecker) RegisterCheck(name string, check CheckFunc) {
	hc.Register(ProbeHealth, name, check)
}

// RegisterReadinessCheck registers a readiness check
func (hc *HealthChecker) RegisterReadinessCheck(name string, check CheckFunc) {
	hc.Register(ProbeReadiness, name, check)
}

// RegisterLivenessCheck registers a liveness check
func (hc *HealthChecker) RegisterLivenessCheck(name string, check CheckFunc) {
	hc.Register(ProbeLiveness, name, check)
}

// Check runs the main health checks
func (hc *HealthChecker) Check() Response { return hc.Run(ProbeHealth) }

// CheckReadiness runs the readiness checks
func (hc *HealthChecker) CheckReadiness() Response { return hc.Run(ProbeReadiness) }

// CheckLiveness runs the liveness checks
func (hc *HealthChecker) CheckLiveness() Response { return hc.Run(ProbeLiveness) }

// Run executes every check of a probe. The response carries the worst
// status seen; a probe with no checks is healthy.
func (hc *HealthChecker) Run(probe Probe) Response {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	checks := hc.probes[probe]
	now := time.Now()
	response := Response{
		Status:    StatusHealthy,
		Timestamp: now,
		Checks:    make(map[string]Check, len(checks)),
		Uptime:    now.Sub(hc.started).Seconds(),
	}

	for name, run := range checks {
		start := time.Now()
		check := run()
		check.Duration = time.Since(start)
		check.LastChecked = start
		if check.Name == "" {
			check.Name = name
		}
		response.Checks[name] = check
		response.Status = worse(response.Status, check.Status)
	}

	return response
}

func severity(s Status) int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

func worse(a, b Status) Status {
	if severity(b) > severity(a) {
		return b
	}
	return a
}
