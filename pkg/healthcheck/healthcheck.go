// Package healthcheck provides dependency health reporting for the API
// server. Checks run concurrently with a shared deadline; a single
// degraded dependency marks the whole report degraded, a single
// unhealthy one marks it unhealthy.
package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status represents the health status of a check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Check is the outcome of one dependency probe
type Check struct {
	Name     string        `json:"name"`
	Status   Status        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration_ms"`
}

// Checker probes one dependency
type Checker interface {
	Name() string
	Check(ctx context.Context) (Status, string)
}

// Report is the aggregate health of the service
type Report struct {
	Status    Status    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// HealthCheck runs registered checkers and aggregates their results
type HealthCheck struct {
	version  string
	timeout  time.Duration
	logger   *zap.Logger
	mu       sync.RWMutex
	checkers []Checker
}

// New creates a health check registry
func New(version string, logger *zap.Logger) *HealthCheck {
	return &HealthCheck{
		version: version,
		timeout: 5 * time.Second,
		logger:  logger.Named("healthcheck"),
	}
}

// Register adds a checker to the registry
func (h *HealthCheck) Register(checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, checker)
}

// Run probes every registered checker concurrently
func (h *HealthCheck) Run(ctx context.Context) Report {
	h.mu.RLock()
	checkers := make([]Checker, len(h.checkers))
	copy(checkers, h.checkers)
	h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	checks := make([]Check, len(checkers))
	var wg sync.WaitGroup
	for i, checker := range checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()
			start := time.Now()
			status, message := c.Check(ctx)
			checks[i] = Check{
				Name:     c.Name(),
				Status:   status,
				Message:  message,
				Duration: time.Since(start) / time.Millisecond,
			}
		}(i, checker)
	}
	wg.Wait()

	overall := StatusHealthy
	for _, check := range checks {
		switch check.Status {
		case StatusUnhealthy:
			overall = StatusUnhealthy
		case StatusDegraded:
			if overall == StatusHealthy {
				overall = StatusDegraded
			}
		}
		if check.Status != StatusHealthy {
			h.logger.Warn("dependency check failed",
				zap.String("check", check.Name),
				zap.String("status", string(check.Status)),
				zap.String("message", check.Message),
			)
		}
	}

	return Report{
		Status:    overall,
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}
}

// Handler returns an HTTP handler serving the health report. Unhealthy
// reports answer 503 so load balancers can rotate the instance out.
func (h *HealthCheck) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := h.Run(r.Context())

		status := http.StatusOK
		if report.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(report); err != nil {
			h.logger.Error("failed to encode health report", zap.Error(err))
		}
	}
}
