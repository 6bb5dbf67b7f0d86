package healthcheck

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type HealthCheckTestSuite struct {
	suite.Suite
	hc *HealthCheck
}

func (s *HealthCheckTestSuite) SetupTest() {
	s.hc = New("1.0.0", zap.NewNop())
}

func TestHealthCheckTestSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}

func (s *HealthCheckTestSuite) TestAggregation() {
	s.Run("no checkers reports healthy", func() {
		report := s.hc.Run(context.Background())

		assert.Equal(s.T(), StatusHealthy, report.Status)
		assert.Equal(s.T(), "1.0.0", report.Version)
		assert.Empty(s.T(), report.Checks)
	})

	s.Run("all healthy reports healthy", func() {
		s.hc.Register(NewCustomChecker("a", func(ctx context.Context) (Status, string) {
			return StatusHealthy, ""
		}))
		s.hc.Register(NewCustomChecker("b", func(ctx context.Context) (Status, string) {
			return StatusHealthy, ""
		}))

		report := s.hc.Run(context.Background())

		assert.Equal(s.T(), StatusHealthy, report.Status)
		assert.Len(s.T(), report.Checks, 2)
	})

	s.Run("one degraded check degrades the report", func() {
		hc := New("1.0.0", zap.NewNop())
		hc.Register(NewCustomChecker("ok", func(ctx context.Context) (Status, string) {
			return StatusHealthy, ""
		}))
		hc.Register(NewCustomChecker("slow", func(ctx context.Context) (Status, string) {
			return StatusDegraded, "cache unreachable"
		}))

		report := hc.Run(context.Background())

		assert.Equal(s.T(), StatusDegraded, report.Status)
	})

	s.Run("unhealthy outranks degraded", func() {
		hc := New("1.0.0", zap.NewNop())
		hc.Register(NewCustomChecker("slow", func(ctx context.Context) (Status, string) {
			return StatusDegraded, ""
		}))
		hc.Register(NewCustomChecker("down", func(ctx context.Context) (Status, string) {
			return StatusUnhealthy, "connection refused"
		}))

		report := hc.Run(context.Background())

		assert.Equal(s.T(), StatusUnhealthy, report.Status)
	})
}

func (s *HealthCheckTestSuite) TestHandler() {
	s.Run("healthy report answers 200", func() {
		hc := New("1.0.0", zap.NewNop())
		hc.Register(NewCustomChecker("db", func(ctx context.Context) (Status, string) {
			return StatusHealthy, ""
		}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/health", nil)
		hc.Handler()(rec, req)

		require.Equal(s.T(), 200, rec.Code)

		var report Report
		require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(s.T(), StatusHealthy, report.Status)
	})

	s.Run("unhealthy report answers 503", func() {
		hc := New("1.0.0", zap.NewNop())
		hc.Register(NewCustomChecker("db", func(ctx context.Context) (Status, string) {
			return StatusUnhealthy, "down"
		}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/health", nil)
		hc.Handler()(rec, req)

		assert.Equal(s.T(), 503, rec.Code)
	})
}
