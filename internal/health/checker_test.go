package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func TestCheckAll_AllHealthy(t *testing.T) {
	checker := NewChecker(fakePinger{}, fakePinger{}, fakePinger{}, logrus.New())

	overall := checker.CheckAll(context.Background())
	assert.Equal(t, "healthy", overall.Status)
	require.Len(t, overall.Services, 3)
	for _, s := range overall.Services {
		assert.Equal(t, "healthy", s.Status)
	}
}

func TestCheckAll_UnhealthyDependency(t *testing.T) {
	checker := NewChecker(fakePinger{err: errors.New("connection refused")}, fakePinger{}, fakePinger{}, logrus.New())

	overall := checker.CheckAll(context.Background())
	assert.Equal(t, "unhealthy", overall.Status)
	assert.Equal(t, "unhealthy", overall.Services[0].Status)
	assert.Contains(t, overall.Services[0].Error, "connection refused")
}

func TestCheckAll_UnconfiguredDependencyIsNotUnhealthy(t *testing.T) {
	checker := NewChecker(nil, fakePinger{}, nil, logrus.New())

	overall := checker.CheckAll(context.Background())
	assert.Equal(t, "healthy", overall.Status)
	assert.Equal(t, "unconfigured", overall.Services[0].Status)
}

func TestHandler_StatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	healthy := NewChecker(fakePinger{}, fakePinger{}, fakePinger{}, logrus.New())
	unhealthy := NewChecker(fakePinger{err: errors.New("down")}, fakePinger{}, fakePinger{}, logrus.New())

	tests := []struct {
		name     string
		checker  *Checker
		wantCode int
	}{
		{"healthy", healthy, http.StatusOK},
		{"unhealthy", unhealthy, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", tt.checker.Handler)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
