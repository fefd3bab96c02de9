package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	middleware := SecurityLoggingMiddleware(nil, detector)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.100"
	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < DefaultRateLimit; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	detector.mu.Lock()
	count := detector.requestCountByIP[ip]
	detector.mu.Unlock()
	assert.Equal(t, DefaultRateLimit+1, count)
}

func TestSuspiciousActivityDetector_WindowReset(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	detector := NewSuspiciousActivityDetectorWithConfig(DetectorConfig{
		Window:    time.Minute,
		RateLimit: 2,
		Now:       func() time.Time { return now },
	})

	assert.True(t, detector.RecordRequest("1.1.1.1"))
	assert.True(t, detector.RecordRequest("1.1.1.1"))
	assert.False(t, detector.RecordRequest("1.1.1.1"))
	assert.True(t, detector.RecordRequest("2.2.2.2"), "limits are per IP")

	now = now.Add(time.Minute + time.Second)
	assert.True(t, detector.RecordRequest("1.1.1.1"), "a new window starts clean")
}
