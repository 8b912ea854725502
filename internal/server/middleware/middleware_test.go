package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vettalabs/vetta/internal/server/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func newRequest(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.RemoteAddr = remoteAddr
	return req
}

func TestRateLimitByIP_FirstRequest_Passes(t *testing.T) {
	t.Parallel()

	handler := middleware.RateLimitByIP(context.Background(), 1, 1)(okHandler)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, newRequest("10.0.0.1:1234"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitByIP_BurstExceeded_Returns429(t *testing.T) {
	t.Parallel()

	// Very low rate (effectively zero refill during the test) with burst of 2.
	handler := middleware.RateLimitByIP(context.Background(), 0.001, 2)(okHandler)

	// First two requests consume the burst.
	for i := range 2 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("10.0.0.2:1234"))
		require.Equalf(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	// Third request exceeds burst.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newRequest("10.0.0.2:1234"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
}

func TestRateLimitByIP_IndependentPerIP(t *testing.T) {
	t.Parallel()

	handler := middleware.RateLimitByIP(context.Background(), 0.001, 1)(okHandler)

	// Exhaust the first IP's burst.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newRequest("10.0.0.3:1234"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, newRequest("10.0.0.3:1234"))
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)

	// A different IP is still allowed.
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, newRequest("10.0.0.4:1234"))

	assert.Equal(t, http.StatusOK, rec3.Code)
}
