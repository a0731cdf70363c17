package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_InvalidRate(t *testing.T) {
	_, err := NewRateLimiter("lots", nil)
	assert.Error(t, err)
}

func TestRateLimit(t *testing.T) {
	l, err := NewRateLimiter("2-M", nil)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestID(), Actor(), RateLimit(l))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		if user != "" {
			req.Header.Set(HeaderUserID, user)
		}
		return serve(r, req)
	}

	w := get("")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, get("").Code)

	w = get("")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")

	// a user has its own bucket even from the same address
	assert.Equal(t, http.StatusOK, get(uuid.NewString()).Code)
}
