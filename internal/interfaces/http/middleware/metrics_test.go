package middleware

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics(t *testing.T) {
	m := NewHTTPMetrics("erp")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/warehouses/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/warehouses/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/warehouses/2", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/api/v1/warehouses/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestsInFlight))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "erp_http_request_duration_seconds")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestHTTPMetrics_RegisterDBStats(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func(db *sql.DB) { _ = db.Close() }(db)

	m := NewHTTPMetrics("")
	require.NoError(t, m.RegisterDBStats(db, "erp"))
	assert.Error(t, m.RegisterDBStats(db, "erp"), "duplicate collector must be rejected")

	n, err := testutil.GatherAndCount(m.Registry(), "go_sql_open_connections")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
