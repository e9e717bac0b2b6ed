package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error { return errors.New("database is closed") }

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		stores := setupTestStores(t)

		router := gin.New()
		router.GET("/health", NewHealthController(stores.db, "1.0.0").Status)

		w := performRequest(router, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeJSON[HealthResponse](t, w)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Contains(t, response.Time, "T")
	})

	t.Run("reports not configured when database is nil", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", NewHealthController(nil, "1.0.0").Status)

		w := performRequest(router, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeJSON[HealthResponse](t, w)
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("returns unhealthy when ping fails", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", NewHealthController(failingPinger{}, "1.0.0").Status)

		w := performRequest(router, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		response := decodeJSON[HealthResponse](t, w)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		stores := setupTestStores(t)
		stores.db.Close()

		router := gin.New()
		router.GET("/health", NewHealthController(stores.db, "").Status)

		w := performRequest(router, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "version")
	})
}
