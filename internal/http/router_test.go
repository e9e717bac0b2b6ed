package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRouter_PingAndHealth(t *testing.T) {
	stores := setupTestStores(t)
	router := NewRouter(RouterConfig{Database: stores.db, Version: "test"})

	w := performRequest(router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")

	w = performRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_SkipsUnconfiguredRoutes(t *testing.T) {
	router := NewRouter(RouterConfig{})

	for _, path := range []string{"/api/search?q=x", "/api/favourites", "/api/books/b1/notes", "/api/books/b1/progress"} {
		w := performRequest(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}
