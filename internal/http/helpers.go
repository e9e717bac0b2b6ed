package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookhouse/internal/database"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	codeValidation = "validation_error"
	codeNotFound   = "not_found"
	codeStoreBusy  = "store_busy"
	codeUpstream   = "upstream_error"
	codeInternal   = "internal_error"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: codeValidation})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: codeNotFound})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s) [request %s]: %v", context, requestID(c), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: codeInternal})
}

// respondStoreError maps a repository error to a response. A busy or locked
// store is reported as 503 so clients know a retry may succeed.
func respondStoreError(c *gin.Context, err error, context string) {
	err = database.ClassifyError(err)
	if errors.Is(err, database.ErrStoreBusy) {
		log.Printf("Store busy (%s) [request %s]: %v", context, requestID(c), err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store is busy, retry later", Code: codeStoreBusy})
		return
	}
	respondInternalError(c, err, context)
}

// respondUpstreamError sends a 502 Bad Gateway response for remote failures.
func respondUpstreamError(c *gin.Context, err error, context string) {
	log.Printf("Upstream error (%s) [request %s]: %v", context, requestID(c), err)
	c.JSON(http.StatusBadGateway, ErrorResponse{Error: "catalog request failed", Code: codeUpstream})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseBookIDParam extracts a catalog book id from URL parameters.
// Catalog ids are opaque strings, so only emptiness is checked.
func parseBookIDParam(c *gin.Context, paramName string) (string, bool) {
	bookID := strings.TrimSpace(c.Param(paramName))
	if bookID == "" {
		respondBadRequest(c, paramName+" is required")
		return "", false
	}
	return bookID, true
}
