// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints,
// including structured error envelopes, consistent JSON serialization, and
// helpers for common HTTP patterns. The goal is to guarantee uniform responses
// for both success and failure cases, making the API predictable and
// machine-friendly.
//
// Conventions:
//   - All error responses must return an ErrorResponse with a stable `code`.
//   - `fail()` centralizes error logging and formatting, ensuring 5xx responses
//     are logged with request context for observability.
//   - `ok()` and `done()` simplify writing success responses in a consistent
//     shape across handlers.
//
// Example error response:
//
//	HTTP/1.1 502 Bad Gateway
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "upstream_failed",
//	  "message": "store unavailable"
//	}
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{ "id": 1, "name": "Moonlight Buttress", "difficulty": "5.12", ... }
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/summitlog/go-crag-backend/internal/http/middleware"
	"github.com/summitlog/go-crag-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: Optional correlation ID, echoed from X-Request-ID header, used
//     to correlate server logs with client-side errors.
//   - Code: A stable, machine-readable string (see errors.go constants).
//   - Message: A human-readable error description, safe for display to users.
//
// This struct is used in OpenAPI documentation via Swagger annotations.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"route not found"`
}

// fail aborts the request with a structured error and logs server-side errors.
//
// It constructs an ErrorResponse, writes it as JSON with the given HTTP status,
// and calls gin.Context.AbortWithStatusJSON to stop further processing.
//
// Server errors (>=500) are logged using the request-scoped logger from middleware.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failStore translates a classified store failure into an HTTP response.
//
// Client-facing kinds map to 400 Bad Request with their taxonomy code;
// everything else maps to 502 Bad Gateway with a generic message so the
// underlying store error never leaks to clients. The full cause is logged by
// fail() via the request-scoped logger.
func failStore(c *gin.Context, err error) {
	var se *services.StoreError
	if errors.As(err, &se) {
		switch se.Kind {
		case services.KindNotFound:
			fail(c, http.StatusBadRequest, ErrCodeNotFound, "no matching record")
			return
		case services.KindParse:
			fail(c, http.StatusBadRequest, ErrCodeParseFailed, "stored value could not be interpreted")
			return
		default:
			lg := middleware.LoggerFrom(c)
			lg.Error().Err(se.Err).Str("op", se.Op).Str("kind", string(se.Kind)).Msg("store failure")
			fail(c, http.StatusBadGateway, ErrCodeUpstreamFailed, "store unavailable")
			return
		}
	}
	fail(c, http.StatusInternalServerError, ErrCodeInternal, "unexpected error")
}

// ok writes a success JSON response.
//
// It serializes `body` as JSON with the given HTTP status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// done writes an empty HTTP 200 OK response.
//
// Used when the operation succeeds but there is no response body (updates and
// deletes acknowledge with a bare 200).
func done(c *gin.Context) {
	c.Status(http.StatusOK)
}
