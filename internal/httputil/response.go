// Package httputil holds the request parsing and error rendering shared by
// every API handler.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type errorMapping struct {
	sentinel error
	status   int
	code     string
	// message returns the client-facing text. nil means the raw error text.
	message func(err error) string
}

func fixed(text string) func(error) string {
	return func(error) string { return text }
}

// errorMappings is checked in order. The first matching sentinel wins.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", apperrors.Message},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", apperrors.Message},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", nil},
	{apperrors.ErrInvalidRange, http.StatusBadRequest, "invalid_range", apperrors.Message},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", fixed("Authentication is required")},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", apperrors.Message},
}

var internalError = errorMapping{
	status:  http.StatusInternalServerError,
	code:    "internal_error",
	message: fixed("An internal error occurred"),
}

func lookup(err error) errorMapping {
	for _, m := range errorMappings {
		if apperrors.Is(err, m.sentinel) {
			return m
		}
	}
	return internalError
}

// HandleErrorGin renders err as an ErrorResponse. Errors outside the known
// sentinels become 500 responses whose details only reach the log.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	m := lookup(err)
	message := err.Error()
	if m.message != nil {
		message = m.message(err)
	}

	if logger != nil {
		level := slog.LevelWarn
		if m.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.String("request_id", requestid.Get(c)),
			slog.Int("status_code", m.status),
			slog.String("error_code", m.code),
			slog.Any("error", err),
		)
	}

	writeError(c, m.status, m.code, message)
}

// HandleBadRequestGin answers 400 for bodies or parameters that cannot be parsed.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.String("request_id", requestid.Get(c)), slog.Any("error", err))
	}
	writeError(c, http.StatusBadRequest, "bad_request", err.Error())
}

// HandleValidationErrorGin answers 422 with the field level validation messages.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.String("request_id", requestid.Get(c)), slog.Any("error", err))
	}
	writeError(c, http.StatusUnprocessableEntity, "validation_error", err.Error())
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: requestid.Get(c),
	})
}
