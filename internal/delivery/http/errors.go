package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/calories/backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const unexpectedErrorMessage = "An unexpected error occurred. Please try again later."

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// statusFor maps an error kind to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadInput),
		errors.Is(err, domain.ErrMalformedResponse),
		errors.Is(err, domain.ErrExternalLookup):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrLookupNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Internal faults get a fixed
// message; the cause only goes to the log.
func respondError(c *gin.Context, logger zerolog.Logger, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("unexpected error")
		message = unexpectedErrorMessage
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request failed")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}
