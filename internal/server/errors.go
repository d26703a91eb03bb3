package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blackwell-systems/paperctl/internal/command"
)

// ErrorType is the machine-readable kind of an API error.
type ErrorType string

const (
	ErrorTypeBadRequest          ErrorType = "BAD_REQUEST"
	ErrorTypeNotFound            ErrorType = "NOT_FOUND"
	ErrorTypeInternalServerError ErrorType = "INTERNAL_SERVER_ERROR"
)

// APIError is an error with the HTTP status it maps to.
type APIError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Internal   error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Internal }

func badRequest(message string) *APIError {
	return &APIError{Type: ErrorTypeBadRequest, Message: message, StatusCode: http.StatusBadRequest}
}

// toAPIError classifies a command error. Unknown errors keep their own
// message when they have one, matching the toast the user already saw.
func toAPIError(err error, context string) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case command.IsNotFound(err):
		return &APIError{Type: ErrorTypeNotFound, Message: err.Error(), StatusCode: http.StatusNotFound, Internal: err}
	case command.IsValidation(err):
		return &APIError{Type: ErrorTypeBadRequest, Message: err.Error(), StatusCode: http.StatusBadRequest, Internal: err}
	}
	return &APIError{
		Type:       ErrorTypeInternalServerError,
		Message:    command.Message(err, context),
		StatusCode: http.StatusInternalServerError,
		Internal:   err,
	}
}

// handleError writes err as {"error":{"type","message"}}.
func (s *Server) handleError(c *gin.Context, err error, context string) {
	apiErr := toAPIError(err, context)
	if apiErr.Type == ErrorTypeInternalServerError {
		s.log.Error("internal server error",
			zap.String("url", c.Request.URL.String()),
			zap.Error(apiErr.Internal),
		)
	}
	c.AbortWithStatusJSON(apiErr.StatusCode, gin.H{
		"error": gin.H{
			"type":    apiErr.Type,
			"message": apiErr.Message,
		},
	})
}
