// Package utils provides utility functions and helpers for the application.
// This file implements a standardized API response system that ensures
// consistent response formats across all API endpoints.
//
// The response system includes:
//   - A standard Response structure for all API responses
//   - Convenience functions for common response types
//   - Translation of AppError values into error envelopes
//
// This ensures that all API responses follow the same format, making it easier
// for clients to parse and handle responses predictably.
package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
)

// Response represents a standardized API response.
// All API endpoints return responses in this format for consistency.
type Response struct {
	Success bool        `json:"success"`           // Whether the request was successful
	Data    interface{} `json:"data,omitempty"`    // The response data (omitted for error responses)
	Message string      `json:"message,omitempty"` // Acknowledgement text for operations without a payload
	Error   *ErrorInfo  `json:"error,omitempty"`   // Error information (omitted for successful responses)
}

// ErrorInfo represents error information in the response.
// This provides structured error information to clients.
type ErrorInfo struct {
	Code    string            `json:"code"`              // A machine-readable error code
	Message string            `json:"message"`           // A human-readable error message
	Details map[string]string `json:"details,omitempty"` // Additional details about the error (e.g., validation errors)
}

// exposeDevInfo controls whether AppError.DevInfo reaches clients.
var exposeDevInfo atomic.Bool

// SetExposeDevInfo toggles developer details in error responses.
// Only enabled in development.
func SetExposeDevInfo(enabled bool) {
	exposeDevInfo.Store(enabled)
}

// JSON sends a JSON response with the given status code and data.
// The success flag is derived from the status code.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code to send
//   - data: The data to include in the response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	}

	SendJSON(w, statusCode, response)
}

// Message sends a successful acknowledgement without a data payload.
func Message(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, Response{
		Success: statusCode >= 200 && statusCode < 300,
		Message: message,
	})
}

// Text sends a plain text body.
func Text(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeText)
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Error().Err(err).Msg("Failed to write text response")
	}
}

// Error sends an error response with the given status code and error details.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code to send
//   - code: A machine-readable error code
//   - message: A human-readable error message
//   - details: Additional error details (optional)
func Error(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	response := Response{
		Success: constants.ResponseFailure,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	SendJSON(w, statusCode, response)
}

// ErrorFromAppError sends an error response based on an AppError.
// The machine readable code is derived from the wrapped sentinel.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	errCode := constants.CodeInternalError
	switch {
	case errors.Is(err.Err, ErrNotFound):
		errCode = constants.CodeNotFound
	case errors.Is(err.Err, ErrBadRequest):
		errCode = constants.CodeBadRequest
	case errors.Is(err.Err, ErrUnauthorized):
		errCode = constants.CodeUnauthorized
	case errors.Is(err.Err, ErrForbidden):
		errCode = constants.CodeForbidden
	case errors.Is(err.Err, ErrValidation):
		errCode = constants.CodeValidationError
	case errors.Is(err.Err, ErrDuplicate):
		errCode = constants.CodeDuplicateResource
	case errors.Is(err.Err, ErrInvalidCredentials):
		errCode = constants.CodeInvalidCredentials
	case errors.Is(err.Err, ErrExpiredToken):
		errCode = constants.CodeTokenExpired
	case errors.Is(err.Err, ErrInvalidToken):
		errCode = constants.CodeTokenInvalid
	case errors.Is(err.Err, ErrUpload):
		errCode = constants.CodeUploadFailed
	case errors.Is(err.Err, ErrDelivery):
		errCode = constants.CodeDeliveryFailed
	}

	var details map[string]string
	if len(err.Details) > 0 {
		details = make(map[string]string, len(err.Details))
		for k, v := range err.Details {
			if s, ok := v.(string); ok {
				details[k] = s
			}
		}
	}
	if err.Field != "" {
		if details == nil {
			details = map[string]string{}
		}
		details[err.Field] = err.Message
	}
	if err.DevInfo != "" && exposeDevInfo.Load() {
		if details == nil {
			details = map[string]string{}
		}
		details["dev_info"] = err.DevInfo
	}

	if err.StatusCode >= http.StatusInternalServerError {
		log.Error().Err(err.Err).Str("dev_info", err.DevInfo).Msg(err.Message)
	}

	Error(w, err.StatusCode, errCode, err.Message, details)
}

// HandleError renders any error through ParseError.
// Unknown errors become a generic 500.
func HandleError(w http.ResponseWriter, err error) {
	ErrorFromAppError(w, ParseError(err))
}

// SendJSON serializes data and writes it with the given status code.
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"success":false,"error":{"code":"internal_error","message":"Failed to generate response"}}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if _, err = w.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(constants.StatusNoContent)
}

// BadRequest sends a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	Error(w, constants.StatusBadRequest, constants.CodeBadRequest, message, details)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgNotAuthorized
	}
	Error(w, constants.StatusUnauthorized, constants.CodeUnauthorized, message, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgResourceNotFound
	}
	Error(w, constants.StatusNotFound, constants.CodeNotFound, message, nil)
}

// MethodNotAllowed sends a 405 Method Not Allowed response.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, constants.StatusMethodNotAllowed, constants.CodeMethodNotAllowed, constants.MsgMethodNotAllowed, nil)
}

// InternalServerError logs err and sends a generic 500 response.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, constants.StatusInternalServerError, constants.CodeInternalError, constants.MsgInternalServerError, nil)
}

// ValidationError sends a 400 response listing per-field problems.
func ValidationError(w http.ResponseWriter, errors map[string]string) {
	Error(w, constants.StatusBadRequest, constants.CodeValidationError, "Validation failed", errors)
}
