package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/middleware"
)

func TestRecovery(t *testing.T) {
	tests := []struct {
		name           string
		handler        http.Handler
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "No panic occurs",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				if _, err := w.Write([]byte("Success")); err != nil {
					t.Fatalf("failed to write response: %v", err)
				}
			}),
			expectedStatus: http.StatusOK,
			expectedBody:   "Success",
		},
		{
			name: "Panic with error",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(errors.New("test error"))
			}),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"error":{"code":"internal_error","message":"An internal server error occurred"}}`,
		},
		{
			name: "Panic with string",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("test panic")
			}),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"error":{"code":"internal_error","message":"An internal server error occurred"}}`,
		},
	}

	var logBuf bytes.Buffer
	originalLogger := log.Logger
	log.Logger = zerolog.New(&logBuf)
	defer func() {
		log.Logger = originalLogger
	}()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuf.Reset()

			recoveryMiddleware := middleware.Recovery()(tt.handler)

			req, err := http.NewRequest("GET", "/test", nil)
			if err != nil {
				t.Fatalf("Failed to create request: %v", err)
			}
			ctx := context.WithValue(req.Context(), auth.RequestIDContextKey, "test-request-id")
			req = req.WithContext(ctx)

			rr := httptest.NewRecorder()

			recoveryMiddleware.ServeHTTP(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("Handler returned wrong status code: got %v want %v", status, tt.expectedStatus)
			}

			if body := strings.TrimSpace(rr.Body.String()); body != tt.expectedBody {
				t.Errorf("Handler returned unexpected body: got %v want %v", body, tt.expectedBody)
			}

			if tt.expectedStatus == http.StatusInternalServerError {
				logs := logBuf.String()
				if !strings.Contains(logs, "Panic recovered in request handler") {
					t.Errorf("Expected panic log not found: %s", logs)
				}
				if !strings.Contains(logs, "test-request-id") {
					t.Errorf("Expected request ID in logs: %s", logs)
				}
			}
		})
	}
}

func TestRecovery_AbortHandlerIsRepanicked(t *testing.T) {
	handler := middleware.Recovery()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if r := recover(); r != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", r)
		}
	}()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	t.Error("expected panic to propagate")
}

func TestLogAndContinueOnError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		message   string
		expectLog bool
	}{
		{
			name:      "No error",
			err:       nil,
			message:   "This should not log",
			expectLog: false,
		},
		{
			name:      "With error",
			err:       errors.New("test error"),
			message:   "Test log message",
			expectLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			originalLogger := log.Logger
			log.Logger = zerolog.New(&logBuf)
			defer func() {
				log.Logger = originalLogger
			}()

			middleware.LogAndContinueOnError(tt.err, tt.message)

			logs := logBuf.String()
			if tt.expectLog {
				if !strings.Contains(logs, tt.message) {
					t.Errorf("Expected log message not found in logs: %s", logs)
				}
				if !strings.Contains(logs, tt.err.Error()) {
					t.Errorf("Expected error not found in logs: %s", logs)
				}
			} else if logs != "" {
				t.Errorf("Unexpected log output: %s", logs)
			}
		})
	}
}
