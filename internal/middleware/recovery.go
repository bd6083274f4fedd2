package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// maxStackFrames bounds how many lines of a recovered stack are logged.
const maxStackFrames = 40

// Recovery is a middleware that recovers from panics and returns a 500 Internal Server Error
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					requestID, _ := auth.GetRequestID(r)

					log.Error().
						Str("request_id", requestID).
						Interface("panic", err).
						Str("stack", sanitizeStackTrace(string(debug.Stack()))).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("remote_addr", getClientIP(r)).
						Msg("Panic recovered in request handler")

					utils.Error(
						w,
						http.StatusInternalServerError,
						constants.CodeInternalError,
						constants.MsgInternalServerError,
						nil,
					)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// sanitizeStackTrace drops argument values from the trace and keeps at most
// maxStackFrames lines. Arguments can carry request data such as passwords.
func sanitizeStackTrace(stack string) string {
	lines := strings.Split(strings.TrimSpace(stack), "\n")
	if len(lines) > maxStackFrames {
		lines = lines[:maxStackFrames]
	}

	for i, line := range lines {
		if strings.HasPrefix(line, "\t") {
			continue
		}
		if open := strings.LastIndex(line, "("); open > 0 && strings.HasSuffix(line, ")") {
			lines[i] = line[:open] + "(...)"
		}
	}

	return strings.Join(lines, "\n")
}

// LogAndContinueOnError logs an error but allows execution to continue
// This is useful for non-critical errors that should be logged but not cause a panic
func LogAndContinueOnError(err error, message string) {
	if err != nil {
		log.Error().Err(err).Msg(message)
	}
}
