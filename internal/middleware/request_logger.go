package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// RequestLogger logs every completed request with its status and latency.
// Requests that look like scanner probes are additionally logged as warnings.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				requestID, _ := auth.GetRequestID(r)
				clientIP := getClientIP(r)

				if isSuspiciousRequest(r) {
					log.Warn().
						Str("request_id", requestID).
						Str("client_ip", clientIP).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("Suspicious request")
				}

				if isExemptedPath(r.URL.Path) {
					return
				}

				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				utils.LogHTTPRequest(
					requestID,
					r.Method,
					r.URL.Path,
					clientIP,
					r.UserAgent(),
					status,
					time.Since(start),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// getClientIP extracts the client IP address from the request,
// taking into account common proxy headers.
func getClientIP(r *http.Request) string {
	// Check for X-Forwarded-For header
	xForwardedFor := r.Header.Get(constants.HeaderXForwardedFor)
	if xForwardedFor != "" {
		// Use the leftmost IP in the list (client IP)
		ips := strings.Split(xForwardedFor, ",")
		return strings.TrimSpace(ips[0])
	}

	xRealIP := r.Header.Get(constants.HeaderXRealIP)
	if xRealIP != "" {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// isExemptedPath reports whether request logging is skipped for path.
func isExemptedPath(path string) bool {
	exemptPrefixes := []string{
		constants.VersionPath,
		constants.UploadsPath + "/",
		"/favicon.ico",
	}

	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// isSuspiciousRequest checks for patterns that might indicate malicious activity.
// This includes SQL injection attempts, path traversal, etc.
func isSuspiciousRequest(r *http.Request) bool {
	path := r.URL.Path
	suspiciousPathPatterns := []string{
		"../",
		"/..",
		"/.git",
		"/.env",
		"/wp-admin",
		"/wp-login",
		"/phpmyadmin",
		"/admin.php",
	}

	for _, pattern := range suspiciousPathPatterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}

	query := strings.ToUpper(r.URL.RawQuery)
	suspiciousQueryPatterns := []string{
		"EXEC(",
		"EVAL(",
		"UNION",
		"DROP",
		"1=1",
		"<SCRIPT",
		"ALERT(",
		"ONLOAD=",
		"ONERROR=",
	}

	for _, pattern := range suspiciousQueryPatterns {
		if strings.Contains(query, pattern) {
			return true
		}
	}

	return false
}
