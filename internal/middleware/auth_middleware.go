// Package middleware provides HTTP middleware components.
package middleware

import (
	"net/http"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
)

// SessionAuth is a middleware that requires a valid session cookie.
// It delegates to the auth package's session handling.
func SessionAuth(tokens auth.TokenValidator, users auth.UserLookup) func(http.Handler) http.Handler {
	return auth.RequireSession(tokens, users)
}

// NoStore marks responses as uncacheable. Used on routes that return
// account data.
func NoStore() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constants.HeaderCacheControl, constants.CacheControlNoStore)
			w.Header().Set(constants.HeaderPragma, constants.PragmaNoCache)
			w.Header().Set(constants.HeaderExpires, constants.ExpiresZero)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds security-related HTTP headers to responses
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Add security headers
			w.Header().Set(constants.HeaderXContentTypeOptions, constants.ContentTypeOptionsNoSniff)
			w.Header().Set(constants.HeaderXFrameOptions, constants.FrameOptionsDeny)
			w.Header().Set(constants.HeaderXXSSProtection, constants.XSSProtectionModeBlock)
			w.Header().Set(constants.HeaderReferrerPolicy, constants.ReferrerPolicyStrictOrigin)
			w.Header().Set(constants.HeaderContentSecurityPolicy, constants.CSPDefaultSrc)

			next.ServeHTTP(w, r)
		})
	}
}
