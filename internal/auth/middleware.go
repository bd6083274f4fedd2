// Package auth provides password hashing, session tokens, password reset
// secrets and the cookie session middleware for the inventory API.
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// Context keys for storing authenticated user information and request metadata.
const (
	// UserIDContextKey is the context key for storing the authenticated user ID.
	UserIDContextKey ContextKey = constants.UserIDContextKey

	// UserContextKey is the context key for storing the authenticated user's public profile.
	UserContextKey ContextKey = constants.UserContextKey

	// RequestIDContextKey is the context key for storing the unique request ID.
	RequestIDContextKey ContextKey = constants.RequestIDContextKey
)

// UserLookup resolves the user a session token refers to.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// SetSessionCookie writes the session cookie carrying token.
// Register and login use SameSite=None.
func SetSessionCookie(w http.ResponseWriter, token string, sameSite http.SameSite) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		Expires:  time.Now().Add(constants.DefaultJWTExpiry),
		MaxAge:   constants.SessionCookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: sameSite,
	})
}

// RefreshSessionCookie re-sends the session cookie with SameSite=Strict.
// It sets no Expires or MaxAge, so the lifetime given at login is unchanged.
func RefreshSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// SessionToken returns the raw session token carried by the request cookie.
func SessionToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// HasValidSession reports whether the request carries a session cookie whose
// token verifies. It never fails.
func HasValidSession(r *http.Request, tokens TokenValidator) bool {
	token, ok := SessionToken(r)
	if !ok {
		return false
	}
	_, err := tokens.ValidateToken(token)
	return err == nil
}

// RequireSession is a middleware that requires a valid session cookie.
// It verifies the token, loads the user, refreshes the cookie and attaches
// the user to the request context. Every failure yields the same 401.
//
// Parameters:
//   - tokens: validates the session token signature and expiry
//   - users: resolves the user the token refers to
//
// Returns:
//   - A middleware function that requires authentication
func RequireSession(tokens TokenValidator, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID, _ := GetRequestID(r)

			user, token, reason := authenticate(r, tokens, users)
			if user == nil {
				log.Info().
					Str("reason", reason).
					Str("request_id", requestID).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Authentication failed")

				utils.Unauthorized(w, constants.MsgNotAuthorized)
				return
			}

			RefreshSessionCookie(w, token)

			ctx := context.WithValue(r.Context(), UserIDContextKey, user.ID)
			ctx = context.WithValue(ctx, UserContextKey, user.Public())

			log.Debug().
				Str("user_id", user.ID).
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("User authenticated")

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate runs the session checks. On failure the user is nil and
// reason says which step failed, for logging only.
func authenticate(r *http.Request, tokens TokenValidator, users UserLookup) (*models.User, string, string) {
	token, ok := SessionToken(r)
	if !ok {
		return nil, "", "missing session cookie"
	}

	claims, err := tokens.ValidateToken(token)
	if err != nil {
		return nil, "", "invalid session token"
	}

	user, err := users.GetByID(r.Context(), claims.UserID)
	if err != nil || user == nil {
		return nil, "", "session user not found"
	}

	return user, token, ""
}

// RequestID ensures every request carries an X-Request-ID and stores it in
// the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
			r.Header.Set(constants.HeaderXRequestID, requestID)
		}
		w.Header().Set(constants.HeaderXRequestID, requestID)

		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDContextKey).(string)
	return userID, ok && userID != ""
}

// GetUser extracts the authenticated user's public profile from the request context.
func GetUser(r *http.Request) (*models.PublicUser, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.PublicUser)
	return user, ok && user != nil
}

// GetRequestID extracts the request ID from the request context.
// It returns the request ID and a boolean indicating if it was found.
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(RequestIDContextKey).(string)
	return requestID, ok
}

// IsAuthenticated checks if the request is authenticated.
func IsAuthenticated(r *http.Request) bool {
	_, ok := GetUserID(r)
	return ok
}

// WithUser returns a copy of ctx carrying the user, as RequireSession does.
func WithUser(ctx context.Context, user *models.PublicUser) context.Context {
	ctx = context.WithValue(ctx, UserIDContextKey, user.ID)
	return context.WithValue(ctx, UserContextKey, user)
}
