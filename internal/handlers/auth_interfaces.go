// Package handlers provides HTTP request handlers for the inventory API.
package handlers

import (
	"context"

	"github.com/yasinhessnawi1/inventory_backend/internal/models"
)

// AuthServiceInterface defines the methods required from the authentication service.
// This interface is used by the auth handlers to interact with the authentication business logic
// without being tightly coupled to the implementation.
type AuthServiceInterface interface {
	// Register creates a new account and issues a session token.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - reg: Registration data including name, email, and password
	//
	// Returns:
	//   - The public profile of the new user plus the session token
	//   - An error if registration fails (e.g., the email is already registered)
	Register(ctx context.Context, reg *models.UserRegistration) (*models.AuthenticatedUser, error)

	// Login verifies the credentials and issues a session token.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - creds: Email and password
	//
	// Returns:
	//   - The public profile of the user plus the session token
	//   - An error if the user does not exist or the password does not match
	Login(ctx context.Context, creds *models.UserCredentials) (*models.AuthenticatedUser, error)

	// IsSessionValid reports whether a session token verifies. It never fails.
	IsSessionValid(token string) bool
}

// PasswordResetServiceInterface defines the methods required from the password reset service.
type PasswordResetServiceInterface interface {
	// RequestReset emails a reset link to the owner of the address.
	RequestReset(ctx context.Context, req *models.ForgotPasswordRequest) error

	// ResetPassword sets a new password for the owner of an unexpired reset secret.
	ResetPassword(ctx context.Context, rawToken string, req *models.ResetPasswordRequest) error
}
