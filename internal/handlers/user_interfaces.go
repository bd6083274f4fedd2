// user_interfaces.go

// Package handlers provides HTTP request handlers and service interfaces for the inventory API.
// This file defines service interfaces related to user profiles and support contact,
// establishing clear contracts between handlers and service implementations.
package handlers

import (
	"context"

	"github.com/yasinhessnawi1/inventory_backend/internal/models"
)

// UserServiceInterface defines the methods required from UserService.
// This interface encapsulates profile operations, allowing handlers
// to interact with user data without depending on specific implementations.
type UserServiceInterface interface {
	// GetCurrentUser returns the public profile of the session user.
	//
	// Parameters:
	//   - ctx: The context for the operation, which may include deadlines or cancellation
	//   - id: The identifier of the session user
	//
	// Returns:
	//   - The public profile if found
	//   - An unauthorized error if the user no longer exists
	GetCurrentUser(ctx context.Context, id string) (*models.PublicUser, error)

	// UpdateProfile merges the supplied fields into the user's profile.
	//
	// Parameters:
	//   - ctx: The context for the operation, which may include deadlines or cancellation
	//   - id: The identifier of the user to update
	//   - update: The fields to change; empty fields keep their current value
	//
	// Returns:
	//   - The updated public profile
	//   - An error if the user doesn't exist, if validation fails, or if storage fails
	UpdateProfile(ctx context.Context, id string, update *models.ProfileUpdate) (*models.PublicUser, error)

	// ChangePassword verifies the old password and stores the new one.
	//
	// Parameters:
	//   - ctx: The context for the operation, which may include deadlines or cancellation
	//   - id: The identifier of the user whose password will be changed
	//   - req: The old password for verification and the new password
	//
	// Returns:
	//   - An error if the old password does not verify, if validation fails, or if storage fails
	ChangePassword(ctx context.Context, id string, req *models.ChangePasswordRequest) error
}

// ContactServiceInterface forwards user messages to the support mailbox.
type ContactServiceInterface interface {
	SendContactEmail(ctx context.Context, fromEmail, subject, message string) error
}
