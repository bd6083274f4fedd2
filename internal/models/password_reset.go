package models

import (
	"time"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
)

// PasswordResetToken represents a password reset token in the database.
// Only the sha256 hash of the emailed secret is stored.
type PasswordResetToken struct {
	UserID    string    `json:"user_id" db:"user_id"`
	TokenHash string    `json:"-" db:"token_hash"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// NewPasswordResetToken creates a token record that expires ttl after now.
func NewPasswordResetToken(userID, tokenHash string, now time.Time, ttl time.Duration) *PasswordResetToken {
	return &PasswordResetToken{
		UserID:    userID,
		TokenHash: tokenHash,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// TableName returns the database table name for the PasswordResetToken model.
func (t *PasswordResetToken) TableName() string {
	return constants.TablePasswordResetTokens
}

// IsExpired reports whether the token is no longer usable at the given time.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// ForgotPasswordRequest defines the structure for requesting a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest carries the new password; the token travels in the URL.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}
