// Package models provides the data structures persisted and exchanged by the
// inventory API: users, products and password reset tokens.
package models

import (
	"strings"
	"time"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
)

// User represents a registered account.
// It contains authentication information and profile attributes.
type User struct {
	ID           string    `json:"_id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Salt         string    `json:"-" db:"salt"`
	Photo        string    `json:"photo" db:"photo"`
	Phone        string    `json:"phone" db:"phone"`
	Bio          string    `json:"bio" db:"bio"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// NewUser creates a new User with the profile defaults applied.
// Password fields are populated later during the registration process.
func NewUser(name, email string) *User {
	now := time.Now()
	return &User{
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Photo:     constants.DefaultUserPhoto,
		Phone:     constants.DefaultUserPhone,
		Bio:       constants.DefaultUserBio,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return constants.TableUsers
}

// PublicUser is the only user shape returned over HTTP.
type PublicUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
	Phone string `json:"phone"`
	Bio   string `json:"bio"`
}

// Public strips credentials and timestamps from the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Photo: u.Photo,
		Phone: u.Phone,
		Bio:   u.Bio,
	}
}

// AuthenticatedUser is returned by register and login: the public profile plus
// the session token that was also set as a cookie.
type AuthenticatedUser struct {
	PublicUser
	Token string `json:"token"`
}

// UserRegistration represents the data required for user registration.
type UserRegistration struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserCredentials represents the login credentials provided by a user.
type UserCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate carries the editable profile fields. Empty fields are
// treated as absent. Email is accepted so clients can post the whole profile
// back, but it is ignored.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone"`
	Bio   string `json:"bio" validate:"omitempty,max=250"`
	Photo string `json:"photo"`
}

// IsEmpty reports whether no field was supplied.
func (p *ProfileUpdate) IsEmpty() bool {
	return p.Name == "" && p.Phone == "" && p.Bio == "" && p.Photo == ""
}

// MergeProfile applies a partial update: each supplied field overwrites the
// existing value, absent fields keep it. Email and credentials are never
// touched. The existing user is not modified.
func MergeProfile(existing *User, update ProfileUpdate) *User {
	merged := *existing
	if update.Name != "" {
		merged.Name = update.Name
	}
	if update.Phone != "" {
		merged.Phone = update.Phone
	}
	if update.Bio != "" {
		merged.Bio = update.Bio
	}
	if update.Photo != "" {
		merged.Photo = update.Photo
	}
	if !update.IsEmpty() {
		merged.UpdatedAt = time.Now()
	}
	return &merged
}

// ChangePasswordRequest is the body of the change password endpoint.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
}

// ContactRequest is a message from a signed-in user to the support mailbox.
type ContactRequest struct {
	Subject string `json:"subject" validate:"required,notblank"`
	Message string `json:"message" validate:"required,notblank"`
}
