package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// registerTestUser creates a user with a known password in the repository
func registerTestUser(t *testing.T, repo *MockUserRepository, email, password string) *models.User {
	t.Helper()

	hash, salt, err := auth.HashNewPassword(password, testPasswordConfig)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.NewUser("Test User", email)
	user.PasswordHash = hash
	user.Salt = salt
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func TestUserService_GetCurrentUser(t *testing.T) {
	repo := NewMockUserRepository()
	service := NewUserService(repo, testPasswordConfig)
	user := registerTestUser(t, repo, "jane@example.com", "secret1")

	public, err := service.GetCurrentUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetCurrentUser() error = %v", err)
	}
	if public.ID != user.ID || public.Email != "jane@example.com" {
		t.Errorf("Unexpected profile: %+v", public)
	}

	// A session whose user no longer exists is unauthorized
	_, err = service.GetCurrentUser(context.Background(), "user-404")
	if !utils.IsUnauthorizedError(err) {
		t.Errorf("Expected unauthorized error, got %v", err)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := NewMockUserRepository()
	service := NewUserService(repo, testPasswordConfig)
	user := registerTestUser(t, repo, "jane@example.com", "secret1")

	updated, err := service.UpdateProfile(context.Background(), user.ID, &models.ProfileUpdate{
		Bio:   "Sells lamps",
		Email: "other@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	if updated.Bio != "Sells lamps" {
		t.Errorf("Expected bio to change, got %q", updated.Bio)
	}
	if updated.Name != "Test User" {
		t.Errorf("Expected name to be retained, got %q", updated.Name)
	}
	if updated.Phone != constants.DefaultUserPhone {
		t.Errorf("Expected phone to be retained, got %q", updated.Phone)
	}
	if updated.Email != "jane@example.com" {
		t.Errorf("Expected email to be unchanged, got %q", updated.Email)
	}

	stored, _ := repo.GetByID(context.Background(), user.ID)
	if stored.Bio != "Sells lamps" {
		t.Errorf("Expected stored bio to change, got %q", stored.Bio)
	}
}

func TestUserService_UpdateProfile_Empty(t *testing.T) {
	repo := NewMockUserRepository()
	service := NewUserService(repo, testPasswordConfig)
	user := registerTestUser(t, repo, "jane@example.com", "secret1")

	updated, err := service.UpdateProfile(context.Background(), user.ID, &models.ProfileUpdate{})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Name != user.Name || updated.Bio != user.Bio {
		t.Errorf("Expected profile to be unchanged, got %+v", updated)
	}
}

func TestUserService_UpdateProfile_Errors(t *testing.T) {
	repo := NewMockUserRepository()
	service := NewUserService(repo, testPasswordConfig)
	user := registerTestUser(t, repo, "jane@example.com", "secret1")

	long := make([]byte, 251)
	for i := range long {
		long[i] = 'a'
	}
	_, err := service.UpdateProfile(context.Background(), user.ID, &models.ProfileUpdate{Bio: string(long)})
	if !utils.IsValidationError(err) {
		t.Errorf("Expected validation error for long bio, got %v", err)
	}

	_, err = service.UpdateProfile(context.Background(), "user-404", &models.ProfileUpdate{Name: "Ghost"})
	if !utils.IsNotFoundError(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := NewMockUserRepository()
	service := NewUserService(repo, testPasswordConfig)
	user := registerTestUser(t, repo, "jane@example.com", "secret1")

	err := service.ChangePassword(context.Background(), user.ID, &models.ChangePasswordRequest{
		OldPassword: "secret1",
		Password:    "secret2",
	})
	if err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), user.ID)

	match, err := auth.VerifyPassword("secret2", stored.PasswordHash, stored.Salt, testPasswordConfig)
	if err != nil || !match {
		t.Error("Expected new password to verify")
	}
	match, _ = auth.VerifyPassword("secret1", stored.PasswordHash, stored.Salt, testPasswordConfig)
	if match {
		t.Error("Expected old password to stop working")
	}
}

func TestUserService_ChangePassword_Errors(t *testing.T) {
	repo := NewMockUserRepository()
	service := NewUserService(repo, testPasswordConfig)
	user := registerTestUser(t, repo, "jane@example.com", "secret1")

	tests := []struct {
		name    string
		userID  string
		req     models.ChangePasswordRequest
		wantErr error
		message string
	}{
		{
			name:    "wrong old password",
			userID:  user.ID,
			req:     models.ChangePasswordRequest{OldPassword: "nope", Password: "secret2"},
			wantErr: utils.ErrUnauthorized,
			message: constants.MsgOldPasswordIncorrect,
		},
		{
			name:    "short new password",
			userID:  user.ID,
			req:     models.ChangePasswordRequest{OldPassword: "secret1", Password: "abc"},
			wantErr: utils.ErrValidation,
		},
		{
			name:    "unknown user",
			userID:  "user-404",
			req:     models.ChangePasswordRequest{OldPassword: "secret1", Password: "secret2"},
			wantErr: utils.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := service.ChangePassword(context.Background(), tt.userID, &req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}

			var appErr *utils.AppError
			if tt.message != "" && errors.As(err, &appErr) && appErr.Message != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, appErr.Message)
			}
		})
	}
}
