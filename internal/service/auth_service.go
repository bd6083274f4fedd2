// Package service implements the business logic of the inventory API:
// accounts and sessions, profile management, password resets, per-user
// products, and the email and media collaborators they rely on.
package service

import (
	"context"
	"fmt"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/repository"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// AuthService handles registration, login and session checks
type AuthService struct {
	userRepo    repository.UserRepository
	tokens      auth.TokenService
	passwordCfg *auth.PasswordConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	tokens auth.TokenService,
	passwordCfg *auth.PasswordConfig,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		passwordCfg: passwordCfg,
	}
}

// Register creates a new user account and issues a session token
func (s *AuthService) Register(ctx context.Context, reg *models.UserRegistration) (*models.AuthenticatedUser, error) {
	if err := utils.ValidateStruct(reg); err != nil {
		return nil, err
	}

	email := utils.NormalizeEmail(reg.Email)

	// Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		utils.LogAuth(constants.LogEventRegister, "", email, false, "email already registered")
		return nil, utils.NewDuplicateError("User", "email", email)
	}

	// Hash the password
	passwordHash, salt, err := auth.HashNewPassword(reg.Password, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(reg.Name, email)
	user.PasswordHash = passwordHash
	user.Salt = salt

	// The unique index still catches a concurrent registration
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	utils.LogAuth(constants.LogEventRegister, user.ID, user.Email, true, "")

	return &models.AuthenticatedUser{PublicUser: *user.Public(), Token: token}, nil
}

// Login verifies credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, creds *models.UserCredentials) (*models.AuthenticatedUser, error) {
	if err := utils.ValidateStruct(creds); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth(constants.LogEventLogin, "", creds.Email, false, "user not found")
			return nil, utils.NewUnauthorizedError(constants.MsgUserNotFoundSignUp)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	match, err := auth.VerifyPassword(creds.Password, user.PasswordHash, user.Salt, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		utils.LogAuth(constants.LogEventLogin, user.ID, user.Email, false, "invalid password")
		return nil, utils.NewInvalidCredentialsError()
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	utils.LogAuth(constants.LogEventLogin, user.ID, user.Email, true, "")

	return &models.AuthenticatedUser{PublicUser: *user.Public(), Token: token}, nil
}

// IsSessionValid reports whether a session token verifies. It never fails.
func (s *AuthService) IsSessionValid(token string) bool {
	if token == "" {
		return false
	}
	_, err := s.tokens.ValidateToken(token)
	return err == nil
}

// Tokens exposes the token validator for the session middleware
func (s *AuthService) Tokens() auth.TokenValidator {
	return s.tokens
}
