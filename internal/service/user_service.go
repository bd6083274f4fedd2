package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/repository"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// UserService handles user profile operations
type UserService struct {
	userRepo    repository.UserRepository
	passwordCfg *auth.PasswordConfig
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, passwordCfg *auth.PasswordConfig) *UserService {
	return &UserService{
		userRepo:    userRepo,
		passwordCfg: passwordCfg,
	}
}

// GetByID returns the stored user. Used by the session middleware.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetCurrentUser returns the public profile of the session user
func (s *UserService) GetCurrentUser(ctx context.Context, id string) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return nil, utils.NewUnauthorizedError("")
		}
		return nil, err
	}
	return user.Public(), nil
}

// UpdateProfile merges the supplied fields into the user's profile.
// Absent fields and the email are retained.
func (s *UserService) UpdateProfile(ctx context.Context, id string, update *models.ProfileUpdate) (*models.PublicUser, error) {
	if err := utils.ValidateStruct(update); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return nil, utils.New(utils.ErrNotFound, http.StatusNotFound, constants.MsgUserNotFound)
		}
		return nil, err
	}

	if update.IsEmpty() {
		return existing.Public(), nil
	}

	merged := models.MergeProfile(existing, *update)
	if err := s.userRepo.Update(ctx, merged); err != nil {
		return nil, err
	}

	log.Info().
		Str("category", constants.LogCategoryUser).
		Str("event", constants.LogEventUserUpdate).
		Str("user_id", id).
		Msg("User profile updated")

	return merged.Public(), nil
}

// ChangePassword verifies the old password and stores a new hash
func (s *UserService) ChangePassword(ctx context.Context, id string, req *models.ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return utils.NewUnauthorizedError("")
		}
		return err
	}

	match, err := auth.VerifyPassword(req.OldPassword, user.PasswordHash, user.Salt, s.passwordCfg)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		utils.LogAuth(constants.LogEventPasswordChange, id, user.Email, false, "old password incorrect")
		return utils.NewUnauthorizedError(constants.MsgOldPasswordIncorrect)
	}

	return s.setPassword(ctx, id, req.Password)
}

// setPassword hashes and stores a new password
func (s *UserService) setPassword(ctx context.Context, id, password string) error {
	passwordHash, salt, err := auth.HashNewPassword(password, s.passwordCfg)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.ChangePassword(ctx, id, passwordHash, salt); err != nil {
		return err
	}

	log.Info().
		Str("user_id", id).
		Msg("User password changed")

	return nil
}
