package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/repository"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// PasswordResetService runs the forgot-password and reset-password flow.
type PasswordResetService struct {
	users     *UserService
	userRepo  repository.UserRepository
	tokenRepo repository.PasswordResetRepository
	email     *EmailService
	resetURL  func(rawToken string) string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewPasswordResetService creates a new PasswordResetService.
// resetURL turns a raw secret into the link placed in the email.
func NewPasswordResetService(
	users *UserService,
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetRepository,
	email *EmailService,
	resetURL func(rawToken string) string,
) *PasswordResetService {
	return &PasswordResetService{
		users:     users,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		email:     email,
		resetURL:  resetURL,
		tokenTTL:  constants.ResetTokenTTL,
		now:       time.Now,
	}
}

// RequestReset issues a new reset secret for the account and emails the link.
// Any earlier secret of the user stops working. If delivery fails the new
// token stays stored and a DeliveryError is returned.
func (s *PasswordResetService) RequestReset(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return utils.NewNotFoundError("User", utils.MaskEmail(utils.NormalizeEmail(req.Email)))
		}
		return err
	}

	if err := s.tokenRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return err
	}

	rawToken, tokenHash, err := auth.GenerateResetToken(user.ID)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	token := models.NewPasswordResetToken(user.ID, tokenHash, s.now(), s.tokenTTL)
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return err
	}

	log.Info().
		Str("user_id", user.ID).
		Time("expires_at", token.ExpiresAt).
		Msg("Password reset token issued")

	return s.email.SendPasswordResetEmail(ctx, user.Email, user.Name, s.resetURL(rawToken))
}

// ResetPassword sets a new password for the owner of an unexpired secret.
// The token record is left in place and expires on its own.
func (s *PasswordResetService) ResetPassword(ctx context.Context, rawToken string, req *models.ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	token, err := s.tokenRepo.GetValidByHash(ctx, auth.HashResetToken(rawToken), s.now())
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			utils.LogAuth(constants.LogEventPasswordReset, "", "", false, "invalid or expired token")
			return utils.NewInvalidTokenError()
		}
		return err
	}

	if err := s.users.setPassword(ctx, token.UserID, req.Password); err != nil {
		return err
	}

	utils.LogAuth(constants.LogEventPasswordReset, token.UserID, "", true, "")
	return nil
}

// CleanupExpired removes reset tokens whose window has passed.
func (s *PasswordResetService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpired(ctx, s.now())
}
