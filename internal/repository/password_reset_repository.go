package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/database"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// ErrTokenNotFound is returned when no unexpired token matches a hash.
var ErrTokenNotFound = errors.New("token not found or expired")

// PasswordResetRepository handles storage of password reset token hashes.
type PasswordResetRepository interface {
	// Create stores a token record.
	Create(ctx context.Context, token *models.PasswordResetToken) error

	// GetValidByHash returns the record whose hash matches and whose expiry is
	// after now, or ErrTokenNotFound.
	GetValidByHash(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordResetToken, error)

	// DeleteByUserID removes every token of the user.
	DeleteByUserID(ctx context.Context, userID string) error

	// DeleteExpired removes tokens that expired at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PostgresPasswordResetRepository is a PostgreSQL implementation of PasswordResetRepository.
type PostgresPasswordResetRepository struct {
	db *database.Pool
}

// NewPasswordResetRepository creates a new PostgreSQL PasswordResetRepository.
func NewPasswordResetRepository(db *database.Pool) PasswordResetRepository {
	return &PostgresPasswordResetRepository{db: db}
}

// Create stores a new password reset token hash in the database.
func (r *PostgresPasswordResetRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	startTime := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO %s (token_hash, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, constants.TablePasswordResetTokens)

	_, err := r.db.ExecContext(ctx, query, token.TokenHash, token.UserID, token.ExpiresAt, token.CreatedAt)

	utils.LogDBQuery(
		query,
		[]interface{}{constants.LogRedactedValue, token.UserID, token.ExpiresAt, token.CreatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to create password reset token: %w", err)
	}
	return nil
}

// GetValidByHash retrieves an unexpired token record by its hash.
func (r *PostgresPasswordResetRepository) GetValidByHash(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordResetToken, error) {
	startTime := time.Now()

	query := fmt.Sprintf(`
		SELECT token_hash, user_id, created_at, expires_at
		FROM %s
		WHERE token_hash = $1 AND expires_at > $2
	`, constants.TablePasswordResetTokens)

	token := &models.PasswordResetToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash, now).Scan(
		&token.TokenHash,
		&token.UserID,
		&token.CreatedAt,
		&token.ExpiresAt,
	)

	utils.LogDBQuery(query, []interface{}{constants.LogRedactedValue, now}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to query password reset token: %w", err)
	}

	return token, nil
}

// DeleteByUserID removes all password reset tokens for a specific user.
func (r *PostgresPasswordResetRepository) DeleteByUserID(ctx context.Context, userID string) error {
	startTime := time.Now()

	query := fmt.Sprintf("DELETE FROM %s WHERE user_id = $1", constants.TablePasswordResetTokens)
	_, err := r.db.ExecContext(ctx, query, userID)

	utils.LogDBQuery(query, []interface{}{userID}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete password reset tokens for user %s: %w", userID, err)
	}
	return nil
}

// DeleteExpired removes expired tokens and reports how many were deleted.
func (r *PostgresPasswordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	startTime := time.Now()

	query := fmt.Sprintf("DELETE FROM %s WHERE expires_at <= $1", constants.TablePasswordResetTokens)
	result, err := r.db.ExecContext(ctx, query, now)

	utils.LogDBQuery(query, []interface{}{now}, time.Since(startTime), err)

	if err != nil {
		return 0, fmt.Errorf("failed to delete expired password reset tokens: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if deleted > 0 {
		log.Info().Int64("count", deleted).Msg("Expired password reset tokens deleted")
	}
	return deleted, nil
}
