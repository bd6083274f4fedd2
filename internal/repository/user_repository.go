// Package repository provides data access interfaces and implementations for
// the inventory API. Every interface has a MongoDB implementation, the
// default store, and a PostgreSQL implementation.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/database"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// UserRepository defines methods for interacting with user data
type UserRepository interface {
	// Create stores a new user and sets its ID.
	//
	// Returns:
	//   - DuplicateError if the email is already registered
	//   - Other errors for database issues
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID. Unknown or malformed IDs give NotFoundError.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by normalized email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update persists the profile fields (name, phone, bio, photo).
	// Email and credentials are not written.
	Update(ctx context.Context, user *models.User) error

	// ChangePassword replaces the stored hash and salt.
	ChangePassword(ctx context.Context, id string, passwordHash, salt string) error

	// ExistsByEmail checks whether an account uses the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PostgresUserRepository is a PostgreSQL implementation of UserRepository
type PostgresUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new PostgreSQL UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

const userColumns = `id, name, email, password_hash, salt, photo, phone, bio, created_at, updated_at`

// Create adds a new user to the database
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
        INSERT INTO users (id, name, email, password_hash, salt, photo, phone, bio, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	_, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Salt,
		user.Photo,
		user.Phone,
		user.Bio,
		user.CreatedAt,
		user.UpdatedAt,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{user.ID, user.Name, utils.MaskEmail(user.Email), constants.LogRedactedValue, constants.LogRedactedValue},
		time.Since(startTime),
		err,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constants.PGErrorDuplicateConstraint {
			return utils.NewDuplicateError("User", constants.ColumnEmail, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Str("user_id", user.ID).
		Str("email", utils.MaskEmail(user.Email)).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.NewNotFoundError("User", id)
	}

	user, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, utils.NewNotFoundError("User", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = utils.NormalizeEmail(email)

	user, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, utils.NewNotFoundError("User", fmt.Sprintf("email=%s", utils.MaskEmail(email)))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// getOne runs a single-row user query.
func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	startTime := time.Now()

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Salt,
		&user.Photo,
		&user.Phone,
		&user.Bio,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	utils.LogDBQuery(query, []interface{}{arg}, time.Since(startTime), err)

	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update updates a user's profile in the database
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	query := `
        UPDATE users
        SET name = $1, phone = $2, bio = $3, photo = $4, updated_at = $5
        WHERE id = $6
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Name,
		user.Phone,
		user.Bio,
		user.Photo,
		user.UpdatedAt,
		user.ID,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{user.Name, user.Phone, user.Bio, user.Photo, user.UpdatedAt, user.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", user.ID)
	}

	log.Info().
		Str("user_id", user.ID).
		Msg("User updated")

	return nil
}

// ChangePassword updates a user's password
func (r *PostgresUserRepository) ChangePassword(ctx context.Context, id string, passwordHash, salt string) error {
	startTime := time.Now()

	query := `
        UPDATE users
        SET password_hash = $1, salt = $2, updated_at = $3
        WHERE id = $4
    `

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query, passwordHash, salt, now, id)

	// Log the query execution (without sensitive data)
	utils.LogDBQuery(
		query,
		[]interface{}{constants.LogRedactedValue, constants.LogRedactedValue, now, id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	log.Info().
		Str("user_id", id).
		Msg("User password changed")

	return nil
}

// ExistsByEmail checks if a user with the given email exists
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	startTime := time.Now()

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, utils.NormalizeEmail(email)).Scan(&exists)

	utils.LogDBQuery(query, []interface{}{utils.MaskEmail(email)}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check if email exists: %w", err)
	}

	return exists, nil
}
