package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/database"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// ProductRepository defines methods for interacting with product data.
// Ownership is enforced by the service layer, not here.
type ProductRepository interface {
	// Create stores a new product and sets its ID.
	Create(ctx context.Context, product *models.Product) error

	// GetByID retrieves a product. Unknown or malformed IDs give NotFoundError.
	GetByID(ctx context.Context, id string) (*models.Product, error)

	// ListByUser returns the user's products, newest first. Never nil.
	ListByUser(ctx context.Context, userID string) ([]*models.Product, error)

	// Update writes every mutable field of the product.
	Update(ctx context.Context, product *models.Product) error

	// UpdateQuantity sets only the quantity.
	UpdateQuantity(ctx context.Context, id, quantity string) error

	// Delete removes the product.
	Delete(ctx context.Context, id string) error
}

// PostgresProductRepository is a PostgreSQL implementation of ProductRepository
type PostgresProductRepository struct {
	db *database.Pool
}

// NewProductRepository creates a new PostgreSQL ProductRepository
func NewProductRepository(db *database.Pool) ProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, user_id, name, sku, category, quantity, price, description,
        image_file_name, image_file_path, image_file_type, image_file_size, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.SKU,
		&p.Category,
		&p.Quantity,
		&p.Price,
		&p.Description,
		&p.Image.FileName,
		&p.Image.FilePath,
		&p.Image.FileType,
		&p.Image.FileSize,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create adds a new product to the database
func (r *PostgresProductRepository) Create(ctx context.Context, product *models.Product) error {
	startTime := time.Now()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = product.CreatedAt
	}

	query := `
        INSERT INTO products (` + productColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `

	args := []interface{}{
		product.ID,
		product.UserID,
		product.Name,
		product.SKU,
		product.Category,
		product.Quantity,
		product.Price,
		product.Description,
		product.Image.FileName,
		product.Image.FilePath,
		product.Image.FileType,
		product.Image.FileSize,
		product.CreatedAt,
		product.UpdatedAt,
	}
	_, err := r.db.ExecContext(ctx, query, args...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	log.Info().
		Str("product_id", product.ID).
		Str("user_id", product.UserID).
		Msg("Product created")

	return nil
}

// GetByID retrieves a product by ID
func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.NewNotFoundError("Product", id)
	}

	startTime := time.Now()
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Product", id)
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}

	return product, nil
}

// ListByUser retrieves all products of a user, newest first
func (r *PostgresProductRepository) ListByUser(ctx context.Context, userID string) ([]*models.Product, error) {
	startTime := time.Now()

	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)

	utils.LogDBQuery(query, []interface{}{userID}, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	products := make([]*models.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

// Update writes the product's mutable fields
func (r *PostgresProductRepository) Update(ctx context.Context, product *models.Product) error {
	startTime := time.Now()

	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = time.Now()
	}

	query := `
        UPDATE products
        SET name = $1, category = $2, quantity = $3, price = $4, description = $5,
            image_file_name = $6, image_file_path = $7, image_file_type = $8, image_file_size = $9,
            updated_at = $10
        WHERE id = $11
    `

	args := []interface{}{
		product.Name,
		product.Category,
		product.Quantity,
		product.Price,
		product.Description,
		product.Image.FileName,
		product.Image.FilePath,
		product.Image.FileType,
		product.Image.FileSize,
		product.UpdatedAt,
		product.ID,
	}
	result, err := r.db.ExecContext(ctx, query, args...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return r.expectOneRow(result, product.ID, "Product updated")
}

// UpdateQuantity sets the quantity of a product
func (r *PostgresProductRepository) UpdateQuantity(ctx context.Context, id, quantity string) error {
	startTime := time.Now()

	query := `UPDATE products SET quantity = $1, updated_at = $2 WHERE id = $3`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query, quantity, now, id)

	utils.LogDBQuery(query, []interface{}{quantity, now, id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to update product quantity: %w", err)
	}

	return r.expectOneRow(result, id, "Product quantity updated")
}

// Delete removes a product from the database
func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	startTime := time.Now()

	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return r.expectOneRow(result, id, "Product deleted")
}

func (r *PostgresProductRepository) expectOneRow(result sql.Result, id, msg string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Product", id)
	}

	log.Info().
		Str("product_id", id).
		Msg(msg)

	return nil
}
