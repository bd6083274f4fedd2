package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/inventory_backend/internal/database"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/repository"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

const testProductID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

var productColumnNames = []string{
	"id", "user_id", "name", "sku", "category", "quantity", "price", "description",
	"image_file_name", "image_file_path", "image_file_type", "image_file_size", "created_at", "updated_at",
}

func setupProductRepositoryTest(t *testing.T) (repository.ProductRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return repository.NewProductRepository(&database.Pool{DB: db}), mock, func() {
		db.Close()
	}
}

func TestProductRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupProductRepositoryTest(t)
	defer cleanup()

	product := models.NewProduct(testUserID, models.ProductInput{
		Name:        "Chair",
		Category:    "Furniture",
		Quantity:    "4",
		Price:       "25",
		Description: "Oak",
	}, &models.ProductImage{FileName: "chair.png", FilePath: "https://cdn/chair.png", FileType: "image/png", FileSize: "1.5 KB"})

	mock.ExpectExec("INSERT INTO products").
		WithArgs(sqlmock.AnyArg(), testUserID, "Chair", "SKU", "Furniture", "4", "25", "Oak",
			"chair.png", "https://cdn/chair.png", "image/png", "1.5 KB", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), product)

	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := setupProductRepositoryTest(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1").
		WithArgs(testProductID).
		WillReturnRows(sqlmock.NewRows(productColumnNames).
			AddRow(testProductID, testUserID, "Chair", "SKU", "Furniture", "4", "25", "Oak", "", "", "", "", now, now))

	product, err := repo.GetByID(context.Background(), testProductID)

	require.NoError(t, err)
	assert.Equal(t, "Chair", product.Name)
	assert.True(t, product.Image.IsZero())
	assert.True(t, product.IsOwnedBy(testUserID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupProductRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(testProductID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), testProductID)
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	_, err = repo.GetByID(context.Background(), "123")
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListByUser(t *testing.T) {
	repo, mock, cleanup := setupProductRepositoryTest(t)
	defer cleanup()

	newer := time.Now()
	older := newer.Add(-time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM products WHERE user_id = \\$1 ORDER BY created_at DESC").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(productColumnNames).
			AddRow("b", testUserID, "Table", "SKU", "Furniture", "1", "90", "Pine", "", "", "", "", newer, newer).
			AddRow("a", testUserID, "Chair", "SKU", "Furniture", "4", "25", "Oak", "", "", "", "", older, older))

	products, err := repo.ListByUser(context.Background(), testUserID)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Table", products[0].Name)
	assert.Equal(t, "Chair", products[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListByUser_Empty(t *testing.T) {
	repo, mock, cleanup := setupProductRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(productColumnNames))

	products, err := repo.ListByUser(context.Background(), testUserID)

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update(t *testing.T) {
	repo, mock, cleanup := setupProductRepositoryTest(t)
	defer cleanup()

	product := &models.Product{
		ID:          testProductID,
		Name:        "Chair",
		Category:    "Furniture",
		Quantity:    "2",
		Price:       "30",
		Description: "Oak",
	}

	mock.ExpectExec("UPDATE products").
		WithArgs("Chair", "Furniture", "2", "30", "Oak", "", "", "", "", sqlmock.AnyArg(), testProductID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(context.Background(), product))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateQuantity(t *testing.T) {
	repo, mock, cleanup := setupProductRepositoryTest(t)
	defer cleanup()

	mock.ExpectExec("UPDATE products SET quantity").
		WithArgs("7", sqlmock.AnyArg(), testProductID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateQuantity(context.Background(), testProductID, "7"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete(t *testing.T) {
	repo, mock, cleanup := setupProductRepositoryTest(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM products WHERE id = \\$1").
		WithArgs(testProductID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM products WHERE id = \\$1").
		WithArgs(testProductID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), testProductID))

	err := repo.Delete(context.Background(), testProductID)
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
