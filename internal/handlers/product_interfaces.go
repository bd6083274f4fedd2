package handlers

import (
	"context"

	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/service"
)

// ProductServiceInterface defines the methods required from ProductService.
// Every operation is scoped to the requesting user: products owned by
// someone else are reported as unauthorized.
type ProductServiceInterface interface {
	// Create stores a new product for the owner. The image is optional.
	Create(ctx context.Context, ownerID string, in *models.ProductInput, image *service.ImageUpload) (*models.Product, error)

	// List returns the owner's products, newest first.
	List(ctx context.Context, ownerID string) ([]*models.Product, error)

	// Get returns a single product owned by the requester.
	Get(ctx context.Context, id, requesterID string) (*models.Product, error)

	// Update replaces the product fields and optionally its image.
	Update(ctx context.Context, id, requesterID string, in *models.ProductInput, image *service.ImageUpload) (*models.Product, error)

	// UpdateQuantity changes only the quantity.
	UpdateQuantity(ctx context.Context, id, requesterID string, update *models.QuantityUpdate) error

	// Delete removes the product.
	Delete(ctx context.Context, id, requesterID string) error
}
