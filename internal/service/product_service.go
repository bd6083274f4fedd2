package service

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/repository"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// ProductService handles product operations scoped to their owner
type ProductService struct {
	productRepo repository.ProductRepository
	media       *MediaService
}

// NewProductService creates a new ProductService
func NewProductService(productRepo repository.ProductRepository, media *MediaService) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		media:       media,
	}
}

// Create validates the input, uploads the optional image and stores the
// product. Nothing is stored if the upload fails.
func (s *ProductService) Create(ctx context.Context, ownerID string, in *models.ProductInput, image *ImageUpload) (*models.Product, error) {
	trimmed := in.Trim()
	if err := utils.ValidateStruct(&trimmed); err != nil {
		return nil, err
	}

	uploaded, err := s.media.UploadProductImage(ctx, image)
	if err != nil {
		return nil, err
	}

	product := models.NewProduct(ownerID, trimmed, uploaded)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// List returns the owner's products, newest first. Never nil.
func (s *ProductService) List(ctx context.Context, ownerID string) ([]*models.Product, error) {
	products, err := s.productRepo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = make([]*models.Product, 0)
	}
	return products, nil
}

// Get returns a product owned by the requester
func (s *ProductService) Get(ctx context.Context, id, requesterID string) (*models.Product, error) {
	return s.getOwned(ctx, id, requesterID)
}

// Update replaces the product's fields. The image changes only when a new
// one is uploaded; SKU, owner and creation time are retained.
func (s *ProductService) Update(ctx context.Context, id, requesterID string, in *models.ProductInput, image *ImageUpload) (*models.Product, error) {
	existing, err := s.getOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.media.UploadProductImage(ctx, image)
	if err != nil {
		return nil, err
	}

	updated := models.ReplaceProduct(existing, *in, uploaded)
	if err := s.productRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateQuantity sets only the quantity of a product
func (s *ProductService) UpdateQuantity(ctx context.Context, id, requesterID string, update *models.QuantityUpdate) error {
	if err := utils.ValidateStruct(update); err != nil {
		return err
	}

	if _, err := s.getOwned(ctx, id, requesterID); err != nil {
		return err
	}

	return s.productRepo.UpdateQuantity(ctx, id, string(update.Quantity))
}

// Delete removes a product owned by the requester
func (s *ProductService) Delete(ctx context.Context, id, requesterID string) error {
	if _, err := s.getOwned(ctx, id, requesterID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().
		Str("category", constants.LogCategoryProduct).
		Str("product_id", id).
		Str("user_id", requesterID).
		Msg("Product deleted")

	return nil
}

// getOwned loads a product and checks that the requester owns it.
// A foreign product is an authorization failure, not a missing one.
func (s *ProductService) getOwned(ctx context.Context, id, requesterID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return nil, utils.New(utils.ErrNotFound, http.StatusNotFound, constants.MsgProductNotFound)
		}
		return nil, err
	}

	if !product.IsOwnedBy(requesterID) {
		log.Warn().
			Str("category", constants.LogCategoryProduct).
			Str("product_id", id).
			Str("requester_id", requesterID).
			Msg("Product access denied")
		return nil, utils.NewUnauthorizedError(constants.MsgProductNotOwned)
	}

	return product, nil
}
