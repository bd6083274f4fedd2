package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a ProductRepository backed by the products collection.
func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &MongoProductRepository{collection: db.Collection(constants.TableProducts)}
}

// Create inserts a new product document
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	startTime := time.Now()

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = product.CreatedAt
	}

	doc := newProductDocument(product)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, doc)

	utils.LogDBQuery("products.insertOne", []interface{}{product.UserID, product.Name}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	product.ID = doc.ID.Hex()

	log.Info().
		Str("product_id", product.ID).
		Str("user_id", product.UserID).
		Msg("Product created")

	return nil
}

// GetByID retrieves a product by ObjectID hex
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, utils.NewNotFoundError("Product", id)
	}

	startTime := time.Now()

	var doc productDocument
	err := r.collection.FindOne(ctx, bson.M{constants.ColumnMongoID: oid}).Decode(&doc)

	utils.LogDBQuery("products.findOne", []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("Product", id)
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}

	return doc.model(), nil
}

// ListByUser retrieves all products of a user, newest first
func (r *MongoProductRepository) ListByUser(ctx context.Context, userID string) ([]*models.Product, error) {
	products := make([]*models.Product, 0)

	oid, ok := parseObjectID(userID)
	if !ok {
		return products, nil
	}

	startTime := time.Now()

	opts := options.Find().SetSort(bson.D{{Key: constants.ColumnCreatedAt, Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{constants.ColumnUserID: oid}, opts)

	utils.LogDBQuery("products.find", []interface{}{userID}, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer func() {
		if closeErr := cursor.Close(ctx); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close cursor")
		}
	}()

	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, doc.model())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Update writes the product's mutable fields
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = time.Now()
	}

	return r.updateByID(ctx, product.ID, bson.M{
		constants.ColumnName:        product.Name,
		constants.ColumnCategory:    product.Category,
		constants.ColumnQuantity:    product.Quantity,
		constants.ColumnPrice:       product.Price,
		constants.ColumnDescription: product.Description,
		constants.ColumnImage:       imageDocument(product.Image),
		constants.ColumnUpdatedAt:   product.UpdatedAt,
	}, "Product updated")
}

// UpdateQuantity sets the quantity of a product
func (r *MongoProductRepository) UpdateQuantity(ctx context.Context, id, quantity string) error {
	return r.updateByID(ctx, id, bson.M{
		constants.ColumnQuantity:  quantity,
		constants.ColumnUpdatedAt: time.Now(),
	}, "Product quantity updated")
}

func (r *MongoProductRepository) updateByID(ctx context.Context, id string, set bson.M, msg string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return utils.NewNotFoundError("Product", id)
	}

	startTime := time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{constants.ColumnMongoID: oid}, bson.M{"$set": set})

	utils.LogDBQuery("products.updateOne", []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("Product", id)
	}

	log.Info().
		Str("product_id", id).
		Msg(msg)

	return nil
}

// Delete removes a product document
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return utils.NewNotFoundError("Product", id)
	}

	startTime := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.M{constants.ColumnMongoID: oid})

	utils.LogDBQuery("products.deleteOne", []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewNotFoundError("Product", id)
	}

	log.Info().
		Str("product_id", id).
		Msg("Product deleted")

	return nil
}
