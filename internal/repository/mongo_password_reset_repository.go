package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// MongoPasswordResetRepository is a MongoDB implementation of PasswordResetRepository.
type MongoPasswordResetRepository struct {
	collection *mongo.Collection
}

// NewMongoPasswordResetRepository creates a PasswordResetRepository backed by
// the password_reset_tokens collection.
func NewMongoPasswordResetRepository(db *mongo.Database) PasswordResetRepository {
	return &MongoPasswordResetRepository{collection: db.Collection(constants.TablePasswordResetTokens)}
}

// Create stores a new token document.
func (r *MongoPasswordResetRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	userID, ok := parseObjectID(token.UserID)
	if !ok {
		return utils.NewNotFoundError("User", token.UserID)
	}

	startTime := time.Now()
	_, err := r.collection.InsertOne(ctx, &resetTokenDocument{
		UserID:    userID,
		TokenHash: token.TokenHash,
		CreatedAt: token.CreatedAt,
		ExpiresAt: token.ExpiresAt,
	})

	utils.LogDBQuery("password_reset_tokens.insertOne", []interface{}{token.UserID}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to create password reset token: %w", err)
	}
	return nil
}

// GetValidByHash retrieves an unexpired token document by its hash.
func (r *MongoPasswordResetRepository) GetValidByHash(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordResetToken, error) {
	startTime := time.Now()

	filter := bson.M{
		constants.ColumnTokenHash: tokenHash,
		constants.ColumnExpiresAt: bson.M{"$gt": now},
	}

	var doc resetTokenDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)

	utils.LogDBQuery("password_reset_tokens.findOne", nil, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to query password reset token: %w", err)
	}

	return doc.model(), nil
}

// DeleteByUserID removes every token of the user.
func (r *MongoPasswordResetRepository) DeleteByUserID(ctx context.Context, userID string) error {
	oid, ok := parseObjectID(userID)
	if !ok {
		return nil
	}

	startTime := time.Now()
	_, err := r.collection.DeleteMany(ctx, bson.M{constants.ColumnUserID: oid})

	utils.LogDBQuery("password_reset_tokens.deleteMany", []interface{}{userID}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete password reset tokens for user %s: %w", userID, err)
	}
	return nil
}

// DeleteExpired removes tokens that expired at or before now.
func (r *MongoPasswordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	startTime := time.Now()
	result, err := r.collection.DeleteMany(ctx, bson.M{constants.ColumnExpiresAt: bson.M{"$lte": now}})

	utils.LogDBQuery("password_reset_tokens.deleteMany", []interface{}{now}, time.Since(startTime), err)

	if err != nil {
		return 0, fmt.Errorf("failed to delete expired password reset tokens: %w", err)
	}

	if result.DeletedCount > 0 {
		log.Info().Int64("count", result.DeletedCount).Msg("Expired password reset tokens deleted")
	}
	return result.DeletedCount, nil
}
