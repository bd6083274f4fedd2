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

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// MongoUserRepository is a MongoDB implementation of UserRepository
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a UserRepository backed by the users collection.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{collection: db.Collection(constants.TableUsers)}
}

// Create inserts a new user document
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := newUserDocument(user)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, doc)

	utils.LogDBQuery("users.insertOne", []interface{}{utils.MaskEmail(user.Email)}, time.Since(startTime), err)

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewDuplicateError("User", constants.ColumnEmail, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = doc.ID.Hex()

	log.Info().
		Str("user_id", user.ID).
		Str("email", utils.MaskEmail(user.Email)).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ObjectID hex
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, utils.NewNotFoundError("User", id)
	}

	user, err := r.findOne(ctx, bson.M{constants.ColumnMongoID: oid})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NewNotFoundError("User", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = utils.NormalizeEmail(email)

	user, err := r.findOne(ctx, bson.M{constants.ColumnEmail: email})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NewNotFoundError("User", fmt.Sprintf("email=%s", utils.MaskEmail(email)))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	startTime := time.Now()

	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)

	utils.LogDBQuery("users.findOne", nil, time.Since(startTime), err)

	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

// Update writes the profile fields of a user
func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) error {
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	return r.updateByID(ctx, user.ID, bson.M{
		constants.ColumnName:      user.Name,
		constants.ColumnPhone:     user.Phone,
		constants.ColumnBio:       user.Bio,
		constants.ColumnPhoto:     user.Photo,
		constants.ColumnUpdatedAt: user.UpdatedAt,
	}, "User updated")
}

// ChangePassword replaces the stored credentials of a user
func (r *MongoUserRepository) ChangePassword(ctx context.Context, id string, passwordHash, salt string) error {
	return r.updateByID(ctx, id, bson.M{
		constants.ColumnPasswordHash: passwordHash,
		constants.ColumnSalt:         salt,
		constants.ColumnUpdatedAt:    time.Now(),
	}, "User password changed")
}

func (r *MongoUserRepository) updateByID(ctx context.Context, id string, set bson.M, msg string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return utils.NewNotFoundError("User", id)
	}

	startTime := time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{constants.ColumnMongoID: oid}, bson.M{"$set": set})

	utils.LogDBQuery("users.updateOne", []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("User", id)
	}

	log.Info().
		Str("user_id", id).
		Msg(msg)

	return nil
}

// ExistsByEmail checks if a user with the given email exists
func (r *MongoUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	startTime := time.Now()

	count, err := r.collection.CountDocuments(ctx, bson.M{constants.ColumnEmail: utils.NormalizeEmail(email)})

	utils.LogDBQuery("users.countDocuments", []interface{}{utils.MaskEmail(email)}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check if email exists: %w", err)
	}
	return count > 0, nil
}
