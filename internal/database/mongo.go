package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yasinhessnawi1/inventory_backend/internal/config"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
)

// MongoStore wraps the MongoDB client and the application database.
type MongoStore struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongoStore wraps an already connected database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{Client: db.Client(), DB: db}
}

// ConnectMongo connects to MongoDB using the configured URI and verifies the
// connection against the primary.
func ConnectMongo(ctx context.Context, cfg *config.AppConfig) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBConnectionTimeout)
	defer cancel()

	name := cfg.Database.Name
	if name == "" {
		name = constants.DefaultDatabaseName
	}

	log.Info().
		Str("database", name).
		Msg("Connecting to MongoDB")

	opts := options.Client().ApplyURI(cfg.Database.URI)
	if cfg.Database.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.Database.MaxConns))
	}
	if cfg.Database.MinConns > 0 {
		opts.SetMinPoolSize(uint64(cfg.Database.MinConns))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Info().Msg("Successfully connected to MongoDB")

	return &MongoStore{Client: client, DB: client.Database(name)}, nil
}

// Collection returns a handle to the named collection.
func (s *MongoStore) Collection(name string) *mongo.Collection {
	return s.DB.Collection(name)
}

// EnsureIndexes creates the indexes the repositories rely on. Creating an
// existing index is a no-op.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		constants.TableUsers: {
			{
				Keys:    bson.D{{Key: constants.ColumnEmail, Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		constants.TableProducts: {
			{
				Keys: bson.D{
					{Key: constants.ColumnUserID, Value: 1},
					{Key: constants.ColumnCreatedAt, Value: -1},
				},
			},
		},
		constants.TablePasswordResetTokens: {
			{
				Keys:    bson.D{{Key: constants.ColumnUserID, Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: constants.ColumnTokenHash, Value: 1}},
			},
		},
	}

	for _, name := range []string{constants.TableUsers, constants.TableProducts, constants.TablePasswordResetTokens} {
		if _, err := s.Collection(name).Indexes().CreateMany(ctx, indexes[name]); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
		log.Debug().Str("collection", name).Msg("Indexes ensured")
	}

	return nil
}

// HealthCheck pings the database.
func (s *MongoStore) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	if err := s.DB.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	if s == nil || s.Client == nil {
		return nil
	}
	log.Info().Msg("Closing MongoDB connection")

	ctx, cancel := context.WithTimeout(context.Background(), constants.DBConnectionTimeout)
	defer cancel()
	return s.Client.Disconnect(ctx)
}
