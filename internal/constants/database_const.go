// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines the names of collections, tables and
// columns used by both storage backends. Mongo collections and Postgres tables
// share names so the two repository sets stay interchangeable.
package constants

// Collection and table names.
const (
	// TableUsers holds user accounts.
	TableUsers = "users"

	// TableProducts holds inventory products owned by users.
	TableProducts = "products"

	// TablePasswordResetTokens holds hashed password reset secrets.
	TablePasswordResetTokens = "password_reset_tokens"

	// TableMigrations records executed schema migrations (Postgres only).
	TableMigrations = "schema_migrations"
)

// Column and document field names shared by the SQL and Mongo repositories.
const (
	ColumnMongoID      = "_id"
	ColumnUserID       = "user_id"
	ColumnName         = "name"
	ColumnEmail        = "email"
	ColumnPasswordHash = "password_hash"
	ColumnSalt         = "salt"
	ColumnPhoto        = "photo"
	ColumnPhone        = "phone"
	ColumnBio          = "bio"
	ColumnCategory     = "category"
	ColumnQuantity     = "quantity"
	ColumnPrice        = "price"
	ColumnDescription  = "description"
	ColumnImage        = "image"
	ColumnTokenHash    = "token_hash"
	ColumnCreatedAt    = "created_at"
	ColumnUpdatedAt    = "updated_at"
	ColumnExpiresAt    = "expires_at"
)

// Storage drivers accepted in configuration.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Database Schema Names define the names of database schemas.
const (
	// SchemaInformation is the name of the PostgreSQL information schema.
	SchemaInformation = "information_schema"
)

// PostgreSQL connection string parameters
const (
	PostgresSSLRequire = "sslmode=require connect_timeout=15"
	PostgresSSLDisable = "sslmode=disable connect_timeout=15"
)
