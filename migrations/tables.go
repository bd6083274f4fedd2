package migrations

import "github.com/yasinhessnawi1/inventory_backend/internal/constants"

var usersTable = Migration{
	Name:        "create_users_table",
	Description: "Creates the users table",
	TableName:   constants.TableUsers,
	SQL: `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			salt VARCHAR(255) NOT NULL,
			photo TEXT NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL DEFAULT '',
			bio VARCHAR(250) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT idx_users_email UNIQUE (email)
		)
	`,
}

// Image metadata is flattened into image_file_* columns; an empty path
// means no image.
var productsTable = Migration{
	Name:        "create_products_table",
	Description: "Creates the products table",
	TableName:   constants.TableProducts,
	SQL: `
		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			sku VARCHAR(255) NOT NULL DEFAULT 'SKU',
			category VARCHAR(255) NOT NULL,
			quantity VARCHAR(50) NOT NULL,
			price VARCHAR(50) NOT NULL,
			description TEXT NOT NULL,
			image_file_name VARCHAR(255) NOT NULL DEFAULT '',
			image_file_path TEXT NOT NULL DEFAULT '',
			image_file_type VARCHAR(100) NOT NULL DEFAULT '',
			image_file_size VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_products_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_products_user_created ON products(user_id, created_at DESC);
	`,
}

// A user holds at most one live token.
var passwordResetTokensTable = Migration{
	Name:        "create_password_reset_tokens_table",
	Description: "Creates the password_reset_tokens table",
	TableName:   constants.TablePasswordResetTokens,
	SQL: `
		CREATE TABLE IF NOT EXISTS password_reset_tokens (
			token_hash VARCHAR(64) PRIMARY KEY,
			user_id UUID NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_reset_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			CONSTRAINT idx_reset_user UNIQUE (user_id)
		);
		CREATE INDEX IF NOT EXISTS idx_reset_expires_at ON password_reset_tokens(expires_at);
	`,
}
