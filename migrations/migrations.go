// Package migrations creates the Postgres schema for users, products and
// password reset tokens. Each migration runs at most once and is recorded in
// schema_migrations. The Mongo store has no migrations, only indexes
// (see database.MongoStore.EnsureIndexes).
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/database"
)

// Migration creates one table together with its indexes.
type Migration struct {
	Name        string
	Description string
	// TableName is checked before running, so a table created outside the
	// migrator is recorded instead of created again.
	TableName string
	SQL       string
}

// Migrator applies the schema migrations in order.
type Migrator struct {
	db *database.Pool
}

// NewMigrator creates a migrator on the given pool.
func NewMigrator(db *database.Pool) *Migrator {
	return &Migrator{db: db}
}

// RunMigrations brings the schema up to date. Per migration:
//   - table present and recorded: nothing to do
//   - table present, not recorded: record it
//   - table missing: run it, even if it was recorded before
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Info().Msg("Running database migrations")
	startTime := time.Now()

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	executed, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	migrationsRun := 0
	for _, migration := range GetMigrations() {
		exists, err := m.tableExists(ctx, migration.TableName)
		if err != nil {
			return fmt.Errorf("failed to check if table %s exists: %w", migration.TableName, err)
		}

		switch {
		case exists && executed[migration.Name]:
			continue
		case exists:
			log.Info().
				Str("migration", migration.Name).
				Str("table", migration.TableName).
				Msg("Table already exists, recording migration as completed")

			if err := m.recordMigration(ctx, m.db, migration); err != nil {
				return err
			}
		default:
			if executed[migration.Name] {
				log.Warn().
					Str("migration", migration.Name).
					Str("table", migration.TableName).
					Msg("Recorded table is missing, running migration again")
			}

			if err := m.runMigration(ctx, migration); err != nil {
				return err
			}
			migrationsRun++
		}
	}

	log.Info().
		Int("migrations_run", migrationsRun).
		Dur("duration", time.Since(startTime)).
		Msg("Database migrations completed")

	return nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name VARCHAR(255) PRIMARY KEY,
			description TEXT,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, constants.TableMigrations)
	_, err := m.db.ExecContext(ctx, query)
	return err
}

func (m *Migrator) getExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	query := fmt.Sprintf(`SELECT name FROM %s`, constants.TableMigrations)
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	executed := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		executed[name] = true
	}

	return executed, rows.Err()
}

// runMigration creates the table and records the migration in one transaction.
func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	log.Info().
		Str("migration", migration.Name).
		Str("table", migration.TableName).
		Msg("Running migration")

	return m.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
		return m.recordMigration(ctx, tx, migration)
	})
}

// execer is satisfied by both the pool and a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// recordMigration is idempotent, so re-running a recorded migration is safe.
func (m *Migrator) recordMigration(ctx context.Context, db execer, migration Migration) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		constants.TableMigrations,
	)
	if _, err := db.ExecContext(ctx, query, migration.Name, migration.Description); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
	}
	return nil
}

func (m *Migrator) tableExists(ctx context.Context, tableName string) (bool, error) {
	query := fmt.Sprintf(`
        SELECT EXISTS(SELECT 1
        FROM %s.tables
        WHERE table_schema = current_schema()
        AND table_name = $1)
    `, constants.SchemaInformation)
	var exists bool
	err := m.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	return exists, err
}

// GetMigrations returns the migrations in execution order. Products and
// reset tokens reference users, so users comes first.
func GetMigrations() []Migration {
	return []Migration{
		usersTable,
		productsTable,
		passwordResetTokensTable,
	}
}
