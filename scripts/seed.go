// Package scripts provides utility scripts for database management.
//
// The seeder populates a development database with a demo account and a few
// sample products. It works through the repositories, so it runs against
// either storage backend, and it is idempotent: an existing demo account
// means the database was already seeded.
package scripts

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/repository"
)

// Demo account credentials.
const (
	DemoUserName     = "Demo User"
	DemoUserEmail    = "demo@inventory.local"
	DemoUserPassword = "demo-password"
)

// Seeder handles database seeding.
type Seeder struct {
	users       repository.UserRepository
	products    repository.ProductRepository
	passwordCfg *auth.PasswordConfig
}

// NewSeeder creates a new seeder.
//
// Parameters:
//   - users: repository the demo account is created in
//   - products: repository the sample products are created in
//   - passwordCfg: hashing parameters for the demo password
func NewSeeder(users repository.UserRepository, products repository.ProductRepository, passwordCfg *auth.PasswordConfig) *Seeder {
	return &Seeder{
		users:       users,
		products:    products,
		passwordCfg: passwordCfg,
	}
}

// SeedDatabase creates the demo account and its sample products unless the
// account already exists.
func (s *Seeder) SeedDatabase(ctx context.Context) error {
	log.Info().Msg("Seeding database")
	startTime := time.Now()

	exists, err := s.users.ExistsByEmail(ctx, DemoUserEmail)
	if err != nil {
		return fmt.Errorf("failed to check demo user: %w", err)
	}
	if exists {
		log.Debug().Str("email", DemoUserEmail).Msg("Seed already executed")
		return nil
	}

	user, err := s.seedDemoUser(ctx)
	if err != nil {
		return err
	}

	if err := s.seedProducts(ctx, user.ID); err != nil {
		return err
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Database seeding completed")

	return nil
}

func (s *Seeder) seedDemoUser(ctx context.Context) (*models.User, error) {
	user := models.NewUser(DemoUserName, DemoUserEmail)

	hash, salt, err := auth.HashNewPassword(DemoUserPassword, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	user.PasswordHash = hash
	user.Salt = salt

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}
	return user, nil
}

func (s *Seeder) seedProducts(ctx context.Context, userID string) error {
	for _, in := range sampleProducts() {
		product := models.NewProduct(userID, in, nil)
		if err := s.products.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to create sample product %q: %w", in.Name, err)
		}
	}
	return nil
}

func sampleProducts() []models.ProductInput {
	return []models.ProductInput{
		{Name: "Desk Lamp", SKU: "LAMP-001", Category: "Lighting", Quantity: "12", Price: "24.99", Description: "Adjustable LED desk lamp"},
		{Name: "Office Chair", SKU: "CHAIR-002", Category: "Furniture", Quantity: "4", Price: "149.00", Description: "Ergonomic mesh office chair"},
		{Name: "Notebook", Category: "Stationery", Quantity: "120", Price: "3.50", Description: "A5 ruled notebook"},
	}
}
