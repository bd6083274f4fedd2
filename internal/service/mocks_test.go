package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/config"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/repository"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// testPasswordConfig uses minimal Argon2 settings for faster tests
var testPasswordConfig = &auth.PasswordConfig{
	Memory:      16 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(&config.JWTSettings{
		Secret: "test-secret-that-is-long-enough-for-hs256",
		Expiry: time.Hour,
		Issuer: "test-issuer",
	})
}

// MockUserRepository is an in-memory UserRepository
type MockUserRepository struct {
	mu      sync.Mutex
	users   map[string]*models.User
	byEmail map[string]*models.User
	nextID  int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
		nextID:  1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[user.Email]; ok {
		return utils.NewDuplicateError("User", "email", user.Email)
	}

	user.ID = fmt.Sprintf("user-%d", m.nextID)
	m.nextID++

	stored := *user
	m.users[user.ID] = &stored
	m.byEmail[user.Email] = &stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, utils.NewNotFoundError("User", id)
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byEmail[utils.NormalizeEmail(email)]
	if !ok {
		return nil, utils.NewNotFoundError("User", email)
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[user.ID]
	if !ok {
		return utils.NewNotFoundError("User", user.ID)
	}
	stored.Name = user.Name
	stored.Phone = user.Phone
	stored.Bio = user.Bio
	stored.Photo = user.Photo
	stored.UpdatedAt = user.UpdatedAt
	return nil
}

func (m *MockUserRepository) ChangePassword(ctx context.Context, id string, passwordHash, salt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[id]
	if !ok {
		return utils.NewNotFoundError("User", id)
	}
	stored.PasswordHash = passwordHash
	stored.Salt = salt
	return nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.byEmail[utils.NormalizeEmail(email)]
	return ok, nil
}

// MockProductRepository is an in-memory ProductRepository
type MockProductRepository struct {
	mu       sync.Mutex
	products map[string]*models.Product
	nextID   int
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[string]*models.Product), nextID: 1}
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	product.ID = fmt.Sprintf("product-%d", m.nextID)
	m.nextID++
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.products[id]
	if !ok {
		return nil, utils.NewNotFoundError("Product", id)
	}
	copied := *product
	return &copied, nil
}

func (m *MockProductRepository) ListByUser(ctx context.Context, userID string) ([]*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	products := make([]*models.Product, 0)
	for _, p := range m.products {
		if p.UserID == userID {
			copied := *p
			products = append(products, &copied)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[product.ID]; !ok {
		return utils.NewNotFoundError("Product", product.ID)
	}
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *MockProductRepository) UpdateQuantity(ctx context.Context, id, quantity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.products[id]
	if !ok {
		return utils.NewNotFoundError("Product", id)
	}
	stored.Quantity = quantity
	return nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return utils.NewNotFoundError("Product", id)
	}
	delete(m.products, id)
	return nil
}

// MockPasswordResetRepository is an in-memory PasswordResetRepository
type MockPasswordResetRepository struct {
	mu     sync.Mutex
	tokens []*models.PasswordResetToken
}

func NewMockPasswordResetRepository() *MockPasswordResetRepository {
	return &MockPasswordResetRepository{}
}

func (m *MockPasswordResetRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tokens {
		if t.UserID == token.UserID {
			return errors.New("duplicate key: user_id")
		}
	}
	copied := *token
	m.tokens = append(m.tokens, &copied)
	return nil
}

func (m *MockPasswordResetRepository) GetValidByHash(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tokens {
		if t.TokenHash == tokenHash && t.ExpiresAt.After(now) {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrTokenNotFound
}

func (m *MockPasswordResetRepository) DeleteByUserID(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.tokens[:0]
	for _, t := range m.tokens {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	m.tokens = kept
	return nil
}

func (m *MockPasswordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	kept := m.tokens[:0]
	for _, t := range m.tokens {
		if t.ExpiresAt.After(now) {
			kept = append(kept, t)
		} else {
			deleted++
		}
	}
	m.tokens = kept
	return deleted, nil
}

func (m *MockPasswordResetRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

// MockMailer records sent messages and can be told to fail
type MockMailer struct {
	mu   sync.Mutex
	sent []*Email
	err  error
}

func (m *MockMailer) Send(ctx context.Context, email *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *MockMailer) last() *Email {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		return nil
	}
	return m.sent[len(m.sent)-1]
}

// MockMediaStore returns a fixed URL or an error
type MockMediaStore struct {
	url    string
	err    error
	stored int
}

func (m *MockMediaStore) Store(ctx context.Context, upload *ImageUpload) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.stored++
	return m.url, nil
}

var (
	_ repository.UserRepository          = (*MockUserRepository)(nil)
	_ repository.ProductRepository       = (*MockProductRepository)(nil)
	_ repository.PasswordResetRepository = (*MockPasswordResetRepository)(nil)
	_ Mailer                             = (*MockMailer)(nil)
	_ MediaStore                         = (*MockMediaStore)(nil)
)
