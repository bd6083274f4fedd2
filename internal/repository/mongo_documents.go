package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yasinhessnawi1/inventory_backend/internal/models"
)

// userDocument is the stored shape of a user in MongoDB.
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Salt         string             `bson:"salt"`
	Photo        string             `bson:"photo"`
	Phone        string             `bson:"phone"`
	Bio          string             `bson:"bio"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func newUserDocument(u *models.User) *userDocument {
	doc := &userDocument{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Salt:         u.Salt,
		Photo:        u.Photo,
		Phone:        u.Phone,
		Bio:          u.Bio,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if oid, ok := parseObjectID(u.ID); ok {
		doc.ID = oid
	}
	return doc
}

func (d *userDocument) model() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Salt:         d.Salt,
		Photo:        d.Photo,
		Phone:        d.Phone,
		Bio:          d.Bio,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// imageDocument is the stored shape of product image metadata.
type imageDocument struct {
	FileName string `bson:"file_name,omitempty"`
	FilePath string `bson:"file_path,omitempty"`
	FileType string `bson:"file_type,omitempty"`
	FileSize string `bson:"file_size,omitempty"`
}

// productDocument is the stored shape of a product in MongoDB.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	Name        string             `bson:"name"`
	SKU         string             `bson:"sku"`
	Category    string             `bson:"category"`
	Quantity    string             `bson:"quantity"`
	Price       string             `bson:"price"`
	Description string             `bson:"description"`
	Image       imageDocument      `bson:"image"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func newProductDocument(p *models.Product) *productDocument {
	doc := &productDocument{
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Description: p.Description,
		Image:       imageDocument(p.Image),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if oid, ok := parseObjectID(p.ID); ok {
		doc.ID = oid
	}
	if oid, ok := parseObjectID(p.UserID); ok {
		doc.UserID = oid
	}
	return doc
}

func (d *productDocument) model() *models.Product {
	return &models.Product{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		Name:        d.Name,
		SKU:         d.SKU,
		Category:    d.Category,
		Quantity:    d.Quantity,
		Price:       d.Price,
		Description: d.Description,
		Image:       models.ProductImage(d.Image),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// resetTokenDocument is the stored shape of a password reset token.
type resetTokenDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	TokenHash string             `bson:"token_hash"`
	CreatedAt time.Time          `bson:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
}

func (d *resetTokenDocument) model() *models.PasswordResetToken {
	return &models.PasswordResetToken{
		UserID:    d.UserID.Hex(),
		TokenHash: d.TokenHash,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
	}
}

// parseObjectID converts a hex id; malformed ids report false.
func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
