package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
)

// ProductImage describes an image stored by the media host.
type ProductImage struct {
	FileName string `json:"fileName,omitempty" db:"image_file_name"`
	FilePath string `json:"filePath,omitempty" db:"image_file_path"`
	FileType string `json:"fileType,omitempty" db:"image_file_type"`
	FileSize string `json:"fileSize,omitempty" db:"image_file_size"`
}

// IsZero reports whether no image is attached.
func (i ProductImage) IsZero() bool {
	return i.FilePath == ""
}

// Product is an inventory item owned by a single user.
// Quantity and Price are kept exactly as submitted.
type Product struct {
	ID          string       `json:"_id" db:"id"`
	UserID      string       `json:"user" db:"user_id"`
	Name        string       `json:"name" db:"name"`
	SKU         string       `json:"sku" db:"sku"`
	Category    string       `json:"category" db:"category"`
	Quantity    string       `json:"quantity" db:"quantity"`
	Price       string       `json:"price" db:"price"`
	Description string       `json:"description" db:"description"`
	Image       ProductImage `json:"image"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}

// TableName returns the database table name for the Product model.
func (p *Product) TableName() string {
	return constants.TableProducts
}

// IsOwnedBy reports whether the given user owns the product.
func (p *Product) IsOwnedBy(userID string) bool {
	return userID != "" && p.UserID == userID
}

// ProductInput holds the product fields accepted from clients, either as
// form values or as a JSON body.
type ProductInput struct {
	Name        string        `json:"name" validate:"required,notblank"`
	SKU         string        `json:"sku"`
	Category    string        `json:"category" validate:"required,notblank"`
	Quantity    NumericString `json:"quantity" validate:"required,notblank"`
	Price       NumericString `json:"price" validate:"required,notblank"`
	Description string        `json:"description" validate:"required,notblank"`
}

// Trim removes surrounding whitespace from every field.
func (in ProductInput) Trim() ProductInput {
	return ProductInput{
		Name:        strings.TrimSpace(in.Name),
		SKU:         strings.TrimSpace(in.SKU),
		Category:    strings.TrimSpace(in.Category),
		Quantity:    NumericString(strings.TrimSpace(string(in.Quantity))),
		Price:       NumericString(strings.TrimSpace(string(in.Price))),
		Description: strings.TrimSpace(in.Description),
	}
}

// NewProduct creates a product for the owner. An empty SKU gets the default.
func NewProduct(userID string, in ProductInput, image *ProductImage) *Product {
	in = in.Trim()
	sku := in.SKU
	if sku == "" {
		sku = constants.DefaultProductSKU
	}

	now := time.Now()
	p := &Product{
		UserID:      userID,
		Name:        in.Name,
		SKU:         sku,
		Category:    in.Category,
		Quantity:    string(in.Quantity),
		Price:       string(in.Price),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if image != nil {
		p.Image = *image
	}
	return p
}

// ReplaceProduct applies a full replace: name, category, quantity, price and
// description take the supplied values, so absent fields become empty.
// The image changes only when a new one is given. ID, owner, SKU and
// CreatedAt are retained. The existing product is not modified.
func ReplaceProduct(existing *Product, in ProductInput, image *ProductImage) *Product {
	in = in.Trim()
	replaced := *existing
	replaced.Name = in.Name
	replaced.Category = in.Category
	replaced.Quantity = string(in.Quantity)
	replaced.Price = string(in.Price)
	replaced.Description = in.Description
	if image != nil {
		replaced.Image = *image
	}
	replaced.UpdatedAt = time.Now()
	return &replaced
}

// QuantityUpdate is the body of the quantity endpoint.
type QuantityUpdate struct {
	Quantity NumericString `json:"quantity" validate:"required,notblank"`
}

// NumericString holds quantity and price text. In JSON it accepts either a
// string or a number; a number keeps its literal text, so 9.50 stays "9.50".
type NumericString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *NumericString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = NumericString(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: reflect.TypeOf("")}
	}
	*s = NumericString(number.String())
	return nil
}

func jsonKind(data []byte) string {
	if len(data) == 0 {
		return "value"
	}
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	}
	return "value"
}
