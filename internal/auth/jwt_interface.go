package auth

import (
	"github.com/yasinhessnawi1/inventory_backend/internal/config"
)

// TokenValidator defines the interface for session token validation
type TokenValidator interface {
	// ValidateToken validates a session token and returns its claims if valid
	ValidateToken(tokenString string) (*SessionClaims, error)

	// GetConfig returns the JWT settings configuration
	GetConfig() *config.JWTSettings
}

// TokenIssuer creates session tokens.
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

// TokenService both issues and validates session tokens.
type TokenService interface {
	TokenValidator
	TokenIssuer
}
