package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
)

// GenerateResetToken creates the raw secret emailed to a user who forgot
// their password: 32 random bytes in hex followed by the user id.
// It returns the raw secret and the hash to persist.
func GenerateResetToken(userID string) (string, string, error) {
	b, err := GenerateRandomBytes(constants.ResetTokenRandomBytes)
	if err != nil {
		return "", "", err
	}

	raw := hex.EncodeToString(b) + userID
	return raw, HashResetToken(raw), nil
}

// HashResetToken returns the sha256 hex digest of a raw reset secret.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
