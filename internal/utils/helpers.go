// Package utils provides utility functions and helpers for common operations
// used throughout the application. It includes string manipulation, data
// sanitization and formatting helpers that simplify repeated tasks.
package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
)

// fileSizeUnits are decimal (base 1000) units.
var fileSizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// FormatFileSize renders a byte count as a short human readable string using
// base 1000 units, e.g. 1500 becomes "1.5 KB".
//
// Parameters:
//   - bytes: the size to format
//   - decimals: maximum digits after the decimal point; non-positive means 2
//
// Returns:
//   - the formatted size with trailing zeros removed
func FormatFileSize(bytes int64, decimals int) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	if decimals <= 0 {
		decimals = 2
	}

	index := int(math.Floor(math.Log(float64(bytes)) / math.Log(1000)))
	if index >= len(fileSizeUnits) {
		index = len(fileSizeUnits) - 1
	}

	value := float64(bytes) / math.Pow(1000, float64(index))
	scale := math.Pow(10, float64(decimals))
	value = math.Round(value*scale) / scale

	return strconv.FormatFloat(value, 'f', -1, 64) + " " + fileSizeUnits[index]
}

// NormalizeEmail lower-cases and trims an email address so lookups and the
// unique index agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TruncateString truncates a string to the given maximum length and adds ellipsis if necessary.
// This is useful for display or logging purposes where long strings need to be shortened.
//
// Parameters:
//   - s: the string to truncate
//   - maxLen: the maximum length of the resulting string (including ellipsis if added)
//
// Returns:
//   - the truncated string, with ellipsis appended if truncation occurred
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// MaskEmail masks the user part of an email address, showing only the first and last character.
// This is useful for privacy when logging email addresses.
//
// For example: "user@example.com" becomes "u**r@example.com"
//
// Parameters:
//   - email: the email address to mask
//
// Returns:
//   - the masked email address, or the original string if it's not a valid email format
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	user := parts[0]
	domain := parts[1]

	if len(user) <= 2 {
		return email
	}

	return string(user[0]) + strings.Repeat("*", len(user)-2) + string(user[len(user)-1]) + "@" + domain
}

// SanitizeKeys removes potentially sensitive fields from a map.
// It recursively traverses through maps and slices of maps to sanitize nested structures.
//
// Parameters:
//   - data: the map to sanitize
//
// Returns:
//   - a new map with sensitive values redacted
func SanitizeKeys(data map[string]interface{}) map[string]interface{} {
	sensitiveKeys := map[string]bool{
		constants.ColumnPasswordHash: true,
		constants.ColumnSalt:         true,
		constants.ColumnTokenHash:    true,
		"password":                   true,
		"oldpassword":                true,
		"api_key":                    true,
		"token":                      true,
		"resettoken":                 true,
		"secret":                     true,
	}

	result := make(map[string]interface{})

	for k, v := range data {
		if sensitiveKeys[strings.ToLower(k)] {
			result[k] = constants.LogRedactedValue
			continue
		}

		if nestedMap, ok := v.(map[string]interface{}); ok {
			result[k] = SanitizeKeys(nestedMap)
			continue
		}

		if nestedMapSlice, ok := v.([]map[string]interface{}); ok {
			sanitizedSlice := make([]map[string]interface{}, len(nestedMapSlice))
			for i, nestedMap := range nestedMapSlice {
				sanitizedSlice[i] = SanitizeKeys(nestedMap)
			}
			result[k] = sanitizedSlice
			continue
		}

		result[k] = v
	}

	return result
}
