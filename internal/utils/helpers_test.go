package utils_test

import (
	"reflect"
	"testing"

	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		decimals int
		want     string
	}{
		{name: "Zero", bytes: 0, decimals: 2, want: "0 Bytes"},
		{name: "Bytes", bytes: 999, decimals: 2, want: "999 Bytes"},
		{name: "Exact kilobyte", bytes: 1000, decimals: 2, want: "1 KB"},
		{name: "Fractional kilobyte", bytes: 1500, decimals: 2, want: "1.5 KB"},
		{name: "Base 1000 not 1024", bytes: 1024, decimals: 2, want: "1.02 KB"},
		{name: "Megabytes", bytes: 1234567, decimals: 2, want: "1.23 MB"},
		{name: "Default decimals", bytes: 1234567, decimals: 0, want: "1.23 MB"},
		{name: "One decimal", bytes: 1234567, decimals: 1, want: "1.2 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.FormatFileSize(tt.bytes, tt.decimals); got != tt.want {
				t.Errorf("FormatFileSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"  User@Example.COM ", "user@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := utils.NormalizeEmail(tt.email); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{
			name:   "No truncation needed",
			s:      "Hello",
			maxLen: 10,
			want:   "Hello",
		},
		{
			name:   "Truncation needed",
			s:      "Hello, world!",
			maxLen: 8,
			want:   "Hello...",
		},
		{
			name:   "Exact length",
			s:      "Hello",
			maxLen: 5,
			want:   "Hello",
		},
		{
			name:   "Empty string",
			s:      "",
			maxLen: 5,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.TruncateString(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{
			name:  "Regular email",
			email: "user@example.com",
			want:  "u**r@example.com",
		},
		{
			name:  "Short username",
			email: "ab@example.com",
			want:  "ab@example.com", // Too short to mask
		},
		{
			name:  "One character username",
			email: "a@example.com",
			want:  "a@example.com", // Too short to mask
		},
		{
			name:  "Invalid email format",
			email: "invalid-email",
			want:  "invalid-email", // Invalid format, return as is
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.MaskEmail(tt.email); got != tt.want {
				t.Errorf("MaskEmail() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSanitizeKeys(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
		want map[string]interface{}
	}{
		{
			name: "Contains sensitive keys",
			data: map[string]interface{}{
				"user":          "John",
				"password":      "secret123",
				"api_key":       "abcdef",
				"email":         "john@example.com",
				"password_hash": "hashedpassword",
				"resetToken":    "abc123",
			},
			want: map[string]interface{}{
				"user":          "John",
				"password":      "[REDACTED]",
				"api_key":       "[REDACTED]",
				"email":         "john@example.com",
				"password_hash": "[REDACTED]",
				"resetToken":    "[REDACTED]",
			},
		},
		{
			name: "No sensitive keys",
			data: map[string]interface{}{
				"user":  "John",
				"email": "john@example.com",
			},
			want: map[string]interface{}{
				"user":  "John",
				"email": "john@example.com",
			},
		},
		{
			name: "Contains nested map",
			data: map[string]interface{}{
				"user": "John",
				"credentials": map[string]interface{}{
					"password": "secret123",
					"token":    "abcdef",
				},
			},
			want: map[string]interface{}{
				"user": "John",
				"credentials": map[string]interface{}{
					"password": "[REDACTED]",
					"token":    "[REDACTED]",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := utils.SanitizeKeys(tt.data)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SanitizeKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainsString(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		str   string
		want  bool
	}{
		{
			name:  "String is in slice",
			slice: []string{"a", "b", "c"},
			str:   "b",
			want:  true,
		},
		{
			name:  "String is not in slice",
			slice: []string{"a", "b", "c"},
			str:   "d",
			want:  false,
		},
		{
			name:  "Empty slice",
			slice: []string{},
			str:   "a",
			want:  false,
		},
		{
			name:  "Empty string",
			slice: []string{"a", "b", "c"},
			str:   "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.ContainsString(tt.slice, tt.str); got != tt.want {
				t.Errorf("ContainsString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoveString(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		str   string
		want  []string
	}{
		{
			name:  "Remove existing string",
			slice: []string{"a", "b", "c"},
			str:   "b",
			want:  []string{"a", "c"},
		},
		{
			name:  "Remove non-existent string",
			slice: []string{"a", "b", "c"},
			str:   "d",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "Remove multiple occurrences",
			slice: []string{"a", "b", "a", "c"},
			str:   "a",
			want:  []string{"b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := utils.RemoveString(tt.slice, tt.str)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RemoveString() = %v, want %v", got, tt.want)
			}
		})
	}
}
