package utils_test

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

func TestNew(t *testing.T) {
	base := errors.New("base error")
	appErr := utils.New(base, http.StatusBadRequest, "Error message")

	if appErr.Error() != "Error message" {
		t.Errorf("New().Error() = %v, want %v", appErr.Error(), "Error message")
	}
	if appErr.StatusCode != http.StatusBadRequest {
		t.Errorf("New().StatusCode = %v, want %v", appErr.StatusCode, http.StatusBadRequest)
	}
	if !errors.Is(appErr, base) {
		t.Errorf("New() should wrap %v", base)
	}
}

func TestNewWithDevInfo(t *testing.T) {
	appErr := utils.NewWithDevInfo(errors.New("x"), http.StatusInternalServerError, "msg", "stack")
	if appErr.DevInfo != "stack" {
		t.Errorf("NewWithDevInfo().DevInfo = %v, want %v", appErr.DevInfo, "stack")
	}
}

func TestNewValidationError(t *testing.T) {
	tests := []struct {
		field   string
		message string
		wantMsg string
	}{
		{"password", "must be at least 6 characters", "password: must be at least 6 characters"},
		{"", "missing fields", "missing fields"},
	}

	for _, tt := range tests {
		t.Run(tt.wantMsg, func(t *testing.T) {
			appErr := utils.NewValidationError(tt.field, tt.message)
			if appErr.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", appErr.Error(), tt.wantMsg)
			}
			if appErr.StatusCode != http.StatusBadRequest {
				t.Errorf("StatusCode = %v, want %v", appErr.StatusCode, http.StatusBadRequest)
			}
			if !utils.IsValidationError(appErr) {
				t.Error("IsValidationError() = false, want true")
			}
		})
	}
}

func TestConstructorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *utils.AppError
		wantStatus int
		sentinel   error
	}{
		{"bad request", utils.NewBadRequestError("bad"), http.StatusBadRequest, utils.ErrBadRequest},
		{"not found", utils.NewNotFoundError("Product", "42"), http.StatusNotFound, utils.ErrNotFound},
		{"unauthorized", utils.NewUnauthorizedError(""), http.StatusUnauthorized, utils.ErrUnauthorized},
		{"forbidden", utils.NewForbiddenError(""), http.StatusForbidden, utils.ErrForbidden},
		{"internal", utils.NewInternalServerError(errors.New("boom")), http.StatusInternalServerError, utils.ErrInternalServer},
		{"duplicate", utils.NewDuplicateError("User", "email", "a@b.com"), http.StatusBadRequest, utils.ErrDuplicate},
		{"credentials", utils.NewInvalidCredentialsError(), http.StatusUnauthorized, utils.ErrInvalidCredentials},
		{"expired", utils.NewExpiredTokenError(), http.StatusUnauthorized, utils.ErrExpiredToken},
		{"invalid token", utils.NewInvalidTokenError(), http.StatusUnauthorized, utils.ErrInvalidToken},
		{"upload", utils.NewUploadError(errors.New("cdn down")), http.StatusInternalServerError, utils.ErrUpload},
		{"delivery", utils.NewDeliveryError(errors.New("smtp down")), http.StatusInternalServerError, utils.ErrDelivery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %v, want %v", tt.err.StatusCode, tt.wantStatus)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			if utils.StatusCode(tt.err) != tt.wantStatus {
				t.Errorf("utils.StatusCode() = %v, want %v", utils.StatusCode(tt.err), tt.wantStatus)
			}
		})
	}
}

func TestNewNotFoundErrorMessage(t *testing.T) {
	appErr := utils.NewNotFoundError("Product", "42")
	want := "Product with identifier '42' not found"
	if appErr.Error() != want {
		t.Errorf("Error() = %v, want %v", appErr.Error(), want)
	}
}

func TestNewUploadErrorKeepsCause(t *testing.T) {
	appErr := utils.NewUploadError(errors.New("cdn down"))
	if appErr.DevInfo != "cdn down" {
		t.Errorf("DevInfo = %v, want %v", appErr.DevInfo, "cdn down")
	}
	if appErr.Message != "Image could not be uploaded" {
		t.Errorf("Message = %v", appErr.Message)
	}
}

func TestIsHelpers(t *testing.T) {
	if !utils.IsNotFoundError(utils.NewNotFoundError("User", 1)) {
		t.Error("IsNotFoundError() should match NotFound AppError")
	}
	if !utils.IsNotFoundError(utils.ErrNotFound) {
		t.Error("IsNotFoundError() should match the sentinel")
	}
	if utils.IsNotFoundError(errors.New("other")) {
		t.Error("IsNotFoundError() should not match plain errors")
	}
	if !utils.IsDuplicateError(utils.NewDuplicateError("User", "email", "x")) {
		t.Error("IsDuplicateError() should match duplicate AppError")
	}
	if utils.IsDuplicateError(utils.NewBadRequestError("x")) {
		t.Error("IsDuplicateError() should not match a plain bad request")
	}
	if !utils.IsUnauthorizedError(utils.NewInvalidCredentialsError()) {
		t.Error("IsUnauthorizedError() should match credentials errors")
	}
	if utils.StatusCode(errors.New("plain")) != http.StatusInternalServerError {
		t.Error("StatusCode() of a plain error should be 500")
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantErr    error
	}{
		{"app error passthrough", utils.NewForbiddenError("no"), http.StatusForbidden, utils.ErrForbidden},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", utils.ErrNotFound), http.StatusNotFound, utils.ErrNotFound},
		{"mongo no documents", fmt.Errorf("find: %w", mongo.ErrNoDocuments), http.StatusNotFound, utils.ErrNotFound},
		{"sql no rows", sql.ErrNoRows, http.StatusNotFound, utils.ErrNotFound},
		{
			"mongo duplicate key",
			mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}},
			http.StatusBadRequest,
			utils.ErrDuplicate,
		},
		{"pq unique violation", &pq.Error{Code: "23505", Constraint: "idx_email"}, http.StatusBadRequest, utils.ErrDuplicate},
		{"pq foreign key", &pq.Error{Code: "23503"}, http.StatusBadRequest, utils.ErrBadRequest},
		{"pq not null", &pq.Error{Code: "23502", Column: "name"}, http.StatusBadRequest, utils.ErrValidation},
		{"message duplicate", errors.New("duplicate key value"), http.StatusBadRequest, utils.ErrDuplicate},
		{"upload sentinel", fmt.Errorf("put: %w", utils.ErrUpload), http.StatusInternalServerError, utils.ErrUpload},
		{"unknown", errors.New("kaboom"), http.StatusInternalServerError, utils.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := utils.ParseError(tt.err)
			if appErr.StatusCode != tt.wantStatus {
				t.Errorf("ParseError().StatusCode = %v, want %v", appErr.StatusCode, tt.wantStatus)
			}
			if !errors.Is(appErr, tt.wantErr) {
				t.Errorf("ParseError() = %v, want wrapped %v", appErr.Err, tt.wantErr)
			}
		})
	}
}

func TestParseErrorExtractsConstraintField(t *testing.T) {
	appErr := utils.ParseError(&pq.Error{Code: "23505", Constraint: "idx_email"})
	if appErr.Field != "email" {
		t.Errorf("ParseError().Field = %v, want %v", appErr.Field, "email")
	}
}
