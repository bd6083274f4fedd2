package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// MockPasswordResetService records calls and returns configured errors
type MockPasswordResetService struct {
	RequestResetFunc  func(ctx context.Context, req *models.ForgotPasswordRequest) error
	ResetPasswordFunc func(ctx context.Context, rawToken string, req *models.ResetPasswordRequest) error
}

func (m *MockPasswordResetService) RequestReset(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if m.RequestResetFunc != nil {
		return m.RequestResetFunc(ctx, req)
	}
	return nil
}

func (m *MockPasswordResetService) ResetPassword(ctx context.Context, rawToken string, req *models.ResetPasswordRequest) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, rawToken, req)
	}
	return nil
}

// resetRouter mounts the handler the way the server does so URL params resolve
func resetRouter(handler *PasswordResetHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/users/forgotpassword", handler.ForgotPassword)
	r.Put("/api/users/resetpassword/{resetToken}", handler.ResetPassword)
	return r
}

func TestForgotPassword(t *testing.T) {
	testCases := []struct {
		name           string
		body           map[string]string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Email Sent",
			body:           map[string]string{"email": "jane@example.com"},
			expectedStatus: http.StatusOK,
			expectedBody:   constants.MsgResetEmailSent,
		},
		{
			name:           "Invalid Email",
			body:           map[string]string{"email": "nope"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown Email",
			body:           map[string]string{"email": "nobody@example.com"},
			serviceErr:     utils.NewNotFoundError("User", "n***@example.com"),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Delivery Failure",
			body:           map[string]string{"email": "jane@example.com"},
			serviceErr:     utils.NewDeliveryError(errors.New("provider down")),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   constants.MsgEmailNotSent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var received *models.ForgotPasswordRequest
			svc := &MockPasswordResetService{
				RequestResetFunc: func(ctx context.Context, req *models.ForgotPasswordRequest) error {
					received = req
					return tc.serviceErr
				},
			}

			rec := httptest.NewRecorder()
			resetRouter(NewPasswordResetHandler(svc)).ServeHTTP(rec, jsonRequest(t, "POST", "/api/users/forgotpassword", tc.body))

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tc.expectedBody)
			}
			if tc.expectedStatus != http.StatusBadRequest {
				assert.NotNil(t, received)
				assert.Equal(t, tc.body["email"], received.Email)
			}
		})
	}
}

func TestResetPassword(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotToken, gotPassword string
		svc := &MockPasswordResetService{
			ResetPasswordFunc: func(ctx context.Context, rawToken string, req *models.ResetPasswordRequest) error {
				gotToken, gotPassword = rawToken, req.Password
				return nil
			},
		}

		rec := httptest.NewRecorder()
		req := jsonRequest(t, "PUT", "/api/users/resetpassword/abc123user-1", map[string]string{"password": "brand-new"})
		resetRouter(NewPasswordResetHandler(svc)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), constants.MsgPasswordResetDone)
		assert.Equal(t, "abc123user-1", gotToken)
		assert.Equal(t, "brand-new", gotPassword)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		svc := &MockPasswordResetService{
			ResetPasswordFunc: func(ctx context.Context, rawToken string, req *models.ResetPasswordRequest) error {
				return utils.NewInvalidTokenError()
			},
		}

		rec := httptest.NewRecorder()
		req := jsonRequest(t, "PUT", "/api/users/resetpassword/expired", map[string]string{"password": "brand-new"})
		resetRouter(NewPasswordResetHandler(svc)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), constants.MsgInvalidResetToken)
	})

	t.Run("Short Password", func(t *testing.T) {
		called := false
		svc := &MockPasswordResetService{
			ResetPasswordFunc: func(ctx context.Context, rawToken string, req *models.ResetPasswordRequest) error {
				called = true
				return nil
			},
		}

		rec := httptest.NewRecorder()
		req := jsonRequest(t, "PUT", "/api/users/resetpassword/abc", map[string]string{"password": "123"})
		resetRouter(NewPasswordResetHandler(svc)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, called)
	})
}
