package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// PasswordResetHandler handles the forgot-password and reset-password routes.
type PasswordResetHandler struct {
	resetService PasswordResetServiceInterface
}

// NewPasswordResetHandler creates a new PasswordResetHandler.
func NewPasswordResetHandler(resetService PasswordResetServiceInterface) *PasswordResetHandler {
	return &PasswordResetHandler{
		resetService: resetService,
	}
}

// ForgotPassword emails a reset link. Unknown addresses are reported as 404.
func (h *PasswordResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.resetService.RequestReset(r.Context(), &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, http.StatusOK, constants.MsgResetEmailSent)
}

// ResetPassword sets a new password using the secret from the reset link.
func (h *PasswordResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	resetToken := chi.URLParam(r, constants.ParamResetToken)
	if resetToken == "" {
		utils.Unauthorized(w, constants.MsgInvalidResetToken)
		return
	}

	var req models.ResetPasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.resetService.ResetPassword(r.Context(), resetToken, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, http.StatusOK, constants.MsgPasswordResetDone)
}
