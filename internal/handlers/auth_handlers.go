package handlers

import (
	"net/http"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// AuthHandler handles authentication-related routes
type AuthHandler struct {
	authService AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var reg models.UserRegistration
	if err := utils.DecodeAndValidate(r, &reg); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Register the user
	user, err := h.authService.Register(r.Context(), &reg)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	auth.SetSessionCookie(w, user.Token, http.SameSiteNoneMode)

	// Return the newly created user
	utils.JSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var creds models.UserCredentials
	if err := utils.DecodeAndValidate(r, &creds); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Authenticate the user
	user, err := h.authService.Login(r.Context(), &creds)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	auth.SetSessionCookie(w, user.Token, http.SameSiteNoneMode)

	utils.JSON(w, http.StatusOK, user)
}

// Logout clears the session cookie. Tokens are not revoked server side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	utils.LogAuth(constants.LogEventLogout, "", "", true, "")

	utils.Message(w, http.StatusOK, constants.MsgLogoutSuccess)
}

// LoginStatus reports whether the request carries a valid session
func (h *AuthHandler) LoginStatus(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.SessionToken(r)
	if !ok {
		utils.JSON(w, http.StatusOK, false)
		return
	}

	utils.JSON(w, http.StatusOK, h.authService.IsSessionValid(token))
}
