package handlers

import (
	"net/http"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// UserHandler handles user-related routes
type UserHandler struct {
	userService UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetCurrentUser returns the current user's profile
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgNotAuthorized)
		return
	}

	user, err := h.userService.GetCurrentUser(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, user)
}

// UpdateUser handles updating the current user's profile
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgNotAuthorized)
		return
	}

	// Decode the request body; field validation happens in the service
	var update models.ProfileUpdate
	if err := utils.DecodeJSON(r, &update); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, &update)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, user)
}

// ChangePassword handles changing the current user's password.
// Success is answered with a plain text body.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgNotAuthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.userService.ChangePassword(r.Context(), userID, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Text(w, constants.StatusOK, constants.MsgPasswordChanged)
}

// ContactHandler handles messages to the support mailbox
type ContactHandler struct {
	contactService ContactServiceInterface
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService ContactServiceInterface) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// ContactUs sends the session user's message to support with reply-to set
// to the user's address.
func (h *ContactHandler) ContactUs(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgNotAuthorized)
		return
	}

	var req models.ContactRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.contactService.SendContactEmail(r.Context(), user.Email, req.Subject, req.Message); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, constants.StatusOK, constants.MsgContactEmailSent)
}
