package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/config"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/middleware"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

const (
	corsAllowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsAllowedHeaders = "Accept, Content-Type, X-Request-ID"
	corsMaxAge         = "300"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
// - Health check, version and route listing (unprotected)
// - User endpoints: registration, login, logout, login status, password reset (public)
// - Profile and password change (session)
// - Product CRUD (session)
// - Contact support (session)
// - Uploaded images when media is stored locally
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(corsMiddleware(s.Config.CORS))

	// Base middleware
	r.Use(auth.RequestID)
	r.Use(chimiddleware.RealIP)
	if !s.Config.Logging.DisableRequestLog {
		r.Use(middleware.RequestLogger())
	}
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, constants.MsgResourceNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	sessionAuth := middleware.SessionAuth(s.authProviders.JWTService, s.services.Users)

	// Health check and version routes (unprotected)
	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, s.handleHealth)
		r.Get(constants.VersionPath, func(w http.ResponseWriter, r *http.Request) {
			utils.JSON(w, http.StatusOK, map[string]string{
				"version":     s.Config.App.Version,
				"environment": s.Config.App.Environment,
			})
		})
		r.Get(constants.RoutesListPath, s.GetAPIRoutes)
	})

	r.Route(constants.UsersBasePath, func(r chi.Router) {
		// Public user endpoints
		r.Group(func(r chi.Router) {
			r.Post("/", s.Handlers.AuthHandler.Register)
			r.Post(constants.UserLoginPath, s.Handlers.AuthHandler.Login)
			r.Get(constants.UserLogoutPath, s.Handlers.AuthHandler.Logout)
			r.Get(constants.UserLoginStatusPath, s.Handlers.AuthHandler.LoginStatus)
			r.Post(constants.UserForgotPasswordPath, s.Handlers.PasswordResetHandler.ForgotPassword)
			r.Put(constants.UserResetPasswordPath, s.Handlers.PasswordResetHandler.ResetPassword)
		})

		// Protected user endpoints
		r.Group(func(r chi.Router) {
			r.Use(sessionAuth)
			r.Use(middleware.NoStore())
			r.Get("/", s.Handlers.UserHandler.GetCurrentUser)
			r.Patch("/", s.Handlers.UserHandler.UpdateUser)
			r.Patch(constants.UserChangePasswordPath, s.Handlers.UserHandler.ChangePassword)
		})
	})

	r.Route(constants.ProductsBasePath, func(r chi.Router) {
		r.Use(sessionAuth)
		r.Post("/", s.Handlers.ProductHandler.CreateProduct)
		r.Get("/", s.Handlers.ProductHandler.ListProducts)
		r.Get(constants.ProductDetailPath, s.Handlers.ProductHandler.GetProduct)
		r.Patch(constants.ProductDetailPath, s.Handlers.ProductHandler.UpdateProduct)
		r.Patch(constants.ProductQuantityPath, s.Handlers.ProductHandler.UpdateQuantity)
		r.Delete(constants.ProductDetailPath, s.Handlers.ProductHandler.DeleteProduct)
	})

	r.With(sessionAuth).Post(constants.ContactPath, s.Handlers.ContactHandler.ContactUs)

	if isLocalMedia(&s.Config.Media) {
		fileServer := http.StripPrefix(constants.UploadsPath, http.FileServer(http.Dir(s.Config.Media.LocalDir)))
		r.Get(constants.UploadsPath+"/*", fileServer.ServeHTTP)
	}

	s.router = r
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// handleHealth reports whether the active store answers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.Db.HealthCheck(r.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		utils.Error(w, http.StatusServiceUnavailable, constants.CodeServiceUnavailable, constants.MsgServiceUnhealthy, nil)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.Config.App.Version,
	})
}

// apiRoute documents one endpoint for GetAPIRoutes.
type apiRoute struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Session     bool   `json:"session"`
	Description string `json:"description"`
}

var apiRoutes = []apiRoute{
	{http.MethodPost, constants.UsersBasePath, false, "Register a user and start a session"},
	{http.MethodPost, constants.UsersBasePath + constants.UserLoginPath, false, "Log in and start a session"},
	{http.MethodGet, constants.UsersBasePath + constants.UserLogoutPath, false, "Clear the session cookie"},
	{http.MethodGet, constants.UsersBasePath + constants.UserLoginStatusPath, false, "Report whether the session cookie is valid"},
	{http.MethodPost, constants.UsersBasePath + constants.UserForgotPasswordPath, false, "Email a password reset link"},
	{http.MethodPut, constants.UsersBasePath + constants.UserResetPasswordPath, false, "Set a new password with a reset secret"},
	{http.MethodGet, constants.UsersBasePath, true, "Current user's profile"},
	{http.MethodPatch, constants.UsersBasePath, true, "Update name, phone, bio or photo"},
	{http.MethodPatch, constants.UsersBasePath + constants.UserChangePasswordPath, true, "Change password"},
	{http.MethodPost, constants.ProductsBasePath, true, "Create a product, multipart image optional"},
	{http.MethodGet, constants.ProductsBasePath, true, "List own products, newest first"},
	{http.MethodGet, constants.ProductsBasePath + constants.ProductDetailPath, true, "Get a product"},
	{http.MethodPatch, constants.ProductsBasePath + constants.ProductDetailPath, true, "Replace a product's fields, multipart image optional"},
	{http.MethodPatch, constants.ProductsBasePath + constants.ProductQuantityPath, true, "Set a product's quantity"},
	{http.MethodDelete, constants.ProductsBasePath + constants.ProductDetailPath, true, "Delete a product"},
	{http.MethodPost, constants.ContactPath, true, "Send a message to support"},
	{http.MethodGet, constants.HealthPath, false, "Storage health"},
	{http.MethodGet, constants.VersionPath, false, "Build version"},
}

// GetAPIRoutes serves the endpoint listing.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, apiRoutes)
}

// corsMiddleware sets CORS headers for allowed origins and answers their
// preflight requests. Requests from other origins pass through untouched.
func corsMiddleware(cors config.CORSSettings) func(http.Handler) http.Handler {
	log.Info().Strs("allowed_origins", cors.AllowedOrigins).Msg("Using CORS allowed origins")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !originAllowed(cors.AllowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", strconv.FormatBool(cors.AllowCredentials))

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

func isLocalMedia(cfg *config.MediaSettings) bool {
	provider := strings.ToLower(cfg.Provider)
	return provider == constants.MediaProviderLocal || provider == ""
}
