package constants

// Base Routes
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"

	// RoutesListPath lists the registered routes.
	RoutesListPath = "/api/routes"
)

// User Routes
const (
	UsersBasePath           = "/api/users"
	UserLoginPath           = "/login"
	UserLogoutPath          = "/logout"
	UserLoginStatusPath     = "/loginstatus"
	UserChangePasswordPath  = "/changepassword"
	UserForgotPasswordPath  = "/forgotpassword"
	UserResetPasswordPath   = "/resetpassword/{resetToken}"
	ResetPasswordLinkPrefix = "/resetpassword/"
)

// Product Routes
const (
	ProductsBasePath    = "/api/products"
	ProductDetailPath   = "/{id}"
	ProductQuantityPath = "/{id}/quantity"
)

// ContactPath receives messages for the support mailbox.
const ContactPath = "/api/contactus"

// URL Parameters
const (
	ParamID         = "id"
	ParamResetToken = "resetToken"
)

// Form fields
const (
	FormFieldImage = "image"
)
