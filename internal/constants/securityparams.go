package constants

// Session cookie
const (
	SessionCookieName = "token"
	SessionCookiePath = "/"
)

// Password rules
const (
	MinPasswordLength = 6
)

// Accepted image MIME types
const (
	MimeImagePNG  = "image/png"
	MimeImageJPG  = "image/jpg"
	MimeImageJPEG = "image/jpeg"
)

// AllowedImageTypes lists the MIME types accepted for product images.
var AllowedImageTypes = map[string]bool{
	MimeImagePNG:  true,
	MimeImageJPG:  true,
	MimeImageJPEG: true,
}

// Request context keys
const (
	UserIDContextKey    = "user_id"
	UserContextKey      = "user"
	RequestIDContextKey = "request_id"
)
