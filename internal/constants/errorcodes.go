// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines constants related to error handling and messaging.
// User-facing messages are kept short and avoid implementation detail.
package constants

// Error Types define the categories of errors that can occur in the application.
const (
	// ErrorNotFound indicates that a requested resource could not be found.
	ErrorNotFound = "resource not found"

	// ErrorUnauthorized indicates that authentication is required but was not provided.
	ErrorUnauthorized = "unauthorized access"

	// ErrorForbidden indicates that the requester lacks sufficient permissions.
	ErrorForbidden = "forbidden access"

	// ErrorBadRequest indicates that the request was malformed or invalid.
	ErrorBadRequest = "invalid request"

	// ErrorInternalServer indicates an unexpected internal error.
	ErrorInternalServer = "internal server error"

	// ErrorValidation indicates that input validation failed.
	ErrorValidation = "validation error"

	// ErrorDuplicate indicates a unique constraint was violated.
	ErrorDuplicate = "duplicate resource"

	// ErrorInvalidCredentials indicates a failed email/password check.
	ErrorInvalidCredentials = "invalid credentials"

	// ErrorExpiredToken indicates a token past its expiry.
	ErrorExpiredToken = "expired token"

	// ErrorInvalidToken indicates a token that failed verification.
	ErrorInvalidToken = "invalid token"

	// ErrorUpload indicates the media host rejected or failed an upload.
	ErrorUpload = "upload failed"

	// ErrorDelivery indicates the email provider failed to accept a message.
	ErrorDelivery = "delivery failed"
)

// User-facing messages.
const (
	MsgNotAuthorized        = "Not authorized, please login"
	MsgUserNotFoundSignUp   = "User not found, please sign up"
	MsgInvalidEmailPassword = "Invalid email or password"
	MsgOldPasswordIncorrect = "Old password is incorrect"
	MsgInvalidResetToken    = "Invalid or expired token"
	MsgUserNotFound         = "User does not exist"
	MsgProductNotFound      = "Product not found"
	MsgProductNotOwned      = "User not authorized"
	MsgImageUploadFailed    = "Image could not be uploaded"
	MsgEmailNotSent         = "Email not sent, please try again"

	MsgInternalServerError   = "An internal server error occurred"
	MsgRequestBodyTooLarge   = "Request body too large"
	MsgEmptyRequestBody      = "Request body must not be empty"
	MsgMalformedJSON         = "Request body contains malformed JSON"
	MsgResourceNotFound      = "The requested resource could not be found"
	MsgResourceAlreadyExists = "A resource with the same unique identifier already exists"
	MsgMethodNotAllowed      = "This method is not allowed for this resource"
	MsgServiceUnhealthy      = "Service is not healthy"

	MsgLogoutSuccess     = "Successfully logged out"
	MsgPasswordChanged   = "Password changed successfully"
	MsgResetEmailSent    = "Reset email sent"
	MsgPasswordResetDone = "Password reset successful, please login"
	MsgProductDeleted    = "Product deleted"
	MsgQuantityUpdated   = "Product quantity updated"
	MsgContactEmailSent  = "Email sent"
)

// Database error markers.
const (
	// PGErrorDuplicateConstraint is the SQLSTATE for unique_violation.
	PGErrorDuplicateConstraint = "23505"

	// PGErrorForeignKeyConstraint is the SQLSTATE for foreign_key_violation.
	PGErrorForeignKeyConstraint = "23503"

	// PGErrorNotNullConstraint is the SQLSTATE for not_null_violation.
	PGErrorNotNullConstraint = "23502"
)

// Log categories and events.
const (
	LogCategoryUser    = "user"
	LogCategoryAuth    = "auth"
	LogCategoryProduct = "product"

	LogEventLogin          = "login"
	LogEventRegister       = "register"
	LogEventLogout         = "logout"
	LogEventPasswordChange = "password_change"
	LogEventPasswordReset  = "password_reset"
	LogEventUserUpdate     = "user_update"

	LogRedactedValue = "[REDACTED]"
)
