// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
// These constants provide fallback configuration values, user and product field
// defaults, and the upload boundaries applied to product images.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 5000

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default minimum number of database connections.
	DefaultDBMinConnections = 5

	// DefaultMongoURI is used when neither the config file nor MONGO_URI set one.
	DefaultMongoURI = "mongodb://localhost:27017"

	// DefaultDatabaseName is the Mongo database / Postgres database name.
	DefaultDatabaseName = "inventory"

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultFrontendURL is the base used to build password reset links.
	DefaultFrontendURL = "http://localhost:3000"

	// DefaultAllowedOrigin is the CORS origin allowed when none is configured.
	DefaultAllowedOrigin = "http://localhost:3000"
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Size limits for request bodies and uploads.
const (
	// MaxRequestBodySize is the maximum size in bytes for JSON request bodies.
	MaxRequestBodySize = 1048576 // 1MB in bytes

	// DefaultMaxUploadBytes caps a multipart product request, image included.
	DefaultMaxUploadBytes = 5 << 20

	// MultipartMemoryLimit is the part of a multipart body kept in memory before spilling to disk.
	MultipartMemoryLimit = 1 << 20
)

// Default Password Hash Settings define the parameters for password hashing.
// These constants balance security and performance for password storage.
const (
	// DefaultPasswordHashMemory is the memory cost parameter for Argon2id hashing.
	DefaultPasswordHashMemory = 64 * 1024

	// DefaultPasswordHashIterations is the number of iterations for Argon2id hashing.
	DefaultPasswordHashIterations = 3

	// DefaultPasswordHashParallelism is the parallelism parameter for Argon2id hashing.
	DefaultPasswordHashParallelism = 2

	// DefaultPasswordHashSaltLength is the length in bytes of the random salt.
	DefaultPasswordHashSaltLength = 16

	// DefaultPasswordHashKeyLength is the length in bytes of the generated hash.
	DefaultPasswordHashKeyLength = 32

	// DevPasswordHashMemory is a reduced memory setting for development environments.
	DevPasswordHashMemory = 16 * 1024

	// DevPasswordHashIterations is a reduced iteration count for development environments.
	DevPasswordHashIterations = 1
)

// Session token values.
const (
	// DefaultJWTIssuer is the issuer claim value for session tokens.
	DefaultJWTIssuer = "inventory-api"

	// ResetTokenRandomBytes is the number of random bytes in a reset secret.
	ResetTokenRandomBytes = 32
)

// User profile defaults applied at registration.
const (
	DefaultUserPhoto = "https://i.ibb.co/4pDNDk1/avatar.png"
	DefaultUserPhone = "+234"
	DefaultUserBio   = "bio"
)

// DefaultProductSKU is stored when a product is created without a SKU.
const DefaultProductSKU = "SKU"

// Media providers and their defaults.
const (
	MediaProviderCloudinary = "cloudinary"
	MediaProviderS3         = "s3"
	MediaProviderLocal      = "local"

	DefaultMediaFolder   = "inventory"
	DefaultLocalMediaDir = "uploads"
	UploadsPath          = "/uploads"
)

// Email providers.
const (
	EmailProviderSendGrid = "sendgrid"
	EmailProviderResend   = "resend"
	EmailProviderLog      = "log"
)
