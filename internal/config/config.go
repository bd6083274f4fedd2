package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App          AppSettings      `yaml:"app"`
	Database     DatabaseSettings `yaml:"database"`
	Server       ServerSettings   `yaml:"server"`
	JWT          JWTSettings      `yaml:"jwt"`
	Logging      LoggingSettings  `yaml:"logging"`
	CORS         CORSSettings     `yaml:"cors"`
	PasswordHash HashSettings     `yaml:"password_hash"`
	Email        EmailSettings    `yaml:"email"`
	Media        MediaSettings    `yaml:"media"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
	FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL"`
}

// DatabaseSettings selects the storage backend and holds its connection settings.
// URI is used by the mongo driver; the discrete fields by postgres.
type DatabaseSettings struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER"`
	URI      string `yaml:"uri" env:"MONGO_URI,DB_URI"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSL      bool   `yaml:"ssl" env:"DB_SSL"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
	Seed     bool   `yaml:"seed" env:"DB_SEED"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT,PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// JWTSettings contains session token settings
type JWTSettings struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	Expiry time.Duration `yaml:"expiry" env:"JWT_EXPIRY"`
	Issuer string        `yaml:"issuer" env:"JWT_ISSUER"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level             string `yaml:"level" env:"LOG_LEVEL"`
	Format            string `yaml:"format" env:"LOG_FORMAT"`
	DisableRequestLog bool   `yaml:"disable_request_log" env:"LOG_DISABLE_REQUESTS"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// HashSettings contains password hashing settings
type HashSettings struct {
	Memory      uint32 `yaml:"memory" env:"HASH_MEMORY"`
	Iterations  uint32 `yaml:"iterations" env:"HASH_ITERATIONS"`
	Parallelism uint8  `yaml:"parallelism" env:"HASH_PARALLELISM"`
	SaltLength  uint32 `yaml:"salt_length" env:"HASH_SALT_LENGTH"`
	KeyLength   uint32 `yaml:"key_length" env:"HASH_KEY_LENGTH"`
}

// EmailSettings configures outbound transactional email.
type EmailSettings struct {
	Provider       string `yaml:"provider" env:"EMAIL_PROVIDER"`
	APIKey         string `yaml:"api_key" env:"EMAIL_API_KEY,SENDGRID_API_KEY,RESEND_API_KEY"`
	From           string `yaml:"from" env:"EMAIL_FROM,EMAIL_USER"`
	FromName       string `yaml:"from_name" env:"EMAIL_FROM_NAME"`
	SupportAddress string `yaml:"support_address" env:"EMAIL_SUPPORT"`
}

// MediaSettings configures where product images are stored.
type MediaSettings struct {
	Provider       string `yaml:"provider" env:"MEDIA_PROVIDER"`
	Folder         string `yaml:"folder" env:"MEDIA_FOLDER"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"MEDIA_MAX_UPLOAD_BYTES"`

	CloudinaryCloudName string `yaml:"cloudinary_cloud_name" env:"CLOUDINARY_CLOUD_NAME,CLOUD_NAME"`
	CloudinaryAPIKey    string `yaml:"cloudinary_api_key" env:"CLOUDINARY_API_KEY,CLOUD_API_KEY"`
	CloudinaryAPISecret string `yaml:"cloudinary_api_secret" env:"CLOUDINARY_API_SECRET,CLOUD_API_SECRET"`

	S3Region    string `yaml:"s3_region" env:"S3_REGION"`
	S3Bucket    string `yaml:"s3_bucket" env:"S3_BUCKET"`
	S3Endpoint  string `yaml:"s3_endpoint" env:"S3_ENDPOINT"`
	S3AccessKey string `yaml:"s3_access_key" env:"S3_ACCESS_KEY"`
	S3SecretKey string `yaml:"s3_secret_key" env:"S3_SECRET_KEY"`
	S3PublicURL string `yaml:"s3_public_url" env:"S3_PUBLIC_URL"`

	LocalDir     string `yaml:"local_dir" env:"MEDIA_LOCAL_DIR"`
	LocalBaseURL string `yaml:"local_base_url" env:"MEDIA_LOCAL_BASE_URL"`
}

// ConnectionString returns the postgres connection string
func (dbs *DatabaseSettings) ConnectionString() string {
	sslParams := constants.PostgresSSLDisable
	if dbs.SSL {
		sslParams = constants.PostgresSSLRequire
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s %s",
		dbs.Host, dbs.Port, dbs.User, dbs.Password, dbs.Name, sslParams,
	)
}

// IsMongo reports whether the document store backend is selected.
func (dbs *DatabaseSettings) IsMongo() bool {
	return strings.ToLower(dbs.Driver) == constants.DriverMongo
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

// ResetPasswordURL builds the frontend link that carries a raw reset secret.
func (as *AppSettings) ResetPasswordURL(rawToken string) string {
	return strings.TrimRight(as.FrontendURL, "/") + constants.ResetPasswordLinkPrefix + url.PathEscape(rawToken)
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = config

	logConfig(config)

	return config, nil
}

// Get returns the current application configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	// App defaults
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = "inventory-api"
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}
	if config.App.FrontendURL == "" {
		config.App.FrontendURL = constants.DefaultFrontendURL
	}

	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.IdleTimeout == 0 {
		config.Server.IdleTimeout = constants.DefaultIdleTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	// Database defaults
	if config.Database.Driver == "" {
		config.Database.Driver = constants.DriverMongo
	}
	if config.Database.Name == "" {
		config.Database.Name = constants.DefaultDatabaseName
	}
	if config.Database.IsMongo() && config.Database.URI == "" {
		config.Database.URI = constants.DefaultMongoURI
	}
	if config.Database.Host == "" {
		config.Database.Host = "localhost"
	}
	if config.Database.Port == 0 {
		config.Database.Port = 5432
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	// JWT defaults
	if config.JWT.Expiry == 0 {
		config.JWT.Expiry = constants.DefaultJWTExpiry
	}
	if config.JWT.Issuer == "" {
		config.JWT.Issuer = constants.DefaultJWTIssuer
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// CORS defaults
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{constants.DefaultAllowedOrigin}
		config.CORS.AllowCredentials = true
	}

	// Password hash defaults
	if config.PasswordHash.Memory == 0 {
		// Lower for development, higher for production
		if config.App.IsProduction() {
			config.PasswordHash.Memory = constants.DefaultPasswordHashMemory
		} else {
			config.PasswordHash.Memory = constants.DevPasswordHashMemory
		}
	}
	if config.PasswordHash.Iterations == 0 {
		if config.App.IsProduction() {
			config.PasswordHash.Iterations = constants.DefaultPasswordHashIterations
		} else {
			config.PasswordHash.Iterations = constants.DevPasswordHashIterations
		}
	}
	if config.PasswordHash.Parallelism == 0 {
		config.PasswordHash.Parallelism = constants.DefaultPasswordHashParallelism
	}
	if config.PasswordHash.SaltLength == 0 {
		config.PasswordHash.SaltLength = constants.DefaultPasswordHashSaltLength
	}
	if config.PasswordHash.KeyLength == 0 {
		config.PasswordHash.KeyLength = constants.DefaultPasswordHashKeyLength
	}

	// Email defaults
	if config.Email.Provider == "" {
		if config.Email.APIKey == "" {
			config.Email.Provider = constants.EmailProviderLog
		} else {
			config.Email.Provider = constants.EmailProviderSendGrid
		}
	}
	if config.Email.FromName == "" {
		config.Email.FromName = config.App.Name
	}
	if config.Email.SupportAddress == "" {
		config.Email.SupportAddress = config.Email.From
	}

	// Media defaults
	if config.Media.Provider == "" {
		if config.Media.CloudinaryCloudName != "" {
			config.Media.Provider = constants.MediaProviderCloudinary
		} else {
			config.Media.Provider = constants.MediaProviderLocal
		}
	}
	if config.Media.Folder == "" {
		config.Media.Folder = constants.DefaultMediaFolder
	}
	if config.Media.MaxUploadBytes == 0 {
		config.Media.MaxUploadBytes = constants.DefaultMaxUploadBytes
	}
	if config.Media.LocalDir == "" {
		config.Media.LocalDir = constants.DefaultLocalMediaDir
	}
	if config.Media.LocalBaseURL == "" {
		config.Media.LocalBaseURL = fmt.Sprintf("http://localhost:%d%s", config.Server.Port, constants.UploadsPath)
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret must be set")
	}
	if config.App.IsProduction() && len(config.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters in production")
	}

	switch strings.ToLower(config.Database.Driver) {
	case constants.DriverMongo:
		if config.Database.URI == "" {
			return fmt.Errorf("database uri must be set for the mongo driver")
		}
	case constants.DriverPostgres:
		if config.Database.User == "" {
			return fmt.Errorf("database user must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", config.Database.Driver)
	}

	switch strings.ToLower(config.Email.Provider) {
	case constants.EmailProviderSendGrid, constants.EmailProviderResend:
		if config.Email.APIKey == "" {
			return fmt.Errorf("email api key must be set for provider %s", config.Email.Provider)
		}
		if config.Email.From == "" {
			return fmt.Errorf("email sender address must be set")
		}
	case constants.EmailProviderLog:
	default:
		return fmt.Errorf("unsupported email provider: %s", config.Email.Provider)
	}

	switch strings.ToLower(config.Media.Provider) {
	case constants.MediaProviderCloudinary:
		if config.Media.CloudinaryCloudName == "" || config.Media.CloudinaryAPIKey == "" || config.Media.CloudinaryAPISecret == "" {
			return fmt.Errorf("cloudinary credentials must be set")
		}
	case constants.MediaProviderS3:
		if config.Media.S3Bucket == "" || config.Media.S3Region == "" {
			return fmt.Errorf("s3 bucket and region must be set")
		}
	case constants.MediaProviderLocal:
	default:
		return fmt.Errorf("unsupported media provider: %s", config.Media.Provider)
	}

	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// logConfig logs the current configuration, masking sensitive values
func logConfig(config *AppConfig) {
	log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Str("db_driver", config.Database.Driver).
		Str("db_name", config.Database.Name).
		Str("db_uri", redactURI(config.Database.URI)).
		Str("email_provider", config.Email.Provider).
		Str("media_provider", config.Media.Provider).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")
}

// redactURI hides the password of a connection URI.
func redactURI(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return constants.LogRedactedValue
	}
	return u.Redacted()
}
