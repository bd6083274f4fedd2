package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts
const (
	DBConnectionTimeout   = 30 * time.Second
	DBQueryTimeout        = 15 * time.Second
	DBHealthCheckTimeout  = 5 * time.Second
	DBConnMaxLifetime     = 1 * time.Hour
	DBConnMaxIdleTime     = 30 * time.Minute
	DBMaintenanceInterval = 1 * time.Hour
	MaintenanceTimeout    = 5 * time.Minute
)

// Token lifetimes
const (
	DefaultJWTExpiry    = 24 * time.Hour
	SessionCookieMaxAge = 24 * 60 * 60 // in seconds
	ResetTokenTTL       = 30 * time.Minute
)

