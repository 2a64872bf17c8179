package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Upstream API request timeout
const UpstreamTimeout = 5 * time.Second

// Redis keys for the durable client-side store. One key per concern,
// mirroring the browser dashboard's storage layout.
const (
	SessionStorageKey      = "zabava:session"
	NotificationStorageKey = "zabava:notifications"
)

// Notification feed settings
const (
	NotificationCap     = 50
	RecentActivityLimit = 5
)

// Background job intervals
const (
	AuditRetentionInterval = 1 * time.Hour
	AuditRetentionMaxAge   = 30 * 24 * time.Hour
)

// Rate limiting for the public bonus and login endpoints
const (
	PublicRateLimitPerMin = 30
	LoginRateLimitPerMin  = 10
	RateLimitWindow       = 60 * time.Second
)

// Request body cap applied to every route
const MaxRequestBodyBytes = 1 << 20
