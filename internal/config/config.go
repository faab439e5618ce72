package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	HasherBcrypt    = "bcrypt"
	HasherPlaintext = "plaintext"

	StorageLocal = "local"
	StorageS3    = "s3"
)

var (
	ErrMissingJWTSecret   = errors.New("JWT_SECRET_KEY is required")
	ErrMissingJWTIssuer   = errors.New("JWT_ISSUER is required")
	ErrMissingJWTAudience = errors.New("JWT_AUDIENCE is required")
	ErrMissingS3PublicURL = errors.New("S3_PUBLIC_URL is required when ATTACHMENT_STORAGE=s3")
)

type Config struct {
	AppEnv     string `json:"app_env"`
	ServerPort int    `json:"server_port"`

	JWTSecretKey     string `json:"-"`
	JWTIssuer        string `json:"jwt_issuer"`
	JWTAudience      string `json:"jwt_audience"`
	JWTExpiryMinutes int    `json:"jwt_expiry_minutes"`

	PasswordHasher string `json:"password_hasher"`
	BcryptCost     int    `json:"bcrypt_cost"`

	RateLimitEnabled bool `json:"rate_limit_enabled"`
	DefaultRateLimit int  `json:"default_rate_limit"`
	GlobalRateLimit  int  `json:"global_rate_limit"`

	TicketEventsEnabled bool `json:"ticket_events_enabled"`
	SearchEnabled       bool `json:"search_enabled"`

	CORSAllowedOrigins []string `json:"cors_allowed_origins"`

	Upload UploadConfig `json:"upload"`
}

// UploadConfig controls where ticket attachments land and how big they may be.
type UploadConfig struct {
	Storage      string   `json:"storage"`
	Dir          string   `json:"dir"`
	MaxSizeBytes int64    `json:"max_size_bytes"`
	AllowedExts  []string `json:"allowed_exts"`
	// PublicURL is where S3 attachments are served from. /uploads is only
	// mounted for local storage, so s3 needs it.
	PublicURL string `json:"public_url"`
}

// JWTExpiry returns the configured token lifetime.
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryMinutes) * time.Minute
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:     getEnvWithDefault("APP_ENV", "development"),
		ServerPort: getEnvIntWithDefault("SERVER_PORT", 10000),

		JWTSecretKey:     getEnvWithDefault("JWT_SECRET_KEY", ""),
		JWTIssuer:        getEnvWithDefault("JWT_ISSUER", ""),
		JWTAudience:      getEnvWithDefault("JWT_AUDIENCE", ""),
		JWTExpiryMinutes: getEnvIntWithDefault("JWT_EXPIRY_MINUTES", 60),

		PasswordHasher: getEnvWithDefault("PASSWORD_HASHER", HasherBcrypt),
		BcryptCost:     getEnvIntWithDefault("BCRYPT_COST", 10),

		RateLimitEnabled: getEnvBoolWithDefault("RATE_LIMIT_ENABLED", false),
		DefaultRateLimit: getEnvIntWithDefault("DEFAULT_RATE_LIMIT", 1000),  // requests per minute per tenant
		GlobalRateLimit:  getEnvIntWithDefault("GLOBAL_RATE_LIMIT", 10000), // requests per minute per IP

		TicketEventsEnabled: getEnvBoolWithDefault("TICKET_EVENTS_ENABLED", false),
		SearchEnabled:       getEnvBoolWithDefault("SEARCH_ENABLED", false),

		CORSAllowedOrigins: getEnvListWithDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),

		Upload: UploadConfig{
			Storage:      getEnvWithDefault("ATTACHMENT_STORAGE", StorageLocal),
			Dir:          getEnvWithDefault("UPLOAD_DIR", "wwwroot/uploads"),
			MaxSizeBytes: getEnvInt64WithDefault("UPLOAD_MAX_SIZE_BYTES", 10*1024*1024),
			AllowedExts: getEnvListWithDefault("UPLOAD_ALLOWED_EXTENSIONS",
				[]string{".png", ".jpg", ".jpeg", ".gif", ".pdf", ".doc", ".docx"}),
			PublicURL: getEnvWithDefault("S3_PUBLIC_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports configuration the process cannot start without.
func (c *Config) Validate() error {
	switch {
	case c.JWTSecretKey == "":
		return ErrMissingJWTSecret
	case c.JWTIssuer == "":
		return ErrMissingJWTIssuer
	case c.JWTAudience == "":
		return ErrMissingJWTAudience
	case c.JWTExpiryMinutes <= 0:
		return fmt.Errorf("JWT_EXPIRY_MINUTES must be positive, got %d", c.JWTExpiryMinutes)
	}

	if c.PasswordHasher != HasherBcrypt && c.PasswordHasher != HasherPlaintext {
		return fmt.Errorf("PASSWORD_HASHER must be %q or %q, got %q", HasherBcrypt, HasherPlaintext, c.PasswordHasher)
	}
	if c.Upload.Storage != StorageLocal && c.Upload.Storage != StorageS3 {
		return fmt.Errorf("ATTACHMENT_STORAGE must be %q or %q, got %q", StorageLocal, StorageS3, c.Upload.Storage)
	}
	if c.Upload.Storage == StorageS3 && c.Upload.PublicURL == "" {
		return ErrMissingS3PublicURL
	}
	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_SIZE_BYTES must be positive, got %d", c.Upload.MaxSizeBytes)
	}

	return nil
}
