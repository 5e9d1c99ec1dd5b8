package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig     `envconfig:"SERVER"`
	Log        LogConfig        `envconfig:"LOG"`
	Redis      RedisConfig      `envconfig:"REDIS"`
	OAuth      OAuthConfig      `envconfig:"OAUTH"`
	JWT        JWTConfig        `envconfig:"JWT"`
	Storage    StorageConfig    `envconfig:"STORAGE"`
	Gemini     GeminiConfig     `envconfig:"GEMINI"`
	AssemblyAI AssemblyAIConfig `envconfig:"ASSEMBLYAI"`
	History    HistoryConfig    `envconfig:"HISTORY"`

	// TranscribeProvider is "gemini" or "assemblyai".
	TranscribeProvider string `envconfig:"TRANSCRIBE_PROVIDER" default:"gemini"`
}

// MaxHistoryLimit is the most text tool inputs remembered per identity
const MaxHistoryLimit = 10

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	// MaxUploadMB bounds multipart bodies for audio and image uploads.
	MaxUploadMB int64 `envconfig:"MAX_UPLOAD_MB" default:"200"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"info"`
	Development bool   `envconfig:"DEVELOPMENT" default:"false"`
}

// RedisConfig holds Redis configuration. Redis is optional; without it the
// in-memory store is used.
type RedisConfig struct {
	Enabled  bool   `envconfig:"ENABLED" default:"false"`
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
}

// OAuthConfig holds OAuth configuration
type OAuthConfig struct {
	Google GoogleOAuthConfig `envconfig:"GOOGLE"`
	// AuthorizedDomains lists hosts allowed to start a federated sign-in.
	// Empty means any host.
	AuthorizedDomains []string `envconfig:"AUTHORIZED_DOMAINS"`
}

// GoogleOAuthConfig holds Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID     string `envconfig:"CLIENT_ID"`
	ClientSecret string `envconfig:"CLIENT_SECRET"`
	RedirectURL  string `envconfig:"REDIRECT_URL" default:"http://localhost:8080/v1/auth/google/callback"`
}

// Enabled reports whether federated sign-in is configured.
func (g GoogleOAuthConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string        `envconfig:"ACCESS_SECRET" default:"your-access-secret-change-in-production"`
	RefreshSecret string        `envconfig:"REFRESH_SECRET" default:"your-refresh-secret-change-in-production"`
	AccessExpiry  time.Duration `envconfig:"ACCESS_EXPIRY" default:"15m"`
	RefreshExpiry time.Duration `envconfig:"REFRESH_EXPIRY" default:"168h"`
}

// StorageConfig holds object storage configuration for generated media
type StorageConfig struct {
	Enabled         bool          `envconfig:"ENABLED" default:"false"`
	Endpoint        string        `envconfig:"ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"BUCKET" default:"joyability-media"`
	UseSSL          bool          `envconfig:"USE_SSL" default:"false"`
	PublicURL       string        `envconfig:"PUBLIC_URL"`
	PresignExpiry   time.Duration `envconfig:"PRESIGN_EXPIRY" default:"24h"`
}

// GeminiConfig holds the generative AI service configuration
type GeminiConfig struct {
	APIKey        string `envconfig:"API_KEY"`
	BaseURL       string `envconfig:"BASE_URL" default:"https://generativelanguage.googleapis.com"`
	UploadBaseURL string `envconfig:"UPLOAD_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	LiveURL       string `envconfig:"LIVE_URL" default:"wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"`

	ModelFlash string `envconfig:"MODEL_FLASH" default:"gemini-2.5-flash"`
	ModelChat  string `envconfig:"MODEL_CHAT" default:"gemini-3-pro-preview"`
	ModelImage string `envconfig:"MODEL_IMAGE" default:"gemini-2.5-flash-image"`
	ModelVideo string `envconfig:"MODEL_VIDEO" default:"veo-3.1-fast-generate-preview"`
	ModelLive  string `envconfig:"MODEL_LIVE" default:"gemini-2.5-flash-native-audio-preview-09-2025"`
	LiveVoice  string `envconfig:"LIVE_VOICE" default:"Zephyr"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"120s"`
	RateLimit      float64       `envconfig:"RATE_LIMIT" default:"5"`
	RateBurst      int           `envconfig:"RATE_BURST" default:"10"`

	MaxRetries int           `envconfig:"MAX_RETRIES" default:"3"`
	RetryDelay time.Duration `envconfig:"RETRY_DELAY" default:"2s"`

	InlineLimit       int64         `envconfig:"INLINE_LIMIT" default:"2097152"`
	FilePollInterval  time.Duration `envconfig:"FILE_POLL_INTERVAL" default:"2s"`
	FilePollAttempts  int           `envconfig:"FILE_POLL_ATTEMPTS" default:"60"`
	FileSettleDelay   time.Duration `envconfig:"FILE_SETTLE_DELAY" default:"5s"`
	VideoPollInterval time.Duration `envconfig:"VIDEO_POLL_INTERVAL" default:"5s"`
	VideoTimeout      time.Duration `envconfig:"VIDEO_TIMEOUT" default:"10m"`
}

// AssemblyAIConfig holds the optional AssemblyAI transcriber configuration
type AssemblyAIConfig struct {
	APIKey string `envconfig:"API_KEY"`
}

// HistoryConfig selects where per-identity tool state lives
type HistoryConfig struct {
	// Backend is one of "memory", "redis" or "sqlite".
	Backend    string `envconfig:"BACKEND" default:"memory"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"joyability.db"`
	Limit      int    `envconfig:"LIMIT" default:"10"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.IsProduction() &&
		(c.JWT.AccessSecret == "your-access-secret-change-in-production" ||
			c.JWT.RefreshSecret == "your-refresh-secret-change-in-production") {
		return fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set in production")
	}
	switch c.History.Backend {
	case "memory", "sqlite":
	case "redis":
		if !c.Redis.Enabled {
			return fmt.Errorf("HISTORY_BACKEND=redis requires REDIS_ENABLED=true")
		}
	default:
		return fmt.Errorf("unknown HISTORY_BACKEND %q", c.History.Backend)
	}
	switch c.TranscribeProvider {
	case "gemini":
	case "assemblyai":
		if c.AssemblyAI.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required for TRANSCRIBE_PROVIDER=assemblyai")
		}
	default:
		return fmt.Errorf("unknown TRANSCRIBE_PROVIDER %q", c.TranscribeProvider)
	}
	if c.History.Limit <= 0 || c.History.Limit > MaxHistoryLimit {
		return fmt.Errorf("HISTORY_LIMIT must be between 1 and %d", MaxHistoryLimit)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
