package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store backends
const (
	StoreBackendNotion   = "notion"
	StoreBackendPostgres = "postgres"
	StoreBackendMongo    = "mongo"
	StoreBackendMemory   = "memory"
)

// Model providers
const (
	ModelProviderOpenAI = "openai"
	ModelProviderGemini = "gemini"
)

// Config holds application configuration
type Config struct {
	Server        ServerConfig        `envconfig:"SERVER"`
	Model         ModelConfig         `envconfig:"MODEL"`
	Store         StoreConfig         `envconfig:"STORE"`
	Database      DatabaseConfig      `envconfig:"DB"`
	Mongo         MongoConfig         `envconfig:"MONGO"`
	Mail          MailConfig          `envconfig:"MAIL"`
	Sweep         SweepConfig         `envconfig:"SWEEP"`
	Redis         RedisConfig         `envconfig:"REDIS"`
	Archive       ArchiveConfig       `envconfig:"ARCHIVE"`
	Transcription TranscriptionConfig `envconfig:"TRANSCRIPTION"`

	DefaultMeetingName string `envconfig:"DEFAULT_MEETING_NAME" default:"Untitled Meeting"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// ModelConfig holds the language-model service configuration
type ModelConfig struct {
	Provider     string        `split_words:"true" default:"openai"`
	APIKey       string        `envconfig:"OPENAI_API_KEY"`
	BaseURL      string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	Name         string        `split_words:"true" default:"gpt-4-turbo"`
	Temperature  float64       `split_words:"true" default:"0.2"`
	GeminiAPIKey string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string        `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	GeminiURL    string        `envconfig:"GEMINI_BASE_URL"`
	Timeout      time.Duration `split_words:"true" default:"45s"`
}

// StoreConfig selects and bounds the record store
type StoreConfig struct {
	Backend          string        `split_words:"true" default:"notion"`
	NotionAPIKey     string        `envconfig:"NOTION_API_KEY"`
	NotionDatabaseID string        `envconfig:"NOTION_DATABASE_ID"`
	RecordURLPrefix  string        `split_words:"true"`
	Timeout          time.Duration `split_words:"true" default:"15s"`
}

// DatabaseConfig holds Postgres configuration for the postgres store backend
type DatabaseConfig struct {
	Host        string `split_words:"true" default:"localhost"`
	Port        string `split_words:"true" default:"5432"`
	User        string `split_words:"true" default:"postgres"`
	Password    string `split_words:"true" default:"postgres"`
	Name        string `split_words:"true" default:"meeting_notes"`
	SSLMode     string `envconfig:"SSLMODE" default:"disable"`
	MaxConns    int    `split_words:"true" default:"10"`
	MinConns    int    `split_words:"true" default:"2"`
	AutoMigrate bool   `split_words:"true" default:"false"`
}

// MongoConfig holds MongoDB configuration for the mongo store backend
type MongoConfig struct {
	URI        string `split_words:"true" default:"mongodb://localhost:27017"`
	Database   string `split_words:"true" default:"meeting_notes"`
	Collection string `split_words:"true" default:"meeting_records"`
}

// MailConfig holds the mail transport configuration.
// Recipient is a single pre-verified address; the trial transport tier rejects others.
type MailConfig struct {
	ResendAPIKey string        `envconfig:"RESEND_API_KEY"`
	BaseURL      string        `split_words:"true"`
	From         string        `split_words:"true" default:"Meeting Notes <onboarding@resend.dev>"`
	Recipient    string        `split_words:"true"`
	Timeout      time.Duration `split_words:"true" default:"15s"`
	MaxAttempts  int           `split_words:"true" default:"3"`
	RetryDelay   time.Duration `split_words:"true" default:"5s"`
}

// SweepConfig holds reconciliation sweep configuration
type SweepConfig struct {
	PageSize     int           `split_words:"true" default:"5"`
	Interval     time.Duration `split_words:"true" default:"0s"`
	Timeout      time.Duration `split_words:"true" default:"120s"`
	Secret       string        `split_words:"true"`
	LeaseEnabled bool          `split_words:"true" default:"false"`
	LeaseTTL     time.Duration `envconfig:"LEASE_TTL" default:"2m"`
}

// RedisConfig holds Redis configuration for the sweep lease
type RedisConfig struct {
	Host     string `split_words:"true"`
	Port     string `split_words:"true" default:"6379"`
	Password string `split_words:"true"`
	DB       int    `envconfig:"DB" default:"0"`
}

// ArchiveConfig holds object storage configuration for raw model output
type ArchiveConfig struct {
	Enabled         bool   `split_words:"true" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-notes"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// TranscriptionConfig holds AssemblyAI configuration
type TranscriptionConfig struct {
	APIKey  string        `envconfig:"ASSEMBLYAI_API_KEY"`
	Timeout time.Duration `split_words:"true" default:"5m"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEnv loads configuration without validating it, for tools that only
// need one group (e.g. database migrations)
func LoadEnv() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case ModelProviderOpenAI:
		if c.Model.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for model provider %q", c.Model.Provider)
		}
	case ModelProviderGemini:
		if c.Model.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for model provider %q", c.Model.Provider)
		}
	default:
		return fmt.Errorf("unknown MODEL_PROVIDER %q", c.Model.Provider)
	}

	switch c.Store.Backend {
	case StoreBackendNotion:
		if c.Store.NotionAPIKey == "" || c.Store.NotionDatabaseID == "" {
			return fmt.Errorf("NOTION_API_KEY and NOTION_DATABASE_ID are required for the notion store")
		}
	case StoreBackendPostgres, StoreBackendMongo, StoreBackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Mail.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required")
	}
	if !strings.Contains(c.Mail.Recipient, "@") {
		return fmt.Errorf("MAIL_RECIPIENT must be a verified email address")
	}
	if c.Mail.MaxAttempts < 1 {
		return fmt.Errorf("MAIL_MAX_ATTEMPTS must be at least 1")
	}
	if c.Sweep.PageSize < 1 {
		return fmt.Errorf("SWEEP_PAGE_SIZE must be at least 1")
	}
	if c.Sweep.LeaseEnabled && c.Sweep.LeaseTTL <= 0 {
		return fmt.Errorf("SWEEP_LEASE_TTL must be positive when the sweep lease is enabled")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address, empty when Redis is not configured
func (c *Config) GetRedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
