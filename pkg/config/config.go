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
	Server   ServerConfig
	Database DatabaseConfig `envconfig:"DB"`
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	LiveKit  LiveKitConfig `envconfig:"LIVEKIT"`
	Realtime RealtimeConfig
	Queue    QueueConfig
	Authz    AuthzConfig
}

// ServerConfig holds server configuration. Only these keys fall back to the
// unprefixed names (PORT, HOST, ...).
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `split_words:"true" default:"localhost"`
	Port        string `split_words:"true" default:"5432"`
	User        string `split_words:"true" default:"postgres"`
	Password    string `split_words:"true" default:"postgres"`
	Name        string `split_words:"true" default:"interview_realtime"`
	SSLMode     string `split_words:"true" default:"disable"`
	MaxConns    int    `split_words:"true" default:"25"`
	MinConns    int    `split_words:"true" default:"5"`
	AutoMigrate bool   `split_words:"true" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `split_words:"true" default:"false"`
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"6379"`
	Password string `split_words:"true" default:""`
	DB       int    `split_words:"true" default:"0"`
}

// JWTConfig holds the secret used to verify access tokens issued by the auth service
type JWTConfig struct {
	AccessSecret string `split_words:"true" default:"your-access-secret-change-in-production"`
	Issuer       string `split_words:"true" default:"interview-platform"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Endpoint        string `split_words:"true" default:"localhost:9000"`
	AccessKeyID     string `split_words:"true" default:"minioadmin"`
	SecretAccessKey string `split_words:"true" default:"minioadmin"`
	BucketName      string `split_words:"true" default:"interview-files"`
	UseSSL          bool   `split_words:"true" default:"false"`
}

// LiveKitConfig holds LiveKit configuration for recording capture
type LiveKitConfig struct {
	URL        string `split_words:"true" default:"ws://localhost:7880"`
	APIKey     string `split_words:"true" default:"devkey"`
	APISecret  string `split_words:"true" default:"secret"`
	UseMock    bool   `split_words:"true" default:"true"`
	OutputPath string `split_words:"true" default:"recordings"`
}

// RealtimeConfig tunes the session hub
type RealtimeConfig struct {
	HealthInterval       time.Duration `split_words:"true" default:"30s"`
	ChatHistoryLimit     int           `split_words:"true" default:"200"`
	JoinHistorySize      int           `split_words:"true" default:"50"`
	QualityMaxPacketLoss float64       `split_words:"true" default:"5"`
	QualityMaxLatency    time.Duration `split_words:"true" default:"500ms"`
	SendBufferSize       int           `split_words:"true" default:"128"`
	ReadTimeout          time.Duration `split_words:"true" default:"60s"`
	MaxFrameBytes        int64         `split_words:"true" default:"16777216"`
}

// QueueConfig sizes the background persistence worker pool
type QueueConfig struct {
	Workers    int           `split_words:"true" default:"4"`
	Capacity   int           `split_words:"true" default:"1024"`
	JobTimeout time.Duration `split_words:"true" default:"30s"`
	MaxElapsed time.Duration `split_words:"true" default:"1m"`
}

// AuthzConfig holds authorization cache settings
type AuthzConfig struct {
	CacheTTL time.Duration `split_words:"true" default:"5m"`
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
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if c.Server.Environment == "production" && c.JWT.AccessSecret == "your-access-secret-change-in-production" {
		return fmt.Errorf("JWT_ACCESS_SECRET must be changed in production")
	}
	if c.Queue.Workers < 1 {
		return fmt.Errorf("QUEUE_WORKERS must be at least 1")
	}
	if c.Queue.Capacity < 1 {
		return fmt.Errorf("QUEUE_CAPACITY must be at least 1")
	}
	if c.Realtime.JoinHistorySize > c.Realtime.ChatHistoryLimit {
		return fmt.Errorf("REALTIME_JOIN_HISTORY_SIZE cannot exceed REALTIME_CHAT_HISTORY_LIMIT")
	}
	if c.Realtime.HealthInterval <= 0 {
		return fmt.Errorf("REALTIME_HEALTH_INTERVAL must be positive")
	}
	if !c.LiveKit.UseMock && (c.LiveKit.APIKey == "" || c.LiveKit.APISecret == "") {
		return fmt.Errorf("LIVEKIT_API_KEY and LIVEKIT_API_SECRET are required when LIVEKIT_USE_MOCK=false")
	}
	return nil
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

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
