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
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Groq     GroqConfig
	Speech   SpeechConfig
	FFmpeg   FFmpegConfig
	Kafka    KafkaConfig
	Alerts   AlertsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"voicecare"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds MinIO object storage configuration for the audio archive
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"voicecare-clips"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// GroqConfig holds configuration for the Groq LLM backend
type GroqConfig struct {
	APIKey  string        `envconfig:"GROQ_API_KEY" default:""`
	BaseURL string        `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model   string        `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
	Timeout time.Duration `envconfig:"GROQ_TIMEOUT" default:"30s"`
}

// SpeechConfig holds configuration for the hosted ASR backend
type SpeechConfig struct {
	DefaultLanguage string        `envconfig:"SPEECH_DEFAULT_LANGUAGE" default:"hi"`
	Timeout         time.Duration `envconfig:"SPEECH_TIMEOUT" default:"60s"`
	LoadTimeout     time.Duration `envconfig:"SPEECH_LOAD_TIMEOUT" default:"120s"`
}

// FFmpegConfig holds configuration for the external audio transcoder
type FFmpegConfig struct {
	Binary  string        `envconfig:"FFMPEG_BINARY" default:"ffmpeg"`
	Timeout time.Duration `envconfig:"FFMPEG_TIMEOUT" default:"60s"`
}

// KafkaConfig holds configuration for the notify intent publisher
type KafkaConfig struct {
	Enabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_ALERT_TOPIC" default:"voicecare.alert-intents"`
}

// AlertsConfig holds escalation tuning
type AlertsConfig struct {
	// EscalationThreshold is the deterministic risk score at and above which
	// the pipeline escalates even without a model red flag.
	EscalationThreshold int `envconfig:"ALERT_ESCALATION_THRESHOLD" default:"70"`
	// DedupWindow suppresses repeat alerts for the same beneficiary and
	// alert type within the window.
	DedupWindow time.Duration `envconfig:"ALERT_DEDUP_WINDOW" default:"30m"`
}

// Load loads configuration from .env (when present) and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Environment == "production" && c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required in production")
	}
	if c.Alerts.EscalationThreshold < 0 || c.Alerts.EscalationThreshold > 100 {
		return fmt.Errorf("ALERT_ESCALATION_THRESHOLD must be in [0,100]")
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment != "production"
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
