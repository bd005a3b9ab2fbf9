package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for newscast
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Collector CollectorConfig
	LLM       LLMConfig
	S3        S3Config
	Kafka     KafkaConfig
	Schedule  ScheduleConfig
	Output    OutputConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
}

// AuthConfig lists the operator tokens accepted by the API
type AuthConfig struct {
	Tokens []string
}

// DatabaseConfig holds document store configuration.
// Driver is "postgres" or "memory".
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogSQL   bool
}

// GetDSN returns the postgres connection string
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig configures the collector's bloom filter. Empty Addr disables it.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	BloomKey   string
	BloomTTL   time.Duration
	Capacity   int
	ErrorRate  float64
	NonScaling bool
}

// CollectorConfig controls feed collection
type CollectorConfig struct {
	FeedsFile  string
	MaxPerFeed int
	Enrich     bool
	Workers    int
}

// LLMConfig selects and configures the generative text backend
type LLMConfig struct {
	Provider      string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	CohereKey     string
	CohereModel   string
	Validate      bool
}

// S3Config configures optional script uploads. Empty Bucket disables them.
type S3Config struct {
	Bucket       string
	Region       string
	Profile      string
	Prefix       string
	UsePathStyle bool
}

// KafkaConfig configures optional event publishing. Empty Brokers disables it.
type KafkaConfig struct {
	Brokers        []string
	GroupID        string
	GeneratedTopic string
	ConsumedTopic  string
}

// ScheduleConfig holds cron expressions for the in-process scheduler
type ScheduleConfig struct {
	Collect string
	Daily   string
}

// OutputConfig holds the local script directory
type OutputConfig struct {
	Dir string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// Result is fx.Out struct for providing config dependencies
type Result struct {
	fx.Out

	Config          *Config
	ServerConfig    *ServerConfig
	AuthConfig      *AuthConfig
	DatabaseConfig  *DatabaseConfig
	RedisConfig     *RedisConfig
	CollectorConfig *CollectorConfig
	LLMConfig       *LLMConfig
	LoggingConfig   *LoggingConfig
}

// Out returns fx-compatible config result
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:          cfg,
		ServerConfig:    &cfg.Server,
		AuthConfig:      &cfg.Auth,
		DatabaseConfig:  &cfg.Database,
		RedisConfig:     &cfg.Redis,
		CollectorConfig: &cfg.Collector,
		LLMConfig:       &cfg.LLM,
		LoggingConfig:   &cfg.Logging,
	}, nil
}

// Load loads configuration from environment variables (and .env if present)
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Auth: AuthConfig{
			Tokens: getEnvList("API_TOKENS"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "newscast"),
			Password: getEnv("DATABASE_PASSWORD", "newscast"),
			DBName:   getEnv("DATABASE_NAME", "newscast"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
			LogSQL:   getEnvBool("DATABASE_LOG_SQL", false),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASS", ""),
			DB:         getEnvInt("REDIS_DB", 0),
			BloomKey:   getEnv("BLOOM_KEY", "news:links:bloom"),
			BloomTTL:   getEnvDuration("BLOOM_TTL", 30*24*time.Hour),
			Capacity:   getEnvInt("BLOOM_CAPACITY", 100000),
			ErrorRate:  getEnvFloat("BLOOM_ERROR_RATE", 0.001),
			NonScaling: getEnvBool("BLOOM_NONSCALING", false),
		},
		Collector: CollectorConfig{
			FeedsFile:  getEnv("FEEDS_FILE", ""),
			MaxPerFeed: getEnvInt("COLLECTOR_MAX_PER_FEED", 0),
			Enrich:     getEnvBool("COLLECTOR_ENRICH", false),
			Workers:    getEnvInt("COLLECTOR_WORKERS", 5),
		},
		LLM: LLMConfig{
			Provider:      strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			CohereKey:     getEnv("COHERE_API_KEY", ""),
			CohereModel:   getEnv("COHERE_MODEL", "command-r-plus-08-2024"),
			Validate:      getEnvBool("SCRIPT_VALIDATE", true),
		},
		S3: S3Config{
			Bucket:       getEnv("S3_BUCKET", ""),
			Region:       getEnv("S3_REGION", ""),
			Profile:      getEnv("S3_PROFILE", ""),
			Prefix:       getEnv("S3_PREFIX", ""),
			UsePathStyle: getEnvBool("S3_USE_PATH_STYLE", false),
		},
		Kafka: KafkaConfig{
			Brokers:        getEnvList("KAFKA_BROKERS"),
			GroupID:        getEnv("KAFKA_GROUP_ID", "newscast-archiver"),
			GeneratedTopic: getEnv("KAFKA_TOPIC_GENERATED", "newscast.script.generated"),
			ConsumedTopic:  getEnv("KAFKA_TOPIC_CONSUMED", "newscast.script.consumed"),
		},
		Schedule: ScheduleConfig{
			Collect: getEnv("COLLECT_SCHEDULE", "0 * * * *"),
			Daily:   getEnv("DAILY_SCHEDULE", "0 6 * * *"),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", OutputDir),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DATABASE_HOST is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("DATABASE_NAME is required")
		}
	case "memory":
	default:
		return fmt.Errorf("STORE_DRIVER must be postgres or memory, got %q", c.Database.Driver)
	}

	switch c.LLM.Provider {
	case "openai", "cohere":
	default:
		return fmt.Errorf("LLM_PROVIDER must be openai or cohere, got %q", c.LLM.Provider)
	}

	if c.Collector.Workers <= 0 {
		return fmt.Errorf("COLLECTOR_WORKERS must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping empty entries
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
