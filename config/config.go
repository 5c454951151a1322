package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Firebase FirebaseConfig
	LLM      LLMConfig
	Storage  StorageConfig
	App      AppConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// Requests per minute per user on the AI endpoints; 0 disables the limiter.
	AIRateLimit int
}

type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig selects how bearer tokens are verified: "firebase", "jwt" or "header".
type AuthConfig struct {
	Mode      string
	JWTSecret string
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
}

type LLMConfig struct {
	BaseURL       string
	APIKey        string
	ConfigModel   string
	ScreenModel   string
	EditModel     string
	MaxTokens     int
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	MaxRetries    int
}

type StorageConfig struct {
	URL    string
	Key    string
	Bucket string
}

type AppConfig struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	Version        string
	EnforceCredits bool
	RunTimeout     time.Duration
}

type WorkerConfig struct {
	BackfillSchedule string
	BackfillLimit    int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			AIRateLimit:    getEnvAsInt("AI_RATE_LIMIT_PER_MINUTE", 20),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "screenforge"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Mode:      strings.ToLower(getEnv("AUTH_MODE", "firebase")),
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		},
		LLM: LLMConfig{
			BaseURL:       getEnv("LLM_BASE_URL", "https://openrouter.ai/api/v1"),
			APIKey:        getEnv("LLM_API_KEY", ""),
			ConfigModel:   getEnv("LLM_CONFIG_MODEL", "anthropic/claude-3-haiku"),
			ScreenModel:   getEnv("LLM_SCREEN_MODEL", "anthropic/claude-3-haiku"),
			EditModel:     getEnv("LLM_EDIT_MODEL", "openai/gpt-4o"),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 4000),
			Timeout:       getEnvAsDuration("LLM_TIMEOUT", 120*time.Second),
			RatePerSecond: getEnvAsFloat("LLM_RATE_PER_SECOND", 2),
			Burst:         getEnvAsInt("LLM_BURST", 4),
			MaxRetries:    getEnvAsInt("LLM_MAX_RETRIES", 3),
		},
		Storage: StorageConfig{
			URL:    getEnv("SUPABASE_URL", ""),
			Key:    getEnv("SUPABASE_SERVICE_KEY", ""),
			Bucket: getEnv("SUPABASE_STORAGE_BUCKET", "screenshots"),
		},
		App: AppConfig{
			ServiceName:    getEnv("APP_NAME", "screenforge-backend"),
			Environment:    getEnv("APP_ENV", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			EnforceCredits: getEnvAsBool("APP_ENFORCE_CREDITS", false),
			RunTimeout:     getEnvAsDuration("GENERATION_RUN_TIMEOUT", 15*time.Minute),
		},
		Worker: WorkerConfig{
			BackfillSchedule: getEnv("WORKER_BACKFILL_SCHEDULE", "0 0 3 * * *"),
			BackfillLimit:    getEnvAsInt("WORKER_BACKFILL_LIMIT", 50),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("DB_DSN or DB_HOST is required")
	}

	switch c.Auth.Mode {
	case "firebase":
		if c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when AUTH_MODE=firebase")
		}
	case "jwt":
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("AUTH_JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case "header":
		if c.App.Environment == "production" {
			return fmt.Errorf("AUTH_MODE=header is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.Auth.Mode)
	}

	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	if c.LLM.RatePerSecond < 0 {
		return fmt.Errorf("LLM_RATE_PER_SECOND must not be negative")
	}
	if c.LLM.Burst < 0 {
		return fmt.Errorf("LLM_BURST must not be negative")
	}
	if c.Server.AIRateLimit < 0 {
		return fmt.Errorf("AI_RATE_LIMIT_PER_MINUTE must not be negative")
	}

	return nil
}

// StorageEnabled reports whether screenshots can be pushed to object storage.
func (c *Config) StorageEnabled() bool {
	return c.Storage.URL != "" && c.Storage.Key != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
