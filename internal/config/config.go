package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database     DatabaseConfig
	Redis        RedisConfig
	Server       ServerConfig
	LLM          LLMConfig
	Embedding    EmbeddingConfig
	QuestionBank QuestionBankConfig
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds the session cache settings.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
	CacheTTL time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// LLMConfig holds the chat-completion endpoint settings for the interviewer.
type LLMConfig struct {
	APIKey      string //nolint:gosec // G117: API credential config
	BaseURL     string
	Model       string
	Temperature float64
}

// EmbeddingConfig holds the OpenAI-compatible embeddings endpoint settings
// used by the question bank.
type EmbeddingConfig struct {
	APIKey  string //nolint:gosec // G117: API credential config
	BaseURL string
	Model   string
}

// QuestionBankConfig holds vector-store settings for the question corpus.
type QuestionBankConfig struct {
	Path       string
	Collection string
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only. In production,
// API keys and the DB password must be set explicitly.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("VETTA_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("VETTA_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("VETTA_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cacheTTL, err := getEnvDuration("VETTA_REDIS_CACHE_TTL", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("VETTA_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("VETTA_SERVER_WRITE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	temperature, err := getEnvFloat("VETTA_LLM_TEMPERATURE", 0.3)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("VETTA_CORS_ORIGINS", []string{"http://localhost:5173"})

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("VETTA_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("VETTA_DB_USER", "vetta"),
			Password: getEnv("VETTA_DB_PASSWORD", ""),
			DBName:   getEnv("VETTA_DB_NAME", "vetta_dev"),
			SSLMode:  getEnv("VETTA_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("VETTA_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("VETTA_REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheTTL: cacheTTL,
		},
		Server: ServerConfig{
			Addr:         getEnv("VETTA_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  corsOrigins,
		},
		LLM: LLMConfig{
			APIKey:      getEnv("VETTA_LLM_API_KEY", ""),
			BaseURL:     getEnv("VETTA_LLM_BASE_URL", "https://api.deepseek.com/v1"),
			Model:       getEnv("VETTA_LLM_MODEL", "deepseek-chat"),
			Temperature: temperature,
		},
		Embedding: EmbeddingConfig{
			APIKey:  getEnv("VETTA_EMBEDDING_API_KEY", ""),
			BaseURL: getEnv("VETTA_EMBEDDING_BASE_URL", "https://dashscope.aliyuncs.com/compatible-mode/v1"),
			Model:   getEnv("VETTA_EMBEDDING_MODEL", "text-embedding-v4"),
		},
		QuestionBank: QuestionBankConfig{
			Path:       getEnv("VETTA_QUESTION_BANK_PATH", "./storage/questionbank"),
			Collection: getEnv("VETTA_QUESTION_BANK_COLLECTION", "interview_questions"),
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	if c.LLM.APIKey == "" {
		return errors.New("VETTA_LLM_API_KEY is required")
	}
	if c.Embedding.APIKey == "" {
		return errors.New("VETTA_EMBEDDING_API_KEY is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("VETTA_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("VETTA_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("VETTA_REDIS_CACHE_TTL must be positive, got %s", c.Redis.CacheTTL)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("VETTA_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("VETTA_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("VETTA_LLM_TEMPERATURE must be 0-2, got %g", c.LLM.Temperature)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
