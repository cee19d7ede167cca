package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// FallbackDisabled turns the bundled dataset fallback off.
const FallbackDisabled = "none"

type Config struct {
	Server  ServerConfig
	Sources SourcesConfig
	Redis   RedisConfig
	DB      DatabaseConfig
	Graph   GraphConfig
	App     AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
	// ExportRateLimit is the sustained export requests per second; 0 disables limiting.
	ExportRateLimit float64
	ExportBurst     int
}

type SourcesConfig struct {
	Dataset         []string
	News            []string
	Fallback        string
	FetchTimeout    time.Duration
	RefreshSchedule string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

type GraphConfig struct {
	Width        float64
	Height       float64
	MaxWidth     float64
	MaxHeight    float64
	TickInterval time.Duration
	SessionTTL   time.Duration
	MaxSessions  int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	fallback := getEnv("FALLBACK_DATASET", "embedded://countries.json")
	if strings.EqualFold(fallback, FallbackDisabled) {
		fallback = ""
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173"}),
			ExportRateLimit: getEnvAsFloat("EXPORT_RATE_LIMIT", 2),
			ExportBurst:     getEnvAsInt("EXPORT_BURST", 4),
		},
		Sources: SourcesConfig{
			Dataset:         getEnvAsList("DATASET_SOURCES", []string{"./public/fta/countries.json"}),
			News:            getEnvAsList("NEWS_SOURCES", []string{"./public/fta/seed-news.json"}),
			Fallback:        fallback,
			FetchTimeout:    getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
			RefreshSchedule: getEnv("REFRESH_SCHEDULE", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		DB: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 4),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 0),
		},
		Graph: GraphConfig{
			Width:        getEnvAsFloat("GRAPH_WIDTH", 960),
			Height:       getEnvAsFloat("GRAPH_HEIGHT", 520),
			MaxWidth:     getEnvAsFloat("GRAPH_MAX_WIDTH", 4096),
			MaxHeight:    getEnvAsFloat("GRAPH_MAX_HEIGHT", 4096),
			TickInterval: getEnvAsDuration("GRAPH_TICK_INTERVAL", 16*time.Millisecond),
			SessionTTL:   getEnvAsDuration("GRAPH_SESSION_TTL", 30*time.Minute),
			MaxSessions:  getEnvAsInt("GRAPH_MAX_SESSIONS", 256),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
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

	if len(c.Sources.Dataset) == 0 && c.Sources.Fallback == "" {
		return fmt.Errorf("DATASET_SOURCES or FALLBACK_DATASET is required")
	}

	if c.Graph.Width <= 0 || c.Graph.Height <= 0 {
		return fmt.Errorf("GRAPH_WIDTH and GRAPH_HEIGHT must be positive")
	}

	if c.Graph.MaxWidth < c.Graph.Width || c.Graph.MaxHeight < c.Graph.Height {
		return fmt.Errorf("GRAPH_MAX_WIDTH and GRAPH_MAX_HEIGHT must not be below the default canvas")
	}

	if c.Graph.MaxWidth*c.Graph.MaxHeight > 4096*4096 {
		return fmt.Errorf("GRAPH_MAX_WIDTH x GRAPH_MAX_HEIGHT must not exceed 4096x4096 pixels")
	}

	if c.Graph.SessionTTL < 0 || c.Graph.MaxSessions < 0 {
		return fmt.Errorf("GRAPH_SESSION_TTL and GRAPH_MAX_SESSIONS must not be negative")
	}

	if c.Server.ExportRateLimit < 0 {
		return fmt.Errorf("EXPORT_RATE_LIMIT must not be negative")
	}

	return nil
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
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("Invalid integer, using default")
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
		log.Warn().Str("key", key).Float64("default", defaultValue).Msg("Invalid number, using default")
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
		log.Warn().Str("key", key).Dur("default", defaultValue).Msg("Invalid duration, using default")
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma separated value, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
