package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
	Auth   AuthConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type StoreConfig struct {
	Backend       string
	MongoURI      string
	MongoDatabase string
	// CountCacheTTL of zero disables count caching.
	CountCacheTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

const devJWTSecret = "your-secret-key-change-this-in-production"

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cacheTTL, err := getEnvAsDuration("COUNT_CACHE_TTL", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Store: StoreConfig{
			Backend:       getEnv("STORE_BACKEND", BackendMongo),
			MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			MongoDatabase: getEnv("MONGODB_DATABASE", ""),
			CountCacheTTL: cacheTTL,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendMongo:
		if c.Store.MongoDatabase == "" {
			return errors.New("config: MONGODB_DATABASE is required for the mongo backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Auth.JWTSecret == "" {
		if c.Server.Environment == "production" {
			return errors.New("config: JWT_SECRET is required in production")
		}
		c.Auth.JWTSecret = devJWTSecret
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return value, nil
}
