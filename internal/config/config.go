package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the PantryPlanner API.
// Values come from config.yaml with environment variable overrides;
// secrets (database URL, JWT secret, Spoonacular key) must come from
// environment variables.
type Config struct {
	// Server configuration
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
	Env  string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	// CORSOrigins lists the allowed browser origins.
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173"`

	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string `yaml:"-" env:"DATABASE_URL"`

	// Auth configuration
	JWTSecret     string `yaml:"-" env:"JWT_SECRET"`
	TokenTTLHours int    `yaml:"token_ttl_hours" env:"TOKEN_TTL_HOURS" env-default:"24"`

	// Spoonacular recipe provider
	Spoonacular SpoonacularConfig `yaml:"spoonacular"`
}

// SpoonacularConfig holds settings for the external recipe provider.
type SpoonacularConfig struct {
	APIKey         string `yaml:"-" env:"SPOONACULAR_API_KEY"`
	BaseURL        string `yaml:"base_url" env:"SPOONACULAR_BASE_URL" env-default:"https://api.spoonacular.com"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"SPOONACULAR_TIMEOUT_SECONDS" env-default:"30"`
}

// Load reads configuration from config.yaml (if present) with environment
// variable overrides, then validates required secrets.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.Spoonacular.APIKey == "" {
		return nil, errors.New("SPOONACULAR_API_KEY is required")
	}

	return cfg, nil
}
