package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds environment-based settings.
type Config struct {
	Environment    string
	ServerAddress  string
	DatabaseURL    string
	MigrationsPath string
	JWTSecret      string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string

	CredentialsDir string
	UseSpaces      bool
	SpacesEndpoint string
	SpacesRegion   string
	SpacesBucket   string
	SpacesAccess   string
	SpacesSecret   string
}

// Load reads configuration from a .env file (when present) and the
// process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Environment:    os.Getenv("APP_ENV"),
		ServerAddress:  os.Getenv("SERVER_ADDRESS"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		JWTSecret:      os.Getenv("JWT_SECRET"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		CredentialsDir: os.Getenv("CREDENTIALS_DIR"),
		UseSpaces:      os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint: os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:   os.Getenv("SPACES_REGION"),
		SpacesBucket:   os.Getenv("SPACES_BUCKET"),
		SpacesAccess:   os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecret:   os.Getenv("SPACES_SECRET_KEY"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ServerAddress == "" {
		cfg.ServerAddress = ":8080"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "./migrations"
	}
	if cfg.CredentialsDir == "" {
		cfg.CredentialsDir = "./credentials"
	}
	return cfg, nil
}
