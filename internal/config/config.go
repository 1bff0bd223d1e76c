package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Webhook  WebhookConfig
	Audit    AuditConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type WebhookConfig struct {
	// Path suffix the chat platform posts updates to. Kept secret so only
	// the platform can reach the endpoint.
	Path  string
	Token string
}

type AuditConfig struct {
	// Strict makes audit writes transactional with the mutation they
	// describe; a failed audit write rolls the mutation back. Off by
	// default: the trail is then written asynchronously and a broker or
	// database hiccup never blocks shift operations.
	Strict bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Webhook: WebhookConfig{
			Path:  getEnv("WEBHOOK_PATH", "/webhook"),
			Token: getEnv("WEBHOOK_TOKEN", ""),
		},
		Audit: AuditConfig{
			Strict: getEnvAsBool("AUDIT_STRICT", false),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
