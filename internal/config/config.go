package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	SnapshotPath     string
	RedisURL         string
	SessionTTLHours  int
	CookieSecure     bool
	TaxRateBps       int
	WhatsAppAPIURL   string
	WhatsAppUsername string
	WhatsAppPassword string
	WebhookSecret    string
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		SnapshotPath:     getEnv("SNAPSHOT_PATH", "data/snapshot.json"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		SessionTTLHours:  getEnvAsInt("SESSION_TTL_HOURS", 168),
		CookieSecure:     getEnvAsBool("COOKIE_SECURE", false),
		TaxRateBps:       getEnvAsInt("TAX_RATE_BPS", 2100),
		WhatsAppAPIURL:   getEnv("WHATSAPP_API_URL", "http://localhost:3001"),
		WhatsAppUsername: getEnv("WHATSAPP_USERNAME", ""),
		WhatsAppPassword: getEnv("WHATSAPP_PASSWORD", ""),
		WebhookSecret:    getEnv("WHATSAPP_WEBHOOK_SECRET", "change-me"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
