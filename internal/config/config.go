package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI        string
	DBName          string
	SessionSecret   string
	SessionTTL      time.Duration
	ResendAPIKey    string
	ResendFromEmail string
	BaseURL         string
	Port            string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:        getEnvOrDefault("MONGO_URI", ""),
		DBName:          getEnvOrDefault("DB_NAME", "ecommerceDB"),
		SessionSecret:   getEnvOrDefault("SESSION_SECRET", "dev-secret"),
		SessionTTL:      getDurationEnv("SESSION_TTL", 15, time.Minute),
		ResendAPIKey:    getEnvOrDefault("RESEND_API_KEY", ""),
		ResendFromEmail: getEnvOrDefault("RESEND_FROM_EMAIL", ""),
		BaseURL:         getEnvOrDefault("BASE_URL", "http://localhost:3000"),
		Port:            getEnvOrDefault("PORT", "3000"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
