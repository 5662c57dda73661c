package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port               string
	JWTSecret          string
	JWTExpiryMinutes   int
	RefreshExpiryHours int
	AdminJWTSecret     string
	AdminJWTExpiryMins int
	AdminUsername      string
	AdminPassword      string
	AdminEmail         string
	DBPath             string
	RedisAddr          string
	RedisDB            int
	RedisPassword      string
	LogLevel           string
	MaxMessageLength   int
}

func Load() Config {
	return Config{
		Port:               getEnv("PORT", "8001"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-super-secret-change-me"),
		JWTExpiryMinutes:   getEnvAsInt("JWT_EXPIRY_MINUTES", 30),
		RefreshExpiryHours: getEnvAsInt("REFRESH_EXPIRY_HOURS", 168),
		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", "dev-admin-secret-change-me"),
		AdminJWTExpiryMins: getEnvAsInt("ADMIN_JWT_EXPIRY_MINUTES", 30),
		AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", "admin12345"),
		AdminEmail:         getEnv("ADMIN_EMAIL", "admin@campusgo.local"),
		DBPath:             getEnv("DB_PATH", "campusgo.db"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MaxMessageLength:   getEnvAsInt("MAX_MESSAGE_LENGTH", 1000),
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
