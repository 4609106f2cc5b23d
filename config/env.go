package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load environment variables and handle errors

func LoadEnv() {
	err := godotenv.Load()

	if err != nil {
		Logger.Warn("Error loading .env file, will use environment variables instead: ", err)
		// Don't call Fatal here - continue execution
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		Logger.Warnf("Invalid duration for %s (%q), using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		Logger.Warnf("Invalid number for %s (%q), using %v", key, raw, defaultValue)
		return defaultValue
	}
	return f
}

func getIntOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		Logger.Warnf("Invalid integer for %s (%q), using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
