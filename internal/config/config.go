// Package config reads server and CLI configuration from the environment.
package config

import (
	"os"
	"strconv"
)

// Config holds runtime configuration for the outer surfaces. The engines
// themselves take all inputs as arguments and read nothing from here.
type Config struct {
	Port        int
	DatabaseURL string // empty disables the estimate archive
	LogLevel    string

	// Compliance threshold overrides.
	MarginFloorPercent float64
	MaxWaterPercent    float64
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	return Config{
		Port:               GetEnvInt("PORT", 8080),
		DatabaseURL:        GetEnv("DATABASE_URL", ""),
		LogLevel:           GetEnv("LOG_LEVEL", "info"),
		MarginFloorPercent: GetEnvFloat("MARGIN_FLOOR_PERCENT", 10),
		MaxWaterPercent:    GetEnvFloat("MAX_WATER_PERCENT", 30),
	}
}

// GetEnv returns an env var or a default.
func GetEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

// GetEnvInt returns an integer env var or a default.
func GetEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetEnvFloat returns a float env var or a default.
func GetEnvFloat(key string, defaultVal float64) float64 {
	if val, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
