// Package env provides small helpers for reading optional environment
// variables with defaults.
package env

import (
	"os"
	"strconv"
	"time"
)

// Get retrieves an environment variable and whether it exists
func Get(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	return value, exists
}

// GetOrDefault retrieves an environment variable or returns the default value if not set
func GetOrDefault(key, defaultValue string) string {
	if value, exists := Get(key); exists {
		return value
	}
	return defaultValue
}

// GetAsFloat retrieves an environment variable as a float with a default value
func GetAsFloat(key string, defaultValue float64) float64 {
	if value, exists := Get(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetAsDuration retrieves an environment variable as a duration with a default value
func GetAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := Get(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
