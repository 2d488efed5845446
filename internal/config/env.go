package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
)

// LoadDotEnv loads a .env file into the process environment if one exists.
// Missing files are not an error; the OS environment is used as-is.
func LoadDotEnv(path string) {
	if err := gotenv.Load(path); err != nil {
		log.Debug().Str("path", path).Msg("No .env file found, using OS environment")
	}
}

// GetEnvString retrieves a string from environment variables or returns the default value.
func GetEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvInt retrieves an integer from environment variables or returns the default value.
func GetEnvInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}

// GetEnvBool retrieves a boolean from environment variables or returns the default value.
func GetEnvBool(key string, defaultValue bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}

// GetEnvLogLevel retrieves a log level from environment variables or returns the default value.
func GetEnvLogLevel(key string, defaultValue zerolog.Level) zerolog.Level {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}

	level, err := zerolog.ParseLevel(valStr)
	if err != nil {
		return defaultValue
	}
	return level
}

// BearerTokensFromEnv reads the ordered bearer token slots BEARER_TOKEN_1
// through BEARER_TOKEN_<MaxBearerTokens>. The slice always has
// MaxBearerTokens entries; absent or empty slots stay in place so the pool
// order matches the declared order.
func BearerTokensFromEnv() []string {
	tokens := make([]string, 0, MaxBearerTokens)
	for i := 1; i <= MaxBearerTokens; i++ {
		tokens = append(tokens, os.Getenv(fmt.Sprintf("BEARER_TOKEN_%d", i)))
	}
	return tokens
}
