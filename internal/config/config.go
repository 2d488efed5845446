package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	// File paths
	DBPath    string
	StaticDir string
	FontPath  string

	// Server settings
	ServerHost     string
	ServerPort     int
	AllowedOrigins []string

	// Fetch settings
	FetchEnabled bool
	MaxResults   int
	BearerTokens []string

	// Log settings
	LogLevel zerolog.Level
}

// FromEnv returns a configuration populated from environment variables,
// falling back to hardcoded defaults. Flags may override individual fields
// afterwards.
func FromEnv() *Config {
	logLevel, _ := zerolog.ParseLevel(DefaultLogLevel)

	return &Config{
		DBPath:         GetEnvString("TWEETSENS_DB_PATH", DefaultDBPath),
		StaticDir:      GetEnvString("TWEETSENS_STATIC_DIR", DefaultStaticDir),
		FontPath:       GetEnvString("TWEETSENS_FONT_PATH", DefaultFontPath),
		ServerHost:     GetEnvString("TWEETSENS_HOST", DefaultServerHost),
		ServerPort:     GetEnvInt("TWEETSENS_PORT", DefaultServerPort),
		AllowedOrigins: splitOrigins(GetEnvString("TWEETSENS_ALLOWED_ORIGINS", DefaultAllowedOrigins)),
		FetchEnabled:   GetEnvBool("FETCH_ENABLED", DefaultFetchEnabled),
		MaxResults:     GetEnvInt("TWEETSENS_MAX_RESULTS", DefaultMaxResults),
		BearerTokens:   BearerTokensFromEnv(),
		LogLevel:       GetEnvLogLevel("TWEETSENS_LOG_LEVEL", logLevel),
	}
}

// ListenAddr returns the formatted listen address for the HTTP server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
