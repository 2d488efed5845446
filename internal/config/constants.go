package config

// Constants defining default values for application configuration
const (
	DefaultDBPath    = "./tweets.db"
	DefaultStaticDir = "./static"
	DefaultFontPath  = "./assets/DejaVuSans.ttf"

	DefaultServerPort = 8000
	DefaultServerHost = "" // Empty string means all interfaces

	// DefaultMaxResults is the page size requested from the X API for
	// username and hashtag fetches.
	DefaultMaxResults = 20

	// MaxBearerTokens is the number of BEARER_TOKEN_<n> environment slots
	// read at startup. Empty slots are kept in the pool as-is; a client
	// built from an empty token fails at call time and rotation moves on.
	MaxBearerTokens = 4

	DefaultFetchEnabled = true

	DefaultAllowedOrigins = "http://localhost:5173,http://127.0.0.1:5173"

	DefaultLogLevel = "info"
)
