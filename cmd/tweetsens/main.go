package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tweetsens/backend/internal/config"
	"tweetsens/backend/internal/database"
	"tweetsens/backend/internal/fetch"
	"tweetsens/backend/internal/sentiment"
	"tweetsens/backend/internal/server"
	"tweetsens/backend/internal/server/api"
	"tweetsens/backend/internal/server/storage"
	"tweetsens/backend/internal/source"
	"tweetsens/backend/internal/visualize"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

func usage() {
	fmt.Println("Usage: tweetsens [command] [options]")
	fmt.Println("Commands: server, fetch")
	fmt.Println("\nFor command-specific options, use: tweetsens [command] -h")
}

func main() {
	config.LoadDotEnv(".env")
	cfg := config.FromEnv()

	serverCmd := flag.NewFlagSet("server", flag.ExitOnError)
	serverCmd.StringVar(&cfg.DBPath, "db", cfg.DBPath,
		"Path to the SQLite database file (env: TWEETSENS_DB_PATH)")
	serverCmd.StringVar(&cfg.ServerHost, "host", cfg.ServerHost,
		"Host to bind the server to (env: TWEETSENS_HOST)")
	serverCmd.IntVar(&cfg.ServerPort, "port", cfg.ServerPort,
		"Port to listen on (env: TWEETSENS_PORT)")
	serverCmd.StringVar(&cfg.StaticDir, "static", cfg.StaticDir,
		"Directory for generated visualization images (env: TWEETSENS_STATIC_DIR)")
	serverCmd.BoolVar(&cfg.FetchEnabled, "fetch-enabled", cfg.FetchEnabled,
		"Enable the /fetch endpoints (env: FETCH_ENABLED)")

	var serverLogLevelStr string
	serverCmd.StringVar(&serverLogLevelStr, "log-level", cfg.LogLevel.String(),
		"Log level: debug, info, warn, error (env: TWEETSENS_LOG_LEVEL)")

	fetchCmd := flag.NewFlagSet("fetch", flag.ExitOnError)
	fetchCmd.StringVar(&cfg.DBPath, "db", cfg.DBPath,
		"Path to the SQLite database file (env: TWEETSENS_DB_PATH)")

	var fetchUsername, fetchHashtag, fetchID string
	fetchCmd.StringVar(&fetchUsername, "username", "", "Fetch latest tweets of this author")
	fetchCmd.StringVar(&fetchHashtag, "hashtag", "", "Fetch recent tweets with this hashtag (without '#')")
	fetchCmd.StringVar(&fetchID, "id", "", "Fetch a single tweet by id")

	var fetchLogLevelStr string
	fetchCmd.StringVar(&fetchLogLevelStr, "log-level", cfg.LogLevel.String(),
		"Log level: debug, info, warn, error (env: TWEETSENS_LOG_LEVEL)")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "server":
		serverCmd.Parse(os.Args[2:])

		if level, err := zerolog.ParseLevel(serverLogLevelStr); err == nil {
			cfg.LogLevel = level
		}
		zerolog.SetGlobalLevel(cfg.LogLevel)

		if err := runServer(cfg); err != nil {
			log.Error().Err(err).Msg("Server failed")
			os.Exit(1)
		}

	case "fetch":
		fetchCmd.Parse(os.Args[2:])

		if level, err := zerolog.ParseLevel(fetchLogLevelStr); err == nil {
			cfg.LogLevel = level
		}
		zerolog.SetGlobalLevel(cfg.LogLevel)

		if err := runFetch(cfg, fetchUsername, fetchHashtag, fetchID); err != nil {
			log.Error().Err(err).Msg("Fetch failed")
			os.Exit(1)
		}

	case "-h", "--help", "help":
		usage()
		os.Exit(0)

	default:
		log.Error().Str("command", os.Args[1]).Msg("Unknown command")
		usage()
		os.Exit(1)
	}
}

// newOrchestrator wires the ingestion pipeline against the live X API.
func newOrchestrator(cfg *config.Config, repo storage.TweetRepository) *fetch.Orchestrator {
	pool := fetch.NewPool(cfg.BearerTokens, source.NewHTTPClientFactory(""))
	classifier := sentiment.NewVADERClassifier()
	return fetch.NewOrchestrator(pool, repo, classifier, cfg.MaxResults)
}

// runServer starts the HTTP API server with the provided configuration.
// The database is opened read-write since the fetch endpoints commit new
// records.
func runServer(cfg *config.Config) error {
	db, err := database.NewDB(database.NewConfig(cfg.DBPath))
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("Failed to initialize database")
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := storage.NewRepository(db)

	renderer, err := visualize.NewRenderer(cfg.StaticDir, cfg.FontPath)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	handler := api.NewHandler(repo, newOrchestrator(cfg, repo), renderer, cfg.FetchEnabled)

	if !cfg.FetchEnabled {
		log.Warn().Msg("Fetch endpoints are disabled, serving stored tweets only")
	}

	return server.Run(handler, cfg.StaticDir, cfg.ListenAddr(), cfg.AllowedOrigins, log.Logger)
}

// runFetch performs a one-shot ingestion from the command line, going
// through the same orchestrator path as the fetch endpoints.
func runFetch(cfg *config.Config, username, hashtag, tweetID string) error {
	db, err := database.NewDB(database.NewConfig(cfg.DBPath))
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("Failed to initialize database")
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	orchestrator := newOrchestrator(cfg, storage.NewRepository(db))
	ctx := context.Background()

	var stored int
	switch {
	case username != "":
		stored, err = orchestrator.ByUsername(ctx, username)
	case hashtag != "":
		stored, err = orchestrator.ByHashtag(ctx, hashtag)
	case tweetID != "":
		stored, err = orchestrator.ByID(ctx, tweetID)
	default:
		return fmt.Errorf("one of -username, -hashtag or -id is required")
	}
	if err != nil {
		return err
	}

	log.Info().Int("stored", stored).Msg("Fetch completed")
	return nil
}
