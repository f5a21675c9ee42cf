package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tripkit/tripkit/internal/api"
	"github.com/tripkit/tripkit/internal/flow"
	"github.com/tripkit/tripkit/internal/genai"
	"github.com/tripkit/tripkit/internal/photo"
	"github.com/tripkit/tripkit/internal/recommend"
	"github.com/tripkit/tripkit/internal/store"
)

// Default configuration constants
const (
	// DefaultAPIAddr is the default listen address for the HTTP API
	DefaultAPIAddr = ":8080"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "tripkit.db"
)

func main() {
	// Parse command line flags with environment defaults
	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	// Initialize structured logger
	initializeLogger(*flags.debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build modules
	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	llm, err := genai.NewFromEnv(ctx)
	if err != nil {
		slog.Error("Failed to initialize generation client", "error", err)
		os.Exit(1)
	}

	chat := flow.NewChatAgent(st, llm)
	recommender := buildRecommender(llm, flags)
	photos := buildPhotoService(ctx, llm, flags)

	// Start the service
	slog.Info("Bootstrapping Trip Kit with configured modules",
		"api_addr", *flags.apiAddr,
		"dsn_set", *flags.dbDSN != "",
		"recommendations", recommender != nil,
		"image_generation", photos != nil)
	server := api.NewServer(chat, recommender, photos)
	if err := server.Run(ctx, *flags.apiAddr); err != nil {
		slog.Error("Trip Kit failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("Trip Kit exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL   string
	RedisURL      string
	APIAddr       string
	MapsKey       string
	ImageProvider string
	Debug         bool
}

// Flags holds command line flag values
type Flags struct {
	dbDSN         *string
	redisURL      *string
	apiAddr       *string
	mapsKey       *string
	imageProvider *string
	debug         *bool
}

// initializeLogger sets up structured logging
func initializeLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		APIAddr:       os.Getenv("API_ADDR"),
		MapsKey:       os.Getenv("GOOGLE_MAPS_API_KEY"),
		ImageProvider: os.Getenv("IMAGE_PROVIDER"),
		Debug:         os.Getenv("DEBUG") == "true",
	}
	if config.APIAddr == "" {
		config.APIAddr = DefaultAPIAddr
	}
	if config.ImageProvider == "" {
		config.ImageProvider = "openai"
	}
	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		dbDSN:         flag.String("db-dsn", config.DatabaseURL, "database DSN for conversation storage (overrides $DATABASE_URL)"),
		redisURL:      flag.String("redis-url", config.RedisURL, "Redis URL for conversation storage (overrides $REDIS_URL)"),
		apiAddr:       flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		mapsKey:       flag.String("maps-api-key", config.MapsKey, "Google Maps API key for place enrichment (overrides $GOOGLE_MAPS_API_KEY)"),
		imageProvider: flag.String("image-provider", config.ImageProvider, "image generation provider, openai or gemini (overrides $IMAGE_PROVIDER)"),
		debug:         flag.Bool("debug", config.Debug, "enable debug logging (overrides $DEBUG)"),
	}
	flag.Parse()
	return flags
}

// buildStore selects a storage backend from the configured DSNs. Redis wins
// over a SQL DSN when both are set; with neither, conversations live in
// memory and do not survive a restart.
func buildStore(flags Flags) (store.Store, error) {
	switch {
	case *flags.redisURL != "":
		slog.Debug("Configuring Redis store", "dsn_set", true)
		return store.NewRedisStore(store.WithDSN(*flags.redisURL))
	case strings.Contains(*flags.dbDSN, "postgres://") || strings.Contains(*flags.dbDSN, "host="):
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store", "dsn_set", true)
		return store.NewPostgresStore(store.WithDSN(*flags.dbDSN))
	case *flags.dbDSN != "":
		slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", *flags.dbDSN)
		return store.NewSQLiteStore(store.WithDSN(*flags.dbDSN))
	default:
		slog.Debug("No database DSN provided, using in-memory store")
		return store.NewInMemoryStore(), nil
	}
}

// buildRecommender wires the recommendation service, with Google Places
// enrichment when an API key is configured.
func buildRecommender(llm genai.ClientInterface, flags Flags) *recommend.Service {
	var places recommend.PlaceLookup
	if *flags.mapsKey != "" {
		client, err := recommend.NewPlacesClient(*flags.mapsKey)
		if err != nil {
			slog.Warn("Failed to initialize Places client, recommendations will not be enriched", "error", err)
		} else {
			places = client
		}
	}
	return recommend.NewService(llm, places)
}

// buildPhotoService wires image generation. A missing provider key disables
// the generate endpoint rather than failing startup.
func buildPhotoService(ctx context.Context, llm genai.ClientInterface, flags Flags) *photo.Service {
	var provider photo.ImageProvider
	var err error
	switch *flags.imageProvider {
	case "gemini":
		provider, err = photo.NewGeminiImageProvider(ctx, "")
	default:
		provider, err = photo.NewOpenAIImageProvider()
	}
	if err != nil {
		slog.Warn("Image generation disabled", "provider", *flags.imageProvider, "error", err)
		return nil
	}
	return photo.NewService(provider, photo.NewTranslator(llm))
}
