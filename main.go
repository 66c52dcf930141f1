package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/content"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/core"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/model"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/repo"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/server"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/support/autocomplete"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/support/orders"
	logx "github.com/aarush-luthra/smart-customer-support-chatbot/pkg/logger"
	pkgredis "github.com/aarush-luthra/smart-customer-support-chatbot/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// Conversation engine and transport
	Engine model.EngineConfig
	Server model.ServerConfig

	// Optional content document overriding the embedded default.
	ContentPath string `envconfig:"CONTENT_PATH"`
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.Environment})

	defs := content.Default()
	if cfg.ContentPath != "" {
		loaded, err := content.LoadFile(cfg.ContentPath)
		if err != nil {
			logx.Fatal().Err(err).Str("path", cfg.ContentPath).Msg("Failed to load content document")
		}
		defs = loaded
		logx.Info().Str("path", cfg.ContentPath).Msg("Loaded content document")
	}

	var transcripts model.TranscriptRepository = repo.NewMemoryTranscriptRepository()
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
		}
		defer rdb.Close()

		ttl, err := time.ParseDuration(cfg.Engine.TranscriptTTL)
		if err != nil {
			logx.Fatal().Err(err).Str("value", cfg.Engine.TranscriptTTL).Msg("Invalid TRANSCRIPT_TTL")
		}
		transcripts = repo.NewRedisTranscriptRepository(rdb, ttl)
		logx.Info().Msg("Transcripts backed by Redis")
	} else {
		logx.Info().Msg("No Redis URL configured, transcripts kept in memory")
	}

	eng, err := engine.Assemble(defs, engine.Options{
		HistoryCapacity: cfg.Engine.HistoryCapacity,
		SuggestionLimit: cfg.Engine.SuggestionLimit,
		Orders:          orders.NewStore(orders.SampleOrders()),
		Transcripts:     transcripts,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to assemble conversation engine")
	}

	trie := autocomplete.NewTrie()
	for _, w := range defs.Completions {
		trie.Insert(w)
	}

	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	server.New(eng, trie, cfg.Server).Register(router)

	logx.Info().
		Str("addr", cfg.Server.Addr).
		Int("states", eng.Stats().StateCount).
		Int("completions", trie.Len()).
		Msg("Support chatbot listening")

	if err := router.Run(cfg.Server.Addr); err != nil {
		logx.Fatal().Err(err).Msg("Server stopped")
	}
}
