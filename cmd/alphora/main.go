package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alphora/alphora/internal/actions"
	"github.com/alphora/alphora/internal/agent"
	"github.com/alphora/alphora/internal/api"
	"github.com/alphora/alphora/internal/cache"
	"github.com/alphora/alphora/internal/classify"
	"github.com/alphora/alphora/internal/config"
	"github.com/alphora/alphora/internal/events"
	"github.com/alphora/alphora/internal/psa"
	"github.com/alphora/alphora/internal/rag"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Configuration file path")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("Alphora version %s (commit: %s)\n", version, commit)
		return
	}
	if *configFile != "" {
		os.Setenv("CONFIG_PATH", *configFile)
	}

	log.Printf("Starting Alphora v%s", version)

	cfg := config.Load()
	if err := validateCatalogs(); err != nil {
		log.Fatalf("Catalog validation failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Postgres is optional; without it both the knowledge base and the
	// ticket store run in memory.
	var pool *pgxpool.Pool
	if cfg.Database.Enabled {
		var err error
		pool, err = pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			log.Printf("Failed to connect to postgres: %v", err)
			pool = nil
		} else if err := pool.Ping(ctx); err != nil {
			log.Printf("Failed to ping postgres: %v", err)
			pool.Close()
			pool = nil
		}
	}
	if pool != nil {
		defer pool.Close()
	}

	embedder := rag.NewEmbeddingProvider(rag.EmbeddingConfig{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		Model:          cfg.OpenAI.EmbeddingModel,
		Dimension:      cfg.OpenAI.EmbeddingDimension,
		RequestTimeout: cfg.OpenAI.RequestTimeout,
		RequestsPerSec: cfg.OpenAI.RequestsPerSec,
	})

	var backend rag.DocumentBackend
	if pool != nil {
		pg, err := rag.NewPgVectorBackend(ctx, pool, cfg.OpenAI.EmbeddingDimension)
		if err != nil {
			log.Printf("Vector index unavailable: %v", err)
		} else {
			backend = pg
		}
	}
	store := rag.NewVectorStore(embedder, backend, rag.NewMemoryBackend())

	if cfg.Knowledge.SeedOnStart {
		if err := rag.SeedKnowledgeBase(ctx, store); err != nil {
			log.Fatalf("Failed to seed knowledge base: %v", err)
		}
	}

	var classifier rag.Classifier
	if cfg.Classifier.Strategy == "llm" && cfg.OpenAI.APIKey != "" {
		log.Println("Using LLM classifier strategy")
		classifier = classify.NewLLMClassifier(classify.LLMConfig{
			APIKey:         cfg.OpenAI.APIKey,
			BaseURL:        cfg.OpenAI.BaseURL,
			Model:          cfg.OpenAI.ChatModel,
			RequestTimeout: cfg.OpenAI.RequestTimeout,
		})
	} else {
		log.Println("Using keyword classifier strategy")
		classifier = classify.NewKeywordClassifier()
	}

	orchestrator := rag.NewOrchestrator(store, classifier, actions.Catalog{}, cfg.Knowledge.SearchLimit)
	processor := agent.NewProcessor(orchestrator, agent.NewPlanner(), agent.NewEscalator())

	var ticketStore psa.TicketStore
	if pool != nil {
		pgStore, err := psa.NewPostgresStore(ctx, pool)
		if err != nil {
			log.Fatalf("Failed to initialize ticket store: %v", err)
		}
		ticketStore = pgStore
	} else {
		log.Println("Using in-memory ticket store")
		ticketStore = psa.NewMemoryStore()
	}

	var publisher agent.Publisher
	if cfg.Kafka.Enabled {
		producer, err := events.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatalf("Failed to initialize kafka producer: %v", err)
		}
		defer producer.Close()
		publisher = producer
	}

	var analysisCache agent.AnalysisCache
	if cfg.Redis.Enabled {
		redisCache := cache.NewAnalysisCache(cfg.Redis)
		defer redisCache.Close()
		analysisCache = redisCache
	}

	triage := agent.New(processor, ticketStore, publisher, analysisCache)
	server := api.NewServer(cfg.Server, psa.NewService(ticketStore), triage, store)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	waitForShutdown(cancel, server)
}

func validateCatalogs() error {
	if err := classify.ValidateKeywordTable(); err != nil {
		return err
	}
	if err := rag.ValidateCategoryMap(); err != nil {
		return err
	}
	if err := actions.ValidateCatalogs(); err != nil {
		return err
	}
	if err := agent.ValidatePlannerTables(); err != nil {
		return err
	}
	return agent.ValidateEscalationCatalog()
}

func waitForShutdown(cancel context.CancelFunc, server *api.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	cancel()
	log.Println("Alphora stopped")
}
