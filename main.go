package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsagent/agent"
	"newsagent/api"
	"newsagent/config"
	"newsagent/news"
	"newsagent/storage"
	"newsagent/summarizer"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	if cfg.NewsAPIKey == "" {
		log.Println("Warning: NEWS_API_KEY not set; every request will get the couldn't-fetch reply")
	}
	if cfg.SummarizerAPIKey == "" {
		log.Println("Warning: HF_API_KEY not set; summaries fall back to truncated excerpts")
	}

	store, lister := initializeStorage(cfg)
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Storage close error: %v", err)
		}
	}()

	var articleStore agent.ArticleStore
	if store.Len() > 0 {
		articleStore = store
	} else {
		log.Println("No storage configured; articles will not be persisted")
	}

	newsAgent := agent.New(cfg, news.NewFetcher(cfg), summarizer.New(cfg), articleStore)
	r := api.NewRouter(api.Dependencies{
		Agent:      newsAgent,
		Lister:     lister,
		RequestLog: gin.Mode() == gin.DebugMode,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		log.Println("API endpoints available:")
		log.Println("  POST /webhook/")
		log.Println("  GET  /webhook/")
		log.Println("  GET  /health/")
		log.Println("  GET  /articles/")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

// initializeStorage opens every configured sink. A sink that fails to open is
// logged and skipped; the agent still answers without it.
func initializeStorage(cfg config.Config) (*storage.Multi, storage.Lister) {
	store := storage.NewMulti()
	var lister storage.Lister

	if cfg.SQLiteEnabled() {
		db, err := storage.NewSQLite(cfg.DBPath)
		if err != nil {
			log.Printf("Warning: failed to open SQLite at %s: %v (disabled)", cfg.DBPath, err)
		} else {
			store.Add("sqlite", db)
			lister = db
		}
	}

	if cfg.S3.Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		archive, err := storage.NewS3Archive(ctx, cfg.S3)
		cancel()
		if err != nil {
			log.Printf("Warning: failed to init S3 client: %v (uploads disabled)", err)
		} else {
			log.Printf("Archiving articles to S3 bucket %q with prefix %q", cfg.S3.Bucket, cfg.S3.Prefix)
			store.Add("s3", archive)
		}
	} else {
		log.Printf("S3 not configured; skipping uploads")
	}

	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		recent, err := storage.NewRedisRecent(ctx, cfg.RedisURL, cfg.RedisRecentMax)
		cancel()
		if err != nil {
			log.Printf("Warning: %v (recent list disabled)", err)
		} else {
			store.Add("redis", recent)
			if lister == nil {
				lister = recent
			}
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaLog, err := storage.NewKafkaLog(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Printf("Warning: %v (article log disabled)", err)
		} else {
			store.Add("kafka", kafkaLog)
		}
	}

	return store, lister
}
