// Package main is the entry point for the PDF Analysis API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/config"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/handlers"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/logger"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/router"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/services/analysis"
	pdfservice "github.com/Shimizu-Technology/pdf-analysis-api/internal/services/pdf"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/services/search"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/services/summary"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("🚀 PDF Analysis API starting",
		zap.String("version", Version),
		zap.String("port", cfg.Port),
		zap.String("gin_mode", cfg.GinMode))

	gin.SetMode(cfg.GinMode)

	// Step 2: Create Services
	extractor := pdfservice.NewExtractor(log)

	summarizer, err := summary.New(summary.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	}, log)
	if err != nil {
		log.Fatal("❌ Failed to create summary service", zap.Error(err))
	}
	if summarizer.IsConfigured() {
		log.Info("✅ Document analysis enabled", zap.String("model", summarizer.Model()))
	} else {
		log.Warn("⚠️  Document analysis disabled (set OPENAI_API_KEY to enable)")
	}

	searcher := search.New(search.Config{
		APIKey:   cfg.GoogleAPIKey,
		EngineID: cfg.GoogleSearchEngineID,
		BaseURL:  cfg.GoogleSearchURL,
		Timeout:  cfg.SearchTimeout,
	}, log)
	if cfg.SearchConfigured() {
		log.Info("✅ Web search enabled")
	} else {
		log.Warn("⚠️  Web search disabled (set GOOGLE_API_KEY and GOOGLE_SEARCH_ENGINE_ID to enable)")
	}

	svc := analysis.New(extractor, summarizer, searcher, log)

	// Step 3: Setup HTTP Router
	h := handlers.NewHandler(svc, log, Version, cfg.RedactErrorDetails)
	r := router.Setup(h, log, router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		StaticDir:      cfg.StaticDir,
	})

	// Step 4: Start the HTTP Server
	// WriteTimeout covers the slowest path: extraction plus a model call.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("🌐 Server listening", zap.String("url", "http://localhost:"+cfg.Port))
		log.Info("📖 API docs", zap.String("url", "http://localhost:"+cfg.Port+"/api/docs"))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Server failed", zap.Error(err))
		}
	}()

	// Step 5: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("🛑 Shutting down gracefully", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("⚠️  Server forced to shutdown", zap.Error(err))
	}

	log.Info("👋 Server stopped. Goodbye!")
}
