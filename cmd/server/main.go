package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pjtries/VeritasAI/internal/config"
	"github.com/pjtries/VeritasAI/internal/forensics"
	"github.com/pjtries/VeritasAI/internal/gemini"
	"github.com/pjtries/VeritasAI/internal/groq"
	"github.com/pjtries/VeritasAI/internal/handler"
	"github.com/pjtries/VeritasAI/internal/llm"
	"github.com/pjtries/VeritasAI/internal/openrouter"
	"github.com/pjtries/VeritasAI/internal/pipeline"
	"github.com/pjtries/VeritasAI/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting VERITAS Reasoning Engine...")

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Build the reasoning-provider chain in configured priority order.
	// A provider with a missing key fails construction and is skipped:
	// the chain simply falls through to the next fallback.
	var providers []llm.Provider
	for _, pc := range cfg.Providers {
		client, err := buildProvider(pc, logger)
		if err != nil {
			logger.Warn("Provider unavailable, skipping",
				zap.String("type", string(pc.Type)),
				zap.Error(err))
			continue
		}
		providers = append(providers, llm.NewRateLimited(client, pc.RequestsPerMinute, logger))
	}

	chain := llm.NewChain(providers, logger)
	defer chain.Close()

	logger.Info("Reasoning chain assembled", zap.Int("provider_count", len(providers)))

	// Initialize scan store
	os.MkdirAll("./data", 0755)

	repo, err := repository.NewScanRepository(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to initialize scan repository", zap.Error(err))
	}
	defer repo.Close()

	// Initialize pipeline with the simulated forensic stand-ins
	scanPipeline := pipeline.New(
		chain,
		repo,
		forensics.NewSimulatedAnalyzer(),
		forensics.NewSimulatedReconstructor(),
		forensics.NewSimulatedExtractor(),
		logger,
	)

	// Initialize HTTP handler
	apiHandler := handler.NewHandler(scanPipeline, logger)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register routes
	apiHandler.RegisterRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("Server starting", zap.String("address", serverAddr))

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("VERITAS Reasoning Engine is running",
		zap.String("port", cfg.Server.Port),
		zap.Int("providers", len(providers)))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// buildProvider constructs one reasoning provider from its config entry.
func buildProvider(pc llm.ProviderConfig, logger *zap.Logger) (llm.Provider, error) {
	switch pc.Type {
	case llm.ProviderGemini:
		return gemini.NewClient(gemini.Config{
			APIKey:     pc.APIKey,
			ModelName:  pc.ModelName,
			MaxRetries: pc.MaxRetries,
			RetryDelay: pc.RetryDelay,
		}, logger)
	case llm.ProviderGroq:
		return groq.NewClient(groq.Config{
			APIKey:     pc.APIKey,
			ModelName:  pc.ModelName,
			MaxRetries: pc.MaxRetries,
			RetryDelay: pc.RetryDelay,
		}, logger)
	case llm.ProviderOpenRouter:
		return openrouter.NewClient(openrouter.Config{
			APIKey:     pc.APIKey,
			ModelName:  pc.ModelName,
			MaxRetries: pc.MaxRetries,
			RetryDelay: pc.RetryDelay,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", pc.Type)
	}
}
