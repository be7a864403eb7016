package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"docpilot/config"
	_ "docpilot/docs" // Swagger docs
	"docpilot/internal/assistant/usecase"
	"docpilot/internal/httpserver"
	"docpilot/internal/memory"
	"docpilot/internal/middleware"
	"docpilot/pkg/gdrive"
	"docpilot/pkg/llmprovider"
	"docpilot/pkg/log"
	"docpilot/pkg/openai"
)

// @title       DocPilot API
// @description Conversational document assistant with task routing and contextual vector memory.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting DocPilot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf(ctx, "Invalid configuration: %v", err)
	}

	// 3. OpenAI client: embeddings + generative completions
	openaiClient, err := openai.New(openai.Config{
		APIKey:          cfg.OpenAI.APIKey,
		BaseURL:         cfg.OpenAI.BaseURL,
		ChatModel:       cfg.OpenAI.ChatModel,
		CompletionModel: cfg.OpenAI.CompletionModel,
		EmbeddingModel:  cfg.OpenAI.EmbeddingModel,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize OpenAI client: %v", err)
	}

	// 4. Memory store behind a cached embedder
	embedder := memory.NewCachedEmbedder(openaiClient, cfg.Memory.EmbedCacheSize)
	store, err := memory.NewStore(ctx, cfg.Memory, embedder, logger)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize memory store (%s): %v", cfg.Memory.Backend, err)
	}
	logger.Infof(ctx, "Memory backend: %s", cfg.Memory.Backend)

	// 5. Chat provider chain with fallback
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize LLM providers: %v", err)
	}
	chatManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      cfg.LLM.RetryDelayDuration(),
		MaxTotalTimeout: cfg.LLM.MaxTotalTimeoutDuration(),
	}, logger)
	logger.Infof(ctx, "LLM providers initialized: %d", len(providers))

	// 6. Google Drive client (optional)
	var driveClient *gdrive.Client
	if cfg.GoogleDrive.CredentialsPath != "" {
		driveClient, err = gdrive.NewClientFromCredentialsFile(ctx, cfg.GoogleDrive.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Drive not available (optional): %v", err)
			driveClient = nil
		} else {
			logger.Info(ctx, "Google Drive initialized")
		}
	}

	// 7. Assistant use case
	var drive usecase.DriveFetcher
	if driveClient != nil {
		drive = driveClient
	}
	assistantUC := usecase.New(logger, chatManager, openaiClient, embedder, store, drive)

	// 8. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		AssistantUC: assistantUC,
		MemoryStore: store,
		Middleware:  middleware.New(logger, cfg.RateLimit),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
