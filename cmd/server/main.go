package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mikulas-chat/internal/config"
	"mikulas-chat/internal/handlers"
	"mikulas-chat/internal/llm"
	"mikulas-chat/internal/logging"
	"mikulas-chat/internal/router"
	"mikulas-chat/internal/services"
	"mikulas-chat/internal/telemetry"
	"mikulas-chat/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Print build information and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Get().Text())
		return
	}

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	logger := logging.New(cfg.Env, cfg.LogLevel, "chat-api")
	logger.Info().Str("version", version.Get().String()).Msg("Starting chat API")

	// ──── Step 2: Tracing ────
	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg.OTLPEndpoint, "chat-api", cfg.Env)
	if err != nil {
		logger.Fatal().Err(err).Msg("Tracing initialization failed")
	}

	// ──── Step 3: Initialize LLM Client ────
	var completer services.Completer
	switch cfg.Provider {
	case config.ProviderGemini:
		// Built once from the key present at startup; a key set later needs a restart.
		if key := cfg.APIKey(); key != "" {
			gemini, err := llm.NewGeminiClient(context.Background(), key, cfg.GeminiModel)
			if err != nil {
				logger.Fatal().Err(err).Msg("Gemini client initialization failed")
			}
			defer gemini.Close()
			completer = gemini
		}
	case config.ProviderOpenAI:
		completer = llm.NewOpenAIClient(telemetry.NewHTTPClient(), cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.APIKey)
	default:
		logger.Fatal().Str("provider", cfg.Provider).Msg("Unknown LLM_PROVIDER")
	}
	if cfg.APIKey() == "" {
		logger.Warn().Str("variable", cfg.APIKeyEnv).Msg("Provider credential not set; chat requests will fail until it is configured")
	}
	logger.Info().
		Str("provider", cfg.Provider).
		Dur("timeout", cfg.LLMTimeout).
		Msg("LLM client initialized")

	// ──── Step 4: Services & Handlers ────
	chatService := services.NewChatService(completer, cfg.APIKeyEnv, cfg.APIKey, cfg.LLMTimeout)
	chatHandler := handlers.NewChatHandler(chatService)

	// ──── Step 5: Start HTTP Server ────
	r := router.NewAPI(logger, chatHandler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Server shutdown failed")
		}
		if err := shutdownTracer(ctx); err != nil {
			logger.Error().Err(err).Msg("Tracer shutdown failed")
		}
	}()

	logger.Info().Str("addr", "http://localhost:"+cfg.Port).Msg("Chat API ready")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("Server error")
	}
	<-stopped
}
