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
	"mikulas-chat/internal/logging"
	"mikulas-chat/internal/proxy"
	"mikulas-chat/internal/router"
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

	cfg := config.LoadProxy()
	logger := logging.New(cfg.Env, cfg.LogLevel, "chat-proxy")
	logger.Info().Str("version", version.Get().String()).Msg("Starting chat proxy")

	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg.OTLPEndpoint, "chat-proxy", cfg.Env)
	if err != nil {
		logger.Fatal().Err(err).Msg("Tracing initialization failed")
	}

	if cfg.BackendURL() == "" {
		logger.Warn().Str("variable", cfg.BackendURLEnv).Msg("Backend URL not set; relayed requests will fail until it is configured")
	}

	relay := proxy.NewRelay(telemetry.NewHTTPClient(), cfg.BackendURL, cfg.Timeout)
	proxyHandler := handlers.NewProxyHandler(relay)

	r := router.NewProxy(logger, proxyHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Timeout + 10*time.Second,
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

	logger.Info().Str("addr", "http://localhost:"+cfg.Port).Dur("timeout", cfg.Timeout).Msg("Chat proxy ready")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("Server error")
	}
	<-stopped
}
