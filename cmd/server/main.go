package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "lumina/docs" // swagger docs

	"lumina/internal/app"
	"lumina/internal/backend"
	"lumina/internal/config"
	"lumina/internal/logging"
)

// @title Lumina Portfolio API
// @version 1.0
// @description Portfolio content, contact inquiries, image uploads and admin sessions.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("info", "development")
		bootLog.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("mode", string(cfg.Backend.Mode)).Msg("backend init")
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.Warn().Err(err).Msg("backend close")
		}
	}()
	if b.Mode == config.ModeMock {
		log.Warn().Msg("running in mock mode: data is sample data kept in memory")
	}

	e, err := app.New(cfg, log, b)
	if err != nil {
		log.Fatal().Err(err).Msg("server init")
	}

	log.Info().Str("url", swaggerURL(cfg.SwaggerHost, cfg.ServerPort)).Msg("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Str("mode", string(b.Mode)).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server start")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}

// SwaggerHost may already include scheme (http:// or https://)
func swaggerURL(host, port string) string {
	switch {
	case host == "":
		return "http://localhost:" + port + "/swagger/index.html"
	case strings.HasPrefix(host, "http://"), strings.HasPrefix(host, "https://"):
		return host + "/swagger/index.html"
	default:
		return "http://" + host + "/swagger/index.html"
	}
}
