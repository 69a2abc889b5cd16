package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/weather-display/internal/app"
	"github.com/Nazarious-ucu/weather-display/internal/config"
	"github.com/Nazarious-ucu/weather-display/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-display/pkg/logger"
)

// @title Weather Display API
// @version 1.0
// @description Location resolution and forecast acquisition for the weather display.
// @host localhost:8080
// @BasePath /api
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l := logger.NewLogger(cfg.LogsPath, "weather-display", logger.ParseLevel(cfg.LogLevel))
	metr := metrics.NewMetrics("weather_display")

	application := app.New(*cfg, l, metr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		l.Fatal().Err(err).Msg("application failed")
	}
}
