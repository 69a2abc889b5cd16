package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/wagslane/go-rabbitmq"

	"github.com/Nazarious-ucu/weather-display/internal/config"
	"github.com/Nazarious-ucu/weather-display/internal/consumer"
	"github.com/Nazarious-ucu/weather-display/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-display/pkg/logger"
)

const readTimeout = 5 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l := logger.NewLogger("", "state-listener", logger.ParseLevel(cfg.LogLevel))
	m := metrics.NewMetrics("state_listener")

	conn, err := rabbitmq.NewConn(cfg.RabbitMQ.Address(), rabbitmq.WithConnectionOptionsLogging)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer func() {
		if err := conn.Close(); err != nil {
			l.Error().Err(err).Msg("RabbitMQ close error")
		}
	}()

	stateConsumer, err := consumer.NewStateConsumer(conn)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to create state consumer")
	}
	defer stateConsumer.Close()

	listener := consumer.NewStateListener(l, m)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := stateConsumer.Run(listener.Receive); err != nil {
			l.Error().Err(err).Msg("state consumer stopped")
			stop()
		}
	}()

	metricsSrv := &http.Server{Addr: cfg.ListenerMetricsAddr, Handler: m.Handler(), ReadHeaderTimeout: readTimeout}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error().Err(err).Msg("metrics server error")
		}
	}()

	l.Info().Str("metrics_addr", cfg.ListenerMetricsAddr).Msg("listening for state events")
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("metrics server shutdown error")
	}
	l.Info().Msg("state listener stopped")
}
