package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/contact900/weather-route-visualizer/internal/adapter/http"
	kafkaadapter "github.com/contact900/weather-route-visualizer/internal/adapter/kafka"
	"github.com/contact900/weather-route-visualizer/internal/adapter/nominatim"
	"github.com/contact900/weather-route-visualizer/internal/adapter/openrouteservice"
	"github.com/contact900/weather-route-visualizer/internal/adapter/openweather"
	"github.com/contact900/weather-route-visualizer/internal/config"
	"github.com/contact900/weather-route-visualizer/internal/observability"
	"github.com/contact900/weather-route-visualizer/internal/pipeline"
	"github.com/contact900/weather-route-visualizer/internal/throttle"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ors := openrouteservice.NewClient(cfg.ORSBaseURL, cfg.UpstreamTimeout, logger, metrics)
	osm := nominatim.NewClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.UpstreamTimeout,
		throttle.NewGate(cfg.NominatimInterval, 1, clock), logger, metrics)
	owm := openweather.NewClient(cfg.OpenWeatherBaseURL, cfg.UpstreamTimeout,
		throttle.NewGate(cfg.OpenWeatherInterval, cfg.OpenWeatherBurst, clock), logger, metrics)

	resolver := pipeline.NewResolver(ors, osm, logger, metrics)
	router := pipeline.NewRouter(ors, pipeline.NewNamer(osm, clock, logger), logger)
	fetcher := pipeline.NewWeatherFetcher(owm, clock, logger)

	// Advisory publishing is feature-flagged via KAFKA_ENABLED.
	var (
		publisher pipeline.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("advisory publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAdvisoryTopic)
	} else {
		logger.Info("advisory publishing disabled")
	}

	keys := pipeline.Keys{Route: cfg.ORSAPIKey, Weather: cfg.OpenWeatherAPIKey}
	if !cfg.HasProviderKeys() {
		logger.Warn("provider keys not configured, requests must supply their own")
	}
	planner := pipeline.NewPlanner(resolver, router, fetcher, publisher, keys, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, planner, planner, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
