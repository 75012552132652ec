package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream providers. API keys have no default: when unset, each request
	// must carry its own keys.
	ORSAPIKey          string
	OpenWeatherAPIKey  string
	ORSBaseURL         string
	NominatimBaseURL   string
	NominatimUserAgent string
	OpenWeatherBaseURL string
	UpstreamTimeout    time.Duration

	// Provider quotas enforced process-wide. OpenWeatherMap allows bursts up
	// to OpenWeatherBurst requests refilled one per OpenWeatherInterval.
	NominatimInterval   time.Duration
	OpenWeatherInterval time.Duration
	OpenWeatherBurst    int

	// Optional advisory sink.
	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaAdvisoryTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := parsePositiveDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	nominatimInterval, err := parsePositiveDuration("NOMINATIM_INTERVAL", "1s")
	if err != nil {
		return nil, err
	}
	openWeatherInterval, err := parsePositiveDuration("OPENWEATHER_INTERVAL", "1s")
	if err != nil {
		return nil, err
	}
	openWeatherBurst, err := parsePositiveInt("OPENWEATHER_BURST", "60")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ORSAPIKey:          os.Getenv("ORS_API_KEY"),
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		ORSBaseURL:         sharedcfg.EnvOrDefault("ORS_BASE_URL", "https://api.openrouteservice.org"),
		NominatimBaseURL:   sharedcfg.EnvOrDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: sharedcfg.EnvOrDefault("NOMINATIM_USER_AGENT", "WeatherRouteVisualizer/1.0"),
		OpenWeatherBaseURL: sharedcfg.EnvOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		UpstreamTimeout:    upstreamTimeout,

		NominatimInterval:   nominatimInterval,
		OpenWeatherInterval: openWeatherInterval,
		OpenWeatherBurst:    openWeatherBurst,

		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAdvisoryTopic: sharedcfg.EnvOrDefault("KAFKA_ADVISORY_TOPIC", "route-advisories"),
	}

	if strings.TrimSpace(cfg.NominatimUserAgent) == "" {
		return nil, errors.New("NOMINATIM_USER_AGENT must not be blank")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaAdvisoryTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_ADVISORY_TOPIC is empty")
		}
	}

	return cfg, nil
}

// HasProviderKeys reports whether both provider API keys are configured.
func (c *Config) HasProviderKeys() bool {
	return c.ORSAPIKey != "" && c.OpenWeatherAPIKey != ""
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key, def string) (int, error) {
	n, err := strconv.Atoi(sharedcfg.EnvOrDefault(key, def))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
