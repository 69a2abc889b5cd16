package config

import (
	"net"
	"net/url"
	"strconv"

	"github.com/kelseyhightower/envconfig"
)

// PlaceholderAPIKey is the value shipped in sample env files.
const PlaceholderAPIKey = "YOUR_API_KEY_HERE"

type Server struct {
	Host        string `envconfig:"WEATHER_DISPLAY_SERVER_HOST" default:""`
	Port        string `envconfig:"WEATHER_DISPLAY_SERVER_PORT" default:"8080"`
	ReadTimeout int    `envconfig:"WEATHER_DISPLAY_SERVER_TIMEOUT" default:"10"`
}

type OpenWeatherMap struct {
	APIKey string `envconfig:"OPEN_WEATHER_MAP_API_KEY"`
	URL    string `envconfig:"OPEN_WEATHER_MAP_URL" default:"https://api.openweathermap.org/data/2.5"`
}

type Location struct {
	DefaultLatitude  float64 `envconfig:"DEFAULT_LATITUDE" default:"28.5"`
	DefaultLongitude float64 `envconfig:"DEFAULT_LONGITUDE" default:"77.2"`
	// Permission is one of granted, denied or prompt.
	Permission string `envconfig:"LOCATION_PERMISSION" default:"granted"`
	LocatorURL string `envconfig:"DEVICE_LOCATOR_URL" default:"http://ip-api.com/json"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Redis struct {
	Enabled bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host    string `envconfig:"REDIS_HOST" default:"localhost"`
	Port    string `envconfig:"REDIS_PORT" default:"6379"`
	DbType  int    `envconfig:"REDIS_DB_TYPE" default:"0"`
}

func (r Redis) Address() string {
	return net.JoinHostPort(r.Host, r.Port)
}

type RabbitMQ struct {
	Enabled  bool   `envconfig:"RABBITMQ_ENABLED" default:"false"`
	Host     string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port     int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User     string `envconfig:"RABBITMQ_USER" default:"guest"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"guest"`
}

func (r RabbitMQ) Address() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(r.User, r.Password),
		Host:   net.JoinHostPort(r.Host, strconv.Itoa(r.Port)),
		Path:   "/",
	}
	return u.String()
}

type Config struct {
	OpenWeatherMap OpenWeatherMap
	Location       Location
	Server         Server
	Breaker        Breaker
	Redis          Redis
	RabbitMQ       RabbitMQ

	// RefreshSpec is a six-field cron spec; empty disables scheduled refresh.
	RefreshSpec string `envconfig:"REFRESH_SPEC" default:""`

	// ListenerMetricsAddr is where cmd/state-listener serves /metrics.
	ListenerMetricsAddr string `envconfig:"STATE_LISTENER_METRICS_ADDR" default:":9091"`

	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/weather-display.log"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH" default:"./log/upstream-http.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// HasValidAPIKey reports whether the credential is present and not the sample placeholder.
func (c OpenWeatherMap) HasValidAPIKey() bool {
	return c.APIKey != "" && c.APIKey != PlaceholderAPIKey
}
