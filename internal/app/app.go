package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"github.com/wagslane/go-rabbitmq"
	"go.uber.org/zap"

	_ "github.com/Nazarious-ucu/weather-display/docs"
	"github.com/Nazarious-ucu/weather-display/internal/config"
	http2 "github.com/Nazarious-ucu/weather-display/internal/handlers/http"
	"github.com/Nazarious-ucu/weather-display/internal/handlers/stream"
	"github.com/Nazarious-ucu/weather-display/internal/models"
	"github.com/Nazarious-ucu/weather-display/internal/publisher"
	"github.com/Nazarious-ucu/weather-display/internal/services/location"
	loggerT "github.com/Nazarious-ucu/weather-display/internal/services/logger"
	metricsSvc "github.com/Nazarious-ucu/weather-display/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-display/internal/services/refresher"
	"github.com/Nazarious-ucu/weather-display/internal/services/session"
	serviceWeather "github.com/Nazarious-ucu/weather-display/internal/services/weather"
	fLogger "github.com/Nazarious-ucu/weather-display/pkg/logger"
)

const timeoutDuration = 5 * time.Second

var ErrUnknownPermission = errors.New("unknown location permission mode")

// ServiceContainer holds initialized dependencies for the server.
type ServiceContainer struct {
	Picker     *location.Picker
	Resolver   *location.Resolver
	Breaker    *serviceWeather.BreakerClient
	Controller *serviceWeather.Controller
	Session    *session.Session
	Refresher  *refresher.Refresher
	Hub        *stream.Hub
	Fanout     *publisher.Fanout

	Router *gin.Engine
	Srv    *http.Server

	fileLogger  *zap.Logger
	redisClient *redis.Client
	rabbitConn  *rabbitmq.Conn
	rabbitPub   *rabbitmq.Publisher
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
	}
}

// Start builds the services, serves HTTP, runs the startup acquisition and
// blocks until ctx is done.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.Init()
	if err != nil {
		return err
	}

	go srvContainer.Hub.Run()

	if err := srvContainer.Refresher.Start(ctx); err != nil {
		a.l.Error().Err(err).Msg("refresher not started")
	}

	serveErr := make(chan error, 1)
	go func() {
		a.l.Info().Str("http_addr", a.cfg.ServerAddress()).Msg("HTTP server listening")
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	go func() {
		out := srvContainer.Session.Startup(ctx)
		a.l.Info().
			Str("status", string(out.State.Status)).
			Bool("acquired", out.Acquired).
			Msg("startup acquisition finished")
	}()

	select {
	case <-ctx.Done():
		a.l.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		a.l.Error().Err(err).Msg("HTTP server error")
		_ = a.Stop(srvContainer)
		return err
	}

	return a.Stop(srvContainer)
}

// Stop shuts everything down in reverse order of construction.
func (a *App) Stop(srvContainer ServiceContainer) error {
	a.l.Info().Msg("stopping weather display")

	srvContainer.Refresher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
	defer cancel()
	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		a.l.Error().Err(err).Msg("HTTP shutdown error")
	} else {
		a.l.Info().Msg("HTTP server stopped")
	}

	srvContainer.Hub.Stop()

	if srvContainer.rabbitPub != nil {
		srvContainer.rabbitPub.Close()
	}
	if srvContainer.rabbitConn != nil {
		if err := srvContainer.rabbitConn.Close(); err != nil {
			a.l.Error().Err(err).Msg("RabbitMQ close error")
		}
	}
	if srvContainer.redisClient != nil {
		if err := srvContainer.redisClient.Close(); err != nil {
			a.l.Error().Err(err).Msg("Redis close error")
		}
	}

	if err := srvContainer.fileLogger.Sync(); err != nil {
		a.l.Warn().Err(err).Msg("failed to sync file logger")
	}

	a.l.Info().Msg("shutdown complete")
	return nil
}

// Init wires every component without starting anything.
func (a *App) Init() (ServiceContainer, error) {
	a.l.Info().
		Str("owm_url", a.cfg.OpenWeatherMap.URL).
		Float64("default_lat", a.cfg.Location.DefaultLatitude).
		Float64("default_lon", a.cfg.Location.DefaultLongitude).
		Str("permission", a.cfg.Location.Permission).
		Str("refresh_spec", a.cfg.RefreshSpec).
		Bool("redis", a.cfg.Redis.Enabled).
		Bool("rabbitmq", a.cfg.RabbitMQ.Enabled).
		Msg("initializing weather display")

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		a.l.Error().Err(err).Msg("failed to create file logger, upstream calls will not be logged")
		fileLogger = zap.NewNop()
	}
	httpLogClient := &http.Client{Transport: loggerT.NewRoundTripper(fileLogger)}

	permission, err := newPermission(a.cfg.Location.Permission)
	if err != nil {
		return ServiceContainer{}, err
	}

	fallback := models.Coordinate{
		Latitude:  a.cfg.Location.DefaultLatitude,
		Longitude: a.cfg.Location.DefaultLongitude,
	}
	picker := location.NewPicker(fallback)
	resolver := location.NewResolver(
		permission,
		location.NewIPLocator(a.cfg.Location.LocatorURL, httpLogClient, a.l),
		picker,
		fallback,
		a.l,
	)

	sc := ServiceContainer{fileLogger: fileLogger}

	hub := stream.NewHub(a.l)
	sinks := []publisher.Sink{hub}
	if a.cfg.Redis.Enabled {
		sc.redisClient = publisher.NewRedisConnection(a.cfg.Redis.Address(), a.cfg.Redis.DbType)
		sinks = append(sinks, publisher.NewRedisSink(sc.redisClient, a.l))
	}
	if a.cfg.RabbitMQ.Enabled {
		sc.rabbitConn, sc.rabbitPub = a.setupRabbit()
		if sc.rabbitPub != nil {
			sinks = append(sinks, publisher.NewRabbitSink(sc.rabbitPub, a.l))
		}
	}
	fanout := publisher.NewFanout(a.l, a.m, sinks...)

	breakerCfg := serviceWeather.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}
	openWeather := serviceWeather.NewBreakerClient("OpenWeather", breakerCfg,
		serviceWeather.NewClientOpenWeatherMap(a.cfg.OpenWeatherMap.APIKey, a.cfg.OpenWeatherMap.URL, httpLogClient, a.l),
	)
	controller := serviceWeather.NewController(openWeather, a.cfg.OpenWeatherMap, picker, fanout, a.m, a.l)
	sess := session.NewSession(resolver, picker, controller, a.l)

	router := gin.New()
	router.Use(gin.Recovery(), a.m.HTTPMiddleware())
	http2.NewHandler(sess, a.l).Register(router)
	router.GET("/api/ws", gin.WrapH(hub))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "breakers": openWeather.State(), "ws_clients": hub.Clients()})
	})
	router.GET("/metrics", gin.WrapH(a.m.Handler()))
	router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))

	sc.Picker = picker
	sc.Resolver = resolver
	sc.Breaker = openWeather
	sc.Controller = controller
	sc.Session = sess
	sc.Refresher = refresher.New(sess, a.m, a.l, a.cfg.RefreshSpec)
	sc.Hub = hub
	sc.Fanout = fanout
	sc.Router = router
	sc.Srv = &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}
	return sc, nil
}

// setupRabbit connects to the broker. Failures leave the sink disabled.
func (a *App) setupRabbit() (*rabbitmq.Conn, *rabbitmq.Publisher) {
	conn, err := publisher.NewRabbitConn(a.cfg.RabbitMQ.Address())
	if err != nil {
		a.l.Error().Err(err).Msg("failed to connect to RabbitMQ, sink disabled")
		return nil, nil
	}
	a.l.Info().Msg("connected to RabbitMQ")

	pub, err := publisher.NewRabbitPublisher(conn)
	if err != nil {
		a.l.Error().Err(err).Msg("failed to create RabbitMQ publisher, sink disabled")
		return conn, nil
	}
	return conn, pub
}

type permissionRequester interface {
	RequestForeground(ctx context.Context) (location.PermissionStatus, error)
}

func newPermission(mode string) (permissionRequester, error) {
	switch mode {
	case string(location.PermissionGranted):
		return location.StaticPermission{Status: location.PermissionGranted}, nil
	case string(location.PermissionDenied):
		return location.StaticPermission{Status: location.PermissionDenied}, nil
	case "prompt":
		return location.NewPromptPermission(os.Stdin, os.Stdout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPermission, mode)
	}
}
