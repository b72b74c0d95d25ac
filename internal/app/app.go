package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Nazarious-ucu/cluemart-landing/docs"
	"github.com/Nazarious-ucu/cluemart-landing/internal/config"
	"github.com/Nazarious-ucu/cluemart-landing/internal/handlers/health"
	"github.com/Nazarious-ucu/cluemart-landing/internal/handlers/home"
	"github.com/Nazarious-ucu/cluemart-landing/internal/handlers/middleware"
	"github.com/Nazarious-ucu/cluemart-landing/internal/handlers/subscription"
	"github.com/Nazarious-ucu/cluemart-landing/internal/landing"
	"github.com/Nazarious-ucu/cluemart-landing/internal/metrics"
	"github.com/Nazarious-ucu/cluemart-landing/internal/models"
	"github.com/Nazarious-ucu/cluemart-landing/internal/prober"
	"github.com/Nazarious-ucu/cluemart-landing/internal/services/cache"
	"github.com/Nazarious-ucu/cluemart-landing/internal/services/logger"
	"github.com/Nazarious-ucu/cluemart-landing/internal/services/mailchimp"
	"github.com/Nazarious-ucu/cluemart-landing/internal/services/mailchimp/decorators"
	"github.com/Nazarious-ucu/cluemart-landing/internal/services/subscriptions"
)

const (
	timeoutDuration = 5 * time.Second

	subscribePath = "/api/subscribe"
)

type memberAdder interface {
	AddMember(ctx context.Context, email string, source models.Source) error
}

type ServiceContainer struct {
	SubscriptionService *subscriptions.Service
	Prober              *prober.Prober

	Router     *gin.Engine
	Srv        *http.Server
	Redis      *redis.Client
	fileLogger *zap.Logger
}

type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metrics.Metrics
}

func New(cfg config.Config, logger zerolog.Logger, m *metrics.Metrics) *App {
	logger = logger.With().Str("service", "cluemart-landing").Timestamp().Logger()
	logger.Info().Msg("Logger initialized for cluemart-landing")
	return &App{cfg: cfg, l: logger, m: m}
}

func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.Init()
	if err != nil {
		return err
	}

	if srvContainer.Prober != nil {
		if err := srvContainer.Prober.Start(ctx); err != nil {
			a.l.Error().Err(err).Msg("Provider prober not started")
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.l.Info().Str("http_addr", a.cfg.ServerAddress()).Msg("HTTP server listening")
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		a.l.Info().Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			a.l.Error().Err(err).Msg("HTTP server error")
			_ = a.Stop(srvContainer)
			return err
		}
	}

	return a.Stop(srvContainer)
}

func (a *App) Stop(srvContainer ServiceContainer) error {
	a.l.Info().Msg("Stopping application")

	if srvContainer.Prober != nil {
		srvContainer.Prober.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
	defer cancel()
	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		a.l.Error().Err(err).Msg("HTTP shutdown error")
	} else {
		a.l.Info().Msg("HTTP server stopped")
	}

	if srvContainer.Redis != nil {
		if err := srvContainer.Redis.Close(); err != nil {
			a.l.Error().Err(err).Msg("Redis close error")
		} else {
			a.l.Info().Msg("Redis closed")
		}
	}

	if srvContainer.fileLogger != nil {
		if err := srvContainer.fileLogger.Sync(); err != nil {
			a.l.Warn().Err(err).Msg("Failed to sync provider log")
		}
	}

	a.l.Info().Msg("Application shutdown complete")
	return nil
}

// Init builds every component and the router without starting anything.
func (a *App) Init() (ServiceContainer, error) {
	a.l.Info().Stringer("mailchimp", a.cfg.Mailchimp).Str("http_addr", a.cfg.ServerAddress()).
		Msg("Initializing application")

	fileLogger, err := logger.NewFileLogger(a.cfg.ProviderLogsPath)
	if err != nil {
		return ServiceContainer{}, err
	}

	httpClient := &http.Client{
		Transport: logger.NewRoundTripper(fileLogger, nil),
		Timeout:   time.Duration(a.cfg.Mailchimp.Timeout) * time.Second,
	}

	client := mailchimp.NewClient(a.cfg.Mailchimp, httpClient, a.l, a.m)
	var provider memberAdder = mailchimp.NewBreakerClient("mailchimp", mailchimp.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}, client)

	var rdb *redis.Client
	if a.cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr: a.cfg.Redis.Address(),
			DB:   a.cfg.Redis.DB,
		})
		redisCache := cache.NewRedisClient[models.SignupRecord](rdb, "signup:",
			time.Duration(a.cfg.Redis.TTL)*time.Hour, a.l)
		provider = decorators.NewCachedMemberAdder(provider,
			cache.NewMetricsDecorator[models.SignupRecord](redisCache, a.m),
			a.cfg.Mailchimp.AudienceID, a.l)
		a.l.Info().Str("redis_addr", a.cfg.Redis.Address()).Msg("Signup dedupe cache enabled")
	}

	subSvc := subscriptions.NewService(a.cfg.Mailchimp, provider, a.l, a.m)

	var probe *prober.Prober
	healthHandler := health.NewHandler(nil, false)
	if subSvc.Configured() {
		probe = prober.New(client, a.cfg.HealthProbe.Schedule, a.l, a.m)
		healthHandler = health.NewHandler(probe, true)
	} else {
		a.l.Warn().Msg("Mailchimp is not configured; signups will be rejected")
	}

	page := landing.Page{
		ProductName:    a.cfg.Landing.ProductName,
		LaunchAt:       a.cfg.Landing.LaunchAt,
		TeaserInterval: time.Duration(a.cfg.Landing.TeaserInterval) * time.Second,
		SubscribeURL:   subscribePath,
	}

	router := a.routes(
		subscription.NewHandler(subSvc, a.l),
		home.NewHandler(page, time.Now, a.l),
		healthHandler,
		middleware.NewRateLimiter(a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst),
	)

	httpSrv := &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return ServiceContainer{
		SubscriptionService: subSvc,
		Prober:              probe,
		Router:              router,
		Srv:                 httpSrv,
		Redis:               rdb,
		fileLogger:          fileLogger,
	}, nil
}

func (a *App) routes(
	subHandler *subscription.Handler,
	homeHandler *home.Handler,
	healthHandler *health.Handler,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(a.cfg.Server.TrustedProxies); err != nil {
		a.l.Error().Err(err).Strs("trusted_proxies", a.cfg.Server.TrustedProxies).
			Msg("Invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(middleware.Recovery(a.l, subscription.MsgUnexpected), a.m.HTTPMiddleware())

	router.GET("/", homeHandler.Index)

	api := router.Group("/api")
	{
		api.GET("/countdown", homeHandler.Countdown)
		api.GET("/teasers", homeHandler.Teasers)
		api.POST("/subscribe", limiter.Middleware(func(*gin.Context) {
			a.m.RateLimited.Inc()
		}), subHandler.Subscribe)
	}

	router.GET("/healthz", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(a.m.Handler()))
	router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))

	return router
}
