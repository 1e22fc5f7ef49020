package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	catalogpg "github.com/QwabenaBoateng/Angiesplug/internal/catalog/repository/postgres"
	catalogservice "github.com/QwabenaBoateng/Angiesplug/internal/catalog/service"
	"github.com/QwabenaBoateng/Angiesplug/internal/config"
	"github.com/QwabenaBoateng/Angiesplug/internal/event"
	handler "github.com/QwabenaBoateng/Angiesplug/internal/handler/http"
	"github.com/QwabenaBoateng/Angiesplug/internal/identity/auth"
	identitypg "github.com/QwabenaBoateng/Angiesplug/internal/identity/repository/postgres"
	identityservice "github.com/QwabenaBoateng/Angiesplug/internal/identity/service"
	mediapg "github.com/QwabenaBoateng/Angiesplug/internal/media/repository/postgres"
	mediaservice "github.com/QwabenaBoateng/Angiesplug/internal/media/service"
	medialocal "github.com/QwabenaBoateng/Angiesplug/internal/media/storage/local"
	orderpg "github.com/QwabenaBoateng/Angiesplug/internal/order/repository/postgres"
	orderservice "github.com/QwabenaBoateng/Angiesplug/internal/order/service"
	sessionredis "github.com/QwabenaBoateng/Angiesplug/internal/session/repository/redis"
	sessionservice "github.com/QwabenaBoateng/Angiesplug/internal/session/service"
	"github.com/QwabenaBoateng/Angiesplug/pkg/database"
	"github.com/QwabenaBoateng/Angiesplug/pkg/health"
	pkgkafka "github.com/QwabenaBoateng/Angiesplug/pkg/kafka"
	"github.com/QwabenaBoateng/Angiesplug/pkg/tracing"
)

// App wires together all dependencies and runs the storefront backend. The
// whole graph is built here, explicitly, once; nothing reaches for a
// package-level singleton.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	sessions       *sessionservice.Manager
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "angiesplug",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	// Redis client for session state.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// JWT expiry durations.
	accessExpiry, err := time.ParseDuration(cfg.JWTAccessExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse JWT access expiry %q: %w", cfg.JWTAccessExpiry, err)
	}
	refreshExpiry, err := time.ParseDuration(cfg.JWTRefreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse JWT refresh expiry %q: %w", cfg.JWTRefreshExpiry, err)
	}

	// Media storage on the local filesystem.
	mediaStorage, err := medialocal.New(cfg.MediaRoot, cfg.MediaBaseURL)
	if err != nil {
		return nil, fmt.Errorf("init media storage: %w", err)
	}

	// Build the dependency graph.
	eventProducer := event.NewProducer(producer, logger)

	sessionTTL := time.Duration(cfg.SessionTTL) * time.Hour
	sessionRepo := sessionredis.NewSessionRepository(rdb, sessionTTL)
	sessions := sessionservice.NewManager(sessionRepo, eventProducer, logger)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, accessExpiry, refreshExpiry)
	profileRepo := identitypg.NewProfileRepository(pool)
	identity := identityservice.NewIdentityService(profileRepo, jwtManager, identityservice.BypassConfig{
		Enabled:  cfg.BypassEnabled,
		Email:    cfg.BypassEmail,
		Password: cfg.BypassPassword,
		UserID:   cfg.BypassUserID,
	}, logger)

	productRepo := catalogpg.NewProductRepository(pool)
	categoryRepo := catalogpg.NewCategoryRepository(pool)
	brandRepo := catalogpg.NewBrandRepository(pool)
	bannerRepo := catalogpg.NewBannerRepository(pool)

	products := catalogservice.NewProductService(productRepo, eventProducer, logger)
	categories := catalogservice.NewCategoryService(categoryRepo, logger)
	brands := catalogservice.NewBrandService(brandRepo, logger)
	banners := catalogservice.NewBannerService(bannerRepo, logger)

	orderRepo := orderpg.NewOrderRepository(pool)
	orders := orderservice.NewOrderService(orderRepo, eventProducer, logger)

	mediaRepo := mediapg.NewMediaRepository(pool)
	media := mediaservice.NewMediaService(mediaRepo, mediaStorage, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(&handler.Services{
		Identity:   identity,
		Sessions:   sessions,
		Products:   products,
		Categories: categories,
		Brands:     brands,
		Banners:    banners,
		Orders:     orders,
		Media:      media,
	}, healthHandler, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		rdb:            rdb,
		producer:       producer,
		sessions:       sessions,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: drain HTTP, flush
// sessions to Redis, flush spans, close the producer, close the stores.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// Persist any dirty session state before the connections go away.
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := a.sessions.Flush(flushCtx); err != nil {
		a.logger.Error("session flush error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
