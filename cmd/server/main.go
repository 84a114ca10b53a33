package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/sannaclaudia/WebAPP/internal/application/catalog"
	identityapp "github.com/sannaclaudia/WebAPP/internal/application/identity"
	orderingapp "github.com/sannaclaudia/WebAPP/internal/application/ordering"
	"github.com/sannaclaudia/WebAPP/internal/domain/ordering"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/auth"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/cache"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/config"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/event"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/logger"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/persistence"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/telemetry"
	"github.com/sannaclaudia/WebAPP/internal/interfaces/http/handler"
	"github.com/sannaclaudia/WebAPP/internal/interfaces/http/middleware"
	"github.com/sannaclaudia/WebAPP/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting restaurant backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			Enabled:         true,
			DBSystem:        telemetry.DBSystemFor(db.Driver),
			SlowQueryThresh: cfg.Database.SlowQuery,
		}, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// PostgreSQL schemas are owned by cmd/migrate; SQLite databases are
	// local and get created on the fly.
	if db.Driver == "sqlite" {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to create schema", zap.Error(err))
		}
		if err := persistence.SeedCatalog(ctx, db.DB); err != nil {
			log.Fatal("Failed to seed catalog", zap.Error(err))
		}
	}

	sessionStore, err := cache.NewSessionStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to create session store", zap.Error(err))
	}
	defer func() {
		if err := sessionStore.Close(); err != nil {
			log.Error("Error closing session store", zap.Error(err))
		}
	}()

	cancelPolicy, err := ordering.ParseCancelPolicy(cfg.Orders.CancelPolicy)
	if err != nil {
		log.Fatal("Invalid cancel policy", zap.Error(err))
	}

	metrics := telemetry.NewMetrics()
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(orderingapp.NewOrderMetricsHandler(metrics, log))

	// Repositories and services
	catalogRepo := persistence.NewGormCatalogRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	catalogService := catalogapp.NewCatalogService(catalogRepo)
	orderService := orderingapp.NewOrderService(catalogRepo, orderRepo, txScope, cancelPolicy)
	orderService.SetEventPublisher(eventBus)

	tokenService := auth.NewSessionTokenService(cfg.Session)
	authService := identityapp.NewAuthService(userRepo, sessionStore, auth.NewTOTPService(cfg.TOTP), cfg.Session.TTL)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Failed to set trusted proxies", zap.Error(err))
	}

	// Order matters: request ids feed the logger, tracing and recovery.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName), middleware.SpanEnricher())
	}
	if cfg.HTTP.RequestLogEnabled {
		engine.Use(logger.GinMiddleware(log))
	}
	if cfg.HTTP.MetricsEnabled {
		engine.Use(middleware.Metrics(metrics))
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	healthHandler := handler.NewHealthHandler(
		func(context.Context) error { return db.Ping() },
		sessionHealthCheck(sessionStore),
	)
	engine.GET("/health", healthHandler.Health)
	if cfg.HTTP.MetricsEnabled {
		engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	loginLimiter := middleware.NewRateLimiter(cfg.HTTP.LoginRateLimit, cfg.HTTP.LoginRateBurst, time.Minute)
	defer loginLimiter.Close()

	r := router.NewRouter(engine)
	groups := router.APIGroups(router.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService),
		Orders:  handler.NewOrderHandler(orderService),
		Sessions: handler.NewSessionHandler(authService, tokenService, handler.CookieSettings{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
		}),
	}, router.Guards{
		Session:      middleware.SessionAuth(authService, tokenService, cfg.Session.CookieName),
		Concluded2FA: middleware.RequireConcluded2FA(),
		Throttle:     middleware.RateLimit(loginLimiter),
	})
	for _, g := range groups {
		r.Register(g)
	}
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully")
}

// sessionHealthCheck pings Redis-backed stores. The in-memory store is
// always reachable.
func sessionHealthCheck(store cache.SessionStore) handler.HealthCheck {
	pinger, ok := store.(interface{ Ping(context.Context) error })
	if !ok {
		return nil
	}
	return pinger.Ping
}
