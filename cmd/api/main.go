// Package main is the entrypoint for the BookQuest API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/bookquest/bookquest/internal/auth"
	"github.com/bookquest/bookquest/internal/cache"
	"github.com/bookquest/bookquest/internal/config"
	"github.com/bookquest/bookquest/internal/handler"
	"github.com/bookquest/bookquest/internal/metrics"
	"github.com/bookquest/bookquest/internal/middleware"
	"github.com/bookquest/bookquest/internal/repository"
	"github.com/bookquest/bookquest/internal/server"
	"github.com/bookquest/bookquest/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.MongoURL, cfg.MongoDatabase)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.MongoURL)),
			slog.String("mongo_url", redactURL(cfg.MongoURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database", "database", cfg.MongoDatabase)

	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Redis is optional: without it rate limiting is disabled.
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to Redis")
	} else {
		logger.Warn("REDIS_URL not set, rate limiting disabled")
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to initialize token signer", "error", err)
		os.Exit(1)
	}

	recorder := metrics.NewInMemory()
	bookService := service.NewBookService(repo, recorder, cfg.MaxImageBytes)
	accountService := service.NewAccountService(repo, tokens, recorder)

	healthHandler := handler.NewHealthHandler(repo, healthChecker(cacheClient))
	metricsHandler := handler.NewMetricsHandler(recorder)
	bookHandler := handler.NewBookHandler(bookService, logger)
	authHandler := handler.NewAuthHandler(accountService, logger)

	r := setupRouter(routerDeps{
		health:  healthHandler,
		metrics: metricsHandler,
		books:   bookHandler,
		auth:    authHandler,
		tokens:  tokens,
		cache:   cacheClient,
		cfg:     cfg,
		logger:  logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("mongo", repo.Close)
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error { return cacheClient.Close() })
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// healthChecker keeps a typed-nil *cache.Cache from leaking into the
// HealthChecker interface.
func healthChecker(c *cache.Cache) handler.HealthChecker {
	if c == nil {
		return nil
	}
	return c
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	health  *handler.HealthHandler
	metrics *handler.MetricsHandler
	books   *handler.BookHandler
	auth    *handler.AuthHandler
	tokens  *auth.Tokens
	cache   *cache.Cache
	cfg     *config.Config
	logger  *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	if origins := deps.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg.AllowedOrigins = origins
	}
	r.Use(middleware.CORS(corsCfg))

	// Operational endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	authCfg := middleware.AuthConfig{
		Logger: deps.logger,
		Tokens: deps.tokens,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:     deps.logger,
		Cache:      deps.cache,
		Enabled:    deps.cfg.RateLimitEnabled,
		PerMinute:  deps.cfg.RateLimitPerMinute,
		Burst:      deps.cfg.RateLimitBurst,
		LoginRPS:   deps.cfg.LoginRateLimitRPS,
		LoginBurst: deps.cfg.LoginRateLimitBurst,
	}

	// Account endpoints, rate limited per IP to slow credential stuffing.
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.RateLimitLogin(rateLimitCfg))
		r.Post("/register", deps.auth.Register)
		r.Post("/login", deps.auth.Login)
	})

	// Book catalog. Every route requires a verified token; mutations
	// additionally require the creator role.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))
		r.Use(middleware.RateLimitUser(rateLimitCfg))

		r.Get("/", deps.books.List)
		r.With(middleware.RequireCreator()).Post("/", deps.books.Create)
		r.With(middleware.RequireCreator()).Put("/{id}", deps.books.Update)
		r.With(middleware.RequireCreator()).Delete("/{id}", deps.books.Delete)
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
