// Package main is the entrypoint for the PETPAL API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/petpal/petpal/internal/cache"
	"github.com/petpal/petpal/internal/config"
	"github.com/petpal/petpal/internal/handler"
	"github.com/petpal/petpal/internal/logging"
	"github.com/petpal/petpal/internal/metrics"
	"github.com/petpal/petpal/internal/middleware"
	"github.com/petpal/petpal/internal/repository"
	"github.com/petpal/petpal/internal/server"
	"github.com/petpal/petpal/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	mongoURI := cfg.MongoConnectionURI()
	repo, err := repository.New(ctx, repository.Options{
		URI:             mongoURI,
		Database:        cfg.MongoDatabase,
		UsersCollection: cfg.MongoUsersCollection,
		PetsCollection:  cfg.MongoPetsCollection,
		Timeout:         cfg.MongoTimeout,
	})
	if err != nil {
		logger.Error(
			"failed to connect to MongoDB",
			slog.String("error", logging.SanitizeError(err, mongoURI)),
			slog.String("mongo_uri", logging.RedactURL(mongoURI)),
		)
		os.Exit(1)
	}
	logger.Info("connected to MongoDB", "database", cfg.MongoDatabase)

	// The users list cache is optional.
	var (
		usersCache  service.UsersCache
		cacheHealth handler.HealthChecker
		cacheClient *cache.Cache
	)
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", logging.SanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", logging.RedactURL(cfg.RedisURL)),
			)
			_ = repo.Close(ctx)
			os.Exit(1)
		}
		usersCache = cacheClient
		cacheHealth = cacheClient
		logger.Info("connected to Redis")
	} else {
		logger.Info("REDIS_URL not set, users cache disabled")
	}

	recorder := metrics.NewInMemory()
	userService := service.NewUserService(repo, usersCache, cfg.UsersCacheTTL, logger, recorder)
	petService := service.NewPetService(repo, repo, recorder)

	r := setupRouter(routes{
		base:    handler.New(),
		health:  handler.NewHealthHandler(repo, cacheHealth),
		metrics: handler.NewMetricsHandler(recorder),
		users:   handler.NewUserHandler(userService, logger),
		pets:    handler.NewPetHandler(petService, logger),
	}, cfg.MaxRequestBodySize, logger)

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("mongodb", repo.Close)
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"users_collection", cfg.MongoUsersCollection,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

type routes struct {
	base    *handler.Handler
	health  *handler.HealthHandler
	metrics *handler.MetricsHandler
	users   *handler.UserHandler
	pets    *handler.PetHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(h routes, maxBody int64, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.BodyLimit(maxBody))

	r.Get("/", h.base.Hello)
	r.Get("/healthz", h.health.Healthz)
	r.Get("/readyz", h.health.Readyz)
	r.Get("/metrics", h.metrics.Metrics)

	r.Route("/users", h.users.Routes)
	r.Route("/pets", h.pets.Routes)

	r.NotFound(h.base.NotFound)
	r.MethodNotAllowed(h.base.MethodNotAllowed)

	return r
}
