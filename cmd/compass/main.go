package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/oversea-labs/compass/internal/app"
	"github.com/oversea-labs/compass/internal/auth"
	"github.com/oversea-labs/compass/internal/blogs"
	"github.com/oversea-labs/compass/internal/contact"
	"github.com/oversea-labs/compass/internal/courses"
	"github.com/oversea-labs/compass/internal/gallery"
	"github.com/oversea-labs/compass/internal/gate"
	"github.com/oversea-labs/compass/internal/observability"
	"github.com/oversea-labs/compass/internal/platform/cache"
	"github.com/oversea-labs/compass/internal/platform/db"
	"github.com/oversea-labs/compass/internal/subscribers"
)

func main() {
	_ = godotenv.Load()

	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg, "compass-api")

	mongoClient, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Error("connect mongo", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Warn("mongo disconnect", slog.Any("error", err))
		}
	}()

	database := mongoClient.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logger.Error("ensure indexes", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Content caching and job enqueueing degrade gracefully without Redis.
		logger.Warn("redis unavailable", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	var asynqClient *asynq.Client
	if redisClient != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := asynqClient.Close(); err != nil {
				logger.Warn("asynq close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(auth.NewMongoRepository(database), tokens)
	authHandler := auth.NewHandler(logger, authService)

	blogService := blogs.NewService(
		blogs.NewMongoRepository(database),
		blogs.NewCache(redisClient, cfg.ContentCacheTTL),
	)
	courseService := courses.NewService(courses.NewMongoRepository(database), redisClient, cfg.ContentCacheTTL)
	galleryService := gallery.NewService(gallery.NewMongoRepository(database))

	var contactService *contact.Service
	var subscriberService *subscribers.Service
	if asynqClient != nil {
		contactService = contact.NewService(logger, contact.NewMongoRepository(database), asynqClient)
		subscriberService = subscribers.NewService(logger, subscribers.NewMongoRepository(database), asynqClient)
	} else {
		contactService = contact.NewService(logger, contact.NewMongoRepository(database), nil)
		subscriberService = subscribers.NewService(logger, subscribers.NewMongoRepository(database), nil)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:      logger,
		Config:      cfg,
		Metrics:     metrics,
		Gate:        gate.New(tokens),
		Auth:        authHandler,
		Blogs:       blogs.NewHandler(logger, blogService),
		Courses:     courses.NewHandler(logger, courseService),
		Gallery:     gallery.NewHandler(logger, galleryService),
		Contact:     contact.NewHandler(logger, contactService),
		Subscribers: subscribers.NewHandler(logger, subscriberService),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped cleanly")
}
