package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/offerdeck/backend/api/handler"
	"github.com/offerdeck/backend/internal/config"
	"github.com/offerdeck/backend/internal/infrastructure/journal"
	"github.com/offerdeck/backend/internal/infrastructure/monitor"
	pgInfra "github.com/offerdeck/backend/internal/infrastructure/postgres"
	redisInfra "github.com/offerdeck/backend/internal/infrastructure/redis"
	"github.com/offerdeck/backend/internal/middleware"
	"github.com/offerdeck/backend/internal/router"
	"github.com/offerdeck/backend/internal/services"
	"github.com/offerdeck/backend/internal/services/lifecycle"
	"github.com/offerdeck/backend/pkg/clock"
	"github.com/offerdeck/backend/pkg/httpcontext"
	"github.com/offerdeck/backend/pkg/logger"
	"github.com/offerdeck/backend/pkg/password"
	"github.com/offerdeck/backend/repository/postgres"
	redisRepo "github.com/offerdeck/backend/repository/redis"
	authUC "github.com/offerdeck/backend/usecase/auth"
	offerUC "github.com/offerdeck/backend/usecase/offer"
	userUC "github.com/offerdeck/backend/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	journalStore, err := journal.Open(cfg.Journal.Path, "transitions")
	if err != nil {
		zapLogger.Fatal("failed to open transition journal", zap.Error(err))
	}
	manager.Register("journal", func(ctx context.Context) error {
		return journalStore.Close()
	})

	mon := monitor.New(pool, redisClient, journalStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	recorder := services.NewJournalRecorder(journalStore, zapLogger, services.RecorderConfig{
		RetentionHours: cfg.Journal.RetentionHours,
		SweepInterval:  cfg.Journal.SweepInterval,
	})
	recorder.Start()
	manager.Register("journal_recorder", func(ctx context.Context) error {
		recorder.Stop(ctx)
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	offerRepo := postgres.NewOfferRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)

	systemClock := clock.NewSystem()
	hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)

	userService := userUC.New(userRepo, offerRepo, hasher, systemClock)
	offerUseCase := offerUC.New(offerRepo, userService, recorder, systemClock)
	authUseCase := authUC.New(userService, sessionRepo)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth: apiHandler.NewAuthHandler(authUseCase, userService, apiHandler.TokenConfig{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			SessionTTL: cfg.Auth.SessionTTL,
		}, ctxAdapter, zapLogger),
		Offer:  apiHandler.NewOfferHandler(offerUseCase, systemClock, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
