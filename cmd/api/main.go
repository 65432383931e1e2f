package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talentbridge/referral-system/internal/api"
	"github.com/talentbridge/referral-system/internal/core/service"
	mongodb "github.com/talentbridge/referral-system/internal/infrastructure/db/mongo"
	redisdb "github.com/talentbridge/referral-system/internal/infrastructure/db/redis"
	"github.com/talentbridge/referral-system/internal/infrastructure/http/handlers"
	"github.com/talentbridge/referral-system/internal/infrastructure/queue"
	"github.com/talentbridge/referral-system/internal/pkg/config"
	"github.com/talentbridge/referral-system/internal/pkg/token"
	"github.com/talentbridge/referral-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Candidate Referral API
// @version                     1.0
// @description                 Role-based candidate referral tracking: recruiters refer candidates, admins oversee the pipeline.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: "referral-api"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(db)
	candidateRepo := mongodb.NewCandidateRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := candidateRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create candidate indexes")
	}
	idempotency := redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)

	// --- Activity trail ---
	activityService := service.NewActivityService(mongodb.NewActivityRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activityService, log)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	// --- Services ---
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(authRepo, issuer)
	candidateService := service.NewCandidateService(candidateRepo, idempotency, dispatcher, log)
	analyticsService := service.NewAnalyticsService(candidateRepo, log)

	e := api.NewRouter(api.Dependencies{
		Auth:       authService,
		Candidates: candidateService,
		Analytics:  analyticsService,
		Tokens:     issuer,
		Readiness:  []handlers.Check{handlers.MongoCheck(db), handlers.RedisCheck(rdb)},
		Log:        log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	// Requests are done publishing; flush the activity trail before the
	// stores go away. The worker context stays live until the drain ends.
	dispatcher.Close()
	drained := make(chan struct{})
	go func() {
		dispatcher.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-shutdownCtx.Done():
		log.Warn().Msg("activity queue not drained before deadline")
	}
	stopWorkers()
	dispatcher.Wait()

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	closeCtx, cancelClose := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelClose()
	if err := client.Disconnect(closeCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	log.Info().Msg("stopped")
}
