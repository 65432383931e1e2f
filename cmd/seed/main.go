// Command seed loads demo users and candidate referrals into MongoDB.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/pflag"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talentbridge/referral-system/internal/core/access"
	"github.com/talentbridge/referral-system/internal/core/domain"
	"github.com/talentbridge/referral-system/internal/core/service"
	mongodb "github.com/talentbridge/referral-system/internal/infrastructure/db/mongo"
	"github.com/talentbridge/referral-system/internal/pkg/config"
	"github.com/talentbridge/referral-system/pkg/logger"
)

func main() {
	env, err := config.LoadSeed(context.Background(), envconfig.OsLookuper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment.
	var (
		mongoURI   = pflag.String("mongo-uri", env.Mongo.URI, "MongoDB connection string")
		database   = pflag.String("db", env.Mongo.Database, "database name")
		reset      = pflag.Bool("reset", true, "delete existing users and candidates first")
		candidates = pflag.Bool("candidates", true, "insert demo candidate referrals")
		logLevel   = pflag.String("log-level", env.LogLevel, "log level")
	)
	pflag.Parse()

	log := logger.Init(logger.Options{Level: *logLevel, Pretty: true, Service: "referral-seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: *mongoURI, Database: *database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := run(ctx, db, *reset, *candidates, log); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run(ctx context.Context, db *mongo.Database, reset, withCandidates bool, log zerolog.Logger) error {
	users := mongodb.NewAuthRepository(db)
	candidates := mongodb.NewCandidateRepository(db)

	if reset {
		nc, err := candidates.DeleteAll(ctx)
		if err != nil {
			return err
		}
		nu, err := users.DeleteAll(ctx)
		if err != nil {
			return err
		}
		log.Info().Int64("users", nu).Int64("candidates", nc).Msg("cleared existing data")
	}

	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := candidates.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("candidate indexes: %w", err)
	}

	authService := service.NewAuthService(users, nil)
	created := make(map[string]*domain.User, len(seedUsers))
	for _, u := range seedUsers {
		user, err := authService.CreateUser(ctx, u.name, u.email, u.password, u.role)
		if err != nil {
			return fmt.Errorf("create user %s: %w", u.email, err)
		}
		created[u.key] = user
		log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user created")
	}

	if !withCandidates {
		return nil
	}

	now := time.Now().UTC()
	for i, sc := range seedCandidates {
		owner, ok := created[sc.recruiter]
		if !ok {
			return fmt.Errorf("unknown recruiter %q for %s", sc.recruiter, sc.name)
		}
		ts := now.Add(-time.Duration(len(seedCandidates)-i) * time.Hour)
		c := &domain.Candidate{
			Name:       sc.name,
			Email:      sc.email,
			Phone:      sc.phone,
			JobTitle:   sc.jobTitle,
			Status:     sc.status,
			ReferredBy: owner.ID,
			CreatedAt:  ts,
			UpdatedAt:  ts,
		}
		if err := candidates.Create(ctx, c); err != nil {
			return fmt.Errorf("create candidate %s: %w", sc.name, err)
		}
	}

	admin := domain.Identity{ID: created["admin"].ID, Email: created["admin"].Email, Role: domain.RoleAdmin}
	dist, err := candidates.CountByStatus(ctx, access.ScopeFor(admin))
	if err != nil {
		return err
	}
	log.Info().
		Int("candidates", len(seedCandidates)).
		Int64("pending", dist[domain.StatusPending]).
		Int64("reviewed", dist[domain.StatusReviewed]).
		Int64("hired", dist[domain.StatusHired]).
		Msg("seed complete")
	return nil
}
