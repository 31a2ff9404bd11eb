// Package app assembles the storage and service graph shared by the
// server and the operator CLI.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tutorlink/tutorlink-api/internal/api/handler"
	"github.com/tutorlink/tutorlink-api/internal/api/middleware"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
	"github.com/tutorlink/tutorlink-api/internal/core/service"
	"github.com/tutorlink/tutorlink-api/internal/infrastructure/db/memory"
	"github.com/tutorlink/tutorlink-api/internal/infrastructure/db/mongo"
	redisstore "github.com/tutorlink/tutorlink-api/internal/infrastructure/db/redis"
	"github.com/tutorlink/tutorlink-api/internal/infrastructure/notify"
	"github.com/tutorlink/tutorlink-api/internal/pkg/config"
)

// Stores holds the opened persistence backends. SkillCache and RateCounter
// are nil interfaces when Redis is not configured.
type Stores struct {
	Accounts     ports.AccountRepository
	Tutors       ports.TutorRepository
	SkillCache   ports.SkillCache
	RateCounter  middleware.WindowCounter
	HealthChecks map[string]handler.DependencyCheck

	closers []func(context.Context) error
}

// Close releases every opened connection, returning the first error.
func (s *Stores) Close(ctx context.Context) error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenStores connects the configured storage driver and, when REDIS_ADDR is
// set, the Redis-backed skill cache and rate limiter.
func OpenStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	s := &Stores{HealthChecks: map[string]handler.DependencyCheck{}}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		s.Accounts = store.Accounts()
		s.Tutors = store.Tutors()
		log.Warn().Msg("using in-memory storage; data is lost on restart")

	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Disconnect)
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		s.Accounts = mongo.NewAccountRepository(db)
		s.Tutors = mongo.NewTutorRepository(db)
		s.HealthChecks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
	}

	if cfg.Redis.Addr == "" {
		log.Info().Msg("redis disabled; skill cache and rate limiting are off")
		return s, nil
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	s.closers = append(s.closers, func(context.Context) error { return rdb.Close() })
	s.SkillCache = redisstore.NewSkillCache(rdb, cfg.Redis.SkillCacheTTL)
	s.RateCounter = redisstore.NewWindowCounter(rdb)
	s.HealthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	return s, nil
}

// Services is the wired core service graph.
type Services struct {
	Accounts  *service.AccountService
	Resets    *service.PasswordResetService
	Directory ports.TutorDirectory
	Sessions  *service.JWTSessionIssuer
}

// NewServices builds the core services on top of s.
func NewServices(cfg *config.Config, s *Stores, log zerolog.Logger) *Services {
	hasher := service.NewCredentialHasher(service.ParseAlgorithm(cfg.Auth.HashAlgorithm))
	mailer := notify.NewLogNotifier(cfg.Mail.From, log)

	directory := service.NewTutorDirectory(s.Tutors, s.SkillCache, log)
	return &Services{
		Accounts:  service.NewAccountService(s.Accounts, s.Tutors, hasher, s.SkillCache, log),
		Resets:    service.NewPasswordResetService(s.Accounts, hasher, mailer, cfg.Reset.TokenTTL, log),
		Directory: service.NewLoggingTutorDirectory(directory, log),
		Sessions:  service.NewJWTSessionIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL),
	}
}
