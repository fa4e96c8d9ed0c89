// Command api serves the student registration web application.
//
//	@title			Student Registration API
//	@version		1.0
//	@description	Session-authenticated student registration with roll-number upsert-merge.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/campus/student-registration/internal/api"
	"github.com/campus/student-registration/internal/api/handler"
	"github.com/campus/student-registration/internal/core/ports"
	"github.com/campus/student-registration/internal/core/service"
	"github.com/campus/student-registration/internal/infrastructure/config"
	"github.com/campus/student-registration/internal/infrastructure/db/memory"
	"github.com/campus/student-registration/internal/infrastructure/db/mongo"
	"github.com/campus/student-registration/internal/infrastructure/db/redis"
	"github.com/campus/student-registration/internal/infrastructure/session"
	"github.com/campus/student-registration/pkg/logger"
)

const serviceName = "student-registration"

func main() {
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Str("service", serviceName).Logger()
	cfg := config.Load(bootLog)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	pingers := map[string]handler.Pinger{}

	var (
		users    ports.UserRepository
		students ports.StudentRepository
	)
	switch cfg.StoreBackend {
	case config.StoreMongo:
		client, db, err := connectMongo(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()

		userRepo := mongo.NewUserRepository(db)
		studentRepo := mongo.NewStudentRepository(db)
		if err := mongo.EnsureIndexes(ctx, userRepo, studentRepo); err != nil {
			// Startup continues; duplicate detection degrades until the
			// indexes exist.
			log.Error().Err(err).Msg("failed to ensure indexes")
		}
		users, students = userRepo, studentRepo
		pingers["mongodb"] = mongo.NewPinger(db)
	default:
		log.Warn().Msg("using in-memory stores; data is lost on restart")
		users, students = memory.NewUserRepository(), memory.NewStudentRepository()
	}

	var rdb *goredis.Client
	if cfg.NeedsRedis() {
		var err error
		rdb, err = connectRedis(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer rdb.Close()
		pingers["redis"] = redis.NewPinger(rdb)
	}

	var sessions ports.SessionAuthority
	switch cfg.Session.Backend {
	case config.SessionRedis:
		sessions = session.NewRedisAuthority(redis.NewSessionStore(rdb), cfg.Session.TTL)
	case config.SessionJWT:
		sessions = session.NewJWTAuthority(cfg.Session.Secret, cfg.Session.TTL, redis.NewDenylist(rdb))
	default:
		sessions = session.NewMemoryAuthority(cfg.Session.TTL)
	}

	e, err := api.NewRouter(api.Dependencies{
		Auth:     service.NewAuthService(users, sessions, cfg.BcryptCost, log),
		Students: service.NewStudentService(students, log),
		Sessions: sessions,
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.CookieSecure,
		},
		Pingers: pingers,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreBackend).
			Str("sessions", cfg.Session.Backend).
			Msg("server started")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received, stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func startupBackoff(cfg *config.Config) retry.Backoff {
	return retry.WithMaxRetries(cfg.StartupRetries, retry.NewExponential(500*time.Millisecond))
}

func connectMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*mongodriver.Client, *mongodriver.Database, error) {
	var (
		client *mongodriver.Client
		db     *mongodriver.Database
	)
	err := retry.Do(ctx, startupBackoff(cfg), func(ctx context.Context) error {
		var err error
		client, db, err = mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Warn().Err(err).Msg("mongo not ready, retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
	return client, db, nil
}

func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*goredis.Client, error) {
	var client *goredis.Client
	err := retry.Do(ctx, startupBackoff(cfg), func(ctx context.Context) error {
		var err error
		client, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis not ready, retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	return client, nil
}
