// Package server assembles the HTTP server from configuration: it opens the
// stores, builds the services and serves the Echo router until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/api"
	"github.com/inkpost/blog-api/internal/api/handler"
	"github.com/inkpost/blog-api/internal/core/ports"
	"github.com/inkpost/blog-api/internal/core/service"
	"github.com/inkpost/blog-api/internal/infrastructure/db/postgres"
	redisdb "github.com/inkpost/blog-api/internal/infrastructure/db/redis"
	"github.com/inkpost/blog-api/internal/infrastructure/security"
	"github.com/inkpost/blog-api/internal/pkg/config"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server wraps the HTTP server and the connections it owns.
type Server struct {
	httpServer *http.Server
	db         *sql.DB
	redis      *goredis.Client
	log        zerolog.Logger
}

// New constructs a Server. Postgres is required; Redis is optional and a
// failed connection only disables idempotent replay.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	db, err := postgres.Open(ctx, postgres.Config{
		URL:          cfg.Postgres.URL,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Postgres.AutoMigrate {
		if err := migrate(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	hasher, err := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	tokens, err := security.NewTokenService(cfg.Auth.JWTSecret.Bytes(), cfg.Auth.TokenTTL)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Server{db: db, log: log}
	readiness := []handler.Dependency{{Name: "postgres", Ping: db.PingContext}}

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: string(cfg.Redis.Password),
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, idempotency keys disabled")
		} else {
			s.redis = client
			idem = redisdb.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
			readiness = append(readiness, handler.Dependency{
				Name: "redis",
				Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
			})
		}
	}

	users := postgres.NewUserRepository(db)
	articles := postgres.NewArticleRepository(db)
	comments := postgres.NewCommentRepository(db)

	e := api.NewRouter(api.Dependencies{
		Logger:         log,
		Verifier:       tokens,
		Auth:           service.NewAuthService(users, hasher, tokens, log),
		Users:          service.NewUserService(users, hasher, log),
		Articles:       service.NewArticleService(articles, idem, log),
		Comments:       service.NewCommentService(comments, idem, log),
		Readiness:      readiness,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s, nil
}

func migrate(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	m, err := postgres.NewMigrator(db)
	if err != nil {
		return err
	}
	applied, err := m.Up(ctx)
	if err != nil {
		return err
	}
	log.Info().Ints64("versions", applied).Msg("migrations applied")
	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.close()
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.httpServer.Shutdown(shutdownCtx)
	s.close()
	if err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.log.Warn().Err(err).Msg("redis close")
		}
	}
	if err := s.db.Close(); err != nil {
		s.log.Warn().Err(err).Msg("postgres close")
	}
}
