package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/limbo/dayslide/internal/api"
	"github.com/limbo/dayslide/internal/repository"
	"github.com/limbo/dayslide/internal/service"
	"github.com/limbo/dayslide/pkg/cleanup"
	"github.com/limbo/dayslide/pkg/config"
	jwtservice "github.com/limbo/dayslide/pkg/jwt_service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API until SIGINT or SIGTERM",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.New()
	secret := cfg.GetString("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	defer cleanup.CleanUp()

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	latency := cfg.GetFloat("GENERATOR_LATENCY_SCALE", 1)
	gen := service.NewMockGenerator(service.GeneratorOpts{
		LatencyScale: latency,
		FailureRate:  cfg.GetFloat("GENERATOR_FAILURE_RATE", 0),
	})
	idleTimeout := cfg.GetDuration("SESSION_IDLE_TIMEOUT", service.DefaultSessionIdleTimeout)
	if idleTimeout <= 0 {
		idleTimeout = service.DefaultSessionIdleTimeout
	}
	registry := service.NewSessionRegistry(store, gen, service.SessionOpts{
		FocusTick: cfg.GetDuration("FOCUS_TICK", service.DefaultFocusTick),
	}).WithLimits(service.RegistryOpts{
		IdleTimeout: idleTimeout,
		MaxSessions: cfg.GetInt("SESSION_MAX", service.DefaultMaxSessions),
	})
	cleanup.Register(&cleanup.Job{
		Name: "closing device sessions",
		F: func() error {
			registry.CloseAll()
			return nil
		},
	})

	serv := api.New(&api.ServicesList{
		Registry:    registry,
		AuthService: service.NewAuthService(service.AuthOpts{LatencyScale: latency}),
		JwtService:  jwtservice.New(secret, cfg.GetDuration("TOKEN_TTL", 0)),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serv.Run(gctx, cfg.GetStringOr("API_ADDRESS", ":8080"))
	})
	g.Go(func() error {
		registry.RunEviction(gctx, idleTimeout/2)
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// newStore builds the key-value backend named by STORAGE_DRIVER. Network
// backends register their own close job.
func newStore(cfg *config.Config) (repository.KVStore, error) {
	driver := cfg.GetStringOr("STORAGE_DRIVER", "memory")
	slog.Info("using storage driver", slog.String("driver", driver))
	switch driver {
	case "memory":
		return repository.NewMemoryKVStore(), nil
	case "redis":
		return repository.NewRedisKVStore(&repository.RedisCfg{
			URL:      cfg.GetString("REDIS_URL"),
			Password: cfg.GetString("REDIS_PASSWORD"),
			TTL:      cfg.GetDuration("STATE_TTL", 0),
		}), nil
	case "postgres":
		return repository.NewPgKVStore(pgConfig(cfg)), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}
}

func pgConfig(cfg *config.Config) *repository.PGCfg {
	return &repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
}
