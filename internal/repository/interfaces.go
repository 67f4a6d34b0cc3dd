package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repository.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/dayslide/pkg/entity"
)

type KVStore interface {
	// Returns value stored under key or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Creates or overwrites value under key
	Set(ctx context.Context, key string, value []byte) error
	// Removes keys. Absent keys are ignored
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// PersistedState is what a device has saved. Absent keys come back as nil.
type PersistedState struct {
	User       *entity.User
	Hierarchy  *entity.GoalHierarchy
	Onboarding *entity.OnboardingData
}

type StateRepositoryI interface {
	// Reads user, hierarchy and onboarding records. Any undecodable record makes
	// the whole load fail with ErrCorruptedState
	Load(ctx context.Context) (*PersistedState, error)
	SaveUser(ctx context.Context, user *entity.User) error
	SaveHierarchy(ctx context.Context, hierarchy *entity.GoalHierarchy) error
	SaveOnboarding(ctx context.Context, data *entity.OnboardingData) error
	// Removes all three records
	Clear(ctx context.Context) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

type RedisCfg struct {
	// redis://host:port/db or rediss:// for TLS
	URL      string
	Password string
	// Zero keeps records forever
	TTL time.Duration
}
