package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/pkg/cleanup"
)

type PgKVStore struct {
	conn  PgConnection
	close func()
}

func NewPgKVStore(cfg DBConfig) *PgKVStore {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for kv store error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for kv store: " + err.Error())
	}
	store := &PgKVStore{
		conn:  pool,
		close: pool.Close,
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F:    store.Close,
	})
	return store
}

func NewPgKVStoreWithConn(conn PgConnection) *PgKVStore {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for kv store: " + err.Error())
	}
	return &PgKVStore{
		conn: conn,
	}
}

func (s *PgKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	row := s.conn.QueryRow(ctx, `SELECT value FROM kv_entries WHERE key = $1;`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: getting kv entry: %v", errorvalues.ErrStoreUnavailable, err)
	}
	return value, nil
}

func (s *PgKVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.conn.Exec(ctx, `INSERT INTO kv_entries (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();`, key, value)
	if err != nil {
		return fmt.Errorf("%w: setting kv entry: %v", errorvalues.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PgKVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.conn.Exec(ctx, `DELETE FROM kv_entries WHERE key = ANY($1);`, keys)
	if err != nil {
		return fmt.Errorf("%w: deleting kv entries: %v", errorvalues.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PgKVStore) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}
