package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/internal/repository"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func TestPgGet(t *testing.T) {
	conn, err := pgxmock.NewPool(pgxmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatal(err)
	}
	conn.ExpectPing()
	repo := repository.NewPgKVStoreWithConn(conn)
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT value FROM kv_entries WHERE key = $1;`)

	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs("device:d:dayslide_user").
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":"u"}`)))
		v, err := repo.Get(ctx, "device:d:dayslide_user")
		assert.NoError(t, err)
		assert.Equal(t, []byte(`{"id":"u"}`), v)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs("missing").WillReturnError(pgx.ErrNoRows)
		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, errorvalues.ErrKeyNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs("k").WillReturnError(errors.New("db error"))
		_, err := repo.Get(ctx, "k")
		assert.ErrorIs(t, err, errorvalues.ErrStoreUnavailable)
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}

func TestPgSet(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewPgKVStoreWithConn(conn)
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO kv_entries (key, value) VALUES ($1, $2)`)

	t.Run("upserted", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs("k", []byte("v")).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		assert.NoError(t, repo.Set(ctx, "k", []byte("v")))
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs("k", []byte("v")).WillReturnError(errors.New("db error"))
		assert.ErrorIs(t, repo.Set(ctx, "k", []byte("v")), errorvalues.ErrStoreUnavailable)
	})
}

func TestPgDelete(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewPgKVStoreWithConn(conn)
	ctx := context.Background()
	query := regexp.QuoteMeta(`DELETE FROM kv_entries WHERE key = ANY($1);`)
	keys := []string{"a", "b", "c"}

	t.Run("deleted", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(keys).WillReturnResult(pgxmock.NewResult("DELETE", 2))
		assert.NoError(t, repo.Delete(ctx, keys...))
	})
	t.Run("no keys is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx))
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(keys).WillReturnError(errors.New("db error"))
		assert.ErrorIs(t, repo.Delete(ctx, keys...), errorvalues.ErrStoreUnavailable)
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}
