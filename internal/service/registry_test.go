package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/internal/repository"
	"github.com/limbo/dayslide/internal/service"
	"github.com/limbo/dayslide/pkg/entity"
)

func TestSessionRegistry(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKVStore()
	opts := service.SessionOpts{FocusTick: time.Hour}
	reg := service.NewSessionRegistry(store, newGenerator(fixedNow), opts)
	t.Cleanup(reg.CloseAll)

	deviceID, c, err := reg.Create(ctx)
	require.NoError(t, err)
	_, err = uuid.Parse(deviceID)
	require.NoError(t, err)
	assert.Equal(t, entity.ModeLanding, c.Mode())

	same, err := reg.Get(ctx, deviceID)
	require.NoError(t, err)
	assert.Same(t, c, same)

	_, err = reg.Get(ctx, "not-a-device")
	assert.ErrorIs(t, err, errorvalues.ErrSessionNotFound)

	_, err = c.SignIn(ctx, testUser())
	require.NoError(t, err)

	t.Run("devices are isolated", func(t *testing.T) {
		_, other, err := reg.Create(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.ModeLanding, other.Mode())
	})

	t.Run("session survives restart", func(t *testing.T) {
		restarted := service.NewSessionRegistry(store, newGenerator(fixedNow), opts)
		t.Cleanup(restarted.CloseAll)
		c, err := restarted.Get(ctx, deviceID)
		require.NoError(t, err)
		assert.Equal(t, entity.ModeOnboarding, c.Mode())
		assert.Equal(t, testUser().ID, c.Snapshot().User.ID)
	})
}

func TestSessionRegistryEviction(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKVStore()
	var (
		mu  sync.Mutex
		now = fixedNow
	)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}
	reg := service.NewSessionRegistry(store, newGenerator(fixedNow), service.SessionOpts{FocusTick: time.Hour, Now: clock}).
		WithLimits(service.RegistryOpts{IdleTimeout: time.Minute, MaxSessions: 3})
	t.Cleanup(reg.CloseAll)

	t.Run("idle controllers are dropped", func(t *testing.T) {
		idleID, idle, err := reg.Create(ctx)
		require.NoError(t, err)
		_, err = idle.SignIn(ctx, testUser())
		require.NoError(t, err)

		advance(30 * time.Second)
		activeID, _, err := reg.Create(ctx)
		require.NoError(t, err)

		advance(45 * time.Second)
		assert.Equal(t, 1, reg.EvictIdle())
		assert.Equal(t, 1, reg.Len())

		_, err = reg.Get(ctx, activeID)
		require.NoError(t, err)

		rebuilt, err := reg.Get(ctx, idleID)
		require.NoError(t, err)
		assert.NotSame(t, idle, rebuilt)
		assert.Equal(t, entity.ModeOnboarding, rebuilt.Mode())
		assert.Equal(t, testUser().ID, rebuilt.Snapshot().User.ID)
	})

	t.Run("cap drops least recently used", func(t *testing.T) {
		for range 5 {
			advance(time.Second)
			_, _, err := reg.Create(ctx)
			require.NoError(t, err)
		}
		assert.Equal(t, 3, reg.Len())
	})
}
