package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/internal/repository"
)

const (
	DefaultSessionIdleTimeout = 30 * time.Minute
	DefaultMaxSessions        = 10000
)

type RegistryOpts struct {
	// Controllers unused for longer are dropped by EvictIdle
	IdleTimeout time.Duration
	// Reaching the cap drops the least recently used controller
	MaxSessions int
}

type registryEntry struct {
	c        *SessionController
	lastUsed time.Time
}

// SessionRegistry keeps one controller per device. Each device gets its own
// namespace in the shared store, so a controller can be rebuilt from storage
// after a restart or an eviction.
type SessionRegistry struct {
	mu       sync.Mutex
	store    repository.KVStore
	gen      GeneratorI
	opts     SessionOpts
	limits   RegistryOpts
	sessions map[string]*registryEntry
}

func NewSessionRegistry(store repository.KVStore, gen GeneratorI, opts SessionOpts) *SessionRegistry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SessionRegistry{
		store: store,
		gen:   gen,
		opts:  opts,
		limits: RegistryOpts{
			IdleTimeout: DefaultSessionIdleTimeout,
			MaxSessions: DefaultMaxSessions,
		},
		sessions: make(map[string]*registryEntry),
	}
}

// WithLimits overrides the eviction limits. Zero fields keep the defaults.
func (sr *SessionRegistry) WithLimits(limits RegistryOpts) *SessionRegistry {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	if limits.IdleTimeout > 0 {
		sr.limits.IdleTimeout = limits.IdleTimeout
	}
	if limits.MaxSessions > 0 {
		sr.limits.MaxSessions = limits.MaxSessions
	}
	return sr
}

// Create registers a new device and boots its controller.
func (sr *SessionRegistry) Create(ctx context.Context) (string, *SessionController, error) {
	deviceID := uuid.NewString()
	c, err := sr.Get(ctx, deviceID)
	if err != nil {
		return "", nil, err
	}
	return deviceID, c, nil
}

// Get returns the controller of deviceID, booting it from storage on first
// use or after it was evicted.
func (sr *SessionRegistry) Get(ctx context.Context, deviceID string) (*SessionController, error) {
	if _, err := uuid.Parse(deviceID); err != nil {
		return nil, fmt.Errorf("%w: %q", errorvalues.ErrSessionNotFound, deviceID)
	}
	sr.mu.Lock()
	defer sr.mu.Unlock()
	now := sr.opts.Now()
	if e, ok := sr.sessions[deviceID]; ok {
		e.lastUsed = now
		return e.c, nil
	}

	opts := sr.opts
	opts.Logger = sr.opts.Logger.With(slog.String("device_id", deviceID))
	repo := repository.NewStateRepository(sr.store, deviceID)
	c := NewSessionController(repo, sr.gen, opts)
	if _, err := c.Boot(ctx); err != nil {
		return nil, fmt.Errorf("booting session: %w", err)
	}
	if len(sr.sessions) >= sr.limits.MaxSessions {
		sr.evictOldestLocked()
	}
	sr.sessions[deviceID] = &registryEntry{c: c, lastUsed: now}
	return c, nil
}

func (sr *SessionRegistry) evictOldestLocked() {
	var (
		oldestID string
		oldest   *registryEntry
	)
	for id, e := range sr.sessions {
		if oldest == nil || e.lastUsed.Before(oldest.lastUsed) {
			oldestID, oldest = id, e
		}
	}
	if oldest != nil {
		oldest.c.Close()
		delete(sr.sessions, oldestID)
		sr.opts.Logger.Info("session cap reached, evicted device", slog.String("device_id", oldestID))
	}
}

// EvictIdle drops controllers unused for longer than the idle timeout and
// returns how many were dropped.
func (sr *SessionRegistry) EvictIdle() int {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	cutoff := sr.opts.Now().Add(-sr.limits.IdleTimeout)
	evicted := 0
	for id, e := range sr.sessions {
		if e.lastUsed.Before(cutoff) {
			e.c.Close()
			delete(sr.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		sr.opts.Logger.Info("idle sessions evicted", slog.Int("count", evicted), slog.Int("remaining", len(sr.sessions)))
	}
	return evicted
}

// RunEviction calls EvictIdle every interval until ctx is done.
func (sr *SessionRegistry) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sr.EvictIdle()
		}
	}
}

func (sr *SessionRegistry) Len() int {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return len(sr.sessions)
}

// CloseAll stops every dashboard timer. Used on shutdown.
func (sr *SessionRegistry) CloseAll() {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	for _, e := range sr.sessions {
		e.c.Close()
	}
	sr.opts.Logger.Info("sessions closed", slog.Int("count", len(sr.sessions)))
}
