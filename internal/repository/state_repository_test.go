package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/internal/repository"
	"github.com/limbo/dayslide/internal/repository/mocks"
	"github.com/limbo/dayslide/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createdAt = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	loadedAt  = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	timeEqual = cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })
)

func testHierarchy() *entity.GoalHierarchy {
	h := &entity.GoalHierarchy{
		ID:        "plan-1",
		UserID:    "user_abc",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	for _, tf := range entity.Timeframes() {
		*h.Tier(tf) = entity.Goal{
			ID:             "plan-1-" + string(tf),
			Title:          "goal for " + string(tf),
			Description:    "description",
			Reasoning:      "reasoning",
			SuccessMetrics: []string{"metric"},
			Obstacles:      []string{"obstacle"},
			Resources:      []string{"resource"},
			Timeframe:      tf,
		}
	}
	return h
}

func testUser() *entity.User {
	return &entity.User{
		ID:                  "user_abc",
		Name:                "Jane Roe",
		Email:               "jane@example.com",
		CreatedAt:           createdAt,
		LastActive:          createdAt,
		OnboardingCompleted: true,
		Preferences: &entity.UserPreferences{
			NotificationTiming:   "morning",
			WorkingStyle:         "structured",
			EnergyPatterns:       []string{"morning"},
			SuccessPersonality:   "achiever",
			PreferredActionTypes: []string{"focused-work"},
		},
	}
}

func testOnboarding(h *entity.GoalHierarchy) *entity.OnboardingData {
	return &entity.OnboardingData{
		Step:           6,
		DetailedPrompt: "I want to run a marathon and feel strong every single day of my life",
		ContextSelectors: entity.ContextSelectors{
			PrimaryFocus:   []string{"health"},
			LifeStage:      "student",
			TimeCommitment: "30min/day",
			WorkingStyle:   "structured",
			Resources:      "moderate",
		},
		GeneratedPlan: h,
		Completed:     true,
	}
}

func TestStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewStateRepository(repository.NewMemoryKVStore(), "device-1").
		WithClock(func() time.Time { return loadedAt })

	user := testUser()
	h := testHierarchy()
	od := testOnboarding(h)
	require.NoError(t, repo.SaveUser(ctx, user))
	require.NoError(t, repo.SaveHierarchy(ctx, h))
	require.NoError(t, repo.SaveOnboarding(ctx, od))

	state, err := repo.Load(ctx)
	require.NoError(t, err)

	wantUser := *user
	wantUser.LastActive = loadedAt
	if diff := cmp.Diff(&wantUser, state.User, timeEqual); diff != "" {
		t.Errorf("user mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(h, state.Hierarchy, timeEqual); diff != "" {
		t.Errorf("hierarchy mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(od, state.Onboarding, timeEqual); diff != "" {
		t.Errorf("onboarding mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing persisted", func(t *testing.T) {
		repo := repository.NewStateRepository(repository.NewMemoryKVStore(), "empty")
		state, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, state.User)
		assert.Nil(t, state.Hierarchy)
		assert.Nil(t, state.Onboarding)
	})
	t.Run("onboarding flag comes from onboarding record", func(t *testing.T) {
		store := repository.NewMemoryKVStore()
		repo := repository.NewStateRepository(store, "d")
		user := testUser()
		user.OnboardingCompleted = true
		od := testOnboarding(nil)
		od.Completed = false
		require.NoError(t, repo.SaveUser(ctx, user))
		require.NoError(t, repo.SaveOnboarding(ctx, od))

		state, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.False(t, state.User.OnboardingCompleted)
	})
	t.Run("invalid user json", func(t *testing.T) {
		store := repository.NewMemoryKVStore()
		repo := repository.NewStateRepository(store, "d")
		require.NoError(t, repo.SaveHierarchy(ctx, testHierarchy()))
		require.NoError(t, store.Set(ctx, "device:d:"+repository.UserKey, []byte("{not json")))

		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, errorvalues.ErrCorruptedState)
	})
	t.Run("null records", func(t *testing.T) {
		for _, key := range []string{repository.UserKey, repository.HierarchyKey, repository.OnboardingKey} {
			store := repository.NewMemoryKVStore()
			repo := repository.NewStateRepository(store, "d")
			require.NoError(t, store.Set(ctx, "device:d:"+key, []byte(" null ")))

			_, err := repo.Load(ctx)
			assert.ErrorIs(t, err, errorvalues.ErrCorruptedState, key)
		}
	})
	t.Run("user without id", func(t *testing.T) {
		store := repository.NewMemoryKVStore()
		repo := repository.NewStateRepository(store, "d")
		require.NoError(t, store.Set(ctx, "device:d:"+repository.UserKey, []byte(`{"name":"Jane","email":"jane@example.com"}`)))

		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, errorvalues.ErrCorruptedState)
	})
	t.Run("hierarchy missing a tier", func(t *testing.T) {
		store := repository.NewMemoryKVStore()
		repo := repository.NewStateRepository(store, "d")
		require.NoError(t, store.Set(ctx, "device:d:"+repository.HierarchyKey,
			[]byte(`{"id":"x","someday":{"id":"a","title":"b","timeframe":"someday"}}`)))

		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, errorvalues.ErrCorruptedState)
	})
	t.Run("invalid onboarding json", func(t *testing.T) {
		store := repository.NewMemoryKVStore()
		repo := repository.NewStateRepository(store, "d")
		require.NoError(t, store.Set(ctx, "device:d:"+repository.OnboardingKey, []byte(`[1,2`)))

		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, errorvalues.ErrCorruptedState)
	})
	t.Run("store failure is not corruption", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockKVStore(ctrl)
		store.EXPECT().Get(gomock.Any(), "device:d:"+repository.UserKey).Return(nil, errorvalues.ErrStoreUnavailable)
		repo := repository.NewStateRepository(store, "d")

		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, errorvalues.ErrStoreUnavailable)
		assert.False(t, errors.Is(err, errorvalues.ErrCorruptedState))
	})
}

func TestSaveHierarchyRejectsIncomplete(t *testing.T) {
	repo := repository.NewStateRepository(repository.NewMemoryKVStore(), "d")
	h := testHierarchy()
	h.Weekly = entity.Goal{}
	err := repo.SaveHierarchy(context.Background(), h)
	assert.ErrorIs(t, err, entity.ErrInvalidHierarchy)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKVStore()
	repo := repository.NewStateRepository(store, "one")
	other := repository.NewStateRepository(store, "two")

	for _, r := range []*repository.StateRepository{repo, other} {
		require.NoError(t, r.SaveUser(ctx, testUser()))
		require.NoError(t, r.SaveHierarchy(ctx, testHierarchy()))
		require.NoError(t, r.SaveOnboarding(ctx, testOnboarding(nil)))
	}
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{repository.UserKey, repository.HierarchyKey, repository.OnboardingKey} {
		_, err := store.Get(ctx, "device:one:"+key)
		assert.ErrorIs(t, err, errorvalues.ErrKeyNotFound)
		_, err = store.Get(ctx, "device:two:"+key)
		assert.NoError(t, err)
	}
}
