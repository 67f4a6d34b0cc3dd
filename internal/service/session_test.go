package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/internal/repository"
	repomocks "github.com/limbo/dayslide/internal/repository/mocks"
	"github.com/limbo/dayslide/internal/service"
	"github.com/limbo/dayslide/pkg/entity"
)

const deviceNS = "3f1c2a9e-0c55-4d8e-9a43-8f1a2b3c4d5e"

func deviceKey(name string) string {
	return "device:" + deviceNS + ":" + name
}

type sessionFixture struct {
	store *repository.MemoryKVStore
	repo  *repository.StateRepository
	gen   *service.MockGenerator
}

func newSessionFixture() *sessionFixture {
	store := repository.NewMemoryKVStore()
	return &sessionFixture{
		store: store,
		repo:  repository.NewStateRepository(store, deviceNS).WithClock(func() time.Time { return fixedNow }),
		gen:   newGenerator(fixedNow),
	}
}

func (f *sessionFixture) controller(t *testing.T) *service.SessionController {
	t.Helper()
	c := service.NewSessionController(f.repo, f.gen, service.SessionOpts{
		FocusTick: time.Hour,
		Now:       func() time.Time { return fixedNow },
	})
	t.Cleanup(c.Close)
	return c
}

func (f *sessionFixture) assertCleared(t *testing.T) {
	t.Helper()
	for _, name := range []string{repository.UserKey, repository.HierarchyKey, repository.OnboardingKey} {
		_, err := f.store.Get(context.Background(), deviceKey(name))
		assert.ErrorIs(t, err, errorvalues.ErrKeyNotFound, name)
	}
}

func testUser() *entity.User {
	return &entity.User{ID: "user_k3j5h2l9q", Name: "Jane Smith", Email: "jane@example.com"}
}

// onboard drives a signed-in controller through the whole wizard.
func onboard(t *testing.T, c *service.SessionController) {
	t.Helper()
	w, err := c.Wizard()
	require.NoError(t, err)
	advanceTo(t, w, service.StepConfirm)
	mode, err := c.CompleteOnboarding(context.Background())
	require.NoError(t, err)
	require.Equal(t, entity.ModeDashboard, mode)
}

func TestSessionBoot(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing stored", func(t *testing.T) {
		f := newSessionFixture()
		mode, err := f.controller(t).Boot(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.ModeLanding, mode)
	})

	t.Run("corrupted user record wipes everything", func(t *testing.T) {
		f := newSessionFixture()
		require.NoError(t, f.repo.SaveHierarchy(ctx, samplePlan(t, "health")))
		onboarding := entity.NewOnboardingData()
		onboarding.Completed = true
		require.NoError(t, f.repo.SaveOnboarding(ctx, &onboarding))
		require.NoError(t, f.store.Set(ctx, deviceKey(repository.UserKey), []byte("{not json")))

		c := f.controller(t)
		mode, err := c.Boot(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.ModeLanding, mode)
		assert.Nil(t, c.Snapshot().User)
		f.assertCleared(t)
	})

	t.Run("null user record wipes everything", func(t *testing.T) {
		f := newSessionFixture()
		onboarding := entity.NewOnboardingData()
		require.NoError(t, f.repo.SaveOnboarding(ctx, &onboarding))
		require.NoError(t, f.store.Set(ctx, deviceKey(repository.UserKey), []byte("null")))

		c := f.controller(t)
		mode, err := c.Boot(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.ModeLanding, mode)
		assert.Nil(t, c.Snapshot().User)
		f.assertCleared(t)
	})

	t.Run("null onboarding record wipes everything", func(t *testing.T) {
		f := newSessionFixture()
		require.NoError(t, f.repo.SaveUser(ctx, testUser()))
		require.NoError(t, f.store.Set(ctx, deviceKey(repository.OnboardingKey), []byte("null")))

		c := f.controller(t)
		mode, err := c.Boot(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.ModeLanding, mode)
		f.assertCleared(t)
	})

	t.Run("user without finished onboarding", func(t *testing.T) {
		f := newSessionFixture()
		require.NoError(t, f.repo.SaveUser(ctx, testUser()))

		c := f.controller(t)
		mode, err := c.Boot(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.ModeOnboarding, mode)
		snap := c.Snapshot()
		require.NotNil(t, snap.User)
		assert.False(t, snap.User.OnboardingCompleted)
		assert.Equal(t, fixedNow, snap.User.LastActive)
	})

	t.Run("finished onboarding opens dashboard", func(t *testing.T) {
		f := newSessionFixture()
		c := f.controller(t)
		_, err := c.SignIn(ctx, testUser())
		require.NoError(t, err)
		onboard(t, c)

		restarted := f.controller(t)
		mode, err := restarted.Boot(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.ModeDashboard, mode)
		snap := restarted.Snapshot()
		assert.True(t, snap.User.OnboardingCompleted)
		require.NotNil(t, snap.Hierarchy)
		assert.Equal(t, testUser().ID, snap.Hierarchy.UserID)
	})

	t.Run("store failure is not corruption", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repomocks.NewMockStateRepositoryI(ctrl)
		repo.EXPECT().Load(gomock.Any()).Return(nil, errorvalues.ErrStoreUnavailable)

		c := service.NewSessionController(repo, nil, service.SessionOpts{})
		mode, err := c.Boot(ctx)
		assert.ErrorIs(t, err, errorvalues.ErrStoreUnavailable)
		assert.Equal(t, entity.ModeLanding, mode)
	})
}

func TestSessionFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("sign in, onboard, dashboard", func(t *testing.T) {
		f := newSessionFixture()
		c := f.controller(t)
		_, err := c.Boot(ctx)
		require.NoError(t, err)

		mode, err := c.SignIn(ctx, testUser())
		require.NoError(t, err)
		assert.Equal(t, entity.ModeOnboarding, mode)
		stored, err := f.repo.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, stored.User)
		assert.Equal(t, testUser().ID, stored.User.ID)
		assert.Nil(t, stored.Hierarchy)

		onboard(t, c)
		stored, err = f.repo.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, stored.Hierarchy)
		require.NotNil(t, stored.Onboarding)
		assert.True(t, stored.Onboarding.Completed)
		assert.True(t, stored.User.OnboardingCompleted)

		d, err := c.Dashboard()
		require.NoError(t, err)
		assert.Equal(t, stored.Hierarchy.ID, d.View().Hierarchy.ID)
	})

	t.Run("start journey", func(t *testing.T) {
		f := newSessionFixture()
		c := f.controller(t)
		_, err := c.StartJourney()
		assert.ErrorIs(t, err, errorvalues.ErrNotAuthenticated)

		_, err = c.SignIn(ctx, testUser())
		require.NoError(t, err)
		assert.Equal(t, entity.ModeLanding, c.BackToLanding())
		mode, err := c.StartJourney()
		require.NoError(t, err)
		assert.Equal(t, entity.ModeOnboarding, mode)

		onboard(t, c)
		assert.Equal(t, entity.ModeLanding, c.BackToLanding())
		mode, err = c.StartJourney()
		require.NoError(t, err)
		assert.Equal(t, entity.ModeDashboard, mode)
	})

	t.Run("operations are tied to modes", func(t *testing.T) {
		f := newSessionFixture()
		c := f.controller(t)
		_, err := c.Wizard()
		assert.ErrorIs(t, err, errorvalues.ErrWrongMode)
		_, err = c.Dashboard()
		assert.ErrorIs(t, err, errorvalues.ErrWrongMode)
		_, err = c.CompleteOnboarding(ctx)
		assert.ErrorIs(t, err, errorvalues.ErrWrongMode)

		_, err = c.SignIn(ctx, testUser())
		require.NoError(t, err)
		_, err = c.SignIn(ctx, testUser())
		assert.ErrorIs(t, err, errorvalues.ErrWrongMode)
		_, err = c.Dashboard()
		assert.ErrorIs(t, err, errorvalues.ErrWrongMode)
		_, err = c.CompleteOnboarding(ctx)
		assert.ErrorIs(t, err, errorvalues.ErrWrongStep)
		assert.Equal(t, entity.ModeOnboarding, c.Mode())
	})

	t.Run("leaving dashboard stops the timer", func(t *testing.T) {
		f := newSessionFixture()
		c := f.controller(t)
		_, err := c.SignIn(ctx, testUser())
		require.NoError(t, err)
		onboard(t, c)

		d, err := c.Dashboard()
		require.NoError(t, err)
		_, err = d.StartTimer(5)
		require.NoError(t, err)
		c.BackToLanding()
		assert.False(t, d.Timer().Running)
	})

	t.Run("another user replaces stored data", func(t *testing.T) {
		f := newSessionFixture()
		c := f.controller(t)
		_, err := c.SignIn(ctx, testUser())
		require.NoError(t, err)
		onboard(t, c)
		c.BackToLanding()

		other := &entity.User{ID: "google_abc", Name: "John Doe", Email: "john.doe@gmail.com"}
		mode, err := c.SignIn(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, entity.ModeOnboarding, mode)
		stored, err := f.repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, other.ID, stored.User.ID)
		assert.Nil(t, stored.Hierarchy)
	})
}

func TestSessionLogoutAndAccount(t *testing.T) {
	ctx := context.Background()

	signedIn := func(t *testing.T) (*sessionFixture, *service.SessionController) {
		f := newSessionFixture()
		c := f.controller(t)
		_, err := c.SignIn(ctx, testUser())
		require.NoError(t, err)
		onboard(t, c)
		return f, c
	}

	t.Run("logout clears everything", func(t *testing.T) {
		f, c := signedIn(t)
		require.NoError(t, c.Logout(ctx))
		assert.Equal(t, entity.ModeLanding, c.Mode())
		snap := c.Snapshot()
		assert.Nil(t, snap.User)
		assert.Nil(t, snap.Hierarchy)
		f.assertCleared(t)
	})

	t.Run("delete needs the phrase", func(t *testing.T) {
		f, c := signedIn(t)
		err := c.DeleteAccount(ctx, "delete account")
		assert.ErrorIs(t, err, errorvalues.ErrConfirmationMismatch)
		assert.Equal(t, entity.ModeDashboard, c.Mode())
		stored, err := f.repo.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, stored.User)

		require.NoError(t, c.DeleteAccount(ctx, "Delete My Account"))
		assert.Equal(t, entity.ModeLanding, c.Mode())
		f.assertCleared(t)

		assert.ErrorIs(t, c.DeleteAccount(ctx, "delete my account"), errorvalues.ErrNotAuthenticated)
	})

	t.Run("update profile", func(t *testing.T) {
		f, c := signedIn(t)
		_, err := c.UpdateProfile(ctx, &service.ProfileUpdate{Name: "", Email: "nope"})
		var verr *errorvalues.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "name")
		assert.Contains(t, verr.Fields, "email")

		u, err := c.UpdateProfile(ctx, &service.ProfileUpdate{Name: " Janet ", Email: "janet@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Janet", u.Name)

		stored, err := f.repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "janet@example.com", stored.User.Email)
		d, err := c.Dashboard()
		require.NoError(t, err)
		assert.Equal(t, "Janet", d.View().User.Name)
	})

	t.Run("profile needs a user", func(t *testing.T) {
		c := newSessionFixture().controller(t)
		_, err := c.UpdateProfile(ctx, &service.ProfileUpdate{Name: "A", Email: "a@b.co"})
		assert.ErrorIs(t, err, errorvalues.ErrNotAuthenticated)
	})
}
