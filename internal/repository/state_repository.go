package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/pkg/entity"
)

const (
	UserKey       = "dayslide_user"
	HierarchyKey  = "dayslide_goals"
	OnboardingKey = "dayslide_onboarding"
)

// storedUser is the persisted shape of entity.User. lastActive is not stored,
// it is set to the load time instead.
type storedUser struct {
	ID                  string                  `json:"id"`
	Name                string                  `json:"name"`
	Email               string                  `json:"email"`
	ProfilePicture      string                  `json:"profilePicture,omitempty"`
	CreatedAt           time.Time               `json:"createdAt"`
	OnboardingCompleted bool                    `json:"onboardingCompleted"`
	Preferences         *entity.UserPreferences `json:"preferences,omitempty"`
}

// StateRepository stores one device's records in a KVStore under a common prefix.
type StateRepository struct {
	store  KVStore
	prefix string
	now    func() time.Time
}

func NewStateRepository(store KVStore, namespace string) *StateRepository {
	prefix := ""
	if namespace != "" {
		prefix = "device:" + namespace + ":"
	}
	return &StateRepository{
		store:  store,
		prefix: prefix,
		now:    time.Now,
	}
}

// WithClock replaces the clock used to re-materialise lastActive.
func (r *StateRepository) WithClock(now func() time.Time) *StateRepository {
	r.now = now
	return r
}

func (r *StateRepository) key(name string) string {
	return r.prefix + name
}

func (r *StateRepository) Load(ctx context.Context) (*PersistedState, error) {
	var state PersistedState

	rawUser, err := r.read(ctx, UserKey)
	if err != nil {
		return nil, err
	}
	rawHierarchy, err := r.read(ctx, HierarchyKey)
	if err != nil {
		return nil, err
	}
	rawOnboarding, err := r.read(ctx, OnboardingKey)
	if err != nil {
		return nil, err
	}

	if rawUser != nil {
		var su storedUser
		if err = decodeRecord(rawUser, &su); err != nil {
			return nil, fmt.Errorf("%w: user record: %v", errorvalues.ErrCorruptedState, err)
		}
		if su.ID == "" {
			return nil, fmt.Errorf("%w: user record has no id", errorvalues.ErrCorruptedState)
		}
		state.User = &entity.User{
			ID:                  su.ID,
			Name:                su.Name,
			Email:               su.Email,
			ProfilePicture:      su.ProfilePicture,
			CreatedAt:           su.CreatedAt,
			LastActive:          r.now(),
			OnboardingCompleted: su.OnboardingCompleted,
			Preferences:         su.Preferences,
		}
	}
	if rawHierarchy != nil {
		var h entity.GoalHierarchy
		if err = decodeRecord(rawHierarchy, &h); err != nil {
			return nil, fmt.Errorf("%w: goals record: %v", errorvalues.ErrCorruptedState, err)
		}
		if err = h.Validate(); err != nil {
			return nil, fmt.Errorf("%w: goals record: %v", errorvalues.ErrCorruptedState, err)
		}
		state.Hierarchy = &h
	}
	if rawOnboarding != nil {
		var od entity.OnboardingData
		if err = decodeRecord(rawOnboarding, &od); err != nil {
			return nil, fmt.Errorf("%w: onboarding record: %v", errorvalues.ErrCorruptedState, err)
		}
		state.Onboarding = &od
		if state.User != nil {
			state.User.OnboardingCompleted = od.Completed
		}
	}
	return &state, nil
}

// decodeRecord rejects a literal null, which would otherwise decode into a zero value.
func decodeRecord(raw []byte, v any) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errors.New("record is null")
	}
	return sonic.Unmarshal(raw, v)
}

// read returns nil, nil for an absent key.
func (r *StateRepository) read(ctx context.Context, name string) ([]byte, error) {
	raw, err := r.store.Get(ctx, r.key(name))
	if err != nil {
		if errors.Is(err, errorvalues.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return raw, nil
}

func (r *StateRepository) SaveUser(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	return r.write(ctx, UserKey, storedUser{
		ID:                  user.ID,
		Name:                user.Name,
		Email:               user.Email,
		ProfilePicture:      user.ProfilePicture,
		CreatedAt:           user.CreatedAt,
		OnboardingCompleted: user.OnboardingCompleted,
		Preferences:         user.Preferences,
	})
}

func (r *StateRepository) SaveHierarchy(ctx context.Context, hierarchy *entity.GoalHierarchy) error {
	if err := hierarchy.Validate(); err != nil {
		return err
	}
	return r.write(ctx, HierarchyKey, hierarchy)
}

func (r *StateRepository) SaveOnboarding(ctx context.Context, data *entity.OnboardingData) error {
	if data == nil {
		return errors.New("onboarding data is nil")
	}
	return r.write(ctx, OnboardingKey, data)
}

func (r *StateRepository) write(ctx context.Context, name string, v any) error {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err = r.store.Set(ctx, r.key(name), raw); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (r *StateRepository) Clear(ctx context.Context) error {
	err := r.store.Delete(ctx, r.key(UserKey), r.key(HierarchyKey), r.key(OnboardingKey))
	if err != nil {
		return fmt.Errorf("clearing state: %w", err)
	}
	return nil
}
