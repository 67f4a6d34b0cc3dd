package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/internal/repository"
	"github.com/limbo/dayslide/pkg/entity"
)

const DeleteConfirmationPhrase = "delete my account"

type SessionOpts struct {
	FocusTick time.Duration
	Now       func() time.Time
	Logger    *slog.Logger
}

type SessionSnapshot struct {
	Mode       entity.Mode            `json:"mode"`
	User       *entity.User           `json:"user,omitempty"`
	Hierarchy  *entity.GoalHierarchy  `json:"hierarchy,omitempty"`
	Onboarding *entity.OnboardingData `json:"onboarding,omitempty"`
}

// SessionController owns the mode of one device and moves data between
// storage, the wizard and the dashboard. Onboarding needs a user, dashboard
// needs a user and a hierarchy.
type SessionController struct {
	mu   sync.Mutex
	repo repository.StateRepositoryI
	gen  GeneratorI
	opts SessionOpts

	mode       entity.Mode
	user       *entity.User
	hierarchy  *entity.GoalHierarchy
	onboarding *entity.OnboardingData
	wizard     *Wizard
	dashboard  *Dashboard
}

func NewSessionController(repo repository.StateRepositoryI, gen GeneratorI, opts SessionOpts) *SessionController {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &SessionController{
		repo: repo,
		gen:  gen,
		opts: opts,
		mode: entity.ModeLanding,
	}
}

// Boot restores the persisted session. Corrupted state is wiped and the
// device starts logged out.
func (c *SessionController) Boot(ctx context.Context) (entity.Mode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCorruptedState) {
			c.opts.Logger.Warn("persisted state corrupted, clearing", slog.String("error", err.Error()))
			if clearErr := c.repo.Clear(ctx); clearErr != nil {
				c.opts.Logger.Error("clearing corrupted state failed", slog.String("error", clearErr.Error()))
			}
			c.resetLocked()
			return c.mode, nil
		}
		return c.mode, fmt.Errorf("loading persisted state: %w", err)
	}

	c.resetLocked()
	if state.User == nil {
		return c.mode, nil
	}
	c.user = state.User
	c.hierarchy = state.Hierarchy
	c.onboarding = state.Onboarding
	c.user.OnboardingCompleted = c.onboarding != nil && c.onboarding.Completed

	if c.hierarchy != nil && c.user.OnboardingCompleted {
		err = c.enterDashboardLocked()
	} else {
		err = c.enterOnboardingLocked()
	}
	return c.mode, err
}

// SignIn stores the freshly authenticated user and leaves the landing page.
func (c *SessionController) SignIn(ctx context.Context, user *entity.User) (entity.Mode, error) {
	if user == nil {
		return "", errorvalues.ErrNotAuthenticated
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != entity.ModeLanding {
		return c.mode, fmt.Errorf("%w: sign in from %s", errorvalues.ErrWrongMode, c.mode)
	}

	u := *user
	now := c.opts.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.LastActive = now

	if c.user != nil && c.user.ID != u.ID {
		if err := c.repo.Clear(ctx); err != nil {
			return c.mode, fmt.Errorf("clearing previous user: %w", err)
		}
		c.hierarchy = nil
		c.onboarding = nil
	}
	u.OnboardingCompleted = c.onboarding != nil && c.onboarding.Completed && c.hierarchy != nil
	if err := c.repo.SaveUser(ctx, &u); err != nil {
		return c.mode, fmt.Errorf("saving user: %w", err)
	}
	c.user = &u

	var err error
	if u.OnboardingCompleted {
		err = c.enterDashboardLocked()
	} else {
		err = c.enterOnboardingLocked()
	}
	return c.mode, err
}

// StartJourney is the landing page call to action.
func (c *SessionController) StartJourney() (entity.Mode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return c.mode, errorvalues.ErrNotAuthenticated
	}
	var err error
	if c.user.OnboardingCompleted && c.hierarchy != nil {
		err = c.enterDashboardLocked()
	} else {
		err = c.enterOnboardingLocked()
	}
	return c.mode, err
}

// Wizard returns the running onboarding wizard.
func (c *SessionController) Wizard() (*Wizard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != entity.ModeOnboarding {
		return nil, fmt.Errorf("%w: wizard is only available during onboarding, mode is %s", errorvalues.ErrWrongMode, c.mode)
	}
	return c.wizard, nil
}

// CompleteOnboarding persists the wizard result and opens the dashboard.
func (c *SessionController) CompleteOnboarding(ctx context.Context) (entity.Mode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != entity.ModeOnboarding {
		return c.mode, fmt.Errorf("%w: complete onboarding from %s", errorvalues.ErrWrongMode, c.mode)
	}
	hierarchy, data, err := c.wizard.Complete()
	if err != nil {
		return c.mode, err
	}
	hierarchy.UserID = c.user.ID
	data.GeneratedPlan = hierarchy.Clone()

	if err = c.repo.SaveHierarchy(ctx, hierarchy); err != nil {
		return c.mode, fmt.Errorf("saving hierarchy: %w", err)
	}
	if err = c.repo.SaveOnboarding(ctx, &data); err != nil {
		return c.mode, fmt.Errorf("saving onboarding: %w", err)
	}
	u := *c.user
	u.OnboardingCompleted = true
	if err = c.repo.SaveUser(ctx, &u); err != nil {
		return c.mode, fmt.Errorf("saving user: %w", err)
	}

	c.user = &u
	c.hierarchy = hierarchy
	c.onboarding = &data
	c.wizard = nil
	err = c.enterDashboardLocked()
	return c.mode, err
}

// Dashboard returns the open dashboard.
func (c *SessionController) Dashboard() (*Dashboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != entity.ModeDashboard {
		return nil, fmt.Errorf("%w: dashboard is not open, mode is %s", errorvalues.ErrWrongMode, c.mode)
	}
	return c.dashboard, nil
}

// BackToLanding leaves onboarding or the dashboard. The user stays signed in.
func (c *SessionController) BackToLanding() entity.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enterLandingLocked()
	return c.mode
}

// Logout removes every persisted record and resets the session.
func (c *SessionController) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logoutLocked(ctx)
}

func (c *SessionController) logoutLocked(ctx context.Context) error {
	err := c.repo.Clear(ctx)
	c.resetLocked()
	if err != nil {
		return fmt.Errorf("clearing persisted state: %w", err)
	}
	return nil
}

func (c *SessionController) UpdateProfile(ctx context.Context, upd *ProfileUpdate) (*entity.User, error) {
	upd.Name = strings.TrimSpace(upd.Name)
	upd.Email = strings.TrimSpace(upd.Email)
	if err := validateStruct(upd); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil, errorvalues.ErrNotAuthenticated
	}
	u := *c.user
	u.Name = upd.Name
	u.Email = upd.Email
	if err := c.repo.SaveUser(ctx, &u); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}
	c.user = &u
	if c.dashboard != nil {
		c.dashboard.UpdateUser(&u)
	}
	res := u
	return &res, nil
}

// DeleteAccount wipes the session once the confirmation phrase matches,
// ignoring case. A mismatch changes nothing.
func (c *SessionController) DeleteAccount(ctx context.Context, confirmation string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return errorvalues.ErrNotAuthenticated
	}
	if !strings.EqualFold(confirmation, DeleteConfirmationPhrase) {
		return errorvalues.ErrConfirmationMismatch
	}
	c.opts.Logger.Info("account deleted", slog.String("user_id", c.user.ID))
	return c.logoutLocked(ctx)
}

func (c *SessionController) Mode() entity.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *SessionController) Snapshot() SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := SessionSnapshot{
		Mode:      c.mode,
		Hierarchy: c.hierarchy.Clone(),
	}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	switch {
	case c.wizard != nil:
		d := c.wizard.Data()
		s.Onboarding = &d
	case c.onboarding != nil:
		d := *c.onboarding
		d.GeneratedPlan = d.GeneratedPlan.Clone()
		s.Onboarding = &d
	}
	return s
}

// Close releases the dashboard timer. The session stays usable.
func (c *SessionController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeDashboardLocked()
}

func (c *SessionController) enterOnboardingLocked() error {
	if c.user == nil {
		return fmt.Errorf("%w: onboarding needs a signed in user", errorvalues.ErrModeGuard)
	}
	c.closeDashboardLocked()
	if c.wizard == nil || c.wizard.Completed() {
		c.wizard = NewWizard(c.gen, c.opts.Logger)
	}
	c.mode = entity.ModeOnboarding
	return nil
}

func (c *SessionController) enterDashboardLocked() error {
	if c.user == nil || c.hierarchy == nil {
		return fmt.Errorf("%w: dashboard needs a user and a hierarchy", errorvalues.ErrModeGuard)
	}
	if c.dashboard == nil {
		c.dashboard = NewDashboard(c.gen, c.user, c.hierarchy, DemoProgress(c.opts.Now()), DashboardOpts{
			FocusTick: c.opts.FocusTick,
			Now:       c.opts.Now,
			Logger:    c.opts.Logger,
		})
	}
	c.wizard = nil
	c.mode = entity.ModeDashboard
	return nil
}

func (c *SessionController) enterLandingLocked() {
	c.closeDashboardLocked()
	c.wizard = nil
	c.mode = entity.ModeLanding
}

func (c *SessionController) closeDashboardLocked() {
	if c.dashboard != nil {
		c.dashboard.Close()
		c.dashboard = nil
	}
}

func (c *SessionController) resetLocked() {
	c.enterLandingLocked()
	c.user = nil
	c.hierarchy = nil
	c.onboarding = nil
}
