package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/pkg/entity"
)

type DashboardOpts struct {
	FocusTick time.Duration
	Now       func() time.Time
	Logger    *slog.Logger
}

type DashboardView struct {
	User       *entity.User          `json:"user"`
	Hierarchy  *entity.GoalHierarchy `json:"hierarchy"`
	Progress   entity.UserProgress   `json:"progress"`
	Action     *entity.DailyAction   `json:"action,omitempty"`
	Motivation *entity.Motivation    `json:"motivation,omitempty"`
	Timer      TimerState            `json:"timer"`
}

// Dashboard holds what the dashboard view shows for one signed-in user.
// Progress lives only in memory.
type Dashboard struct {
	mu     sync.Mutex
	gen    GeneratorI
	logger *slog.Logger
	now    func() time.Time

	user         *entity.User
	hierarchy    *entity.GoalHierarchy
	progress     entity.UserProgress
	action       *entity.DailyAction
	motivation   *entity.Motivation
	actionTicket uint64
	timer        *FocusTimer
}

func NewDashboard(gen GeneratorI, user *entity.User, hierarchy *entity.GoalHierarchy, progress entity.UserProgress, opts DashboardOpts) *Dashboard {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	u := *user
	return &Dashboard{
		gen:       gen,
		logger:    opts.Logger,
		now:       opts.Now,
		user:      &u,
		hierarchy: hierarchy.Clone(),
		progress:  progress,
		timer:     NewFocusTimer(opts.FocusTick),
	}
}

// DemoProgress is the sample history a fresh dashboard starts with.
func DemoProgress(now time.Time) entity.UserProgress {
	yesterday := now.Add(-24 * time.Hour)
	return entity.UserProgress{
		Streak:           3,
		TotalActions:     12,
		CompletedActions: 10,
		LastActionDate:   &yesterday,
		WeeklyStats: []entity.WeeklyStat{
			{Week: "This Week", Completed: 5, Planned: 7},
			{Week: "Last Week", Completed: 6, Planned: 7},
			{Week: "2 Weeks Ago", Completed: 4, Planned: 7},
		},
		MonthlyMilestones: []entity.MonthlyMilestone{
			{Month: now.AddDate(0, -1, 0).Month().String(), Achieved: true, Progress: 100},
			{Month: now.Month().String(), Achieved: false, Progress: 75},
		},
	}
}

func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()
	u := *d.user
	return DashboardView{
		User:       &u,
		Hierarchy:  d.hierarchy.Clone(),
		Progress:   cloneProgress(d.progress),
		Action:     cloneAction(d.action),
		Motivation: cloneMotivation(d.motivation),
		Timer:      d.timer.State(),
	}
}

func (d *Dashboard) Progress() entity.UserProgress {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneProgress(d.progress)
}

// Refresh reloads today's action with the default context and the
// motivation at the same time.
func (d *Dashboard) Refresh(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := d.LoadDailyAction(gctx, DefaultActionContext())
		return err
	})
	g.Go(func() error {
		_, err := d.LoadMotivation(gctx)
		return err
	})
	return g.Wait()
}

// LoadDailyAction replaces today's action. When calls overlap only the
// newest one stores its result.
func (d *Dashboard) LoadDailyAction(ctx context.Context, actx ActionContext) (*entity.DailyAction, error) {
	d.mu.Lock()
	d.actionTicket++
	ticket := d.actionTicket
	hierarchy := d.hierarchy.Clone()
	d.mu.Unlock()

	action, err := d.gen.GenerateDailyAction(ctx, hierarchy, actx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if ticket != d.actionTicket {
		return nil, errorvalues.ErrStaleResult
	}
	if err != nil {
		d.logger.Warn("loading daily action failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("loading daily action: %w", err)
	}
	d.action = action
	return cloneAction(action), nil
}

func (d *Dashboard) LoadMotivation(ctx context.Context) (*entity.Motivation, error) {
	d.mu.Lock()
	user := *d.user
	progress := cloneProgress(d.progress)
	hierarchy := d.hierarchy.Clone()
	d.mu.Unlock()

	m, err := d.gen.GenerateMotivation(ctx, &user, progress, hierarchy)
	if err != nil {
		d.logger.Warn("loading motivation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("loading motivation: %w", err)
	}

	d.mu.Lock()
	d.motivation = m
	d.mu.Unlock()
	return cloneMotivation(m), nil
}

// Motivation returns the cached message, loading it on first use.
func (d *Dashboard) Motivation(ctx context.Context) (*entity.Motivation, error) {
	d.mu.Lock()
	m := cloneMotivation(d.motivation)
	d.mu.Unlock()
	if m != nil {
		return m, nil
	}
	return d.LoadMotivation(ctx)
}

// CompleteAction marks today's action done. The streak grows on every
// completion without looking at the previous action date.
func (d *Dashboard) CompleteAction(feedback string) (*entity.DailyAction, entity.UserProgress, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.action == nil {
		return nil, entity.UserProgress{}, errorvalues.ErrNoAction
	}
	if d.action.Completed {
		return nil, entity.UserProgress{}, errorvalues.ErrActionCompleted
	}
	now := d.now()
	d.action.Completed = true
	d.action.CompletedAt = &now
	d.action.Feedback = strings.TrimSpace(feedback)

	d.progress.Streak++
	d.progress.CompletedActions++
	d.progress.LastActionDate = &now

	d.timer.Stop()
	return cloneAction(d.action), cloneProgress(d.progress), nil
}

// StartTimer starts a focus session. Zero minutes means the estimate of
// today's action.
func (d *Dashboard) StartTimer(minutes int) (TimerState, error) {
	if minutes < 0 {
		return TimerState{}, errorvalues.NewValidationError(map[string]string{
			"minutes": "must not be negative",
		})
	}
	if minutes > MaxFocusMinutes {
		return TimerState{}, errorvalues.NewValidationError(map[string]string{
			"minutes": fmt.Sprintf("must be at most %d", MaxFocusMinutes),
		})
	}
	d.mu.Lock()
	if minutes == 0 {
		if d.action == nil {
			d.mu.Unlock()
			return TimerState{}, errorvalues.ErrNoAction
		}
		minutes = d.action.EstimatedMinutes
	}
	d.mu.Unlock()
	return d.timer.Start(minutes * 60), nil
}

func (d *Dashboard) StopTimer() (TimerState, error) {
	if !d.timer.Stop() {
		return d.timer.State(), errorvalues.ErrTimerNotRunning
	}
	return d.timer.State(), nil
}

func (d *Dashboard) Timer() TimerState {
	return d.timer.State()
}

// UpdateUser swaps the profile shown on the dashboard.
func (d *Dashboard) UpdateUser(user *entity.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u := *user
	d.user = &u
}

// Close stops the focus timer and waits for it.
func (d *Dashboard) Close() {
	d.timer.Stop()
}

func cloneAction(a *entity.DailyAction) *entity.DailyAction {
	if a == nil {
		return nil
	}
	c := *a
	c.Steps = cloneStrings(a.Steps)
	if a.CompletedAt != nil {
		t := *a.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func cloneMotivation(m *entity.Motivation) *entity.Motivation {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

func cloneProgress(p entity.UserProgress) entity.UserProgress {
	c := p
	if p.LastActionDate != nil {
		t := *p.LastActionDate
		c.LastActionDate = &t
	}
	c.WeeklyStats = append([]entity.WeeklyStat(nil), p.WeeklyStats...)
	c.MonthlyMilestones = append([]entity.MonthlyMilestone(nil), p.MonthlyMilestones...)
	return c
}
