package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/pkg/entity"
)

type latencyRange struct {
	min, max time.Duration
}

var (
	hierarchyLatency  = latencyRange{2 * time.Second, 4 * time.Second}
	refineLatency     = latencyRange{1500 * time.Millisecond, 2500 * time.Millisecond}
	actionLatency     = latencyRange{800 * time.Millisecond, 1500 * time.Millisecond}
	motivationLatency = latencyRange{500 * time.Millisecond, 1000 * time.Millisecond}
)

const (
	limitedTimeAvailable = "15min"
	baseSuccess          = 0.7
	maxSuccess           = 0.95
	promptExcerptLen     = 200
)

type GeneratorOpts struct {
	// Multiplies every simulated delay. 0 turns latency off
	LatencyScale float64
	// Probability in [0,1] that a call fails like a dropped request
	FailureRate float64
	Now         func() time.Time
	Logger      *slog.Logger
}

// MockGenerator produces plans from canned tables, with artificial latency.
type MockGenerator struct {
	opts GeneratorOpts
	cat  *contentCatalog
}

func NewMockGenerator(opts GeneratorOpts) *MockGenerator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &MockGenerator{
		opts: opts,
		cat:  mustCatalog(),
	}
}

func (g *MockGenerator) simulate(ctx context.Context, r latencyRange) error {
	d := r.min
	if span := r.max - r.min; span > 0 {
		d += rand.N(span)
	}
	d = time.Duration(float64(d) * g.opts.LatencyScale)
	if d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	if g.opts.FailureRate > 0 && rand.Float64() < g.opts.FailureRate {
		return errorvalues.ErrGenerationFailed
	}
	return nil
}

// primaryFocus picks the first selected area. No selection means personal
// growth; an unknown tag is reported as FocusOther.
func primaryFocus(selectors entity.ContextSelectors) (FocusArea, bool) {
	if len(selectors.PrimaryFocus) == 0 {
		return FocusPersonalGrowth, true
	}
	area, ok := ParseFocusArea(selectors.PrimaryFocus[0])
	if !ok {
		return FocusOther, false
	}
	return area, true
}

func (g *MockGenerator) GenerateHierarchy(ctx context.Context, prompt string, selectors entity.ContextSelectors) (*entity.GoalHierarchy, error) {
	if err := g.simulate(ctx, hierarchyLatency); err != nil {
		return nil, err
	}

	area, known := primaryFocus(selectors)
	if !known {
		g.opts.Logger.Warn("unknown focus area, using default content", slog.String("focus", selectors.PrimaryFocus[0]))
	}
	bundle, hasBundle := g.cat.bundleFor(area)
	if !hasBundle {
		g.opts.Logger.Debug("focus area has no own bundle", slog.String("focus", string(area)))
	}
	lowTime := selectors.TimeCommitment == string(Time15MinDay)

	now := g.opts.Now()
	baseID := uuid.NewString()
	h := &entity.GoalHierarchy{
		ID:        baseID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, tf := range entity.Timeframes() {
		tc := g.cat.tier(tf)
		*h.Tier(tf) = entity.Goal{
			ID:             baseID + "-" + string(tf),
			Title:          bundle.title(tf, lowTime),
			Description:    tc.Description,
			Reasoning:      tc.Reasoning,
			SuccessMetrics: formatMetrics(tc.Metrics, area),
			Obstacles:      cloneStrings(tc.Obstacles),
			Resources:      cloneStrings(tc.Resources),
			Completed:      false,
			Progress:       0,
			Timeframe:      tf,
		}
	}
	h.Someday.Description = "AI-refined vision: " + excerpt(prompt, promptExcerptLen) + "..."
	h.Someday.SuccessMetrics = cloneStrings(bundle.SuccessMetrics)
	h.Someday.Obstacles = cloneStrings(bundle.Obstacles)
	h.Someday.Resources = cloneStrings(bundle.Resources)
	return h, nil
}

func (g *MockGenerator) RefineHierarchy(ctx context.Context, existing *entity.GoalHierarchy, feedback string, adjustments []string) (*entity.GoalHierarchy, error) {
	if existing == nil {
		return nil, errorvalues.ErrNoHierarchy
	}
	if strings.TrimSpace(feedback) == "" && len(adjustments) == 0 {
		return nil, errorvalues.ErrEmptyRefinement
	}
	if err := g.simulate(ctx, refineLatency); err != nil {
		return nil, err
	}

	refined := existing.Clone()
	for _, raw := range adjustments {
		tag, ok := ParseAdjustmentTag(raw)
		if !ok {
			g.opts.Logger.Warn("unknown adjustment tag ignored", slog.String("tag", raw))
			continue
		}
		switch tag {
		case AdjustTimelineAggressive:
			for tf, rw := range g.cat.Refinement.AggressiveTimeline {
				if goal := refined.Tier(tf); goal != nil {
					goal.Title = rw.apply(goal.Title)
				}
			}
		case AdjustResources:
			for tf, res := range g.cat.Refinement.MinimalResources {
				if goal := refined.Tier(tf); goal != nil {
					goal.Resources = cloneStrings(res)
				}
			}
		default:
			// accepted, carries no structural edit
		}
	}

	refined.UpdatedAt = g.opts.Now()
	if !refined.UpdatedAt.After(existing.UpdatedAt) {
		refined.UpdatedAt = existing.UpdatedAt.Add(time.Millisecond)
	}
	return refined, nil
}

func (g *MockGenerator) GenerateDailyAction(ctx context.Context, hierarchy *entity.GoalHierarchy, actx ActionContext) (*entity.DailyAction, error) {
	if hierarchy == nil {
		return nil, errorvalues.ErrNoHierarchy
	}
	if err := g.simulate(ctx, actionLatency); err != nil {
		return nil, err
	}

	base := hierarchy.RightNow
	lowEnergy := actx.EnergyLevel == entity.EnergyLow
	limited := actx.TimeAvailable == limitedTimeAvailable

	action := &entity.DailyAction{
		ID:                 uuid.NewString(),
		GoalID:             base.ID,
		Title:              base.Title,
		Description:        base.Description,
		EstimatedMinutes:   30,
		Difficulty:         entity.DifficultyMedium,
		EnergyRequired:     entity.EnergyMedium,
		Steps:              cloneStrings(g.cat.DailyAction.FullSteps),
		SuccessProbability: SuccessProbability(actx),
	}
	if limited {
		_, after, found := strings.Cut(base.Title, ":")
		short := strings.TrimSpace(after)
		if !found || short == "" {
			short = base.Title
		}
		action.Title = "Quick Start: " + short
		action.EstimatedMinutes = 15
		action.Steps = cloneStrings(g.cat.DailyAction.QuickSteps)
	}
	if lowEnergy {
		action.Difficulty = entity.DifficultyEasy
		action.EnergyRequired = entity.EnergyLow
	}
	return action, nil
}

// SuccessProbability starts at 0.7 and adds 0.2 for high energy, 0.1 for a
// non-minimal time budget and 0.1 for any past success, capped at 0.95.
func SuccessProbability(actx ActionContext) float64 {
	p := baseSuccess
	if actx.EnergyLevel == entity.EnergyHigh {
		p += 0.2
	}
	if actx.TimeAvailable != limitedTimeAvailable {
		p += 0.1
	}
	if len(actx.HistoricalSuccess) > 0 {
		p += 0.1
	}
	return min(p, maxSuccess)
}

type StreakBucket string

const (
	StreakStarting StreakBucket = "starting"
	StreakBuilding StreakBucket = "building"
	StreakStrong   StreakBucket = "strong"
)

func BucketForStreak(streak int) StreakBucket {
	switch {
	case streak > 7:
		return StreakStrong
	case streak > 3:
		return StreakBuilding
	default:
		return StreakStarting
	}
}

func (g *MockGenerator) GenerateMotivation(ctx context.Context, user *entity.User, progress entity.UserProgress, hierarchy *entity.GoalHierarchy) (*entity.Motivation, error) {
	if user == nil {
		return nil, errorvalues.ErrNotAuthenticated
	}
	if hierarchy == nil {
		return nil, errorvalues.ErrNoHierarchy
	}
	if err := g.simulate(ctx, motivationLatency); err != nil {
		return nil, err
	}

	bucket := BucketForStreak(progress.Streak)
	momentum := "building momentum with"
	if bucket == StreakStrong {
		momentum = "crushing it with"
	}
	someday := strings.ToLower(hierarchy.Someday.Title)

	var encouragement string
	switch bucket {
	case StreakStrong:
		encouragement = fmt.Sprintf("Your %s is getting closer with each action you take.", someday)
	case StreakBuilding:
		encouragement = fmt.Sprintf("Each day of progress moves you significantly closer to your %s.", strings.ToLower(hierarchy.FiveYear.Title))
	default:
		encouragement = "Today's action is the foundation for everything you want to achieve."
	}

	return &entity.Motivation{
		DailyMessage: fmt.Sprintf("%s, %s! You're %s your %d-day streak. Ready to make today count toward your %s?",
			greeting(g.opts.Now()), firstName(user.Name), momentum, progress.Streak, someday),
		Insight:       g.cat.Motivation.Insights[bucket],
		Encouragement: encouragement,
	}, nil
}

func greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return "there"
}

func formatMetrics(templates []string, area FocusArea) []string {
	out := make([]string, 0, len(templates))
	for _, m := range templates {
		if strings.Contains(m, "%s") {
			m = fmt.Sprintf(m, area)
		}
		out = append(out, m)
	}
	return out
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func cloneStrings(s []string) []string {
	return append([]string(nil), s...)
}
