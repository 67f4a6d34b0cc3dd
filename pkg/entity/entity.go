package entity

import (
	"errors"
	"fmt"
	"time"
)

type User struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Email               string           `json:"email"`
	ProfilePicture      string           `json:"profilePicture,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	LastActive          time.Time        `json:"lastActive"`
	OnboardingCompleted bool             `json:"onboardingCompleted"`
	Preferences         *UserPreferences `json:"preferences,omitempty"`
}

type UserPreferences struct {
	NotificationTiming   string   `json:"notificationTiming"`
	WorkingStyle         string   `json:"workingStyle"`
	EnergyPatterns       []string `json:"energyPatterns"`
	SuccessPersonality   string   `json:"successPersonality"`
	PreferredActionTypes []string `json:"preferredActionTypes"`
}

// Timeframe is the tier a goal belongs to. The set is closed.
type Timeframe string

const (
	TimeframeSomeday  Timeframe = "someday"
	TimeframeFiveYear Timeframe = "five-year"
	TimeframeOneYear  Timeframe = "one-year"
	TimeframeMonthly  Timeframe = "monthly"
	TimeframeWeekly   Timeframe = "weekly"
	TimeframeDaily    Timeframe = "daily"
	TimeframeRightNow Timeframe = "right-now"
)

// Timeframes lists every tier from the root of the hierarchy down.
func Timeframes() []Timeframe {
	return []Timeframe{
		TimeframeSomeday,
		TimeframeFiveYear,
		TimeframeOneYear,
		TimeframeMonthly,
		TimeframeWeekly,
		TimeframeDaily,
		TimeframeRightNow,
	}
}

type Goal struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Reasoning      string     `json:"reasoning"`
	SuccessMetrics []string   `json:"successMetrics"`
	Obstacles      []string   `json:"obstacles"`
	Resources      []string   `json:"resources"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Completed      bool       `json:"completed"`
	Progress       int        `json:"progress"` // percent, 0..100
	Timeframe      Timeframe  `json:"timeframe"`
}

// GoalHierarchy holds exactly one goal per timeframe.
type GoalHierarchy struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Someday   Goal      `json:"someday"`
	FiveYear  Goal      `json:"fiveYear"`
	OneYear   Goal      `json:"oneYear"`
	Monthly   Goal      `json:"monthly"`
	Weekly    Goal      `json:"weekly"`
	Daily     Goal      `json:"daily"`
	RightNow  Goal      `json:"rightNow"`
}

var ErrInvalidHierarchy = errors.New("invalid goal hierarchy")

// Tier returns the goal stored for tf, or nil for an unknown timeframe.
func (h *GoalHierarchy) Tier(tf Timeframe) *Goal {
	switch tf {
	case TimeframeSomeday:
		return &h.Someday
	case TimeframeFiveYear:
		return &h.FiveYear
	case TimeframeOneYear:
		return &h.OneYear
	case TimeframeMonthly:
		return &h.Monthly
	case TimeframeWeekly:
		return &h.Weekly
	case TimeframeDaily:
		return &h.Daily
	case TimeframeRightNow:
		return &h.RightNow
	}
	return nil
}

// Tiers returns pointers to the seven goals, root first.
func (h *GoalHierarchy) Tiers() []*Goal {
	tiers := make([]*Goal, 0, 7)
	for _, tf := range Timeframes() {
		tiers = append(tiers, h.Tier(tf))
	}
	return tiers
}

// Validate checks that every tier is present and tagged with its own timeframe.
func (h *GoalHierarchy) Validate() error {
	if h == nil {
		return fmt.Errorf("%w: nil hierarchy", ErrInvalidHierarchy)
	}
	var errs []error
	for _, tf := range Timeframes() {
		g := h.Tier(tf)
		if g.ID == "" || g.Title == "" {
			errs = append(errs, fmt.Errorf("%w: tier %s is missing", ErrInvalidHierarchy, tf))
			continue
		}
		if g.Timeframe != tf {
			errs = append(errs, fmt.Errorf("%w: tier %s tagged as %q", ErrInvalidHierarchy, tf, g.Timeframe))
		}
		if g.Progress < 0 || g.Progress > 100 {
			errs = append(errs, fmt.Errorf("%w: tier %s progress %d out of range", ErrInvalidHierarchy, tf, g.Progress))
		}
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy, so callers can edit the result freely.
func (h *GoalHierarchy) Clone() *GoalHierarchy {
	if h == nil {
		return nil
	}
	c := *h
	for _, tf := range Timeframes() {
		g := c.Tier(tf)
		*g = g.clone()
	}
	return &c
}

func (g Goal) clone() Goal {
	g.SuccessMetrics = append([]string(nil), g.SuccessMetrics...)
	g.Obstacles = append([]string(nil), g.Obstacles...)
	g.Resources = append([]string(nil), g.Resources...)
	if g.DueDate != nil {
		d := *g.DueDate
		g.DueDate = &d
	}
	return g
}

type ContextSelectors struct {
	PrimaryFocus   []string `json:"primaryFocus" validate:"required,min=1,dive,focus_area"`
	LifeStage      string   `json:"lifeStage" validate:"required,life_stage"`
	TimeCommitment string   `json:"timeCommitment" validate:"required,time_commitment"`
	WorkingStyle   string   `json:"workingStyle" validate:"required,working_style"`
	Resources      string   `json:"resources" validate:"required,resource_level"`
}

func (cs ContextSelectors) Clone() ContextSelectors {
	cs.PrimaryFocus = append([]string(nil), cs.PrimaryFocus...)
	return cs
}

type OnboardingData struct {
	Step               int              `json:"step"`
	DetailedPrompt     string           `json:"detailedPrompt"`
	ContextSelectors   ContextSelectors `json:"contextSelectors"`
	GeneratedPlan      *GoalHierarchy   `json:"generatedPlan,omitempty"`
	RefinementFeedback string           `json:"refinementFeedback,omitempty"`
	Completed          bool             `json:"completed"`
}

// NewOnboardingData returns the blank record a wizard starts from.
func NewOnboardingData() OnboardingData {
	return OnboardingData{
		Step: 1,
		ContextSelectors: ContextSelectors{
			PrimaryFocus: []string{},
		},
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

type DailyAction struct {
	ID                 string      `json:"id"`
	GoalID             string      `json:"goalId"`
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	EstimatedMinutes   int         `json:"estimatedTime"`
	Difficulty         Difficulty  `json:"difficulty"`
	EnergyRequired     EnergyLevel `json:"energyRequired"`
	Steps              []string    `json:"steps"`
	Completed          bool        `json:"completed"`
	CompletedAt        *time.Time  `json:"completedAt,omitempty"`
	Feedback           string      `json:"feedback,omitempty"`
	SuccessProbability float64     `json:"successProbability"`
}

type WeeklyStat struct {
	Week      string `json:"week"`
	Completed int    `json:"completed"`
	Planned   int    `json:"planned"`
}

type MonthlyMilestone struct {
	Month    string `json:"month"`
	Achieved bool   `json:"achieved"`
	Progress int    `json:"progress"`
}

type UserProgress struct {
	Streak            int                `json:"streak"`
	TotalActions      int                `json:"totalActions"`
	CompletedActions  int                `json:"completedActions"`
	LastActionDate    *time.Time         `json:"lastActionDate,omitempty"`
	WeeklyStats       []WeeklyStat       `json:"weeklyStats"`
	MonthlyMilestones []MonthlyMilestone `json:"monthlyMilestones"`
}

type Motivation struct {
	DailyMessage  string `json:"dailyMessage"`
	Insight       string `json:"insight"`
	Encouragement string `json:"encouragement"`
}

// Mode is the top-level flow a device is in.
type Mode string

const (
	ModeLanding    Mode = "landing"
	ModeOnboarding Mode = "onboarding"
	ModeDashboard  Mode = "dashboard"
)
