package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"

	"github.com/limbo/dayslide/pkg/entity"
)

type GeneratorI interface {
	// Builds a seven-tier plan out of a vision statement and context selectors
	GenerateHierarchy(ctx context.Context, prompt string, selectors entity.ContextSelectors) (*entity.GoalHierarchy, error)
	// Returns revised copy of existing. existing is never modified
	RefineHierarchy(ctx context.Context, existing *entity.GoalHierarchy, feedback string, adjustments []string) (*entity.GoalHierarchy, error)
	// Derives today's action from the right-now tier
	GenerateDailyAction(ctx context.Context, hierarchy *entity.GoalHierarchy, actx ActionContext) (*entity.DailyAction, error)
	GenerateMotivation(ctx context.Context, user *entity.User, progress entity.UserProgress, hierarchy *entity.GoalHierarchy) (*entity.Motivation, error)
}

type AuthServiceI interface {
	// Validates sign-up form and returns freshly created user
	SignUp(ctx context.Context, req *SignUpRequest) (*entity.User, error)
	// Validates login form and returns user
	Login(ctx context.Context, req *LoginRequest) (*entity.User, error)
	// Emulates OAuth consent and returns the mocked Google profile
	Google(ctx context.Context) (*entity.User, error)
}

type ActionContext struct {
	// "15min" means the user is short on time
	TimeAvailable     string             `json:"timeAvailable"`
	EnergyLevel       entity.EnergyLevel `json:"energyLevel"`
	Preferences       []string           `json:"preferences"`
	HistoricalSuccess []string           `json:"historicalSuccess"`
}

// DefaultActionContext is what the dashboard asks for when the user gave no context.
func DefaultActionContext() ActionContext {
	return ActionContext{
		TimeAvailable:     "30min",
		EnergyLevel:       entity.EnergyMedium,
		Preferences:       []string{"focused-work"},
		HistoricalSuccess: []string{"morning-sessions"},
	}
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type ProfileUpdate struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}
