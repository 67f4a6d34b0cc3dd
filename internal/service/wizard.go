package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/pkg/entity"
)

const (
	StepWelcome = iota + 1
	StepVision
	StepContext
	StepGenerate
	StepReview
	StepConfirm
)

// Step is the view of the wizard at one of its six positions. Each variant
// carries only what that position needs.
type Step interface {
	Number() int
	Kind() string
}

type WelcomeStep struct{}

type VisionStep struct {
	Prompt string `json:"prompt"`
}

type ContextStep struct {
	Selectors entity.ContextSelectors `json:"selectors"`
}

type GenerateStep struct {
	Hierarchy  *entity.GoalHierarchy `json:"hierarchy,omitempty"`
	Generating bool                  `json:"generating"`
	LastError  string                `json:"lastError,omitempty"`
}

type ReviewStep struct {
	Hierarchy *entity.GoalHierarchy `json:"hierarchy"`
	Refining  bool                  `json:"refining"`
	Feedback  string                `json:"feedback,omitempty"`
	LastError string                `json:"lastError,omitempty"`
}

type ConfirmStep struct {
	Hierarchy *entity.GoalHierarchy `json:"hierarchy"`
}

func (WelcomeStep) Number() int  { return StepWelcome }
func (VisionStep) Number() int   { return StepVision }
func (ContextStep) Number() int  { return StepContext }
func (GenerateStep) Number() int { return StepGenerate }
func (ReviewStep) Number() int   { return StepReview }
func (ConfirmStep) Number() int  { return StepConfirm }

func (WelcomeStep) Kind() string  { return "welcome" }
func (VisionStep) Kind() string   { return "vision" }
func (ContextStep) Kind() string  { return "context" }
func (GenerateStep) Kind() string { return "generate" }
func (ReviewStep) Kind() string   { return "review" }
func (ConfirmStep) Kind() string  { return "confirm" }

// Wizard sequences the onboarding steps. Generate and Refine block on the
// generator without holding the lock; every call takes a ticket and only the
// newest ticket may store its result.
type Wizard struct {
	mu     sync.Mutex
	gen    GeneratorI
	logger *slog.Logger

	data         entity.OnboardingData
	generating   bool
	refining     bool
	genTicket    uint64
	refineTicket uint64
	lastErr      error
}

func NewWizard(gen GeneratorI, logger *slog.Logger) *Wizard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Wizard{
		gen:    gen,
		logger: logger,
		data:   entity.NewOnboardingData(),
	}
}

func (w *Wizard) Current() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentLocked()
}

func (w *Wizard) currentLocked() Step {
	plan := w.data.GeneratedPlan.Clone()
	switch w.data.Step {
	case StepVision:
		return VisionStep{Prompt: w.data.DetailedPrompt}
	case StepContext:
		return ContextStep{Selectors: w.data.ContextSelectors.Clone()}
	case StepGenerate:
		return GenerateStep{Hierarchy: plan, Generating: w.generating, LastError: errString(w.lastErr)}
	case StepReview:
		return ReviewStep{Hierarchy: plan, Refining: w.refining, Feedback: w.data.RefinementFeedback, LastError: errString(w.lastErr)}
	case StepConfirm:
		return ConfirmStep{Hierarchy: plan}
	default:
		return WelcomeStep{}
	}
}

// Data returns a copy of the onboarding record.
func (w *Wizard) Data() entity.OnboardingData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wizard) snapshotLocked() entity.OnboardingData {
	d := w.data
	d.ContextSelectors = d.ContextSelectors.Clone()
	d.GeneratedPlan = d.GeneratedPlan.Clone()
	return d
}

func (w *Wizard) SetVision(prompt string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.data.Step != StepVision {
		return fmt.Errorf("%w: vision is edited on step %d, wizard is on %d", errorvalues.ErrWrongStep, StepVision, w.data.Step)
	}
	if prompt != w.data.DetailedPrompt {
		w.data.DetailedPrompt = prompt
		w.dropPlanLocked()
	}
	return nil
}

func (w *Wizard) SetContext(cs entity.ContextSelectors) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.data.Step != StepContext {
		return fmt.Errorf("%w: context is edited on step %d, wizard is on %d", errorvalues.ErrWrongStep, StepContext, w.data.Step)
	}
	if !sameSelectors(cs, w.data.ContextSelectors) {
		w.data.ContextSelectors = cs.Clone()
		w.dropPlanLocked()
	}
	return nil
}

// dropPlanLocked forgets the plan and invalidates in-flight calls built from
// the old inputs.
func (w *Wizard) dropPlanLocked() {
	if w.data.GeneratedPlan != nil {
		w.logger.Debug("inputs changed, generated plan dropped")
	}
	w.data.GeneratedPlan = nil
	w.data.RefinementFeedback = ""
	w.genTicket++
	w.refineTicket++
	w.generating = false
	w.refining = false
	w.lastErr = nil
}

func (w *Wizard) Advance() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.data.Step >= StepConfirm {
		return errorvalues.ErrLastStep
	}
	if err := w.checkLocked(); err != nil {
		return err
	}
	w.data.Step++
	w.lastErr = nil
	return nil
}

func (w *Wizard) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.data.Step <= StepWelcome {
		return errorvalues.ErrFirstStep
	}
	w.data.Step--
	w.lastErr = nil
	return nil
}

// checkLocked evaluates the gate of the current step.
func (w *Wizard) checkLocked() error {
	switch w.data.Step {
	case StepVision:
		return ValidateVision(w.data.DetailedPrompt)
	case StepContext:
		return ValidateSelectors(w.data.ContextSelectors)
	case StepGenerate:
		if w.data.GeneratedPlan == nil {
			return errorvalues.NewValidationError(map[string]string{
				"generatedPlan": "generate a plan before continuing",
			})
		}
	}
	return nil
}

// Generate asks the generator for a fresh plan. The wizard stays on step 4.
func (w *Wizard) Generate(ctx context.Context) (*entity.GoalHierarchy, error) {
	w.mu.Lock()
	if w.data.Step != StepGenerate {
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: generation runs on step %d, wizard is on %d", errorvalues.ErrWrongStep, StepGenerate, w.data.Step)
	}
	w.genTicket++
	w.refineTicket++
	ticket := w.genTicket
	prompt := w.data.DetailedPrompt
	selectors := w.data.ContextSelectors.Clone()
	w.generating = true
	w.refining = false
	w.lastErr = nil
	w.mu.Unlock()

	plan, err := w.gen.GenerateHierarchy(ctx, prompt, selectors)

	w.mu.Lock()
	defer w.mu.Unlock()
	if ticket != w.genTicket {
		w.logger.Debug("generation result discarded", slog.Uint64("ticket", ticket))
		return nil, errorvalues.ErrStaleResult
	}
	w.generating = false
	if err != nil {
		w.lastErr = err
		w.logger.Warn("generation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("generating hierarchy: %w", err)
	}
	w.data.GeneratedPlan = plan
	w.data.RefinementFeedback = ""
	return plan.Clone(), nil
}

// Refine replaces the plan with a revised one. On failure the current plan
// stays untouched.
func (w *Wizard) Refine(ctx context.Context, feedback string, adjustments []string) (*entity.GoalHierarchy, error) {
	w.mu.Lock()
	if w.data.Step != StepReview {
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: refinement runs on step %d, wizard is on %d", errorvalues.ErrWrongStep, StepReview, w.data.Step)
	}
	if w.data.GeneratedPlan == nil {
		w.mu.Unlock()
		return nil, errorvalues.ErrNoHierarchy
	}
	if strings.TrimSpace(feedback) == "" && len(adjustments) == 0 {
		w.mu.Unlock()
		return nil, errorvalues.ErrEmptyRefinement
	}
	w.refineTicket++
	ticket := w.refineTicket
	base := w.data.GeneratedPlan.Clone()
	w.refining = true
	w.lastErr = nil
	w.mu.Unlock()

	refined, err := w.gen.RefineHierarchy(ctx, base, feedback, slices.Clone(adjustments))

	w.mu.Lock()
	defer w.mu.Unlock()
	if ticket != w.refineTicket {
		w.logger.Debug("refinement result discarded", slog.Uint64("ticket", ticket))
		return nil, errorvalues.ErrStaleResult
	}
	w.refining = false
	if err != nil {
		w.lastErr = err
		w.logger.Warn("refinement failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("refining hierarchy: %w", err)
	}
	w.data.GeneratedPlan = refined
	w.data.RefinementFeedback = feedback
	return refined.Clone(), nil
}

// Complete hands out the final plan and the record marked completed.
// Calling it again returns the same result.
func (w *Wizard) Complete() (*entity.GoalHierarchy, entity.OnboardingData, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.data.Step != StepConfirm {
		return nil, entity.OnboardingData{}, fmt.Errorf("%w: completion happens on step %d, wizard is on %d", errorvalues.ErrWrongStep, StepConfirm, w.data.Step)
	}
	if w.data.GeneratedPlan == nil {
		return nil, entity.OnboardingData{}, errorvalues.ErrNoHierarchy
	}
	w.data.Completed = true
	d := w.snapshotLocked()
	return d.GeneratedPlan.Clone(), d, nil
}

func (w *Wizard) Completed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.data.Completed
}

func sameSelectors(a, b entity.ContextSelectors) bool {
	return slices.Equal(a.PrimaryFocus, b.PrimaryFocus) &&
		a.LifeStage == b.LifeStage &&
		a.TimeCommitment == b.TimeCommitment &&
		a.WorkingStyle == b.WorkingStyle &&
		a.Resources == b.Resources
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
