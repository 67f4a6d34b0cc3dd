package service

type FocusArea string

const (
	FocusCareer         FocusArea = "career"
	FocusHealth         FocusArea = "health"
	FocusRelationships  FocusArea = "relationships"
	FocusFinances       FocusArea = "finances"
	FocusPersonalGrowth FocusArea = "personal-growth"
	FocusCreative       FocusArea = "creative"
	FocusSpiritual      FocusArea = "spiritual"
	FocusOther          FocusArea = "other"
)

var focusAreas = []FocusArea{
	FocusCareer, FocusHealth, FocusRelationships, FocusFinances,
	FocusPersonalGrowth, FocusCreative, FocusSpiritual, FocusOther,
}

func ParseFocusArea(s string) (FocusArea, bool) {
	return parseEnum(focusAreas, s)
}

type LifeStage string

const (
	LifeStudent                 LifeStage = "student"
	LifeEarlyCareer             LifeStage = "early-career"
	LifeEstablishedProfessional LifeStage = "established-professional"
	LifeParent                  LifeStage = "parent"
	LifeCareerTransition        LifeStage = "career-transition"
	LifeRetirementPlanning      LifeStage = "retirement-planning"
)

var lifeStages = []LifeStage{
	LifeStudent, LifeEarlyCareer, LifeEstablishedProfessional,
	LifeParent, LifeCareerTransition, LifeRetirementPlanning,
}

func ParseLifeStage(s string) (LifeStage, bool) {
	return parseEnum(lifeStages, s)
}

type TimeCommitment string

const (
	Time15MinDay   TimeCommitment = "15min/day"
	Time30MinDay   TimeCommitment = "30min/day"
	Time1HrDay     TimeCommitment = "1hr/day"
	Time2PlusHrDay TimeCommitment = "2+hrs/day"
	TimeFlexible   TimeCommitment = "flexible"
)

var timeCommitments = []TimeCommitment{
	Time15MinDay, Time30MinDay, Time1HrDay, Time2PlusHrDay, TimeFlexible,
}

func ParseTimeCommitment(s string) (TimeCommitment, bool) {
	return parseEnum(timeCommitments, s)
}

type WorkingStyle string

const (
	StyleStructured     WorkingStyle = "structured"
	StyleFlexible       WorkingStyle = "flexible"
	StyleAccountability WorkingStyle = "accountability"
	StyleIndependent    WorkingStyle = "independent"
)

var workingStyles = []WorkingStyle{
	StyleStructured, StyleFlexible, StyleAccountability, StyleIndependent,
}

func ParseWorkingStyle(s string) (WorkingStyle, bool) {
	return parseEnum(workingStyles, s)
}

type ResourceLevel string

const (
	ResourcesLimited       ResourceLevel = "limited"
	ResourcesModerate      ResourceLevel = "moderate"
	ResourcesWellResourced ResourceLevel = "well-resourced"
	ResourcesNeedGuidance  ResourceLevel = "need-guidance"
)

var resourceLevels = []ResourceLevel{
	ResourcesLimited, ResourcesModerate, ResourcesWellResourced, ResourcesNeedGuidance,
}

func ParseResourceLevel(s string) (ResourceLevel, bool) {
	return parseEnum(resourceLevels, s)
}

// AdjustmentTag names a category of change requested during plan review.
type AdjustmentTag string

const (
	AdjustTimelineAggressive AdjustmentTag = "timeline-aggressive"
	AdjustTimelineSlow       AdjustmentTag = "timeline-slow"
	AdjustResources          AdjustmentTag = "resources"
	AdjustMissingAspects     AdjustmentTag = "missing-aspects"
	AdjustFocusShift         AdjustmentTag = "focus-shift"
	AdjustOther              AdjustmentTag = "other"
)

var adjustmentTags = []AdjustmentTag{
	AdjustTimelineAggressive, AdjustTimelineSlow, AdjustResources,
	AdjustMissingAspects, AdjustFocusShift, AdjustOther,
}

func ParseAdjustmentTag(s string) (AdjustmentTag, bool) {
	return parseEnum(adjustmentTags, s)
}

func parseEnum[T ~string](known []T, s string) (T, bool) {
	for _, k := range known {
		if string(k) == s {
			return k, true
		}
	}
	var zero T
	return zero, false
}
