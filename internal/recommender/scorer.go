package recommender

import (
	"fmt"

	"lasko/fitness-api/internal/domain"
)

// Mode selects the scoring strategy.
type Mode string

const (
	ModeContent    Mode = "content"    // survey-only
	ModePopularity Mode = "popularity" // community-only
	ModeHybrid     Mode = "hybrid"     // blend of both
)

// ParseMode maps a request string onto a Mode, defaulting to hybrid.
func ParseMode(raw string) Mode {
	switch Mode(raw) {
	case ModeContent, ModePopularity, ModeHybrid:
		return Mode(raw)
	default:
		return ModeHybrid
	}
}

// Content-mode factor weights. They sum to 1 so a full match scores exactly 1.
const (
	weightGoal      = 0.40
	weightLevel     = 0.25
	weightSchedule  = 0.20
	weightEquipment = 0.15
)

// Factors scoring above this threshold earn a whyRecommended clause.
const whyThreshold = 0.6

// CommunityStats carries the popularity signal for one goal+level cohort:
// activation counts per plan id (hex) and the cohort's total sample size.
type CommunityStats struct {
	ActivationsByPlan map[string]int
	SampleSize        int
}

// maxActivations is the largest per-plan count, used to scale popularity
// into [0,1] relative to the candidate set's cohort.
func (s *CommunityStats) maxActivations() int {
	if s == nil {
		return 0
	}
	max := 0
	for _, n := range s.ActivationsByPlan {
		if n > max {
			max = n
		}
	}
	return max
}

// Goals that load the same training style give partial credit on a mismatch.
var goalCategory = map[domain.Goal]string{
	domain.GoalMass:      "resistance",
	domain.GoalStrength:  "resistance",
	domain.GoalEndurance: "conditioning",
	domain.GoalFatLoss:   "conditioning",
	domain.GoalHealth:    "general",
}

var levelOrder = map[domain.Level]int{
	domain.LevelBeginner:     0,
	domain.LevelIntermediate: 1,
	domain.LevelAdvanced:     2,
}

// Score computes the multi-factor match of one plan against normalized
// preferences. Every per-factor score and the final score are in [0,1].
// Unknown preference values are excluded from the content blend (their weight
// is dropped and the rest renormalized) rather than scored as zero, so an
// incomplete survey degrades gracefully instead of punishing every plan.
func Score(plan *domain.Plan, prefs domain.UserPreferences, mode Mode, stats *CommunityStats) domain.ScoredCandidate {
	c := domain.ScoreComponents{
		Goal:      goalScore(plan.GoalType, prefs.Goal),
		Level:     levelScore(plan.DifficultyLevel, prefs.Level),
		Schedule:  scheduleScore(plan.TrainingDaysPerWeek, prefs.TrainingDaysPerWeek),
		Equipment: equipmentScore(plan.EquipmentRequired, prefs.Equipment),
	}
	if mode != ModeContent {
		c.Popularity = popularityScore(plan, stats)
	}

	var final float64
	switch mode {
	case ModePopularity:
		final = c.Popularity
	case ModeHybrid:
		w := ContentWeight(sampleSize(stats))
		final = w*contentScore(c, prefs) + (1-w)*c.Popularity
	default:
		final = contentScore(c, prefs)
	}

	return domain.ScoredCandidate{
		Plan:           plan,
		Score:          clamp01(final),
		Components:     c,
		WhyRecommended: whyRecommended(c, prefs, mode),
	}
}

// contentScore blends the four content factors. Factors whose preference is
// unknown are left out and the remaining weights renormalized.
func contentScore(c domain.ScoreComponents, prefs domain.UserPreferences) float64 {
	sum, wsum := 0.0, 0.0
	if prefs.Goal != domain.GoalUnknown {
		sum += weightGoal * c.Goal
		wsum += weightGoal
	}
	if prefs.Level != domain.LevelUnknown {
		sum += weightLevel * c.Level
		wsum += weightLevel
	}
	// Schedule always has a value: missing day counts default to 3.
	sum += weightSchedule * c.Schedule
	wsum += weightSchedule
	if prefs.Equipment != domain.EquipmentUnknown {
		sum += weightEquipment * c.Equipment
		wsum += weightEquipment
	}
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

func goalScore(planGoal domain.Goal, userGoal domain.Goal) float64 {
	if userGoal == domain.GoalUnknown || planGoal == domain.GoalUnknown {
		return 0
	}
	if planGoal == userGoal {
		return 1.0
	}
	if goalCategory[planGoal] == goalCategory[userGoal] {
		return 0.3
	}
	return 0
}

func levelScore(planLevel domain.Level, userLevel domain.Level) float64 {
	pu, okP := levelOrder[planLevel]
	uu, okU := levelOrder[userLevel]
	if !okP || !okU {
		return 0
	}
	switch diff := abs(pu - uu); diff {
	case 0:
		return 1.0
	case 1:
		return 0.6
	default:
		return 0.2
	}
}

func scheduleScore(planDays, userDays int) float64 {
	switch diff := abs(planDays - userDays); diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	default:
		return 0.3
	}
}

// equipmentScore assumes the hard filter already removed plans requiring more
// than the user has; if one slips through it scores 0 rather than erroring.
func equipmentScore(planEq domain.Equipment, userEq domain.Equipment) float64 {
	pr, okP := planEq.Rank()
	ur, okU := userEq.Rank()
	if !okP || !okU {
		return 0
	}
	switch {
	case pr == ur:
		return 1.0
	case pr < ur:
		return 0.8
	default:
		return 0
	}
}

func popularityScore(plan *domain.Plan, stats *CommunityStats) float64 {
	if stats == nil || len(stats.ActivationsByPlan) == 0 {
		return 0
	}
	max := stats.maxActivations()
	if max == 0 {
		return 0
	}
	return float64(stats.ActivationsByPlan[plan.ID.Hex()]) / float64(max)
}

// ContentWeight is the trust placed in the content score when blending in
// hybrid mode. It ramps linearly from 0.9 with no community data down to the
// 0.5 floor once the cohort has hybridFullTrustSamples activations — more
// data means more trust in the popularity signal.
const hybridFullTrustSamples = 40

func ContentWeight(cohortSamples int) float64 {
	if cohortSamples <= 0 {
		return 0.9
	}
	if cohortSamples >= hybridFullTrustSamples {
		return 0.5
	}
	return 0.9 - 0.4*float64(cohortSamples)/float64(hybridFullTrustSamples)
}

func sampleSize(stats *CommunityStats) int {
	if stats == nil {
		return 0
	}
	return stats.SampleSize
}

// whyRecommended emits one human-readable clause per factor above the
// threshold, in the fixed order goal, level, schedule, equipment, popularity.
func whyRecommended(c domain.ScoreComponents, prefs domain.UserPreferences, mode Mode) []string {
	reasons := make([]string, 0, 5)
	if c.Goal > whyThreshold {
		reasons = append(reasons, fmt.Sprintf("Goal: %s", prefs.Goal))
	}
	if c.Level > whyThreshold {
		reasons = append(reasons, fmt.Sprintf("Level: %s", prefs.Level))
	}
	if c.Schedule > whyThreshold {
		reasons = append(reasons, fmt.Sprintf("Schedule: %d days/week", prefs.TrainingDaysPerWeek))
	}
	if c.Equipment > whyThreshold {
		reasons = append(reasons, fmt.Sprintf("Equipment: %s", prefs.Equipment))
	}
	if mode != ModeContent && c.Popularity > whyThreshold {
		reasons = append(reasons, "Popular with users like you")
	}
	return reasons
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
