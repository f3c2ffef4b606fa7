// Package recommender implements the training-plan recommendation pipeline:
// survey normalization, candidate retrieval, multi-factor scoring, ranking,
// explanation generation and plan assembly. Everything here is pure
// computation; store round trips stay in the service layer.
package recommender

import (
	"strconv"
	"strings"

	"lasko/fitness-api/internal/domain"
)

// The registration wizard shipped in two languages and several revisions, so
// the same answer arrives under many spellings. Normalization is a fixed
// lookup per field; anything unrecognized maps to the Unknown value and is
// simply excluded from match scoring.

var goalSynonyms = map[string]domain.Goal{
	"mass":         domain.GoalMass,
	"masa":         domain.GoalMass,
	"bulk":         domain.GoalMass,
	"bulking":      domain.GoalMass,
	"muscle":       domain.GoalMass,
	"hypertrophy":  domain.GoalMass,
	"budowa masy":  domain.GoalMass,
	"strength":     domain.GoalStrength,
	"sila":         domain.GoalStrength,
	"siła":         domain.GoalStrength,
	"endurance":    domain.GoalEndurance,
	"wytrzymalosc": domain.GoalEndurance,
	"wytrzymałość": domain.GoalEndurance,
	"kondycja":     domain.GoalEndurance,
	"cardio":       domain.GoalEndurance,
	"fat_loss":     domain.GoalFatLoss,
	"fat loss":     domain.GoalFatLoss,
	"redukcja":     domain.GoalFatLoss,
	"cutting":      domain.GoalFatLoss,
	"weight_loss":  domain.GoalFatLoss,
	"odchudzanie":  domain.GoalFatLoss,
	"health":       domain.GoalHealth,
	"zdrowie":      domain.GoalHealth,
	"wellness":     domain.GoalHealth,
	"general":      domain.GoalHealth,
}

var levelSynonyms = map[string]domain.Level{
	"beginner":            domain.LevelBeginner,
	"poczatkujacy":        domain.LevelBeginner,
	"początkujący":        domain.LevelBeginner,
	"novice":              domain.LevelBeginner,
	"intermediate":        domain.LevelIntermediate,
	"sredniozaawansowany": domain.LevelIntermediate,
	"średniozaawansowany": domain.LevelIntermediate,
	"medium":              domain.LevelIntermediate,
	"advanced":            domain.LevelAdvanced,
	"zaawansowany":        domain.LevelAdvanced,
	"expert":              domain.LevelAdvanced,
}

var equipmentSynonyms = map[string]domain.Equipment{
	"gym":           domain.EquipmentGym,
	"silownia":      domain.EquipmentGym,
	"siłownia":      domain.EquipmentGym,
	"full_gym":      domain.EquipmentGym,
	"home_advanced": domain.EquipmentHomeAdvanced,
	"home gym":      domain.EquipmentHomeAdvanced,
	"home_basic":    domain.EquipmentHomeBasic,
	"home":          domain.EquipmentHomeBasic,
	"dom":           domain.EquipmentHomeBasic,
	"hantle":        domain.EquipmentHomeBasic,
	"dumbbells":     domain.EquipmentHomeBasic,
	"minimal":       domain.EquipmentMinimal,
	"minimalny":     domain.EquipmentMinimal,
	"bands":         domain.EquipmentMinimal,
	"gumy":          domain.EquipmentMinimal,
	"bodyweight":    domain.EquipmentBodyweight,
	"masa ciala":    domain.EquipmentBodyweight,
	"masa ciała":    domain.EquipmentBodyweight,
	"calisthenics":  domain.EquipmentBodyweight,
	"none":          domain.EquipmentBodyweight,
	"brak":          domain.EquipmentBodyweight,
}

// Normalize maps raw survey and profile answers into a canonical preference
// record. Survey answers win over stored profile answers field by field.
// Unrecognized enum values normalize to the Unknown marker, never an error;
// absent or unparseable numeric answers fall back to documented defaults
// (3 days, 60 minutes). Pure function, no side effects.
func Normalize(survey, profile domain.UserProfile) domain.UserPreferences {
	prefs := domain.UserPreferences{
		Goal:                   normalizeGoal(pick(survey.Goal, profile.Goal)),
		Level:                  normalizeLevel(pick(survey.Level, profile.Level)),
		Equipment:              normalizeEquipment(pick(survey.Equipment, profile.Equipment)),
		TrainingDaysPerWeek:    parsePositiveInt(pick(survey.TrainingDaysPerWeek, profile.TrainingDaysPerWeek), domain.DefaultTrainingDaysPerWeek),
		SessionDurationMinutes: parsePositiveInt(pick(survey.SessionDurationMinutes, profile.SessionDurationMinutes), domain.DefaultSessionDurationMinutes),
		FocusAreas:             normalizeTagSet(pickSlice(survey.FocusAreas, profile.FocusAreas)),
		Avoidances:             normalizeTagSet(pickSlice(survey.Avoidances, profile.Avoidances)),
	}
	// The wizard caps focus areas at three but older clients did not.
	if len(prefs.FocusAreas) > 3 {
		prefs.FocusAreas = prefs.FocusAreas[:3]
	}
	return prefs
}

// MissingRequired returns the names of structurally required fields that are
// present in neither the survey nor the profile. Goal and level have no sane
// default, so their absence rejects the request before retrieval; the numeric
// answers default instead.
func MissingRequired(survey, profile domain.UserProfile) []string {
	var missing []string
	if pick(survey.Goal, profile.Goal) == "" {
		missing = append(missing, "goal")
	}
	if pick(survey.Level, profile.Level) == "" {
		missing = append(missing, "level")
	}
	return missing
}

func normalizeGoal(raw string) domain.Goal {
	if g, ok := goalSynonyms[canon(raw)]; ok {
		return g
	}
	return domain.GoalUnknown
}

func normalizeLevel(raw string) domain.Level {
	if l, ok := levelSynonyms[canon(raw)]; ok {
		return l
	}
	return domain.LevelUnknown
}

func normalizeEquipment(raw string) domain.Equipment {
	if e, ok := equipmentSynonyms[canon(raw)]; ok {
		return e
	}
	return domain.EquipmentUnknown
}

func canon(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func pick(survey, profile string) string {
	if strings.TrimSpace(survey) != "" {
		return survey
	}
	return profile
}

func pickSlice(survey, profile []string) []string {
	if len(survey) > 0 {
		return survey
	}
	return profile
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// normalizeTagSet lowercases, trims and dedupes while keeping first-seen
// order.
func normalizeTagSet(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		c := canon(t)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
