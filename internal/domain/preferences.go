package domain

// Canonical enums for the recommendation pipeline. Raw survey answers arrive
// in mixed vocabularies (Polish and English, different wizard versions) and
// are mapped onto these by the recommender's normalizer. Anything that does
// not map lands on the Unknown value, which is excluded from match scoring
// rather than rejected.

// Goal is the user's primary training objective.
type Goal string

const (
	GoalMass      Goal = "mass"
	GoalStrength  Goal = "strength"
	GoalEndurance Goal = "endurance"
	GoalFatLoss   Goal = "fat_loss"
	GoalHealth    Goal = "health"
	GoalUnknown   Goal = ""
)

// Level is the self-reported experience tier.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelUnknown      Level = ""
)

// Equipment is an ordered availability tier, from bodyweight-only up to a
// fully equipped gym. A plan is eligible for a user when it requires the same
// tier or a lower one.
type Equipment string

const (
	EquipmentBodyweight   Equipment = "bodyweight"
	EquipmentMinimal      Equipment = "minimal"
	EquipmentHomeBasic    Equipment = "home_basic"
	EquipmentHomeAdvanced Equipment = "home_advanced"
	EquipmentGym          Equipment = "gym"
	EquipmentUnknown      Equipment = ""
)

// equipmentRank orders the tiers for subset comparisons.
var equipmentRank = map[Equipment]int{
	EquipmentBodyweight:   0,
	EquipmentMinimal:      1,
	EquipmentHomeBasic:    2,
	EquipmentHomeAdvanced: 3,
	EquipmentGym:          4,
}

// Rank returns the position of the tier in the availability order and whether
// the tier is a known value.
func (e Equipment) Rank() (int, bool) {
	r, ok := equipmentRank[e]
	return r, ok
}

// TiersUpTo returns every known tier whose rank is less than or equal to e's,
// in ascending order. Used to build the candidate filter.
func (e Equipment) TiersUpTo() []Equipment {
	max, ok := e.Rank()
	if !ok {
		return nil
	}
	tiers := make([]Equipment, 0, max+1)
	for _, t := range []Equipment{EquipmentBodyweight, EquipmentMinimal, EquipmentHomeBasic, EquipmentHomeAdvanced, EquipmentGym} {
		if r, _ := t.Rank(); r <= max {
			tiers = append(tiers, t)
		}
	}
	return tiers
}

// UserPreferences is the canonical, normalized preference record the whole
// pipeline operates on. It is derived per request and never persisted as-is.
type UserPreferences struct {
	Goal                   Goal
	Level                  Level
	Equipment              Equipment
	TrainingDaysPerWeek    int
	SessionDurationMinutes int
	FocusAreas             []string
	Avoidances             []string
}

// Defaults applied by the normalizer when numeric answers are absent or
// unparseable.
const (
	DefaultTrainingDaysPerWeek    = 3
	DefaultSessionDurationMinutes = 60
)
