package recommender

import "lasko/fitness-api/internal/domain"

// CandidateFilter expresses the hard constraints of a retrieval pass. The
// repository layer translates it into a store query; Eligible re-checks it
// in-process so a stale or overly broad query can never leak an ineligible
// plan into scoring.
type CandidateFilter struct {
	// AllowedEquipment lists every tier the user can train with. Empty means
	// the user's tier is unknown and no equipment constraint applies.
	AllowedEquipment []domain.Equipment
	// MinDays/MaxDays bound the plan's day count (exact preference ±1; the
	// off-by-one band stays eligible but scores lower).
	MinDays int
	MaxDays int
}

// BuildCandidateFilter derives the hard-constraint filter from normalized
// preferences.
func BuildCandidateFilter(prefs domain.UserPreferences) CandidateFilter {
	return CandidateFilter{
		AllowedEquipment: prefs.Equipment.TiersUpTo(),
		MinDays:          prefs.TrainingDaysPerWeek - 1,
		MaxDays:          prefs.TrainingDaysPerWeek + 1,
	}
}

// Eligible reports whether a plan satisfies the filter. A plan requiring more
// equipment than the user has is never eligible; unknown plan tiers are
// excluded too since compatibility cannot be established.
func (f CandidateFilter) Eligible(plan *domain.Plan) bool {
	if plan.TrainingDaysPerWeek < f.MinDays || plan.TrainingDaysPerWeek > f.MaxDays {
		return false
	}
	if len(f.AllowedEquipment) == 0 {
		return true
	}
	for _, eq := range f.AllowedEquipment {
		if plan.EquipmentRequired == eq {
			return true
		}
	}
	return false
}

// FilterCandidates applies Eligible over a fetched batch. Returns an empty
// slice, never nil, when nothing survives; the caller decides whether an
// empty candidate set is an error.
func FilterCandidates(plans []domain.Plan, f CandidateFilter) []domain.Plan {
	out := make([]domain.Plan, 0, len(plans))
	for _, p := range plans {
		p := p
		if f.Eligible(&p) {
			out = append(out, p)
		}
	}
	return out
}
