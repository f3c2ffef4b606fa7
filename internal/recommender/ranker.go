package recommender

import (
	"errors"
	"sort"

	"lasko/fitness-api/internal/domain"
)

// ErrNoCandidates signals that ranking was asked to pick from an empty set.
// Callers map it to an explicit "no match" outcome, not a server error.
var ErrNoCandidates = errors.New("no candidates to rank")

// Ranking separates the winning plan from the runners-up.
type Ranking struct {
	Best         domain.ScoredCandidate
	Alternatives []domain.ScoredCandidate
}

// Rank sorts candidates descending by final score and truncates to count.
// Ties break on goalScore, then levelScore, then lexicographic plan name, so
// identical inputs always rank identically regardless of fetch order.
func Rank(candidates []domain.ScoredCandidate, count int) (Ranking, error) {
	if len(candidates) == 0 {
		return Ranking{}, ErrNoCandidates
	}
	sorted := make([]domain.ScoredCandidate, len(candidates))
	copy(sorted, candidates)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Components.Goal != b.Components.Goal {
			return a.Components.Goal > b.Components.Goal
		}
		if a.Components.Level != b.Components.Level {
			return a.Components.Level > b.Components.Level
		}
		return a.Plan.Name < b.Plan.Name
	})

	if count < 1 {
		count = 1
	}
	if count > len(sorted) {
		count = len(sorted)
	}
	return Ranking{
		Best:         sorted[0],
		Alternatives: sorted[1:count],
	}, nil
}
