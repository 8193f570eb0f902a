package ranking

import (
	"sort"

	"bookline/models"
)

// Weights configures the provider scoring formula.
type Weights struct {
	RatingMultiplier   float64
	MaxDistanceScore   float64
	DistanceDecayPerMi float64
	SlotMatchBonus     float64
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{
		RatingMultiplier:   10,
		MaxDistanceScore:   30,
		DistanceDecayPerMi: 5,
		SlotMatchBonus:     20,
	}
}

// RankingService orders candidate providers for an appointment intent.
type RankingService interface {
	Rank(providers []models.Provider, intent models.AppointmentIntent, weights *Weights) []models.RankedProvider
}

// DefaultRankingService implements RankingService. It is stateless and safe
// for concurrent use.
type DefaultRankingService struct{}

func NewRankingService() *DefaultRankingService {
	return &DefaultRankingService{}
}

// Rank scores every provider against the intent and returns them sorted
// descending by score. The sort is stable: equal scores keep their input
// order, so ranking is deterministic given deterministic input. An empty
// input yields an empty result, never an error.
func (s *DefaultRankingService) Rank(providers []models.Provider, intent models.AppointmentIntent, weights *Weights) []models.RankedProvider {
	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}

	computeDistanceScore := func(miles float64) float64 {
		score := w.MaxDistanceScore - miles*w.DistanceDecayPerMi
		if score < 0 {
			return 0
		}
		return score
	}

	ranked := make([]models.RankedProvider, 0, len(providers))
	for _, p := range providers {
		matching := matchingSlots(p.AvailableSlots, intent)
		score := p.Rating*w.RatingMultiplier + computeDistanceScore(p.DistanceMiles)
		if len(matching) > 0 {
			score += w.SlotMatchBonus
		}
		ranked = append(ranked, models.RankedProvider{
			Provider:      p,
			FinalScore:    score,
			MatchingSlots: matching,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	return ranked
}

// matchingSlots returns every slot inside the intent's preferred window.
func matchingSlots(slots []models.LocalTime, intent models.AppointmentIntent) []models.LocalTime {
	var out []models.LocalTime
	for _, slot := range slots {
		if slot.Between(intent.PreferredStart, intent.PreferredEnd) {
			out = append(out, slot)
		}
	}
	return out
}
