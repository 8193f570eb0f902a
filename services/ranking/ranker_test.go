package ranking

import (
	"testing"

	"bookline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func testIntent() models.AppointmentIntent {
	return models.AppointmentIntent{
		ServiceType:    "dentist",
		PreferredStart: models.MustParseLocalTime("2025-03-14T09:00:00"),
		PreferredEnd:   models.MustParseLocalTime("2025-03-14T17:00:00"),
	}
}

func testProvider(id string, rating, distance float64, slots ...string) models.Provider {
	p := models.Provider{
		ID:            id,
		Name:          "Provider " + id,
		Category:      models.CategoryDentist,
		Rating:        rating,
		DistanceMiles: distance,
	}
	for _, s := range slots {
		p.AvailableSlots = append(p.AvailableSlots, models.MustParseLocalTime(s))
	}
	return p
}

// ==========================
// Scoring Tests
// ==========================

func TestRank_ExactScoreUnderDefaultWeights(t *testing.T) {
	// rating 5.0, zero distance, one slot inside the window:
	// 5*10 + 30 + 20 = 100.
	svc := NewRankingService()
	ranked := svc.Rank(
		[]models.Provider{testProvider("p1", 5.0, 0, "2025-03-14T10:00:00")},
		testIntent(), nil)

	require.Len(t, ranked, 1)
	assert.Equal(t, 100.0, ranked[0].FinalScore)
}

func TestRank_ScoreComponents(t *testing.T) {
	tests := []struct {
		name     string
		provider models.Provider
		want     float64
	}{
		{
			name:     "distance decay",
			provider: testProvider("p1", 0, 4, "2025-03-14T10:00:00"),
			want:     0 + (30 - 4*5) + 20,
		},
		{
			name:     "distance decay floors at zero",
			provider: testProvider("p2", 3.0, 100),
			want:     30,
		},
		{
			name:     "no slot in window drops the bonus",
			provider: testProvider("p3", 4.0, 0, "2025-03-15T10:00:00"),
			want:     40 + 30,
		},
	}

	svc := NewRankingService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := svc.Rank([]models.Provider{tt.provider}, testIntent(), nil)
			require.Len(t, ranked, 1)
			assert.Equal(t, tt.want, ranked[0].FinalScore)
		})
	}
}

func TestRank_CustomWeights(t *testing.T) {
	svc := NewRankingService()
	weights := &Weights{RatingMultiplier: 1, MaxDistanceScore: 0, DistanceDecayPerMi: 0, SlotMatchBonus: 5}
	ranked := svc.Rank(
		[]models.Provider{testProvider("p1", 4.0, 2, "2025-03-14T10:00:00")},
		testIntent(), weights)

	require.Len(t, ranked, 1)
	assert.Equal(t, 9.0, ranked[0].FinalScore)
}

// ==========================
// Ordering Tests
// ==========================

func TestRank_SortsDescendingByScore(t *testing.T) {
	svc := NewRankingService()
	ranked := svc.Rank([]models.Provider{
		testProvider("low", 3.0, 10),
		testProvider("high", 5.0, 0, "2025-03-14T10:00:00"),
		testProvider("mid", 4.0, 2),
	}, testIntent(), nil)

	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].Provider.ID)
	assert.Equal(t, "mid", ranked[1].Provider.ID)
	assert.Equal(t, "low", ranked[2].Provider.ID)
}

func TestRank_StableForEqualScores(t *testing.T) {
	// Identical providers must keep their input order every time.
	svc := NewRankingService()
	providers := []models.Provider{
		testProvider("a", 4.0, 1, "2025-03-14T10:00:00"),
		testProvider("b", 4.0, 1, "2025-03-14T11:00:00"),
		testProvider("c", 4.0, 1, "2025-03-14T12:00:00"),
	}

	for i := 0; i < 10; i++ {
		ranked := svc.Rank(providers, testIntent(), nil)
		require.Len(t, ranked, 3)
		assert.Equal(t, "a", ranked[0].Provider.ID)
		assert.Equal(t, "b", ranked[1].Provider.ID)
		assert.Equal(t, "c", ranked[2].Provider.ID)
	}
}

// ==========================
// Matching Slot Tests
// ==========================

func TestRank_MatchingSlotsIsFullSubset(t *testing.T) {
	svc := NewRankingService()
	ranked := svc.Rank([]models.Provider{
		testProvider("p1", 4.0, 1,
			"2025-03-14T08:00:00", // before window
			"2025-03-14T09:00:00", // window start, inclusive
			"2025-03-14T12:00:00",
			"2025-03-14T17:00:00", // window end, inclusive
			"2025-03-14T18:00:00", // after window
		),
	}, testIntent(), nil)

	require.Len(t, ranked, 1)
	got := make([]string, 0, len(ranked[0].MatchingSlots))
	for _, s := range ranked[0].MatchingSlots {
		got = append(got, s.String())
	}
	assert.Equal(t, []string{
		"2025-03-14T09:00:00",
		"2025-03-14T12:00:00",
		"2025-03-14T17:00:00",
	}, got)
}

func TestRank_EmptyInput(t *testing.T) {
	svc := NewRankingService()
	ranked := svc.Rank(nil, testIntent(), nil)
	assert.Empty(t, ranked)
}
