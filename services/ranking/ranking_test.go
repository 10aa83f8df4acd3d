package ranking

import (
	"testing"

	"lablink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(labs ...models.Lab) *snapshot {
	return &snapshot{
		labs:          labs,
		pricingByLab:  make(map[string]models.LabPricing),
		specByLab:     make(map[string]models.LabSpecialization),
		reviewsByLab:  make(map[string][]float64),
		metricsByLab:  make(map[string]models.LabPerformanceMetrics),
		preferredRank: make(map[string]int),
	}
}

func activeLab(id string, trust float64) models.Lab {
	return models.Lab{
		ID:              id,
		Name:            "Lab " + id,
		TrustScore:      trust,
		VisibilityTier:  models.TierEstablished,
		StandardSLADays: 7,
		UrgentSLADays:   3,
		CurrentLoad:     1,
		MaxCapacity:     10,
		IsActive:        true,
	}
}

func shortlistReq(limit int) models.ShortlistRequest {
	return models.ShortlistRequest{
		RestorationType: models.RestorationZirconia,
		Urgency:         models.UrgencyNormal,
		DoctorID:        "doc-1",
		Limit:           limit,
	}
}

func TestShortlistExcludesLabsAtCapacity(t *testing.T) {
	full := activeLab("full", 4.9)
	full.CurrentLoad = 10
	snap := testSnapshot(activeLab("a", 2.0), full)

	result := buildShortlist(snap, shortlistReq(5))

	require.Len(t, result.RankedLabs, 1)
	assert.Equal(t, "a", result.RankedLabs[0].Lab.ID)
}

func TestShortlistPreferredLabsRankFirst(t *testing.T) {
	snap := testSnapshot(activeLab("plain", 5.0), activeLab("fave", 0.5))
	snap.preferredRank["fave"] = 1
	snap.preferredIDs = []string{"fave"}

	result := buildShortlist(snap, shortlistReq(5))

	require.Len(t, result.RankedLabs, 2)
	assert.Equal(t, "fave", result.RankedLabs[0].Lab.ID)
	assert.True(t, result.RankedLabs[0].Preferred)
	assert.Equal(t, []string{"fave"}, result.PreferredLabIDs)
}

func TestShortlistTrustDecidesBeyondThreshold(t *testing.T) {
	snap := testSnapshot(activeLab("low", 1.0), activeLab("high", 2.0))

	result := buildShortlist(snap, shortlistReq(5))

	require.Len(t, result.RankedLabs, 2)
	assert.Equal(t, "high", result.RankedLabs[0].Lab.ID)
}

func TestShortlistSpecializationBreaksTrustTie(t *testing.T) {
	// Within the 0.3 trust window the specialization match decides: lab A has
	// one, lab B does not, neither is preferred.
	a := activeLab("a", 3.01)
	b := activeLab("b", 3.2)
	snap := testSnapshot(b, a)
	snap.specByLab["a"] = models.LabSpecialization{
		LabID:           "a",
		RestorationType: models.RestorationZirconia,
		ExpertiseLevel:  models.ExpertiseIntermediate,
		TurnaroundDays:  4,
	}

	result := buildShortlist(snap, shortlistReq(5))

	require.Len(t, result.RankedLabs, 2)
	assert.Equal(t, "a", result.RankedLabs[0].Lab.ID)
}

func TestShortlistTierThenOnTimeRate(t *testing.T) {
	elite := activeLab("elite", 3.0)
	elite.VisibilityTier = models.TierElite
	humble := activeLab("humble", 3.1)
	snap := testSnapshot(humble, elite)

	result := buildShortlist(snap, shortlistReq(5))
	require.Len(t, result.RankedLabs, 2)
	assert.Equal(t, "elite", result.RankedLabs[0].Lab.ID)

	// Same tier: the better on-time rate wins.
	punctual := activeLab("punctual", 3.0)
	tardy := activeLab("tardy", 3.1)
	snap = testSnapshot(tardy, punctual)
	snap.metricsByLab["punctual"] = models.LabPerformanceMetrics{
		LabID: "punctual", CompletedOrders: 10, OnTimeDeliveries: 9,
	}
	snap.metricsByLab["tardy"] = models.LabPerformanceMetrics{
		LabID: "tardy", CompletedOrders: 10, OnTimeDeliveries: 3,
	}

	result = buildShortlist(snap, shortlistReq(5))
	require.Len(t, result.RankedLabs, 2)
	assert.Equal(t, "punctual", result.RankedLabs[0].Lab.ID)
}

func TestShortlistTruncatesToLimit(t *testing.T) {
	snap := testSnapshot(
		activeLab("a", 1.0), activeLab("b", 2.0), activeLab("c", 3.0),
		activeLab("d", 4.0), activeLab("e", 5.0), activeLab("f", 6.0),
	)

	result := buildShortlist(snap, shortlistReq(3))
	assert.Len(t, result.RankedLabs, 3)

	result = buildShortlist(snap, shortlistReq(DefaultShortlistLimit))
	assert.Len(t, result.RankedLabs, 5)
}

func TestShortlistEstimatedDaysAndRating(t *testing.T) {
	a := activeLab("a", 3.0)
	b := activeLab("b", 2.0)
	snap := testSnapshot(a, b)
	snap.specByLab["a"] = models.LabSpecialization{
		LabID:           "a",
		RestorationType: models.RestorationZirconia,
		ExpertiseLevel:  models.ExpertiseExpert,
		TurnaroundDays:  2,
	}
	snap.reviewsByLab["a"] = []float64{4, 5}

	result := buildShortlist(snap, shortlistReq(5))
	require.Len(t, result.RankedLabs, 2)

	first := result.RankedLabs[0]
	require.Equal(t, "a", first.Lab.ID)
	assert.Equal(t, 2, first.EstimatedDays)
	require.NotNil(t, first.AverageRating)
	assert.InDelta(t, 4.5, *first.AverageRating, 1e-9)

	// No specialization and no reviews: SLA days for the urgency, nil rating.
	second := result.RankedLabs[1]
	assert.Equal(t, 7, second.EstimatedDays)
	assert.Nil(t, second.AverageRating)

	urgent := shortlistReq(5)
	urgent.Urgency = models.UrgencyUrgent
	result = buildShortlist(snap, urgent)
	assert.Equal(t, 3, result.RankedLabs[1].EstimatedDays)
}

func TestNewLabFloorPushesOutOfTopThree(t *testing.T) {
	rookie := activeLab("rookie", 9.0)
	rookie.IsNewLab = true
	snap := testSnapshot(
		rookie,
		activeLab("b", 5.0), activeLab("c", 4.0),
		activeLab("d", 3.0), activeLab("e", 2.0),
	)

	result := buildShortlist(snap, shortlistReq(5))
	require.Len(t, result.RankedLabs, 5)

	for _, rl := range result.RankedLabs {
		if rl.Lab.IsNewLab {
			assert.GreaterOrEqual(t, rl.Rank, 4, "new lab %s must not display above rank 4", rl.Lab.ID)
		}
	}

	// The raw-rank-1 rookie lands at rank 4, tied with the incumbent that
	// held rank 4; pre-push slice order keeps the rookie first of the two.
	assert.Equal(t, "b", result.RankedLabs[0].Lab.ID)
	assert.Equal(t, "c", result.RankedLabs[1].Lab.ID)
	assert.Equal(t, "rookie", result.RankedLabs[2].Lab.ID)
	assert.Equal(t, 4, result.RankedLabs[2].Rank)
	assert.Equal(t, "d", result.RankedLabs[3].Lab.ID)
	assert.Equal(t, 4, result.RankedLabs[3].Rank)
	assert.Equal(t, "e", result.RankedLabs[4].Lab.ID)
	assert.Equal(t, 5, result.RankedLabs[4].Rank)
}

func TestNewLabFloorLeavesLowerRanksAlone(t *testing.T) {
	rookie := activeLab("rookie", 0.1)
	rookie.IsNewLab = true
	ranked := []models.RankedLab{
		{Lab: activeLab("a", 5), Rank: 1},
		{Lab: activeLab("b", 4), Rank: 2},
		{Lab: activeLab("c", 3), Rank: 3},
		{Lab: activeLab("d", 2), Rank: 4},
		{Lab: rookie, Rank: 5},
	}

	out := applyNewLabFloor(ranked)
	assert.Equal(t, "rookie", out[4].Lab.ID)
	assert.Equal(t, 5, out[4].Rank)
}

func assignReq() models.AssignRequest {
	return models.AssignRequest{
		OrderID:         "order-1",
		RestorationType: models.RestorationZirconia,
		Urgency:         models.UrgencyNormal,
		DoctorID:        "doc-1",
	}
}

func TestAutoAssignPerfectScoreScenario(t *testing.T) {
	// Expert in Zirconia, load 2/10, performance 5/5, rank-1 preferred and no
	// competition: 40 + 25 + 20 + 15 = 100.
	lab := activeLab("x", 4.0)
	lab.CurrentLoad = 2
	lab.MaxCapacity = 10
	lab.PerformanceScore = 5
	snap := testSnapshot(lab)
	snap.specByLab["x"] = models.LabSpecialization{
		LabID:           "x",
		RestorationType: models.RestorationZirconia,
		ExpertiseLevel:  models.ExpertiseExpert,
	}
	snap.preferredRank["x"] = 1

	scored := scoreCandidates(snap, assignReq())
	require.Len(t, scored, 1)
	assert.Equal(t, "x", scored[0].lab.ID)
	assert.InDelta(t, 100.0, scored[0].score, 1e-9)
	assert.Len(t, scored[0].reasons, 4)
}

func TestAutoAssignScoreBounds(t *testing.T) {
	cases := []struct {
		name string
		lab  func() models.Lab
	}{
		{"worst", func() models.Lab {
			l := activeLab("w", 0)
			l.CurrentLoad = 10
			l.PerformanceScore = 0
			return l
		}},
		{"capacity-high-load", func() models.Lab {
			l := activeLab("h", 0)
			l.CurrentLoad = 9
			return l
		}},
		{"mid-load", func() models.Lab {
			l := activeLab("m", 0)
			l.CurrentLoad = 6
			return l
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := testSnapshot(tc.lab())
			scored := scoreCandidates(snap, assignReq())
			require.Len(t, scored, 1)
			assert.GreaterOrEqual(t, scored[0].score, 5.0)
			assert.LessOrEqual(t, scored[0].score, 100.0)
		})
	}
}

func TestAutoAssignIgnoresCapacityFilter(t *testing.T) {
	// Unlike the shortlist, a full lab is still a candidate, just with zero
	// capacity points.
	full := activeLab("full", 4.0)
	full.CurrentLoad = 10
	snap := testSnapshot(full)

	scored := scoreCandidates(snap, assignReq())
	require.Len(t, scored, 1)
	assert.Equal(t, "full", scored[0].lab.ID)
	// none (5) + at-capacity (0) + performance 0 = 5.
	assert.InDelta(t, 5.0, scored[0].score, 1e-9)
}

func TestAutoAssignDeterministic(t *testing.T) {
	build := func() *snapshot {
		a := activeLab("a", 3.0)
		a.PerformanceScore = 4.2
		b := activeLab("b", 2.0)
		b.CurrentLoad = 7
		b.PerformanceScore = 4.9
		snap := testSnapshot(a, b)
		snap.specByLab["b"] = models.LabSpecialization{
			LabID:           "b",
			RestorationType: models.RestorationZirconia,
			ExpertiseLevel:  models.ExpertiseBasic,
		}
		snap.preferredRank["a"] = 2
		return snap
	}

	first := scoreCandidates(build(), assignReq())
	for i := 0; i < 10; i++ {
		again := scoreCandidates(build(), assignReq())
		require.Equal(t, len(first), len(again))
		assert.Equal(t, first[0].lab.ID, again[0].lab.ID)
		assert.Equal(t, first[0].score, again[0].score)
	}
}

func TestAutoAssignPreferredRankDecay(t *testing.T) {
	snap := testSnapshot(activeLab("a", 3.0))
	req := assignReq()

	base := scoreCandidates(snap, req)[0].score

	for rank, want := range map[int]float64{1: 20, 2: 15, 3: 10, 4: 5, 5: 5, 9: 5} {
		snap.preferredRank["a"] = rank
		got := scoreCandidates(snap, req)[0].score
		assert.InDelta(t, base+want, got, 1e-9, "preference rank %d", rank)
	}
}

func TestTrustBucket(t *testing.T) {
	assert.Equal(t, trustBucket(0.1), trustBucket(0.2))
	assert.Greater(t, trustBucket(0.9), trustBucket(0.2))
	// Labs more than one threshold apart always land in different buckets.
	assert.NotEqual(t, trustBucket(1.0), trustBucket(1.61))
}
