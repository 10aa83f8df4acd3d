package ranking

import (
	"context"
	"fmt"
	"sort"

	"lablink/models"
)

// Auto-assignment point budget. Each lab scores in [5, 100]: specialization
// alone guarantees the 5-point floor, the remaining buckets add up to 60.
const (
	SpecExpertPoints       = 40.0
	SpecIntermediatePoints = 25.0
	SpecBasicPoints        = 15.0
	SpecNonePoints         = 5.0

	CapacityLowLoadPoints  = 25.0 // load ratio < 0.5
	CapacityMidLoadPoints  = 15.0 // load ratio < 0.8
	CapacityHighLoadPoints = 5.0  // load ratio < 1.0

	PreferredMaxPoints   = 20.0
	PreferredRankDecay   = 5.0
	PreferredFloor       = 5.0
	PerformanceMaxPoints = 15.0
)

type scoredLab struct {
	lab     models.Lab
	score   float64
	reasons []string
}

// AutoAssign scores every active lab for the order and persists the winner.
// Unlike Shortlist there is no capacity filter: a full lab merely scores
// zero capacity points, so automation always yields an assignment when any
// lab exists at all.
func (s *DefaultRankingService) AutoAssign(ctx context.Context, req models.AssignRequest) (*models.AssignResult, error) {
	snap, err := s.loadSnapshot(ctx, req.RestorationType, req.DoctorID)
	if err != nil {
		return nil, err
	}

	scored := scoreCandidates(snap, req)
	if len(scored) == 0 {
		return nil, ErrNoLabs
	}

	winner := scored[0]
	if err := s.OrderRepo.AssignLab(req.OrderID, winner.lab.ID); err != nil {
		return nil, fmt.Errorf("failed to persist assignment: %w", err)
	}

	return &models.AssignResult{
		Success:       true,
		AssignedLabID: winner.lab.ID,
		Score:         winner.score,
		Reason:        winner.reasons,
	}, nil
}

// scoreCandidates applies the additive point policy and returns candidates
// best first. Scoring is pure arithmetic over the snapshot: identical inputs
// always produce the identical winner.
func scoreCandidates(snap *snapshot, req models.AssignRequest) []scoredLab {
	var scored []scoredLab
	for _, lab := range snap.labs {
		if !lab.IsActive {
			continue
		}
		sl := scoredLab{lab: lab}

		specPts, specReason := specializationPoints(snap, lab)
		sl.score += specPts
		sl.reasons = append(sl.reasons, specReason)

		capPts, capReason := capacityPoints(lab)
		sl.score += capPts
		sl.reasons = append(sl.reasons, capReason)

		if rank, ok := snap.preferredRank[lab.ID]; ok {
			prefPts := PreferredMaxPoints - PreferredRankDecay*float64(rank-1)
			if prefPts < PreferredFloor {
				prefPts = PreferredFloor
			}
			sl.score += prefPts
			sl.reasons = append(sl.reasons, fmt.Sprintf("preferred lab (rank %d): +%.0f", rank, prefPts))
		}

		perfPts := (lab.PerformanceScore / 5.0) * PerformanceMaxPoints
		sl.score += perfPts
		sl.reasons = append(sl.reasons, fmt.Sprintf("performance score %.1f/5: +%.1f", lab.PerformanceScore, perfPts))

		scored = append(scored, sl)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored
}

func specializationPoints(snap *snapshot, lab models.Lab) (float64, string) {
	sp, ok := snap.specByLab[lab.ID]
	if !ok {
		return SpecNonePoints, fmt.Sprintf("no specialization match: +%.0f", SpecNonePoints)
	}
	var pts float64
	switch sp.ExpertiseLevel {
	case models.ExpertiseExpert:
		pts = SpecExpertPoints
	case models.ExpertiseIntermediate:
		pts = SpecIntermediatePoints
	case models.ExpertiseBasic:
		pts = SpecBasicPoints
	default:
		pts = SpecNonePoints
	}
	return pts, fmt.Sprintf("%s specialization in %s: +%.0f", sp.ExpertiseLevel, sp.RestorationType, pts)
}

func capacityPoints(lab models.Lab) (float64, string) {
	if lab.MaxCapacity <= 0 {
		return 0, "no declared capacity: +0"
	}
	ratio := float64(lab.CurrentLoad) / float64(lab.MaxCapacity)
	switch {
	case ratio >= 1:
		return 0, "at capacity: +0"
	case ratio < 0.5:
		return CapacityLowLoadPoints, fmt.Sprintf("low load (%.0f%%): +%.0f", ratio*100, CapacityLowLoadPoints)
	case ratio < 0.8:
		return CapacityMidLoadPoints, fmt.Sprintf("moderate load (%.0f%%): +%.0f", ratio*100, CapacityMidLoadPoints)
	default:
		return CapacityHighLoadPoints, fmt.Sprintf("high load (%.0f%%): +%.0f", ratio*100, CapacityHighLoadPoints)
	}
}
