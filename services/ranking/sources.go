package ranking

import (
	"context"
	"fmt"

	"lablink/models"

	"golang.org/x/sync/errgroup"
)

// snapshot gathers every fact the scoring policies consume for one request.
// The six reads are independent, so they are issued concurrently and the
// first failure aborts the whole ranking (no partial result is ever scored).
type snapshot struct {
	labs          []models.Lab
	pricingByLab  map[string]models.LabPricing
	specByLab     map[string]models.LabSpecialization
	reviewsByLab  map[string][]float64
	metricsByLab  map[string]models.LabPerformanceMetrics
	preferredRank map[string]int // lab ID -> 1-based preference rank
	preferredIDs  []string       // most preferred first
}

func (s *DefaultRankingService) loadSnapshot(ctx context.Context, restorationType, doctorID string) (*snapshot, error) {
	snap := &snapshot{
		pricingByLab:  make(map[string]models.LabPricing),
		specByLab:     make(map[string]models.LabSpecialization),
		reviewsByLab:  make(map[string][]float64),
		metricsByLab:  make(map[string]models.LabPerformanceMetrics),
		preferredRank: make(map[string]int),
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		labs, err := s.LabRepo.GetActive()
		if err != nil {
			return fmt.Errorf("fetching labs: %w", err)
		}
		snap.labs = labs
		return nil
	})
	g.Go(func() error {
		pricing, err := s.LabRepo.GetPricingByType(restorationType)
		if err != nil {
			return fmt.Errorf("fetching pricing: %w", err)
		}
		for _, p := range pricing {
			snap.pricingByLab[p.LabID] = p
		}
		return nil
	})
	g.Go(func() error {
		specs, err := s.LabRepo.GetSpecializationsByType(restorationType)
		if err != nil {
			return fmt.Errorf("fetching specializations: %w", err)
		}
		// At most one row per (lab, restoration type) is considered.
		for _, sp := range specs {
			if _, seen := snap.specByLab[sp.LabID]; !seen {
				snap.specByLab[sp.LabID] = sp
			}
		}
		return nil
	})
	g.Go(func() error {
		reviews, err := s.LabRepo.ListReviews()
		if err != nil {
			return fmt.Errorf("fetching reviews: %w", err)
		}
		for _, rv := range reviews {
			snap.reviewsByLab[rv.LabID] = append(snap.reviewsByLab[rv.LabID], rv.Rating)
		}
		return nil
	})
	g.Go(func() error {
		metrics, err := s.LabRepo.ListMetrics()
		if err != nil {
			return fmt.Errorf("fetching performance metrics: %w", err)
		}
		for _, m := range metrics {
			snap.metricsByLab[m.LabID] = m
		}
		return nil
	})
	g.Go(func() error {
		prefs, err := s.LabRepo.GetPreferredLabs(doctorID)
		if err != nil {
			return fmt.Errorf("fetching preferred labs: %w", err)
		}
		for i, p := range prefs {
			snap.preferredRank[p.LabID] = i + 1
			snap.preferredIDs = append(snap.preferredIDs, p.LabID)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// averageRating returns the arithmetic mean of a lab's reviews, nil when none.
func (s *snapshot) averageRating(labID string) *float64 {
	ratings := s.reviewsByLab[labID]
	if len(ratings) == 0 {
		return nil
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	avg := sum / float64(len(ratings))
	return &avg
}

// estimatedDays is the specialization's turnaround when one matched, else the
// lab's SLA commitment for the given urgency.
func (s *snapshot) estimatedDays(lab models.Lab, urgency string) int {
	if sp, ok := s.specByLab[lab.ID]; ok && sp.TurnaroundDays > 0 {
		return sp.TurnaroundDays
	}
	if urgency == models.UrgencyUrgent {
		return lab.UrgentSLADays
	}
	return lab.StandardSLADays
}

// enrich builds the RankedLab view of one lab under this snapshot.
func (s *snapshot) enrich(lab models.Lab, urgency string) models.RankedLab {
	rl := models.RankedLab{
		Lab:           lab,
		AverageRating: s.averageRating(lab.ID),
		EstimatedDays: s.estimatedDays(lab, urgency),
	}
	if p, ok := s.pricingByLab[lab.ID]; ok {
		pc := p
		rl.Pricing = &pc
	}
	if sp, ok := s.specByLab[lab.ID]; ok {
		sc := sp
		rl.Specialization = &sc
	}
	if m, ok := s.metricsByLab[lab.ID]; ok {
		mc := m
		rl.Metrics = &mc
	}
	if rank, ok := s.preferredRank[lab.ID]; ok {
		rl.Preferred = true
		rl.PreferredRank = rank
	}
	return rl
}
