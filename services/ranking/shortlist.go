package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"lablink/config"
	"lablink/models"
)

// DefaultShortlistLimit caps the dentist-facing shortlist when the caller
// doesn't supply one.
const DefaultShortlistLimit = 5

// trustBucketWidth is the trust-score difference below which two labs are
// considered tied and later criteria decide their order.
const trustBucketWidth = 0.3

// sortKey is the composite ordering key of the shortlist policy. Comparing
// field by field yields a strict total order, unlike the pairwise trust
// comparison it replaces, so the result does not depend on the sort
// algorithm's comparison sequence.
type sortKey struct {
	preferred   bool
	trustBucket int
	hasSpec     bool
	tierRank    int
	onTimeRate  float64
}

func (a sortKey) less(b sortKey) bool {
	if a.preferred != b.preferred {
		return a.preferred
	}
	if a.trustBucket != b.trustBucket {
		return a.trustBucket > b.trustBucket
	}
	if a.hasSpec != b.hasSpec {
		return a.hasSpec
	}
	if a.tierRank != b.tierRank {
		return a.tierRank > b.tierRank
	}
	return a.onTimeRate > b.onTimeRate
}

func trustBucket(trustScore float64) int {
	return int(math.Floor(trustScore / trustBucketWidth))
}

// Shortlist produces the dentist-facing ranking for one restoration request.
// Labs at capacity are excluded outright. Results are cached for a few
// minutes keyed on the request, mirroring how often the underlying facts move.
func (s *DefaultRankingService) Shortlist(ctx context.Context, req models.ShortlistRequest) (*models.ShortlistResult, error) {
	if req.Limit <= 0 {
		req.Limit = DefaultShortlistLimit
	}

	cacheKey, cacheable := s.shortlistCacheKey(req)
	if cacheable {
		if cached, err := s.CacheClient.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var result models.ShortlistResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return &result, nil
			}
			// A stale or corrupt entry falls through to re-computation.
		}
	}

	snap, err := s.loadSnapshot(ctx, req.RestorationType, req.DoctorID)
	if err != nil {
		return nil, err
	}

	result := buildShortlist(snap, req)

	if cacheable {
		if data, err := json.Marshal(result); err == nil {
			ttl := time.Duration(config.AppConfig.ShortlistTTLMin) * time.Minute
			if ttl <= 0 {
				ttl = 5 * time.Minute
			}
			s.CacheClient.Set(ctx, cacheKey, data, ttl)
		}
	}

	return result, nil
}

// buildShortlist runs the pure part of the shortlist policy over a snapshot.
func buildShortlist(snap *snapshot, req models.ShortlistRequest) *models.ShortlistResult {
	type entry struct {
		ranked models.RankedLab
		key    sortKey
	}

	var entries []entry
	for _, lab := range snap.labs {
		if !lab.IsActive || lab.AtCapacity() {
			continue
		}
		rl := snap.enrich(lab, req.Urgency)
		var onTime float64
		if rl.Metrics != nil {
			onTime = rl.Metrics.OnTimeRate()
		}
		entries = append(entries, entry{
			ranked: rl,
			key: sortKey{
				preferred:   rl.Preferred,
				trustBucket: trustBucket(lab.TrustScore),
				hasSpec:     rl.Specialization != nil,
				tierRank:    models.TierRank(lab.VisibilityTier),
				onTimeRate:  onTime,
			},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].key.less(entries[j].key)
	})

	ranked := make([]models.RankedLab, 0, len(entries))
	for i, e := range entries {
		e.ranked.Rank = i + 1
		ranked = append(ranked, e.ranked)
	}

	ranked = applyNewLabFloor(ranked)

	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}

	preferredIDs := snap.preferredIDs
	if preferredIDs == nil {
		preferredIDs = []string{}
	}
	return &models.ShortlistResult{
		RankedLabs:      ranked,
		PreferredLabIDs: preferredIDs,
	}
}

func (s *DefaultRankingService) shortlistCacheKey(req models.ShortlistRequest) (string, bool) {
	if s.CacheClient == nil {
		return "", false
	}
	data, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("shortlist:%x", data), true
}
