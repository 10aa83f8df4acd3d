package ranking

import (
	"context"
	"errors"

	labRepo "lablink/database/repository/lab"
	orderRepo "lablink/database/repository/order"
	"lablink/models"

	"github.com/go-redis/redis/v8"
)

// ErrNoLabs is returned by AutoAssign when the candidate set is empty.
var ErrNoLabs = errors.New("No available labs found")

// RankingService exposes the two lab scoring policies. Shortlist ranks labs
// for a dentist to choose from; AutoAssign picks exactly one lab for an order
// and persists the assignment. The two policies deliberately disagree about
// capacity: Shortlist excludes full labs, AutoAssign only zeroes their
// capacity points.
type RankingService interface {
	Shortlist(ctx context.Context, req models.ShortlistRequest) (*models.ShortlistResult, error)
	AutoAssign(ctx context.Context, req models.AssignRequest) (*models.AssignResult, error)
}

// DefaultRankingService is the production implementation.
type DefaultRankingService struct {
	LabRepo     labRepo.LabRepository
	OrderRepo   orderRepo.OrderRepository
	CacheClient *redis.Client
}

var _ RankingService = (*DefaultRankingService)(nil)
