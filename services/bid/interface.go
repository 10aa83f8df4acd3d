package bid

import (
	"context"

	bidRepo "lablink/database/repository/bid"
	labRepo "lablink/database/repository/lab"
	orderRepo "lablink/database/repository/order"
	"lablink/models"
	"lablink/services/notification"
)

// BidService defines the marketplace bidding operations.
type BidService interface {
	// SubmitBid places a lab's offer on an open order. At most one open bid
	// per (order, lab) is allowed.
	SubmitBid(ctx context.Context, b *models.Bid) (*models.Bid, error)
	// ListOrderBids returns all bids on one order, newest first.
	ListOrderBids(ctx context.Context, orderID string) ([]models.Bid, error)
	// ListLabBids returns all bids a lab has placed, newest first.
	ListLabBids(ctx context.Context, labID string) ([]models.Bid, error)
	// AcceptBid assigns the bidding lab to the order at the bid price and
	// rejects the remaining open bids.
	AcceptBid(ctx context.Context, bidID, doctorID string) (*models.Bid, error)
	// WithdrawBid lets a lab retract its own open bid.
	WithdrawBid(ctx context.Context, bidID, labID string) error
}

// DefaultBidService is the production implementation.
type DefaultBidService struct {
	BidRepo   bidRepo.BidRepository
	OrderRepo orderRepo.OrderRepository
	LabRepo   labRepo.LabRepository
	Notifier  notification.NotificationService
}

var _ BidService = (*DefaultBidService)(nil)
