package bidRepo

import "lablink/models"

// BidRepository defines data access for marketplace bids.
type BidRepository interface {
	// GetByID retrieves a bid by its unique ID.
	GetByID(id string) (*models.Bid, error)
	// Create inserts a new bid record.
	Create(bid *models.Bid) error
	// ListByOrder retrieves all bids for one order, newest first.
	ListByOrder(orderID string) ([]models.Bid, error)
	// ListByLab retrieves all bids a lab has placed, newest first.
	ListByLab(labID string) ([]models.Bid, error)
	// GetOpenBid returns the open bid of (order, lab), or nil when none exists.
	GetOpenBid(orderID, labID string) (*models.Bid, error)
	// UpdateStatus moves a bid from fromStatus to toStatus.
	UpdateStatus(bidID, fromStatus, toStatus string) error
	// RejectOpenBidsExcept marks every other open bid on the order rejected.
	RejectOpenBidsExcept(orderID, acceptedBidID string) error
}
