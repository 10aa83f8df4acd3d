package models

import "time"

// Bid statuses.
const (
	BidStatusOpen      = "open"
	BidStatusAccepted  = "accepted"
	BidStatusRejected  = "rejected"
	BidStatusWithdrawn = "withdrawn"
)

// Bid is a lab's offer to produce an open order.
type Bid struct {
	ID            string    `bson:"id" json:"id"`
	OrderID       string    `bson:"order_id" json:"orderId"`
	LabID         string    `bson:"lab_id" json:"labId"`
	PriceEGP      float64   `bson:"price_egp" json:"priceEgp"`
	EstimatedDays int       `bson:"estimated_days" json:"estimatedDays"`
	Message       string    `bson:"message" json:"message,omitempty"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}
