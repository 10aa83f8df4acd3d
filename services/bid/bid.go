package bid

import (
	"context"
	"fmt"
	"time"

	"lablink/models"
	"lablink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBidService) SubmitBid(ctx context.Context, b *models.Bid) (*models.Bid, error) {
	ord, err := s.OrderRepo.GetByID(b.OrderID)
	if err != nil {
		return nil, err
	}
	if ord.Status != models.OrderStatusPending || ord.AssignedLabID != "" {
		return nil, fmt.Errorf("order %s is not open for bidding", b.OrderID)
	}
	if b.PriceEGP <= 0 {
		return nil, fmt.Errorf("bid price must be positive")
	}
	if b.EstimatedDays <= 0 {
		return nil, fmt.Errorf("bid must state an estimated turnaround in days")
	}

	existing, err := s.BidRepo.GetOpenBid(b.OrderID, b.LabID)
	if err != nil {
		return nil, fmt.Errorf("checking for an open bid: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("lab %s already has an open bid on order %s", b.LabID, b.OrderID)
	}

	now := time.Now()
	b.ID = uuid.New().String()
	b.Status = models.BidStatusOpen
	b.CreatedAt = now
	b.UpdatedAt = now
	if err := s.BidRepo.Create(b); err != nil {
		return nil, fmt.Errorf("creating bid: %w", err)
	}

	if s.Notifier != nil {
		s.Notifier.Dispatch(ctx, models.NotificationPayload{
			Target: "dentist",
			ID:     ord.DoctorID,
			Event:  models.EventBidReceived,
			Title:  "New bid received",
			Body:   fmt.Sprintf("A lab offered %.2f EGP with a %d day turnaround.", b.PriceEGP, b.EstimatedDays),
			Data:   map[string]string{"orderId": b.OrderID, "bidId": b.ID},
		})
	}
	return b, nil
}

func (s *DefaultBidService) ListOrderBids(ctx context.Context, orderID string) ([]models.Bid, error) {
	return s.BidRepo.ListByOrder(orderID)
}

func (s *DefaultBidService) ListLabBids(ctx context.Context, labID string) ([]models.Bid, error) {
	return s.BidRepo.ListByLab(labID)
}

// AcceptBid routes the order to the bidding lab through the same assignment
// write the automatic policy uses, then settles price, deadline, load and
// counters, and resolves the competing bids.
func (s *DefaultBidService) AcceptBid(ctx context.Context, bidID, doctorID string) (*models.Bid, error) {
	b, err := s.BidRepo.GetByID(bidID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BidStatusOpen {
		return nil, fmt.Errorf("bid %s is %s, only open bids can be accepted", bidID, b.Status)
	}

	ord, err := s.OrderRepo.GetByID(b.OrderID)
	if err != nil {
		return nil, err
	}
	if ord.DoctorID != doctorID {
		return nil, fmt.Errorf("order %s does not belong to dentist %s", ord.ID, doctorID)
	}
	if ord.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("order %s is no longer open", ord.ID)
	}

	if err := s.OrderRepo.AssignLab(ord.ID, b.LabID); err != nil {
		return nil, fmt.Errorf("failed to persist assignment: %w", err)
	}
	if err := s.BidRepo.UpdateStatus(bidID, models.BidStatusOpen, models.BidStatusAccepted); err != nil {
		return nil, err
	}

	logger := utils.GetLogger()
	if err := s.OrderRepo.SetPrice(ord.ID, b.PriceEGP); err != nil {
		logger.Error("failed to set agreed price", zap.String("orderId", ord.ID), zap.Error(err))
	}
	if err := s.OrderRepo.SetDueDate(ord.ID, time.Now().AddDate(0, 0, b.EstimatedDays)); err != nil {
		logger.Error("failed to set due date", zap.String("orderId", ord.ID), zap.Error(err))
	}
	if err := s.LabRepo.AdjustLoad(b.LabID, 1); err != nil {
		logger.Error("failed to bump lab load", zap.String("labId", b.LabID), zap.Error(err))
	}
	if err := s.LabRepo.RecordOrder(b.LabID); err != nil {
		logger.Error("failed to bump lab order counter", zap.String("labId", b.LabID), zap.Error(err))
	}

	s.resolveLosingBids(ctx, ord.ID, bidID)

	if s.Notifier != nil {
		s.Notifier.Dispatch(ctx, models.NotificationPayload{
			Target: "lab",
			ID:     b.LabID,
			Event:  models.EventBidAccepted,
			Title:  "Bid accepted",
			Body:   fmt.Sprintf("Your bid of %.2f EGP was accepted.", b.PriceEGP),
			Data:   map[string]string{"orderId": ord.ID, "bidId": bidID},
		})
	}

	b.Status = models.BidStatusAccepted
	return b, nil
}

// resolveLosingBids rejects every other open bid on the order and notifies
// the losing labs. Best effort.
func (s *DefaultBidService) resolveLosingBids(ctx context.Context, orderID, acceptedBidID string) {
	logger := utils.GetLogger()

	losers, err := s.BidRepo.ListByOrder(orderID)
	if err != nil {
		logger.Error("failed to list competing bids", zap.String("orderId", orderID), zap.Error(err))
		losers = nil
	}

	if err := s.BidRepo.RejectOpenBidsExcept(orderID, acceptedBidID); err != nil {
		logger.Error("failed to reject competing bids", zap.String("orderId", orderID), zap.Error(err))
		return
	}

	if s.Notifier == nil {
		return
	}
	for _, loser := range losers {
		if loser.ID == acceptedBidID || loser.Status != models.BidStatusOpen {
			continue
		}
		s.Notifier.Dispatch(ctx, models.NotificationPayload{
			Target: "lab",
			ID:     loser.LabID,
			Event:  models.EventBidRejected,
			Title:  "Bid not selected",
			Body:   "The dentist chose another lab for this case.",
			Data:   map[string]string{"orderId": orderID, "bidId": loser.ID},
		})
	}
}

func (s *DefaultBidService) WithdrawBid(ctx context.Context, bidID, labID string) error {
	b, err := s.BidRepo.GetByID(bidID)
	if err != nil {
		return err
	}
	if b.LabID != labID {
		return fmt.Errorf("bid %s does not belong to lab %s", bidID, labID)
	}
	return s.BidRepo.UpdateStatus(bidID, models.BidStatusOpen, models.BidStatusWithdrawn)
}
