package order

import (
	"context"
	"fmt"
	"time"

	"lablink/models"
	"lablink/utils"

	"go.uber.org/zap"
)

// lifecycle lists the permitted status transitions. Assignment and delivery
// have dedicated entry points (AutoAssign, ConfirmDelivery) and are absent
// here on purpose.
var lifecycle = map[string][]string{
	models.OrderStatusPending:      {models.OrderStatusCancelled},
	models.OrderStatusAssigned:     {models.OrderStatusAccepted, models.OrderStatusDeclined, models.OrderStatusCancelled},
	models.OrderStatusAccepted:     {models.OrderStatusInProduction, models.OrderStatusCancelled},
	models.OrderStatusInProduction: {models.OrderStatusQualityCheck},
	models.OrderStatusQualityCheck: {models.OrderStatusShipped},
	models.OrderStatusShipped:      {},
}

func transitionAllowed(from, to string) bool {
	for _, t := range lifecycle[from] {
		if t == to {
			return true
		}
	}
	return false
}

func (s *DefaultOrderService) AdvanceStatus(ctx context.Context, orderID, actorID, toStatus, note string) (*models.Order, error) {
	ord, err := s.OrderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(ord.Status, toStatus) {
		return nil, fmt.Errorf("order %s cannot move from %q to %q", orderID, ord.Status, toStatus)
	}

	change := models.OrderStatusChange{
		From:      ord.Status,
		To:        toStatus,
		ActorID:   actorID,
		Note:      note,
		ChangedAt: time.Now(),
	}
	if err := s.OrderRepo.UpdateStatus(orderID, change); err != nil {
		return nil, err
	}

	// A lab bowing out or a dentist cancelling an assigned case frees the
	// lab's slot again.
	if (toStatus == models.OrderStatusDeclined || toStatus == models.OrderStatusCancelled) && ord.AssignedLabID != "" {
		if err := s.LabRepo.AdjustLoad(ord.AssignedLabID, -1); err != nil {
			utils.GetLogger().Error("failed to release lab load",
				zap.String("labId", ord.AssignedLabID), zap.Error(err))
		}
	}

	if s.Notifier != nil {
		s.Notifier.Dispatch(ctx, models.NotificationPayload{
			Target: "dentist",
			ID:     ord.DoctorID,
			Event:  models.EventOrderStatus,
			Title:  "Order update",
			Body:   fmt.Sprintf("Your order is now %s.", toStatus),
			Data:   map[string]string{"orderId": orderID, "status": toStatus},
		})
	}

	ord.Status = toStatus
	ord.UpdatedAt = change.ChangedAt
	ord.StatusHistory = append(ord.StatusHistory, change)
	return ord, nil
}

func (s *DefaultOrderService) ConfirmDelivery(ctx context.Context, orderID, doctorID string) (*models.Order, *models.Invoice, error) {
	ord, err := s.OrderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if ord.DoctorID != doctorID {
		return nil, nil, fmt.Errorf("order %s does not belong to dentist %s", orderID, doctorID)
	}
	if ord.Status != models.OrderStatusShipped {
		return nil, nil, fmt.Errorf("order %s is %q, only shipped orders can be confirmed delivered", orderID, ord.Status)
	}

	now := time.Now()
	change := models.OrderStatusChange{
		From:      models.OrderStatusShipped,
		To:        models.OrderStatusDelivered,
		ActorID:   doctorID,
		ChangedAt: now,
	}
	if err := s.OrderRepo.SetDelivered(orderID, change); err != nil {
		return nil, nil, err
	}

	logger := utils.GetLogger()
	onTime := ord.DueDate.IsZero() || !now.After(ord.DueDate)
	if err := s.LabRepo.RecordDelivery(ord.AssignedLabID, onTime); err != nil {
		logger.Error("failed to record delivery metrics",
			zap.String("labId", ord.AssignedLabID), zap.Error(err))
	}
	if err := s.LabRepo.AdjustLoad(ord.AssignedLabID, -1); err != nil {
		logger.Error("failed to release lab load",
			zap.String("labId", ord.AssignedLabID), zap.Error(err))
	}

	ord.Status = models.OrderStatusDelivered
	ord.DeliveredAt = now
	ord.UpdatedAt = now
	ord.StatusHistory = append(ord.StatusHistory, change)

	inv, err := s.Invoices.IssueForOrder(ctx, ord)
	if err != nil {
		// Delivery stands either way; billing can re-issue later.
		logger.Error("failed to issue invoice on delivery",
			zap.String("orderId", orderID), zap.Error(err))
		return ord, nil, nil
	}

	if s.Notifier != nil {
		s.Notifier.Dispatch(ctx, models.NotificationPayload{
			Target: "lab",
			ID:     ord.AssignedLabID,
			Event:  models.EventOrderStatus,
			Title:  "Delivery confirmed",
			Body:   "The dentist confirmed delivery of your case.",
			Data:   map[string]string{"orderId": orderID, "status": models.OrderStatusDelivered},
		})
	}

	return ord, inv, nil
}
