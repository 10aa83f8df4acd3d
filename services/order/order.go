package order

import (
	"context"
	"fmt"
	"time"

	"lablink/models"
	"lablink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultOrderService) CreateOrder(ctx context.Context, ord *models.Order, autoAssign bool) (*models.Order, *models.AssignResult, error) {
	if err := validateIntake(ord); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	ord.ID = uuid.New().String()
	ord.Status = models.OrderStatusPending
	ord.AssignedLabID = ""
	ord.CreatedAt = now
	ord.UpdatedAt = now
	ord.StatusHistory = nil
	ord.DeliveredAt = time.Time{}

	if err := s.OrderRepo.Create(ord); err != nil {
		return nil, nil, fmt.Errorf("creating order: %w", err)
	}
	utils.GetLogger().Info("order created",
		zap.String("orderId", ord.ID),
		zap.String("doctorId", ord.DoctorID),
		zap.String("restorationType", ord.RestorationType))

	if !autoAssign {
		return ord, nil, nil
	}

	result, err := s.AutoAssign(ctx, models.AssignRequest{
		OrderID:         ord.ID,
		RestorationType: ord.RestorationType,
		Urgency:         ord.Urgency,
		DoctorID:        ord.DoctorID,
	})
	if err != nil {
		// The order itself stands; the dentist can retry assignment or wait
		// for bids.
		utils.GetLogger().Warn("auto-assignment on intake failed",
			zap.String("orderId", ord.ID), zap.Error(err))
		return ord, nil, nil
	}

	ord.Status = models.OrderStatusAssigned
	ord.AssignedLabID = result.AssignedLabID
	return ord, result, nil
}

func validateIntake(ord *models.Order) error {
	if ord.DoctorID == "" {
		return fmt.Errorf("order is missing a doctor ID")
	}
	if !models.ValidRestorationType(ord.RestorationType) {
		return fmt.Errorf("unknown restoration type %q", ord.RestorationType)
	}
	switch ord.Urgency {
	case "":
		ord.Urgency = models.UrgencyNormal
	case models.UrgencyNormal, models.UrgencyUrgent:
	default:
		return fmt.Errorf("unknown urgency %q", ord.Urgency)
	}
	return nil
}

// AutoAssign delegates the scoring and the single assignment write to the
// ranking policy, then runs the bookkeeping that follows every assignment.
func (s *DefaultOrderService) AutoAssign(ctx context.Context, req models.AssignRequest) (*models.AssignResult, error) {
	result, err := s.Ranking.AutoAssign(ctx, req)
	if err != nil {
		return nil, err
	}
	s.afterAssignment(ctx, req.OrderID, result.AssignedLabID, req.Urgency)
	return result, nil
}

// afterAssignment settles load, counters, due date and the lab push once a
// lab has been persisted onto the order. All of it is best effort: the
// assignment itself already stands.
func (s *DefaultOrderService) afterAssignment(ctx context.Context, orderID, labID, urgency string) {
	logger := utils.GetLogger()

	if err := s.LabRepo.AdjustLoad(labID, 1); err != nil {
		logger.Error("failed to bump lab load", zap.String("labId", labID), zap.Error(err))
	}
	if err := s.LabRepo.RecordOrder(labID); err != nil {
		logger.Error("failed to bump lab order counter", zap.String("labId", labID), zap.Error(err))
	}

	if lab, err := s.LabRepo.GetByID(labID); err == nil && lab != nil {
		slaDays := lab.StandardSLADays
		if urgency == models.UrgencyUrgent {
			slaDays = lab.UrgentSLADays
		}
		if slaDays > 0 {
			due := time.Now().AddDate(0, 0, slaDays)
			if err := s.OrderRepo.SetDueDate(orderID, due); err != nil {
				logger.Error("failed to set order due date", zap.String("orderId", orderID), zap.Error(err))
			}
		}
	}

	if s.Notifier != nil {
		s.Notifier.Dispatch(ctx, models.NotificationPayload{
			Target: "lab",
			ID:     labID,
			Event:  models.EventOrderAssigned,
			Title:  "New case assigned",
			Body:   "A new case has been assigned to your lab.",
			Data:   map[string]string{"orderId": orderID},
		})
	}
}

func (s *DefaultOrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.OrderRepo.GetByID(id)
}

func (s *DefaultOrderService) ListDoctorOrders(ctx context.Context, doctorID string) ([]models.Order, error) {
	return s.OrderRepo.ListByDoctor(doctorID)
}

func (s *DefaultOrderService) ListLabOrders(ctx context.Context, labID string) ([]models.Order, error) {
	return s.OrderRepo.ListByLab(labID)
}

func (s *DefaultOrderService) ListOpenOrders(ctx context.Context, labID string, restorationTypes []string) ([]models.Order, error) {
	for _, rt := range restorationTypes {
		if !models.ValidRestorationType(rt) {
			return nil, fmt.Errorf("unknown restoration type %q", rt)
		}
	}
	if len(restorationTypes) == 0 && labID != "" {
		specs, err := s.LabRepo.GetSpecializationsByLab(labID)
		if err != nil {
			return nil, fmt.Errorf("ListOpenOrders: failed to load specializations for lab %s: %w", labID, err)
		}
		for _, sp := range specs {
			restorationTypes = append(restorationTypes, sp.RestorationType)
		}
	}
	return s.OrderRepo.ListOpenByTypes(restorationTypes)
}
