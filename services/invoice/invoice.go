package invoice

import (
	"context"
	"fmt"
	"time"

	invoiceRepo "lablink/database/repository/invoice"
	labRepo "lablink/database/repository/lab"
	"lablink/models"
	"lablink/services/notification"
	"lablink/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// DefaultInvoiceService is the production implementation.
type DefaultInvoiceService struct {
	InvoiceRepo invoiceRepo.InvoiceRepository
	LabRepo     labRepo.LabRepository
	Notifier    notification.NotificationService
}

var _ InvoiceService = (*DefaultInvoiceService)(nil)

func (s *DefaultInvoiceService) IssueForOrder(ctx context.Context, order *models.Order) (*models.Invoice, error) {
	existing, err := s.InvoiceRepo.GetByOrder(order.ID)
	if err != nil {
		return nil, fmt.Errorf("checking for existing invoice: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	pricing, err := s.LabRepo.GetPricing(order.AssignedLabID, order.RestorationType)
	if err != nil {
		return nil, fmt.Errorf("fetching lab pricing: %w", err)
	}

	amount, surcharge := invoiceAmount(order, pricing)

	inv := &models.Invoice{
		ID:               uuid.New().String(),
		OrderID:          order.ID,
		LabID:            order.AssignedLabID,
		DoctorID:         order.DoctorID,
		AmountEGP:        amount,
		RushSurchargeEGP: surcharge,
		Status:           models.InvoiceStatusIssued,
		IssuedAt:         time.Now(),
	}
	if err := s.InvoiceRepo.Create(inv); err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	if s.Notifier != nil {
		s.Notifier.Dispatch(ctx, models.NotificationPayload{
			Target: "dentist",
			ID:     order.DoctorID,
			Event:  models.EventInvoiceIssued,
			Title:  "Invoice issued",
			Body:   fmt.Sprintf("Your invoice for order %s is ready: %.2f EGP", order.ID, amount+surcharge),
			Data:   map[string]string{"invoiceId": inv.ID, "orderId": order.ID},
		})
	}

	return inv, nil
}

// invoiceAmount resolves the billable amount for an order. The lab's fixed
// price wins, then the midpoint of its declared range, then the price agreed
// on the order itself. Urgent orders add the lab's rush surcharge when its
// pricing includes rush work.
func invoiceAmount(order *models.Order, pricing *models.LabPricing) (amount, surcharge float64) {
	amount = order.PriceEGP
	if pricing != nil {
		switch {
		case pricing.FixedPrice > 0:
			amount = pricing.FixedPrice
		case pricing.MinPrice > 0 || pricing.MaxPrice > 0:
			amount = (pricing.MinPrice + pricing.MaxPrice) / 2
		}
		if order.Urgency == models.UrgencyUrgent && pricing.IncludesRush && pricing.RushSurchargePercent > 0 {
			surcharge = amount * pricing.RushSurchargePercent / 100
		}
	}
	return amount, surcharge
}

func (s *DefaultInvoiceService) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	return s.InvoiceRepo.GetByID(id)
}

func (s *DefaultInvoiceService) ListDoctorInvoices(ctx context.Context, doctorID string) ([]models.Invoice, error) {
	return s.InvoiceRepo.ListByDoctor(doctorID)
}

func (s *DefaultInvoiceService) ListLabInvoices(ctx context.Context, labID string) ([]models.Invoice, error) {
	return s.InvoiceRepo.ListByLab(labID)
}

func (s *DefaultInvoiceService) CreatePaymentIntent(ctx context.Context, invoiceID string) (string, error) {
	inv, err := s.InvoiceRepo.GetByID(invoiceID)
	if err != nil {
		return "", fmt.Errorf("fetching invoice: %w", err)
	}
	if inv.Status != models.InvoiceStatusIssued {
		return "", fmt.Errorf("invoice %s is %s, only issued invoices can be paid", invoiceID, inv.Status)
	}

	// Stripe amounts are in the currency's smallest unit (piasters).
	total := int64((inv.AmountEGP + inv.RushSurchargeEGP) * 100)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(total),
		Currency: stripe.String(string(stripe.CurrencyEGP)),
		Metadata: map[string]string{
			"invoice_id": inv.ID,
			"order_id":   inv.OrderID,
		},
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("creating payment intent: %w", err)
	}

	if err := s.InvoiceRepo.SetPaymentIntent(inv.ID, pi.ID); err != nil {
		utils.GetLogger().Error("failed to record payment intent",
			zap.String("invoiceId", inv.ID), zap.Error(err))
	}

	return pi.ClientSecret, nil
}

func (s *DefaultInvoiceService) MarkPaid(ctx context.Context, invoiceID string) error {
	if err := s.InvoiceRepo.MarkPaid(invoiceID); err != nil {
		return err
	}
	utils.GetLogger().Info("invoice paid", zap.String("invoiceId", invoiceID))
	return nil
}
