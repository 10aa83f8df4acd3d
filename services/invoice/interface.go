package invoice

import (
	"context"

	"lablink/models"
)

// InvoiceService defines billing operations for delivered orders.
type InvoiceService interface {
	// IssueForOrder issues the invoice for a delivered order. Idempotent:
	// a second call returns the already issued invoice.
	IssueForOrder(ctx context.Context, order *models.Order) (*models.Invoice, error)
	// GetInvoice retrieves one invoice.
	GetInvoice(ctx context.Context, id string) (*models.Invoice, error)
	// ListDoctorInvoices returns a dentist's invoices, newest first.
	ListDoctorInvoices(ctx context.Context, doctorID string) ([]models.Invoice, error)
	// ListLabInvoices returns a lab's invoices, newest first.
	ListLabInvoices(ctx context.Context, labID string) ([]models.Invoice, error)
	// CreatePaymentIntent creates a Stripe payment intent for an issued
	// invoice and returns its client secret.
	CreatePaymentIntent(ctx context.Context, invoiceID string) (string, error)
	// MarkPaid settles an issued invoice after the client confirmed payment.
	MarkPaid(ctx context.Context, invoiceID string) error
}
