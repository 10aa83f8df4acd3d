package invoiceRepo

import "lablink/models"

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	// GetByID retrieves an invoice by its unique ID.
	GetByID(id string) (*models.Invoice, error)
	// GetByOrder retrieves the invoice issued for an order, or nil when none exists.
	GetByOrder(orderID string) (*models.Invoice, error)
	// Create inserts a new invoice record.
	Create(inv *models.Invoice) error
	// ListByDoctor retrieves a dentist's invoices, newest first.
	ListByDoctor(doctorID string) ([]models.Invoice, error)
	// ListByLab retrieves a lab's invoices, newest first.
	ListByLab(labID string) ([]models.Invoice, error)
	// SetPaymentIntent stores the Stripe payment intent ID on an issued invoice.
	SetPaymentIntent(invoiceID, paymentIntentID string) error
	// MarkPaid moves an issued invoice to paid with the payment timestamp.
	MarkPaid(invoiceID string) error
}
