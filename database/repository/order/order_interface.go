package orderRepo

import (
	"time"

	"lablink/models"
)

// OrderRepository defines data access for dental case orders.
type OrderRepository interface {
	// GetByID retrieves an order by its unique ID.
	GetByID(id string) (*models.Order, error)
	// Create inserts a new order record.
	Create(order *models.Order) error
	// ListByDoctor retrieves a dentist's orders, newest first.
	ListByDoctor(doctorID string) ([]models.Order, error)
	// ListByLab retrieves a lab's assigned orders, newest first.
	ListByLab(labID string) ([]models.Order, error)
	// ListOpenByTypes retrieves unassigned pending orders for the given
	// restoration types (the marketplace view). Empty types means all.
	ListOpenByTypes(restorationTypes []string) ([]models.Order, error)
	// AssignLab persists the winning lab onto the order in a single atomic
	// update, moving status pending -> assigned.
	AssignLab(orderID, labID string) error
	// UpdateStatus transitions an order's status and appends to its history.
	// The update only matches while the order is still in fromStatus.
	UpdateStatus(orderID string, change models.OrderStatusChange) error
	// SetDelivered marks delivery confirmation with its timestamp.
	SetDelivered(orderID string, change models.OrderStatusChange) error
	// AddAttachment appends a case file reference to the order.
	AddAttachment(orderID string, att models.Attachment) error
	// SetPrice records the agreed price (e.g. from an accepted bid).
	SetPrice(orderID string, priceEGP float64) error
	// SetDueDate records the delivery deadline derived from the assigned lab's SLA.
	SetDueDate(orderID string, due time.Time) error
}
