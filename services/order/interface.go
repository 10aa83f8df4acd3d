package order

import (
	"context"

	labRepo "lablink/database/repository/lab"
	orderRepo "lablink/database/repository/order"
	"lablink/models"
	"lablink/services/invoice"
	"lablink/services/notification"
	"lablink/services/ranking"
	"lablink/services/storage"
)

// OrderService defines the dental case lifecycle operations.
type OrderService interface {
	// CreateOrder validates and stores a new case. With autoAssign set the
	// order is immediately routed to the best lab and the assignment result
	// is returned alongside.
	CreateOrder(ctx context.Context, ord *models.Order, autoAssign bool) (*models.Order, *models.AssignResult, error)
	// GetOrder retrieves one order.
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	// ListDoctorOrders returns a dentist's orders, newest first.
	ListDoctorOrders(ctx context.Context, doctorID string) ([]models.Order, error)
	// ListLabOrders returns a lab's assigned orders, newest first.
	ListLabOrders(ctx context.Context, labID string) ([]models.Order, error)
	// ListOpenOrders returns unassigned pending orders for the lab marketplace
	// view. With no explicit type filter the lab's own specializations apply.
	ListOpenOrders(ctx context.Context, labID string, restorationTypes []string) ([]models.Order, error)
	// AutoAssign routes a pending order to the highest scoring lab and runs
	// the post-assignment side effects (load, counters, due date, push).
	AutoAssign(ctx context.Context, req models.AssignRequest) (*models.AssignResult, error)
	// AdvanceStatus moves an order along the production lifecycle. Only
	// transitions in the lifecycle table are accepted.
	AdvanceStatus(ctx context.Context, orderID, actorID, toStatus, note string) (*models.Order, error)
	// ConfirmDelivery records the dentist's receipt confirmation, issues the
	// invoice and settles the lab's performance counters and load.
	ConfirmDelivery(ctx context.Context, orderID, doctorID string) (*models.Order, *models.Invoice, error)
	// AddAttachment validates and uploads a case file, then links it to the order.
	AddAttachment(ctx context.Context, orderID, localFilePath, fileName, kind string) (*models.Attachment, error)
}

// DefaultOrderService is the production implementation.
type DefaultOrderService struct {
	OrderRepo orderRepo.OrderRepository
	LabRepo   labRepo.LabRepository
	Ranking   ranking.RankingService
	Invoices  invoice.InvoiceService
	Notifier  notification.NotificationService
	Storage   storage.StorageService
}

var _ OrderService = (*DefaultOrderService)(nil)
