package models

// Notification event types.
const (
	EventOrderAssigned = "order.assigned"
	EventOrderStatus   = "order.status"
	EventBidReceived   = "bid.received"
	EventBidAccepted   = "bid.accepted"
	EventBidRejected   = "bid.rejected"
	EventInvoiceIssued = "invoice.issued"
)

// NotificationPayload is the asynq task body for one push dispatch.
type NotificationPayload struct {
	Target string            `json:"target"` // "dentist" or "lab"
	ID     string            `json:"id"`     // recipient user or lab ID
	Event  string            `json:"event"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}
