package models

import "time"

// Invoice statuses.
const (
	InvoiceStatusIssued = "issued"
	InvoiceStatusPaid   = "paid"
	InvoiceStatusVoid   = "void"
)

// Invoice represents a bill issued to a dentist once an order is delivered.
type Invoice struct {
	ID                  string    `bson:"id" json:"id"`
	OrderID             string    `bson:"order_id" json:"orderId"`
	LabID               string    `bson:"lab_id" json:"labId"`
	DoctorID            string    `bson:"doctor_id" json:"doctorId"`
	AmountEGP           float64   `bson:"amount_egp" json:"amountEgp"`
	RushSurchargeEGP    float64   `bson:"rush_surcharge_egp" json:"rushSurchargeEgp,omitempty"`
	Status              string    `bson:"status" json:"status"`
	StripePaymentIntent string    `bson:"stripe_payment_intent" json:"stripePaymentIntent,omitempty"`
	IssuedAt            time.Time `bson:"issued_at" json:"issuedAt"`
	PaidAt              time.Time `bson:"paid_at" json:"paidAt,omitzero"`
}
