package models

import "time"

// Restoration types offered on the platform.
const (
	RestorationZirconia       = "Zirconia"
	RestorationPFM            = "PFM"
	RestorationEmax           = "E-max"
	RestorationImplantCrown   = "Implant Crown"
	RestorationVeneer         = "Veneer"
	RestorationFullDenture    = "Full Denture"
	RestorationPartialDenture = "Partial Denture"
)

// RestorationTypes lists every accepted restoration type.
var RestorationTypes = []string{
	RestorationZirconia,
	RestorationPFM,
	RestorationEmax,
	RestorationImplantCrown,
	RestorationVeneer,
	RestorationFullDenture,
	RestorationPartialDenture,
}

// ValidRestorationType reports whether t is a known restoration type.
func ValidRestorationType(t string) bool {
	for _, rt := range RestorationTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// Order urgency levels.
const (
	UrgencyNormal = "normal"
	UrgencyUrgent = "urgent"
)

// Order statuses across the production lifecycle.
const (
	OrderStatusPending      = "pending"
	OrderStatusAssigned     = "assigned"
	OrderStatusAccepted     = "accepted"
	OrderStatusInProduction = "in_production"
	OrderStatusQualityCheck = "quality_check"
	OrderStatusShipped      = "shipped"
	OrderStatusDelivered    = "delivered"
	OrderStatusCancelled    = "cancelled"
	OrderStatusDeclined     = "declined"
)

// OrderStatusChange records one transition in an order's history.
type OrderStatusChange struct {
	From      string    `bson:"from" json:"from"`
	To        string    `bson:"to" json:"to"`
	ActorID   string    `bson:"actor_id" json:"actorId,omitempty"`
	Note      string    `bson:"note" json:"note,omitempty"`
	ChangedAt time.Time `bson:"changed_at" json:"changedAt"`
}

// Attachment references a case file stored in Cloudinary.
type Attachment struct {
	PublicID   string    `bson:"public_id" json:"publicId"`
	FileName   string    `bson:"file_name" json:"fileName"`
	Kind       string    `bson:"kind" json:"kind"` // "photo" or "model"
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}

// Order is a dental case submitted by a dentist for lab production.
type Order struct {
	ID              string              `bson:"id" json:"id"`
	DoctorID        string              `bson:"doctor_id" json:"doctorId"`
	PatientName     string              `bson:"patient_name" json:"patientName,omitempty"`
	RestorationType string              `bson:"restoration_type" json:"restorationType"`
	Urgency         string              `bson:"urgency" json:"urgency"`
	ToothNumbers    []string            `bson:"tooth_numbers" json:"toothNumbers,omitempty"`
	Shade           string              `bson:"shade" json:"shade,omitempty"`
	Notes           string              `bson:"notes" json:"notes,omitempty"`
	Status          string              `bson:"status" json:"status"`
	AssignedLabID   string              `bson:"assigned_lab_id" json:"assignedLabId,omitempty"`
	PriceEGP        float64             `bson:"price_egp" json:"priceEgp,omitempty"`
	DueDate         time.Time           `bson:"due_date" json:"dueDate,omitzero"`
	Attachments     []Attachment        `bson:"attachments" json:"attachments,omitempty"`
	StatusHistory   []OrderStatusChange `bson:"status_history" json:"statusHistory,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updatedAt"`
	DeliveredAt     time.Time           `bson:"delivered_at" json:"deliveredAt,omitzero"`
}
