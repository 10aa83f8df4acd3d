package models

import "time"

// Visibility tiers, coarse reputation buckets used as a ranking tie-breaker.
const (
	TierEmerging    = "emerging"
	TierEstablished = "established"
	TierTrusted     = "trusted"
	TierElite       = "elite"
)

// TierRank maps a visibility tier to its ordering weight (elite highest).
func TierRank(tier string) int {
	switch tier {
	case TierElite:
		return 4
	case TierTrusted:
		return 3
	case TierEstablished:
		return 2
	case TierEmerging:
		return 1
	default:
		return 0
	}
}

// Specialization expertise levels.
const (
	ExpertiseBasic        = "basic"
	ExpertiseIntermediate = "intermediate"
	ExpertiseExpert       = "expert"
)

// Lab represents a dental laboratory profile.
type Lab struct {
	ID               string  `bson:"id" json:"id"`
	Name             string  `bson:"name" json:"name"`
	Email            string  `bson:"email" json:"email,omitempty"`
	PhoneNumber      string  `bson:"phone_number" json:"phoneNumber,omitempty"`
	Address          string  `bson:"address" json:"address,omitempty"`
	Description      string  `bson:"description" json:"description,omitempty"`
	TrustScore       float64 `bson:"trust_score" json:"trustScore"`
	MinPriceEGP      float64 `bson:"min_price_egp" json:"minPriceEgp"`
	MaxPriceEGP      float64 `bson:"max_price_egp" json:"maxPriceEgp"`
	IsNewLab         bool    `bson:"is_new_lab" json:"isNewLab"`
	VisibilityTier   string  `bson:"visibility_tier" json:"visibilityTier"`
	StandardSLADays  int     `bson:"standard_sla_days" json:"standardSlaDays"`
	UrgentSLADays    int     `bson:"urgent_sla_days" json:"urgentSlaDays"`
	CurrentLoad      int     `bson:"current_load" json:"currentLoad"`
	MaxCapacity      int     `bson:"max_capacity" json:"maxCapacity"`
	PerformanceScore float64 `bson:"performance_score" json:"performanceScore"`
	IsActive         bool    `bson:"is_active" json:"isActive"`

	PasswordHash string    `bson:"password_hash" json:"-"`
	Password     string    `bson:"-" json:"password,omitempty"`
	TokenHash    string    `bson:"token_hash" json:"-"`
	FCMToken     string    `bson:"fcm_token" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt,omitzero"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt,omitzero"`
}

// AtCapacity reports whether the lab cannot take more work.
func (l Lab) AtCapacity() bool {
	return l.MaxCapacity > 0 && l.CurrentLoad >= l.MaxCapacity
}

// LabPricing holds per-lab price terms for one restoration type.
type LabPricing struct {
	LabID                string  `bson:"lab_id" json:"labId"`
	RestorationType      string  `bson:"restoration_type" json:"restorationType"`
	FixedPrice           float64 `bson:"fixed_price" json:"fixedPrice,omitempty"`
	MinPrice             float64 `bson:"min_price" json:"minPrice,omitempty"`
	MaxPrice             float64 `bson:"max_price" json:"maxPrice,omitempty"`
	IncludesRush         bool    `bson:"includes_rush" json:"includesRush"`
	RushSurchargePercent float64 `bson:"rush_surcharge_percent" json:"rushSurchargePercent,omitempty"`
}

// LabSpecialization records a lab's expertise for one restoration type.
type LabSpecialization struct {
	LabID           string `bson:"lab_id" json:"labId"`
	RestorationType string `bson:"restoration_type" json:"restorationType"`
	ExpertiseLevel  string `bson:"expertise_level" json:"expertiseLevel"`
	TurnaroundDays  int    `bson:"turnaround_days" json:"turnaroundDays"`
}

// LabReview is a single rating event tied to a lab. Ratings are aggregated
// at read time, never stored as a rollup.
type LabReview struct {
	ID        string    `bson:"id" json:"id"`
	LabID     string    `bson:"lab_id" json:"labId"`
	OrderID   string    `bson:"order_id" json:"orderId,omitempty"`
	DoctorID  string    `bson:"doctor_id" json:"doctorId,omitempty"`
	Rating    float64   `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// LabPerformanceMetrics holds aggregate delivery counters per lab.
type LabPerformanceMetrics struct {
	LabID            string `bson:"lab_id" json:"labId"`
	CompletedOrders  int    `bson:"completed_orders" json:"completedOrders"`
	OnTimeDeliveries int    `bson:"on_time_deliveries" json:"onTimeDeliveries"`
	TotalOrders      int    `bson:"total_orders" json:"totalOrders"`
}

// OnTimeRate returns the on-time delivery ratio, 0 when nothing completed.
func (m LabPerformanceMetrics) OnTimeRate() float64 {
	if m.CompletedOrders == 0 {
		return 0
	}
	return float64(m.OnTimeDeliveries) / float64(m.CompletedOrders)
}

// PreferredLab is one entry of a dentist's ordered preference list.
// priority_order ascending means most preferred first.
type PreferredLab struct {
	DentistID     string `bson:"dentist_id" json:"dentistId"`
	LabID         string `bson:"lab_id" json:"labId"`
	PriorityOrder int    `bson:"priority_order" json:"priorityOrder"`
}
