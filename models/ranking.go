package models

// RankedLab is a Lab enriched with the facts the scoring engine matched for a
// specific (restoration type, urgency, dentist) request. Built fresh on every
// ranking invocation, never persisted.
type RankedLab struct {
	Lab            Lab                    `json:"lab"`
	Rank           int                    `json:"rank"` // 1 = best
	Pricing        *LabPricing            `json:"pricing,omitempty"`
	Specialization *LabSpecialization     `json:"specialization,omitempty"`
	Metrics        *LabPerformanceMetrics `json:"metrics,omitempty"`
	AverageRating  *float64               `json:"averageRating,omitempty"`
	EstimatedDays  int                    `json:"estimatedDays"`
	Preferred      bool                   `json:"preferred"`
	PreferredRank  int                    `json:"preferredRank,omitempty"` // 1 = most preferred, 0 = not preferred
}

// ShortlistRequest parameterizes the dentist-facing ranking.
type ShortlistRequest struct {
	RestorationType string `json:"restorationType"`
	Urgency         string `json:"urgency"`
	DoctorID        string `json:"doctorId"`
	Limit           int    `json:"limit,omitempty"`
}

// ShortlistResult is the dentist-facing ranking output.
type ShortlistResult struct {
	RankedLabs      []RankedLab `json:"rankedLabs"`
	PreferredLabIDs []string    `json:"preferredLabIds"`
}

// AssignRequest is the auto-assignment input.
type AssignRequest struct {
	OrderID         string `json:"orderId" binding:"required"`
	RestorationType string `json:"restorationType" binding:"required"`
	Urgency         string `json:"urgency" binding:"required"`
	DoctorID        string `json:"doctorId" binding:"required"`
}

// AssignResult is the auto-assignment outcome, including the reason trail for
// the winning lab's score.
type AssignResult struct {
	Success       bool     `json:"success"`
	AssignedLabID string   `json:"assignedLabId"`
	Score         float64  `json:"score"`
	Reason        []string `json:"reason"`
}
