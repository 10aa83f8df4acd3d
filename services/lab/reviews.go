package lab

import (
	"context"
	"fmt"
	"time"

	"lablink/models"

	"github.com/google/uuid"
)

// SubmitReview records a dentist's rating of the lab that produced one of
// their delivered orders. Ratings stay raw events; averages are computed at
// read time.
func (s *DefaultLabService) SubmitReview(ctx context.Context, r *models.LabReview) (*models.LabReview, error) {
	if r.Rating < 1 || r.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	ord, err := s.OrderRepo.GetByID(r.OrderID)
	if err != nil {
		return nil, err
	}
	if ord.DoctorID != r.DoctorID {
		return nil, fmt.Errorf("order %s does not belong to dentist %s", r.OrderID, r.DoctorID)
	}
	if ord.Status != models.OrderStatusDelivered {
		return nil, fmt.Errorf("only delivered orders can be reviewed")
	}

	r.ID = uuid.New().String()
	r.LabID = ord.AssignedLabID
	r.CreatedAt = time.Now()
	if err := s.LabRepo.CreateReview(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *DefaultLabService) ListReviews(ctx context.Context, labID string) ([]models.LabReview, *float64, error) {
	reviews, err := s.LabRepo.GetReviewsByLab(labID)
	if err != nil {
		return nil, nil, err
	}
	if len(reviews) == 0 {
		return reviews, nil, nil
	}
	var sum float64
	for _, rv := range reviews {
		sum += rv.Rating
	}
	avg := sum / float64(len(reviews))
	return reviews, &avg, nil
}
