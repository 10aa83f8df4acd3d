package labRepo

import (
	"context"
	"fmt"
	"time"

	"lablink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	defer cursor.Close(ctx)
	var out []T
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		out = append(out, item)
	}
	return out, cursor.Err()
}

func (r *MongoLabRepo) GetPricingByType(restorationType string) ([]models.LabPricing, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cursor, err := r.pricing.Find(ctx, bson.M{"restoration_type": restorationType})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pricing for %s: %w", restorationType, err)
	}
	return decodeAll[models.LabPricing](ctx, cursor)
}

func (r *MongoLabRepo) GetPricing(labID, restorationType string) (*models.LabPricing, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var p models.LabPricing
	filter := bson.M{"lab_id": labID, "restoration_type": restorationType}
	if err := r.pricing.FindOne(ctx, filter).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pricing for lab %s: %w", labID, err)
	}
	return &p, nil
}

func (r *MongoLabRepo) GetPricingByLab(labID string) ([]models.LabPricing, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cursor, err := r.pricing.Find(ctx, bson.M{"lab_id": labID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pricing for lab %s: %w", labID, err)
	}
	return decodeAll[models.LabPricing](ctx, cursor)
}

func (r *MongoLabRepo) UpsertPricing(p *models.LabPricing) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"lab_id": p.LabID, "restoration_type": p.RestorationType}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.pricing.ReplaceOne(ctx, filter, p, opts); err != nil {
		return fmt.Errorf("failed to upsert pricing for lab %s: %w", p.LabID, err)
	}
	return nil
}

func (r *MongoLabRepo) GetSpecializationsByType(restorationType string) ([]models.LabSpecialization, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cursor, err := r.specs.Find(ctx, bson.M{"restoration_type": restorationType})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch specializations for %s: %w", restorationType, err)
	}
	return decodeAll[models.LabSpecialization](ctx, cursor)
}

func (r *MongoLabRepo) GetSpecializationsByLab(labID string) ([]models.LabSpecialization, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cursor, err := r.specs.Find(ctx, bson.M{"lab_id": labID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch specializations for lab %s: %w", labID, err)
	}
	return decodeAll[models.LabSpecialization](ctx, cursor)
}

func (r *MongoLabRepo) UpsertSpecialization(s *models.LabSpecialization) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"lab_id": s.LabID, "restoration_type": s.RestorationType}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.specs.ReplaceOne(ctx, filter, s, opts); err != nil {
		return fmt.Errorf("failed to upsert specialization for lab %s: %w", s.LabID, err)
	}
	return nil
}

func (r *MongoLabRepo) ListReviews() ([]models.LabReview, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := r.reviews.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return decodeAll[models.LabReview](ctx, cursor)
}

func (r *MongoLabRepo) GetReviewsByLab(labID string) ([]models.LabReview, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cursor, err := r.reviews.Find(ctx, bson.M{"lab_id": labID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for lab %s: %w", labID, err)
	}
	return decodeAll[models.LabReview](ctx, cursor)
}

func (r *MongoLabRepo) CreateReview(review *models.LabReview) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.reviews.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *MongoLabRepo) ListMetrics() ([]models.LabPerformanceMetrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cursor, err := r.metrics.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch performance metrics: %w", err)
	}
	return decodeAll[models.LabPerformanceMetrics](ctx, cursor)
}

func (r *MongoLabRepo) RecordDelivery(labID string, onTime bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	inc := bson.M{"completed_orders": 1}
	if onTime {
		inc["on_time_deliveries"] = 1
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.metrics.UpdateOne(ctx, bson.M{"lab_id": labID}, bson.M{"$inc": inc}, opts); err != nil {
		return fmt.Errorf("failed to record delivery for lab %s: %w", labID, err)
	}
	return nil
}

func (r *MongoLabRepo) RecordOrder(labID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	opts := options.Update().SetUpsert(true)
	update := bson.M{"$inc": bson.M{"total_orders": 1}}
	if _, err := r.metrics.UpdateOne(ctx, bson.M{"lab_id": labID}, update, opts); err != nil {
		return fmt.Errorf("failed to record order for lab %s: %w", labID, err)
	}
	return nil
}

func (r *MongoLabRepo) GetPreferredLabs(dentistID string) ([]models.PreferredLab, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "priority_order", Value: 1}})
	cursor, err := r.preferred.Find(ctx, bson.M{"dentist_id": dentistID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preferred labs for dentist %s: %w", dentistID, err)
	}
	return decodeAll[models.PreferredLab](ctx, cursor)
}

func (r *MongoLabRepo) SetPreferredLabs(dentistID string, labIDs []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.preferred.DeleteMany(ctx, bson.M{"dentist_id": dentistID}); err != nil {
		return fmt.Errorf("failed to clear preferred labs for dentist %s: %w", dentistID, err)
	}
	if len(labIDs) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(labIDs))
	for i, labID := range labIDs {
		docs = append(docs, models.PreferredLab{
			DentistID:     dentistID,
			LabID:         labID,
			PriorityOrder: i + 1,
		})
	}
	if _, err := r.preferred.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to save preferred labs for dentist %s: %w", dentistID, err)
	}
	return nil
}

func (r *MongoLabRepo) RemovePreferredLab(dentistID, labID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"dentist_id": dentistID, "lab_id": labID}
	if _, err := r.preferred.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to remove preferred lab %s: %w", labID, err)
	}
	return nil
}
