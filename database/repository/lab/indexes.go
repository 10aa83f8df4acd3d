package labRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates indexes for frequently used fields in queries.
func (r *MongoLabRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	labIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	}
	if _, err := r.labs.Indexes().CreateMany(ctx, labIdx); err != nil {
		return fmt.Errorf("failed to create lab indexes: %w", err)
	}

	pairIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "lab_id", Value: 1}, {Key: "restoration_type", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.pricing.Indexes().CreateOne(ctx, pairIdx); err != nil {
		return fmt.Errorf("failed to create pricing index: %w", err)
	}
	if _, err := r.specs.Indexes().CreateOne(ctx, pairIdx); err != nil {
		return fmt.Errorf("failed to create specialization index: %w", err)
	}

	reviewIdx := mongo.IndexModel{Keys: bson.D{{Key: "lab_id", Value: 1}}}
	if _, err := r.reviews.Indexes().CreateOne(ctx, reviewIdx); err != nil {
		return fmt.Errorf("failed to create review index: %w", err)
	}

	metricsIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "lab_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.metrics.Indexes().CreateOne(ctx, metricsIdx); err != nil {
		return fmt.Errorf("failed to create metrics index: %w", err)
	}

	prefIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "dentist_id", Value: 1}, {Key: "lab_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.preferred.Indexes().CreateOne(ctx, prefIdx); err != nil {
		return fmt.Errorf("failed to create preferred lab index: %w", err)
	}

	return nil
}
