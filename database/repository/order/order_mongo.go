package orderRepo

import (
	"context"
	"fmt"
	"time"

	"lablink/database"
	"lablink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepo implements OrderRepository using MongoDB.
type MongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo creates a new instance of OrderRepository using MongoDB.
func NewMongoOrderRepo() OrderRepository {
	return &MongoOrderRepo{coll: database.DB().Collection("orders")}
}

// EnsureIndexes creates indexes for frequently used fields in queries.
func (r *MongoOrderRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_lab_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "restoration_type", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}

func (r *MongoOrderRepo) GetByID(id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to fetch order with id %s: %w", id, err)
	}
	return &order, nil
}

func (r *MongoOrderRepo) Create(order *models.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *MongoOrderRepo) find(filter bson.M) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("order query failed: %w", err)
	}
	defer cursor.Close(ctx)
	var orders []models.Order
	for cursor.Next(ctx) {
		var o models.Order
		if err := cursor.Decode(&o); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *MongoOrderRepo) ListByDoctor(doctorID string) ([]models.Order, error) {
	return r.find(bson.M{"doctor_id": doctorID})
}

func (r *MongoOrderRepo) ListByLab(labID string) ([]models.Order, error) {
	return r.find(bson.M{"assigned_lab_id": labID})
}

func (r *MongoOrderRepo) ListOpenByTypes(restorationTypes []string) ([]models.Order, error) {
	filter := bson.M{
		"status":          models.OrderStatusPending,
		"assigned_lab_id": "",
	}
	if len(restorationTypes) > 0 {
		filter["restoration_type"] = bson.M{"$in": restorationTypes}
	}
	return r.find(filter)
}

// AssignLab is the single side-effecting write of the auto-assignment path: a
// one-document update that records the winner and advances the status.
func (r *MongoOrderRepo) AssignLab(orderID, labID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"assigned_lab_id": labID,
			"status":          models.OrderStatusAssigned,
			"updated_at":      now,
		},
		"$push": bson.M{
			"status_history": models.OrderStatusChange{
				From:      models.OrderStatusPending,
				To:        models.OrderStatusAssigned,
				ChangedAt: now,
			},
		},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": orderID}, update)
	if err != nil {
		return fmt.Errorf("failed to assign lab %s to order %s: %w", labID, orderID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order with id %s not found", orderID)
	}
	return nil
}

func (r *MongoOrderRepo) UpdateStatus(orderID string, change models.OrderStatusChange) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"id": orderID, "status": change.From}
	update := bson.M{
		"$set":  bson.M{"status": change.To, "updated_at": change.ChangedAt},
		"$push": bson.M{"status_history": change},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update status of order %s: %w", orderID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s is no longer in status %q", orderID, change.From)
	}
	return nil
}

func (r *MongoOrderRepo) SetDelivered(orderID string, change models.OrderStatusChange) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"id": orderID, "status": change.From}
	update := bson.M{
		"$set": bson.M{
			"status":       models.OrderStatusDelivered,
			"delivered_at": change.ChangedAt,
			"updated_at":   change.ChangedAt,
		},
		"$push": bson.M{"status_history": change},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark order %s delivered: %w", orderID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s is no longer in status %q", orderID, change.From)
	}
	return nil
}

func (r *MongoOrderRepo) SetDueDate(orderID string, due time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"due_date": due, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": orderID}, update)
	if err != nil {
		return fmt.Errorf("failed to set due date on order %s: %w", orderID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order with id %s not found", orderID)
	}
	return nil
}

func (r *MongoOrderRepo) AddAttachment(orderID string, att models.Attachment) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$push": bson.M{"attachments": att}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": orderID}, update)
	if err != nil {
		return fmt.Errorf("failed to attach file to order %s: %w", orderID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order with id %s not found", orderID)
	}
	return nil
}

func (r *MongoOrderRepo) SetPrice(orderID string, priceEGP float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"price_egp": priceEGP, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": orderID}, update)
	if err != nil {
		return fmt.Errorf("failed to set price on order %s: %w", orderID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order with id %s not found", orderID)
	}
	return nil
}
