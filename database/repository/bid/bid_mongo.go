package bidRepo

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

// MongoBidRepo implements BidRepository using MongoDB.
type MongoBidRepo struct {
	coll *mongo.Collection
}

// NewMongoBidRepo creates a new instance of BidRepository using MongoDB.
func NewMongoBidRepo() BidRepository {
	return &MongoBidRepo{coll: database.DB().Collection("bids")}
}

// EnsureIndexes creates indexes for frequently used fields in queries.
func (r *MongoBidRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "lab_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create bid indexes: %w", err)
	}
	return nil
}

func (r *MongoBidRepo) GetByID(id string) (*models.Bid, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var bid models.Bid
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&bid); err != nil {
		return nil, fmt.Errorf("failed to fetch bid with id %s: %w", id, err)
	}
	return &bid, nil
}

func (r *MongoBidRepo) Create(bid *models.Bid) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, bid); err != nil {
		return fmt.Errorf("failed to create bid: %w", err)
	}
	return nil
}

func (r *MongoBidRepo) find(filter bson.M) ([]models.Bid, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("bid query failed: %w", err)
	}
	defer cursor.Close(ctx)
	var bids []models.Bid
	for cursor.Next(ctx) {
		var b models.Bid
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode bid: %w", err)
		}
		bids = append(bids, b)
	}
	return bids, nil
}

func (r *MongoBidRepo) ListByOrder(orderID string) ([]models.Bid, error) {
	return r.find(bson.M{"order_id": orderID})
}

func (r *MongoBidRepo) ListByLab(labID string) ([]models.Bid, error) {
	return r.find(bson.M{"lab_id": labID})
}

func (r *MongoBidRepo) GetOpenBid(orderID, labID string) (*models.Bid, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"order_id": orderID, "lab_id": labID, "status": models.BidStatusOpen}
	var bid models.Bid
	if err := r.coll.FindOne(ctx, filter).Decode(&bid); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up open bid: %w", err)
	}
	return &bid, nil
}

func (r *MongoBidRepo) UpdateStatus(bidID, fromStatus, toStatus string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"id": bidID, "status": fromStatus}
	update := bson.M{"$set": bson.M{"status": toStatus, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update bid %s: %w", bidID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("bid %s is no longer in status %q", bidID, fromStatus)
	}
	return nil
}

func (r *MongoBidRepo) RejectOpenBidsExcept(orderID, acceptedBidID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{
		"order_id": orderID,
		"id":       bson.M{"$ne": acceptedBidID},
		"status":   models.BidStatusOpen,
	}
	update := bson.M{"$set": bson.M{"status": models.BidStatusRejected, "updated_at": time.Now()}}
	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to reject competing bids on order %s: %w", orderID, err)
	}
	return nil
}
