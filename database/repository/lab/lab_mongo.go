package labRepo

import (
	"context"
	"fmt"
	"time"

	"lablink/database"
	"lablink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoLabRepo implements LabRepository using MongoDB.
type MongoLabRepo struct {
	labs      *mongo.Collection
	pricing   *mongo.Collection
	specs     *mongo.Collection
	reviews   *mongo.Collection
	metrics   *mongo.Collection
	preferred *mongo.Collection
}

// NewMongoLabRepo creates a new instance of LabRepository using MongoDB.
func NewMongoLabRepo() LabRepository {
	db := database.DB()
	return &MongoLabRepo{
		labs:      db.Collection("labs"),
		pricing:   db.Collection("lab_pricing"),
		specs:     db.Collection("lab_specializations"),
		reviews:   db.Collection("lab_reviews"),
		metrics:   db.Collection("lab_performance_metrics"),
		preferred: db.Collection("preferred_labs"),
	}
}

func (r *MongoLabRepo) GetByID(id string) (*models.Lab, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var lab models.Lab
	if err := r.labs.FindOne(ctx, bson.M{"id": id}).Decode(&lab); err != nil {
		return nil, fmt.Errorf("failed to fetch lab with id %s: %w", id, err)
	}
	return &lab, nil
}

func (r *MongoLabRepo) GetByEmail(email string) (*models.Lab, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var lab models.Lab
	if err := r.labs.FindOne(ctx, bson.M{"email": email}).Decode(&lab); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch lab with email %s: %w", email, err)
	}
	return &lab, nil
}

func (r *MongoLabRepo) GetByTokenHash(tokenHash string) (*models.Lab, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var lab models.Lab
	if err := r.labs.FindOne(ctx, bson.M{"token_hash": tokenHash}).Decode(&lab); err != nil {
		return nil, fmt.Errorf("failed to fetch lab by token hash: %w", err)
	}
	return &lab, nil
}

func (r *MongoLabRepo) GetActive() ([]models.Lab, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := r.labs.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve active labs: %w", err)
	}
	defer cursor.Close(ctx)
	var labs []models.Lab
	for cursor.Next(ctx) {
		var l models.Lab
		if err := cursor.Decode(&l); err != nil {
			return nil, fmt.Errorf("failed to decode lab: %w", err)
		}
		labs = append(labs, l)
	}
	return labs, nil
}

func (r *MongoLabRepo) Create(lab *models.Lab) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.labs.InsertOne(ctx, lab); err != nil {
		return fmt.Errorf("failed to create lab: %w", err)
	}
	return nil
}

func (r *MongoLabRepo) Update(lab *models.Lab) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := r.labs.UpdateOne(ctx, bson.M{"id": lab.ID}, bson.M{"$set": lab})
	if err != nil {
		return fmt.Errorf("failed to update lab with id %s: %w", lab.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("lab with id %s not found", lab.ID)
	}
	return nil
}

func (r *MongoLabRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := r.labs.UpdateOne(ctx, bson.M{"id": id}, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to patch lab with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("lab with id %s not found", id)
	}
	return nil
}

func (r *MongoLabRepo) Deactivate(id string) error {
	return r.UpdateWithDocument(id, bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}})
}

func (r *MongoLabRepo) AdjustLoad(id string, delta int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := r.labs.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"current_load": delta}})
	if err != nil {
		return fmt.Errorf("failed to adjust load for lab %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("lab with id %s not found", id)
	}
	return nil
}
