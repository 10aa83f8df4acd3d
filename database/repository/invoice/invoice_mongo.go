package invoiceRepo

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

// MongoInvoiceRepo implements InvoiceRepository using MongoDB.
type MongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo creates a new instance of InvoiceRepository using MongoDB.
func NewMongoInvoiceRepo() InvoiceRepository {
	return &MongoInvoiceRepo{coll: database.DB().Collection("invoices")}
}

// EnsureIndexes creates indexes for frequently used fields in queries.
func (r *MongoInvoiceRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "issued_at", Value: -1}}},
		{Keys: bson.D{{Key: "lab_id", Value: 1}, {Key: "issued_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create invoice indexes: %w", err)
	}
	return nil
}

func (r *MongoInvoiceRepo) GetByID(id string) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var inv models.Invoice
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&inv); err != nil {
		return nil, fmt.Errorf("failed to fetch invoice with id %s: %w", id, err)
	}
	return &inv, nil
}

func (r *MongoInvoiceRepo) GetByOrder(orderID string) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var inv models.Invoice
	if err := r.coll.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&inv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch invoice for order %s: %w", orderID, err)
	}
	return &inv, nil
}

func (r *MongoInvoiceRepo) Create(inv *models.Invoice) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *MongoInvoiceRepo) find(filter bson.M) ([]models.Invoice, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "issued_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("invoice query failed: %w", err)
	}
	defer cursor.Close(ctx)
	var invoices []models.Invoice
	for cursor.Next(ctx) {
		var inv models.Invoice
		if err := cursor.Decode(&inv); err != nil {
			return nil, fmt.Errorf("failed to decode invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (r *MongoInvoiceRepo) ListByDoctor(doctorID string) ([]models.Invoice, error) {
	return r.find(bson.M{"doctor_id": doctorID})
}

func (r *MongoInvoiceRepo) ListByLab(labID string) ([]models.Invoice, error) {
	return r.find(bson.M{"lab_id": labID})
}

func (r *MongoInvoiceRepo) SetPaymentIntent(invoiceID, paymentIntentID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"id": invoiceID, "status": models.InvoiceStatusIssued}
	update := bson.M{"$set": bson.M{"stripe_payment_intent": paymentIntentID}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to store payment intent on invoice %s: %w", invoiceID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("invoice %s not found or not payable", invoiceID)
	}
	return nil
}

func (r *MongoInvoiceRepo) MarkPaid(invoiceID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"id": invoiceID, "status": models.InvoiceStatusIssued}
	update := bson.M{"$set": bson.M{"status": models.InvoiceStatusPaid, "paid_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark invoice %s paid: %w", invoiceID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("invoice %s not found or already settled", invoiceID)
	}
	return nil
}
