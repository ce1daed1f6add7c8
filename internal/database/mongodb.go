package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the portal. They match the layout of the
// existing "doctors" database.
const (
	TreatmentsCollection = "appointment"
	BookingsCollection   = "booking"
	UsersCollection      = "users"
	DoctorsCollection    = "doctors"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri).SetTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the portal relies on. The
// booking index on (treatmentName, date, patientEmail) is the authoritative
// guard against double booking; the admission check in front of it only
// saves a round trip.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(BookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "treatmentName", Value: 1},
			{Key: "date", Value: 1},
			{Key: "patientEmail", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("booking_patient_day_unique"),
	})
	if err != nil {
		return fmt.Errorf("booking index: %w", Classify(err))
	}
	_, err = db.Collection(BookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetName("booking_date"),
	})
	if err != nil {
		return fmt.Errorf("booking date index: %w", Classify(err))
	}
	_, err = db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("user index: %w", Classify(err))
	}
	return nil
}
