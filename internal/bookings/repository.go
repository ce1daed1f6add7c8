package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/doctorsportal/portal/internal/database"
	"github.com/doctorsportal/portal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicate is returned by Repository.Insert when a booking with the
// same (treatment, date, patient) key already exists.
var ErrDuplicate = errors.New("booking already exists")

// Repository defines persistence operations for bookings. Bookings are
// never updated or deleted by the portal.
type Repository interface {
	// FindByKey returns nil, nil when no booking matches.
	FindByKey(ctx context.Context, key models.BookingKey) (*models.Booking, error)
	Insert(ctx context.Context, b *models.Booking) error
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	ListByPatient(ctx context.Context, email string) ([]models.Booking, error)
}

// MongoRepository implements Repository over the "booking" collection.
// It expects the unique index created by database.EnsureIndexes.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func keyFilter(key models.BookingKey) bson.M {
	return bson.M{
		"treatmentName": key.TreatmentName,
		"date":          key.Date,
		"patientEmail":  key.PatientEmail,
	}
}

func (r *MongoRepository) FindByKey(ctx context.Context, key models.BookingKey) (*models.Booking, error) {
	var b models.Booking
	if err := r.col.FindOne(ctx, keyFilter(key)).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find booking: %w", database.Classify(err))
	}
	return &b, nil
}

func (r *MongoRepository) Insert(ctx context.Context, b *models.Booking) error {
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoRepository) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"date": date})
}

func (r *MongoRepository) ListByPatient(ctx context.Context, email string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"patientEmail": email})
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", database.Classify(err))
	}
	out := []models.Booking{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", database.Classify(err))
	}
	return out, nil
}
