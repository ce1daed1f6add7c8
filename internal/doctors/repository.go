package doctors

import (
	"context"
	"fmt"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/database"
	"github.com/doctorsportal/portal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository stores the provider roster.
type Repository interface {
	List(ctx context.Context) ([]models.Doctor, error)
	Insert(ctx context.Context, d *models.Doctor) error
	// DeleteByEmail returns apperr.ErrNotFound when nothing was removed.
	DeleteByEmail(ctx context.Context, email string) error
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) List(ctx context.Context) ([]models.Doctor, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find doctors: %w", database.Classify(err))
	}
	out := []models.Doctor{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode doctors: %w", database.Classify(err))
	}
	return out, nil
}

func (r *MongoRepository) Insert(ctx context.Context, d *models.Doctor) error {
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert doctor: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoRepository) DeleteByEmail(ctx context.Context, email string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("delete doctor: %w", database.Classify(err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("doctor %q: %w", email, apperr.ErrNotFound)
	}
	return nil
}
