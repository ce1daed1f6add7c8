package treatments

import (
	"context"
	"fmt"

	"github.com/doctorsportal/portal/internal/database"
	"github.com/doctorsportal/portal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository reads the treatment catalogue. Treatments are seeded out of
// band; Upsert exists for the seeder only.
type Repository interface {
	List(ctx context.Context) ([]models.Treatment, error)
	ListNames(ctx context.Context) ([]models.TreatmentName, error)
	Upsert(ctx context.Context, t *models.Treatment) error
}

// MongoRepository implements Repository over the "appointment" collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) List(ctx context.Context) ([]models.Treatment, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find treatments: %w", database.Classify(err))
	}
	out := []models.Treatment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode treatments: %w", database.Classify(err))
	}
	return out, nil
}

func (r *MongoRepository) ListNames(ctx context.Context) ([]models.TreatmentName, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find treatment names: %w", database.Classify(err))
	}
	out := []models.TreatmentName{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode treatment names: %w", database.Classify(err))
	}
	return out, nil
}

// Upsert replaces the treatment with the same name, inserting it when absent.
func (r *MongoRepository) Upsert(ctx context.Context, t *models.Treatment) error {
	set := bson.M{"name": t.Name, "slots": t.Slots}
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, bson.M{"name": t.Name}, bson.M{"$set": set}, opts); err != nil {
		return fmt.Errorf("upsert treatment %q: %w", t.Name, database.Classify(err))
	}
	return nil
}
