package users

import (
	"context"
	"fmt"
	"time"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/database"
	"github.com/doctorsportal/portal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	UpsertByEmail(ctx context.Context, u *models.User) (*models.User, error)
	// GetByEmail returns nil, nil when no profile exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// SetRole returns apperr.ErrNotFound when no profile exists.
	SetRole(ctx context.Context, email string, role models.Role) error
}

// MongoUserRepository implements UserRepository using MongoDB
type MongoUserRepository struct {
	col *mongo.Collection
}

// NewMongoUserRepository creates a new repository for the given collection
func NewMongoUserRepository(col *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{col: col}
}

// UpsertByEmail writes name and profile fields for u.Email. The role is
// never written here; it only changes through SetRole.
func (r *MongoUserRepository) UpsertByEmail(ctx context.Context, u *models.User) (*models.User, error) {
	now := time.Now().UTC()
	set := bson.M{"email": u.Email, "updatedAt": now}
	for k, v := range u.Profile {
		set[k] = v
	}
	if u.Name != "" {
		set["name"] = u.Name
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated models.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"email": u.Email}, update, opts).Decode(&updated); err != nil {
		return nil, fmt.Errorf("upsert user %q: %w", u.Email, database.Classify(err))
	}
	return &updated, nil
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %q: %w", email, database.Classify(err))
	}
	return &u, nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]models.User, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", database.Classify(err))
	}
	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode users: %w", database.Classify(err))
	}
	return out, nil
}

func (r *MongoUserRepository) SetRole(ctx context.Context, email string, role models.Role) error {
	var update bson.M
	if role == models.RoleAdmin {
		update = bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now().UTC()}}
	} else {
		update = bson.M{"$unset": bson.M{"role": ""}, "$set": bson.M{"updatedAt": time.Now().UTC()}}
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("set role for %q: %w", email, database.Classify(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %q: %w", email, apperr.ErrNotFound)
	}
	return nil
}
