package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"helper-app/internal/models"
)

type VerificationRepository struct {
	collection *mongo.Collection
}

func NewVerificationRepository(db *mongo.Database) *VerificationRepository {
	return &VerificationRepository{
		collection: db.Collection("verifications"),
	}
}

// EnsureIndexes creates the TTL index that reaps expired codes in the
// background. Lookups still filter on expires_at themselves, since the
// reaper only runs periodically.
func (r *VerificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (r *VerificationRepository) Create(ctx context.Context, code *models.VerificationCode) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, code)
	if err != nil {
		return err
	}

	code.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindActiveByEmail returns every code for the email that is still inside
// its validity window at the given time.
func (r *VerificationRepository) FindActiveByEmail(ctx context.Context, email string, now time.Time) ([]models.VerificationCode, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{
		"email":      email,
		"expires_at": bson.M{"$gt": now},
	})
	if err != nil {
		return nil, err
	}

	var codes []models.VerificationCode
	if err := cursor.All(ctx, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}
