package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"helper-app/internal/models"
)

const queryTimeout = 5 * time.Second

type HelperRepository struct {
	collection *mongo.Collection
}

func NewHelperRepository(db *mongo.Database) *HelperRepository {
	return &HelperRepository{
		collection: db.Collection("helpers"),
	}
}

func (r *HelperRepository) Create(ctx context.Context, helper *models.Helper) (*models.Helper, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, helper)
	if err != nil {
		return nil, err
	}

	helper.ID = result.InsertedID.(primitive.ObjectID)
	return helper, nil
}

func (r *HelperRepository) FindByID(ctx context.Context, helperID primitive.ObjectID) (*models.Helper, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var helper models.Helper
	err := r.collection.FindOne(ctx, bson.M{"_id": helperID}).Decode(&helper)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &helper, nil
}

func (r *HelperRepository) FindByEmail(ctx context.Context, email string) (*models.Helper, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var helper models.Helper
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&helper)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &helper, nil
}

func (r *HelperRepository) FindAll(ctx context.Context) ([]models.Helper, error) {
	return r.find(ctx, bson.M{})
}

func (r *HelperRepository) FindByRole(ctx context.Context, role string) ([]models.Helper, error) {
	return r.find(ctx, bson.M{"role": role})
}

func (r *HelperRepository) FindByIDs(ctx context.Context, helperIDs []primitive.ObjectID) ([]models.Helper, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": helperIDs}})
}

func (r *HelperRepository) find(ctx context.Context, filter bson.M) ([]models.Helper, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var helpers []models.Helper
	if err := cursor.All(ctx, &helpers); err != nil {
		return nil, err
	}
	return helpers, nil
}

func (r *HelperRepository) UpdateFields(ctx context.Context, helperID primitive.ObjectID, fields bson.M) (*models.Helper, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var helper models.Helper
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": helperID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&helper)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &helper, nil
}

func (r *HelperRepository) Delete(ctx context.Context, helperID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": helperID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *HelperRepository) AddLikedID(ctx context.Context, helperID primitive.ObjectID, userID string) (*models.Helper, error) {
	return r.updateArray(ctx, helperID, bson.M{"$addToSet": bson.M{"liked_ids": userID}})
}

func (r *HelperRepository) RemoveLikedID(ctx context.Context, helperID primitive.ObjectID, userID string) (*models.Helper, error) {
	return r.updateArray(ctx, helperID, bson.M{"$pull": bson.M{"liked_ids": userID}})
}

func (r *HelperRepository) updateArray(ctx context.Context, helperID primitive.ObjectID, update bson.M) (*models.Helper, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var helper models.Helper
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": helperID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&helper)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &helper, nil
}

// UpsertRating overwrites the rater's entry in rated_user_ids in place
// (appending only when the rater has no entry yet) and recomputes
// helper_rating from the updated array, all in one aggregation-pipeline
// update. A single document update is atomic, so two concurrent submissions
// can never compute the aggregate from stale entries.
func (r *HelperRepository) UpsertRating(ctx context.Context, helperID primitive.ObjectID, userID string, value float64) (*models.Helper, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	entry := bson.M{"user_id": userID, "rated_value": value}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"rated_user_ids": bson.M{"$let": bson.M{
				"vars": bson.M{"entries": bson.M{"$ifNull": bson.A{"$rated_user_ids", bson.A{}}}},
				"in": bson.M{"$cond": bson.A{
					bson.M{"$in": bson.A{userID, "$$entries.user_id"}},
					bson.M{"$map": bson.M{
						"input": "$$entries",
						"as":    "entry",
						"in": bson.M{"$cond": bson.A{
							bson.M{"$eq": bson.A{"$$entry.user_id", userID}},
							entry,
							"$$entry",
						}},
					}},
					bson.M{"$concatArrays": bson.A{"$$entries", bson.A{entry}}},
				}},
			}},
		}}},
		{{Key: "$set", Value: bson.M{
			"helper_rating": bson.M{"$let": bson.M{
				"vars": bson.M{"valid": bson.M{"$filter": bson.M{
					"input": "$rated_user_ids",
					"as":    "entry",
					"cond":  bson.M{"$gt": bson.A{"$$entry.rated_value", 0}},
				}}},
				"in": bson.M{"$cond": bson.A{
					bson.M{"$gt": bson.A{bson.M{"$size": "$$valid"}, 0}},
					bson.M{"$toInt": bson.M{"$floor": bson.M{"$avg": "$$valid.rated_value"}}},
					0,
				}},
			}},
		}}},
	}

	var helper models.Helper
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": helperID},
		pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&helper)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &helper, nil
}
