package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"helper-app/internal/models"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) AddToCart(ctx context.Context, userID primitive.ObjectID, helperID string) (*models.User, error) {
	return r.updateArray(ctx, userID, bson.M{"$addToSet": bson.M{"cart": helperID}})
}

func (r *UserRepository) RemoveFromCart(ctx context.Context, userID primitive.ObjectID, helperID string) (*models.User, error) {
	return r.updateArray(ctx, userID, bson.M{"$pull": bson.M{"cart": helperID}})
}

func (r *UserRepository) AddLike(ctx context.Context, userID primitive.ObjectID, helperID string) (*models.User, error) {
	return r.updateArray(ctx, userID, bson.M{"$addToSet": bson.M{"likes": helperID}})
}

func (r *UserRepository) RemoveLike(ctx context.Context, userID primitive.ObjectID, helperID string) (*models.User, error) {
	return r.updateArray(ctx, userID, bson.M{"$pull": bson.M{"likes": helperID}})
}

func (r *UserRepository) updateArray(ctx context.Context, userID primitive.ObjectID, update bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
