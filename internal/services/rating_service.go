package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"helper-app/internal/models"
	"helper-app/internal/utils"
)

type RatingService struct {
	repo  RatingRepository
	redis *utils.RedisClient
}

type RatingRepository interface {
	UpsertRating(ctx context.Context, helperID primitive.ObjectID, userID string, value float64) (*models.Helper, error)
}

func NewRatingService(repo RatingRepository, redis *utils.RedisClient) *RatingService {
	return &RatingService{repo: repo, redis: redis}
}

// SubmitRating records the rater's value for the helper and returns the
// helper with the recomputed aggregate. Resubmitting the same value is a
// no-op; a different value for the same rater replaces the old one.
func (s *RatingService) SubmitRating(ctx context.Context, helperID, userID string, value float64) (*models.Helper, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty rater id", models.ErrValidation)
	}

	oid, err := primitive.ObjectIDFromHex(helperID)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	helper, err := s.repo.UpsertRating(ctx, oid, userID, value)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	if s.redis != nil {
		_ = s.redis.Delete(ctx, fmt.Sprintf("helper_profile:%s", helperID))
	}

	return helper, nil
}
