package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"helper-app/internal/models"
)

// fakeRatingRepo applies the same upsert-and-recompute mutation the Mongo
// pipeline performs, against an in-memory map.
type fakeRatingRepo struct {
	helpers map[primitive.ObjectID]*models.Helper
}

func newFakeRatingRepo(helpers ...*models.Helper) *fakeRatingRepo {
	repo := &fakeRatingRepo{helpers: make(map[primitive.ObjectID]*models.Helper)}
	for _, h := range helpers {
		repo.helpers[h.ID] = h
	}
	return repo
}

func (r *fakeRatingRepo) UpsertRating(_ context.Context, helperID primitive.ObjectID, userID string, value float64) (*models.Helper, error) {
	helper, ok := r.helpers[helperID]
	if !ok {
		return nil, models.ErrNotFound
	}
	helper.ApplyRating(userID, value)
	copied := *helper
	return &copied, nil
}

func TestSubmitRating_FirstRating(t *testing.T) {
	helper := &models.Helper{ID: primitive.NewObjectID()}
	svc := NewRatingService(newFakeRatingRepo(helper), nil)

	got, err := svc.SubmitRating(context.Background(), helper.ID.Hex(), "u1", 4)
	if err != nil {
		t.Fatalf("SubmitRating: %v", err)
	}
	if got.Rating != 4 {
		t.Errorf("Rating = %d, want 4", got.Rating)
	}
}

func TestSubmitRating_RecomputesAggregate(t *testing.T) {
	helper := &models.Helper{
		ID: primitive.NewObjectID(),
		RatedUserIDs: []models.RatingEntry{
			{UserID: "u1", RatedValue: 5},
			{UserID: "u2", RatedValue: 3},
		},
		Rating: 4,
	}
	svc := NewRatingService(newFakeRatingRepo(helper), nil)

	// zeroing u1 leaves only u2's 3 in the mean
	got, err := svc.SubmitRating(context.Background(), helper.ID.Hex(), "u1", 0)
	if err != nil {
		t.Fatalf("SubmitRating: %v", err)
	}
	if got.Rating != 3 {
		t.Errorf("Rating = %d, want 3", got.Rating)
	}
}

func TestSubmitRating_Idempotent(t *testing.T) {
	helper := &models.Helper{ID: primitive.NewObjectID()}
	svc := NewRatingService(newFakeRatingRepo(helper), nil)

	first, err := svc.SubmitRating(context.Background(), helper.ID.Hex(), "u1", 5)
	if err != nil {
		t.Fatalf("SubmitRating: %v", err)
	}
	second, err := svc.SubmitRating(context.Background(), helper.ID.Hex(), "u1", 5)
	if err != nil {
		t.Fatalf("SubmitRating: %v", err)
	}

	if first.Rating != second.Rating {
		t.Errorf("aggregate changed on duplicate submission: %d -> %d", first.Rating, second.Rating)
	}
	if len(second.RatedUserIDs) != 1 {
		t.Errorf("entries = %d, want 1", len(second.RatedUserIDs))
	}
}

func TestSubmitRating_LastWriteWinsPerRater(t *testing.T) {
	helper := &models.Helper{ID: primitive.NewObjectID()}
	svc := NewRatingService(newFakeRatingRepo(helper), nil)

	if _, err := svc.SubmitRating(context.Background(), helper.ID.Hex(), "u1", 5); err != nil {
		t.Fatalf("SubmitRating: %v", err)
	}
	got, err := svc.SubmitRating(context.Background(), helper.ID.Hex(), "u1", 2)
	if err != nil {
		t.Fatalf("SubmitRating: %v", err)
	}

	if len(got.RatedUserIDs) != 1 {
		t.Fatalf("entries = %d, want 1 (update, not duplicate)", len(got.RatedUserIDs))
	}
	if got.Rating != 2 {
		t.Errorf("Rating = %d, want 2", got.Rating)
	}
}

func TestSubmitRating_HelperNotFound(t *testing.T) {
	svc := NewRatingService(newFakeRatingRepo(), nil)

	_, err := svc.SubmitRating(context.Background(), primitive.NewObjectID().Hex(), "u1", 4)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSubmitRating_InvalidInput(t *testing.T) {
	helper := &models.Helper{ID: primitive.NewObjectID()}
	svc := NewRatingService(newFakeRatingRepo(helper), nil)

	if _, err := svc.SubmitRating(context.Background(), helper.ID.Hex(), "", 4); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty rater: err = %v, want ErrValidation", err)
	}
	if _, err := svc.SubmitRating(context.Background(), "not-a-hex-id", "u1", 4); !errors.Is(err, models.ErrInvalidID) {
		t.Errorf("bad helper id: err = %v, want ErrInvalidID", err)
	}
}
