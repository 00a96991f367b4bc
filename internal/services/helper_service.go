package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"helper-app/internal/models"
	"helper-app/internal/utils"
)

type HelperService struct {
	repo    HelperRepository
	jwtUtil *utils.JWTUtil
	redis   *utils.RedisClient
}

type HelperRepository interface {
	Create(ctx context.Context, helper *models.Helper) (*models.Helper, error)
	FindByID(ctx context.Context, helperID primitive.ObjectID) (*models.Helper, error)
	FindByEmail(ctx context.Context, email string) (*models.Helper, error)
	FindAll(ctx context.Context) ([]models.Helper, error)
	FindByRole(ctx context.Context, role string) ([]models.Helper, error)
	FindByIDs(ctx context.Context, helperIDs []primitive.ObjectID) ([]models.Helper, error)
	UpdateFields(ctx context.Context, helperID primitive.ObjectID, fields bson.M) (*models.Helper, error)
	Delete(ctx context.Context, helperID primitive.ObjectID) error
	AddLikedID(ctx context.Context, helperID primitive.ObjectID, userID string) (*models.Helper, error)
	RemoveLikedID(ctx context.Context, helperID primitive.ObjectID, userID string) (*models.Helper, error)
}

func NewHelperService(repo HelperRepository, jwtUtil *utils.JWTUtil, redis *utils.RedisClient) *HelperService {
	return &HelperService{repo: repo, jwtUtil: jwtUtil, redis: redis}
}

// CheckEmailAvailable is the pre-signup probe used by the frontend before
// it starts phone verification.
func (s *HelperService) CheckEmailAvailable(ctx context.Context, email string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}
	if existing != nil {
		return models.ErrDuplicate
	}
	return nil
}

func (s *HelperService) Signup(ctx context.Context, helper *models.Helper) (*models.Helper, error) {
	if err := s.CheckEmailAvailable(ctx, helper.Email); err != nil {
		return nil, err
	}

	if err := helper.HashPassword(); err != nil {
		return nil, err
	}
	helper.AccountActive = "Active"
	helper.Rating = 0
	helper.RatedUserIDs = []models.RatingEntry{}
	helper.LikedIDs = []string{}

	return s.repo.Create(ctx, helper)
}

func (s *HelperService) Login(ctx context.Context, email, password string) (*models.Helper, string, error) {
	helper, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", models.ErrNotFound
	}

	if err := helper.ComparePassword(password); err != nil {
		return nil, "", models.ErrValidation
	}

	token, err := s.jwtUtil.GenerateToken(helper.ID.Hex(), "helper")
	if err != nil {
		return nil, "", err
	}
	return helper, token, nil
}

func (s *HelperService) GetAll(ctx context.Context) ([]models.Helper, error) {
	return s.repo.FindAll(ctx)
}

func (s *HelperService) GetByRole(ctx context.Context, role string) ([]models.Helper, error) {
	return s.repo.FindByRole(ctx, role)
}

func (s *HelperService) GetByID(ctx context.Context, helperID string) (*models.Helper, error) {
	oid, err := primitive.ObjectIDFromHex(helperID)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	cacheKey := fmt.Sprintf("helper_profile:%s", helperID)
	var cached models.Helper
	if err := s.redis.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	helper, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := s.redis.Set(ctx, cacheKey, helper, 5*time.Minute); err != nil {
		log.Printf("Failed to cache helper profile: %v", err)
	}

	return helper, nil
}

// GetByIDs serves the cart view: all helper documents for the IDs a user
// has added to the cart. Unknown IDs are skipped, not errors.
func (s *HelperService) GetByIDs(ctx context.Context, helperIDs []string) ([]models.Helper, error) {
	oids := make([]primitive.ObjectID, 0, len(helperIDs))
	for _, id := range helperIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	return s.repo.FindByIDs(ctx, oids)
}

func (s *HelperService) Update(ctx context.Context, helperID string, fields bson.M) (*models.Helper, error) {
	oid, err := primitive.ObjectIDFromHex(helperID)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	if len(fields) == 0 {
		return s.repo.FindByID(ctx, oid)
	}

	helper, err := s.repo.UpdateFields(ctx, oid, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, helperID)
	return helper, nil
}

func (s *HelperService) Delete(ctx context.Context, helperID string) error {
	oid, err := primitive.ObjectIDFromHex(helperID)
	if err != nil {
		return models.ErrInvalidID
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}

	s.invalidateCache(ctx, helperID)
	return nil
}

func (s *HelperService) AddLikedID(ctx context.Context, helperID, userID string) (*models.Helper, error) {
	return s.updateLiked(ctx, helperID, userID, true)
}

func (s *HelperService) RemoveLikedID(ctx context.Context, helperID, userID string) (*models.Helper, error) {
	return s.updateLiked(ctx, helperID, userID, false)
}

func (s *HelperService) updateLiked(ctx context.Context, helperID, userID string, add bool) (*models.Helper, error) {
	oid, err := primitive.ObjectIDFromHex(helperID)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	var helper *models.Helper
	if add {
		helper, err = s.repo.AddLikedID(ctx, oid, userID)
	} else {
		helper, err = s.repo.RemoveLikedID(ctx, oid, userID)
	}
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, helperID)
	return helper, nil
}

func (s *HelperService) UpdateActiveStatus(ctx context.Context, helperID, status string) (*models.Helper, error) {
	return s.Update(ctx, helperID, bson.M{"account_active": status})
}

func (s *HelperService) UpdateWorkTime(ctx context.Context, helperID, workTime string) (*models.Helper, error) {
	return s.Update(ctx, helperID, bson.M{"work_time": workTime})
}

func (s *HelperService) invalidateCache(ctx context.Context, helperID string) {
	_ = s.redis.Delete(ctx, fmt.Sprintf("helper_profile:%s", helperID))
}
