package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"helper-app/internal/models"
	"helper-app/internal/utils"
)

type UserService struct {
	repo    UserRepository
	jwtUtil *utils.JWTUtil
	redis   *utils.RedisClient
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	AddToCart(ctx context.Context, userID primitive.ObjectID, helperID string) (*models.User, error)
	RemoveFromCart(ctx context.Context, userID primitive.ObjectID, helperID string) (*models.User, error)
	AddLike(ctx context.Context, userID primitive.ObjectID, helperID string) (*models.User, error)
	RemoveLike(ctx context.Context, userID primitive.ObjectID, helperID string) (*models.User, error)
}

func NewUserService(repo UserRepository, jwtUtil *utils.JWTUtil, redis *utils.RedisClient) *UserService {
	return &UserService{repo: repo, jwtUtil: jwtUtil, redis: redis}
}

func (s *UserService) Signup(ctx context.Context, user *models.User) (*models.User, error) {
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrDuplicate
	}

	if err := user.HashPassword(); err != nil {
		return nil, err
	}
	user.Cart = []string{}
	user.Likes = []string{}

	return s.repo.Create(ctx, user)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", models.ErrNotFound
	}

	if err := user.ComparePassword(password); err != nil {
		return nil, "", models.ErrValidation
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), "user")
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) AddToCart(ctx context.Context, userID, helperID string) (*models.User, error) {
	return s.updateArray(ctx, userID, helperID, s.repo.AddToCart)
}

func (s *UserService) RemoveFromCart(ctx context.Context, userID, helperID string) (*models.User, error) {
	return s.updateArray(ctx, userID, helperID, s.repo.RemoveFromCart)
}

func (s *UserService) AddLike(ctx context.Context, userID, helperID string) (*models.User, error) {
	return s.updateArray(ctx, userID, helperID, s.repo.AddLike)
}

func (s *UserService) RemoveLike(ctx context.Context, userID, helperID string) (*models.User, error) {
	return s.updateArray(ctx, userID, helperID, s.repo.RemoveLike)
}

func (s *UserService) updateArray(ctx context.Context, userID, helperID string,
	op func(context.Context, primitive.ObjectID, string) (*models.User, error)) (*models.User, error) {

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	return op(ctx, oid, helperID)
}

// Logout blacklists the token's jti for the remainder of its lifetime.
func (s *UserService) Logout(ctx context.Context, tokenString string) error {
	token, err := s.jwtUtil.ValidateToken(tokenString)
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid token claims")
	}

	jti, ok := claims["jti"].(string)
	if !ok {
		return errors.New("missing jti in token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("invalid token expiration")
	}

	ttl := time.Until(time.Unix(int64(exp), 0))
	return s.redis.Set(ctx, fmt.Sprintf("blacklist:%s", jti), true, ttl)
}
