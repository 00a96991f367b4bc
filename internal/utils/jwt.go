package utils

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type JWTUtil struct {
	secret string
}

func NewJWTUtil(secret string) *JWTUtil {
	return &JWTUtil{secret: secret}
}

// GenerateToken issues a session token for a user or helper account.
// Role is "user" or "helper".
func (j *JWTUtil) GenerateToken(accountID, role string) (string, error) {
	expirationTime := time.Now().Add(72 * time.Hour)
	claims := jwt.MapClaims{
		"account_id": accountID,
		"role":       role,
		"exp":        expirationTime.Unix(),
		"iat":        time.Now().Unix(),
		"jti":        randomString(10),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTUtil) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unauthorized")
		}
		return []byte(j.secret), nil
	})
}

func (j *JWTUtil) IsTokenBlacklisted(ctx context.Context, jti string, redis *RedisClient) bool {
	var blacklisted bool
	err := redis.Get(ctx, fmt.Sprintf("blacklist:%s", jti), &blacklisted)
	return err == nil && blacklisted
}

func randomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
