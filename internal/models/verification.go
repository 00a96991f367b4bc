package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CodeTTL is how long an issued verification code stays valid.
const CodeTTL = 5 * time.Minute

// VerificationCode is one issued OTP. Several codes may be outstanding for
// the same email at once; each expires independently.
type VerificationCode struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Code      string             `bson:"code" json:"otp"`
	Number    string             `bson:"number,omitempty" json:"number,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expiresAt"`
}

// Expired reports whether the code is past its deadline at the given time.
func (v *VerificationCode) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}
