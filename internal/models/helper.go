package models

import (
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// RatingEntry is a single user's rating of a helper. A rated value of zero
// (or below) means "no rating" and is excluded from the aggregate.
type RatingEntry struct {
	UserID     string  `bson:"user_id" json:"userID"`
	RatedValue float64 `bson:"rated_value" json:"ratedValue"`
}

type Helper struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Image         string             `bson:"image,omitempty" json:"helperImage"`
	Name          string             `bson:"name" json:"helperName" validate:"required"`
	DateOfBirth   string             `bson:"date_of_birth" json:"helperDOB"`
	Gender        string             `bson:"gender" json:"helperGender"`
	Role          string             `bson:"role" json:"helperRole" validate:"required"`
	Experience    string             `bson:"experience" json:"helperExperience"`
	WorkTime      string             `bson:"work_time" json:"helperWorkTime"`
	Email         string             `bson:"email" json:"helperEmail" validate:"required,email"`
	Password      string             `bson:"password" json:"-" validate:"required,min=6"`
	PhoneNumber   string             `bson:"phone_number" json:"helperPhoneNumber"`
	LikedIDs      []string           `bson:"liked_ids" json:"likedID"`
	AccountActive string             `bson:"account_active" json:"accountActive"`
	RatedUserIDs  []RatingEntry      `bson:"rated_user_ids" json:"ratedUserID"`
	Rating        int                `bson:"helper_rating" json:"helperRating"`
}

func (h *Helper) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(h.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	h.Password = string(hashed)
	return nil
}

func (h *Helper) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(h.Password), []byte(password))
}

// ApplyRating upserts the rater's entry (last write wins per rater) and
// recomputes the aggregate. The storage layer performs the same mutation as
// a single atomic document update; this form backs the in-memory path.
func (h *Helper) ApplyRating(userID string, value float64) {
	for i := range h.RatedUserIDs {
		if h.RatedUserIDs[i].UserID == userID {
			h.RatedUserIDs[i].RatedValue = value
			h.Rating = AggregateRating(h.RatedUserIDs)
			return
		}
	}
	h.RatedUserIDs = append(h.RatedUserIDs, RatingEntry{UserID: userID, RatedValue: value})
	h.Rating = AggregateRating(h.RatedUserIDs)
}

// AggregateRating returns floor(mean) over entries with a positive rated
// value, or 0 when no entry qualifies.
func AggregateRating(entries []RatingEntry) int {
	var sum float64
	var count int
	for _, e := range entries {
		if e.RatedValue > 0 {
			sum += e.RatedValue
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Floor(sum / float64(count)))
}
