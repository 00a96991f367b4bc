package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Image    string             `bson:"image,omitempty" json:"userImage"`
	Name     string             `bson:"name" json:"userName" validate:"required"`
	Email    string             `bson:"email" json:"userEmail" validate:"required,email"`
	Password string             `bson:"password" json:"-" validate:"required,min=6"`
	Cart     []string           `bson:"cart" json:"addToCart"`
	Likes    []string           `bson:"likes" json:"likes"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}
