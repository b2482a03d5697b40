package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is an account. Posts, comments, subscriptions, likes and notifications point
// at it by id; none of them is stored on the struct.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email       string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password    string    `json:"-"`                                         // bcrypt hash
	FirebaseUID *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // set for accounts created through Firebase login
	Role        string    `json:"role" gorm:"size:20;not null;default:'USER'"`
	Banned      bool      `json:"banned" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCompact is the author/actor shape embedded in feed and notification payloads.
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username}
}

type CreateLocalUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken  string `json:"id_token" validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
}

type UpdateUsernameRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
