package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	FavoriteGenre string    `json:"favorite_genre" db:"favorite_genre"`
	PasswordHash  string    `json:"-" db:"password_hash"` // Never expose in JSON
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest - POST /v1/users
// Password is optional: when omitted the configured default secret is
// hashed, which keeps the original login contract working.
type CreateUserRequest struct {
	Username      string `json:"username"`
	FavoriteGenre string `json:"favorite_genre"`
	Password      string `json:"password,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.FavoriteGenre, validation.Required, validation.Length(1, 255)),
	)
}

// LoginRequest - POST /v1/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse mirrors the Token type of the public contract.
type TokenResponse struct {
	Value string `json:"value"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	FavoriteGenre string    `json:"favorite_genre"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		FavoriteGenre: u.FavoriteGenre,
	}
}
