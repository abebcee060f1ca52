package service

import (
	"context"

	"library-server/internal/domains/user/model"
)

type ServiceInterface interface {
	// Create registers a user. No authentication required.
	Create(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error)

	// Login checks the password and issues a signed token. Unknown user
	// and wrong password both fail with the same generic error.
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)

	GetAll(ctx context.Context) ([]model.UserResponse, error)
}
