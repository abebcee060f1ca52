package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"library-server/internal/domains/user/model"
	"library-server/internal/domains/user/repository"
	"library-server/internal/shared/apperrors"
	"library-server/pkg/jwt"
)

type userService struct {
	repo            repository.RepositoryInterface
	jwtManager      *jwt.Manager
	defaultPassword string
}

// NewUserService creates the user service. defaultPassword is hashed
// for users created without an explicit password, preserving the
// original password-based login contract.
func NewUserService(repo repository.RepositoryInterface, jwtManager *jwt.Manager, defaultPassword string) ServiceInterface {
	return &userService{
		repo:            repo,
		jwtManager:      jwtManager,
		defaultPassword: defaultPassword,
	}
}

func (s *userService) Create(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error) {
	args := map[string]interface{}{
		"username":       req.Username,
		"favorite_genre": req.FavoriteGenre,
	}

	if err := req.Validate(); err != nil {
		return nil, apperrors.Input(err, args)
	}

	password := req.Password
	if password == "" {
		password = s.defaultPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.User{
		Username:      req.Username,
		FavoriteGenre: req.FavoriteGenre,
		PasswordHash:  string(hash),
	})
	if err != nil {
		return nil, apperrors.Input(err, args)
	}

	return created.ToResponse(), nil
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Same error as a wrong password: no username enumeration.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{Value: token}, nil
}

func (s *userService) GetAll(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *users[i].ToResponse())
	}
	return result, nil
}
