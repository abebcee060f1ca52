package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-server/internal/domains/user/model"
	"library-server/internal/shared/apperrors"
	"library-server/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	if _, ok := f.users[u.Username]; ok {
		return nil, model.ErrDuplicateUsername
	}
	created := *u
	created.ID = uuid.New()
	f.users[created.Username] = &created
	return &created, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) GetAll(context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		result = append(result, *u)
	}
	return result, nil
}

const testDefaultPassword = "secret"

func newTestService() (*fakeUserRepo, *jwt.Manager, ServiceInterface) {
	repo := newFakeUserRepo()
	manager := jwt.NewManager("test-signing-key")
	return repo, manager, NewUserService(repo, manager, testDefaultPassword)
}

func TestCreateAndLoginWithDefaultPassword(t *testing.T) {
	_, manager, svc := newTestService()

	created, err := svc.Create(context.Background(), model.CreateUserRequest{
		Username:      "alice",
		FavoriteGenre: "scifi",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "scifi", created.FavoriteGenre)

	token, err := svc.Login(context.Background(), model.LoginRequest{
		Username: "alice",
		Password: testDefaultPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token.Value)

	claims, err := manager.Validate(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	id, err := claims.ParseUserID()
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)
}

func TestCreateWithExplicitPassword(t *testing.T) {
	_, _, svc := newTestService()

	_, err := svc.Create(context.Background(), model.CreateUserRequest{
		Username:      "bob",
		FavoriteGenre: "fantasy",
		Password:      "hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{Username: "bob", Password: testDefaultPassword})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	token, err := svc.Login(context.Background(), model.LoginRequest{Username: "bob", Password: "hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Value)
}

func TestLoginWrongPassword(t *testing.T) {
	_, _, svc := newTestService()

	_, err := svc.Create(context.Background(), model.CreateUserRequest{
		Username:      "alice",
		FavoriteGenre: "scifi",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownUserMatchesWrongPassword(t *testing.T) {
	_, _, svc := newTestService()

	_, err := svc.Create(context.Background(), model.CreateUserRequest{
		Username:      "alice",
		FavoriteGenre: "scifi",
	})
	require.NoError(t, err)

	_, unknownErr := svc.Login(context.Background(), model.LoginRequest{Username: "nobody", Password: "x"})
	_, wrongErr := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "x"})

	// Unknown usernames must be indistinguishable from wrong passwords.
	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestCreateDuplicateUsername(t *testing.T) {
	_, _, svc := newTestService()

	req := model.CreateUserRequest{Username: "alice", FavoriteGenre: "scifi"}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateInvalidRequest(t *testing.T) {
	_, _, svc := newTestService()

	_, err := svc.Create(context.Background(), model.CreateUserRequest{Username: "alice"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
