package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usermodel "library-server/internal/domains/user/model"
	"library-server/pkg/jwt"
)

type fakeUserSource struct {
	users map[uuid.UUID]*usermodel.User
}

func (f *fakeUserSource) GetByID(_ context.Context, id uuid.UUID) (*usermodel.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, usermodel.ErrUserNotFound
}

func setupAuthRouter(t *testing.T, users *fakeUserSource) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := jwt.NewManager("test-secret")

	router := gin.New()
	router.Use(AuthContext(manager, users))
	router.GET("/whoami", func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.Username})
	})

	return router, manager
}

func TestAuthContextAnonymousWithoutHeader(t *testing.T) {
	router, _ := setupAuthRouter(t, &fakeUserSource{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())
}

func TestAuthContextAnonymousWithNonBearerHeader(t *testing.T) {
	router, _ := setupAuthRouter(t, &fakeUserSource{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())
}

func TestAuthContextRejectsInvalidToken(t *testing.T) {
	router, _ := setupAuthRouter(t, &fakeUserSource{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-valid-token")
	router.ServeHTTP(w, req)

	// A present-but-invalid credential fails the whole request. No
	// silent anonymous fallback.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIAL")
}

func TestAuthContextResolvesUser(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserSource{users: map[uuid.UUID]*usermodel.User{
		userID: {ID: userID, Username: "alice", FavoriteGenre: "fantasy"},
	}}
	router, manager := setupAuthRouter(t, users)

	token, err := manager.Generate(userID, "alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"alice"}`, w.Body.String())
}

func TestAuthContextBearerPrefixIsCaseInsensitive(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserSource{users: map[uuid.UUID]*usermodel.User{
		userID: {ID: userID, Username: "alice"},
	}}
	router, manager := setupAuthRouter(t, users)

	token, err := manager.Generate(userID, "alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "BEARER "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"alice"}`, w.Body.String())
}

func TestAuthContextStaleTokenDegradesToAnonymous(t *testing.T) {
	// Valid signature, but the user no longer exists in the store.
	router, manager := setupAuthRouter(t, &fakeUserSource{})

	token, err := manager.Generate(uuid.New(), "ghost")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())
}
