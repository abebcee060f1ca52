package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	usermodel "library-server/internal/domains/user/model"
	"library-server/internal/shared/apperrors"
	"library-server/internal/shared/response"
	"library-server/pkg/jwt"
)

const currentUserKey = "currentUser"

// UserSource looks up the token's user in the store. Satisfied by the
// user repository.
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*usermodel.User, error)
}

// AuthContext resolves an optional authenticated identity from the
// Authorization header and stores it in the request context.
//
// Policy:
//   - no header, or no bearer prefix: the request proceeds anonymously
//   - bearer token that fails verification: the whole request is
//     rejected with INVALID_CREDENTIAL, never a silent anonymous fallback
//   - valid token whose user no longer exists: proceeds anonymously, so
//     stale tokens degrade gracefully
func AuthContext(jwtManager *jwt.Manager, users UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			c.Next()
			return
		}

		claims, err := jwtManager.Validate(authHeader[len("bearer "):])
		if err != nil {
			response.ErrorResponse(c, apperrors.ToHTTPStatus(apperrors.ErrInvalidCredential),
				apperrors.ToErrorCode(apperrors.ErrInvalidCredential), apperrors.ErrInvalidCredential.Error())
			c.Abort()
			return
		}

		userID, err := claims.ParseUserID()
		if err != nil {
			response.ErrorResponse(c, apperrors.ToHTTPStatus(apperrors.ErrInvalidCredential),
				apperrors.ToErrorCode(apperrors.ErrInvalidCredential), apperrors.ErrInvalidCredential.Error())
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, usermodel.ErrUserNotFound) {
				// Token is valid but the user is gone. Treat as anonymous.
				c.Next()
				return
			}
			log.Error().Err(err).Msg("auth context user lookup failed")
			response.InternalServerError(c, "failed to resolve auth context")
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the resolved user for this request, or nil when
// the request is anonymous.
func CurrentUser(c *gin.Context) *usermodel.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*usermodel.User)
	if !ok {
		return nil
	}
	return user
}
