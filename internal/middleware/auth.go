package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/renewals/backend/internal/types"
)

// Keys shared by the session cookie and the gin context
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// RequireAuth accepts a login session or, failing that, a bearer token.
// validator may be nil to accept sessions only.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, username, ok := fromSession(c); ok {
			c.Set(UserIDKey, userID)
			c.Set(UsernameKey, username)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || validator == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

// fromSession reads the identity stored by login. The ID is kept as a string
// so the cookie codec needs no type registration.
func fromSession(c *gin.Context) (uuid.UUID, string, bool) {
	session := sessions.Default(c)

	rawID, ok := session.Get(UserIDKey).(string)
	if !ok {
		return uuid.Nil, "", false
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", false
	}
	username, ok := session.Get(UsernameKey).(string)
	if !ok || username == "" {
		return uuid.Nil, "", false
	}
	return userID, username, true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}

// CurrentUserID returns the authenticated user's ID set by RequireAuth
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CurrentUsername returns the authenticated username set by RequireAuth
func CurrentUsername(c *gin.Context) string {
	return c.GetString(UsernameKey)
}
