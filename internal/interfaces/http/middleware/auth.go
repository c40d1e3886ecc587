package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
	"github.com/sannyeinphyo/internlink-sub001/internal/interfaces/http/response"
	"github.com/sannyeinphyo/internlink-sub001/pkg/jwt"
	"github.com/sannyeinphyo/internlink-sub001/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// DefaultSessionCookie is the cookie carrying the session token
	DefaultSessionCookie = "session_token"
	// AccountIDKey is the context key for the account ID
	AccountIDKey = "accountId"
	// RoleKey is the context key for the account role
	RoleKey = "role"
)

// TokenValidator decodes session tokens
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// sessionToken reads the token from the Authorization header, falling back
// to the session cookie.
func sessionToken(c *gin.Context, cookieName string) string {
	if h := c.GetHeader(AuthorizationHeader); strings.HasPrefix(h, BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, BearerPrefix))
	}
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}
	if v, err := c.Cookie(cookieName); err == nil {
		return v
	}
	return ""
}

// AuthMiddleware rejects requests without a valid session with 401
func AuthMiddleware(tokens TokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := sessionToken(c, cookieName)
		if raw == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			logger.Debug(c.Request.Context(), "Rejected session token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortUnauthorized(c, "session has expired")
				return
			}
			abortUnauthorized(c, "invalid session")
			return
		}

		role, ok := entities.ParseRole(claims.Role)
		if !ok {
			abortUnauthorized(c, "invalid session")
			return
		}

		c.Set(AccountIDKey, claims.AccountID)
		c.Set(RoleKey, role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, domainerrors.Unauthorized(message))
	c.Abort()
}

// GetAccountID gets the account ID from context
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(AccountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetRole gets the account role from context
func GetRole(c *gin.Context) (entities.Role, bool) {
	v, exists := c.Get(RoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(entities.Role)
	return role, ok
}

// RequireRole allows only the listed roles. It must run after AuthMiddleware.
func RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetRole(c)
		if !exists {
			abortUnauthorized(c, "authentication required")
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"code":    domainerrors.CodeForbidden,
			"message": "insufficient permissions",
		})
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.RoleAdmin)
}
