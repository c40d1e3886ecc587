package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/access"
	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	"github.com/sannyeinphyo/internlink-sub001/pkg/logger"
)

// PageGate applies the role-prefix route policy to page requests. A missing
// or unusable session is treated as anonymous and never fails the request.
func PageGate(tokens TokenValidator, policy access.Policy, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if policy.Skip(path) {
			c.Next()
			return
		}

		id := identityFromRequest(c, tokens, cookieName)
		decision := access.Decide(path, id, policy)
		if decision.Forward() {
			if id != nil {
				c.Set(AccountIDKey, id.AccountID)
				c.Set(RoleKey, id.Role)
			}
			c.Next()
			return
		}

		fields := []zap.Field{
			zap.String("path", path),
			zap.String("location", decision.Location),
		}
		if id != nil {
			fields = append(fields, zap.String("role", string(id.Role)))
		}
		logger.Debug(c.Request.Context(), "Page gate redirect", fields...)

		c.Redirect(http.StatusFound, decision.Location)
		c.Abort()
	}
}

func identityFromRequest(c *gin.Context, tokens TokenValidator, cookieName string) *access.Identity {
	raw := sessionToken(c, cookieName)
	if raw == "" {
		return nil
	}
	claims, err := tokens.ValidateToken(raw)
	if err != nil {
		return nil
	}
	role, ok := entities.ParseRole(claims.Role)
	if !ok {
		return nil
	}
	return &access.Identity{AccountID: claims.AccountID, Role: role}
}
