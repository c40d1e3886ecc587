package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	"github.com/sannyeinphyo/internlink-sub001/pkg/jwt"
)

type tokenValidatorStub struct {
	claims *jwt.Claims
	err    error
}

func (s tokenValidatorStub) ValidateToken(string) (*jwt.Claims, error) {
	return s.claims, s.err
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	code, _ := body["code"].(string)
	return code
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("secret", time.Hour)
	accountID := uuid.New()
	token, err := jwtService.GenerateToken(accountID, "student")
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(jwtService, ""))
	r.GET("/me", func(c *gin.Context) {
		id, ok := GetAccountID(c)
		require.True(t, ok)
		role, ok := GetRole(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": string(role)})
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
	})

	t.Run("invalid bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer invalid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), accountID.String())
		assert.Contains(t, w.Body.String(), `"role":"student"`)
	})

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: DefaultSessionCookie, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthMiddleware_ExpiredAndUnknownRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		validator tokenValidatorStub
		message   string
	}{
		{"expired", tokenValidatorStub{err: jwt.ErrExpiredToken}, "session has expired"},
		{"other error", tokenValidatorStub{err: errors.New("boom")}, "invalid session"},
		{"unknown role", tokenValidatorStub{claims: &jwt.Claims{AccountID: uuid.New(), Role: "root"}}, "invalid session"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(AuthMiddleware(tt.validator, "sid"))
			r.GET("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.AddCookie(&http.Cookie{Name: "sid", Value: "x"})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role entities.Role) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if role != "" {
				c.Set(RoleKey, role)
			}
			c.Next()
		})
		r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
		return r
	}

	tests := []struct {
		role entities.Role
		want int
	}{
		{entities.RoleAdmin, http.StatusNoContent},
		{entities.RoleCompany, http.StatusForbidden},
		{"", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		newRouter(tt.role).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, tt.want, w.Code, "role %q", tt.role)
	}
}

func TestGetAccountID_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetAccountID(c)
	assert.False(t, ok)
	c.Set(AccountIDKey, "not-a-uuid")
	_, ok = GetAccountID(c)
	assert.False(t, ok)
}
