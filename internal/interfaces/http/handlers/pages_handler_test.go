package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/access"
	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	"github.com/sannyeinphyo/internlink-sub001/internal/interfaces/http/middleware"
)

func TestPagesHandler_Page(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPagesHandler(access.DefaultPolicy([]string{"en", "my"}, "en"))

	anon := gin.New()
	anon.NoRoute(h.Page)

	w := do(anon, http.MethodGet, "/my/about", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "my", body["locale"])
	assert.Equal(t, "about", body["page"])
	assert.Equal(t, false, body["authenticated"])

	w = do(anon, http.MethodGet, "/en", "")
	assert.Equal(t, "home", decodeBody(t, w)["page"])

	w = do(anon, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, w)["code"])

	w = do(anon, http.MethodPost, "/en/about", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	signedIn := gin.New()
	signedIn.Use(func(c *gin.Context) {
		c.Set(middleware.RoleKey, entities.RoleCompany)
		c.Next()
	})
	signedIn.NoRoute(h.Page)

	w = do(signedIn, http.MethodGet, "/en/company/dashboard", "")
	body = decodeBody(t, w)
	assert.Equal(t, "company/dashboard", body["page"])
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "company", body["role"])
}
