package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/access"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
	"github.com/sannyeinphyo/internlink-sub001/internal/interfaces/http/middleware"
	"github.com/sannyeinphyo/internlink-sub001/internal/interfaces/http/response"
)

// PageDescriptor tells the web client which page to render
type PageDescriptor struct {
	Locale        string `json:"locale"`
	Page          string `json:"page"`
	Path          string `json:"path"`
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
}

// PagesHandler answers page routes that passed the page gate
type PagesHandler struct {
	policy access.Policy
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(policy access.Policy) *PagesHandler {
	return &PagesHandler{policy: policy}
}

// Page describes the requested page. Paths outside the page namespace are
// a plain 404.
func (h *PagesHandler) Page(c *gin.Context) {
	path := c.Request.URL.Path
	if c.Request.Method != http.MethodGet || h.policy.Skip(path) {
		response.Error(c, domainerrors.NotFound("route not found"))
		return
	}

	locale, rel := h.policy.SplitLocale(path)
	page := strings.Trim(rel, "/")
	if page == "" {
		page = "home"
	}

	desc := PageDescriptor{
		Locale: locale,
		Page:   page,
		Path:   path,
	}
	if role, ok := middleware.GetRole(c); ok {
		desc.Authenticated = true
		desc.Role = string(role)
	}
	response.Success(c, http.StatusOK, desc)
}
