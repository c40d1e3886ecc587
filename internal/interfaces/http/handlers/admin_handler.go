package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
	"github.com/sannyeinphyo/internlink-sub001/internal/interfaces/http/response"
	"github.com/sannyeinphyo/internlink-sub001/internal/usecases"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type approvalService interface {
	Review(ctx context.Context, accountID uuid.UUID, status entities.AccountStatus) (*entities.Account, error)
	ListAccounts(ctx context.Context, filter entities.AccountFilter, page, limit int) (*usecases.AccountList, error)
	Stats(ctx context.Context) (*entities.AccountStats, error)
	ExportAccounts(ctx context.Context, filter entities.AccountFilter) (string, []byte, error)
}

// AdminHandler serves the admin review endpoints
type AdminHandler struct {
	approvals approvalService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(approvals approvalService) *AdminHandler {
	return &AdminHandler{approvals: approvals}
}

type accountQuery struct {
	Role     string `form:"role"`
	Status   string `form:"status"`
	Verified *bool  `form:"verified"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

func (q accountQuery) filter() entities.AccountFilter {
	return entities.AccountFilter{
		Role:     entities.Role(q.Role),
		Status:   entities.AccountStatus(q.Status),
		Verified: q.Verified,
		Search:   q.Search,
	}
}

// ListAccounts lists accounts for review
// GET /api/v1/admin/accounts?role=&status=&verified=&search=&page=&limit=
func (h *AdminHandler) ListAccounts(c *gin.Context) {
	var q accountQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.approvals.ListAccounts(c.Request.Context(), q.filter(), q.Page, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, list)
}

// UpdateStatus approves or declines a pending account
// PUT /api/v1/admin/accounts/:id/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid account id"))
		return
	}

	var input entities.ReviewInput
	if !bindJSON(c, &input) {
		return
	}

	account, err := h.approvals.Review(c.Request.Context(), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"account": account})
}

// Stats returns account counts for the dashboard
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.approvals.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ExportAccounts downloads matching accounts as an xlsx workbook
// GET /api/v1/admin/accounts/export?role=&status=
func (h *AdminHandler) ExportAccounts(c *gin.Context) {
	var q accountQuery
	if !bindQuery(c, &q) {
		return
	}

	filename, data, err := h.approvals.ExportAccounts(c.Request.Context(), q.filter())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
