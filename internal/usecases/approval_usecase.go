package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
	"github.com/sannyeinphyo/internlink-sub001/internal/domain/repositories"
	"github.com/sannyeinphyo/internlink-sub001/pkg/logger"
	"github.com/sannyeinphyo/internlink-sub001/pkg/utils"
)

const exportSheetName = "Accounts"

// AccountList is one page of an admin account listing
type AccountList struct {
	Items []*entities.Account  `json:"items"`
	Meta  utils.PaginationMeta `json:"meta"`
}

// ApprovalUsecase drives the pending -> approved/declined lifecycle
type ApprovalUsecase struct {
	accountRepo repositories.AccountRepository
	notifier    Notifier
	now         func() time.Time
}

// NewApprovalUsecase creates a new approval usecase
func NewApprovalUsecase(accountRepo repositories.AccountRepository, notifier Notifier) *ApprovalUsecase {
	return &ApprovalUsecase{
		accountRepo: accountRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Review applies an admin decision to a pending account. Approval also marks
// the account verified; decline clears it.
func (u *ApprovalUsecase) Review(ctx context.Context, accountID uuid.UUID, status entities.AccountStatus) (*entities.Account, error) {
	if !status.IsReviewOutcome() {
		return nil, domainerrors.Validation(map[string]string{"status": "must be approved or declined"})
	}

	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.Role.RequiresReview() {
		return nil, domainerrors.Conflict("admin accounts are not reviewed")
	}
	if account.Status != entities.AccountStatusPending {
		return nil, domainerrors.Conflict(fmt.Sprintf("account is already %s", account.Status))
	}

	verified := status == entities.AccountStatusApproved
	if err := u.accountRepo.SetReviewStatus(ctx, account.ID, status, verified); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// another reviewer decided first
			return nil, domainerrors.Conflict("account is no longer pending")
		}
		return nil, err
	}
	account.Status = status
	account.Verified = verified
	account.UpdatedAt = u.now()

	u.notifyReview(account)
	logger.Info(ctx, "Account reviewed",
		zap.String("account_id", account.ID.String()),
		zap.String("role", string(account.Role)),
		zap.String("status", string(status)),
	)
	return account, nil
}

func (u *ApprovalUsecase) notifyReview(account *entities.Account) {
	switch account.Role {
	case entities.RoleStudent, entities.RoleCompany, entities.RoleTeacher, entities.RoleUniversity:
		if account.Status == entities.AccountStatusApproved {
			u.notifier.SendApproval(account.Email, account.Name)
		} else {
			u.notifier.SendRejection(account.Email, account.Name)
		}
	case entities.RoleAdmin:
	}
}

// ListAccounts returns a page of accounts matching filter
func (u *ApprovalUsecase) ListAccounts(ctx context.Context, filter entities.AccountFilter, page, limit int) (*AccountList, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	params := utils.GetPaginationParams(page, limit)
	items, total, err := u.accountRepo.List(ctx, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, err
	}
	return &AccountList{
		Items: items,
		Meta:  utils.CalculateMeta(total, params.Page, params.Limit),
	}, nil
}

// Stats returns account counts for the admin dashboard
func (u *ApprovalUsecase) Stats(ctx context.Context) (*entities.AccountStats, error) {
	return u.accountRepo.Stats(ctx)
}

// ExportAccounts renders every account matching filter into an xlsx
// workbook and returns its file name and contents.
func (u *ApprovalUsecase) ExportAccounts(ctx context.Context, filter entities.AccountFilter) (string, []byte, error) {
	if err := validateFilter(filter); err != nil {
		return "", nil, err
	}

	accounts, _, err := u.accountRepo.List(ctx, filter, 0, 0)
	if err != nil {
		return "", nil, err
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), exportSheetName); err != nil {
		return "", nil, domainerrors.InternalError(err)
	}

	header := []string{"id", "email", "name", "role", "status", "verified", "created_at", "updated_at"}
	if err := xl.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return "", nil, domainerrors.InternalError(err)
	}
	for i, a := range accounts {
		record := []string{
			a.ID.String(),
			a.Email,
			a.Name,
			string(a.Role),
			string(a.Status),
			strconv.FormatBool(a.Verified),
			a.CreatedAt.UTC().Format(time.RFC3339),
			a.UpdatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", nil, domainerrors.InternalError(err)
		}
		if err := xl.SetSheetRow(exportSheetName, cell, &record); err != nil {
			return "", nil, domainerrors.InternalError(err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, domainerrors.InternalError(err)
	}

	filename := fmt.Sprintf("accounts_%s.xlsx", u.now().UTC().Format("20060102_150405"))
	return filename, buf.Bytes(), nil
}

func validateFilter(filter entities.AccountFilter) error {
	fields := map[string]string{}
	if filter.Role != "" && !filter.Role.Valid() {
		fields["role"] = "unknown role"
	}
	if filter.Status != "" && !filter.Status.Valid() {
		fields["status"] = "unknown status"
	}
	if len(fields) > 0 {
		return domainerrors.Validation(fields)
	}
	return nil
}
