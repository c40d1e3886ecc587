package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
	"github.com/sannyeinphyo/internlink-sub001/internal/infrastructure/models"
)

// PasswordResetRepository keeps at most one reset request per account
type PasswordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Upsert inserts the request or overwrites the code and expiry of the existing one
func (r *PasswordResetRepository) Upsert(ctx context.Context, req *entities.PasswordResetRequest) error {
	now := time.Now()
	m := &models.PasswordResetRequest{
		AccountID: req.AccountID,
		OTP:       req.OTP,
		OTPExpiry: req.OTPExpiry,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return GetDB(ctx, r.db).Omit("Account").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"otp", "otp_expiry", "updated_at"}),
	}).Create(m).Error
}

// GetByAccountID returns the outstanding request for an account
func (r *PasswordResetRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*entities.PasswordResetRequest, error) {
	var m models.PasswordResetRequest
	if err := GetDB(ctx, r.db).Where("account_id = ?", accountID).First(&m).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &entities.PasswordResetRequest{
		AccountID: m.AccountID,
		OTP:       m.OTP,
		OTPExpiry: m.OTPExpiry,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// Delete removes the request for an account
func (r *PasswordResetRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	result := GetDB(ctx, r.db).Where("account_id = ?", accountID).Delete(&models.PasswordResetRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteExpired removes every request whose code expired before now
func (r *PasswordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := GetDB(ctx, r.db).Where("otp_expiry < ?", now).Delete(&models.PasswordResetRequest{})
	return result.RowsAffected, result.Error
}
