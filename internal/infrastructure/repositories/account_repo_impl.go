package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
	"github.com/sannyeinphyo/internlink-sub001/internal/infrastructure/models"
)

// AccountRepository implements account data operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account. A duplicate email maps to ErrAlreadyExists.
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	m := toAccountModel(account)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	account.CreatedAt = m.CreatedAt
	account.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	var m models.Account
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toAccountEntity(&m), nil
}

// GetByEmail gets an account by normalized email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	var m models.Account
	if err := GetDB(ctx, r.db).Where("email = ?", entities.NormalizeEmail(email)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toAccountEntity(&m), nil
}

// Update writes the mutable account columns. OTP and its expiry are always
// written together.
func (r *AccountRepository) Update(ctx context.Context, account *entities.Account) error {
	updates := map[string]interface{}{
		"name":           account.Name,
		"role":           string(account.Role),
		"status":         string(account.Status),
		"verified":       account.Verified,
		"otp":            account.OTP,
		"otp_expires_at": account.OTPExpiresAt,
		"updated_at":     time.Now(),
	}

	result := GetDB(ctx, r.db).Model(&models.Account{}).Where("id = ?", account.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetOTP stores a fresh verification code and its expiry
func (r *AccountRepository) SetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	return updateAccountColumns(GetDB(ctx, r.db).Where("id = ?", id), map[string]interface{}{
		"otp":            null.StringFrom(code),
		"otp_expires_at": null.TimeFrom(expiresAt),
	})
}

// MarkVerified sets the verified flag and consumes the stored code. Status is
// left alone so a concurrent review decision survives.
func (r *AccountRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return updateAccountColumns(GetDB(ctx, r.db).Where("id = ?", id), map[string]interface{}{
		"verified":       true,
		"otp":            null.String{},
		"otp_expires_at": null.Time{},
	})
}

// SetReviewStatus records a review decision on a pending account. An account
// that is missing or no longer pending yields ErrNotFound.
func (r *AccountRepository) SetReviewStatus(ctx context.Context, id uuid.UUID, status entities.AccountStatus, verified bool) error {
	q := GetDB(ctx, r.db).Where("id = ? AND status = ?", id, string(entities.AccountStatusPending))
	return updateAccountColumns(q, map[string]interface{}{
		"status":   string(status),
		"verified": verified,
	})
}

func updateAccountColumns(q *gorm.DB, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := q.Model(&models.Account{}).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *AccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := GetDB(ctx, r.db).Model(&models.Account{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete hard-deletes an account
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Account{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns a page of accounts matching filter and the total match count
func (r *AccountRepository) List(ctx context.Context, filter entities.AccountFilter, limit, offset int) ([]*entities.Account, int64, error) {
	query := r.applyFilter(GetDB(ctx, r.db).Model(&models.Account{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Account
	q := query.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	accounts := make([]*entities.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, toAccountEntity(&rows[i]))
	}
	return accounts, total, nil
}

// Stats counts accounts by role and status
func (r *AccountRepository) Stats(ctx context.Context) (*entities.AccountStats, error) {
	type bucket struct {
		Role     string
		Status   string
		Verified bool
		Count    int64
	}

	var buckets []bucket
	err := GetDB(ctx, r.db).Model(&models.Account{}).
		Select("role, status, verified, COUNT(*) AS count").
		Group("role, status, verified").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}

	stats := &entities.AccountStats{
		ByRole:   make(map[entities.Role]int64, len(entities.Roles)),
		ByStatus: make(map[entities.AccountStatus]int64, len(entities.AccountStatuses)),
	}
	for _, role := range entities.Roles {
		stats.ByRole[role] = 0
	}
	for _, status := range entities.AccountStatuses {
		stats.ByStatus[status] = 0
	}

	for _, b := range buckets {
		stats.Total += b.Count
		stats.ByRole[entities.Role(b.Role)] += b.Count
		stats.ByStatus[entities.AccountStatus(b.Status)] += b.Count
		if entities.AccountStatus(b.Status) != entities.AccountStatusPending {
			continue
		}
		if b.Verified {
			stats.AwaitingReview += b.Count
		} else {
			stats.AwaitingVerification += b.Count
		}
	}
	return stats, nil
}

// ClearExpiredOTPs nulls the code and expiry of every account whose code expired before now
func (r *AccountRepository) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	result := GetDB(ctx, r.db).Model(&models.Account{}).
		Where("otp_expires_at IS NOT NULL AND otp_expires_at < ?", now).
		Updates(map[string]interface{}{
			"otp":            null.String{},
			"otp_expires_at": null.Time{},
		})
	return result.RowsAffected, result.Error
}

func (r *AccountRepository) applyFilter(q *gorm.DB, filter entities.AccountFilter) *gorm.DB {
	if filter.Role != "" {
		q = q.Where("role = ?", string(filter.Role))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Verified != nil {
		q = q.Where("verified = ?", *filter.Verified)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}
	return q
}

func toAccountModel(a *entities.Account) *models.Account {
	return &models.Account{
		ID:           a.ID,
		Email:        entities.NormalizeEmail(a.Email),
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		Status:       string(a.Status),
		Verified:     a.Verified,
		OTP:          a.OTP,
		OTPExpiresAt: a.OTPExpiresAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toAccountEntity(m *models.Account) *entities.Account {
	return &entities.Account{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         entities.Role(m.Role),
		Status:       entities.AccountStatus(m.Status),
		Verified:     m.Verified,
		OTP:          m.OTP,
		OTPExpiresAt: m.OTPExpiresAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
