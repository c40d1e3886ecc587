package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
)

// AccountRepository defines account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	GetByEmail(ctx context.Context, email string) (*entities.Account, error)
	Update(ctx context.Context, account *entities.Account) error
	SetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	SetReviewStatus(ctx context.Context, id uuid.UUID, status entities.AccountStatus, verified bool) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter entities.AccountFilter, limit, offset int) ([]*entities.Account, int64, error)
	Stats(ctx context.Context) (*entities.AccountStats, error)
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

// ProfileRepository stores the role-specific profile of an account
type ProfileRepository interface {
	Create(ctx context.Context, profile entities.RoleProfile) error
	GetByAccount(ctx context.Context, accountID uuid.UUID, role entities.Role) (entities.RoleProfile, error)
	DeleteByAccount(ctx context.Context, accountID uuid.UUID, role entities.Role) error
}

// PasswordResetRepository stores the outstanding reset code per account
type PasswordResetRepository interface {
	Upsert(ctx context.Context, req *entities.PasswordResetRequest) error
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*entities.PasswordResetRequest, error)
	Delete(ctx context.Context, accountID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
