package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
	"github.com/sannyeinphyo/internlink-sub001/internal/domain/repositories"
	"github.com/sannyeinphyo/internlink-sub001/pkg/crypto"
	"github.com/sannyeinphyo/internlink-sub001/pkg/jwt"
	"github.com/sannyeinphyo/internlink-sub001/pkg/logger"
)

// AuthUsecase issues session tokens and resolves the current account
type AuthUsecase struct {
	accountRepo repositories.AccountRepository
	profileRepo repositories.ProfileRepository
	jwtService  *jwt.JWTService
	now         func() time.Time
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	accountRepo repositories.AccountRepository,
	profileRepo repositories.ProfileRepository,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		jwtService:  jwtService,
		now:         time.Now,
	}
}

// Authorize checks credentials and issues a session token. Unknown email and
// wrong password are indistinguishable. Verification and approval are only
// reported once the password matched.
func (u *AuthUsecase) Authorize(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	account, err := u.accountRepo.GetByEmail(ctx, entities.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, account.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	// decline clears the verified flag, so it is checked first
	if account.Status == entities.AccountStatusDeclined {
		return nil, domainerrors.ErrAccountNotApproved
	}
	if !account.Verified {
		return nil, domainerrors.ErrEmailNotVerified
	}
	if account.Status != entities.AccountStatusApproved {
		return nil, domainerrors.ErrAccountNotApproved
	}

	token, err := u.jwtService.GenerateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Account signed in",
		zap.String("account_id", account.ID.String()),
		zap.String("role", string(account.Role)),
	)
	return &entities.AuthResponse{
		Token:     token,
		ExpiresAt: u.now().Add(u.jwtService.Expiry()),
		Account:   account,
	}, nil
}

// GetMe returns the account and, for non-admins, its role profile
func (u *AuthUsecase) GetMe(ctx context.Context, accountID uuid.UUID) (*entities.MeResponse, error) {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Role == entities.RoleAdmin {
		return &entities.MeResponse{Account: account}, nil
	}

	profile, err := u.profileRepo.GetByAccount(ctx, account.ID, account.Role)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	return &entities.MeResponse{Account: account, Profile: profile}, nil
}
