package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
	"github.com/sannyeinphyo/internlink-sub001/internal/domain/repositories"
	"github.com/sannyeinphyo/internlink-sub001/pkg/crypto"
	"github.com/sannyeinphyo/internlink-sub001/pkg/logger"
	"github.com/sannyeinphyo/internlink-sub001/pkg/utils"
)

var (
	generateOTP  = crypto.GenerateNumericOTP
	hashPassword = crypto.HashPassword
)

// VerificationUsecase owns sign-up, email verification and password changes
type VerificationUsecase struct {
	accountRepo repositories.AccountRepository
	profileRepo repositories.ProfileRepository
	resetRepo   repositories.PasswordResetRepository
	uow         repositories.UnitOfWork
	notifier    Notifier
	throttle    OTPThrottle
	now         func() time.Time
}

// NewVerificationUsecase creates a new verification usecase. throttle may be nil.
func NewVerificationUsecase(
	accountRepo repositories.AccountRepository,
	profileRepo repositories.ProfileRepository,
	resetRepo repositories.PasswordResetRepository,
	uow repositories.UnitOfWork,
	notifier Notifier,
	throttle OTPThrottle,
) *VerificationUsecase {
	return &VerificationUsecase{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		resetRepo:   resetRepo,
		uow:         uow,
		notifier:    notifier,
		throttle:    throttle,
		now:         time.Now,
	}
}

// WithClock replaces the time source
func (u *VerificationUsecase) WithClock(now func() time.Time) *VerificationUsecase {
	u.now = now
	return u
}

// Register creates a pending, unverified account with its role profile and
// emails a verification code. An unverified account holding the same email
// is discarded and replaced.
func (u *VerificationUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.Account, error) {
	email := entities.NormalizeEmail(input.Email)
	role, ok := entities.ParseRole(string(input.Role))
	if !ok {
		return nil, domainerrors.Validation(map[string]string{"role": "must be one of student, company, teacher, university"})
	}

	if err := checkPasswordLength("password", input.Password); err != nil {
		return nil, err
	}
	newProfile, err := buildProfile(role, input)
	if err != nil {
		return nil, err
	}

	var stale *entities.Account
	existing, err := u.accountRepo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.Verified:
		return nil, domainerrors.Conflict("an account with this email already exists")
	case err == nil:
		stale = existing
	case !errors.Is(err, domainerrors.ErrNotFound):
		return nil, err
	}

	if err := u.checkThrottle(ctx, otpPurposeVerify, email); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}

	now := u.now()
	account := &entities.Account{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: passwordHash,
		Role:         role,
		Status:       entities.AccountStatusPending,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	account.SetOTP(otp, now.Add(OTPValidity))

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if stale != nil {
			if err := u.discard(txCtx, stale); err != nil {
				return err
			}
		}
		if err := u.accountRepo.Create(txCtx, account); err != nil {
			return err
		}
		return u.profileRepo.Create(txCtx, newProfile(account.ID))
	})
	if err != nil {
		u.releaseThrottle(ctx, otpPurposeVerify, email)
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("an account with this email already exists")
		}
		return nil, err
	}

	u.notifier.SendOTP(account.Email, otp)
	logger.Info(ctx, "Account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("role", string(account.Role)),
		zap.Bool("replaced_unverified", stale != nil),
	)
	return account, nil
}

// VerifyOTP marks the account verified when code matches the stored,
// unexpired code. Reviewed roles are told they now await approval.
func (u *VerificationUsecase) VerifyOTP(ctx context.Context, email, code string) (*entities.Account, error) {
	account, err := u.accountRepo.GetByEmail(ctx, entities.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if account.Verified {
		return nil, domainerrors.ErrAlreadyVerified
	}
	if !otpMatches(account.OTP, account.OTPExpiresAt, code, u.now()) {
		return nil, domainerrors.ErrInvalidOrExpiredOTP
	}

	if err := u.accountRepo.MarkVerified(ctx, account.ID); err != nil {
		return nil, err
	}
	account.Verified = true
	account.ClearOTP()

	if account.Role.RequiresReview() && account.Status == entities.AccountStatusPending {
		u.notifier.SendPendingApproval(account.Email, account.Name)
	}
	logger.Info(ctx, "Account email verified", zap.String("account_id", account.ID.String()))
	return account, nil
}

// ResendOTP replaces the stored code with a fresh one and emails it.
func (u *VerificationUsecase) ResendOTP(ctx context.Context, email string) error {
	account, err := u.accountRepo.GetByEmail(ctx, entities.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if account.Verified {
		return domainerrors.ErrAlreadyVerified
	}
	if err := u.checkThrottle(ctx, otpPurposeVerify, account.Email); err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	expiresAt := u.now().Add(OTPValidity)
	if err := u.accountRepo.SetOTP(ctx, account.ID, otp, expiresAt); err != nil {
		u.releaseThrottle(ctx, otpPurposeVerify, account.Email)
		return err
	}
	account.SetOTP(otp, expiresAt)

	u.notifier.SendOTP(account.Email, otp)
	return nil
}

// RequestPasswordReset stores a reset code for the account, replacing any
// earlier one, and emails it.
func (u *VerificationUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := u.accountRepo.GetByEmail(ctx, entities.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if err := u.checkThrottle(ctx, otpPurposeReset, account.Email); err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	err = u.resetRepo.Upsert(ctx, &entities.PasswordResetRequest{
		AccountID: account.ID,
		OTP:       otp,
		OTPExpiry: u.now().Add(OTPValidity),
	})
	if err != nil {
		u.releaseThrottle(ctx, otpPurposeReset, account.Email)
		return err
	}

	u.notifier.SendPasswordReset(account.Email, otp)
	return nil
}

// ResetPassword consumes the reset code and stores the new password.
func (u *VerificationUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	if err := checkPasswordLength("newPassword", input.NewPassword); err != nil {
		return err
	}
	account, err := u.accountRepo.GetByEmail(ctx, entities.NormalizeEmail(input.Email))
	if err != nil {
		return err
	}

	req, err := u.resetRepo.GetByAccountID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrInvalidOrExpiredOTP
		}
		return err
	}
	if !otpMatches(null.StringFrom(req.OTP), null.TimeFrom(req.OTPExpiry), input.OTP, u.now()) {
		return domainerrors.ErrInvalidOrExpiredOTP
	}

	passwordHash, err := hashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.accountRepo.UpdatePassword(txCtx, account.ID, passwordHash); err != nil {
			return err
		}
		return u.resetRepo.Delete(txCtx, account.ID)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// a concurrent reset consumed the request first
			return domainerrors.ErrInvalidOrExpiredOTP
		}
		return err
	}

	logger.Info(ctx, "Password reset", zap.String("account_id", account.ID.String()))
	return nil
}

// ChangePassword replaces the password of an authenticated account after
// checking the current one.
func (u *VerificationUsecase) ChangePassword(ctx context.Context, accountID uuid.UUID, input *entities.ChangePasswordInput) error {
	if err := checkPasswordLength("newPassword", input.NewPassword); err != nil {
		return err
	}
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !crypto.CheckPassword(input.CurrentPassword, account.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	passwordHash, err := hashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return u.accountRepo.UpdatePassword(ctx, account.ID, passwordHash)
}

func (u *VerificationUsecase) discard(ctx context.Context, stale *entities.Account) error {
	if err := u.profileRepo.DeleteByAccount(ctx, stale.ID, stale.Role); err != nil {
		return fmt.Errorf("discard profile: %w", err)
	}
	if err := u.resetRepo.Delete(ctx, stale.ID); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return fmt.Errorf("discard reset request: %w", err)
	}
	if err := u.accountRepo.Delete(ctx, stale.ID); err != nil {
		return fmt.Errorf("discard account: %w", err)
	}
	return nil
}

// checkPasswordLength rejects passwords bcrypt would refuse to hash. The
// limit is in bytes, so multi-byte input can fail here after passing binding.
func checkPasswordLength(field, password string) error {
	if len(password) > crypto.MaxPasswordBytes {
		return domainerrors.Validation(map[string]string{
			field: fmt.Sprintf("must be at most %d bytes", crypto.MaxPasswordBytes),
		})
	}
	return nil
}

// checkThrottle fails open when the store is unavailable.
func (u *VerificationUsecase) checkThrottle(ctx context.Context, purpose, email string) error {
	if u.throttle == nil {
		return nil
	}
	allowed, err := u.throttle.Allow(ctx, purpose, email)
	if err != nil {
		logger.Warn(ctx, "OTP throttle unavailable", zap.String("purpose", purpose), zap.Error(err))
		return nil
	}
	if !allowed {
		return domainerrors.ErrTooManyRequests
	}
	return nil
}

func (u *VerificationUsecase) releaseThrottle(ctx context.Context, purpose, email string) {
	if u.throttle == nil {
		return
	}
	if err := u.throttle.Reset(ctx, purpose, email); err != nil {
		logger.Warn(ctx, "Failed to release OTP throttle", zap.String("purpose", purpose), zap.Error(err))
	}
}

// otpMatches is false when no code is stored, the expiry is missing, now is
// past the expiry, or the codes differ.
func otpMatches(stored null.String, expiresAt null.Time, submitted string, now time.Time) bool {
	if !stored.Valid || !expiresAt.Valid {
		return false
	}
	if now.After(expiresAt.Time) {
		return false
	}
	return crypto.EqualOTP(strings.TrimSpace(submitted), stored.String)
}
