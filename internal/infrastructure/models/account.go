package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Account rows are hard-deleted so an unverified sign-up can be replaced
// under the same unique email.
type Account struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string      `gorm:"type:varchar(100);not null"`
	PasswordHash string      `gorm:"type:varchar(255);not null"`
	Role         string      `gorm:"type:varchar(20);not null;index"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending';index"`
	Verified     bool        `gorm:"not null;default:false"`
	OTP          null.String `gorm:"column:otp;type:varchar(6)"`
	OTPExpiresAt null.Time   `gorm:"column:otp_expires_at;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Account) TableName() string {
	return "accounts"
}

type PasswordResetRequest struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OTP       string    `gorm:"column:otp;type:varchar(6);not null"`
	OTPExpiry time.Time `gorm:"column:otp_expiry;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (PasswordResetRequest) TableName() string {
	return "password_reset_requests"
}
