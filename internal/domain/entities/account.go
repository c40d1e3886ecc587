package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Role identifies the kind of account and its URL namespace
type Role string

const (
	RoleStudent    Role = "student"
	RoleCompany    Role = "company"
	RoleTeacher    Role = "teacher"
	RoleUniversity Role = "university"
	RoleAdmin      Role = "admin"
)

// Roles lists every role in display order
var Roles = []Role{RoleStudent, RoleCompany, RoleTeacher, RoleUniversity, RoleAdmin}

// ParseRole converts a raw string into a Role
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleTeacher, RoleUniversity, RoleAdmin:
		return true
	default:
		return false
	}
}

// RequiresReview reports whether accounts of this role go through admin approval.
func (r Role) RequiresReview() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleTeacher, RoleUniversity:
		return true
	case RoleAdmin:
		return false
	default:
		return false
	}
}

// SelfRegistrable reports whether the role may be chosen at sign-up.
// Admins are bootstrapped out of band.
func (r Role) SelfRegistrable() bool {
	return r.RequiresReview()
}

// AccountStatus is the admin approval state
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusApproved AccountStatus = "approved"
	AccountStatusDeclined AccountStatus = "declined"
)

// AccountStatuses lists every approval state
var AccountStatuses = []AccountStatus{AccountStatusPending, AccountStatusApproved, AccountStatusDeclined}

// Valid reports whether s is a known status
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusPending, AccountStatusApproved, AccountStatusDeclined:
		return true
	default:
		return false
	}
}

// IsReviewOutcome reports whether s is a status an admin may set.
func (s AccountStatus) IsReviewOutcome() bool {
	return s == AccountStatusApproved || s == AccountStatusDeclined
}

// Account represents a registered identity
type Account struct {
	ID           uuid.UUID     `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	Status       AccountStatus `json:"status"`
	Verified     bool          `json:"verified"`
	OTP          null.String   `json:"-"`
	OTPExpiresAt null.Time     `json:"-"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// SetOTP stores a code together with its expiry
func (a *Account) SetOTP(code string, expiresAt time.Time) {
	a.OTP = null.StringFrom(code)
	a.OTPExpiresAt = null.TimeFrom(expiresAt)
}

// ClearOTP removes the code and its expiry together
func (a *Account) ClearOTP() {
	a.OTP = null.String{}
	a.OTPExpiresAt = null.Time{}
}

// NormalizeEmail lower-cases and trims an address for lookups and storage
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PasswordResetRequest is the single outstanding reset code for an account
type PasswordResetRequest struct {
	AccountID uuid.UUID `json:"accountId"`
	OTP       string    `json:"-"`
	OTPExpiry time.Time `json:"otpExpiry"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccountFilter narrows admin listings
type AccountFilter struct {
	Role     Role
	Status   AccountStatus
	Verified *bool
	Search   string
}

// AccountStats aggregates account counts for the admin dashboard
type AccountStats struct {
	Total                int64                   `json:"total"`
	ByRole               map[Role]int64          `json:"byRole"`
	ByStatus             map[AccountStatus]int64 `json:"byStatus"`
	AwaitingReview       int64                   `json:"awaitingReview"`
	AwaitingVerification int64                   `json:"awaitingVerification"`
}
