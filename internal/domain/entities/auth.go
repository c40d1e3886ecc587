package entities

import "time"

// RegisterInput represents input for account sign-up. Exactly the
// attribute block matching Role is read.
type RegisterInput struct {
	Email      string                `json:"email" binding:"required,email"`
	Password   string                `json:"password" binding:"required,min=8,max=72"`
	Name       string                `json:"name" binding:"required,min=2,max=100"`
	Role       Role                  `json:"role" binding:"required"`
	Student    *StudentAttributes    `json:"student,omitempty"`
	Company    *CompanyAttributes    `json:"company,omitempty"`
	Teacher    *TeacherAttributes    `json:"teacher,omitempty"`
	University *UniversityAttributes `json:"university,omitempty"`
}

// VerifyOTPInput represents input for email verification
type VerifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// EmailInput carries a single email address
type EmailInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput represents input for completing a password reset
type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

// ReviewInput is the admin decision on a pending account
type ReviewInput struct {
	Status AccountStatus `json:"status" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Account   *Account  `json:"account"`
}

// MeResponse is the authenticated account with its role profile
type MeResponse struct {
	Account *Account    `json:"account"`
	Profile RoleProfile `json:"profile,omitempty"`
}

// RegisterResponse is returned after sign-up
type RegisterResponse struct {
	Account *Account `json:"account"`
	Message string   `json:"message"`
}
