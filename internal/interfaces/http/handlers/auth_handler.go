package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
	"github.com/sannyeinphyo/internlink-sub001/internal/interfaces/http/middleware"
	"github.com/sannyeinphyo/internlink-sub001/internal/interfaces/http/response"
)

type verificationService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.Account, error)
	VerifyOTP(ctx context.Context, email, code string) (*entities.Account, error)
	ResendOTP(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error
	ChangePassword(ctx context.Context, accountID uuid.UUID, input *entities.ChangePasswordInput) error
}

type sessionService interface {
	Authorize(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	GetMe(ctx context.Context, accountID uuid.UUID) (*entities.MeResponse, error)
}

// SessionCookie configures the cookie that carries the session token
type SessionCookie struct {
	Name   string
	Domain string
	Secure bool
	MaxAge time.Duration
}

// AuthHandler handles sign-up, verification and session endpoints
type AuthHandler struct {
	verification verificationService
	sessions     sessionService
	cookie       SessionCookie
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(verification verificationService, sessions sessionService, cookie SessionCookie) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = middleware.DefaultSessionCookie
	}
	return &AuthHandler{
		verification: verification,
		sessions:     sessions,
		cookie:       cookie,
	}
}

// Register handles account sign-up
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	account, err := h.verification.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, entities.RegisterResponse{
		Account: account,
		Message: "Registration successful. Check your email for the verification code.",
	})
}

// VerifyOTP handles email verification
// POST /api/v1/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var input entities.VerifyOTPInput
	if !bindJSON(c, &input) {
		return
	}

	account, err := h.verification.VerifyOTP(c.Request.Context(), input.Email, input.OTP)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Email verified. Your account is awaiting admin approval.",
		"account": account,
	})
}

// ResendOTP issues a new verification code
// POST /api/v1/auth/resend-otp
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var input entities.EmailInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.verification.ResendOTP(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "A new verification code has been sent."})
}

// Login handles credential sign-in
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	auth, err := h.sessions.Authorize(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, auth.Token, int(time.Until(auth.ExpiresAt).Seconds()))
	response.Success(c, http.StatusOK, auth)
}

// Logout clears the session cookie
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Signed out"})
}

// ForgotPassword emails a password reset code
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input entities.EmailInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.verification.RequestPasswordReset(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "A password reset code has been sent."})
}

// ResetPassword completes a password reset
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.verification.ResetPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password has been reset."})
}

// ChangePassword changes the password of the signed-in account
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.ChangePasswordInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.verification.ChangePassword(c.Request.Context(), accountID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated."})
}

// Me returns the signed-in account with its role profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	me, err := h.sessions.GetMe(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, me)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
