package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	"github.com/sannyeinphyo/internlink-sub001/internal/usecases"
)

type verificationServiceStub struct {
	registerFn       func(context.Context, *entities.RegisterInput) (*entities.Account, error)
	verifyFn         func(context.Context, string, string) (*entities.Account, error)
	resendFn         func(context.Context, string) error
	requestResetFn   func(context.Context, string) error
	resetFn          func(context.Context, *entities.ResetPasswordInput) error
	changePasswordFn func(context.Context, uuid.UUID, *entities.ChangePasswordInput) error
}

func (s *verificationServiceStub) Register(ctx context.Context, in *entities.RegisterInput) (*entities.Account, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, in)
	}
	return &entities.Account{ID: uuid.New(), Email: in.Email, Role: in.Role, Status: entities.AccountStatusPending}, nil
}

func (s *verificationServiceStub) VerifyOTP(ctx context.Context, email, code string) (*entities.Account, error) {
	if s.verifyFn != nil {
		return s.verifyFn(ctx, email, code)
	}
	return &entities.Account{ID: uuid.New(), Email: email, Verified: true}, nil
}

func (s *verificationServiceStub) ResendOTP(ctx context.Context, email string) error {
	if s.resendFn != nil {
		return s.resendFn(ctx, email)
	}
	return nil
}

func (s *verificationServiceStub) RequestPasswordReset(ctx context.Context, email string) error {
	if s.requestResetFn != nil {
		return s.requestResetFn(ctx, email)
	}
	return nil
}

func (s *verificationServiceStub) ResetPassword(ctx context.Context, in *entities.ResetPasswordInput) error {
	if s.resetFn != nil {
		return s.resetFn(ctx, in)
	}
	return nil
}

func (s *verificationServiceStub) ChangePassword(ctx context.Context, id uuid.UUID, in *entities.ChangePasswordInput) error {
	if s.changePasswordFn != nil {
		return s.changePasswordFn(ctx, id, in)
	}
	return nil
}

type sessionServiceStub struct {
	authorizeFn func(context.Context, *entities.LoginInput) (*entities.AuthResponse, error)
	getMeFn     func(context.Context, uuid.UUID) (*entities.MeResponse, error)
}

func (s *sessionServiceStub) Authorize(ctx context.Context, in *entities.LoginInput) (*entities.AuthResponse, error) {
	return s.authorizeFn(ctx, in)
}

func (s *sessionServiceStub) GetMe(ctx context.Context, id uuid.UUID) (*entities.MeResponse, error) {
	return s.getMeFn(ctx, id)
}

type approvalServiceStub struct {
	reviewFn func(context.Context, uuid.UUID, entities.AccountStatus) (*entities.Account, error)
	listFn   func(context.Context, entities.AccountFilter, int, int) (*usecases.AccountList, error)
	statsFn  func(context.Context) (*entities.AccountStats, error)
	exportFn func(context.Context, entities.AccountFilter) (string, []byte, error)
}

func (s *approvalServiceStub) Review(ctx context.Context, id uuid.UUID, st entities.AccountStatus) (*entities.Account, error) {
	return s.reviewFn(ctx, id, st)
}

func (s *approvalServiceStub) ListAccounts(ctx context.Context, f entities.AccountFilter, page, limit int) (*usecases.AccountList, error) {
	return s.listFn(ctx, f, page, limit)
}

func (s *approvalServiceStub) Stats(ctx context.Context) (*entities.AccountStats, error) {
	return s.statsFn(ctx)
}

func (s *approvalServiceStub) ExportAccounts(ctx context.Context, f entities.AccountFilter) (string, []byte, error) {
	return s.exportFn(ctx, f)
}

func jsonBody(v string) *strings.Reader {
	return strings.NewReader(v)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body=%s", w.Body.String())
	return body
}
