package usecases_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entities.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *entities.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	args := m.Called(ctx, id, code, expiresAt)
	return args.Error(0)
}

func (m *MockAccountRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) SetReviewStatus(ctx context.Context, id uuid.UUID, status entities.AccountStatus, verified bool) error {
	args := m.Called(ctx, id, status, verified)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context, filter entities.AccountFilter, limit, offset int) ([]*entities.Account, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) Stats(ctx context.Context) (*entities.AccountStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AccountStats), args.Error(1)
}

func (m *MockAccountRepository) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile entities.RoleProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByAccount(ctx context.Context, accountID uuid.UUID, role entities.Role) (entities.RoleProfile, error) {
	args := m.Called(ctx, accountID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.RoleProfile), args.Error(1)
}

func (m *MockProfileRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID, role entities.Role) error {
	args := m.Called(ctx, accountID, role)
	return args.Error(0)
}

// Mock PasswordResetRepository
type MockPasswordResetRepository struct {
	mock.Mock
}

func (m *MockPasswordResetRepository) Upsert(ctx context.Context, req *entities.PasswordResetRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockPasswordResetRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*entities.PasswordResetRequest, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PasswordResetRequest), args.Error(1)
}

func (m *MockPasswordResetRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockPasswordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// Mock OTPThrottle
type MockOTPThrottle struct {
	mock.Mock
}

func (m *MockOTPThrottle) Allow(ctx context.Context, purpose, email string) (bool, error) {
	args := m.Called(ctx, purpose, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockOTPThrottle) Reset(ctx context.Context, purpose, email string) error {
	args := m.Called(ctx, purpose, email)
	return args.Error(0)
}

type sentMessage struct {
	Kind  string
	Email string
	Value string
}

// recordingNotifier captures dispatched notifications in call order
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (n *recordingNotifier) record(kind, email, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{Kind: kind, Email: email, Value: value})
}

func (n *recordingNotifier) SendOTP(email, otp string)              { n.record("otp", email, otp) }
func (n *recordingNotifier) SendPasswordReset(email, otp string)    { n.record("password_reset", email, otp) }
func (n *recordingNotifier) SendPendingApproval(email, name string) { n.record("pending_approval", email, name) }
func (n *recordingNotifier) SendApproval(email, name string)        { n.record("approval", email, name) }
func (n *recordingNotifier) SendRejection(email, name string)       { n.record("rejection", email, name) }

func (n *recordingNotifier) Messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentMessage, len(n.sent))
	copy(out, n.sent)
	return out
}

func (n *recordingNotifier) Kinds() []string {
	msgs := n.Messages()
	kinds := make([]string, 0, len(msgs))
	for _, m := range msgs {
		kinds = append(kinds, m.Kind)
	}
	return kinds
}
