package usecases

import "context"

// Notifier delivers best-effort messages triggered by account state changes.
// Implementations must not block the caller.
type Notifier interface {
	SendOTP(email, otp string)
	SendPasswordReset(email, otp string)
	SendPendingApproval(email, name string)
	SendApproval(email, name string)
	SendRejection(email, name string)
}

// OTPThrottle limits how often a code may be issued per email and purpose
type OTPThrottle interface {
	Allow(ctx context.Context, purpose, email string) (bool, error)
	Reset(ctx context.Context, purpose, email string) error
}
