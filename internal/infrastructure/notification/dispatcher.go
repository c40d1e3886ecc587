package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/sannyeinphyo/internlink-sub001/pkg/logger"
)

// Kind names a notification template
type Kind string

const (
	KindOTP             Kind = "otp"
	KindPasswordReset   Kind = "password_reset"
	KindPendingApproval Kind = "pending_approval"
	KindApproval        Kind = "approval"
	KindRejection       Kind = "rejection"
)

const defaultSendTimeout = 15 * time.Second

var notificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Notifications dispatched, partitioned by kind and result",
	},
	[]string{"kind", "result"},
)

// Dispatcher sends notifications in the background. A failed send is
// logged and counted; it never reaches the caller.
type Dispatcher struct {
	mailer  Mailer
	appName string
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher
func NewDispatcher(mailer Mailer, appName string) *Dispatcher {
	return &Dispatcher{
		mailer:  mailer,
		appName: appName,
		timeout: defaultSendTimeout,
	}
}

// SendOTP delivers an email verification code
func (d *Dispatcher) SendOTP(email, otp string) {
	d.dispatch(KindOTP, email,
		fmt.Sprintf("Your %s verification code", d.appName),
		fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", otp),
	)
}

// SendPasswordReset delivers a password reset code
func (d *Dispatcher) SendPasswordReset(email, otp string) {
	d.dispatch(KindPasswordReset, email,
		fmt.Sprintf("Your %s password reset code", d.appName),
		fmt.Sprintf("Use the code %s to reset your password. It expires in 10 minutes.\n\nIf you did not request this, ignore this email.", otp),
	)
}

// SendPendingApproval tells a newly verified account it awaits review
func (d *Dispatcher) SendPendingApproval(email, name string) {
	d.dispatch(KindPendingApproval, email,
		fmt.Sprintf("%s: your account is awaiting approval", d.appName),
		fmt.Sprintf("Hello %s,\n\nYour email has been verified. An administrator will review your account shortly.", name),
	)
}

// SendApproval tells an account it was approved
func (d *Dispatcher) SendApproval(email, name string) {
	d.dispatch(KindApproval, email,
		fmt.Sprintf("%s: your account has been approved", d.appName),
		fmt.Sprintf("Hello %s,\n\nYour account has been approved. You can now sign in.", name),
	)
}

// SendRejection tells an account it was declined
func (d *Dispatcher) SendRejection(email, name string) {
	d.dispatch(KindRejection, email,
		fmt.Sprintf("%s: your account application", d.appName),
		fmt.Sprintf("Hello %s,\n\nWe are sorry, your account application has been declined.", name),
	)
}

// Wait blocks until every in-flight notification has finished
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(kind Kind, to, subject, body string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.mailer.Send(ctx, to, subject, body); err != nil {
			notificationsTotal.WithLabelValues(string(kind), "error").Inc()
			logger.Error(ctx, "Failed to send notification",
				zap.String("kind", string(kind)),
				zap.String("to", to),
				zap.Error(err),
			)
			return
		}
		notificationsTotal.WithLabelValues(string(kind), "ok").Inc()
	}()
}
