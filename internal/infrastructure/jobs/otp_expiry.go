package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sannyeinphyo/internlink-sub001/pkg/logger"
)

const defaultSweepInterval = time.Minute

type expiredOTPCleaner interface {
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

type expiredResetCleaner interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// OTPExpiryJob clears verification codes and password reset requests whose
// expiry has passed.
type OTPExpiryJob struct {
	accounts expiredOTPCleaner
	resets   expiredResetCleaner
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewOTPExpiryJob(accounts expiredOTPCleaner, resets expiredResetCleaner, interval time.Duration) *OTPExpiryJob {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &OTPExpiryJob{
		accounts: accounts,
		resets:   resets,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (j *OTPExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting OTP expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "OTP expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "OTP expiry job stopped")
			return
		case <-ticker.C:
			j.processExpired(ctx)
		}
	}
}

func (j *OTPExpiryJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *OTPExpiryJob) processExpired(ctx context.Context) {
	now := j.now()

	cleared, err := j.accounts.ClearExpiredOTPs(ctx, now)
	if err != nil {
		logger.Error(ctx, "Failed to clear expired account OTPs", zap.Error(err))
	} else if cleared > 0 {
		logger.Info(ctx, "Cleared expired account OTPs", zap.Int64("count", cleared))
	}

	deleted, err := j.resets.DeleteExpired(ctx, now)
	if err != nil {
		logger.Error(ctx, "Failed to delete expired password reset requests", zap.Error(err))
	} else if deleted > 0 {
		logger.Info(ctx, "Deleted expired password reset requests", zap.Int64("count", deleted))
	}
}
