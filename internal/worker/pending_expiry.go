package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Expirer cancels stale pending bookings and reports how many it touched.
type Expirer interface {
	Execute(ctx context.Context, now time.Time) (int, error)
}

type PendingExpiryWorker struct {
	expirer  Expirer
	interval time.Duration
	now      func() time.Time
}

func NewPendingExpiryWorker(expirer Expirer, interval time.Duration, now func() time.Time) *PendingExpiryWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &PendingExpiryWorker{
		expirer:  expirer,
		interval: interval,
		now:      now,
	}
}

// Start blocks until ctx is cancelled.
func (w *PendingExpiryWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.WithField("interval", w.interval.String()).Info("pending expiry worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("pending expiry worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *PendingExpiryWorker) runOnce(ctx context.Context) {
	n, err := w.expirer.Execute(ctx, w.now())
	if err != nil {
		logrus.WithError(err).Error("pending expiry run failed")
		return
	}
	logrus.WithField("expired", n).Debug("pending expiry run completed")
}
