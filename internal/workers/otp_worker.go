package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hirehub/internal/logger"
	"hirehub/internal/models"
)

// OTPWorker чистит просроченные коды подтверждения на сервере
type OTPWorker struct {
	db       *gorm.DB
	interval time.Duration
	now      func() time.Time
}

func NewOTPWorker(db *gorm.DB, interval time.Duration) *OTPWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &OTPWorker{db: db, interval: interval, now: time.Now}
}

// Start запускает фоновую очистку
func (w *OTPWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *OTPWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("otp", "stop", nil)
			return
		case <-ticker.C:
			removed, cleared, err := w.Sweep(ctx)
			if err != nil {
				logger.WorkerLog("otp", "sweep", err)
				continue
			}
			if removed > 0 || cleared > 0 {
				logger.Info("expired verification codes swept", "removed_users", removed, "cleared_codes", cleared)
			}
		}
	}
}

// Sweep удаляет неподтвержденные регистрации с истекшим кодом
// и стирает истекшие коды у остальных пользователей
func (w *OTPWorker) Sweep(ctx context.Context) (removed, cleared int64, err error) {
	now := w.now()

	res := w.db.WithContext(ctx).
		Where("status = ? AND otp_expires_at < ?", models.UserStatusPending, now).
		Delete(&models.User{})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	removed = res.RowsAffected

	res = w.db.WithContext(ctx).
		Model(&models.User{}).
		Where("otp_code <> '' AND otp_expires_at < ?", now).
		Updates(map[string]any{"otp_code": "", "otp_expires_at": nil})
	if res.Error != nil {
		return removed, 0, res.Error
	}
	return removed, res.RowsAffected, nil
}
