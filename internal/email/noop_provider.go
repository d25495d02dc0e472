package email

import (
	"context"
	"time"

	"hirehub/internal/logger"
)

// NoopProvider ничего не отправляет, только пишет в лог (dev режим без SMTP)
type NoopProvider struct{}

func (NoopProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "email skipped, SMTP disabled", "to", email.To, "subject", email.Subject)
	return nil
}

func (NoopProvider) SendOTP(ctx context.Context, to, _, code string, _ time.Duration) error {
	logger.CtxInfo(ctx, "verification code issued, SMTP disabled", "to", to, "code", code)
	return nil
}
