package email

import (
	"context"
	"time"
)

// Provider - отправка писем сервера (коды подтверждения регистрации)
type Provider interface {
	Send(ctx context.Context, email *Email) error
	SendOTP(ctx context.Context, to, name, code string, ttl time.Duration) error
}
