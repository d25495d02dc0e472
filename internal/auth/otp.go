package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"
)

const otpDigits = 6

// NewOTP - шестизначный код подтверждения
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

// CheckOTP сравнивает код за постоянное время и проверяет срок
func CheckOTP(expected string, expiresAt *time.Time, got string, now time.Time) bool {
	if expected == "" || expiresAt == nil || now.After(*expiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
