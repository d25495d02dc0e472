package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultFrom(t *testing.T) {
	t.Run("nil is success", func(t *testing.T) {
		res := ResultFrom(nil)
		assert.True(t, res.Success)
		assert.Empty(t, res.Code)
	})

	t.Run("app error keeps code and hint", func(t *testing.T) {
		res := ResultFrom(ErrUserNotFound.WithHint(HintRegister))
		assert.False(t, res.Success)
		assert.Equal(t, CodeUserNotFound, res.Code)
		assert.Equal(t, HintRegister, res.Hint)
		assert.Equal(t, "No account found for this email", res.Message)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		res := ResultFrom(fmt.Errorf("login: %w", ErrInvalidCredentials))
		assert.Equal(t, CodeInvalidCredentials, res.Code)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		res := ResultFrom(errors.New("boom"))
		assert.False(t, res.Success)
		assert.Equal(t, CodeInternalError, res.Code)
	})
}

func TestWithHelpersDoNotMutateShared(t *testing.T) {
	hinted := ErrUserNotFound.WithHint(HintRegister)
	detailed := ErrUserNotFound.WithDetails("x")

	assert.Equal(t, HintNone, ErrUserNotFound.Hint)
	assert.Nil(t, ErrUserNotFound.Details)
	assert.Equal(t, HintRegister, hinted.Hint)
	assert.Equal(t, "x", detailed.Details)
	assert.True(t, errors.Is(hinted, ErrUserNotFound))
}

func TestMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(ErrInvalidTransition.WithError(errors.New("hidden")))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"code":"INVALID_TRANSITION","domain":"application","message":"Status change is not allowed"}`, string(raw))
}
