package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { InitWithWriter("test", &bytes.Buffer{}) })

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "seeker1")
	ctx = WithAction(ctx, "login")
	CtxInfo(ctx, "signed in")

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"user_id":"seeker1"`)
	assert.Contains(t, out, `"action":"login"`)
}

func TestSyncLogLevels(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { InitWithWriter("test", &bytes.Buffer{}) })

	SyncLog("jobs", "create", "job1", nil)
	assert.Empty(t, buf.String(), "success is debug level and filtered in production")

	SyncLog("jobs", "create", "job1", errors.New("connection refused"))
	assert.Contains(t, buf.String(), "write-through failed")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestWithErrorAttachesMessage(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { InitWithWriter("test", &bytes.Buffer{}) })

	WithError(errors.New("listener closed")).Error("Server shutdown error")
	assert.Contains(t, buf.String(), `"error":"listener closed"`)
}
