package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirehub/internal/models"
	"hirehub/pkg/apperrors"
)

func TestFetchJobsOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`[{"id":"j1","employerId":"emp1","title":"Go Dev","status":"active"}]`))
	}))
	defer srv.Close()

	res := NewClient(srv.URL+"/", nil).FetchJobs(context.Background())
	require.True(t, res.OK())
	require.Len(t, res.Data, 1)
	assert.Equal(t, "emp1", res.Data[0].EmployerID)
	assert.Equal(t, models.JobStatusActive, res.Data[0].Status)
}

func TestRejectedResponseCarriesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"USER_NOT_FOUND","domain":"auth","message":"No account found"}}`))
	}))
	defer srv.Close()

	res := NewClient(srv.URL, nil).Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x"})
	require.False(t, res.OK())
	assert.Equal(t, FailureRejected, res.Failure.Kind)
	assert.True(t, res.Failure.Status(http.StatusNotFound))
	assert.Equal(t, apperrors.CodeUserNotFound, res.Failure.Code)
	assert.Equal(t, "No account found", res.Failure.Message)
	assert.Equal(t, apperrors.CodeUserNotFound, res.Failure.AppError().Code)
}

func TestRejectedPlainMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid password"}`))
	}))
	defer srv.Close()

	res := NewClient(srv.URL, nil).Login(context.Background(), LoginRequest{})
	require.False(t, res.OK())
	assert.True(t, res.Failure.Status(http.StatusUnauthorized))
	assert.Equal(t, "Invalid password", res.Failure.Message)
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	res := NewClient(srv.URL, nil).FetchUsers(context.Background())
	require.False(t, res.OK())
	assert.Equal(t, FailureMalformed, res.Failure.Kind)
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := NewClient(url, &http.Client{Timeout: time.Second}).FetchApplications(context.Background())
	require.False(t, res.OK())
	assert.True(t, res.Failure.Unreachable())
	assert.Equal(t, apperrors.CodeGatewayUnreachable, res.Failure.AppError().Code)

	empty := NewClient("", nil).FetchJobs(context.Background())
	assert.True(t, empty.Failure.Unreachable())
}

func TestWritesSendBearerAndBody(t *testing.T) {
	var gotAuth, gotPath, gotMethod string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	c.SetToken("tok")
	res := c.Update(context.Background(), CollectionApplications, "app 1", models.Application{ID: "app 1", Status: models.StatusScreening})
	require.True(t, res.OK())
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/applications/app 1", gotPath)
	assert.Equal(t, "screening", gotBody["status"])

	res = c.Delete(context.Background(), CollectionJobs, "j1")
	require.True(t, res.OK())
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestUploadMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "cv.pdf", header.Filename)
		assert.Equal(t, "PDF", string(data))
		_, _ = w.Write([]byte(`{"url":"/uploads/cv.pdf","size":3}`))
	}))
	defer srv.Close()

	res := NewClient(srv.URL, nil).Upload(context.Background(), "cv.pdf", strings.NewReader("PDF"))
	require.True(t, res.OK())
	assert.Equal(t, "/uploads/cv.pdf", res.Data.URL)
}

func TestDetectorLatchesOnce(t *testing.T) {
	d := NewDetector()
	assert.Equal(t, ModeUnknown, d.Mode())
	assert.False(t, d.IsOffline())

	assert.Equal(t, ModeOffline, d.Latch(false))
	assert.Equal(t, ModeOffline, d.Latch(true), "second latch is ignored")
	assert.True(t, d.IsOffline())

	assert.False(t, d.Reconnect(context.Background(), func(context.Context) bool { return false }))
	assert.True(t, d.IsOffline())
	assert.True(t, d.Reconnect(context.Background(), func(context.Context) bool { return true }))
	assert.Equal(t, ModeOnline, d.Mode())
}

func TestSyncerPreservesOrderPerCollection(t *testing.T) {
	d := NewDetector()
	d.Latch(true)
	s := NewSyncer(context.Background(), d, SyncerConfig{})
	defer s.Close()

	var mu sync.Mutex
	var order []string
	for _, id := range []string{"a", "b", "c", "d"} {
		id := id
		s.Dispatch(CollectionJobs, "create", id, func(context.Context) *Failure {
			mu.Lock()
			order = append(order, id)
			mu.Unlock()
			return nil
		})
	}
	s.Wait()
	assert.Equal(t, []string{"a", "b", "c", "d"}, order)
}

func TestSyncerSkipsWhenOffline(t *testing.T) {
	d := NewDetector()
	d.Latch(false)
	s := NewSyncer(context.Background(), d, SyncerConfig{})
	defer s.Close()

	called := false
	sent := s.Dispatch(CollectionJobs, "create", "j1", func(context.Context) *Failure {
		called = true
		return nil
	})
	s.Wait()
	assert.False(t, sent)
	assert.False(t, called)
}

func TestSyncerDispatchDoesNotWaitForHungServer(t *testing.T) {
	d := NewDetector()
	d.Latch(true)
	base, cancel := context.WithCancel(context.Background())
	s := NewSyncer(base, d, SyncerConfig{Timeout: time.Minute})

	started := make(chan struct{}, 1)
	hang := func(ctx context.Context) *Failure {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		return &Failure{Kind: FailureUnreachable, Err: ctx.Err()}
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			s.Dispatch(CollectionJobs, "create", fmt.Sprintf("job-%d", i), hang)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked behind a hung write")
	}
	<-started

	cancel()
	s.Close()
}
