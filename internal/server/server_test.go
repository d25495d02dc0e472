package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hirehub/internal/ai"
	"hirehub/internal/auth"
	"hirehub/internal/email"
	"hirehub/internal/gateway"
	"hirehub/internal/handlers"
	"hirehub/internal/logger"
	"hirehub/internal/middleware"
	"hirehub/internal/models"
	"hirehub/internal/repositories"
	"hirehub/internal/storage"
	"hirehub/pkg/apperrors"
	"hirehub/ws"
)

// memDB - in-memory замена трех gorm репозиториев
type memDB struct {
	mu    sync.Mutex
	users map[string]models.User
	jobs  map[string]models.Job
	apps  map[string]models.Application
}

func newMemDB() *memDB {
	return &memDB{
		users: map[string]models.User{},
		jobs:  map[string]models.Job{},
		apps:  map[string]models.Application{},
	}
}

type memUsers struct{ *memDB }
type memJobs struct{ *memDB }
type memApps struct{ *memDB }

func (m memUsers) List(*gorm.DB) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m memUsers) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (m memUsers) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m memUsers) Create(db *gorm.DB, user *models.User) error {
	if _, err := m.FindByEmail(db, user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}

func (m memUsers) Update(_ *gorm.DB, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	next := *user
	next.PasswordHash, next.OTPCode, next.OTPExpiresAt = old.PasswordHash, old.OTPCode, old.OTPExpiresAt
	m.users[user.ID] = next
	return nil
}

func (m memUsers) SetOTP(_ *gorm.DB, userID, code string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[userID]
	u.OTPCode, u.OTPExpiresAt = code, &expiresAt
	m.users[userID] = u
	return nil
}

func (m memUsers) Activate(_ *gorm.DB, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[userID]
	u.Status, u.OTPCode, u.OTPExpiresAt = models.UserStatusActive, "", nil
	m.users[userID] = u
	return nil
}

func (m memUsers) Delete(_ *gorm.DB, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return repositories.ErrNotFound
	}
	for id, j := range m.jobs {
		if j.EmployerID != userID {
			continue
		}
		for aid, a := range m.apps {
			if a.JobID == id {
				delete(m.apps, aid)
			}
		}
		delete(m.jobs, id)
	}
	for aid, a := range m.apps {
		if a.SeekerID == userID {
			delete(m.apps, aid)
		}
	}
	delete(m.users, userID)
	return nil
}

func (m memJobs) List(*gorm.DB) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (m memJobs) FindByID(_ *gorm.DB, id string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &j, nil
}

func (m memJobs) Create(_ *gorm.DB, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.jobs[job.ID]; exists {
		return gorm.ErrDuplicatedKey
	}
	m.jobs[job.ID] = *job
	return nil
}

func (m memJobs) Update(_ *gorm.DB, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[job.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.jobs[job.ID] = *job
	return nil
}

func (m memJobs) Delete(_ *gorm.DB, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, id)
	return nil
}

func (m memApps) List(*gorm.DB) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Application, 0, len(m.apps))
	for _, a := range m.apps {
		out = append(out, a)
	}
	return out, nil
}

func (m memApps) FindByID(_ *gorm.DB, id string) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (m memApps) Create(_ *gorm.DB, app *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apps[app.ID] = *app
	return nil
}

func (m memApps) Update(_ *gorm.DB, app *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apps[app.ID] = *app
	return nil
}

func (m memApps) Delete(_ *gorm.DB, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.apps, id)
	return nil
}

type recordingMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (r *recordingMailer) Send(context.Context, *email.Email) error { return nil }

func (r *recordingMailer) SendOTP(_ context.Context, to, _, code string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[to] = code
	return nil
}

func (r *recordingMailer) code(to string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codes[to]
}

type stubAI struct{ err error }

func (s stubAI) Generate(_ context.Context, req ai.Request) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "draft: " + req.Prompt, nil
}

type testServer struct {
	router *gin.Engine
	db     *memDB
	mailer *recordingMailer
	tokens *auth.JWTManager
}

func newTestServer(t *testing.T, mutate func(*Deps)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("test", &bytes.Buffer{})

	st, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/uploads"})
	require.NoError(t, err)

	db := newMemDB()
	mailer := &recordingMailer{codes: map[string]string{}}
	deps := &Deps{
		Users:        memUsers{db},
		Jobs:         memJobs{db},
		Applications: memApps{db},
		Tokens:       auth.NewJWTManager("test-secret", time.Hour),
		Mailer:       mailer,
		Storage:      st,
		AI:           stubAI{},
		UploadLimit:  1024,
	}
	if mutate != nil {
		mutate(deps)
	}
	return &testServer{router: SetupRouter(deps), db: db, mailer: mailer, tokens: deps.Tokens}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// addUser кладет пользователя с паролем "secret1" и возвращает токен
func (s *testServer) addUser(t *testing.T, id string, role models.UserRole) string {
	t.Helper()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	u := models.User{ID: id, Name: id, Email: id + "@test.dev", Role: role, Status: models.UserStatusActive, PasswordHash: hash}
	require.NoError(t, memUsers{s.db}.Create(nil, &u))
	token, err := s.tokens.Generate(u)
	require.NoError(t, err)
	return token
}

type authBody struct {
	User                models.User `json:"user"`
	Token               string      `json:"token"`
	RequireVerification bool        `json:"requireVerification"`
}

type errorBody struct {
	Error struct {
		Code apperrors.ErrorCode `json:"code"`
		Hint apperrors.Hint      `json:"hint"`
	} `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"id": "client-id-1", "name": "Aida", "email": "aida@test.dev", "password": "secret1", "role": "seeker",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decode[authBody](t, w)
	assert.Equal(t, "client-id-1", reg.User.ID)
	assert.NotEmpty(t, reg.Token)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = s.do(t, http.MethodPost, "/api/login", "", map[string]any{"email": "aida@test.dev", "password": "secret1", "role": "seeker"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "client-id-1", decode[authBody](t, w).User.ID)

	w = s.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"name": "Aida", "email": "aida@test.dev", "password": "secret1", "role": "seeker",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperrors.CodeEmailExists, decode[errorBody](t, w).Error.Code)
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t, nil)
	s.addUser(t, "u1", models.UserRoleSeeker)

	tests := []struct {
		name   string
		email  string
		pass   string
		status int
		hint   apperrors.Hint
	}{
		{"unknown email", "nobody@test.dev", "secret1", http.StatusNotFound, apperrors.HintRegister},
		{"wrong password", "u1@test.dev", "wrong-pass", http.StatusUnauthorized, apperrors.HintResetPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/login", "", map[string]any{"email": tt.email, "password": tt.pass, "role": "seeker"})
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.hint, decode[errorBody](t, w).Error.Hint)
		})
	}

	u, _ := memUsers{s.db}.FindByID(nil, "u1")
	u.Status = models.UserStatusSuspended
	require.NoError(t, memUsers{s.db}.Update(nil, u))
	w := s.do(t, http.MethodPost, "/api/login", "", map[string]any{"email": "u1@test.dev", "password": "secret1", "role": "seeker"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterWithVerification(t *testing.T) {
	s := newTestServer(t, func(d *Deps) {
		d.Auth = handlers.AuthSettings{RequireVerification: true, OTPTTL: time.Minute}
	})

	w := s.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"name": "Timur", "email": "timur@test.dev", "password": "secret1", "role": "employer", "companyName": "Steppe",
	})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.True(t, decode[authBody](t, w).RequireVerification)

	w = s.do(t, http.MethodPost, "/api/login", "", map[string]any{"email": "timur@test.dev", "password": "secret1", "role": "employer"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/verify-otp", "", map[string]any{"email": "timur@test.dev", "code": "999999x"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "code must be six digits")

	code := s.mailer.code("timur@test.dev")
	require.Len(t, code, 6)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	w = s.do(t, http.MethodPost, "/api/verify-otp", "", map[string]any{"email": "timur@test.dev", "code": wrong})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.HintVerifyOTP, decode[errorBody](t, w).Error.Hint)

	w = s.do(t, http.MethodPost, "/api/verify-otp", "", map[string]any{"email": "timur@test.dev", "code": code})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[authBody](t, w)
	assert.Equal(t, models.UserStatusActive, body.User.Status)
	assert.NotEmpty(t, body.Token)
}

func TestAdminCannotSelfRegister(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"name": "Root", "email": "root@test.dev", "password": "secret1", "role": "admin",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJobPermissions(t *testing.T) {
	s := newTestServer(t, nil)
	emp := s.addUser(t, "emp1", models.UserRoleEmployer)
	other := s.addUser(t, "emp2", models.UserRoleEmployer)
	seeker := s.addUser(t, "seek1", models.UserRoleSeeker)

	job := map[string]any{"id": "job-1", "title": "Go Developer", "company": "Acme", "type": "full-time"}

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/jobs", "", job).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/jobs", seeker, job).Code)

	w := s.do(t, http.MethodPost, "/api/jobs", emp, job)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Job](t, w)
	assert.Equal(t, "emp1", created.EmployerID)
	assert.Equal(t, models.JobStatusActive, created.Status)

	w = s.do(t, http.MethodPost, "/api/jobs", emp, job)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), string(apperrors.CodeConflict))

	update := map[string]any{"title": "Senior Go Developer", "employerId": "emp2", "status": "closed"}
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPut, "/api/jobs/job-1", other, update).Code)

	w = s.do(t, http.MethodPut, "/api/jobs/job-1", emp, update)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Job](t, w)
	assert.Equal(t, "emp1", updated.EmployerID, "owner cannot be reassigned")
	assert.Equal(t, "Senior Go Developer", updated.Title)

	w = s.do(t, http.MethodGet, "/api/jobs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Job](t, w), 1)

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/jobs/job-1", emp, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/jobs/job-1", "", nil).Code)
}

func TestApplicationWrites(t *testing.T) {
	s := newTestServer(t, nil)
	emp := s.addUser(t, "emp1", models.UserRoleEmployer)
	seeker := s.addUser(t, "seek1", models.UserRoleSeeker)
	stranger := s.addUser(t, "seek2", models.UserRoleSeeker)
	require.NoError(t, memJobs{s.db}.Create(nil, &models.Job{ID: "job-1", EmployerID: "emp1", Title: "Go"}))

	w := s.do(t, http.MethodPost, "/api/applications", seeker, map[string]any{"id": "app-1", "jobId": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/applications", seeker, map[string]any{"id": "app-1", "jobId": "job-1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, models.StatusApplied, decode[models.Application](t, w).Status)

	move := map[string]any{"status": "screening", "timeline": []map[string]any{{"status": "applied"}, {"status": "screening"}}}
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPut, "/api/applications/app-1", stranger, move).Code)

	w = s.do(t, http.MethodPut, "/api/applications/app-1", emp, move)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Application](t, w)
	assert.Equal(t, "seek1", got.SeekerID)
	assert.Len(t, got.Timeline, 2)

	bad := map[string]any{"status": "hired"}
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/api/applications/app-1", emp, bad).Code)
}

func TestDeleteUserCascades(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.addUser(t, "admin1", models.UserRoleAdmin)
	s.addUser(t, "emp1", models.UserRoleEmployer)
	seeker := s.addUser(t, "seek1", models.UserRoleSeeker)
	require.NoError(t, memJobs{s.db}.Create(nil, &models.Job{ID: "job-1", EmployerID: "emp1"}))
	require.NoError(t, memJobs{s.db}.Create(nil, &models.Job{ID: "job-2", EmployerID: "admin1"}))
	require.NoError(t, memApps{s.db}.Create(nil, &models.Application{ID: "a1", JobID: "job-1", SeekerID: "seek1"}))
	require.NoError(t, memApps{s.db}.Create(nil, &models.Application{ID: "a2", JobID: "job-2", SeekerID: "seek1"}))

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/users/emp1", seeker, nil).Code)
	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/users/emp1", admin, nil).Code)

	jobs := decode[[]models.Job](t, s.do(t, http.MethodGet, "/api/jobs", "", nil))
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-2", jobs[0].ID)
	apps := decode[[]models.Application](t, s.do(t, http.MethodGet, "/api/applications", "", nil))
	require.Len(t, apps, 1)
	assert.Equal(t, "a2", apps[0].ID)
}

func TestUserUpdateKeepsPrivilegedFields(t *testing.T) {
	s := newTestServer(t, nil)
	seeker := s.addUser(t, "seek1", models.UserRoleSeeker)

	w := s.do(t, http.MethodPut, "/api/users/seek1", seeker, map[string]any{
		"name": "Renamed", "role": "admin", "status": "active", "verificationStatus": "verified",
	})
	require.Equal(t, http.StatusOK, w.Code)
	u := decode[models.User](t, w)
	assert.Equal(t, "Renamed", u.Name)
	assert.Equal(t, models.UserRoleSeeker, u.Role)
	assert.NotEqual(t, models.VerificationVerified, u.VerificationStatus)

	w = s.do(t, http.MethodPut, "/api/users/seek1", seeker, map[string]any{"name": "Renamed", "verificationStatus": "pending"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.VerificationPending, decode[models.User](t, w).VerificationStatus)

	stored, _ := memUsers{s.db}.FindByID(nil, "seek1")
	assert.True(t, auth.CheckPasswordHash("secret1", stored.PasswordHash), "password survives profile update")
}

func TestUpload(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.addUser(t, "seek1", models.UserRoleSeeker)

	upload := func(content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "cv.pdf")
		require.NoError(t, err)
		_, _ = part.Write(content)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	w := upload([]byte("%PDF-1.4 resume"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode[gateway.UploadPayload](t, w)
	assert.Contains(t, body.URL, "/uploads/seek1/")
	assert.Equal(t, "cv.pdf", body.Name)

	w = s.do(t, http.MethodGet, body.URL, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4 resume", w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/uploads/seek1/missing.pdf", "", nil).Code)

	assert.Equal(t, http.StatusRequestEntityTooLarge, upload(bytes.Repeat([]byte("x"), 2048)).Code)
}

func TestAIGenerate(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.addUser(t, "emp1", models.UserRoleEmployer)

	w := s.do(t, http.MethodPost, "/api/ai/generate", token, map[string]any{"prompt": "job description"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "draft: job description", decode[gateway.GeneratePayload](t, w).Text)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/ai/generate", "", map[string]any{"prompt": "x"}).Code)

	off := newTestServer(t, func(d *Deps) { d.AI = stubAI{err: ai.ErrNotConfigured} })
	token = off.addUser(t, "emp1", models.UserRoleEmployer)
	assert.Equal(t, http.StatusServiceUnavailable, off.do(t, http.MethodPost, "/api/ai/generate", token, map[string]any{"prompt": "x"}).Code)
}

func TestAuthRateLimit(t *testing.T) {
	limiter := middleware.NewLimiterStore(1, 1, 0)
	t.Cleanup(limiter.Stop)
	s := newTestServer(t, func(d *Deps) { d.Limiter = limiter })

	body := map[string]any{"email": "nobody@test.dev", "password": "secret1", "role": "seeker"}
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/login", "", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodPost, "/api/login", "", body).Code)

	// лимит не распространяется на остальной API
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/jobs", "", nil).Code)
}

func TestGatewayClientAgainstServer(t *testing.T) {
	s := newTestServer(t, nil)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	client := gateway.NewClient(srv.URL, srv.Client())
	ctx := context.Background()

	reg := client.Register(ctx, gateway.RegisterRequest{ID: "emp-x", Name: "Employer", Email: "emp@test.dev", Password: "secret1", Role: models.UserRoleEmployer})
	require.True(t, reg.OK(), "%v", reg.Failure)
	client.SetToken(reg.Data.Token)

	created := client.Create(ctx, gateway.CollectionJobs, models.Job{ID: "job-x", EmployerID: "emp-x", Title: "Data Engineer", Type: models.JobTypeRemote})
	require.True(t, created.OK(), "%v", created.Failure)

	jobs := client.FetchJobs(ctx)
	require.True(t, jobs.OK())
	require.Len(t, jobs.Data, 1)
	assert.Equal(t, "job-x", jobs.Data[0].ID)

	login := client.Login(ctx, gateway.LoginRequest{Email: "emp@test.dev", Password: "bad-pass", Role: models.UserRoleEmployer})
	require.False(t, login.OK())
	assert.True(t, login.Failure.Status(http.StatusUnauthorized))
	assert.Equal(t, apperrors.CodeInvalidCredentials, login.Failure.Code)

	del := client.Delete(ctx, gateway.CollectionJobs, "job-x")
	assert.True(t, del.OK(), "%v", del.Failure)
}

func TestLiveFeed(t *testing.T) {
	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	s := newTestServer(t, func(d *Deps) { d.Hub = hub })
	emp := s.addUser(t, "emp1", models.UserRoleEmployer)
	srv := httptest.NewServer(s.router)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL+"?token=bogus", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+emp, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	job := map[string]any{"id": "job-live", "title": "Go Developer", "company": "Acme"}
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/jobs", emp, job).Code)
	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/jobs/job-live", emp, nil).Code)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var created, deleted ws.Event
	require.NoError(t, conn.ReadJSON(&created))
	require.NoError(t, conn.ReadJSON(&deleted))

	assert.Equal(t, ws.Event{Collection: "jobs", Action: "created", ID: "job-live"}, ws.Event{Collection: created.Collection, Action: created.Action, ID: created.ID})
	assert.NotNil(t, created.Record)
	assert.Equal(t, "deleted", deleted.Action)
	assert.Nil(t, deleted.Record)

	cancel()
	_, _, err = conn.ReadMessage()
	assert.Error(t, err, "connection closes when the hub stops")
}

func TestAvatarUploadIsShrunk(t *testing.T) {
	s := newTestServer(t, func(d *Deps) { d.UploadLimit = 1 << 20 })
	token := s.addUser(t, "seek1", models.UserRoleSeeker)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 1200, 600))))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("kind", "avatar"))
	part, err := mw.CreateFormFile("file", "me.png")
	require.NoError(t, err)
	_, _ = part.Write(img.Bytes())
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	stored := s.do(t, http.MethodGet, decode[gateway.UploadPayload](t, w).URL, "", nil)
	require.Equal(t, http.StatusOK, stored.Code)
	cfg, err := png.DecodeConfig(stored.Body)
	require.NoError(t, err)
	assert.Equal(t, avatarSide, cfg.Width)
	assert.Equal(t, avatarSide/2, cfg.Height)
}
