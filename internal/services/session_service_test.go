package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirehub/internal/gateway"
	"hirehub/internal/gateway/gatewaytest"
	"hirehub/internal/models"
	"hirehub/internal/storage"
	"hirehub/pkg/apperrors"
)

func TestLoginOnlineStoresSessionAndToken(t *testing.T) {
	te := newTestEnv(t)
	server := models.User{ID: "u-remote", Name: "Remote", Email: "remote@demo.com", Role: models.UserRoleSeeker, Status: models.UserStatusActive}
	te.remote.LoginResult = gatewaytest.OK(gateway.AuthPayload{User: &server, Token: "jwt-1"})

	user, err := te.Session.Login(context.Background(), models.LoginInput{Role: models.UserRoleSeeker, Email: "remote@demo.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u-remote", user.ID)

	current, ok := te.Session.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u-remote", current.ID)
	assert.Equal(t, "jwt-1", te.remote.Token())

	persisted, ok := storage.Load[models.User](te.persist, storage.KeyCurrentUser)
	require.True(t, ok)
	assert.Equal(t, "u-remote", persisted.ID)

	_, inStore := te.env.Stores.Users.Get("u-remote")
	assert.True(t, inStore)
	// пользователь пришел с сервера, write-through не нужен
	assert.Zero(t, te.rec.count("users", ActionCreated))
}

func TestLoginFailureHints(t *testing.T) {
	cases := []struct {
		name   string
		result gateway.Result[gateway.AuthPayload]
		code   apperrors.ErrorCode
		hint   apperrors.Hint
	}{
		{"unknown email", gatewaytest.Rejected[gateway.AuthPayload](http.StatusNotFound, "", ""), apperrors.CodeUserNotFound, apperrors.HintRegister},
		{"bad password", gatewaytest.Rejected[gateway.AuthPayload](http.StatusUnauthorized, "", ""), apperrors.CodeInvalidCredentials, apperrors.HintResetPassword},
		{"suspended", gatewaytest.Rejected[gateway.AuthPayload](http.StatusForbidden, "", ""), apperrors.CodeForbidden, apperrors.HintNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			te := newTestEnv(t)
			te.remote.LoginResult = tc.result

			_, err := te.Session.Login(context.Background(), models.LoginInput{Role: models.UserRoleSeeker, Email: "x@demo.com", Password: "p"})
			res := apperrors.ResultFrom(err)
			assert.False(t, res.Success)
			assert.Equal(t, tc.code, res.Code)
			assert.Equal(t, tc.hint, res.Hint)

			_, signedIn := te.Session.CurrentUser()
			assert.False(t, signedIn)
		})
	}
}

func TestLoginRoleMismatchFromServer(t *testing.T) {
	te := newTestEnv(t)
	server := models.User{ID: "emp1", Email: "employer@demo.com", Role: models.UserRoleEmployer}
	te.remote.LoginResult = gatewaytest.OK(gateway.AuthPayload{User: &server, Token: "t"})

	_, err := te.Session.Login(context.Background(), models.LoginInput{Role: models.UserRoleSeeker, Email: "employer@demo.com", Password: "p"})
	assert.ErrorIs(t, err, apperrors.ErrRoleMismatch)
	_, signedIn := te.Session.CurrentUser()
	assert.False(t, signedIn)
}

func TestLoginFallsBackToDemoUsers(t *testing.T) {
	te := newTestEnv(t)
	te.remote.Down = true

	user, err := te.Session.Login(context.Background(), models.LoginInput{Role: models.UserRoleEmployer, Email: "employer@demo.com", Password: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "emp1", user.ID)

	te.Session.Logout()

	_, err = te.Session.Login(context.Background(), models.LoginInput{Role: models.UserRoleSeeker, Email: "employer@demo.com", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrRoleMismatch)

	_, err = te.Session.Login(context.Background(), models.LoginInput{Role: models.UserRoleSeeker, Email: "nobody@demo.com", Password: "x"})
	assert.Equal(t, apperrors.HintRegister, apperrors.ResultFrom(err).Hint)
}

func TestRegisterWithVerificationDoesNotSignIn(t *testing.T) {
	te := newTestEnv(t)
	te.remote.RegisterResult = gatewaytest.OK(gateway.AuthPayload{RequireVerification: true, Message: "code sent"})

	out, err := te.Session.Register(context.Background(), models.RegisterInput{
		Name: "Nina", Email: "nina@demo.com", Password: "secret1", Role: models.UserRoleSeeker,
	})
	require.NoError(t, err)
	assert.True(t, out.RequireVerification)
	assert.Nil(t, out.User)
	_, signedIn := te.Session.CurrentUser()
	assert.False(t, signedIn)

	verified := models.User{ID: "nina", Email: "nina@demo.com", Role: models.UserRoleSeeker, Status: models.UserStatusActive}
	te.remote.VerifyResult = gatewaytest.OK(gateway.AuthPayload{User: &verified, Token: "jwt-nina"})

	user, err := te.Session.VerifyOTP(context.Background(), models.VerifyOTPInput{Email: "nina@demo.com", Code: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "nina", user.ID)
	current, _ := te.Session.CurrentUser()
	assert.Equal(t, "nina", current.ID)
	_, inStore := te.env.Stores.Users.Get("nina")
	assert.True(t, inStore)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	te := newTestEnv(t)
	te.remote.VerifyResult = gatewaytest.Rejected[gateway.AuthPayload](http.StatusUnauthorized, apperrors.CodeInvalidToken, "bad code")

	_, err := te.Session.VerifyOTP(context.Background(), models.VerifyOTPInput{Email: "nina@demo.com", Code: "000000"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)

	_, err = te.Session.VerifyOTP(context.Background(), models.VerifyOTPInput{Email: "nina@demo.com", Code: "12ab"})
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.CodeOf(err))
}

func TestRegisterConflictAndOfflineCreation(t *testing.T) {
	te := newTestEnv(t)
	te.remote.RegisterResult = gatewaytest.Rejected[gateway.AuthPayload](http.StatusConflict, apperrors.CodeEmailExists, "taken")

	in := models.RegisterInput{Name: "Aida", Email: "seeker@demo.com", Password: "secret1", Role: models.UserRoleSeeker}
	_, err := te.Session.Register(context.Background(), in)
	assert.Equal(t, apperrors.CodeEmailExists, apperrors.CodeOf(err))

	te.remote.Down = true
	_, err = te.Session.Register(context.Background(), in)
	assert.Equal(t, apperrors.CodeEmailExists, apperrors.CodeOf(err), "local registry knows the email too")

	in.Email = "fresh@demo.com"
	out, err := te.Session.Register(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.Equal(t, models.UserStatusActive, out.User.Status)
	assert.Equal(t, models.VerificationUnverified, out.User.VerificationStatus)

	current, ok := te.Session.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, out.User.ID, current.ID)
	_, inStore := te.env.Stores.Users.Get(out.User.ID)
	assert.True(t, inStore)
}

func TestLogoutClearsSessionAndSavedJobs(t *testing.T) {
	te := newTestEnv(t)
	te.signIn(t, "seeker1")

	saved, err := te.Session.ToggleSaveJob("job1")
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, []string{"job1"}, te.Session.SavedJobIDs())

	te.Session.Logout()

	_, signedIn := te.Session.CurrentUser()
	assert.False(t, signedIn)
	assert.Empty(t, te.Session.SavedJobIDs())
	for _, key := range te.kv.Keys() {
		assert.NotEqual(t, "test_"+storage.KeyCurrentUser, key)
		assert.NotEqual(t, "test_"+storage.SavedJobsKey("seeker1"), key)
	}

	_, err = te.Session.ToggleSaveJob("job1")
	assert.ErrorIs(t, err, apperrors.ErrNoSession)
}

func TestToggleSaveJobIsSymmetric(t *testing.T) {
	te := newTestEnv(t)
	te.signIn(t, "seeker1")
	before := te.Session.SavedJobIDs()

	_, err := te.Session.ToggleSaveJob("job3")
	require.NoError(t, err)
	again, err := te.Session.ToggleSaveJob("job3")
	require.NoError(t, err)

	assert.False(t, again)
	assert.ElementsMatch(t, before, te.Session.SavedJobIDs())
}

func TestRestoreSession(t *testing.T) {
	te := newTestEnv(t)
	te.signIn(t, "emp1")
	_, err := te.Session.ToggleSaveJob("job3")
	require.NoError(t, err)

	restored := NewSessionService(te.env, te.persist, te.remote, te.detector, nil, te.Activity)
	require.True(t, restored.Restore())
	u, _ := restored.CurrentUser()
	assert.Equal(t, "emp1", u.ID)
	assert.Equal(t, []string{"job3"}, restored.SavedJobIDs())
}
