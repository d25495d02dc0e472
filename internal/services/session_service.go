package services

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"gorm.io/datatypes"

	"hirehub/internal/fixtures"
	"hirehub/internal/gateway"
	"hirehub/internal/logger"
	"hirehub/internal/models"
	"hirehub/internal/storage"
	"hirehub/internal/store"
	"hirehub/pkg/apperrors"
)

// NameSavedJobs - события избранных вакансий текущего пользователя
const NameSavedJobs = "saved_jobs"

// RegisterOutcome - итог регистрации. При RequireVerification пользователь еще не вошел.
type RegisterOutcome struct {
	User                *models.User
	RequireVerification bool
	Message             string
}

// SessionService держит текущего пользователя и токен.
// Без сервера вход идет по демо-аккаунтам (email + роль), пароль не проверяется.
type SessionService struct {
	env      *Env
	persist  *storage.PersistentStore
	remote   gateway.Remote
	detector *gateway.Detector
	demo     *fixtures.Set
	activity *ActivityService

	mu        sync.RWMutex
	current   *models.User
	token     string
	savedJobs datatypes.JSONSlice[string]
}

func NewSessionService(
	env *Env,
	persist *storage.PersistentStore,
	remote gateway.Remote,
	detector *gateway.Detector,
	demo *fixtures.Set,
	activity *ActivityService,
) *SessionService {
	return &SessionService{
		env:      env,
		persist:  persist,
		remote:   remote,
		detector: detector,
		demo:     demo,
		activity: activity,
	}
}

// Restore поднимает сессию из persist после перезапуска
func (s *SessionService) Restore() bool {
	user, ok := storage.Load[models.User](s.persist, storage.KeyCurrentUser)
	if !ok || user.ID == "" {
		return false
	}
	token := storage.LoadOr(s.persist, storage.KeySessionToken, "")
	s.begin(user, token)
	return true
}

// CurrentUser - копия текущего пользователя
func (s *SessionService) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// Require - текущий пользователь или ErrNoSession
func (s *SessionService) Require() (models.User, error) {
	u, ok := s.CurrentUser()
	if !ok {
		return models.User{}, apperrors.ErrNoSession
	}
	return u, nil
}

func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// AuthAttempt - ответ сервера на вход или регистрацию, еще не примененный к состоянию.
// Fetch-шаги ходят в сеть без блокировки движка, Apply-шаги меняют коллекции и сессию.
type AuthAttempt struct {
	Payload gateway.AuthPayload
	Failure *gateway.Failure
	// Offline - запрос не отправлялся: режим offline уже зафиксирован
	Offline bool
}

func (a AuthAttempt) unreachable() bool {
	return a.Offline || (a.Failure != nil && a.Failure.Unreachable())
}

func attempt(res gateway.Result[gateway.AuthPayload]) AuthAttempt {
	return AuthAttempt{Payload: res.Data, Failure: res.Failure}
}

// Login - FetchLogin и ApplyLogin подряд
func (s *SessionService) Login(ctx context.Context, in models.LoginInput) (models.User, error) {
	at, err := s.FetchLogin(ctx, in)
	if err != nil {
		return models.User{}, err
	}
	return s.ApplyLogin(ctx, in, at)
}

func (s *SessionService) FetchLogin(ctx context.Context, in models.LoginInput) (AuthAttempt, error) {
	if err := s.env.validate(in); err != nil {
		return AuthAttempt{}, err
	}
	if s.detector.IsOffline() {
		return AuthAttempt{Offline: true}, nil
	}
	return attempt(s.remote.Login(ctx, gateway.LoginRequest{Email: in.Email, Password: in.Password, Role: in.Role})), nil
}

func (s *SessionService) ApplyLogin(ctx context.Context, in models.LoginInput, at AuthAttempt) (models.User, error) {
	if at.unreachable() {
		if !at.Offline {
			logger.CtxWarn(ctx, "login: server unreachable, trying demo accounts", "email", in.Email)
		}
		return s.demoLogin(in)
	}
	if f := at.Failure; f != nil {
		switch {
		case f.Status(http.StatusNotFound):
			return models.User{}, apperrors.ErrUserNotFound.WithHint(apperrors.HintRegister)
		case f.Status(http.StatusUnauthorized):
			return models.User{}, apperrors.ErrInvalidCredentials.WithHint(apperrors.HintResetPassword)
		case f.Status(http.StatusForbidden):
			return models.User{}, apperrors.ErrUserSuspended
		}
		return models.User{}, f.AppError()
	}

	if at.Payload.User != nil && at.Payload.User.Role != in.Role {
		return models.User{}, apperrors.ErrRoleMismatch
	}
	user, err := s.acceptAuth(at.Payload)
	if err != nil {
		return models.User{}, err
	}
	s.finishSignIn(user, at.Payload.Token, ActivityLogin)
	return user, nil
}

// demoLogin ищет пользователя сначала в локальной коллекции, потом среди демо-данных
func (s *SessionService) demoLogin(in models.LoginInput) (models.User, error) {
	sameEmail := func(u models.User) bool { return strings.EqualFold(u.Email, in.Email) }

	candidates := s.env.Stores.Users.Filter(sameEmail)
	if s.demo != nil {
		for _, u := range s.demo.Users {
			if sameEmail(u) {
				candidates = append(candidates, u)
			}
		}
	}
	if len(candidates) == 0 {
		return models.User{}, apperrors.ErrUserNotFound.WithHint(apperrors.HintRegister)
	}

	for _, u := range candidates {
		if u.Role != in.Role {
			continue
		}
		if u.Status == models.UserStatusSuspended {
			return models.User{}, apperrors.ErrUserSuspended
		}
		s.finishSignIn(u, "", ActivityLogin)
		return u, nil
	}
	return models.User{}, apperrors.ErrRoleMismatch
}

// Register - FetchRegister и ApplyRegister подряд
func (s *SessionService) Register(ctx context.Context, in models.RegisterInput) (RegisterOutcome, error) {
	at, err := s.FetchRegister(ctx, in)
	if err != nil {
		return RegisterOutcome{}, err
	}
	return s.ApplyRegister(ctx, in, at)
}

func (s *SessionService) FetchRegister(ctx context.Context, in models.RegisterInput) (AuthAttempt, error) {
	if err := s.env.validate(in); err != nil {
		return AuthAttempt{}, err
	}
	if s.detector.IsOffline() {
		return AuthAttempt{Offline: true}, nil
	}
	return attempt(s.remote.Register(ctx, gateway.RegisterRequest{
		ID:          models.NewID(),
		Name:        in.Name,
		Email:       in.Email,
		Password:    in.Password,
		Role:        in.Role,
		CompanyName: in.CompanyName,
	})), nil
}

func (s *SessionService) ApplyRegister(ctx context.Context, in models.RegisterInput, at AuthAttempt) (RegisterOutcome, error) {
	if at.unreachable() {
		if !at.Offline {
			logger.CtxWarn(ctx, "register: server unreachable, creating local account", "email", in.Email)
		}
		return s.registerLocal(in)
	}
	if f := at.Failure; f != nil {
		if f.Status(http.StatusConflict) {
			return RegisterOutcome{}, apperrors.ErrEmailAlreadyExists.WithHint(apperrors.HintSignIn)
		}
		return RegisterOutcome{}, f.AppError()
	}

	if at.Payload.RequireVerification {
		return RegisterOutcome{RequireVerification: true, Message: at.Payload.Message}, nil
	}

	user, err := s.acceptAuth(at.Payload)
	if err != nil {
		return RegisterOutcome{}, err
	}
	s.finishSignIn(user, at.Payload.Token, ActivityRegister)
	return RegisterOutcome{User: &user}, nil
}

func (s *SessionService) registerLocal(in models.RegisterInput) (RegisterOutcome, error) {
	if _, exists := s.env.Stores.Users.Find(func(u models.User) bool {
		return strings.EqualFold(u.Email, in.Email)
	}); exists {
		return RegisterOutcome{}, apperrors.ErrEmailAlreadyExists.WithHint(apperrors.HintSignIn)
	}

	user := models.User{
		ID:                 models.NewID(),
		Name:               in.Name,
		Email:              in.Email,
		Role:               in.Role,
		Plan:               "free",
		VerificationStatus: models.VerificationUnverified,
		Status:             models.UserStatusActive,
		CompanyName:        in.CompanyName,
		Following:          datatypes.JSONSlice[string]{},
		SavedCandidates:    datatypes.JSONSlice[string]{},
		Documents:          datatypes.JSONSlice[models.UserDocument]{},
		CreatedAt:          s.env.now(),
	}
	if err := s.env.Stores.Users.Insert(user); err != nil {
		return RegisterOutcome{}, err
	}
	// у сервера нет POST /api/users, аккаунт остается локальным
	s.env.note(store.NameUsers, ActionCreated, user.ID)

	s.finishSignIn(user, "", ActivityRegister)
	return RegisterOutcome{User: &user}, nil
}

// VerifyOTP завершает регистрацию с подтверждением почты. Работает только онлайн.
func (s *SessionService) VerifyOTP(ctx context.Context, in models.VerifyOTPInput) (models.User, error) {
	at, err := s.FetchVerifyOTP(ctx, in)
	if err != nil {
		return models.User{}, err
	}
	return s.ApplyVerifyOTP(at)
}

func (s *SessionService) FetchVerifyOTP(ctx context.Context, in models.VerifyOTPInput) (AuthAttempt, error) {
	if err := s.env.validate(in); err != nil {
		return AuthAttempt{}, err
	}
	if s.detector.IsOffline() {
		return AuthAttempt{}, apperrors.ErrGatewayUnreachable(nil)
	}
	return attempt(s.remote.VerifyOTP(ctx, gateway.VerifyOTPRequest{Email: in.Email, Code: in.Code})), nil
}

func (s *SessionService) ApplyVerifyOTP(at AuthAttempt) (models.User, error) {
	if f := at.Failure; f != nil {
		if f.Status(http.StatusUnauthorized) {
			return models.User{}, apperrors.ErrInvalidOTP.WithHint(apperrors.HintVerifyOTP)
		}
		return models.User{}, f.AppError()
	}

	user, err := s.acceptAuth(at.Payload)
	if err != nil {
		return models.User{}, err
	}
	s.finishSignIn(user, at.Payload.Token, ActivityRegister)
	return user, nil
}

// acceptAuth кладет пользователя из ответа сервера в локальную коллекцию
func (s *SessionService) acceptAuth(p gateway.AuthPayload) (models.User, error) {
	if p.User == nil || p.User.ID == "" {
		return models.User{}, apperrors.New(apperrors.CodeExternalServiceError, "auth",
			"Server response has no user", http.StatusBadGateway)
	}
	user := *p.User
	if user.Status == models.UserStatusSuspended {
		return models.User{}, apperrors.ErrUserSuspended
	}

	if s.env.Stores.Users.Replace(user) {
		s.env.note(store.NameUsers, ActionUpdated, user.ID)
	} else if err := s.env.Stores.Users.Insert(user); err == nil {
		s.env.note(store.NameUsers, ActionCreated, user.ID)
	}
	return user, nil
}

func (s *SessionService) finishSignIn(user models.User, token, action string) {
	s.begin(user, token)
	s.persist.Save(storage.KeyCurrentUser, user)
	if token != "" {
		s.persist.Save(storage.KeySessionToken, token)
	} else {
		s.persist.Remove(storage.KeySessionToken)
	}
	s.activity.Log(user.ID, action, user.Email)
	s.env.note("session", ActionUpdated, user.ID)
}

func (s *SessionService) begin(user models.User, token string) {
	saved := storage.LoadOr(s.persist, storage.SavedJobsKey(user.ID), datatypes.JSONSlice[string]{})

	s.mu.Lock()
	s.current = &user
	s.token = token
	s.savedJobs = saved
	s.mu.Unlock()

	s.remote.SetToken(token)
}

// Logout чистит пользователя, токен, кэш избранных вакансий и ключ сессии
func (s *SessionService) Logout() {
	user, ok := s.CurrentUser()
	if !ok {
		return
	}
	s.activity.Log(user.ID, ActivityLogout, user.Email)
	s.end(user.ID)
}

func (s *SessionService) end(userID string) {
	s.mu.Lock()
	s.current = nil
	s.token = ""
	s.savedJobs = nil
	s.mu.Unlock()

	s.remote.SetToken("")
	s.persist.Remove(storage.KeyCurrentUser)
	s.persist.Remove(storage.KeySessionToken)
	s.persist.Remove(storage.SavedJobsKey(userID))
	s.env.note("session", ActionDeleted, userID)
}

// Refresh обновляет сохраненного пользователя, если это текущий
func (s *SessionService) Refresh(user models.User) {
	s.mu.Lock()
	if s.current == nil || s.current.ID != user.ID {
		s.mu.Unlock()
		return
	}
	s.current = &user
	s.mu.Unlock()
	s.persist.Save(storage.KeyCurrentUser, user)
}

// Forget завершает сессию удаленного пользователя
func (s *SessionService) Forget(userID string) {
	if u, ok := s.CurrentUser(); ok && u.ID == userID {
		s.end(userID)
	}
}

// SavedJobIDs - избранные вакансии текущего пользователя
func (s *SessionService) SavedJobIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.savedJobs))
	copy(out, s.savedJobs)
	return out
}

// ToggleSaveJob - симметричное переключение, возвращает новое членство
func (s *SessionService) ToggleSaveJob(jobID string) (bool, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return false, apperrors.ErrNoSession
	}
	userID := s.current.ID
	next, saved := models.ToggleMember(s.savedJobs, jobID)
	s.savedJobs = next
	s.mu.Unlock()

	s.persist.Save(storage.SavedJobsKey(userID), next)
	s.env.note(NameSavedJobs, ActionUpdated, jobID)
	return saved, nil
}
