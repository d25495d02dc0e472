package app

import (
	"context"
	"io"

	"hirehub/internal/gateway"
	"hirehub/internal/logger"
	"hirehub/internal/models"
	"hirehub/internal/services"
	"hirehub/pkg/apperrors"
)

// Все действия возвращают значение или apperrors.Result и никогда не паникуют наружу.
// Действие без сессии дает NO_SESSION (переключатели возвращают false).

func result(id string, err error) apperrors.Result {
	if err != nil {
		return apperrors.ResultFrom(err)
	}
	return apperrors.OK(id)
}

// withUser - действие от имени текущего пользователя
func (e *Engine) withUser(fn func(u models.User) (string, error)) apperrors.Result {
	var id string
	err := e.do(func() error {
		u, err := e.svc.Session.Require()
		if err != nil {
			return err
		}
		id, err = fn(u)
		return err
	})
	return result(id, err)
}

// withRole - то же, но только для перечисленных ролей
func (e *Engine) withRole(roles []models.UserRole, fn func(u models.User) (string, error)) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		for _, r := range roles {
			if u.Role == r {
				return fn(u)
			}
		}
		return "", apperrors.ErrInsufficientPermissions
	})
}

var (
	adminOnly    = []models.UserRole{models.UserRoleAdmin}
	employerSide = []models.UserRole{models.UserRoleEmployer, models.UserRoleAdmin}
	seekerOnly   = []models.UserRole{models.UserRoleSeeker}
)

func (e *Engine) toggle(fn func(u models.User) (bool, error)) bool {
	var on bool
	_ = e.do(func() error {
		u, err := e.svc.Session.Require()
		if err != nil {
			return err
		}
		on, err = fn(u)
		return err
	})
	return on
}

func (e *Engine) count(fn func(u models.User) int) int {
	var n int
	_ = e.do(func() error {
		u, err := e.svc.Session.Require()
		if err != nil {
			return err
		}
		n = fn(u)
		return nil
	})
	return n
}

// --- Session ---

// Вход, регистрация и подтверждение ждут сервер вне блокировки движка,
// под блокировкой только применяется ответ.

func (e *Engine) Login(ctx context.Context, role models.UserRole, email, password string) apperrors.Result {
	ctx = logger.WithAction(ctx, "login")
	in := models.LoginInput{Role: role, Email: email, Password: password}
	at, err := e.svc.Session.FetchLogin(ctx, in)
	if err != nil {
		return apperrors.ResultFrom(err)
	}

	var id string
	err = e.do(func() error {
		u, err := e.svc.Session.ApplyLogin(ctx, in, at)
		id = u.ID
		return err
	})
	return result(id, err)
}

func (e *Engine) Register(ctx context.Context, in models.RegisterInput) apperrors.Result {
	ctx = logger.WithAction(ctx, "register")
	at, err := e.svc.Session.FetchRegister(ctx, in)
	if err != nil {
		return apperrors.ResultFrom(err)
	}

	var out services.RegisterOutcome
	err = e.do(func() error {
		var err error
		out, err = e.svc.Session.ApplyRegister(ctx, in, at)
		return err
	})
	if err != nil {
		return apperrors.ResultFrom(err)
	}
	if out.RequireVerification {
		msg := out.Message
		if msg == "" {
			msg = "Enter the verification code sent to " + in.Email
		}
		return apperrors.Result{Success: true, Message: msg, Hint: apperrors.HintVerifyOTP}
	}
	return apperrors.OK(out.User.ID)
}

func (e *Engine) VerifyOTP(ctx context.Context, email, code string) apperrors.Result {
	ctx = logger.WithAction(ctx, "verify_otp")
	at, err := e.svc.Session.FetchVerifyOTP(ctx, models.VerifyOTPInput{Email: email, Code: code})
	if err != nil {
		return apperrors.ResultFrom(err)
	}

	var id string
	err = e.do(func() error {
		u, err := e.svc.Session.ApplyVerifyOTP(at)
		id = u.ID
		return err
	})
	return result(id, err)
}

func (e *Engine) Logout() {
	_ = e.do(func() error {
		e.svc.Session.Logout()
		return nil
	})
}

// --- Users ---

func (e *Engine) UpdateUserProfile(in models.UserUpdate) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		_, err := e.svc.Users.UpdateProfile(u.ID, in)
		return u.ID, err
	})
}

func (e *Engine) AddUserDocument(in models.DocumentInput) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		doc, err := e.svc.Users.AddDocument(u.ID, in)
		return doc.ID, err
	})
}

// UploadDocument загружает файл через сервер и прикрепляет его к профилю.
// Загрузка ждет сеть, поэтому идет до блокировки движка.
func (e *Engine) UploadDocument(ctx context.Context, name string, r io.Reader) apperrors.Result {
	if _, ok := e.CurrentUser(); !ok {
		return apperrors.ResultFrom(apperrors.ErrNoSession)
	}
	if e.IsOffline() {
		return apperrors.ResultFrom(apperrors.ErrGatewayUnreachable(nil))
	}
	res := e.remote.Upload(ctx, name, r)
	if !res.OK() {
		return apperrors.ResultFrom(res.Failure.AppError())
	}
	return e.AddUserDocument(models.DocumentInput{Name: name, URL: res.Data.URL})
}

func (e *Engine) RemoveUserDocument(docID string) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		return docID, e.svc.Users.RemoveDocument(u.ID, docID)
	})
}

// DeleteUser - админ или сам пользователь
func (e *Engine) DeleteUser(id string) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		if u.Role != models.UserRoleAdmin && u.ID != id {
			return "", apperrors.ErrInsufficientPermissions
		}
		return id, e.svc.Users.Delete(u, id)
	})
}

func (e *Engine) SetUserStatus(id string, status models.UserStatus) apperrors.Result {
	return e.withRole(adminOnly, func(u models.User) (string, error) {
		_, err := e.svc.Users.SetStatus(u, id, status)
		return id, err
	})
}

func (e *Engine) RequestVerification() apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		_, err := e.svc.Users.RequestVerification(u.ID)
		return u.ID, err
	})
}

func (e *Engine) SetVerificationStatus(id string, status models.VerificationStatus) apperrors.Result {
	return e.withRole(adminOnly, func(u models.User) (string, error) {
		_, err := e.svc.Users.SetVerification(u, id, status)
		return id, err
	})
}

func (e *Engine) ToggleFollowCompany(companyID string) bool {
	return e.toggle(func(u models.User) (bool, error) {
		return e.svc.Users.ToggleFollow(u.ID, companyID)
	})
}

func (e *Engine) ToggleSaveCandidate(seekerID string) bool {
	return e.toggle(func(u models.User) (bool, error) {
		if u.Role != models.UserRoleEmployer {
			return false, apperrors.ErrInsufficientPermissions
		}
		return e.svc.Users.ToggleSaveCandidate(u.ID, seekerID)
	})
}

// --- Jobs ---

func (e *Engine) AddJob(in models.JobInput) apperrors.Result {
	return e.withRole(employerSide, func(u models.User) (string, error) {
		job, err := e.svc.Jobs.Add(u, in)
		return job.ID, err
	})
}

func (e *Engine) UpdateJob(id string, in models.JobInput) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		if err := e.canManageJob(u, id); err != nil {
			return "", err
		}
		_, err := e.svc.Jobs.Update(id, in)
		return id, err
	})
}

func (e *Engine) DeleteJob(id string) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		if err := e.canManageJob(u, id); err != nil {
			return "", err
		}
		return id, e.svc.Jobs.Delete(id)
	})
}

func (e *Engine) canManageJob(u models.User, jobID string) error {
	job, ok := e.stores.Jobs.Get(jobID)
	if !ok {
		return apperrors.EntityNotFound("job", jobID)
	}
	if !services.CanManage(u, job) {
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}

func (e *Engine) ToggleSaveJob(jobID string) bool {
	return e.toggle(func(models.User) (bool, error) {
		return e.svc.Session.ToggleSaveJob(jobID)
	})
}

// --- Applications ---

func (e *Engine) SubmitApplication(in models.ApplicationInput) apperrors.Result {
	return e.withRole(seekerOnly, func(u models.User) (string, error) {
		app, err := e.svc.Applications.Submit(u, in)
		return app.ID, err
	})
}

// UpdateApplicationStatus - работодатель вакансии или админ
func (e *Engine) UpdateApplicationStatus(id string, status models.ApplicationStatus, extra models.TransitionExtra) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		if err := e.canReview(u, id); err != nil {
			return "", err
		}
		_, err := e.svc.Applications.Transition(id, status, extra)
		return id, err
	})
}

func (e *Engine) UpdateApplicationMeta(id string, meta models.ApplicationMeta) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		if err := e.canReview(u, id); err != nil {
			return "", err
		}
		_, err := e.svc.Applications.UpdateMeta(id, meta)
		return id, err
	})
}

// WithdrawApplication - только соискатель, который откликался
func (e *Engine) WithdrawApplication(id string) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		app, ok := e.stores.Applications.Get(id)
		if !ok {
			return "", apperrors.EntityNotFound("application", id)
		}
		if app.SeekerID != u.ID {
			return "", apperrors.ErrInsufficientPermissions
		}
		return id, e.svc.Applications.Withdraw(id)
	})
}

func (e *Engine) canReview(u models.User, appID string) error {
	app, ok := e.stores.Applications.Get(appID)
	if !ok {
		return apperrors.EntityNotFound("application", appID)
	}
	if u.Role == models.UserRoleAdmin {
		return nil
	}
	job, ok := e.stores.Jobs.Get(app.JobID)
	if !ok || job.EmployerID != u.ID {
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}

// --- Notifications ---

// MarkNotificationRead возвращает число измененных записей (0 при повторе)
func (e *Engine) MarkNotificationRead(id string) int {
	return e.count(func(u models.User) int {
		n, ok := e.stores.Notifications.Get(id)
		if !ok || n.UserID != u.ID {
			return 0
		}
		return e.svc.Notifications.MarkRead(id)
	})
}

func (e *Engine) MarkAllNotificationsRead() int {
	return e.count(func(u models.User) int {
		return e.svc.Notifications.MarkAllRead(u.ID)
	})
}

// --- Chat ---

func (e *Engine) SendChatMessage(receiverID, content string) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		msg, err := e.svc.Chat.Send(u.ID, receiverID, content)
		return msg.ID, err
	})
}

func (e *Engine) MarkConversationRead(otherID string) int {
	return e.count(func(u models.User) int {
		return e.svc.Chat.MarkConversationRead(u.ID, otherID)
	})
}

// --- Community ---

func (e *Engine) AddCommunityPost(in models.PostInput) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		post, err := e.svc.Community.AddPost(u.ID, in)
		return post.ID, err
	})
}

func (e *Engine) DeleteCommunityPost(id string) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		return id, e.svc.Community.DeletePost(u, id)
	})
}

func (e *Engine) ToggleLikePost(postID string) bool {
	return e.toggle(func(u models.User) (bool, error) {
		return e.svc.Community.ToggleLike(postID, u.ID)
	})
}

func (e *Engine) AddComment(postID, content string) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		c, err := e.svc.Community.AddComment(postID, u.ID, content)
		return c.ID, err
	})
}

// --- Reviews, blog, reports, announcements, alerts ---

func (e *Engine) AddReview(in models.ReviewInput) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		r, err := e.svc.Content.AddReview(u.ID, in)
		return r.ID, err
	})
}

func (e *Engine) DeleteReview(id string) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		return id, e.svc.Content.DeleteReview(u, id)
	})
}

func (e *Engine) AddBlogPost(in models.BlogPostInput) apperrors.Result {
	return e.withRole(adminOnly, func(u models.User) (string, error) {
		b, err := e.svc.Content.AddBlogPost(u.ID, in)
		return b.ID, err
	})
}

func (e *Engine) UpdateBlogPost(id string, in models.BlogPostInput) apperrors.Result {
	return e.withRole(adminOnly, func(models.User) (string, error) {
		_, err := e.svc.Content.UpdateBlogPost(id, in)
		return id, err
	})
}

func (e *Engine) DeleteBlogPost(id string) apperrors.Result {
	return e.withRole(adminOnly, func(models.User) (string, error) {
		return id, e.svc.Content.DeleteBlogPost(id)
	})
}

func (e *Engine) AddReport(in models.ReportInput) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		r, err := e.svc.Content.AddReport(u.ID, in)
		return r.ID, err
	})
}

func (e *Engine) SetReportStatus(id string, status models.ReportStatus) apperrors.Result {
	return e.withRole(adminOnly, func(u models.User) (string, error) {
		_, err := e.svc.Content.SetReportStatus(u, id, status)
		return id, err
	})
}

func (e *Engine) AddAnnouncement(in models.AnnouncementInput) apperrors.Result {
	return e.withRole(adminOnly, func(models.User) (string, error) {
		a, err := e.svc.Content.AddAnnouncement(in)
		return a.ID, err
	})
}

func (e *Engine) DeleteAnnouncement(id string) apperrors.Result {
	return e.withRole(adminOnly, func(models.User) (string, error) {
		return id, e.svc.Content.DeleteAnnouncement(id)
	})
}

func (e *Engine) AddJobAlert(in models.JobAlertInput) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		a, err := e.svc.Content.AddJobAlert(u.ID, in)
		return a.ID, err
	})
}

func (e *Engine) DeleteJobAlert(id string) apperrors.Result {
	return e.withUser(func(u models.User) (string, error) {
		return id, e.svc.Content.DeleteJobAlert(u.ID, id)
	})
}

// --- AI ---

// Assist - текст от модели через сервер. Только онлайн.
func (e *Engine) Assist(ctx context.Context, prompt string) (string, apperrors.Result) {
	if _, ok := e.CurrentUser(); !ok {
		return "", apperrors.ResultFrom(apperrors.ErrNoSession)
	}
	if e.IsOffline() {
		return "", apperrors.ResultFrom(apperrors.ErrGatewayUnreachable(nil))
	}
	res := e.remote.Generate(ctx, gateway.GenerateRequest{Prompt: prompt})
	if !res.OK() {
		return "", apperrors.ResultFrom(res.Failure.AppError())
	}
	return res.Data.Text, apperrors.OK("")
}
