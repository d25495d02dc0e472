package services

import (
	"fmt"

	"hirehub/internal/models"
	"hirehub/internal/store"
	"hirehub/pkg/apperrors"
)

// ContentService - второстепенные коллекции: отзывы, блог, жалобы, объявления, подписки на вакансии.
// Кроме уникальности id инвариантов нет.
type ContentService struct {
	env      *Env
	activity *ActivityService
}

func NewContentService(env *Env, activity *ActivityService) *ContentService {
	return &ContentService{env: env, activity: activity}
}

// --- Reviews ---

func (s *ContentService) AddReview(authorID string, in models.ReviewInput) (models.Review, error) {
	if err := s.env.validate(in); err != nil {
		return models.Review{}, err
	}
	r := models.Review{
		ID:        models.NewID(),
		CompanyID: in.CompanyID,
		AuthorID:  authorID,
		Rating:    in.Rating,
		Title:     in.Title,
		Content:   in.Content,
		Date:      s.env.now(),
	}
	if err := s.env.Stores.Reviews.Insert(r); err != nil {
		return models.Review{}, err
	}
	s.env.track(store.NameReviews, ActionCreated, r.ID, r)
	return r, nil
}

func (s *ContentService) DeleteReview(actor models.User, id string) error {
	r, ok := s.env.Stores.Reviews.Get(id)
	if !ok {
		return apperrors.EntityNotFound("review", id)
	}
	if r.AuthorID != actor.ID && actor.Role != models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}
	s.env.Stores.Reviews.Remove(id)
	s.env.track(store.NameReviews, ActionDeleted, id, nil)
	return nil
}

// CompanyRating - средняя оценка компании и число отзывов
func (s *ContentService) CompanyRating(companyID string) (float64, int) {
	reviews := s.env.Stores.Reviews.Filter(func(r models.Review) bool { return r.CompanyID == companyID })
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews)
}

// --- Blog ---

func (s *ContentService) AddBlogPost(authorID string, in models.BlogPostInput) (models.BlogPost, error) {
	if err := s.env.validate(in); err != nil {
		return models.BlogPost{}, err
	}
	b := models.BlogPost{
		ID:       models.NewID(),
		AuthorID: authorID,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Image:    in.Image,
		Date:     s.env.now(),
	}
	if err := s.env.Stores.BlogPosts.Insert(b); err != nil {
		return models.BlogPost{}, err
	}
	s.env.track(store.NameBlogPosts, ActionCreated, b.ID, b)
	return b, nil
}

func (s *ContentService) UpdateBlogPost(id string, in models.BlogPostInput) (models.BlogPost, error) {
	if err := s.env.validate(in); err != nil {
		return models.BlogPost{}, err
	}
	updated, ok := s.env.Stores.BlogPosts.Update(id, func(b *models.BlogPost) {
		b.Title = in.Title
		b.Content = in.Content
		b.Category = in.Category
		b.Image = in.Image
	})
	if !ok {
		return models.BlogPost{}, apperrors.EntityNotFound("blog_post", id)
	}
	s.env.track(store.NameBlogPosts, ActionUpdated, id, updated)
	return updated, nil
}

func (s *ContentService) DeleteBlogPost(id string) error {
	if _, ok := s.env.Stores.BlogPosts.Remove(id); !ok {
		return apperrors.EntityNotFound("blog_post", id)
	}
	s.env.track(store.NameBlogPosts, ActionDeleted, id, nil)
	return nil
}

// --- Reports ---

func (s *ContentService) AddReport(reporterID string, in models.ReportInput) (models.Report, error) {
	if err := s.env.validate(in); err != nil {
		return models.Report{}, err
	}
	r := models.Report{
		ID:         models.NewID(),
		ReporterID: reporterID,
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		Reason:     in.Reason,
		Status:     models.ReportStatusOpen,
		Date:       s.env.now(),
	}
	if err := s.env.Stores.Reports.Insert(r); err != nil {
		return models.Report{}, err
	}
	s.env.track(store.NameReports, ActionCreated, r.ID, r)
	return r, nil
}

func (s *ContentService) SetReportStatus(actor models.User, id string, status models.ReportStatus) (models.Report, error) {
	if !status.Valid() {
		return models.Report{}, apperrors.ErrInvalidStatus("report", fmt.Sprintf("unknown report status %q", status))
	}
	updated, ok := s.env.Stores.Reports.Update(id, func(r *models.Report) { r.Status = status })
	if !ok {
		return models.Report{}, apperrors.EntityNotFound("report", id)
	}
	s.env.track(store.NameReports, ActionUpdated, id, updated)
	if status != models.ReportStatusOpen {
		s.activity.Log(actor.ID, ActivityReportResolved, fmt.Sprintf("%s %s: %s", updated.TargetType, updated.TargetID, status))
	}
	return updated, nil
}

// --- Announcements ---

func (s *ContentService) AddAnnouncement(in models.AnnouncementInput) (models.Announcement, error) {
	if err := s.env.validate(in); err != nil {
		return models.Announcement{}, err
	}
	audience := in.Audience
	if audience == "" {
		audience = "all"
	}
	a := models.Announcement{
		ID:       models.NewID(),
		Title:    in.Title,
		Message:  in.Message,
		Audience: audience,
		Date:     s.env.now(),
	}
	if err := s.env.Stores.Announcements.Insert(a); err != nil {
		return models.Announcement{}, err
	}
	s.env.track(store.NameAnnouncements, ActionCreated, a.ID, a)
	return a, nil
}

func (s *ContentService) DeleteAnnouncement(id string) error {
	if _, ok := s.env.Stores.Announcements.Remove(id); !ok {
		return apperrors.EntityNotFound("announcement", id)
	}
	s.env.track(store.NameAnnouncements, ActionDeleted, id, nil)
	return nil
}

// AnnouncementsFor - объявления для роли пользователя
func (s *ContentService) AnnouncementsFor(role models.UserRole) []models.Announcement {
	return s.env.Stores.Announcements.Filter(func(a models.Announcement) bool {
		return a.Audience == "" || a.Audience == "all" || a.Audience == string(role)
	})
}

// --- Job alerts ---

func (s *ContentService) AddJobAlert(userID string, in models.JobAlertInput) (models.JobAlert, error) {
	if err := s.env.validate(in); err != nil {
		return models.JobAlert{}, err
	}
	frequency := in.Frequency
	if frequency == "" {
		frequency = "instant"
	}
	a := models.JobAlert{
		ID:        models.NewID(),
		UserID:    userID,
		Keywords:  in.Keywords,
		Location:  in.Location,
		Frequency: frequency,
		Date:      s.env.now(),
	}
	if err := s.env.Stores.JobAlerts.Insert(a); err != nil {
		return models.JobAlert{}, err
	}
	s.env.track(store.NameJobAlerts, ActionCreated, a.ID, a)
	return a, nil
}

// DeleteJobAlert - только владелец
func (s *ContentService) DeleteJobAlert(userID, id string) error {
	a, ok := s.env.Stores.JobAlerts.Get(id)
	if !ok {
		return apperrors.EntityNotFound("job_alert", id)
	}
	if a.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}
	s.env.Stores.JobAlerts.Remove(id)
	s.env.track(store.NameJobAlerts, ActionDeleted, id, nil)
	return nil
}
