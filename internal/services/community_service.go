package services

import (
	"strings"

	"gorm.io/datatypes"

	"hirehub/internal/models"
	"hirehub/internal/store"
	"hirehub/pkg/apperrors"
)

type CommunityService struct {
	env *Env
}

func NewCommunityService(env *Env) *CommunityService {
	return &CommunityService{env: env}
}

func (s *CommunityService) AddPost(authorID string, in models.PostInput) (models.CommunityPost, error) {
	if err := s.env.validate(in); err != nil {
		return models.CommunityPost{}, err
	}
	post := models.CommunityPost{
		ID:       models.NewID(),
		AuthorID: authorID,
		Content:  in.Content,
		Tags:     datatypes.JSONSlice[string](append([]string(nil), in.Tags...)),
		Likes:    datatypes.JSONSlice[string]{},
		Comments: datatypes.JSONSlice[models.Comment]{},
		Date:     s.env.now(),
	}
	if err := s.env.Stores.CommunityPosts.Insert(post); err != nil {
		return models.CommunityPost{}, err
	}
	s.env.track(store.NameCommunityPosts, ActionCreated, post.ID, post)
	return post, nil
}

// DeletePost - автор или админ
func (s *CommunityService) DeletePost(actor models.User, id string) error {
	post, ok := s.env.Stores.CommunityPosts.Get(id)
	if !ok {
		return apperrors.EntityNotFound("post", id)
	}
	if post.AuthorID != actor.ID && actor.Role != models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}
	s.env.Stores.CommunityPosts.Remove(id)
	s.env.track(store.NameCommunityPosts, ActionDeleted, id, nil)
	return nil
}

// ToggleLike - симметричное переключение лайка, возвращает новое состояние
func (s *CommunityService) ToggleLike(postID, userID string) (bool, error) {
	var liked bool
	updated, ok := s.env.Stores.CommunityPosts.Update(postID, func(p *models.CommunityPost) {
		p.Likes, liked = models.ToggleMember(p.Likes, userID)
	})
	if !ok {
		return false, apperrors.EntityNotFound("post", postID)
	}
	s.env.track(store.NameCommunityPosts, ActionUpdated, postID, updated)
	return liked, nil
}

// AddComment дописывает комментарий в конец
func (s *CommunityService) AddComment(postID, authorID, content string) (models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, apperrors.NewBadRequestError("Comment is empty")
	}
	c := models.Comment{
		ID:       models.NewID(),
		AuthorID: authorID,
		Content:  content,
		Date:     s.env.now(),
	}
	updated, ok := s.env.Stores.CommunityPosts.Update(postID, func(p *models.CommunityPost) {
		comments := make([]models.Comment, 0, len(p.Comments)+1)
		comments = append(comments, p.Comments...)
		p.Comments = append(comments, c)
	})
	if !ok {
		return models.Comment{}, apperrors.EntityNotFound("post", postID)
	}
	s.env.track(store.NameCommunityPosts, ActionUpdated, postID, updated)
	return c, nil
}
