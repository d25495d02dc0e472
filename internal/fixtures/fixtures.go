// Package fixtures - демо-данные, которые поднимаются без сервера и без снимка
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"hirehub/internal/models"
)

//go:embed data/*.json
var files embed.FS

// Set - полный набор демо-данных
type Set struct {
	Users          []models.User
	Jobs           []models.Job
	Applications   []models.Application
	CommunityPosts []models.CommunityPost
	BlogPosts      []models.BlogPost
	Announcements  []models.Announcement
}

func decode[T any](name string) ([]T, error) {
	raw, err := files.ReadFile("data/" + name)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("fixtures %s: %w", name, err)
	}
	return out, nil
}

// Load разбирает встроенные файлы. Каждый вызов возвращает независимые копии.
func Load() (*Set, error) {
	var (
		s   Set
		err error
	)
	if s.Users, err = decode[models.User]("users.json"); err != nil {
		return nil, err
	}
	if s.Jobs, err = decode[models.Job]("jobs.json"); err != nil {
		return nil, err
	}
	if s.Applications, err = decode[models.Application]("applications.json"); err != nil {
		return nil, err
	}
	if s.CommunityPosts, err = decode[models.CommunityPost]("community_posts.json"); err != nil {
		return nil, err
	}
	if s.BlogPosts, err = decode[models.BlogPost]("blog_posts.json"); err != nil {
		return nil, err
	}
	if s.Announcements, err = decode[models.Announcement]("announcements.json"); err != nil {
		return nil, err
	}
	return &s, nil
}

// MustLoad - для bootstrap: битые встроенные данные это ошибка сборки
func MustLoad() *Set {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

// DemoUser ищет демо-аккаунт по email и роли (без учета регистра email)
func (s *Set) DemoUser(email string, role models.UserRole) (models.User, bool) {
	for _, u := range s.Users {
		if strings.EqualFold(u.Email, email) && u.Role == role {
			return u, true
		}
	}
	return models.User{}, false
}
