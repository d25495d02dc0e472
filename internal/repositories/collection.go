package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// collection - общий CRUD по строковому первичному ключу
type collection[T any] struct {
	// omit - колонки, которые PUT не перезаписывает
	omit []string
}

func (c collection[T]) list(db *gorm.DB, order string) ([]T, error) {
	var out []T
	if err := db.Order(order).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (c collection[T]) find(db *gorm.DB, id string) (*T, error) {
	var rec T
	err := db.First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c collection[T]) create(db *gorm.DB, rec *T) error {
	return db.Create(rec).Error
}

func (c collection[T]) update(db *gorm.DB, id string, rec *T) error {
	q := db.Model(new(T)).Where("id = ?", id).Select("*").Omit(append([]string{"id"}, c.omit...)...)
	res := q.Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (c collection[T]) delete(db *gorm.DB, id string) error {
	res := db.Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
