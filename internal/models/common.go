package models

import (
	"slices"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Entity - все, что хранится в EntityStore, имеет строковый id
type Entity interface {
	GetID() string
}

// NewID генерирует id для локально созданной сущности
func NewID() string {
	return uuid.NewString()
}

// ToggleMember добавляет id в набор или убирает, если он уже есть.
// Возвращает новый срез (исходный не меняется) и новое членство.
func ToggleMember(set datatypes.JSONSlice[string], id string) (datatypes.JSONSlice[string], bool) {
	if slices.Contains(set, id) {
		out := make(datatypes.JSONSlice[string], 0, len(set))
		for _, v := range set {
			if v != id {
				out = append(out, v)
			}
		}
		return out, false
	}
	out := make(datatypes.JSONSlice[string], 0, len(set)+1)
	out = append(out, set...)
	return append(out, id), true
}
