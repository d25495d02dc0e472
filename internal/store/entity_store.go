// Package store держит коллекции сущностей в памяти: порядок вставки,
// индекс по id и зеркалирование каждого изменения в PersistentStore.
package store

import (
	"sync"

	"hirehub/internal/models"
	"hirehub/internal/storage"
	"hirehub/pkg/apperrors"
)

// EntityStore - упорядоченная коллекция с уникальными id
type EntityStore[T models.Entity] struct {
	mu      sync.RWMutex
	saveMu  sync.Mutex
	name    string
	key     string
	items   []T
	index   map[string]int
	persist *storage.PersistentStore
}

// New создает пустую коллекцию. key - ключ снимка в persist (может быть nil).
func New[T models.Entity](name, key string, persist *storage.PersistentStore) *EntityStore[T] {
	return &EntityStore[T]{
		name:    name,
		key:     key,
		index:   make(map[string]int),
		persist: persist,
	}
}

func (s *EntityStore[T]) Name() string { return s.name }

// Seed заменяет содержимое целиком (bootstrap) и сохраняет снимок.
// Дубликаты id отбрасываются, побеждает первая запись.
func (s *EntityStore[T]) Seed(items []T) {
	s.mu.Lock()
	s.items = s.items[:0:0]
	s.index = make(map[string]int, len(items))
	for _, item := range items {
		if _, dup := s.index[item.GetID()]; dup {
			continue
		}
		s.index[item.GetID()] = len(s.items)
		s.items = append(s.items, item)
	}
	s.mu.Unlock()
	s.mirror()
}

// LoadSnapshot поднимает коллекцию из persist, иначе берет fallback.
// Возвращает true, если снимок нашелся.
func (s *EntityStore[T]) LoadSnapshot(fallback []T) bool {
	items, ok := storage.Load[[]T](s.persist, s.key)
	if !ok {
		items = fallback
	}
	s.Seed(items)
	return ok
}

// All - копия в порядке вставки
func (s *EntityStore[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *EntityStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *EntityStore[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Filter возвращает элементы, для которых pred истинно, в порядке вставки
func (s *EntityStore[T]) Filter(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, item := range s.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Find - первый элемент, удовлетворяющий pred
func (s *EntityStore[T]) Find(pred func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Insert добавляет в конец. Пустой или повторный id - ошибка.
func (s *EntityStore[T]) Insert(item T) error {
	id := item.GetID()
	if id == "" {
		return apperrors.ErrInvalidOperation(s.name, "entity id is empty")
	}

	s.mu.Lock()
	if _, exists := s.index[id]; exists {
		s.mu.Unlock()
		return apperrors.ErrAlreadyExists(nil).WithDetails(map[string]string{"collection": s.name, "id": id})
	}
	s.index[id] = len(s.items)
	s.items = append(s.items, item)
	s.mu.Unlock()

	s.mirror()
	return nil
}

// Replace полностью заменяет запись с тем же id
func (s *EntityStore[T]) Replace(item T) bool {
	s.mu.Lock()
	i, ok := s.index[item.GetID()]
	if ok {
		s.items[i] = item
	}
	s.mu.Unlock()

	if ok {
		s.mirror()
	}
	return ok
}

// Update применяет fn к копии записи и сохраняет результат.
// fn не должна менять id.
func (s *EntityStore[T]) Update(id string, fn func(*T)) (T, bool) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		var zero T
		return zero, false
	}
	item := s.items[i]
	fn(&item)
	s.items[i] = item
	s.mu.Unlock()

	s.mirror()
	return item, true
}

// UpdateWhere применяет fn ко всем подходящим записям, возвращает число изменений.
// fn сообщает, изменилось ли что-то.
func (s *EntityStore[T]) UpdateWhere(pred func(T) bool, fn func(*T) bool) int {
	s.mu.Lock()
	changed := 0
	for i := range s.items {
		if !pred(s.items[i]) {
			continue
		}
		item := s.items[i]
		if fn(&item) {
			s.items[i] = item
			changed++
		}
	}
	s.mu.Unlock()

	if changed > 0 {
		s.mirror()
	}
	return changed
}

// Remove удаляет по id
func (s *EntityStore[T]) Remove(id string) (T, bool) {
	removed := s.RemoveWhere(func(item T) bool { return item.GetID() == id })
	if len(removed) == 0 {
		var zero T
		return zero, false
	}
	return removed[0], true
}

// RemoveWhere удаляет все подходящие записи, порядок остальных сохраняется
func (s *EntityStore[T]) RemoveWhere(pred func(T) bool) []T {
	s.mu.Lock()
	var removed []T
	kept := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if pred(item) {
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}
	if len(removed) > 0 {
		s.items = kept
		s.reindex()
	}
	s.mu.Unlock()

	if len(removed) > 0 {
		s.mirror()
	}
	return removed
}

func (s *EntityStore[T]) reindex() {
	s.index = make(map[string]int, len(s.items))
	for i, item := range s.items {
		s.index[item.GetID()] = i
	}
}

// mirror пишет снимок в persist. Вызывается после снятия блокировки записи.
func (s *EntityStore[T]) mirror() {
	if s.persist == nil || s.key == "" {
		return
	}
	// снимок берется под saveMu, поэтому более поздняя запись не перетрется старой
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.persist.Save(s.key, s.All())
}
