package usecase

import (
	"fmt"

	"github.com/calories/backend/internal/domain"
	"github.com/calories/backend/internal/infrastructure/cache"
)

// Cache keys shared by the entity services
const (
	keyAll = "all"
)

func idKey(id int64) string {
	return fmt.Sprintf("id:%d", id)
}

// readThrough serves a list from the cache, loading and caching it on a miss
func readThrough[T any](c domain.NamespacedCache, namespace, key string, load func() ([]T, error)) ([]T, error) {
	if list, ok := cache.GetList[T](c, namespace, key); ok {
		return list, nil
	}
	list, err := load()
	if err != nil {
		return nil, err
	}
	cache.PutList(c, namespace, key, list)
	return list, nil
}

// readOne serves a single entity cached as a one-element list under "id:<id>"
func readOne[T any](c domain.NamespacedCache, namespace string, id int64, load func() (*T, error)) (*T, error) {
	list, err := readThrough(c, namespace, idKey(id), func() ([]T, error) {
		item, err := load()
		if err != nil {
			return nil, err
		}
		return []T{*item}, nil
	})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s with id %d", domain.ErrNotFound, namespace, id)
	}
	item := list[0]
	return &item, nil
}

func validateID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: parameter '%s' must be a positive id, got %d", domain.ErrBadInput, name, id)
	}
	return nil
}
