// Package admins — управление множеством админов и одноразовыми обменными токенами.
// repository.go отвечает за все операции с хранилищем.
// Схема ключей: множество "admins", строки "admin-tokens:<token>" → username с TTL.
package admins

import (
	"context"
	"fmt"
	"time"

	"vetrina.ru/catalog-bot/internal/kv"
)

const (
	adminSetKey    = "admins"
	tokenKeyPrefix = "admin-tokens:"
)

type Repository struct {
	store kv.Store
}

func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// List возвращает всех админов (порядок не определён).
func (r *Repository) List(ctx context.Context) ([]string, error) {
	admins, err := r.store.SetMembers(ctx, adminSetKey)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка админов: %w", err)
	}
	return admins, nil
}

// Add добавляет username в множество. Повторное добавление — no-op.
func (r *Repository) Add(ctx context.Context, username string) error {
	if err := r.store.SetAdd(ctx, adminSetKey, username); err != nil {
		return fmt.Errorf("ошибка добавления админа %s: %w", username, err)
	}
	return nil
}

// Remove удаляет username из множества. Отсутствующий — no-op.
func (r *Repository) Remove(ctx context.Context, username string) error {
	if err := r.store.SetRemove(ctx, adminSetKey, username); err != nil {
		return fmt.Errorf("ошибка удаления админа %s: %w", username, err)
	}
	return nil
}

// PutToken сохраняет обменный токен с привязкой к владельцу и сроком жизни.
func (r *Repository) PutToken(ctx context.Context, token, username string, ttl time.Duration) error {
	if err := r.store.SetValue(ctx, tokenKeyPrefix+token, username, ttl); err != nil {
		return fmt.Errorf("ошибка сохранения обменного токена: %w", err)
	}
	return nil
}

// ConsumeToken атомарно читает и удаляет токен; "" — токена нет или истёк.
func (r *Repository) ConsumeToken(ctx context.Context, token string) (string, error) {
	username, err := r.store.GetDel(ctx, tokenKeyPrefix+token)
	if err != nil {
		return "", fmt.Errorf("ошибка потребления обменного токена: %w", err)
	}
	return username, nil
}
