// Package kv — типизированная обёртка над удалённым key-value хранилищем.
// Интерфейс Store покрывает ровно те примитивы, которые нужны репозиториям:
// множества (участники), хеши (карточки товаров) и строки с TTL (одноразовые токены).
package kv

import (
	"context"
	"time"
)

// Store — порт хранилища. Продакшен-реализация — Redis,
// для тестов есть Memory с той же семантикой.
type Store interface {
	// SetAdd добавляет элемент в множество (идемпотентно).
	SetAdd(ctx context.Context, key, member string) error
	// SetRemove удаляет элемент из множества (отсутствующий — no-op).
	SetRemove(ctx context.Context, key, member string) error
	// SetMembers возвращает все элементы множества (порядок не определён).
	SetMembers(ctx context.Context, key string) ([]string, error)

	// HashSet записывает поля хеша (существующие перезаписываются).
	HashSet(ctx context.Context, key string, fields map[string]string) error
	// HashGetAll возвращает все поля хеша; пустая map — ключа нет.
	HashGetAll(ctx context.Context, key string) (map[string]string, error)

	// SetValue записывает строку; ttl > 0 задаёт срок жизни ключа.
	SetValue(ctx context.Context, key, value string, ttl time.Duration) error
	// GetDel атомарно читает и удаляет строку; "" — ключа нет.
	// Атомарность здесь принципиальна: одноразовый токен не должен
	// обмениваться дважды двумя параллельными запросами.
	GetDel(ctx context.Context, key string) (string, error)

	// Delete удаляет ключи любого типа (отсутствующие игнорируются).
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
	Close() error
}
