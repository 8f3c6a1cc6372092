// Package products — repository.go отвечает за все операции с каталогом в хранилище.
// Схема ключей: множество "products" с id всех товаров, хеш "products:<id>" на карточку.
package products

import (
	"context"
	"fmt"

	"vetrina.ru/catalog-bot/internal/common"
	"vetrina.ru/catalog-bot/internal/kv"
)

const (
	productSetKey    = "products"
	productKeyPrefix = "products:"
)

type Repository struct {
	store kv.Store
}

func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// List возвращает все карточки, опционально отфильтрованные по категории.
// Пустые/битые записи (id есть в множестве, хеша нет) отбрасываются.
func (r *Repository) List(ctx context.Context, category string) ([]*Product, error) {
	ids, err := r.store.SetMembers(ctx, productSetKey)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка товаров: %w", err)
	}

	out := make([]*Product, 0, len(ids))
	for _, id := range ids {
		product, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		out = append(out, product)
	}
	return out, nil
}

// Get возвращает карточку по id; nil — товара нет.
func (r *Repository) Get(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, nil
	}
	fields, err := r.store.HashGetAll(ctx, productKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения товара %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	product := productFromFields(id, fields)
	if product.IsEmpty() {
		return nil, nil
	}
	return product, nil
}

// Save вставляет или перезаписывает карточку: членство в множестве + поля хеша.
func (r *Repository) Save(ctx context.Context, p *Product) (*Product, error) {
	if p.ID == "" {
		return nil, common.ErrProductIDRequired
	}
	if err := r.store.SetAdd(ctx, productSetKey, p.ID); err != nil {
		return nil, fmt.Errorf("ошибка сохранения товара %s: %w", p.ID, err)
	}
	if err := r.store.HashSet(ctx, productKeyPrefix+p.ID, p.fields()); err != nil {
		return nil, fmt.Errorf("ошибка сохранения товара %s: %w", p.ID, err)
	}
	return r.Get(ctx, p.ID)
}

// Delete удаляет членство и карточку. Идемпотентно.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.SetRemove(ctx, productSetKey, id); err != nil {
		return fmt.Errorf("ошибка удаления товара %s: %w", id, err)
	}
	if err := r.store.Delete(ctx, productKeyPrefix+id); err != nil {
		return fmt.Errorf("ошибка удаления товара %s: %w", id, err)
	}
	return nil
}
