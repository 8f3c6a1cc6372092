// Package products — service.go содержит бизнес-логику каталога:
// генерацию id, частичное обновление и проверку существования.
package products

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"vetrina.ru/catalog-bot/internal/common"
)

// Алфавит и длина генерируемых id товаров.
const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.List(ctx, category)
}

// Get возвращает карточку или common.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, common.ErrNotFound
	}
	return product, nil
}

// Create сохраняет новую карточку; пустой id генерируется.
func (s *Service) Create(ctx context.Context, p Product) (*Product, error) {
	if p.ID == "" {
		id, err := newProductID()
		if err != nil {
			return nil, err
		}
		p.ID = id
	}
	return s.repo.Save(ctx, &p)
}

// Update накладывает заполненные поля патча поверх существующей карточки.
func (s *Service) Update(ctx context.Context, id string, patch UpdatePatch) (*Product, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Category != nil {
		existing.Category = *patch.Category
	}
	if patch.Media != nil {
		existing.Media = *patch.Media
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Featured != nil {
		existing.Featured = *patch.Featured
	}

	return s.repo.Save(ctx, existing)
}

// Delete удаляет карточку; отсутствующая — common.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// newProductID генерирует короткий id из строчных букв и цифр.
func newProductID() (string, error) {
	out := make([]byte, idLength)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("ошибка генерации id: %w", err)
		}
		out[i] = idAlphabet[n.Int64()]
	}
	return string(out), nil
}
