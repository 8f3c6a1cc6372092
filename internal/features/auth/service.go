// service.go — проверка прав. Подпись токена проверяется локально (TokenManager),
// актуальное членство в множестве админов — отдельным запросом к хранилищу:
// два независимых шага, чтобы в тестах подменялся источник членства.
package auth

import (
	"context"
	"fmt"
)

// Membership — источник текущего списка админов.
type Membership interface {
	List(ctx context.Context) ([]string, error)
}

// Service отвечает на вопросы "админ ли это" и "супер-админ ли это".
type Service struct {
	superAdmin string
	membership Membership
}

func NewService(superAdmin string, membership Membership) *Service {
	return &Service{superAdmin: superAdmin, membership: membership}
}

// IsSuperAdmin: единственная сконфигурированная личность, без похода в хранилище.
func (s *Service) IsSuperAdmin(username string) bool {
	return username != "" && username == s.superAdmin
}

// IsAdmin: супер-админ всегда авторизован, остальные — по членству в множестве.
func (s *Service) IsAdmin(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, nil
	}
	if s.IsSuperAdmin(username) {
		return true, nil
	}
	admins, err := s.membership.List(ctx)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки членства: %w", err)
	}
	for _, admin := range admins {
		if admin == username {
			return true, nil
		}
	}
	return false, nil
}
