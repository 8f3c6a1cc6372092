// service.go — логика членства и генерация обменных токенов.
package admins

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	log "github.com/sirupsen/logrus"
)

// Алфавит обменных токенов: заглавные буквы и цифры без неоднозначных
// символов (I, O, 0, 1) — токен попадает в чат и набирается руками.
const (
	tokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	tokenLength   = 12
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

// Add добавляет админа и возвращает обновлённый список.
func (s *Service) Add(ctx context.Context, username string) ([]string, error) {
	if err := s.repo.Add(ctx, username); err != nil {
		return nil, err
	}
	log.WithField("username", username).Info("Админ добавлен")
	return s.repo.List(ctx)
}

// Remove удаляет админа и возвращает обновлённый список.
func (s *Service) Remove(ctx context.Context, username string) ([]string, error) {
	if err := s.repo.Remove(ctx, username); err != nil {
		return nil, err
	}
	log.WithField("username", username).Info("Админ удалён")
	return s.repo.List(ctx)
}

// IssueExchangeToken генерирует одноразовый токен для username и сохраняет его с TTL.
func (s *Service) IssueExchangeToken(ctx context.Context, username string, ttl time.Duration) (string, error) {
	token, err := newExchangeToken()
	if err != nil {
		return "", err
	}
	if err := s.repo.PutToken(ctx, token, username, ttl); err != nil {
		return "", err
	}
	log.WithFields(log.Fields{
		"username": username,
		"ttl":      ttl,
	}).Debug("Выпущен обменный токен")
	return token, nil
}

// ConsumeExchangeToken потребляет токен ровно один раз; "" — токена нет.
func (s *Service) ConsumeExchangeToken(ctx context.Context, token string) (string, error) {
	return s.repo.ConsumeToken(ctx, token)
}

// newExchangeToken генерирует криптографически случайный токен.
func newExchangeToken() (string, error) {
	out := make([]byte, tokenLength)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("ошибка генерации токена: %w", err)
		}
		out[i] = tokenAlphabet[n.Int64()]
	}
	return string(out), nil
}
