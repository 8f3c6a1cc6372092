// backend.go — авторизованный клиент собственного API.
// Бот не лезет в хранилище напрямую: членство и выпуск токенов
// идут через те же HTTP-обработчики, что и админ-консоль.
package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vetrina.ru/catalog-bot/internal/config"
)

// Backend ходит в API сервиса с сервисным bearer-токеном.
type Backend struct {
	baseURL string
	bearer  string
	client  *http.Client
}

func NewBackend(cfg *config.Config) *Backend {
	return &Backend{
		baseURL: cfg.APIBaseURL,
		bearer:  cfg.AdminServiceBearer,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ListAdmins возвращает текущее множество админов.
func (b *Backend) ListAdmins(ctx context.Context) ([]string, error) {
	var out struct {
		Admins []string `json:"admins"`
	}
	if err := b.call(ctx, http.MethodGet, "/admins", nil, &out); err != nil {
		return nil, err
	}
	return out.Admins, nil
}

// CreateExchangeToken выпускает одноразовый токен для username (intent=create).
func (b *Backend) CreateExchangeToken(ctx context.Context, username string) (token string, expiresInMinutes int, err error) {
	body := map[string]string{"intent": "create", "username": username}
	var out struct {
		Token            string `json:"token"`
		ExpiresInMinutes int    `json:"expiresInMinutes"`
	}
	if err := b.call(ctx, http.MethodPost, "/auth", body, &out); err != nil {
		return "", 0, err
	}
	return out.Token, out.ExpiresInMinutes, nil
}

func (b *Backend) call(ctx context.Context, method, path string, body, out interface{}) error {
	if b.bearer == "" {
		return fmt.Errorf("ADMIN_SERVICE_BEARER не задан")
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ошибка кодирования запроса: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.bearer)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка вызова API %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API %s ответил %d: %s", path, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ошибка разбора ответа API %s: %w", path, err)
	}
	return nil
}
