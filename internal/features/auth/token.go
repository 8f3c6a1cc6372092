// Package auth — выпуск и проверка сессионных токенов, проверка прав.
// token.go: подписанные JWT без состояния — проверка не требует похода в хранилище.
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims — полезная нагрузка сессионного токена.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager подписывает и проверяет сессионные токены (HS256).
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue выпускает токен с фиксированным сроком жизни.
func (m *TokenManager) Issue(username string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify возвращает клеймы либо nil — на любую проблему один ответ,
// чтобы не подсказывать, какая именно часть токена не прошла.
func (m *TokenManager) Verify(raw string) *Claims {
	if raw == "" {
		return nil
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil
	}
	return &claims
}

// VerifyBearer извлекает токен из заголовка Authorization и проверяет его.
func (m *TokenManager) VerifyBearer(r *http.Request) *Claims {
	header := r.Header.Get("Authorization")
	if len(header) < 8 || !strings.EqualFold(header[:7], "Bearer ") {
		return nil
	}
	return m.Verify(strings.TrimSpace(header[7:]))
}
