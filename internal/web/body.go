package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Лимит тела запроса. Каталожные карточки — это килобайты, не мегабайты.
const maxBodyBytes = 1 << 20

var (
	// ErrInvalidBody — тело не является корректным JSON
	ErrInvalidBody = errors.New("Invalid JSON body")
	// ErrBodyTooLarge — тело превышает лимит
	ErrBodyTooLarge = errors.New("Payload too large")
)

// DecodeJSON разбирает JSON-тело запроса в dst с лимитом в 1 МБ.
// Пустое тело — не ошибка: dst остаётся нетронутым.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return ErrInvalidBody
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return ErrInvalidBody
	}
	return nil
}
