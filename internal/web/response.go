// Package web — утилиты HTTP-слоя: JSON-ответы и разбор тела запроса.
// Формат ошибок единый: {"error": "<текст>"}.
package web

import (
	"encoding/json"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON пишет статус и тело ответа.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Ошибка записи ответа")
	}
}

// MethodNotAllowed отвечает 405 и перечисляет разрешённые методы в Allow.
func MethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	JSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
}

func Unauthorized(w http.ResponseWriter) {
	JSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
}

func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, errorBody{Error: message})
}

func NotFound(w http.ResponseWriter) {
	JSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
}

// Internal — непредвиденная ошибка нижнего слоя. Детали остаются в логах.
func Internal(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, errorBody{Error: "Internal error"})
}
