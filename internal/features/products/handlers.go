// handlers.go — HTTP-обработчики каталога.
// Чтение публичное, изменения — под любой валидной сессией.
package products

import (
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"vetrina.ru/catalog-bot/internal/common"
	"vetrina.ru/catalog-bot/internal/features/auth"
	"vetrina.ru/catalog-bot/internal/web"
)

type Handler struct {
	service *Service
	tokens  *auth.TokenManager
}

func NewHandler(service *Service, tokens *auth.TokenManager) *Handler {
	return &Handler{service: service, tokens: tokens}
}

type itemsResponse struct {
	Items []*Product `json:"items"`
}

type itemResponse struct {
	Item *Product `json:"item"`
}

type createRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Media       string `json:"media"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
}

// Collection обрабатывает /products: GET — список (публично), POST — создание.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			log.WithError(err).Error("Не удалось прочитать каталог")
			web.Internal(w)
			return
		}
		web.JSON(w, http.StatusOK, itemsResponse{Items: items})

	case http.MethodPost:
		if h.tokens.VerifyBearer(r) == nil {
			web.Unauthorized(w)
			return
		}
		var req createRequest
		if err := web.DecodeJSON(w, r, &req); err != nil {
			web.BadRequest(w, err.Error())
			return
		}
		if req.Name == "" || req.Category == "" || req.Media == "" || req.Description == "" {
			web.BadRequest(w, "Missing required fields")
			return
		}
		saved, err := h.service.Create(r.Context(), Product{
			ID:          req.ID,
			Name:        req.Name,
			Category:    req.Category,
			Media:       req.Media,
			Description: req.Description,
			Featured:    req.Featured,
		})
		if err != nil {
			log.WithError(err).Error("Не удалось сохранить товар")
			web.Internal(w)
			return
		}
		web.JSON(w, http.StatusCreated, itemResponse{Item: saved})

	default:
		web.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// Item обрабатывает /products/{id}: GET — публично, PUT/DELETE — под сессией.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/products/")

	switch r.Method {
	case http.MethodGet:
		product, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.respondError(w, err, "Не удалось прочитать товар")
			return
		}
		web.JSON(w, http.StatusOK, itemResponse{Item: product})

	case http.MethodPut:
		if h.tokens.VerifyBearer(r) == nil {
			web.Unauthorized(w)
			return
		}
		var patch UpdatePatch
		if err := web.DecodeJSON(w, r, &patch); err != nil {
			web.BadRequest(w, err.Error())
			return
		}
		updated, err := h.service.Update(r.Context(), id, patch)
		if err != nil {
			h.respondError(w, err, "Не удалось обновить товар")
			return
		}
		web.JSON(w, http.StatusOK, itemResponse{Item: updated})

	case http.MethodDelete:
		if h.tokens.VerifyBearer(r) == nil {
			web.Unauthorized(w)
			return
		}
		if err := h.service.Delete(r.Context(), id); err != nil {
			h.respondError(w, err, "Не удалось удалить товар")
			return
		}
		web.JSON(w, http.StatusNoContent, nil)

	default:
		web.MethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, common.ErrNotFound) {
		web.NotFound(w)
		return
	}
	log.WithError(err).Error(logMsg)
	web.Internal(w)
}
