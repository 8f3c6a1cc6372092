// handlers.go — HTTP-обработчики /admins.
// Чтение списка доступно любому админу, изменения — только супер-админу.
package admins

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"vetrina.ru/catalog-bot/internal/features/auth"
	"vetrina.ru/catalog-bot/internal/web"
)

type Handler struct {
	service *Service
	tokens  *auth.TokenManager
	authz   *auth.Service
}

func NewHandler(service *Service, tokens *auth.TokenManager, authz *auth.Service) *Handler {
	return &Handler{service: service, tokens: tokens, authz: authz}
}

type adminsResponse struct {
	Admins []string `json:"admins"`
}

type addAdminRequest struct {
	Username string `json:"username"`
}

// Collection обрабатывает /admins: GET — список, POST — добавление.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	claims := h.tokens.VerifyBearer(r)
	if claims == nil {
		web.Unauthorized(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		isAdmin, err := h.authz.IsAdmin(r.Context(), claims.Username)
		if err != nil {
			log.WithError(err).Error("Не удалось проверить членство")
			web.Internal(w)
			return
		}
		if !isAdmin {
			web.Unauthorized(w)
			return
		}
		admins, err := h.service.List(r.Context())
		if err != nil {
			log.WithError(err).Error("Не удалось прочитать список админов")
			web.Internal(w)
			return
		}
		web.JSON(w, http.StatusOK, adminsResponse{Admins: admins})

	case http.MethodPost:
		if !h.authz.IsSuperAdmin(claims.Username) {
			web.Unauthorized(w)
			return
		}
		var req addAdminRequest
		if err := web.DecodeJSON(w, r, &req); err != nil {
			web.BadRequest(w, err.Error())
			return
		}
		if req.Username == "" {
			web.BadRequest(w, "username is required")
			return
		}
		admins, err := h.service.Add(r.Context(), req.Username)
		if err != nil {
			log.WithError(err).Error("Не удалось добавить админа")
			web.Internal(w)
			return
		}
		web.JSON(w, http.StatusCreated, adminsResponse{Admins: admins})

	default:
		web.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// Item обрабатывает /admins/{username}: DELETE — удаление из множества.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		web.MethodNotAllowed(w, http.MethodDelete)
		return
	}

	claims := h.tokens.VerifyBearer(r)
	if claims == nil || !h.authz.IsSuperAdmin(claims.Username) {
		web.Unauthorized(w)
		return
	}

	username := strings.TrimPrefix(r.URL.Path, "/admins/")
	if _, err := h.service.Remove(r.Context(), username); err != nil {
		log.WithError(err).Error("Не удалось удалить админа")
		web.Internal(w)
		return
	}
	web.JSON(w, http.StatusNoContent, nil)
}
