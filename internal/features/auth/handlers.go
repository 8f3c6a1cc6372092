// handlers.go — эндпоинт /auth: просмотр своей сессии и четыре intent'а входа.
// Любая проблема авторизации отдаётся клиенту одинаково — 401 без деталей.
package auth

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"vetrina.ru/catalog-bot/internal/config"
	"vetrina.ru/catalog-bot/internal/web"
)

// TokenExchanger — выпуск и одноразовое потребление обменных токенов.
type TokenExchanger interface {
	IssueExchangeToken(ctx context.Context, username string, ttl time.Duration) (string, error)
	ConsumeExchangeToken(ctx context.Context, token string) (string, error)
}

// Handler обрабатывает /auth.
type Handler struct {
	cfg      *config.Config
	tokens   *TokenManager
	service  *Service
	exchange TokenExchanger
}

func NewHandler(cfg *config.Config, tokens *TokenManager, service *Service, exchange TokenExchanger) *Handler {
	return &Handler{cfg: cfg, tokens: tokens, service: service, exchange: exchange}
}

type authRequest struct {
	Intent   string `json:"intent"`
	Username string `json:"username"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

type bearerResponse struct {
	Bearer           string `json:"bearer"`
	ExpiresInMinutes int    `json:"expiresInMinutes"`
}

type exchangeTokenResponse struct {
	Token            string `json:"token"`
	ExpiresInMinutes int    `json:"expiresInMinutes"`
}

// Auth: GET — клеймы текущей сессии, POST — выпуск сессии по одному из intent'ов.
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		claims := h.tokens.VerifyBearer(r)
		if claims == nil {
			web.Unauthorized(w)
			return
		}
		web.JSON(w, http.StatusOK, map[string]interface{}{"user": claims})

	case http.MethodPost:
		h.handleIntent(w, r)

	default:
		web.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *Handler) handleIntent(w http.ResponseWriter, r *http.Request) {
	// intent по умолчанию — exchange: так ходит админ-консоль по deep link'у
	req := authRequest{Intent: "exchange"}
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.BadRequest(w, err.Error())
		return
	}

	switch req.Intent {
	case "password":
		h.intentPassword(w, req)
	case "create":
		h.intentCreate(w, r, req)
	case "exchange":
		h.intentExchange(w, r, req)
	case "impersonate":
		h.intentImpersonate(w, r, req)
	default:
		web.BadRequest(w, "unsupported intent")
	}
}

// intentPassword: статический пароль → сессия супер-админа, без похода в хранилище.
func (h *Handler) intentPassword(w http.ResponseWriter, req authRequest) {
	if req.Password == "" || !VerifyPassword(req.Password, h.cfg.AdminPasswordHash) {
		web.Unauthorized(w)
		return
	}
	h.issueBearer(w, http.StatusOK, h.cfg.SuperAdminUsername)
}

// intentCreate: супер-админ выпускает одноразовый токен для целевого username.
func (h *Handler) intentCreate(w http.ResponseWriter, r *http.Request, req authRequest) {
	claims := h.tokens.VerifyBearer(r)
	if claims == nil || !h.service.IsSuperAdmin(claims.Username) {
		web.Unauthorized(w)
		return
	}
	if req.Username == "" {
		web.BadRequest(w, "username is required")
		return
	}

	token, err := h.exchange.IssueExchangeToken(r.Context(), req.Username, h.cfg.SessionTTL())
	if err != nil {
		log.WithError(err).Error("Не удалось выпустить обменный токен")
		web.Internal(w)
		return
	}
	web.JSON(w, http.StatusCreated, exchangeTokenResponse{
		Token:            token,
		ExpiresInMinutes: h.cfg.TokenTTLMinutes,
	})
}

// intentExchange: одноразовый токен потребляется ровно один раз;
// владелец должен быть админом на момент обмена.
func (h *Handler) intentExchange(w http.ResponseWriter, r *http.Request, req authRequest) {
	if req.Token == "" {
		web.BadRequest(w, "token is required")
		return
	}

	owner, err := h.exchange.ConsumeExchangeToken(r.Context(), req.Token)
	if err != nil {
		log.WithError(err).Error("Не удалось потребить обменный токен")
		web.Internal(w)
		return
	}
	if owner == "" {
		web.Unauthorized(w)
		return
	}

	isAdmin, err := h.service.IsAdmin(r.Context(), owner)
	if err != nil {
		log.WithError(err).Error("Не удалось проверить членство")
		web.Internal(w)
		return
	}
	if !isAdmin {
		web.Unauthorized(w)
		return
	}
	h.issueBearer(w, http.StatusOK, owner)
}

// intentImpersonate: супер-админ получает сессию от имени действующего админа.
func (h *Handler) intentImpersonate(w http.ResponseWriter, r *http.Request, req authRequest) {
	claims := h.tokens.VerifyBearer(r)
	if claims == nil || !h.service.IsSuperAdmin(claims.Username) {
		web.Unauthorized(w)
		return
	}
	if req.Username == "" {
		web.BadRequest(w, "username is required")
		return
	}

	isAdmin, err := h.service.IsAdmin(r.Context(), req.Username)
	if err != nil {
		log.WithError(err).Error("Не удалось проверить членство")
		web.Internal(w)
		return
	}
	if !isAdmin {
		web.Unauthorized(w)
		return
	}
	h.issueBearer(w, http.StatusOK, req.Username)
}

func (h *Handler) issueBearer(w http.ResponseWriter, status int, username string) {
	bearer, err := h.tokens.Issue(username)
	if err != nil {
		log.WithError(err).Error("Не удалось подписать сессионный токен")
		web.Internal(w)
		return
	}
	web.JSON(w, status, bearerResponse{
		Bearer:           bearer,
		ExpiresInMinutes: h.cfg.TokenTTLMinutes,
	})
}
