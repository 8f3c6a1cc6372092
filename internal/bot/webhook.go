// webhook.go — точка входа обновлений от Telegram.
// Транспортный ответ всегда успешный после принятия тела: внутренняя ошибка
// логируется, но наружу не выходит, иначе Telegram начнёт ретраить апдейт.
package bot

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"vetrina.ru/catalog-bot/internal/bot/middleware"
	"vetrina.ru/catalog-bot/internal/config"
	"vetrina.ru/catalog-bot/internal/web"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookHandler принимает POST /telegram/webhook.
type WebhookHandler struct {
	cfg        *config.Config
	dispatcher *Dispatcher
}

func NewWebhookHandler(cfg *config.Config, dispatcher *Dispatcher) *WebhookHandler {
	return &WebhookHandler{cfg: cfg, dispatcher: dispatcher}
}

type okResponse struct {
	OK bool `json:"ok"`
}

func (h *WebhookHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		web.MethodNotAllowed(w, http.MethodPost)
		return
	}
	if h.cfg.TelegramBotToken == "" {
		web.BadRequest(w, "TELEGRAM_BOT_TOKEN non configurato")
		return
	}
	if h.cfg.TelegramWebhookSecret != "" &&
		r.Header.Get(secretTokenHeader) != h.cfg.TelegramWebhookSecret {
		web.Unauthorized(w)
		return
	}

	var update tgbotapi.Update
	if err := web.DecodeJSON(w, r, &update); err != nil {
		web.BadRequest(w, err.Error())
		return
	}

	h.process(r, &update)
	web.JSON(w, http.StatusOK, okResponse{OK: true})
}

// process глотает и панику, и ошибку — транспортный ответ от них не зависит.
func (h *WebhookHandler) process(r *http.Request, update *tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	if err := h.dispatcher.HandleUpdate(r.Context(), update); err != nil {
		log.WithError(err).WithField("update_id", update.UpdateID).Error("Ошибка обработки обновления")
	}
}
