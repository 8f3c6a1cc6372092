// bot.go — диспетчер обновлений: команды /start, /menu, /admin, /ping
// и навигация по меню через callback-кнопки.
// Бот работает от вебхука, состояние между обновлениями не хранится.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"vetrina.ru/catalog-bot/internal/bot/middleware"
	"vetrina.ru/catalog-bot/internal/config"
)

// API — минимальный срез telegram-bot-api, который нужен диспетчеру.
// В тестах подменяется записывающей заглушкой.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Dispatcher обрабатывает одно обновление за вызов.
type Dispatcher struct {
	api         API
	cfg         *config.Config
	menu        *Menu
	backend     *Backend
	rateLimiter *middleware.RateLimiter
}

func NewDispatcher(api API, cfg *config.Config, backend *Backend) *Dispatcher {
	return &Dispatcher{
		api:     api,
		cfg:     cfg,
		menu:    NewMenu(cfg),
		backend: backend,
		// /admin дёргает API и выпускает токены — придерживаем частоту
		rateLimiter: middleware.NewRateLimiter(10, time.Minute),
	}
}

// HandleUpdate маршрутизирует обновление. Ошибка уходит в лог вебхука,
// наружу всегда отвечаем успехом.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update *tgbotapi.Update) error {
	if d.api == nil {
		return fmt.Errorf("telegram API не инициализирован")
	}

	if update.Message != nil {
		return d.handleMessage(ctx, update.Message)
	}
	if update.CallbackQuery != nil {
		return d.handleMenuCallback(update.CallbackQuery)
	}
	return nil
}

func (d *Dispatcher) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	if message.Text == "" || message.Chat == nil {
		return nil
	}
	middleware.LogMessage(message)

	text := strings.TrimSpace(message.Text)
	name := displayName(message.From)

	switch {
	case strings.HasPrefix(text, "/start"), strings.HasPrefix(text, "/menu"):
		return d.sendRootMenu(message.Chat.ID, name)

	case strings.HasPrefix(text, "/admin"):
		if message.From != nil && !d.rateLimiter.Allow(message.From.ID) {
			log.WithField("user_id", message.From.ID).Debug("rate limited")
			return nil
		}
		return d.handleAdminCommand(ctx, message)

	case strings.HasPrefix(text, "/ping"):
		return d.send(tgbotapi.NewMessage(message.Chat.ID, "✅ Bot operativo"))
	}
	return nil
}

// sendRootMenu показывает корневое меню: фото с подписью, если настроен логотип,
// иначе обычный текст.
func (d *Dispatcher) sendRootMenu(chatID int64, name string) error {
	caption := d.menu.Caption(rootMenuID, name)
	keyboard := d.menu.Keyboard(rootMenuID)

	if d.cfg.TelegramLogoURL != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(d.cfg.TelegramLogoURL))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = keyboard
		return d.send(photo)
	}

	msg := tgbotapi.NewMessage(chatID, caption)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	return d.send(msg)
}

// handleMenuCallback редактирует сообщение на месте: у фото меняется подпись,
// у текста — сам текст. Callback подтверждается в любом случае.
func (d *Dispatcher) handleMenuCallback(query *tgbotapi.CallbackQuery) error {
	target := rootMenuID
	if parts := strings.SplitN(query.Data, ":", 2); len(parts) == 2 && parts[1] != "" {
		target = parts[1]
	}

	if _, err := d.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		return fmt.Errorf("ошибка подтверждения callback: %w", err)
	}
	if query.Message == nil || query.Message.Chat == nil {
		return nil
	}

	name := displayName(query.From)
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	keyboard := d.menu.Keyboard(target)
	caption := d.menu.Caption(target, name)

	if len(query.Message.Photo) > 0 {
		edit := tgbotapi.NewEditMessageCaption(chatID, messageID, caption)
		edit.ParseMode = tgbotapi.ModeHTML
		edit.ReplyMarkup = &keyboard
		if _, err := d.api.Request(edit); err != nil {
			return fmt.Errorf("ошибка редактирования подписи: %w", err)
		}
		return nil
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, caption, keyboard)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := d.api.Request(edit); err != nil {
		return fmt.Errorf("ошибка редактирования текста: %w", err)
	}
	return nil
}

// handleAdminCommand: публичный @username → проверка членства через API →
// одноразовая ссылка в админ-консоль.
func (d *Dispatcher) handleAdminCommand(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	if message.From == nil || message.From.UserName == "" {
		return d.send(tgbotapi.NewMessage(chatID,
			"Serve un username pubblico per accedere all'area admin."))
	}
	username := "@" + message.From.UserName

	admins, err := d.backend.ListAdmins(ctx)
	if err != nil {
		return err
	}
	if username != d.cfg.SuperAdminUsername && !contains(admins, username) {
		log.WithField("username", username).Info("Отказ в доступе к /admin")
		return d.send(tgbotapi.NewMessage(chatID,
			"Non sei autorizzato ad accedere all'area admin."))
	}

	token, minutes, err := d.backend.CreateExchangeToken(ctx, username)
	if err != nil {
		return err
	}

	link := d.cfg.AdminWebappURL + "?token=" + token
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Link valido %d minuti:\n%s", minutes, link))
	msg.DisableWebPagePreview = true
	return d.send(msg)
}

func (d *Dispatcher) send(c tgbotapi.Chattable) error {
	if _, err := d.api.Send(c); err != nil {
		return fmt.Errorf("ошибка отправки сообщения: %w", err)
	}
	return nil
}

// displayName — имя для приветствия: имя+фамилия, имя, username или "ospite".
func displayName(user *tgbotapi.User) string {
	if user == nil {
		return "ospite"
	}
	if user.FirstName != "" && user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	if user.UserName != "" {
		return user.UserName
	}
	return "ospite"
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
