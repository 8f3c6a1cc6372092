// Package bot — меню и маршрутизация команд Telegram-бота.
// menu.go описывает дерево меню как данные: корень с пятью категориями,
// у каждой — заголовок, описание и список исходящих ссылок.
// Раскладка клавиатуры и подпись считаются чистыми функциями от этого дерева.
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vetrina.ru/catalog-bot/internal/config"
)

const rootMenuID = "root"

// Entry — исходящая ссылка подменю.
type Entry struct {
	Label string
	URL   string
}

// Submenu — одна категория корневого меню.
type Submenu struct {
	Title       string
	Description string
	Entries     []Entry
}

type rootItem struct {
	Label  string
	Target string
}

// Menu — статичное дерево меню, собранное один раз из конфигурации.
type Menu struct {
	root     []rootItem
	submenus map[string]Submenu
}

// NewMenu строит дерево из ссылок конфигурации (фолбэки уже развёрнуты в config.Load).
func NewMenu(cfg *config.Config) *Menu {
	return &Menu{
		root: []rootItem{
			{Label: "🥔 Potato", Target: "potato"},
			{Label: "📨 Telegram", Target: "telegram"},
			{Label: "📡 Signal", Target: "signal"},
			{Label: "📷 Instagram", Target: "instagram"},
			{Label: "🧾 Vetrina", Target: "vetrina"},
		},
		submenus: map[string]Submenu{
			"potato": {
				Title:       "🥔 Potato",
				Description: "Vetrine ufficiali per spedizioni e recensioni.",
				Entries: []Entry{
					{Label: "Vetrina Ship ITA", URL: cfg.VetrinaShipItaURL},
					{Label: "Vetrina Ship Spagna", URL: cfg.VetrinaShipSpagnaURL},
					{Label: "Canale Recensioni", URL: cfg.VetrinaReviewsURL},
				},
			},
			"telegram": {
				Title:       "📨 Telegram",
				Description: "Broadcast ufficiale e contatto diretto.",
				Entries: []Entry{
					{Label: "Canale Telegram", URL: cfg.TelegramChannelURL},
					{Label: "Contatto Telegram", URL: cfg.TelegramContactURL},
				},
			},
			"signal": {
				Title:       "📡 Signal",
				Description: "Aggiornamenti e ordini su Signal.",
				Entries: []Entry{
					{Label: "Canale Signal", URL: cfg.SignalChannelURL},
					{Label: "Contatto Ordini", URL: cfg.SignalContactURL},
				},
			},
			"instagram": {
				Title:       "📷 Instagram",
				Description: "Feed ufficiale con drop e teaser.",
				Entries:     []Entry{{Label: "Apri Instagram", URL: cfg.InstagramURL}},
			},
			"vetrina": {
				Title:       "🧾 Vetrina",
				Description: "Versione web completa della catalogo experience.",
				Entries:     []Entry{{Label: "Apri WebApp", URL: cfg.CatalogURL}},
			},
		},
	}
}

// Keyboard возвращает клавиатуру для меню. Неизвестный id — корень.
func (m *Menu) Keyboard(menuID string) tgbotapi.InlineKeyboardMarkup {
	if menuID == rootMenuID {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(m.root))
		for _, item := range m.root {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(item.Label, "menu:"+item.Target),
			))
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	submenu, ok := m.submenus[menuID]
	if !ok {
		return m.Keyboard(rootMenuID)
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(submenu.Entries)+1)
	for _, entry := range submenu.Entries {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(entry.Label, entry.URL),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Torna al menu", "menu:"+rootMenuID),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Caption возвращает подпись для меню. Неизвестный id — корень.
func (m *Menu) Caption(menuID, name string) string {
	if menuID == rootMenuID {
		return "<b>Benvenuto " + name + "</b>\nScegli la destinazione dal menu."
	}
	submenu, ok := m.submenus[menuID]
	if !ok {
		return m.Caption(rootMenuID, name)
	}
	return "<b>" + submenu.Title + "</b>\n" + submenu.Description
}
