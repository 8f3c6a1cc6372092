package bot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vetrina.ru/catalog-bot/internal/config"
)

// fakeAPI записывает всё, что бот отправляет в Telegram.
type fakeAPI struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func botTestConfig() *config.Config {
	cfg := menuTestConfig()
	cfg.SuperAdminUsername = "@Lapsus00"
	cfg.AdminWebappURL = "https://shop.example/admin.html"
	cfg.AdminServiceBearer = "service-bearer"
	return cfg
}

func textOf(t *testing.T, c tgbotapi.Chattable) string {
	t.Helper()
	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", c)
	}
	return msg.Text
}

func TestStartSendsRootMenu(t *testing.T) {
	api := &fakeAPI{}
	cfg := botTestConfig()
	dispatcher := NewDispatcher(api, cfg, NewBackend(cfg))

	update := &tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "/start",
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: 7, FirstName: "Mario"},
	}}
	if err := dispatcher.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}

	if len(api.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(api.sent))
	}
	msg := textOf(t, api.sent[0])
	if !strings.Contains(msg, "Benvenuto Mario") {
		t.Fatalf("unexpected greeting: %q", msg)
	}
}

func TestStartWithLogoSendsPhoto(t *testing.T) {
	api := &fakeAPI{}
	cfg := botTestConfig()
	cfg.TelegramLogoURL = "https://shop.example/logo.jpg"
	dispatcher := NewDispatcher(api, cfg, NewBackend(cfg))

	update := &tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "/menu",
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: 7, FirstName: "Mario"},
	}}
	if err := dispatcher.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}

	if len(api.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(api.sent))
	}
	photo, ok := api.sent[0].(tgbotapi.PhotoConfig)
	if !ok {
		t.Fatalf("expected PhotoConfig, got %T", api.sent[0])
	}
	if !strings.Contains(photo.Caption, "Benvenuto Mario") {
		t.Fatalf("unexpected caption: %q", photo.Caption)
	}
}

func TestPing(t *testing.T) {
	api := &fakeAPI{}
	cfg := botTestConfig()
	dispatcher := NewDispatcher(api, cfg, NewBackend(cfg))

	update := &tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "/ping",
		Chat: &tgbotapi.Chat{ID: 1},
	}}
	if err := dispatcher.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}
	if len(api.sent) != 1 || !strings.Contains(textOf(t, api.sent[0]), "Bot operativo") {
		t.Fatalf("unexpected ping reply: %+v", api.sent)
	}
}

func TestCallbackEditsPhotoCaption(t *testing.T) {
	api := &fakeAPI{}
	cfg := botTestConfig()
	dispatcher := NewDispatcher(api, cfg, NewBackend(cfg))

	update := &tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb1",
		Data: "menu:signal",
		From: &tgbotapi.User{ID: 7, FirstName: "Mario"},
		Message: &tgbotapi.Message{
			MessageID: 42,
			Chat:      &tgbotapi.Chat{ID: 1},
			Photo:     []tgbotapi.PhotoSize{{FileID: "logo"}},
		},
	}}
	if err := dispatcher.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}

	// первый запрос — подтверждение callback, второй — правка подписи
	if len(api.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(api.requests))
	}
	if _, ok := api.requests[0].(tgbotapi.CallbackConfig); !ok {
		t.Fatalf("expected callback ack first, got %T", api.requests[0])
	}
	edit, ok := api.requests[1].(tgbotapi.EditMessageCaptionConfig)
	if !ok {
		t.Fatalf("expected caption edit for photo message, got %T", api.requests[1])
	}
	if !strings.Contains(edit.Caption, "Signal") {
		t.Fatalf("unexpected caption: %q", edit.Caption)
	}
	if edit.MessageID != 42 || edit.ChatID != 1 {
		t.Fatalf("edit addressed to wrong message: %+v", edit.BaseEdit)
	}
}

func TestCallbackEditsTextMessage(t *testing.T) {
	api := &fakeAPI{}
	cfg := botTestConfig()
	dispatcher := NewDispatcher(api, cfg, NewBackend(cfg))

	update := &tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb1",
		Data: "menu:telegram",
		From: &tgbotapi.User{ID: 7, FirstName: "Mario"},
		Message: &tgbotapi.Message{
			MessageID: 42,
			Chat:      &tgbotapi.Chat{ID: 1},
		},
	}}
	if err := dispatcher.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}

	if len(api.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(api.requests))
	}
	edit, ok := api.requests[1].(tgbotapi.EditMessageTextConfig)
	if !ok {
		t.Fatalf("expected text edit, got %T", api.requests[1])
	}
	if !strings.Contains(edit.Text, "Telegram") {
		t.Fatalf("unexpected text: %q", edit.Text)
	}
}

func TestCallbackMalformedDataFallsBackToRoot(t *testing.T) {
	api := &fakeAPI{}
	cfg := botTestConfig()
	dispatcher := NewDispatcher(api, cfg, NewBackend(cfg))

	update := &tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb1",
		Data: "garbage",
		From: &tgbotapi.User{ID: 7, FirstName: "Mario"},
		Message: &tgbotapi.Message{
			MessageID: 42,
			Chat:      &tgbotapi.Chat{ID: 1},
		},
	}}
	if err := dispatcher.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}

	edit, ok := api.requests[1].(tgbotapi.EditMessageTextConfig)
	if !ok {
		t.Fatalf("expected text edit, got %T", api.requests[1])
	}
	if !strings.Contains(edit.Text, "Benvenuto") {
		t.Fatalf("expected root caption, got %q", edit.Text)
	}
}

// adminBackendServer эмулирует собственный API сервиса для команды /admin.
func adminBackendServer(t *testing.T, admins []string) (*httptest.Server, *int) {
	t.Helper()
	tokenCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer service-bearer" {
			t.Errorf("missing service bearer on %s %s", r.Method, r.URL.Path)
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/admins":
			json.NewEncoder(w).Encode(map[string][]string{"admins": admins})
		case r.Method == http.MethodPost && r.URL.Path == "/auth":
			tokenCalls++
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{"token": "TOKEN1", "expiresInMinutes": 30})
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)
	return server, &tokenCalls
}

func TestAdminCommandIssuesLink(t *testing.T) {
	server, tokenCalls := adminBackendServer(t, []string{"@alice"})

	api := &fakeAPI{}
	cfg := botTestConfig()
	cfg.APIBaseURL = server.URL
	dispatcher := NewDispatcher(api, cfg, NewBackend(cfg))

	update := &tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "/admin",
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: 7, UserName: "alice"},
	}}
	if err := dispatcher.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}

	if *tokenCalls != 1 {
		t.Fatalf("expected one token call, got %d", *tokenCalls)
	}
	msg := textOf(t, api.sent[0])
	if !strings.Contains(msg, "https://shop.example/admin.html?token=TOKEN1") {
		t.Fatalf("expected deep link in reply, got %q", msg)
	}
	if !strings.Contains(msg, "30") {
		t.Fatalf("expected TTL in reply, got %q", msg)
	}
}

func TestAdminCommandRejectsNonAdmin(t *testing.T) {
	server, tokenCalls := adminBackendServer(t, []string{"@alice"})

	api := &fakeAPI{}
	cfg := botTestConfig()
	cfg.APIBaseURL = server.URL
	dispatcher := NewDispatcher(api, cfg, NewBackend(cfg))

	update := &tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "/admin",
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: 7, UserName: "stranger"},
	}}
	if err := dispatcher.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}

	if *tokenCalls != 0 {
		t.Fatalf("token must not be issued for non admin, got %d calls", *tokenCalls)
	}
	if !strings.Contains(textOf(t, api.sent[0]), "Non sei autorizzato") {
		t.Fatalf("unexpected reply: %q", textOf(t, api.sent[0]))
	}
}

func TestAdminCommandRequiresPublicUsername(t *testing.T) {
	api := &fakeAPI{}
	cfg := botTestConfig()
	dispatcher := NewDispatcher(api, cfg, NewBackend(cfg))

	update := &tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "/admin",
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: 7, FirstName: "Mario"},
	}}
	if err := dispatcher.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}
	if !strings.Contains(textOf(t, api.sent[0]), "username pubblico") {
		t.Fatalf("unexpected reply: %q", textOf(t, api.sent[0]))
	}
}

func TestNilAPIFails(t *testing.T) {
	cfg := botTestConfig()
	dispatcher := NewDispatcher(nil, cfg, NewBackend(cfg))

	update := &tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "/start",
		Chat: &tgbotapi.Chat{ID: 1},
	}}
	if err := dispatcher.HandleUpdate(context.Background(), update); err == nil {
		t.Fatal("expected error when API is not initialized")
	}
}
