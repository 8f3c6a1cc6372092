// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт хранилище, репозитории, сервисы,
// обработчики и собирает всё в один HTTP-сервер.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"vetrina.ru/catalog-bot/internal/bot"
	"vetrina.ru/catalog-bot/internal/config"
	"vetrina.ru/catalog-bot/internal/features/admins"
	"vetrina.ru/catalog-bot/internal/features/auth"
	"vetrina.ru/catalog-bot/internal/features/products"
	"vetrina.ru/catalog-bot/internal/kv"
)

// App содержит все компоненты приложения.
type App struct {
	Store  kv.Store
	server *http.Server
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. Хранилище ===
	store, err := kv.NewRedis(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к хранилищу: %w", err)
	}

	// === 2. Репозитории ===
	productRepo := products.NewRepository(store)
	adminRepo := admins.NewRepository(store)

	// === 3. Сервисы ===
	productService := products.NewService(productRepo)
	adminService := admins.NewService(adminRepo)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL())
	authService := auth.NewService(cfg.SuperAdminUsername, adminService)

	// === 4. HTTP-обработчики ===
	productHandler := products.NewHandler(productService, tokens)
	adminHandler := admins.NewHandler(adminService, tokens, authService)
	authHandler := auth.NewHandler(cfg, tokens, authService, adminService)

	// === 5. Telegram ===
	// Без токена сервер работает как чистый API: вебхук отвечает 400.
	var api bot.API
	if cfg.TelegramBotToken != "" {
		botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			log.WithError(err).Warn("Telegram API недоступен, вебхук будет отвечать ошибкой")
		} else {
			log.Infof("Авторизован как @%s", botAPI.Self.UserName)
			api = botAPI
		}
	}
	dispatcher := bot.NewDispatcher(api, cfg, bot.NewBackend(cfg))
	webhookHandler := bot.NewWebhookHandler(cfg, dispatcher)

	// === 6. Сервер ===
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(productHandler, adminHandler, authHandler, webhookHandler),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &App{Store: store, server: srv}, nil
}

// Run блокируется до остановки сервера.
func (a *App) Run() error {
	log.WithField("addr", a.server.Addr).Info("HTTP-сервер запущен")
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown гасит сервер, дожидаясь активных запросов.
func (a *App) Shutdown(ctx context.Context) {
	if err := a.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("Сервер остановлен принудительно")
	}
}
