// router.go — маршрутизация HTTP API.
// Методы разбираются внутри обработчиков: так 405 отдаётся JSON'ом
// с заголовком Allow, а не текстом стандартного мультиплексора.
package app

import (
	"net/http"

	"vetrina.ru/catalog-bot/internal/bot"
	"vetrina.ru/catalog-bot/internal/features/admins"
	"vetrina.ru/catalog-bot/internal/features/auth"
	"vetrina.ru/catalog-bot/internal/features/products"
)

func newRouter(
	productHandler *products.Handler,
	adminHandler *admins.Handler,
	authHandler *auth.Handler,
	webhookHandler *bot.WebhookHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/products", productHandler.Collection)
	mux.HandleFunc("/products/", productHandler.Item)

	mux.HandleFunc("/admins", adminHandler.Collection)
	mux.HandleFunc("/admins/", adminHandler.Item)

	mux.HandleFunc("/auth", authHandler.Auth)

	mux.HandleFunc("/telegram/webhook", webhookHandler.Webhook)

	return mux
}
