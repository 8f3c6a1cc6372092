// Package main — одноразовая инициализация хранилища.
// Идемпотентно добавляет супер-админа в множество админов и, если рядом
// лежит файл с товарами, загружает его в каталог.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	log "github.com/sirupsen/logrus"

	"vetrina.ru/catalog-bot/internal/config"
	"vetrina.ru/catalog-bot/internal/features/admins"
	"vetrina.ru/catalog-bot/internal/features/products"
	"vetrina.ru/catalog-bot/internal/kv"
)

func main() {
	seedFile := flag.String("products", "data/seed-products.json", "файл с товарами для загрузки")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Не удалось загрузить конфигурацию")
	}

	ctx := context.Background()

	store, err := kv.NewRedis(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Не удалось подключиться к хранилищу")
	}
	defer store.Close()

	seedAdmins(ctx, cfg, store)
	seedProducts(ctx, store, *seedFile)

	log.Info("Инициализация завершена")
}

// seedAdmins гарантирует членство супер-админа. Повторный запуск — no-op.
func seedAdmins(ctx context.Context, cfg *config.Config, store kv.Store) {
	repo := admins.NewRepository(store)
	if err := repo.Add(ctx, cfg.SuperAdminUsername); err != nil {
		log.WithError(err).Fatal("Не удалось добавить супер-админа")
	}
	log.WithField("username", cfg.SuperAdminUsername).Info("Супер-админ в множестве")
}

// seedProducts загружает товары из JSON-файла; отсутствие файла — не ошибка.
func seedProducts(ctx context.Context, store kv.Store, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file", path).Warn("Файл с товарами не найден, пропускаем")
			return
		}
		log.WithError(err).Fatal("Не удалось прочитать файл с товарами")
	}

	var items []products.Product
	if err := json.Unmarshal(raw, &items); err != nil {
		log.WithError(err).Fatal("Не удалось разобрать файл с товарами")
	}

	service := products.NewService(products.NewRepository(store))
	for _, item := range items {
		saved, err := service.Create(ctx, item)
		if err != nil {
			log.WithError(err).WithField("id", item.ID).Fatal("Не удалось сохранить товар")
		}
		log.WithField("id", saved.ID).Info("Товар загружен")
	}
}
