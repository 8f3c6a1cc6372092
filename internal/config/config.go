// Package config загружает конфигурацию сервиса из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- HTTP ---
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// Публичный адрес API (используется ботом для обратных вызовов и ссылок)
	APIBaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:8080"`

	// --- Auth ---
	JWTSecret          string `envconfig:"ADMIN_JWT_SECRET" required:"true"`
	TokenTTLMinutes    int    `envconfig:"TOKEN_TTL_MINUTES" default:"30"`
	AdminPasswordHash  string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`
	SuperAdminUsername string `envconfig:"SUPER_ADMIN_USERNAME" default:"@Lapsus00"`

	// --- Redis ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "redis" (имя сервиса в docker-compose), для локалки переопределяй REDIS_ADDR.
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// --- Telegram ---
	TelegramBotToken      string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramWebhookSecret string `envconfig:"TELEGRAM_WEBHOOK_SECRET"`
	TelegramLogoURL       string `envconfig:"TELEGRAM_LOGO_URL"`
	// Токен, которым бот ходит в собственный API (intent=create от имени сервиса)
	AdminServiceBearer string `envconfig:"ADMIN_SERVICE_BEARER"`
	AdminWebappURL     string `envconfig:"ADMIN_WEBAPP_URL"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`

	// --- Меню бота (исходящие ссылки с фолбэками) ---
	VetrinaShipItaURL    string `envconfig:"VETRINA_SHIP_ITA_URL"`
	VetrinaShipSpagnaURL string `envconfig:"VETRINA_SHIP_SPAGNA_URL"`
	VetrinaReviewsURL    string `envconfig:"VETRINA_REVIEWS_URL" default:"https://t.me/+reviews"`
	TelegramChannelURL   string `envconfig:"TELEGRAM_CHANNEL_URL" default:"https://t.me/+channel"`
	TelegramContactURL   string `envconfig:"TELEGRAM_CONTACT_URL" default:"https://t.me/username"`
	SignalChannelURL     string `envconfig:"SIGNAL_CHANNEL_URL" default:"https://signal.group/"`
	SignalContactURL     string `envconfig:"SIGNAL_CONTACT_URL" default:"https://signal.me/#p/+39"`
	InstagramURL         string `envconfig:"INSTAGRAM_URL" default:"https://instagram.com/"`
	CatalogURL           string `envconfig:"CATALOG_URL"`
}

// SessionTTL возвращает время жизни сессионного токена.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

func (c *Config) Validate() error {
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES должен быть > 0")
	}
	if strings.TrimSpace(c.SuperAdminUsername) == "" {
		return fmt.Errorf("SUPER_ADMIN_USERNAME не задан")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
// Цепочки фолбэков для ссылок меню разворачиваются здесь, а не в коде бота.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	// CATALOG_URL → API_BASE_URL; витрины → CATALOG_URL
	if cfg.CatalogURL == "" {
		cfg.CatalogURL = cfg.APIBaseURL
	}
	if cfg.VetrinaShipItaURL == "" {
		cfg.VetrinaShipItaURL = cfg.CatalogURL
	}
	if cfg.VetrinaShipSpagnaURL == "" {
		cfg.VetrinaShipSpagnaURL = cfg.CatalogURL
	}
	if cfg.TelegramLogoURL == "" {
		cfg.TelegramLogoURL = cfg.APIBaseURL + "/logo.jpg"
	}
	if cfg.AdminWebappURL == "" {
		cfg.AdminWebappURL = cfg.APIBaseURL + "/admin.html"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
