package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
)

type Arguments struct {
	BotToken             string        `env:"BOT_TOKEN" envDefault:""`
	AdminChatID          int64         `env:"ADMIN_CHAT_ID" envDefault:"714948319"`
	AdminIDs             string        `env:"ADMIN_IDS" envDefault:"714948319,6094832311,575262312"`
	BackendURL           string        `env:"BACKEND_URL" envDefault:"http://localhost:8000/api/orders/"`
	MediaURL             string        `env:"MEDIA_URL" envDefault:""`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	PollInterval         time.Duration `env:"POLL_INTERVAL" envDefault:"10s"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	NotificationsEnabled bool          `env:"NOTIFICATIONS_ENABLED" envDefault:"true"`
	DatabaseDSN          string        `env:"DATABASE_DSN" envDefault:""`
	ListenAddr           string        `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	JWTSecret            string        `env:"JWT_SECRET" envDefault:"secret"`
	Timezone             string        `env:"TIMEZONE" envDefault:"Local"`
}

// BotConfig модель настроек телеграм-бота
type BotConfig struct {
	Token       string
	AdminChatID int64
	AdminIDs    []int64
	Location    *time.Location
}

// BackendConfig модель настроек работы с сервисом заказов
type BackendConfig struct {
	OrdersURL      string
	MediaURL       string
	RequestTimeout time.Duration
}

// PollerConfig модель настроек опроса новых заказов
type PollerConfig struct {
	PollInterval         time.Duration
	NotificationsEnabled bool
}

// ServerConfig модель настроек служебного HTTP-сервера
type ServerConfig struct {
	ListenAddr  string
	LogLevel    string
	JWTSecret   string
	DatabaseDSN string
}

// Config модель настроек сервиса
type Config struct {
	Server  ServerConfig
	Bot     BotConfig
	Backend BackendConfig
	Poller  PollerConfig
}

func NewConfig() Config {

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server   = pflag.StringP("server", "a", args.ListenAddr, "Ops server listen address in a form host:port.")
		logLevel = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		DSN      = pflag.StringP("dsn", "d", args.DatabaseDSN, "Database DSN for durable notified orders (optional)")
		secret   = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		token    = pflag.StringP("token", "t", args.BotToken, "Telegram bot token")
		chatID   = pflag.Int64P("admin_chat", "c", args.AdminChatID, "Chat ID for new order notifications")
		admins   = pflag.StringP("admins", "i", args.AdminIDs, "Comma separated admin chat IDs")
		backend  = pflag.StringP("backend", "b", args.BackendURL, "Orders collection URL of the backend")
		media    = pflag.StringP("media", "m", args.MediaURL, "Base URL for relative receipt paths")
		interval = pflag.DurationP("poll_interval", "p", args.PollInterval, "Interval between new orders checks")
		timeout  = pflag.Duration("request_timeout", args.RequestTimeout, "Timeout of a single network call")
		notify   = pflag.BoolP("notifications", "n", args.NotificationsEnabled, "Send new orders notifications")
		tz       = pflag.String("timezone", args.Timezone, "Timezone for period reports")
	)
	pflag.Parse()

	adminIDs, err := ParseAdminIDs(*admins)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse admin ids: %s", err.Error()))
	}
	location, err := time.LoadLocation(*tz)
	if err != nil {
		panic(fmt.Sprintf("Failed to load timezone: %s", err.Error()))
	}

	return Config{
		Server: ServerConfig{
			ListenAddr:  *server,
			LogLevel:    *logLevel,
			DatabaseDSN: *DSN,
			JWTSecret:   *secret,
		},
		Bot: BotConfig{
			Token:       *token,
			AdminChatID: *chatID,
			AdminIDs:    adminIDs,
			Location:    location,
		},
		Backend: BackendConfig{
			OrdersURL:      *backend,
			MediaURL:       *media,
			RequestTimeout: *timeout,
		},
		Poller: PollerConfig{
			PollInterval:         *interval,
			NotificationsEnabled: *notify,
		},
	}
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  "localhost:8080",
			LogLevel:    "info",
			DatabaseDSN: "",
			JWTSecret:   "secret",
		},
		Bot: BotConfig{
			AdminChatID: 714948319,
			AdminIDs:    []int64{714948319},
			Location:    time.UTC,
		},
		Backend: BackendConfig{
			OrdersURL:      "http://localhost:8000/api/orders/",
			RequestTimeout: 15 * time.Second,
		},
		Poller: PollerConfig{
			PollInterval:         10 * time.Second,
			NotificationsEnabled: true,
		},
	}
}

// ParseAdminIDs разбирает список идентификаторов чатов администраторов через запятую
func ParseAdminIDs(list string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
