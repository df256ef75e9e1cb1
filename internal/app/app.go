package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/denmor86/ya-orderbot/internal/bot"
	"github.com/denmor86/ya-orderbot/internal/client"
	"github.com/denmor86/ya-orderbot/internal/config"
	"github.com/denmor86/ya-orderbot/internal/dedup"
	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/denmor86/ya-orderbot/internal/metrics"
	"github.com/denmor86/ya-orderbot/internal/network/router"
	"github.com/denmor86/ya-orderbot/internal/services"
	"github.com/denmor86/ya-orderbot/internal/telegram"
	"github.com/denmor86/ya-orderbot/internal/worker"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// NewStore выбирает хранилище отметок об уведомлениях: PostgreSQL при заданном DSN, иначе память процесса
func NewStore(ctx context.Context, dsn string) (dedup.Store, error) {
	if dsn == "" {
		logger.Info("notified orders are kept in memory")
		return dedup.NewMemorySet(), nil
	}
	store, err := dedup.NewPostgresSet(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open notified orders store: %w", err)
	}
	logger.Info("notified orders are kept in postgres")
	return store, nil
}

// Admins - чаты, которым доступны команды: список администраторов и чат уведомлений
func Admins(cfg config.BotConfig) []int64 {
	admins := append([]int64{}, cfg.AdminIDs...)
	if cfg.AdminChatID != 0 {
		admins = append(admins, cfg.AdminChatID)
	}
	return admins
}

// Run собирает компоненты бота и работает до отмены контекста
func Run(ctx context.Context, cfg config.Config) (err error) {
	logger.Info("starting order bot",
		"backend", cfg.Backend.OrdersURL,
		"admin_chat", cfg.Bot.AdminChatID,
		"poll_interval", cfg.Poller.PollInterval,
		"ops_addr", cfg.Server.ListenAddr,
	)

	backend, err := client.NewClient(cfg.Backend.OrdersURL, cfg.Backend.MediaURL,
		&http.Client{Timeout: cfg.Backend.RequestTimeout})
	if err != nil {
		return err
	}

	// таймаут клиента Telegram покрывает long polling
	botClient := &http.Client{Timeout: telegram.UpdatesTimeout*time.Second + cfg.Backend.RequestTimeout}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.Bot.Token, tgbotapi.APIEndpoint, botClient)
	if err != nil {
		return fmt.Errorf("failed to connect to telegram: %w", err)
	}
	logger.Info("authorized on telegram", "bot", api.Self.UserName)

	store, err := NewStore(ctx, cfg.Server.DatabaseDSN)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, store.Close())
	}()

	registry := prometheus.NewRegistry()
	m := metrics.NewBotMetricsWithRegisterer(registry)
	toggle := worker.NewSwitch(cfg.Poller.NotificationsEnabled, m)

	messenger := telegram.NewMessenger(api)
	cards := services.NewCardSender(messenger, backend)
	notifier := services.NewAdminNotifier(cards, cfg.Bot.AdminChatID, m)
	approval := services.NewApproval(backend, messenger, store, m)
	console := services.NewConsole(backend, cfg.Bot.Location)

	handler := bot.NewRouter(messenger, console, cards, approval, toggle, Admins(cfg.Bot))
	listener := telegram.NewListener(api, handler, m)
	poller := worker.NewOrderPoller(backend, store, notifier, toggle, cfg.Poller.PollInterval, m)

	ops := router.NewRouter(services.NewIdentity(cfg.Server), toggle, poller, registry)
	server := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           ops.HandleRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listener.Run(gctx)
	})
	g.Go(func() error {
		poller.Start(gctx)
		<-gctx.Done()
		poller.Stop()
		return nil
	})
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("error shutdown ops server", "error", err)
			return err
		}
		return nil
	})

	err = g.Wait()
	logger.Info("order bot stopped")
	return err
}
