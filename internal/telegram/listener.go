package telegram

import (
	"context"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/denmor86/ya-orderbot/internal/chat"
	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/denmor86/ya-orderbot/internal/metrics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	DefaultConcurrency    = 8
	DefaultHandlerTimeout = 2 * time.Minute
	UpdatesTimeout        = 60
)

// UpdateHandler - обработчик входящих событий чата
type UpdateHandler interface {
	HandleMessage(ctx context.Context, msg chat.Message)
	HandleCallback(ctx context.Context, cb chat.Callback)
}

// UpdatesSource - источник обновлений long polling
type UpdatesSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Listener получает обновления и обрабатывает каждое в своей горутине.
// Число одновременных обработчиков ограничено, паника обработчика не роняет процесс.
type Listener struct {
	Source         UpdatesSource
	Handler        UpdateHandler
	Metrics        *metrics.BotMetrics
	HandlerTimeout time.Duration

	sem chan struct{}
	wg  sync.WaitGroup
}

func NewListener(source UpdatesSource, handler UpdateHandler, m *metrics.BotMetrics) *Listener {
	return &Listener{
		Source:         source,
		Handler:        handler,
		Metrics:        m,
		HandlerTimeout: DefaultHandlerTimeout,
		sem:            make(chan struct{}, DefaultConcurrency),
	}
}

// Run читает обновления до отмены контекста и дожидается запущенных обработчиков
func (l *Listener) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = UpdatesTimeout
	updates := l.Source.GetUpdatesChan(cfg)
	logger.Info("bot started, receiving updates")

	defer l.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			l.Source.StopReceivingUpdates()
			logger.Info("bot stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			select {
			case l.sem <- struct{}{}:
			case <-ctx.Done():
				continue
			}
			l.wg.Add(1)
			go func(update tgbotapi.Update) {
				defer l.wg.Done()
				defer func() { <-l.sem }()
				l.dispatch(ctx, update)
			}(update)
		}
	}
}

func (l *Listener) dispatch(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			l.Metrics.RecordPanic()
			logger.Error("panic in update handler", "update", update.UpdateID, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	// обработка не прерывается остановкой приема обновлений
	hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.HandlerTimeout)
	defer cancel()

	switch {
	case update.CallbackQuery != nil:
		l.Metrics.RecordUpdate("callback")
		l.Handler.HandleCallback(hctx, ToCallback(update.CallbackQuery))
	case update.Message != nil:
		l.Metrics.RecordUpdate("message")
		l.Handler.HandleMessage(hctx, ToMessage(update.Message))
	default:
		l.Metrics.RecordUpdate("other")
	}
}

// ToMessage переводит сообщение Bot API в событие чата
func ToMessage(m *tgbotapi.Message) chat.Message {
	msg := chat.Message{
		MessageID: m.MessageID,
		Text:      strings.TrimSpace(m.Text),
	}
	if m.Chat != nil {
		msg.ChatID = m.Chat.ID
	}
	if m.From != nil {
		msg.UserID = m.From.ID
	}
	if m.IsCommand() {
		msg.Command = m.Command()
		msg.Args = strings.TrimSpace(m.CommandArguments())
	}
	return msg
}

// ToCallback переводит нажатие кнопки Bot API в событие чата
func ToCallback(q *tgbotapi.CallbackQuery) chat.Callback {
	cb := chat.Callback{ID: q.ID, Data: q.Data}
	if q.From != nil {
		cb.UserID = q.From.ID
	}
	if q.Message != nil {
		cb.MessageID = q.Message.MessageID
		if q.Message.Chat != nil {
			cb.ChatID = q.Message.Chat.ID
		}
	}
	return cb
}
