package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/denmor86/ya-orderbot/internal/client"
	"github.com/denmor86/ya-orderbot/internal/dedup"
	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/denmor86/ya-orderbot/internal/metrics"
	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/denmor86/ya-orderbot/internal/services"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

func InitCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "orders-backend",
		Timeout: 30 * time.Second, // через 30 сек пробуем подключиться
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 5 попыток достучатся до сервиса
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// Switch - переключатель уведомлений, меняется во время работы командой бота или через служебный API
type Switch struct {
	enabled atomic.Bool
	metrics *metrics.BotMetrics
}

func NewSwitch(enabled bool, m *metrics.BotMetrics) *Switch {
	s := &Switch{metrics: m}
	s.Set(enabled)
	return s
}

func (s *Switch) Enabled() bool {
	return s.enabled.Load()
}

func (s *Switch) Set(enabled bool) {
	s.enabled.Store(enabled)
	s.metrics.SetNotificationsEnabled(enabled)
}

// OrderPoller - опрос бэкенда на новые ожидающие заказы
type OrderPoller struct {
	Orders       client.OrdersBackend
	Notified     dedup.Store
	Notifier     services.Notifier
	Switch       *Switch
	Breaker      *gobreaker.CircuitBreaker
	Metrics      *metrics.BotMetrics
	WaitGroup    sync.WaitGroup
	QuitChan     chan struct{}
	PollInterval time.Duration

	stopOnce sync.Once
	now      func() time.Time
}

// NewOrderPoller - конструктор опросчика заказов
func NewOrderPoller(orders client.OrdersBackend, notified dedup.Store, notifier services.Notifier,
	toggle *Switch, interval time.Duration, m *metrics.BotMetrics) *OrderPoller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &OrderPoller{
		Orders:       orders,
		Notified:     notified,
		Notifier:     notifier,
		Switch:       toggle,
		Breaker:      InitCircuitBreaker(),
		Metrics:      m,
		QuitChan:     make(chan struct{}),
		PollInterval: interval,
		now:          time.Now,
	}
}

// Start - запускает опрос в фоне, первый такт выполняется сразу
func (w *OrderPoller) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает опрос, дожидаясь завершения текущего такта
func (w *OrderPoller) Stop() {
	w.stopOnce.Do(func() {
		close(w.QuitChan)
	})
	w.WaitGroup.Wait()
}

// BackendState - состояние circuit breaker бэкенда заказов: closed, half-open или open
func (w *OrderPoller) BackendState() string {
	return w.Breaker.State().String()
}

// Run - основной цикл. Пауза отсчитывается после окончания такта, поэтому такты не перекрываются.
// Начатый такт доводится до конца и после отмены ctx: отмена останавливает цикл между тактами.
func (w *OrderPoller) Run(ctx context.Context) {
	defer w.WaitGroup.Done()
	logger.Info("starting order monitoring loop", "interval", w.PollInterval)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("OrderPoller signal stop")
			return
		case <-ctx.Done():
			logger.Info("OrderPoller context done")
			return
		case <-timer.C:
			if ctx.Err() != nil {
				logger.Info("OrderPoller context done")
				return
			}
			w.safeTick(context.WithoutCancel(ctx))
			timer.Reset(w.PollInterval)
		}
	}
}

// safeTick - такт, паника которого не останавливает цикл опроса
func (w *OrderPoller) safeTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.Metrics.RecordPanic()
			logger.Error("order poller tick panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	w.Tick(ctx)
}

// Tick - один такт опроса: получить ожидающие заказы и уведомить о новых
func (w *OrderPoller) Tick(ctx context.Context) {
	if !w.Switch.Enabled() {
		logger.Debug("notifications are disabled, skipping order check")
		w.Metrics.RecordTick(metrics.TickSkippedDisabled, 0)
		return
	}

	tickID := uuid.NewString()
	started := w.now()

	// следы снятых отметок нужны только пока жив снимок предыдущего такта
	if err := w.Notified.Prune(ctx, started.Add(-2*w.PollInterval)); err != nil {
		logger.Warn("failed to prune cleared orders", "tick", tickID, "error", err)
	}

	pending := models.StatusPending
	result, err := w.Breaker.Execute(func() (interface{}, error) {
		return w.Orders.ListOrders(ctx, &pending)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logger.Warn("orders backend unavailable, waiting", "tick", tickID, "breaker", w.Breaker.Name())
		w.Metrics.RecordTick(metrics.TickSkippedBreaker, 0)
		return
	}
	if err != nil {
		logger.Error("error getting orders", "tick", tickID, "error", err)
		w.Metrics.RecordTick(metrics.TickFailed, w.now().Sub(started))
		return
	}

	orders, ok := result.([]models.Order)
	if !ok {
		logger.Error("unexpected orders backend result", "tick", tickID, "type", fmt.Sprintf("%T", result))
		w.Metrics.RecordTick(metrics.TickFailed, w.now().Sub(started))
		return
	}
	for _, order := range orders {
		if ctx.Err() != nil {
			return
		}
		w.process(ctx, tickID, started, order)
	}
	w.Metrics.RecordTick(metrics.TickOK, w.now().Sub(started))
}

func (w *OrderPoller) process(ctx context.Context, tickID string, started time.Time, order models.Order) {
	if err := order.Validate(); err != nil {
		logger.Warn("skipping malformed order", "tick", tickID, "error", err)
		return
	}

	notified, err := w.Notified.IsNotified(ctx, order.ID)
	if err != nil {
		logger.Error("failed to check notified order", "tick", tickID, "order", order.ID, "error", err)
		return
	}
	if notified {
		return
	}

	// заказ решён после начала запроса: снимок устарел, проверим на следующем такте
	cleared, err := w.Notified.ClearedSince(ctx, order.ID, started)
	if err != nil {
		logger.Error("failed to check cleared order", "tick", tickID, "order", order.ID, "error", err)
		return
	}
	if cleared {
		logger.Debug("skipping order resolved during tick", "tick", tickID, "order", order.ID)
		return
	}

	if !w.Notifier.Notify(ctx, order) {
		// повтор только после перезапуска, чтобы не засыпать чат при долгом сбое
		if err := w.Notified.MarkAttempted(ctx, order.ID); err != nil {
			logger.Error("failed to mark order attempted", "tick", tickID, "order", order.ID, "error", err)
		}
		return
	}
	if err := w.Notified.MarkNotified(ctx, order.ID); err != nil {
		logger.Error("failed to mark order notified", "tick", tickID, "order", order.ID, "error", err)
	}
}
