// Package metrics содержит Prometheus-метрики бота.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	TickOK              = "ok"
	TickFailed          = "failed"
	TickSkippedDisabled = "skipped_disabled"
	TickSkippedBreaker  = "skipped_breaker"

	NotifyPhoto        = "photo"
	NotifyTextFallback = "text_fallback"
	NotifyFailed       = "failed"

	ApprovalApplied = "applied"
	ApprovalFailed  = "failed"
	ApprovalBusy    = "busy"
)

// BotMetrics - метрики опроса, уведомлений и подтверждений.
// Методы допускают nil-получатель, тогда запись пропускается.
type BotMetrics struct {
	pollTicks     *prometheus.CounterVec
	pollDuration  prometheus.Histogram
	notifications *prometheus.CounterVec
	approvals     *prometheus.CounterVec
	updates       *prometheus.CounterVec
	panics        prometheus.Counter
	enabled       prometheus.Gauge
}

// NewBotMetrics создаёт метрики в реестре по умолчанию.
func NewBotMetrics() *BotMetrics {
	return NewBotMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewBotMetricsWithRegisterer(registerer prometheus.Registerer) *BotMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &BotMetrics{
		pollTicks: register(registerer, "orderbot_poll_ticks_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbot_poll_ticks_total",
			Help: "Total number of poller ticks by result",
		}, []string{"result"})),
		pollDuration: register(registerer, "orderbot_poll_duration_seconds", prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orderbot_poll_duration_seconds",
			Help:    "Duration of a poller tick in seconds",
			Buckets: prometheus.DefBuckets,
		})),
		notifications: register(registerer, "orderbot_notifications_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbot_notifications_total",
			Help: "Total number of admin notifications by delivery result",
		}, []string{"result"})),
		approvals: register(registerer, "orderbot_approvals_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbot_approvals_total",
			Help: "Total number of approve/reject actions by decision and result",
		}, []string{"decision", "result"})),
		updates: register(registerer, "orderbot_updates_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbot_updates_total",
			Help: "Total number of chat updates received by kind",
		}, []string{"kind"})),
		panics: register(registerer, "orderbot_handler_panics_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderbot_handler_panics_total",
			Help: "Total number of recovered panics in update handlers and poller ticks",
		})),
		enabled: register(registerer, "orderbot_notifications_enabled", prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orderbot_notifications_enabled",
			Help: "1 when new order notifications are enabled",
		})),
	}
}

func register[T prometheus.Collector](registerer prometheus.Registerer, name string, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", name))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector %q: %v", name, err))
	}
	return collector
}

// RecordTick учитывает результат такта опроса и его длительность.
func (m *BotMetrics) RecordTick(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.pollTicks.WithLabelValues(result).Inc()
	if duration > 0 {
		m.pollDuration.Observe(duration.Seconds())
	}
}

// RecordNotification учитывает способ доставки уведомления.
func (m *BotMetrics) RecordNotification(result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(result).Inc()
}

// RecordApproval учитывает нажатие кнопки подтверждения/отклонения.
func (m *BotMetrics) RecordApproval(decision, result string) {
	if m == nil {
		return
	}
	m.approvals.WithLabelValues(decision, result).Inc()
}

func (m *BotMetrics) RecordUpdate(kind string) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(kind).Inc()
}

func (m *BotMetrics) RecordPanic() {
	if m == nil {
		return
	}
	m.panics.Inc()
}

// SetNotificationsEnabled отражает текущее положение переключателя уведомлений.
func (m *BotMetrics) SetNotificationsEnabled(enabled bool) {
	if m == nil {
		return
	}
	if enabled {
		m.enabled.Set(1)
		return
	}
	m.enabled.Set(0)
}
